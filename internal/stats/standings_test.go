package stats

import (
	"testing"

	"darts-tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandingsAggregatesByPlayer(t *testing.T) {
	sessions := []domain.Session{
		{Player: "Alice", Points: 10, Games: 4, ScoreLeft: 404, Darts: 100, OneEighty: 1},
		{Player: "Bob", Points: 8, Games: 4, ScoreLeft: 804, Darts: 120},
		{Player: "Alice", Points: 6, Games: 2, ScoreLeft: 102, Darts: 50, OneSeventyOne: 1},
	}

	out := Standings(sessions)
	require.Len(t, out, 2)

	alice := out[0]
	assert.Equal(t, 1, alice.Position)
	assert.Equal(t, "Alice", alice.Player)
	assert.Equal(t, 16, alice.Points)
	assert.Equal(t, 6, alice.Games)
	assert.Equal(t, 1, alice.OneEighties)
	assert.Equal(t, 1, alice.OneSeventyOnes)
	// (4*501-404 + 2*501-102) / 150 darts * 3
	assert.InDelta(t, 50.0, alice.Average, 0.001)

	bob := out[1]
	assert.Equal(t, 2, bob.Position)
	// (4*501-804) / 120 * 3
	assert.InDelta(t, 30.0, bob.Average, 0.001)
}

func TestStandingsTieBrokenByAverage(t *testing.T) {
	sessions := []domain.Session{
		{Player: "Low", Points: 10, Games: 2, ScoreLeft: 702, Darts: 30},
		{Player: "High", Points: 10, Games: 2, ScoreLeft: 102, Darts: 30},
	}

	out := Standings(sessions)
	require.Len(t, out, 2)
	assert.Equal(t, "High", out[0].Player)
	assert.Equal(t, "Low", out[1].Player)
}

func TestStandingsIdempotent(t *testing.T) {
	sessions := []domain.Session{
		{Player: "A", Points: 5, Games: 2, ScoreLeft: 100, Darts: 60},
		{Player: "B", Points: 5, Games: 2, ScoreLeft: 200, Darts: 60},
	}

	first := Standings(sessions)
	second := Standings(sessions)
	assert.Equal(t, first, second)
}

func TestStandingsZeroDarts(t *testing.T) {
	out := Standings([]domain.Session{{Player: "A", Points: 2, Games: 2}})
	require.Len(t, out, 1)
	assert.Zero(t, out[0].Average)
}

func TestApplyChanges(t *testing.T) {
	current := []StandingsEntry{
		{Position: 1, Player: "A"},
		{Position: 2, Player: "B"},
		{Position: 3, Player: "New"},
	}
	previous := []StandingsEntry{
		{Position: 1, Player: "B"},
		{Position: 2, Player: "A"},
	}

	out := ApplyChanges(current, previous)

	assert.Equal(t, 1, out[0].Change)  // A moved 2 -> 1
	assert.Equal(t, -1, out[1].Change) // B moved 1 -> 2
	assert.Equal(t, 0, out[2].Change)  // newcomer stays neutral
}

func TestApplyChangesAntisymmetric(t *testing.T) {
	week1 := []StandingsEntry{
		{Position: 1, Player: "C"},
		{Position: 2, Player: "A"},
		{Position: 3, Player: "B"},
	}
	week2 := []StandingsEntry{
		{Position: 1, Player: "A"},
		{Position: 2, Player: "B"},
		{Position: 3, Player: "C"},
	}

	forward := ApplyChanges(week2, week1)
	backward := ApplyChanges(week1, week2)

	forwardByPlayer := map[string]int{}
	for _, e := range forward {
		forwardByPlayer[e.Player] = e.Change
	}
	for _, e := range backward {
		assert.Equal(t, -forwardByPlayer[e.Player], e.Change,
			"swapping the snapshots must negate %s's movement", e.Player)
	}
}
