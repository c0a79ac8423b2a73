package stats

import (
	"testing"

	"darts-tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopOpponentsGroupsAndSorts(t *testing.T) {
	matches := []domain.Match{
		{Opponent: "X", Result: "Won"},
		{Opponent: "X", Result: "Lost"},
		{Opponent: "Y", Result: "W"},
	}

	out := TopOpponents(matches, 5)

	require.Len(t, out, 2)
	assert.Equal(t, OpponentTally{Opponent: "X", Played: 2, Wins: 1, Losses: 1}, out[0])
	assert.Equal(t, OpponentTally{Opponent: "Y", Played: 1, Wins: 1, Losses: 0}, out[1])
}

func TestTopOpponentsTieKeepsFirstSeenOrder(t *testing.T) {
	matches := []domain.Match{
		{Opponent: "B", Result: "Won"},
		{Opponent: "A", Result: "Lost"},
	}

	out := TopOpponents(matches, 5)
	require.Len(t, out, 2)
	assert.Equal(t, "B", out[0].Opponent)
	assert.Equal(t, "A", out[1].Opponent)
}

func TestTopOpponentsLimit(t *testing.T) {
	matches := []domain.Match{
		{Opponent: "A"}, {Opponent: "B"}, {Opponent: "C"},
	}
	assert.Len(t, TopOpponents(matches, 2), 2)
}

func TestResultClassification(t *testing.T) {
	assert.True(t, resultIsWin("Won"))
	assert.True(t, resultIsWin(" win "))
	assert.True(t, resultIsWin("W"))
	assert.True(t, resultIsWin("won 3-1"))
	assert.False(t, resultIsWin("Lost"))
	assert.False(t, resultIsWin("l"))
	// unknown tokens count as losses, never as draws
	assert.False(t, resultIsWin("abandoned"))
	assert.False(t, resultIsWin(""))
}

func TestTopMatchesFiltersZeroAverages(t *testing.T) {
	matches := []domain.Match{
		{Date: "2024-01-05", Opponent: "X", Average: 52.1, Result: "Won"},
		{Date: "2024-01-12", Opponent: "Y", Average: 0, Result: "Lost"},
		{Date: "2024-01-19", Opponent: "Z", Average: 61.3, Result: "Won"},
	}

	out := TopMatches(matches, 10)

	require.Len(t, out, 2)
	assert.Equal(t, "Z", out[0].Opponent)
	assert.Equal(t, 61.3, out[0].Average)
	assert.Equal(t, "19/01/24", out[0].Date)
	assert.Equal(t, "X", out[1].Opponent)
}

func TestTopMatchesLimit(t *testing.T) {
	matches := []domain.Match{
		{Opponent: "A", Average: 40}, {Opponent: "B", Average: 50}, {Opponent: "C", Average: 45},
	}
	out := TopMatches(matches, 2)
	require.Len(t, out, 2)
	assert.Equal(t, "B", out[0].Opponent)
	assert.Equal(t, "C", out[1].Opponent)
}
