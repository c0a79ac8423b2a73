package stats

import (
	"testing"

	"darts-tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandicapTierBoundaries(t *testing.T) {
	cases := []struct {
		average    float64
		start      int
		adjustment int
	}{
		{60.0, 501, 0},
		{45.0, 501, 0},
		{44.99, 451, -50},
		{40.0, 451, -50},
		{39.99, 401, -100},
		{35.0, 401, -100},
		{34.99, 351, -150},
		{30.0, 351, -150},
		{29.99, 301, -200},
		{0, 301, -200},
	}

	for _, tc := range cases {
		start, adj := HandicapFor(tc.average)
		assert.Equal(t, tc.start, start, "average %.2f", tc.average)
		assert.Equal(t, tc.adjustment, adj, "average %.2f", tc.average)
	}
}

func TestHandicapsSkipsBelowMinimumSessions(t *testing.T) {
	sessions := []domain.Session{
		{Player: "Regular", Games: 4, Average: 42},
		{Player: "Regular", Games: 4, Average: 44},
		{Player: "Regular", Games: 4, Average: 40},
		{Player: "Casual", Games: 4, Average: 55},
	}

	out := Handicaps(sessions, 3)

	require.Len(t, out, 1)
	assert.Equal(t, "Regular", out[0].Player)
	assert.Equal(t, 3, out[0].Sessions)
	assert.InDelta(t, 42.0, out[0].SeasonAverage, 0.001)
	assert.Equal(t, 451, out[0].StartScore)
}

func TestHandicapsWeightedByGames(t *testing.T) {
	sessions := []domain.Session{
		{Player: "P", Games: 9, Average: 46},
		{Player: "P", Games: 1, Average: 20},
		{Player: "P", Games: 0, Average: 99},
	}

	out := Handicaps(sessions, 3)

	require.Len(t, out, 1)
	// (46*9 + 20*1 + 99*0) / 10
	assert.InDelta(t, 43.4, out[0].SeasonAverage, 0.001)
	assert.Equal(t, 451, out[0].StartScore)
	assert.Equal(t, -50, out[0].Adjustment)
}

func TestHandicapsSortedByAverageDescending(t *testing.T) {
	sessions := []domain.Session{
		{Player: "Mid", Games: 2, Average: 38}, {Player: "Mid", Games: 2, Average: 38}, {Player: "Mid", Games: 2, Average: 38},
		{Player: "Top", Games: 2, Average: 48}, {Player: "Top", Games: 2, Average: 48}, {Player: "Top", Games: 2, Average: 48},
	}

	out := Handicaps(sessions, 3)
	require.Len(t, out, 2)
	assert.Equal(t, "Top", out[0].Player)
	assert.Equal(t, "Mid", out[1].Player)
}

func TestSummarizeLegs(t *testing.T) {
	legs := []domain.Leg{
		{Result: "Won", Darts: 21},
		{Result: "Won", Darts: 15},
		{Result: "Lost", Darts: 12},
		{Result: "Won", Darts: 0},
	}

	s := SummarizeLegs(legs)

	assert.Equal(t, 4, s.Played)
	assert.Equal(t, 3, s.Won)
	assert.Equal(t, 1, s.Lost)
	// the zero-dart row must not become the minimum
	assert.Equal(t, 15, s.MinDart)
}

func TestSummarizeLegsEmpty(t *testing.T) {
	s := SummarizeLegs(nil)
	assert.Zero(t, s.Played)
	assert.Zero(t, s.MinDart)
}
