package stats

import (
	"testing"

	"darts-tracker/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestPlayerSeasonEmptyInput(t *testing.T) {
	s := PlayerSeason(nil)

	assert.Zero(t, s.HighestAverage)
	assert.Zero(t, s.WinPercentage)
	assert.Zero(t, s.AccumulatedAverage)
	assert.Zero(t, s.TotalDartsThrown)
}

func TestPlayerSeasonWeightedAverage(t *testing.T) {
	sessions := []domain.Session{
		{Games: 10, Average: 50, Won: 6, Lost: 4, Darts: 200, OneEighty: 1},
		{Games: 2, Average: 20, Won: 1, Lost: 1, Darts: 40, OneSeventyOne: 1, HighCloser: 120},
	}

	s := PlayerSeason(sessions)

	// (50*10 + 20*2) / 12, not (50+20)/2
	assert.InDelta(t, 45.0, s.AccumulatedAverage, 0.001)
	assert.InDelta(t, 7.0/12.0*100, s.WinPercentage, 0.001)
	assert.Equal(t, 50.0, s.HighestAverage)
	assert.Equal(t, 120, s.HighestCloser)
	assert.Equal(t, 7, s.TotalLegsWon)
	assert.Equal(t, 5, s.TotalLegsLost)
	assert.Equal(t, 240, s.TotalDartsThrown)
	assert.Equal(t, 1, s.Total180s)
	assert.Equal(t, 1, s.Total171s)
}

func TestPlayerSeasonZeroGamesNoDivision(t *testing.T) {
	s := PlayerSeason([]domain.Session{{Games: 0, Average: 60, Won: 0}})

	assert.Zero(t, s.WinPercentage)
	assert.Zero(t, s.AccumulatedAverage)
	assert.Equal(t, 60.0, s.HighestAverage)
}

func TestWeeklyAveragesKeepsInputOrder(t *testing.T) {
	points := WeeklyAverages([]domain.Session{
		{Date: "2024-01-05", Average: 41.2},
		{Date: "2024-01-12", Average: 44.8},
	})

	assert.Equal(t, []TrendPoint{
		{Week: "05/01/24", Average: 41.2},
		{Week: "12/01/24", Average: 44.8},
	}, points)
}

func TestWeeklyAveragesUnparseableDatePassesThrough(t *testing.T) {
	points := WeeklyAverages([]domain.Session{{Date: "week 3", Average: 39}})
	assert.Equal(t, "week 3", points[0].Week)
}
