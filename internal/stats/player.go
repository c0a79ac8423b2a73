// Package stats derives display-ready statistics from raw session, match and
// leg rows. Every function is a pure fold over its input: identical rows in,
// identical numbers out, and empty inputs degrade to zero-valued defaults so
// callers never special-case "no data yet".
package stats

import "darts-tracker/internal/domain"

// PlayerStats is one player's season summary over their session rows.
type PlayerStats struct {
	HighestAverage     float64 `json:"highestAverage"`
	WinPercentage      float64 `json:"winPercentage"`
	AccumulatedAverage float64 `json:"accumulatedAverage"`
	TotalLegsWon       int     `json:"totalLegsWon"`
	TotalLegsLost      int     `json:"totalLegsLost"`
	TotalDartsThrown   int     `json:"totalDartsThrown"`
	Total180s          int     `json:"total180s"`
	Total171s          int     `json:"total171s"`
	HighestCloser      int     `json:"highestCloser"`
}

// PlayerSeason computes a player's season statistics. The accumulated average
// is weighted by games played per session, which is not the same number as the
// arithmetic mean of the per-session averages.
func PlayerSeason(sessions []domain.Session) PlayerStats {
	var s PlayerStats
	var totalGames int
	var weightedPoints float64

	for _, row := range sessions {
		if row.Average > s.HighestAverage {
			s.HighestAverage = row.Average
		}
		if row.HighCloser > s.HighestCloser {
			s.HighestCloser = row.HighCloser
		}
		totalGames += row.Games
		weightedPoints += row.Average * float64(row.Games)
		s.TotalLegsWon += row.Won
		s.TotalLegsLost += row.Lost
		s.TotalDartsThrown += row.Darts
		s.Total180s += row.OneEighty
		s.Total171s += row.OneSeventyOne
	}

	if totalGames > 0 {
		s.WinPercentage = float64(s.TotalLegsWon) / float64(totalGames) * 100
		s.AccumulatedAverage = weightedPoints / float64(totalGames)
	}
	return s
}

// TrendPoint is one session on the weekly averages chart.
type TrendPoint struct {
	Week    string  `json:"week"`
	Average float64 `json:"average"`
}

// WeeklyAverages maps sessions onto trend points, one per row, preserving the
// order the rows arrived in. Callers wanting a chronological trend must pass
// rows already sorted by date.
func WeeklyAverages(sessions []domain.Session) []TrendPoint {
	points := make([]TrendPoint, 0, len(sessions))
	for _, row := range sessions {
		points = append(points, TrendPoint{
			Week:    shortDate(row.Date),
			Average: row.Average,
		})
	}
	return points
}
