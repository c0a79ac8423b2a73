package stats

import (
	"math"
	"time"

	"darts-tracker/internal/constants"
	"darts-tracker/internal/domain"
)

// ClubSummary is the club-wide rollup shown at the top of a dashboard.
type ClubSummary struct {
	TotalGames   int     `json:"totalGames"`
	TotalWins    int     `json:"totalWins"`
	TotalLost    int     `json:"totalLost"`
	TotalPoints  int     `json:"totalPoints"`
	TotalBonus   int     `json:"totalBonus"`
	Total180s    int     `json:"total180s"`
	TotalDarts   int     `json:"totalDarts"`
	WinRate      float64 `json:"winRate"`
	AverageScore float64 `json:"averageScore"`
	ClubAverage  float64 `json:"clubAverage"`
}

// Summarize rolls up all session rows in the filtered set. The games column
// arrives pre-doubled by club convention, so the displayed total halves it.
// AverageScore is the plain mean of per-row averages; ClubAverage is the
// points-per-dart estimate from the most recent play date, scaled to a
// three-dart turn.
func Summarize(sessions []domain.Session) ClubSummary {
	var s ClubSummary
	var rawGames int
	var avgSum float64

	for _, row := range sessions {
		rawGames += row.Games
		s.TotalWins += row.Won
		s.TotalLost += row.Lost
		s.TotalPoints += row.Points
		s.TotalBonus += row.Bonus
		s.Total180s += row.OneEighty
		s.TotalDarts += row.Darts
		avgSum += row.Average
	}

	s.TotalGames = rawGames / 2
	if rawGames > 0 {
		s.WinRate = round2(float64(s.TotalWins) / float64(rawGames) * 100)
	}
	if len(sessions) > 0 {
		s.AverageScore = round2(avgSum / float64(len(sessions)))
	}
	s.ClubAverage = clubAverage(sessions)
	return s
}

// clubAverage estimates the club's scoring rate from the most recent date in
// the set only: sum of (games*501 - score_left) over that date's rows, divided
// by the darts thrown that date, times three, rounded to two decimals.
func clubAverage(sessions []domain.Session) float64 {
	latest := LatestDate(sessions)
	if latest == "" {
		return 0
	}

	var scored, darts int
	for _, row := range sessions {
		if row.Date != latest {
			continue
		}
		scored += row.Games*constants.LegStartScore - row.ScoreLeft
		darts += row.Darts
	}
	if darts == 0 {
		return 0
	}
	return round2(float64(scored) / float64(darts) * constants.DartsPerTurn)
}

// LatestDate returns the raw date string of the most recent session.
func LatestDate(sessions []domain.Session) string {
	var latest string
	var latestAt time.Time
	parsedAny := false

	for _, row := range sessions {
		if row.Date == "" {
			continue
		}
		if t, ok := parseDate(row.Date); ok {
			if !parsedAny || t.After(latestAt) {
				latest = row.Date
				latestAt = t
				parsedAny = true
			}
			continue
		}
		// unparseable dates compare lexically, but never trump a parsed one
		if !parsedAny && row.Date > latest {
			latest = row.Date
		}
	}
	return latest
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
