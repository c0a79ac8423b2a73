package stats

import (
	"sort"

	"darts-tracker/internal/domain"
)

// HandicapEntry assigns one player a start score for handicapped legs.
type HandicapEntry struct {
	Player        string  `json:"player"`
	SeasonAverage float64 `json:"seasonAverage"`
	Sessions      int     `json:"sessions"`
	StartScore    int     `json:"startScore"`
	Adjustment    int     `json:"adjustment"`
}

// Handicaps buckets each qualifying player's season average into the fixed
// handicap tiers. Players with fewer than minSessions rows are skipped. Output
// is sorted by average descending: ranking by skill, not handicap size.
func Handicaps(sessions []domain.Session, minSessions int) []HandicapEntry {
	type acc struct {
		games    int
		weighted float64
		count    int
	}

	byPlayer := make(map[string]*acc)
	var order []string

	for _, row := range sessions {
		a, ok := byPlayer[row.Player]
		if !ok {
			a = &acc{}
			byPlayer[row.Player] = a
			order = append(order, row.Player)
		}
		a.games += row.Games
		a.weighted += row.Average * float64(row.Games)
		a.count++
	}

	out := make([]HandicapEntry, 0, len(order))
	for _, name := range order {
		a := byPlayer[name]
		if a.count < minSessions {
			continue
		}
		var avg float64
		if a.games > 0 {
			avg = a.weighted / float64(a.games)
		}
		start, adjustment := HandicapFor(avg)
		out = append(out, HandicapEntry{
			Player:        name,
			SeasonAverage: round2(avg),
			Sessions:      a.count,
			StartScore:    start,
			Adjustment:    adjustment,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SeasonAverage > out[j].SeasonAverage
	})
	return out
}

// HandicapFor maps a season average onto a start score and adjustment. Tier
// bounds are inclusive at the lower edge: exactly 45.00 is scratch, exactly
// 44.99 is the 451 tier.
func HandicapFor(average float64) (startScore, adjustment int) {
	switch {
	case average >= 45:
		return 501, 0
	case average >= 40:
		return 451, -50
	case average >= 35:
		return 401, -100
	case average >= 30:
		return 351, -150
	default:
		return 301, -200
	}
}

// LegSummary tallies per-leg outcomes for the JDA legs table.
type LegSummary struct {
	Played  int `json:"played"`
	Won     int `json:"won"`
	Lost    int `json:"lost"`
	MinDart int `json:"minDarts"`
}

// SummarizeLegs folds leg rows into win/loss counts and the shortest winning
// leg (0 when no leg was won).
func SummarizeLegs(legs []domain.Leg) LegSummary {
	var s LegSummary
	for _, leg := range legs {
		s.Played++
		if resultIsWin(leg.Result) {
			s.Won++
			if leg.Darts > 0 && (s.MinDart == 0 || leg.Darts < s.MinDart) {
				s.MinDart = leg.Darts
			}
		} else {
			s.Lost++
		}
	}
	return s
}
