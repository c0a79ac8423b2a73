package stats

import (
	"sort"
	"strings"

	"darts-tracker/internal/domain"
)

// OpponentTally counts head-to-head appearances against one opponent.
type OpponentTally struct {
	Opponent string `json:"opponent"`
	Played   int    `json:"played"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
}

// TopOpponents groups a player's matches by opponent and returns the most
// frequently played, sorted descending by appearance count. Ties keep
// first-appearance order so repeated calls return identical output.
func TopOpponents(matches []domain.Match, limit int) []OpponentTally {
	byName := make(map[string]*OpponentTally)
	var order []string

	for _, m := range matches {
		tally, ok := byName[m.Opponent]
		if !ok {
			tally = &OpponentTally{Opponent: m.Opponent}
			byName[m.Opponent] = tally
			order = append(order, m.Opponent)
		}
		tally.Played++
		if resultIsWin(m.Result) {
			tally.Wins++
		} else {
			tally.Losses++
		}
	}

	out := make([]OpponentTally, 0, len(order))
	for _, name := range order {
		out = append(out, *byName[name])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Played > out[j].Played
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// resultIsWin classifies a free-text match result. Anything that is not
// recognizably a win counts as a loss; the exports contain no draw token, so
// unknown strings fall through to the loss bucket rather than being dropped.
func resultIsWin(result string) bool {
	r := strings.ToLower(strings.TrimSpace(result))
	switch r {
	case "won", "win", "w":
		return true
	case "lost", "lose", "l":
		return false
	}
	return strings.Contains(r, "won")
}

// TopMatch is one row on the highest-average-games table.
type TopMatch struct {
	Date     string  `json:"date"`
	Opponent string  `json:"opponent"`
	Average  float64 `json:"average"`
	Result   string  `json:"result"`
}

// TopMatches returns the matches with the highest positive averages, formatted
// for display.
func TopMatches(matches []domain.Match, limit int) []TopMatch {
	filtered := make([]domain.Match, 0, len(matches))
	for _, m := range matches {
		if m.Average > 0 {
			filtered = append(filtered, m)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Average > filtered[j].Average
	})
	if len(filtered) > limit {
		filtered = filtered[:limit]
	}

	out := make([]TopMatch, 0, len(filtered))
	for _, m := range filtered {
		out = append(out, TopMatch{
			Date:     shortDate(m.Date),
			Opponent: m.Opponent,
			Average:  m.Average,
			Result:   m.Result,
		})
	}
	return out
}
