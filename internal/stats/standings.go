package stats

import (
	"sort"

	"darts-tracker/internal/constants"
	"darts-tracker/internal/domain"
)

// StandingsEntry is one player's row in the season rankings.
type StandingsEntry struct {
	Position       int     `json:"position"`
	Player         string  `json:"player"`
	Points         int     `json:"points"`
	Games          int     `json:"games"`
	OneEighties    int     `json:"oneEighties"`
	OneSeventyOnes int     `json:"oneSeventyOnes"`
	Average        float64 `json:"average"`
	Change         int     `json:"change"`
}

// Standings aggregates session rows by player name across a season. The
// average is total score made over total darts thrown, scaled to a three-dart
// turn, where score made per row is games*501 minus the running score left.
// Players sort by points descending, ties broken by descending average.
func Standings(sessions []domain.Session) []StandingsEntry {
	type acc struct {
		entry StandingsEntry
		score int
		darts int
	}

	byPlayer := make(map[string]*acc)
	var order []string

	for _, row := range sessions {
		a, ok := byPlayer[row.Player]
		if !ok {
			a = &acc{entry: StandingsEntry{Player: row.Player}}
			byPlayer[row.Player] = a
			order = append(order, row.Player)
		}
		a.entry.Points += row.Points
		a.entry.Games += row.Games
		a.entry.OneEighties += row.OneEighty
		a.entry.OneSeventyOnes += row.OneSeventyOne
		a.score += row.Games*constants.LegStartScore - row.ScoreLeft
		a.darts += row.Darts
	}

	out := make([]StandingsEntry, 0, len(order))
	for _, name := range order {
		a := byPlayer[name]
		if a.darts > 0 {
			a.entry.Average = round2(float64(a.score) / float64(a.darts) * constants.DartsPerTurn)
		}
		out = append(out, a.entry)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		return out[i].Average > out[j].Average
	})
	for i := range out {
		out[i].Position = i + 1
	}
	return out
}

// ApplyChanges fills in position deltas by comparing the current standings
// against a previous snapshot of the same ranking. A player absent from the
// previous snapshot gets a neutral zero. Positive means the player moved up.
func ApplyChanges(current, previous []StandingsEntry) []StandingsEntry {
	prevPos := make(map[string]int, len(previous))
	for _, e := range previous {
		prevPos[e.Player] = e.Position
	}

	out := make([]StandingsEntry, len(current))
	copy(out, current)
	for i, e := range out {
		if pos, ok := prevPos[e.Player]; ok {
			out[i].Change = pos - e.Position
		} else {
			out[i].Change = 0
		}
	}
	return out
}
