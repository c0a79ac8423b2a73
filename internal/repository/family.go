package repository

// TableFamily names the statistic tables owned by one club, resolved from the
// club's stored database_prefix. All branching between the two table families
// keys on this prefix; display names never decide anything.
type TableFamily struct {
	Prefix   string
	Sessions string
	Matches  string
	Members  string
	Legs     string // empty when the club does not track individual legs

	sessionSelect string
	matchSelect   string
}

func (f TableFamily) HasLegs() bool {
	return f.Legs != ""
}

// Tables lists the family's physical tables, used to validate ingestion
// targets and for analytics counts.
func (f TableFamily) Tables() []string {
	tables := []string{f.Sessions, f.Matches, f.Members}
	if f.HasLegs() {
		tables = append(tables, f.Legs)
	}
	return tables
}

// The session selects project each family onto the shared session shape:
// columns a club does not track read as zero, and per-club column names
// (name/player, darts_thrown/darts, high_closer/closer) are aliased to the
// domain names so the query layer above stays family-agnostic.
var families = map[string]TableFamily{
	"vikings": {
		Prefix:   "vikings",
		Sessions: "vikings_friday",
		Matches:  "vikings_matches",
		Members:  "vikings_members",
		sessionSelect: `SELECT id,
			COALESCE(date, '') AS date,
			COALESCE(name, '') AS player,
			COALESCE(points, 0) AS points,
			0 AS bonus,
			COALESCE(games, 0) AS games,
			COALESCE(won, 0) AS won,
			COALESCE(lost, 0) AS lost,
			COALESCE(darts_thrown, 0) AS darts,
			COALESCE(score_left, 0) AS score_left,
			COALESCE(average, 0) AS average,
			COALESCE(one_eighty, 0) AS one_eighty,
			COALESCE(one_seventy_one, 0) AS one_seventy_one,
			COALESCE(high_closer, 0) AS high_closer,
			COALESCE(winner, 0) AS winner,
			0 AS block_position,
			COALESCE(block, '') AS block,
			COALESCE(season, '') AS season
		FROM vikings_friday`,
		matchSelect: `SELECT id,
			COALESCE(date, '') AS date,
			COALESCE(player, '') AS player,
			COALESCE(against, '') AS opponent,
			COALESCE(legs, 0) AS legs,
			COALESCE(ave, 0) AS ave,
			COALESCE(result, '') AS result,
			COALESCE(season, '') AS season
		FROM vikings_matches`,
	},
	"jda": {
		Prefix:   "jda",
		Sessions: "jda_stats",
		Matches:  "jda_matches",
		Members:  "jda_members",
		Legs:     "jda_legs",
		sessionSelect: `SELECT id,
			COALESCE(date, '') AS date,
			COALESCE(player, '') AS player,
			COALESCE(points, 0) AS points,
			COALESCE(bonus, 0) AS bonus,
			COALESCE(games, 0) AS games,
			COALESCE(won, 0) AS won,
			COALESCE(lost, 0) AS lost,
			COALESCE(darts, 0) AS darts,
			COALESCE(score_left, 0) AS score_left,
			COALESCE(average, 0) AS average,
			COALESCE(one_eighty, 0) AS one_eighty,
			COALESCE(one_seventy_one, 0) AS one_seventy_one,
			COALESCE(closer, 0) AS high_closer,
			0 AS winner,
			COALESCE(block_position, 0) AS block_position,
			COALESCE(block, '') AS block,
			COALESCE(season, '') AS season
		FROM jda_stats`,
		matchSelect: `SELECT id,
			COALESCE(date, '') AS date,
			COALESCE(player, '') AS player,
			COALESCE(opponent, '') AS opponent,
			COALESCE(legs, 0) AS legs,
			COALESCE(ave, 0) AS ave,
			COALESCE(result, '') AS result,
			COALESCE(season, '') AS season
		FROM jda_matches`,
	},
}

// FamilyFor resolves a club's database_prefix to its table family.
func FamilyFor(prefix string) (TableFamily, bool) {
	f, ok := families[prefix]
	return f, ok
}

// Families returns every known table family.
func Families() []TableFamily {
	return []TableFamily{families["vikings"], families["jda"]}
}
