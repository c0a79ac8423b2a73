package ingest

// Kind is the coercion applied to a CSV cell before it is stored.
type Kind int

const (
	KindText Kind = iota
	KindInt
	KindFloat
)

// Field maps one CSV header to a destination column. Headers are matched
// exactly as they appear in the club exports, punctuation and case included.
// ZeroDefault marks counters where an absent value means zero rather than
// unknown; everything else coerces to NULL when missing.
type Field struct {
	Header      string
	Column      string
	Kind        Kind
	ZeroDefault bool
}

// Schema is one of the six fixed upload targets.
type Schema struct {
	Table  string
	Label  string
	Club   string
	Fields []Field
}

var schemas = []Schema{
	{
		Table: "vikings_friday",
		Label: "Vikings - Friday Sessions",
		Club:  "Vikings",
		Fields: []Field{
			{Header: "Date", Column: "date", Kind: KindText},
			{Header: "Name", Column: "name", Kind: KindText},
			{Header: "Points", Column: "points", Kind: KindInt},
			{Header: "Games", Column: "games", Kind: KindInt},
			{Header: "Won", Column: "won", Kind: KindInt},
			{Header: "Lost", Column: "lost", Kind: KindInt},
			{Header: "DartsThrown", Column: "darts_thrown", Kind: KindInt},
			{Header: "ScoreLeft", Column: "score_left", Kind: KindInt},
			{Header: "Average", Column: "average", Kind: KindFloat},
			{Header: "180", Column: "one_eighty", Kind: KindInt},
			{Header: "171", Column: "one_seventy_one", Kind: KindInt},
			{Header: "HighCloser", Column: "high_closer", Kind: KindInt},
			{Header: "Winner", Column: "winner", Kind: KindInt, ZeroDefault: true},
			{Header: "Block", Column: "block", Kind: KindText},
			{Header: "Season", Column: "season", Kind: KindText},
		},
	},
	{
		Table: "vikings_matches",
		Label: "Vikings - Matches",
		Club:  "Vikings",
		Fields: []Field{
			{Header: "Date", Column: "date", Kind: KindText},
			{Header: "Player", Column: "player", Kind: KindText},
			{Header: "Against", Column: "against", Kind: KindText},
			{Header: "Legs", Column: "legs", Kind: KindInt},
			{Header: "Ave", Column: "ave", Kind: KindFloat},
			{Header: "Result", Column: "result", Kind: KindText},
			{Header: "Season", Column: "season", Kind: KindText},
		},
	},
	{
		Table: "vikings_members",
		Label: "Vikings - Members",
		Club:  "Vikings",
		Fields: []Field{
			{Header: "Name", Column: "name", Kind: KindText},
			{Header: "Surname", Column: "surname", Kind: KindText},
			{Header: "Member", Column: "member", Kind: KindText},
			{Header: "Season", Column: "season", Kind: KindInt},
			{Header: "Color", Column: "color", Kind: KindText},
		},
	},
	{
		Table: "jda_stats",
		Label: "JDA - Main Statistics",
		Club:  "JDA",
		Fields: []Field{
			{Header: "Date", Column: "date", Kind: KindText},
			{Header: "Player", Column: "player", Kind: KindText},
			{Header: "Bonus", Column: "bonus", Kind: KindInt},
			{Header: "Points", Column: "points", Kind: KindInt},
			{Header: "Games", Column: "games", Kind: KindInt},
			{Header: "Won", Column: "won", Kind: KindInt},
			{Header: "Lost", Column: "lost", Kind: KindInt},
			{Header: "Darts", Column: "darts", Kind: KindInt},
			{Header: "ScoreLeft", Column: "score_left", Kind: KindInt},
			{Header: "Average", Column: "average", Kind: KindFloat},
			{Header: "180s", Column: "one_eighty", Kind: KindInt},
			{Header: "171s", Column: "one_seventy_one", Kind: KindInt},
			{Header: "Closer", Column: "closer", Kind: KindInt},
			{Header: "Closer1", Column: "closer1", Kind: KindInt, ZeroDefault: true},
			{Header: "Closer2", Column: "closer2", Kind: KindInt, ZeroDefault: true},
			{Header: "BlockPosition", Column: "block_position", Kind: KindInt},
			{Header: "Block", Column: "block", Kind: KindText},
			{Header: "Season", Column: "season", Kind: KindText},
		},
	},
	{
		Table: "jda_legs",
		Label: "JDA - Individual Legs",
		Club:  "JDA",
		Fields: []Field{
			{Header: "Date", Column: "date", Kind: KindText},
			{Header: "Player", Column: "player", Kind: KindText},
			{Header: "Opponent", Column: "opponent", Kind: KindText},
			{Header: "Darts", Column: "darts", Kind: KindInt},
			{Header: "ScoreLeft", Column: "score_left", Kind: KindInt},
			{Header: "Result", Column: "result", Kind: KindText},
		},
	},
	{
		Table: "jda_matches",
		Label: "JDA - Matches",
		Club:  "JDA",
		Fields: []Field{
			{Header: "Date", Column: "date", Kind: KindText},
			{Header: "Player", Column: "player", Kind: KindText},
			{Header: "Opponent", Column: "opponent", Kind: KindText},
			{Header: "Legs", Column: "legs", Kind: KindInt},
			{Header: "Ave", Column: "ave", Kind: KindFloat},
			{Header: "Result", Column: "result", Kind: KindText},
			{Header: "Season", Column: "season", Kind: KindText},
		},
	},
}

// Lookup returns the schema for a target table name.
func Lookup(table string) (Schema, bool) {
	for _, s := range schemas {
		if s.Table == table {
			return s, true
		}
	}
	return Schema{}, false
}

// Schemas returns all upload targets, in display order.
func Schemas() []Schema {
	out := make([]Schema, len(schemas))
	copy(out, schemas)
	return out
}
