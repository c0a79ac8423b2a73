package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"darts-tracker/internal/domain"
	"darts-tracker/internal/ingest"

	"github.com/rs/zerolog"
)

// StatsRepository reads and writes the per-club statistic tables. Callers pass
// the table family resolved from the club's database_prefix; the queries
// themselves are family-agnostic.
type StatsRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewStatsRepository(sqlDB *sql.DB, logger zerolog.Logger) *StatsRepository {
	return &StatsRepository{db: sqlDB, logger: logger}
}

// SessionFilter narrows a session query. Zero values mean "no filter".
type SessionFilter struct {
	Player      string
	Season      string
	Limit       int
	RecentFirst bool
}

func (r *StatsRepository) Sessions(ctx context.Context, fam TableFamily, filter SessionFilter) ([]domain.Session, error) {
	var sb strings.Builder
	sb.WriteString("SELECT * FROM (")
	sb.WriteString(fam.sessionSelect)
	sb.WriteString(")")

	var conds []string
	var args []any
	if filter.Player != "" {
		conds = append(conds, "player = ?")
		args = append(args, filter.Player)
	}
	if filter.Season != "" {
		conds = append(conds, "season = ?")
		args = append(args, filter.Season)
	}
	if len(conds) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conds, " AND "))
	}
	if filter.RecentFirst {
		sb.WriteString(" ORDER BY date DESC, id DESC")
	} else {
		sb.WriteString(" ORDER BY date ASC, id ASC")
	}
	if filter.Limit > 0 {
		sb.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.Session
	for rows.Next() {
		var s domain.Session
		if err := rows.Scan(
			&s.ID, &s.Date, &s.Player, &s.Points, &s.Bonus, &s.Games,
			&s.Won, &s.Lost, &s.Darts, &s.ScoreLeft, &s.Average,
			&s.OneEighty, &s.OneSeventyOne, &s.HighCloser, &s.Winner,
			&s.BlockPosition, &s.Block, &s.Season,
		); err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func (r *StatsRepository) Matches(ctx context.Context, fam TableFamily, filter SessionFilter) ([]domain.Match, error) {
	var sb strings.Builder
	sb.WriteString("SELECT * FROM (")
	sb.WriteString(fam.matchSelect)
	sb.WriteString(")")

	var conds []string
	var args []any
	if filter.Player != "" {
		conds = append(conds, "player = ?")
		args = append(args, filter.Player)
	}
	if filter.Season != "" {
		conds = append(conds, "season = ?")
		args = append(args, filter.Season)
	}
	if len(conds) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conds, " AND "))
	}
	if filter.RecentFirst {
		sb.WriteString(" ORDER BY date DESC, id DESC")
	} else {
		sb.WriteString(" ORDER BY date ASC, id ASC")
	}
	if filter.Limit > 0 {
		sb.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	var matches []domain.Match
	for rows.Next() {
		var m domain.Match
		if err := rows.Scan(
			&m.ID, &m.Date, &m.Player, &m.Opponent, &m.Legs,
			&m.Average, &m.Result, &m.Season,
		); err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (r *StatsRepository) Legs(ctx context.Context, fam TableFamily, limit int) ([]domain.Leg, error) {
	if !fam.HasLegs() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT id,
			COALESCE(date, ''), COALESCE(player, ''), COALESCE(opponent, ''),
			COALESCE(darts, 0), COALESCE(score_left, 0), COALESCE(result, '')
		FROM %s ORDER BY date DESC, id DESC`, fam.Legs)
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query legs: %w", err)
	}
	defer rows.Close()

	var legs []domain.Leg
	for rows.Next() {
		var l domain.Leg
		if err := rows.Scan(&l.ID, &l.Date, &l.Player, &l.Opponent, &l.Darts, &l.ScoreLeft, &l.Result); err != nil {
			return nil, fmt.Errorf("failed to scan leg row: %w", err)
		}
		legs = append(legs, l)
	}
	return legs, rows.Err()
}

func (r *StatsRepository) Members(ctx context.Context, fam TableFamily) ([]domain.MemberLink, error) {
	query := fmt.Sprintf(`SELECT id,
			COALESCE(name, ''), COALESCE(surname, ''), COALESCE(member, ''),
			COALESCE(season, 0), COALESCE(color, ''), COALESCE(user_id, '')
		FROM %s ORDER BY name ASC, id ASC`, fam.Members)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	var members []domain.MemberLink
	for rows.Next() {
		var m domain.MemberLink
		if err := rows.Scan(&m.ID, &m.Name, &m.Surname, &m.Member, &m.Season, &m.Color, &m.UserID); err != nil {
			return nil, fmt.Errorf("failed to scan member row: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// LinkMember attaches a profile to a member-table row; an empty userID clears
// the link.
func (r *StatsRepository) LinkMember(ctx context.Context, fam TableFamily, memberID int64, userID string) error {
	query := fmt.Sprintf("UPDATE %s SET user_id = ? WHERE id = ?", fam.Members)
	var uid any
	if userID != "" {
		uid = userID
	}
	res, err := r.db.ExecContext(ctx, query, uid, memberID)
	if err != nil {
		return fmt.Errorf("failed to update member link: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// LatestSeason returns the most recent season tag present in the family's
// session table, or empty when no rows carry one.
func (r *StatsRepository) LatestSeason(ctx context.Context, fam TableFamily) (string, error) {
	query := "SELECT season FROM (" + fam.sessionSelect + ") WHERE season <> '' ORDER BY season DESC LIMIT 1"

	var season string
	err := r.db.QueryRowContext(ctx, query).Scan(&season)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query latest season: %w", err)
	}
	return season, nil
}

func (r *StatsRepository) CountRows(ctx context.Context, table string) (int, error) {
	if !knownTable(table) {
		return 0, fmt.Errorf("unknown statistic table %q", table)
	}
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count rows in %s: %w", table, err)
	}
	return count, nil
}

// TopPlayersByAverage lists the family's strongest players by their best
// session average.
func (r *StatsRepository) TopPlayersByAverage(ctx context.Context, fam TableFamily, limit int) ([]domain.Session, error) {
	query := "SELECT player, MAX(average) AS average, SUM(one_eighty) AS one_eighty FROM (" +
		fam.sessionSelect + ") WHERE player <> '' GROUP BY player ORDER BY average DESC LIMIT ?"

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top players: %w", err)
	}
	defer rows.Close()

	var players []domain.Session
	for rows.Next() {
		var s domain.Session
		if err := rows.Scan(&s.Player, &s.Average, &s.OneEighty); err != nil {
			return nil, fmt.Errorf("failed to scan top player row: %w", err)
		}
		players = append(players, s)
	}
	return players, rows.Err()
}

// InsertRows persists one normalized ingestion batch as a single multi-row
// INSERT, so a failed batch leaves nothing behind. Column order is made
// deterministic by sorting the first row's keys.
func (r *StatsRepository) InsertRows(ctx context.Context, table string, rows []ingest.Row) error {
	if len(rows) == 0 {
		return nil
	}
	if !knownTable(table) {
		return fmt.Errorf("unknown statistic table %q", table)
	}

	cols := make([]string, 0, len(rows[0]))
	for col := range rows[0] {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	placeholder := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ") + ")"
	groups := make([]string, len(rows))
	args := make([]any, 0, len(rows)*len(cols))
	for i, row := range rows {
		groups[i] = placeholder
		for _, col := range cols {
			args = append(args, row[col])
		}
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		table, strings.Join(cols, ", "), strings.Join(groups, ", "))

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert batch into %s: %w", table, err)
	}

	r.logger.Debug().
		Str("table", table).
		Int("rows", len(rows)).
		Msg("batch inserted")
	return nil
}

func knownTable(table string) bool {
	for _, fam := range Families() {
		for _, t := range fam.Tables() {
			if t == table {
				return true
			}
		}
	}
	return false
}
