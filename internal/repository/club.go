package repository

import (
	"context"
	"database/sql"
	"fmt"

	"darts-tracker/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type ClubRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewClubRepository(sqlDB *sql.DB, logger zerolog.Logger) *ClubRepository {
	return &ClubRepository{db: sqlDB, logger: logger}
}

func (r *ClubRepository) List(ctx context.Context) ([]domain.Club, error) {
	query := `SELECT c.id, c.name, c.description, c.database_prefix, c.created_at,
			(SELECT COUNT(*) FROM club_memberships m WHERE m.club_id = c.id) AS member_count
		FROM clubs c ORDER BY c.name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query clubs: %w", err)
	}
	defer rows.Close()

	var clubs []domain.Club
	for rows.Next() {
		var c domain.Club
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.DatabasePrefix, &c.CreatedAt, &c.MemberCount); err != nil {
			return nil, fmt.Errorf("failed to scan club row: %w", err)
		}
		clubs = append(clubs, c)
	}
	return clubs, rows.Err()
}

func (r *ClubRepository) Get(ctx context.Context, id string) (*domain.Club, error) {
	query := `SELECT id, name, description, database_prefix, created_at
		FROM clubs WHERE id = ?`

	var c domain.Club
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Description, &c.DatabasePrefix, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query club: %w", err)
	}
	return &c, nil
}

func (r *ClubRepository) Create(ctx context.Context, name, description, prefix string) (*domain.Club, error) {
	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate club id: %w", err)
	}

	query := `INSERT INTO clubs (id, name, description, database_prefix) VALUES (?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, id, name, description, prefix); err != nil {
		return nil, fmt.Errorf("failed to insert club: %w", err)
	}

	r.logger.Debug().Str("club_id", id).Str("prefix", prefix).Msg("club row inserted")
	return r.Get(ctx, id)
}

func (r *ClubRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM clubs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete club: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ClubRepository) MembershipsFor(ctx context.Context, userID string) ([]domain.Membership, error) {
	query := `SELECT m.id, m.user_id, m.club_id, c.name, m.joined_at
		FROM club_memberships m
		JOIN clubs c ON c.id = m.club_id
		WHERE m.user_id = ?
		ORDER BY m.joined_at ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query memberships: %w", err)
	}
	defer rows.Close()

	var memberships []domain.Membership
	for rows.Next() {
		var m domain.Membership
		if err := rows.Scan(&m.ID, &m.UserID, &m.ClubID, &m.ClubName, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan membership row: %w", err)
		}
		memberships = append(memberships, m)
	}
	return memberships, rows.Err()
}

// AssignClub replaces the user's memberships with the single given club, or
// clears them when clubID is empty. Both steps run in one transaction so a
// failed insert cannot leave the user clubless.
func (r *ClubRepository) AssignClub(ctx context.Context, userID, clubID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM club_memberships WHERE user_id = ?", userID); err != nil {
		return fmt.Errorf("failed to clear memberships: %w", err)
	}

	if clubID != "" {
		id, err := gonanoid.New()
		if err != nil {
			return fmt.Errorf("failed to generate membership id: %w", err)
		}
		query := `INSERT INTO club_memberships (id, user_id, club_id) VALUES (?, ?, ?)`
		if _, err := tx.ExecContext(ctx, query, id, userID, clubID); err != nil {
			return fmt.Errorf("failed to insert membership: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit membership change: %w", err)
	}

	r.logger.Debug().Str("user_id", userID).Str("club_id", clubID).Msg("membership replaced")
	return nil
}

func (r *ClubRepository) MembershipCount(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM club_memberships").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count memberships: %w", err)
	}
	return count, nil
}
