package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"darts-tracker/internal/domain"

	"github.com/rs/zerolog"
)

var ErrNotFound = errors.New("not found")

type ProfileRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewProfileRepository(sqlDB *sql.DB, logger zerolog.Logger) *ProfileRepository {
	return &ProfileRepository{db: sqlDB, logger: logger}
}

func (r *ProfileRepository) Get(ctx context.Context, id string) (*domain.Profile, error) {
	query := `SELECT id, email, display_name, role, created_at
		FROM profiles WHERE id = ?`

	var p domain.Profile
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Email, &p.DisplayName, &p.Role, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query profile: %w", err)
	}
	return &p, nil
}

// Ensure inserts the profile if the id is unseen and returns the stored row.
// Existing rows keep their role; email and display name are refreshed from the
// identity service on every call.
func (r *ProfileRepository) Ensure(ctx context.Context, id, email, displayName string) (*domain.Profile, error) {
	query := `INSERT INTO profiles (id, email, display_name)
		VALUES (?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET email = excluded.email, display_name = excluded.display_name`

	if _, err := r.db.ExecContext(ctx, query, id, email, displayName); err != nil {
		return nil, fmt.Errorf("failed to upsert profile: %w", err)
	}

	r.logger.Debug().Str("user_id", id).Msg("profile ensured")
	return r.Get(ctx, id)
}

func (r *ProfileRepository) List(ctx context.Context) ([]domain.Profile, error) {
	query := `SELECT id, email, display_name, role, created_at
		FROM profiles ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		var p domain.Profile
		if err := rows.Scan(&p.ID, &p.Email, &p.DisplayName, &p.Role, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan profile row: %w", err)
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (r *ProfileRepository) UpdateRole(ctx context.Context, id, role string) error {
	res, err := r.db.ExecContext(ctx, "UPDATE profiles SET role = ? WHERE id = ?", role, id)
	if err != nil {
		return fmt.Errorf("failed to update profile role: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProfileRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM profiles").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count profiles: %w", err)
	}
	return count, nil
}

// SignupDates returns every profile's creation time, newest first, for the
// analytics growth buckets.
func (r *ProfileRepository) SignupDates(ctx context.Context) ([]domain.Profile, error) {
	query := `SELECT id, created_at FROM profiles ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query signup dates: %w", err)
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		var p domain.Profile
		if err := rows.Scan(&p.ID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan signup row: %w", err)
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}
