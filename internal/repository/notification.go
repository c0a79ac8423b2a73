package repository

import (
	"context"
	"database/sql"
	"fmt"

	"darts-tracker/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type NotificationRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewNotificationRepository(sqlDB *sql.DB, logger zerolog.Logger) *NotificationRepository {
	return &NotificationRepository{db: sqlDB, logger: logger}
}

func (r *NotificationRepository) Create(ctx context.Context, n domain.Notification) (*domain.Notification, error) {
	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate notification id: %w", err)
	}

	query := `INSERT INTO admin_notifications (id, type, message, user_id, user_email, user_name)
		VALUES (?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, id, n.Type, n.Message, n.UserID, n.UserEmail, n.UserName); err != nil {
		return nil, fmt.Errorf("failed to insert notification: %w", err)
	}

	r.logger.Debug().Str("notification_id", id).Str("type", n.Type).Msg("notification row inserted")
	return r.get(ctx, id)
}

func (r *NotificationRepository) get(ctx context.Context, id string) (*domain.Notification, error) {
	query := `SELECT id, type, message, COALESCE(user_id, ''), COALESCE(user_email, ''),
			COALESCE(user_name, ''), read, created_at
		FROM admin_notifications WHERE id = ?`

	var n domain.Notification
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&n.ID, &n.Type, &n.Message, &n.UserID, &n.UserEmail, &n.UserName, &n.Read, &n.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query notification: %w", err)
	}
	return &n, nil
}

// Feed returns the newest notifications, read or not.
func (r *NotificationRepository) Feed(ctx context.Context, limit int) ([]domain.Notification, error) {
	query := `SELECT id, type, message, COALESCE(user_id, ''), COALESCE(user_email, ''),
			COALESCE(user_name, ''), read, created_at
		FROM admin_notifications ORDER BY created_at DESC, id DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var feed []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.Type, &n.Message, &n.UserID, &n.UserEmail, &n.UserName, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification row: %w", err)
		}
		feed = append(feed, n)
	}
	return feed, rows.Err()
}

func (r *NotificationRepository) UnreadCount(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM admin_notifications WHERE read = 0").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "UPDATE admin_notifications SET read = 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "UPDATE admin_notifications SET read = 1 WHERE read = 0"); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}
