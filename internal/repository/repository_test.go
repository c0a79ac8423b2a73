package repository

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	"darts-tracker/internal/config"
	"darts-tracker/internal/constants"
	"darts-tracker/internal/database"
	"darts-tracker/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestDB opens a throwaway sqlite file and runs the real migrations
// against it, so repository tests exercise the same schema production sees.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := database.New(&config.Config{DBPath: dbPath}, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNotificationFeedCapsAtLimit(t *testing.T) {
	db := newTestDB(t)
	repo := NewNotificationRepository(db, zerolog.Nop())
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		_, err := repo.Create(ctx, domain.Notification{
			Type:    "new_signup",
			Message: fmt.Sprintf("signup %d", i),
		})
		require.NoError(t, err)
	}

	feed, err := repo.Feed(ctx, constants.NotificationFeedLimit)
	require.NoError(t, err)
	assert.Len(t, feed, constants.NotificationFeedLimit)
	for _, n := range feed {
		assert.NotEmpty(t, n.ID)
		assert.False(t, n.Read)
	}

	unread, err := repo.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 12, unread, "the feed cap hides rows but does not read them")
}

func TestNotificationMarkRead(t *testing.T) {
	db := newTestDB(t)
	repo := NewNotificationRepository(db, zerolog.Nop())
	ctx := context.Background()

	first, err := repo.Create(ctx, domain.Notification{Type: "club_assignment", Message: "moved"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, domain.Notification{Type: "new_signup", Message: "joined"})
	require.NoError(t, err)

	require.NoError(t, repo.MarkRead(ctx, first.ID))
	unread, err := repo.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, unread)

	assert.ErrorIs(t, repo.MarkRead(ctx, "no-such-id"), ErrNotFound)

	require.NoError(t, repo.MarkAllRead(ctx))
	unread, err = repo.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, unread)
}

func TestAssignClubReplacesMembership(t *testing.T) {
	db := newTestDB(t)
	clubs := NewClubRepository(db, zerolog.Nop())
	profiles := NewProfileRepository(db, zerolog.Nop())
	ctx := context.Background()

	_, err := profiles.Ensure(ctx, "user-1", "one@example.com", "Player One")
	require.NoError(t, err)
	vikings, err := clubs.Create(ctx, "Vikings", "", "vikings")
	require.NoError(t, err)
	jda, err := clubs.Create(ctx, "JDA", "", "jda")
	require.NoError(t, err)

	require.NoError(t, clubs.AssignClub(ctx, "user-1", vikings.ID))
	memberships, err := clubs.MembershipsFor(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, memberships, 1)
	assert.Equal(t, vikings.ID, memberships[0].ClubID)
	assert.Equal(t, "Vikings", memberships[0].ClubName)

	// Reassigning swaps the row rather than adding a second one.
	require.NoError(t, clubs.AssignClub(ctx, "user-1", jda.ID))
	memberships, err = clubs.MembershipsFor(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, memberships, 1)
	assert.Equal(t, jda.ID, memberships[0].ClubID)

	// An empty club id clears the membership entirely.
	require.NoError(t, clubs.AssignClub(ctx, "user-1", ""))
	memberships, err = clubs.MembershipsFor(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, memberships)

	count, err := clubs.MembershipCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMembershipUniquePerUserAndClub(t *testing.T) {
	db := newTestDB(t)
	clubs := NewClubRepository(db, zerolog.Nop())
	profiles := NewProfileRepository(db, zerolog.Nop())
	ctx := context.Background()

	_, err := profiles.Ensure(ctx, "user-1", "one@example.com", "Player One")
	require.NoError(t, err)
	club, err := clubs.Create(ctx, "Vikings", "", "vikings")
	require.NoError(t, err)
	require.NoError(t, clubs.AssignClub(ctx, "user-1", club.ID))

	_, err = db.ExecContext(ctx,
		"INSERT INTO club_memberships (id, user_id, club_id) VALUES (?, ?, ?)",
		"dup-row", "user-1", club.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNIQUE")
}

func TestProfileEnsureKeepsRole(t *testing.T) {
	db := newTestDB(t)
	profiles := NewProfileRepository(db, zerolog.Nop())
	ctx := context.Background()

	created, err := profiles.Ensure(ctx, "user-1", "old@example.com", "Player One")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, created.Role)

	require.NoError(t, profiles.UpdateRole(ctx, "user-1", domain.RoleAdmin))

	// A repeat login refreshes contact details but never the granted role.
	updated, err := profiles.Ensure(ctx, "user-1", "new@example.com", "Player One")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, updated.Role)
	assert.Equal(t, "new@example.com", updated.Email)

	count, err := profiles.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
