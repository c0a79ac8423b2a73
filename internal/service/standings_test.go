package service

import (
	"testing"
	"time"

	"darts-tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionsBeforeLatestDropsNewestDate(t *testing.T) {
	sessions := []domain.Session{
		{Date: "2024-01-05", Player: "A"},
		{Date: "2024-01-12", Player: "A"},
		{Date: "2024-01-12", Player: "B"},
	}

	out := sessionsBeforeLatest(sessions)

	require.Len(t, out, 1)
	assert.Equal(t, "2024-01-05", out[0].Date)
}

func TestSessionsBeforeLatestEmptyInput(t *testing.T) {
	assert.Nil(t, sessionsBeforeLatest(nil))
}

func TestMonthlyGrowthBucketsAndSorts(t *testing.T) {
	mk := func(s string) time.Time {
		ts, err := time.Parse("2006-01-02", s)
		require.NoError(t, err)
		return ts
	}
	profiles := []domain.Profile{
		{CreatedAt: mk("2024-03-10")},
		{CreatedAt: mk("2024-01-05")},
		{CreatedAt: mk("2024-03-22")},
	}

	points := monthlyGrowth(profiles)

	assert.Equal(t, []GrowthPoint{
		{Month: "2024-01", Signups: 1},
		{Month: "2024-03", Signups: 2},
	}, points)
}
