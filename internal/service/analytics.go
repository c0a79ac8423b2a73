package service

import (
	"context"
	"fmt"
	"sort"

	"darts-tracker/internal/constants"
	"darts-tracker/internal/domain"
	"darts-tracker/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type AnalyticsService struct {
	profiles *repository.ProfileRepository
	clubs    *repository.ClubRepository
	stats    *repository.StatsRepository
	logger   zerolog.Logger
}

func NewAnalyticsService(profiles *repository.ProfileRepository, clubs *repository.ClubRepository, statsRepo *repository.StatsRepository, logger zerolog.Logger) *AnalyticsService {
	return &AnalyticsService{profiles: profiles, clubs: clubs, stats: statsRepo, logger: logger}
}

type GrowthPoint struct {
	Month   string `json:"month"`
	Signups int    `json:"signups"`
}

type ClubActivity struct {
	Prefix     string           `json:"prefix"`
	Sessions   int              `json:"sessions"`
	Matches    int              `json:"matches"`
	TopPlayers []domain.Session `json:"top_players"`
}

type AnalyticsReport struct {
	TotalUsers       int            `json:"total_users"`
	TotalMemberships int            `json:"total_memberships"`
	TotalClubs       int            `json:"total_clubs"`
	Growth           []GrowthPoint  `json:"growth"`
	Clubs            []ClubActivity `json:"clubs"`
}

// Report assembles the admin analytics page. Counts, growth buckets, and
// per-family activity are independent reads and run concurrently.
func (s *AnalyticsService) Report(ctx context.Context) (*AnalyticsReport, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	report := &AnalyticsReport{}
	families := repository.Families()
	activities := make([]ClubActivity, len(families))

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		report.TotalUsers, err = s.profiles.Count(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		report.TotalMemberships, err = s.clubs.MembershipCount(gCtx)
		return err
	})
	g.Go(func() error {
		clubs, err := s.clubs.List(gCtx)
		if err != nil {
			return err
		}
		report.TotalClubs = len(clubs)
		return nil
	})
	g.Go(func() error {
		profiles, err := s.profiles.SignupDates(gCtx)
		if err != nil {
			return err
		}
		report.Growth = monthlyGrowth(profiles)
		return nil
	})
	for i, fam := range families {
		i, fam := i, fam
		g.Go(func() error {
			sessions, err := s.stats.CountRows(gCtx, fam.Sessions)
			if err != nil {
				return err
			}
			matches, err := s.stats.CountRows(gCtx, fam.Matches)
			if err != nil {
				return err
			}
			top, err := s.stats.TopPlayersByAverage(gCtx, fam, constants.AnalyticsTopPlayers)
			if err != nil {
				return err
			}
			activities[i] = ClubActivity{
				Prefix:     fam.Prefix,
				Sessions:   sessions,
				Matches:    matches,
				TopPlayers: top,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to build analytics report: %w", err)
	}

	report.Clubs = activities
	return report, nil
}

// monthlyGrowth buckets signups by calendar month, oldest first.
func monthlyGrowth(profiles []domain.Profile) []GrowthPoint {
	counts := make(map[string]int)
	for _, p := range profiles {
		counts[p.CreatedAt.Format("2006-01")]++
	}

	months := make([]string, 0, len(counts))
	for m := range counts {
		months = append(months, m)
	}
	sort.Strings(months)

	points := make([]GrowthPoint, 0, len(months))
	for _, m := range months {
		points = append(points, GrowthPoint{Month: m, Signups: counts[m]})
	}
	return points
}
