package service

import (
	"context"
	"fmt"

	"darts-tracker/internal/constants"
	"darts-tracker/internal/domain"
	"darts-tracker/internal/repository"
	"darts-tracker/internal/stats"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type DashboardService struct {
	clubs  *repository.ClubRepository
	stats  *repository.StatsRepository
	logger zerolog.Logger
}

func NewDashboardService(clubs *repository.ClubRepository, statsRepo *repository.StatsRepository, logger zerolog.Logger) *DashboardService {
	return &DashboardService{clubs: clubs, stats: statsRepo, logger: logger}
}

type Dashboard struct {
	Club     ClubResponse        `json:"club"`
	Summary  stats.ClubSummary   `json:"summary"`
	Sessions []domain.Session    `json:"sessions"`
	Matches  []domain.Match      `json:"matches"`
	Members  []domain.MemberLink `json:"members"`
	Legs     []domain.Leg        `json:"legs,omitempty"`
}

func (s *DashboardService) resolveFamily(ctx context.Context, clubID string) (*domain.Club, repository.TableFamily, error) {
	club, err := s.clubs.Get(ctx, clubID)
	if err != nil {
		return nil, repository.TableFamily{}, err
	}
	fam, ok := repository.FamilyFor(club.DatabasePrefix)
	if !ok {
		return nil, repository.TableFamily{}, fmt.Errorf("club %s has unknown database prefix %q", clubID, club.DatabasePrefix)
	}
	return club, fam, nil
}

// Dashboard assembles the club landing page. The four statistic reads are
// disjoint, so they run concurrently; the summary folds over every session
// while the tables show only the most recent rows.
func (s *DashboardService) Dashboard(ctx context.Context, clubID string) (*Dashboard, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	club, fam, err := s.resolveFamily(ctx, clubID)
	if err != nil {
		return nil, err
	}

	var (
		allSessions    []domain.Session
		recentSessions []domain.Session
		recentMatches  []domain.Match
		members        []domain.MemberLink
		legs           []domain.Leg
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		allSessions, err = s.stats.Sessions(gCtx, fam, repository.SessionFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		recentSessions, err = s.stats.Sessions(gCtx, fam, repository.SessionFilter{
			Limit: constants.DashboardRowLimit, RecentFirst: true,
		})
		return err
	})
	g.Go(func() error {
		var err error
		recentMatches, err = s.stats.Matches(gCtx, fam, repository.SessionFilter{
			Limit: constants.DashboardRowLimit, RecentFirst: true,
		})
		return err
	})
	g.Go(func() error {
		var err error
		members, err = s.stats.Members(gCtx, fam)
		return err
	})
	if fam.HasLegs() {
		g.Go(func() error {
			var err error
			legs, err = s.stats.Legs(gCtx, fam, constants.DashboardRowLimit)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load dashboard data: %w", err)
	}

	return &Dashboard{
		Club:     clubResponse(*club),
		Summary:  stats.Summarize(allSessions),
		Sessions: recentSessions,
		Matches:  recentMatches,
		Members:  members,
		Legs:     legs,
	}, nil
}

type PlayerSummary struct {
	Player     string                `json:"player"`
	Season     string                `json:"season"`
	Stats      stats.PlayerStats     `json:"stats"`
	Trend      []stats.TrendPoint    `json:"trend"`
	Opponents  []stats.OpponentTally `json:"opponents"`
	TopMatches []stats.TopMatch      `json:"top_matches"`
	Sessions   []domain.Session      `json:"sessions"`
}

// PlayerSummary builds one player's season page. A season of "current" or ""
// resolves to the latest season present in the club's session table.
func (s *DashboardService) PlayerSummary(ctx context.Context, clubID, player, season string) (*PlayerSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	_, fam, err := s.resolveFamily(ctx, clubID)
	if err != nil {
		return nil, err
	}

	if season == "" || season == "current" {
		season, err = s.stats.LatestSeason(ctx, fam)
		if err != nil {
			return nil, err
		}
	}

	var (
		sessions []domain.Session
		matches  []domain.Match
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sessions, err = s.stats.Sessions(gCtx, fam, repository.SessionFilter{Player: player, Season: season})
		return err
	})
	g.Go(func() error {
		var err error
		matches, err = s.stats.Matches(gCtx, fam, repository.SessionFilter{Player: player, Season: season})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load player data: %w", err)
	}

	return &PlayerSummary{
		Player:     player,
		Season:     season,
		Stats:      stats.PlayerSeason(sessions),
		Trend:      stats.WeeklyAverages(sessions),
		Opponents:  stats.TopOpponents(matches, constants.TopOpponentLimit),
		TopMatches: stats.TopMatches(matches, constants.TopMatchLimit),
		Sessions:   sessions,
	}, nil
}
