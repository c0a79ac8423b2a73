package service

import (
	"context"
	"fmt"

	"darts-tracker/internal/constants"
	"darts-tracker/internal/domain"
	"darts-tracker/internal/repository"
	"darts-tracker/internal/stats"

	"github.com/rs/zerolog"
)

type StandingsService struct {
	clubs  *repository.ClubRepository
	stats  *repository.StatsRepository
	logger zerolog.Logger
}

func NewStandingsService(clubs *repository.ClubRepository, statsRepo *repository.StatsRepository, logger zerolog.Logger) *StandingsService {
	return &StandingsService{clubs: clubs, stats: statsRepo, logger: logger}
}

type StandingsResponse struct {
	Season  string                 `json:"season"`
	Entries []stats.StandingsEntry `json:"entries"`
}

// Standings ranks the season's players. Movement arrows compare against the
// table as it stood before the most recent play date: the previous table is
// recomputed from the same sessions minus the latest date's rows, so the
// comparison needs no stored snapshots and reruns are idempotent.
func (s *StandingsService) Standings(ctx context.Context, clubID, season string) (*StandingsResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	fam, err := s.family(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if season == "" || season == "current" {
		season, err = s.stats.LatestSeason(ctx, fam)
		if err != nil {
			return nil, err
		}
	}

	sessions, err := s.stats.Sessions(ctx, fam, repository.SessionFilter{Season: season})
	if err != nil {
		return nil, err
	}

	current := stats.Standings(sessions)
	previous := stats.Standings(sessionsBeforeLatest(sessions))

	return &StandingsResponse{
		Season:  season,
		Entries: stats.ApplyChanges(current, previous),
	}, nil
}

type HandicapsResponse struct {
	Season  string                `json:"season"`
	Entries []stats.HandicapEntry `json:"entries"`
}

func (s *StandingsService) Handicaps(ctx context.Context, clubID, season string) (*HandicapsResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	fam, err := s.family(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if season == "" || season == "current" {
		season, err = s.stats.LatestSeason(ctx, fam)
		if err != nil {
			return nil, err
		}
	}

	sessions, err := s.stats.Sessions(ctx, fam, repository.SessionFilter{Season: season})
	if err != nil {
		return nil, err
	}

	return &HandicapsResponse{
		Season:  season,
		Entries: stats.Handicaps(sessions, constants.HandicapMinSessions),
	}, nil
}

func (s *StandingsService) family(ctx context.Context, clubID string) (repository.TableFamily, error) {
	club, err := s.clubs.Get(ctx, clubID)
	if err != nil {
		return repository.TableFamily{}, err
	}
	fam, ok := repository.FamilyFor(club.DatabasePrefix)
	if !ok {
		return repository.TableFamily{}, fmt.Errorf("club %s has unknown database prefix %q", clubID, club.DatabasePrefix)
	}
	return fam, nil
}

// sessionsBeforeLatest drops every session played on the most recent date.
func sessionsBeforeLatest(sessions []domain.Session) []domain.Session {
	latest := stats.LatestDate(sessions)
	if latest == "" {
		return sessions
	}
	var out []domain.Session
	for _, s := range sessions {
		if s.Date != latest {
			out = append(out, s)
		}
	}
	return out
}
