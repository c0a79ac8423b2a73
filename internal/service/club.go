package service

import (
	"context"
	"fmt"

	"darts-tracker/internal/constants"
	"darts-tracker/internal/domain"
	"darts-tracker/internal/repository"

	"github.com/rs/zerolog"
)

type ClubService struct {
	clubs  *repository.ClubRepository
	logger zerolog.Logger
}

func NewClubService(clubs *repository.ClubRepository, logger zerolog.Logger) *ClubService {
	return &ClubService{clubs: clubs, logger: logger}
}

type ClubResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	DatabasePrefix string `json:"database_prefix"`
	MemberCount    int    `json:"member_count"`
	CreatedAt      string `json:"created_at"`
}

func clubResponse(c domain.Club) ClubResponse {
	return ClubResponse{
		ID:             c.ID,
		Name:           c.Name,
		Description:    c.Description,
		DatabasePrefix: c.DatabasePrefix,
		MemberCount:    c.MemberCount,
		CreatedAt:      c.CreatedAt.Format("2006-01-02"),
	}
}

func (s *ClubService) ListClubs(ctx context.Context) ([]ClubResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	clubs, err := s.clubs.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]ClubResponse, 0, len(clubs))
	for _, c := range clubs {
		out = append(out, clubResponse(c))
	}
	return out, nil
}

func (s *ClubService) GetClub(ctx context.Context, id string) (*ClubResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	club, err := s.clubs.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := clubResponse(*club)
	return &resp, nil
}

// CreateClub registers a club. The prefix must name a known table family; a
// club without statistic tables behind it would render every page empty.
func (s *ClubService) CreateClub(ctx context.Context, name, description, prefix string) (*ClubResponse, error) {
	if name == "" {
		return nil, fmt.Errorf("club name is required")
	}
	if _, ok := repository.FamilyFor(prefix); !ok {
		return nil, fmt.Errorf("unknown database prefix %q", prefix)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	club, err := s.clubs.Create(ctx, name, description, prefix)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("club_id", club.ID).Str("name", name).Str("prefix", prefix).Msg("club created")
	resp := clubResponse(*club)
	return &resp, nil
}

func (s *ClubService) DeleteClub(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if err := s.clubs.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("club_id", id).Msg("club deleted")
	return nil
}
