package service

import (
	"context"
	"fmt"

	"darts-tracker/internal/constants"
	"darts-tracker/internal/domain"
	"darts-tracker/internal/repository"

	"github.com/rs/zerolog"
)

type UserService struct {
	profiles      *repository.ProfileRepository
	clubs         *repository.ClubRepository
	stats         *repository.StatsRepository
	notifications *NotificationService
	logger        zerolog.Logger
}

func NewUserService(profiles *repository.ProfileRepository, clubs *repository.ClubRepository, statsRepo *repository.StatsRepository, notifications *NotificationService, logger zerolog.Logger) *UserService {
	return &UserService{profiles: profiles, clubs: clubs, stats: statsRepo, notifications: notifications, logger: logger}
}

type UserResponse struct {
	Profile     domain.Profile      `json:"profile"`
	Memberships []domain.Membership `json:"memberships"`
}

func (s *UserService) ListUsers(ctx context.Context) ([]UserResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, err
	}

	users := make([]UserResponse, 0, len(profiles))
	for _, p := range profiles {
		memberships, err := s.clubs.MembershipsFor(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		users = append(users, UserResponse{Profile: p, Memberships: memberships})
	}
	return users, nil
}

func (s *UserService) Me(ctx context.Context, profile *domain.Profile) (*UserResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	memberships, err := s.clubs.MembershipsFor(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	return &UserResponse{Profile: *profile, Memberships: memberships}, nil
}

func (s *UserService) UpdateRole(ctx context.Context, userID, role string) error {
	if role != domain.RoleUser && role != domain.RoleAdmin {
		return fmt.Errorf("invalid role %q", role)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if err := s.profiles.UpdateRole(ctx, userID, role); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", userID).Str("role", role).Msg("role updated")
	return nil
}

// AssignClub moves the user into the given club (or out of all clubs when
// clubID is empty) and records the change in the admin feed.
func (s *UserService) AssignClub(ctx context.Context, userID, clubID string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return err
	}

	message := fmt.Sprintf("%s removed from all clubs", profile.Email)
	if clubID != "" {
		club, err := s.clubs.Get(ctx, clubID)
		if err != nil {
			return err
		}
		message = fmt.Sprintf("%s assigned to %s", profile.Email, club.Name)
	}

	if err := s.clubs.AssignClub(ctx, userID, clubID); err != nil {
		return err
	}

	if _, err := s.notifications.Publish(ctx, domain.Notification{
		Type:      "club_assignment",
		Message:   message,
		UserID:    profile.ID,
		UserEmail: profile.Email,
		UserName:  profile.DisplayName,
	}); err != nil {
		// the assignment itself succeeded
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("failed to record assignment notification")
	}

	s.logger.Info().Str("user_id", userID).Str("club_id", clubID).Msg("club assignment updated")
	return nil
}

// LinkMember ties a member-table row in the club's statistic tables to a
// profile, so the player's free-text name resolves to an account. An empty
// userID clears the link.
func (s *UserService) LinkMember(ctx context.Context, clubID string, memberID int64, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	club, err := s.clubs.Get(ctx, clubID)
	if err != nil {
		return err
	}
	fam, ok := repository.FamilyFor(club.DatabasePrefix)
	if !ok {
		return fmt.Errorf("club %s has unknown database prefix %q", clubID, club.DatabasePrefix)
	}

	if userID != "" {
		if _, err := s.profiles.Get(ctx, userID); err != nil {
			return err
		}
	}

	if err := s.stats.LinkMember(ctx, fam, memberID, userID); err != nil {
		return err
	}
	s.logger.Info().Str("club_id", clubID).Int64("member_id", memberID).Str("user_id", userID).Msg("member link updated")
	return nil
}

// HandleSignup is the webhook target the identity service calls when a new
// account registers. It creates the profile eagerly and announces the signup
// to the admin feed.
func (s *UserService) HandleSignup(ctx context.Context, userID, email, name string) error {
	if userID == "" || email == "" {
		return fmt.Errorf("user id and email are required")
	}

	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	profile, err := s.profiles.Ensure(ctx, userID, email, name)
	if err != nil {
		return err
	}

	if _, err := s.notifications.Publish(ctx, domain.Notification{
		Type:      "new_signup",
		Message:   fmt.Sprintf("New user signed up: %s", email),
		UserID:    profile.ID,
		UserEmail: profile.Email,
		UserName:  profile.DisplayName,
	}); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("failed to record signup notification")
	}

	s.logger.Info().Str("user_id", userID).Str("email", email).Msg("signup processed")
	return nil
}
