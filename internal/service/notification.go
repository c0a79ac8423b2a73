package service

import (
	"context"
	"sync"

	"darts-tracker/internal/constants"
	"darts-tracker/internal/domain"
	"darts-tracker/internal/repository"

	"github.com/rs/zerolog"
)

// NotificationService persists admin notifications and fans them out to live
// subscribers. Delivery to a subscriber is best effort: a slow consumer drops
// events rather than blocking the publisher.
type NotificationService struct {
	repo   *repository.NotificationRepository
	logger zerolog.Logger

	mu          sync.Mutex
	subscribers map[chan domain.Notification]struct{}
}

func NewNotificationService(repo *repository.NotificationRepository, logger zerolog.Logger) *NotificationService {
	return &NotificationService{
		repo:        repo,
		logger:      logger,
		subscribers: make(map[chan domain.Notification]struct{}),
	}
}

type NotificationFeed struct {
	Notifications []domain.Notification `json:"notifications"`
	UnreadCount   int                   `json:"unread_count"`
}

func (s *NotificationService) Feed(ctx context.Context) (*NotificationFeed, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	feed, err := s.repo.Feed(ctx, constants.NotificationFeedLimit)
	if err != nil {
		return nil, err
	}
	unread, err := s.repo.UnreadCount(ctx)
	if err != nil {
		return nil, err
	}
	return &NotificationFeed{Notifications: feed, UnreadCount: unread}, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.repo.MarkRead(ctx, id)
}

func (s *NotificationService) MarkAllRead(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.repo.MarkAllRead(ctx)
}

// Publish stores the notification and pushes it to every live subscriber.
func (s *NotificationService) Publish(ctx context.Context, n domain.Notification) (*domain.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	stored, err := s.repo.Create(ctx, n)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	for ch := range s.subscribers {
		select {
		case ch <- *stored:
		default:
			s.logger.Warn().Str("notification_id", stored.ID).Msg("subscriber buffer full, dropping event")
		}
	}
	s.mu.Unlock()

	return stored, nil
}

// Subscribe registers a live feed consumer. The returned channel is buffered;
// the caller must call Unsubscribe when done.
func (s *NotificationService) Subscribe() chan domain.Notification {
	ch := make(chan domain.Notification, 16)
	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	s.mu.Unlock()
	return ch
}

func (s *NotificationService) Unsubscribe(ch chan domain.Notification) {
	s.mu.Lock()
	delete(s.subscribers, ch)
	s.mu.Unlock()
	close(ch)
}
