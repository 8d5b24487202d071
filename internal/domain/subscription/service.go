package subscription

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Authorizer answers whether a user may subscribe to a calendar. Implemented
// by the access evaluator; kept as a local interface to avoid an import
// cycle.
type Authorizer interface {
	CanSubscribe(ctx context.Context, userID, calendarID uuid.UUID) error
}

// Service defines the business logic interface for the subscription ledger
type Service interface {
	Subscribe(ctx context.Context, userID, calendarID uuid.UUID) (*Subscription, error)
	Unsubscribe(ctx context.Context, userID, calendarID uuid.UUID) error
	SetActive(ctx context.Context, userID, calendarID uuid.UUID, active bool) error
	SetVisibility(ctx context.Context, userID uuid.UUID, calendarIDs []uuid.UUID, onCalendar bool) error
	ListSubscriptions(ctx context.Context, userID uuid.UUID) ([]Subscription, error)
	ListActiveSubscriptions(ctx context.Context, userID uuid.UUID) ([]Subscription, error)
}

type service struct {
	repo   Repository
	authz  Authorizer
	logger *zap.Logger
}

// NewService creates a new subscription service instance
func NewService(repo Repository, authz Authorizer, logger *zap.Logger) Service {
	return &service{repo: repo, authz: authz, logger: logger}
}

func (s *service) Subscribe(ctx context.Context, userID, calendarID uuid.UUID) (*Subscription, error) {
	if err := s.authz.CanSubscribe(ctx, userID, calendarID); err != nil {
		return nil, err
	}

	sub := &Subscription{
		UserID:       userID,
		CalendarID:   calendarID,
		IsActive:     true,
		IsVisible:    true,
		IsOnCalendar: true,
	}
	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, err
	}

	s.logger.Info("calendar subscribed",
		zap.String("user_id", userID.String()),
		zap.String("calendar_id", calendarID.String()))
	return sub, nil
}

func (s *service) Unsubscribe(ctx context.Context, userID, calendarID uuid.UUID) error {
	if err := s.repo.Delete(ctx, userID, calendarID); err != nil {
		return err
	}
	s.logger.Info("calendar unsubscribed",
		zap.String("user_id", userID.String()),
		zap.String("calendar_id", calendarID.String()))
	return nil
}

func (s *service) SetActive(ctx context.Context, userID, calendarID uuid.UUID, active bool) error {
	return s.repo.SetActive(ctx, userID, calendarID, active)
}

func (s *service) SetVisibility(ctx context.Context, userID uuid.UUID, calendarIDs []uuid.UUID, onCalendar bool) error {
	return s.repo.ReplaceVisibility(ctx, userID, calendarIDs, onCalendar)
}

func (s *service) ListSubscriptions(ctx context.Context, userID uuid.UUID) ([]Subscription, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) ListActiveSubscriptions(ctx context.Context, userID uuid.UUID) ([]Subscription, error) {
	return s.repo.ListActiveByUser(ctx, userID)
}
