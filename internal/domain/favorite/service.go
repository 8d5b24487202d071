package favorite

import (
	"context"
	"time"

	"github.com/PoodingDev/Evento-BE/internal/domain/event"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventGetter resolves an event; a missing event makes AddFavorite fail with
// NotFound before any row is written.
type EventGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*event.Event, error)
}

// Service defines the business logic interface for favorites
type Service interface {
	AddFavorite(ctx context.Context, userID, eventID uuid.UUID, easySidebar bool) (*FavoriteEvent, error)
	RemoveFavorite(ctx context.Context, userID, eventID uuid.UUID) error
	ListFavorites(ctx context.Context, userID uuid.UUID) ([]FavoriteView, error)
	SetEasySidebar(ctx context.Context, userID, eventID uuid.UUID, easy bool) error
}

type service struct {
	repo   Repository
	events EventGetter
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a new favorite service instance
func NewService(repo Repository, events EventGetter, logger *zap.Logger) Service {
	return &service{repo: repo, events: events, logger: logger, now: time.Now}
}

func (s *service) AddFavorite(ctx context.Context, userID, eventID uuid.UUID, easySidebar bool) (*FavoriteEvent, error) {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	f := &FavoriteEvent{
		UserID:      userID,
		EventID:     eventID,
		EasySidebar: easySidebar,
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	s.logger.Info("favorite added",
		zap.String("user_id", userID.String()),
		zap.String("event_id", eventID.String()))
	return f, nil
}

func (s *service) RemoveFavorite(ctx context.Context, userID, eventID uuid.UUID) error {
	return s.repo.Delete(ctx, userID, eventID)
}

func (s *service) ListFavorites(ctx context.Context, userID uuid.UUID) ([]FavoriteView, error) {
	views, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	today := s.now()
	for i := range views {
		views[i].DDay = DDay(views[i].StartTime, today)
	}
	return views, nil
}

func (s *service) SetEasySidebar(ctx context.Context, userID, eventID uuid.UUID, easy bool) error {
	return s.repo.SetEasySidebar(ctx, userID, eventID, easy)
}
