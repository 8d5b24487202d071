package comment

import (
	"context"

	"github.com/PoodingDev/Evento-BE/internal/domain/event"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Authorizer checks write access to a calendar. Implemented by the access
// evaluator; kept local to avoid an import cycle.
type Authorizer interface {
	CanWriteCalendar(ctx context.Context, userID, calendarID uuid.UUID) error
}

// EventGetter resolves an event so the comment store can find its calendar.
type EventGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*event.Event, error)
}

// Service defines the business logic interface for the comment store
type Service interface {
	CreateComment(ctx context.Context, userID, eventID uuid.UUID, content string) (*Comment, error)
	ListComments(ctx context.Context, userID, eventID uuid.UUID) ([]Comment, error)
	UpdateComment(ctx context.Context, userID uuid.UUID, commentID uint, content string) (*Comment, error)
	DeleteComment(ctx context.Context, userID uuid.UUID, commentID uint) error
}

type service struct {
	repo   Repository
	events EventGetter
	authz  Authorizer
	logger *zap.Logger
}

// NewService creates a new comment service instance
func NewService(repo Repository, events EventGetter, authz Authorizer, logger *zap.Logger) Service {
	return &service{repo: repo, events: events, authz: authz, logger: logger}
}

// requireWrite resolves the event and checks calendar write access.
func (s *service) requireWrite(ctx context.Context, userID, eventID uuid.UUID) (*event.Event, error) {
	ev, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.CanWriteCalendar(ctx, userID, ev.CalendarID); err != nil {
		return nil, err
	}
	return ev, nil
}

func (s *service) CreateComment(ctx context.Context, userID, eventID uuid.UUID, content string) (*Comment, error) {
	if _, err := s.requireWrite(ctx, userID, eventID); err != nil {
		return nil, err
	}

	c := &Comment{
		EventID:  eventID,
		AuthorID: userID,
		Content:  content,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		s.logger.Error("failed to create comment", zap.Error(err))
		return nil, err
	}
	return c, nil
}

func (s *service) ListComments(ctx context.Context, userID, eventID uuid.UUID) ([]Comment, error) {
	if _, err := s.requireWrite(ctx, userID, eventID); err != nil {
		return nil, err
	}
	return s.repo.ListByEvent(ctx, eventID)
}

func (s *service) UpdateComment(ctx context.Context, userID uuid.UUID, commentID uint, content string) (*Comment, error) {
	c, err := s.repo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireWrite(ctx, userID, c.EventID); err != nil {
		return nil, err
	}

	c.Content = content
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) DeleteComment(ctx context.Context, userID uuid.UUID, commentID uint) error {
	c, err := s.repo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if _, err := s.requireWrite(ctx, userID, c.EventID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, commentID)
}
