package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/PoodingDev/Evento-BE/internal/domain/apperrors"
	"github.com/PoodingDev/Evento-BE/internal/infrastructure/cache"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Authorizer answers event-level permission questions. Implemented by the
// access evaluator; kept local to avoid an import cycle.
type Authorizer interface {
	CanWriteEvent(ctx context.Context, userID, calendarID uuid.UUID) error
	CanReadEvent(ctx context.Context, userID, calendarID uuid.UUID, eventPublic bool) error
}

// CreateEventInput carries the fields accepted when creating an event
type CreateEventInput struct {
	CalendarID  uuid.UUID
	Title       string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	Visibility  Visibility
	Location    string
}

// UpdateEventInput carries the updatable fields; nil means keep current
type UpdateEventInput struct {
	Title       *string
	Description *string
	StartTime   *time.Time
	EndTime     *time.Time
	Visibility  *Visibility
	Location    *string
}

// Service defines the business logic interface for the event store
type Service interface {
	CreateEvent(ctx context.Context, userID uuid.UUID, input CreateEventInput) (*Event, error)
	GetEvent(ctx context.Context, userID, eventID uuid.UUID) (*Event, error)
	UpdateEvent(ctx context.Context, userID, eventID uuid.UUID, input UpdateEventInput) (*Event, error)
	DeleteEvent(ctx context.Context, userID, eventID uuid.UUID) error
	ListCalendarEvents(ctx context.Context, userID, calendarID uuid.UUID) ([]Event, error)
	ListPublicEvents(ctx context.Context) ([]Event, error)
	ListVisibleEvents(ctx context.Context, userID uuid.UUID) ([]Event, error)
	ListActiveCalendarEvents(ctx context.Context, userID uuid.UUID) ([]Event, error)
	UploadEvents(ctx context.Context, userID uuid.UUID, upload Upload) (*UploadReport, error)
}

type service struct {
	repo          Repository
	authz         Authorizer
	redis         *cache.RedisClient
	rejectOverlap bool
	logger        *zap.Logger
}

// NewService creates a new event service instance
func NewService(repo Repository, authz Authorizer, redis *cache.RedisClient, rejectOverlap bool, logger *zap.Logger) Service {
	return &service{
		repo:          repo,
		authz:         authz,
		redis:         redis,
		rejectOverlap: rejectOverlap,
		logger:        logger,
	}
}

func (s *service) invalidateCalendar(ctx context.Context, calendarID uuid.UUID) {
	if s.redis == nil {
		return
	}
	pattern := fmt.Sprintf("events:calendar:%s*", calendarID)
	if err := s.redis.ClearByPattern(ctx, pattern); err != nil {
		s.logger.Warn("event cache invalidation failed",
			zap.String("calendar_id", calendarID.String()),
			zap.Error(err))
	}
}

func (s *service) checkOverlap(ctx context.Context, calendarID uuid.UUID, start, end time.Time, excludeID uuid.UUID) error {
	if !s.rejectOverlap {
		return nil
	}
	overlap, err := s.repo.HasOverlap(ctx, calendarID, start, end, excludeID)
	if err != nil {
		return err
	}
	if overlap {
		return apperrors.Conflict("event overlaps an existing event in this calendar")
	}
	return nil
}

func (s *service) CreateEvent(ctx context.Context, userID uuid.UUID, input CreateEventInput) (*Event, error) {
	if err := s.authz.CanWriteEvent(ctx, userID, input.CalendarID); err != nil {
		return nil, err
	}

	ev := &Event{
		CalendarID:  input.CalendarID,
		Title:       input.Title,
		Description: input.Description,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		IsPublic:    input.Visibility == VisibilityPublic,
		Location:    input.Location,
		CreatedBy:   userID,
	}
	if err := ev.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkOverlap(ctx, ev.CalendarID, ev.StartTime, ev.EndTime, uuid.Nil); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, ev); err != nil {
		s.logger.Error("failed to create event", zap.Error(err))
		return nil, err
	}

	s.invalidateCalendar(ctx, ev.CalendarID)
	s.logger.Info("event created",
		zap.String("event_id", ev.ID.String()),
		zap.String("calendar_id", ev.CalendarID.String()))
	return ev, nil
}

func (s *service) GetEvent(ctx context.Context, userID, eventID uuid.UUID) (*Event, error) {
	ev, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.CanReadEvent(ctx, userID, ev.CalendarID, ev.IsPublic); err != nil {
		return nil, err
	}
	return ev, nil
}

func (s *service) UpdateEvent(ctx context.Context, userID, eventID uuid.UUID, input UpdateEventInput) (*Event, error) {
	ev, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.CanWriteEvent(ctx, userID, ev.CalendarID); err != nil {
		return nil, err
	}

	if input.Title != nil {
		ev.Title = *input.Title
	}
	if input.Description != nil {
		ev.Description = *input.Description
	}
	if input.StartTime != nil {
		ev.StartTime = *input.StartTime
	}
	if input.EndTime != nil {
		ev.EndTime = *input.EndTime
	}
	if input.Visibility != nil {
		ev.IsPublic = *input.Visibility == VisibilityPublic
	}
	if input.Location != nil {
		ev.Location = *input.Location
	}
	if err := ev.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkOverlap(ctx, ev.CalendarID, ev.StartTime, ev.EndTime, ev.ID); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, ev); err != nil {
		return nil, err
	}
	s.invalidateCalendar(ctx, ev.CalendarID)
	return ev, nil
}

func (s *service) DeleteEvent(ctx context.Context, userID, eventID uuid.UUID) error {
	ev, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if err := s.authz.CanWriteEvent(ctx, userID, ev.CalendarID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, eventID); err != nil {
		return err
	}
	s.invalidateCalendar(ctx, ev.CalendarID)
	s.logger.Info("event deleted", zap.String("event_id", eventID.String()))
	return nil
}

func (s *service) ListCalendarEvents(ctx context.Context, userID, calendarID uuid.UUID) ([]Event, error) {
	key := fmt.Sprintf("events:calendar:%s:user:%s", calendarID, userID)
	if cached, ok := s.cachedEvents(ctx, key); ok {
		return cached, nil
	}

	events, err := s.repo.ListByCalendar(ctx, calendarID)
	if err != nil {
		return nil, err
	}
	// Writers and active subscribers see everything; other readers only
	// see public entries.
	if s.authz.CanReadEvent(ctx, userID, calendarID, false) != nil {
		visible := make([]Event, 0, len(events))
		for _, ev := range events {
			if ev.IsPublic {
				visible = append(visible, ev)
			}
		}
		events = visible
	}

	s.storeEvents(ctx, key, events)
	return events, nil
}

// cachedEvents reads an event list from Redis. Any failure is a miss.
func (s *service) cachedEvents(ctx context.Context, key string) ([]Event, bool) {
	if s.redis == nil {
		return nil, false
	}
	raw, err := s.redis.Get(ctx, key)
	if err != nil || raw == "" {
		return nil, false
	}
	var events []Event
	if err := json.Unmarshal([]byte(raw), &events); err != nil {
		s.logger.Warn("discarding undecodable cached event list",
			zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return events, true
}

func (s *service) storeEvents(ctx context.Context, key string, events []Event) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(events)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, key, string(data), s.redis.TTLFor("event_list")); err != nil {
		s.logger.Warn("failed to cache event list",
			zap.String("key", key), zap.Error(err))
	}
}

func (s *service) ListPublicEvents(ctx context.Context) ([]Event, error) {
	return s.repo.ListPublic(ctx)
}

func (s *service) ListVisibleEvents(ctx context.Context, userID uuid.UUID) ([]Event, error) {
	return s.repo.ListVisible(ctx, userID)
}

func (s *service) ListActiveCalendarEvents(ctx context.Context, userID uuid.UUID) ([]Event, error) {
	return s.repo.ListActive(ctx, userID)
}
