package event

import (
	"context"
	"testing"
	"time"

	"github.com/PoodingDev/Evento-BE/internal/domain/apperrors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockRepository struct {
	events map[uuid.UUID]*Event
}

func newMockRepository() *mockRepository {
	return &mockRepository{events: make(map[uuid.UUID]*Event)}
}

func (m *mockRepository) Create(_ context.Context, ev *Event) error {
	ev.ID = uuid.New()
	stored := *ev
	m.events[ev.ID] = &stored
	return nil
}

func (m *mockRepository) GetByID(_ context.Context, id uuid.UUID) (*Event, error) {
	ev, ok := m.events[id]
	if !ok {
		return nil, apperrors.NotFound("event not found")
	}
	copy := *ev
	return &copy, nil
}

func (m *mockRepository) Update(_ context.Context, ev *Event) error {
	if _, ok := m.events[ev.ID]; !ok {
		return apperrors.NotFound("event not found")
	}
	stored := *ev
	m.events[ev.ID] = &stored
	return nil
}

func (m *mockRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.events[id]; !ok {
		return apperrors.NotFound("event not found")
	}
	delete(m.events, id)
	return nil
}

func (m *mockRepository) ListByCalendar(_ context.Context, calendarID uuid.UUID) ([]Event, error) {
	var out []Event
	for _, ev := range m.events {
		if ev.CalendarID == calendarID {
			out = append(out, *ev)
		}
	}
	return out, nil
}

func (m *mockRepository) ListPublic(_ context.Context) ([]Event, error) {
	var out []Event
	for _, ev := range m.events {
		if ev.IsPublic {
			out = append(out, *ev)
		}
	}
	return out, nil
}

func (m *mockRepository) ListVisible(_ context.Context, _ uuid.UUID) ([]Event, error) {
	return nil, nil
}

func (m *mockRepository) ListActive(_ context.Context, _ uuid.UUID) ([]Event, error) {
	return nil, nil
}

func (m *mockRepository) HasOverlap(_ context.Context, calendarID uuid.UUID, start, end time.Time, excludeID uuid.UUID) (bool, error) {
	for _, ev := range m.events {
		if ev.CalendarID != calendarID || ev.ID == excludeID {
			continue
		}
		if ev.StartTime.Before(end) && ev.EndTime.After(start) {
			return true, nil
		}
	}
	return false, nil
}

type allowAllAuthorizer struct{}

func (allowAllAuthorizer) CanWriteEvent(context.Context, uuid.UUID, uuid.UUID) error { return nil }
func (allowAllAuthorizer) CanReadEvent(context.Context, uuid.UUID, uuid.UUID, bool) error {
	return nil
}

type readOnlyAuthorizer struct{}

func (readOnlyAuthorizer) CanWriteEvent(context.Context, uuid.UUID, uuid.UUID) error {
	return apperrors.PermissionDenied("no write access to this calendar")
}

func (readOnlyAuthorizer) CanReadEvent(_ context.Context, _, _ uuid.UUID, eventPublic bool) error {
	if eventPublic {
		return nil
	}
	return apperrors.PermissionDenied("no access to this event")
}

func validInput(calendarID uuid.UUID) CreateEventInput {
	return CreateEventInput{
		CalendarID: calendarID,
		Title:      "standup",
		StartTime:  time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		EndTime:    time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC),
		Visibility: VisibilityPublic,
	}
}

func TestCreateEvent(t *testing.T) {
	ctx := context.Background()
	calendarID := uuid.New()
	userID := uuid.New()

	t.Run("creates a valid event", func(t *testing.T) {
		svc := NewService(newMockRepository(), allowAllAuthorizer{}, nil, false, zap.NewNop())
		ev, err := svc.CreateEvent(ctx, userID, validInput(calendarID))
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, ev.ID)
		assert.True(t, ev.IsPublic)
		assert.Equal(t, userID, ev.CreatedBy)
	})

	t.Run("rejects missing title", func(t *testing.T) {
		svc := NewService(newMockRepository(), allowAllAuthorizer{}, nil, false, zap.NewNop())
		input := validInput(calendarID)
		input.Title = ""
		_, err := svc.CreateEvent(ctx, userID, input)
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	})

	t.Run("rejects end before start", func(t *testing.T) {
		svc := NewService(newMockRepository(), allowAllAuthorizer{}, nil, false, zap.NewNop())
		input := validInput(calendarID)
		input.EndTime = input.StartTime.Add(-time.Hour)
		_, err := svc.CreateEvent(ctx, userID, input)
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	})

	t.Run("denies non-writers", func(t *testing.T) {
		svc := NewService(newMockRepository(), readOnlyAuthorizer{}, nil, false, zap.NewNop())
		_, err := svc.CreateEvent(ctx, userID, validInput(calendarID))
		assert.Equal(t, apperrors.KindPermissionDenied, apperrors.KindOf(err))
	})
}

func TestCreateEventOverlap(t *testing.T) {
	ctx := context.Background()
	calendarID := uuid.New()
	userID := uuid.New()

	seed := func(svc Service) {
		_, err := svc.CreateEvent(ctx, userID, validInput(calendarID))
		require.NoError(t, err)
	}

	overlapping := validInput(calendarID)
	overlapping.StartTime = overlapping.StartTime.Add(15 * time.Minute)
	overlapping.EndTime = overlapping.EndTime.Add(15 * time.Minute)

	t.Run("rejected when overlap checking is on", func(t *testing.T) {
		svc := NewService(newMockRepository(), allowAllAuthorizer{}, nil, true, zap.NewNop())
		seed(svc)
		_, err := svc.CreateEvent(ctx, userID, overlapping)
		assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	})

	t.Run("allowed when overlap checking is off", func(t *testing.T) {
		svc := NewService(newMockRepository(), allowAllAuthorizer{}, nil, false, zap.NewNop())
		seed(svc)
		_, err := svc.CreateEvent(ctx, userID, overlapping)
		assert.NoError(t, err)
	})

	t.Run("back to back events do not overlap", func(t *testing.T) {
		svc := NewService(newMockRepository(), allowAllAuthorizer{}, nil, true, zap.NewNop())
		seed(svc)
		next := validInput(calendarID)
		next.StartTime = validInput(calendarID).EndTime
		next.EndTime = next.StartTime.Add(30 * time.Minute)
		_, err := svc.CreateEvent(ctx, userID, next)
		assert.NoError(t, err)
	})
}

func TestUpdateEvent(t *testing.T) {
	ctx := context.Background()
	calendarID := uuid.New()
	userID := uuid.New()

	repo := newMockRepository()
	svc := NewService(repo, allowAllAuthorizer{}, nil, true, zap.NewNop())
	ev, err := svc.CreateEvent(ctx, userID, validInput(calendarID))
	require.NoError(t, err)

	t.Run("updates fields and flips visibility", func(t *testing.T) {
		title := "retro"
		vis := VisibilityPrivate
		updated, err := svc.UpdateEvent(ctx, userID, ev.ID, UpdateEventInput{
			Title:      &title,
			Visibility: &vis,
		})
		require.NoError(t, err)
		assert.Equal(t, "retro", updated.Title)
		assert.False(t, updated.IsPublic)
	})

	t.Run("an event does not overlap itself", func(t *testing.T) {
		start := ev.StartTime.Add(5 * time.Minute)
		_, err := svc.UpdateEvent(ctx, userID, ev.ID, UpdateEventInput{StartTime: &start})
		assert.NoError(t, err)
	})

	t.Run("unknown event is not found", func(t *testing.T) {
		title := "x"
		_, err := svc.UpdateEvent(ctx, userID, uuid.New(), UpdateEventInput{Title: &title})
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	})
}

func TestGetEventVisibility(t *testing.T) {
	ctx := context.Background()
	calendarID := uuid.New()
	owner := uuid.New()
	stranger := uuid.New()

	repo := newMockRepository()
	ownerSvc := NewService(repo, allowAllAuthorizer{}, nil, false, zap.NewNop())

	public, err := ownerSvc.CreateEvent(ctx, owner, validInput(calendarID))
	require.NoError(t, err)

	privateInput := validInput(calendarID)
	privateInput.Title = "1:1"
	privateInput.Visibility = VisibilityPrivate
	hidden, err := ownerSvc.CreateEvent(ctx, owner, privateInput)
	require.NoError(t, err)

	strangerSvc := NewService(repo, readOnlyAuthorizer{}, nil, false, zap.NewNop())

	got, err := strangerSvc.GetEvent(ctx, stranger, public.ID)
	require.NoError(t, err)
	assert.Equal(t, "standup", got.Title)

	_, err = strangerSvc.GetEvent(ctx, stranger, hidden.ID)
	assert.Equal(t, apperrors.KindPermissionDenied, apperrors.KindOf(err))
}

func TestListCalendarEvents(t *testing.T) {
	ctx := context.Background()
	calendarID := uuid.New()
	owner := uuid.New()

	repo := newMockRepository()
	ownerSvc := NewService(repo, allowAllAuthorizer{}, nil, false, zap.NewNop())

	_, err := ownerSvc.CreateEvent(ctx, owner, validInput(calendarID))
	require.NoError(t, err)
	privateInput := validInput(calendarID)
	privateInput.Title = "planning"
	privateInput.Visibility = VisibilityPrivate
	_, err = ownerSvc.CreateEvent(ctx, owner, privateInput)
	require.NoError(t, err)

	t.Run("writers see every event", func(t *testing.T) {
		events, err := ownerSvc.ListCalendarEvents(ctx, owner, calendarID)
		require.NoError(t, err)
		assert.Len(t, events, 2)
	})

	t.Run("outside readers only see public events", func(t *testing.T) {
		strangerSvc := NewService(repo, readOnlyAuthorizer{}, nil, false, zap.NewNop())
		events, err := strangerSvc.ListCalendarEvents(ctx, uuid.New(), calendarID)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "standup", events[0].Title)
	})
}

func TestDeleteEvent(t *testing.T) {
	ctx := context.Background()
	calendarID := uuid.New()
	userID := uuid.New()

	repo := newMockRepository()
	svc := NewService(repo, allowAllAuthorizer{}, nil, false, zap.NewNop())
	ev, err := svc.CreateEvent(ctx, userID, validInput(calendarID))
	require.NoError(t, err)

	denied := NewService(repo, readOnlyAuthorizer{}, nil, false, zap.NewNop())
	err = denied.DeleteEvent(ctx, uuid.New(), ev.ID)
	assert.Equal(t, apperrors.KindPermissionDenied, apperrors.KindOf(err))

	require.NoError(t, svc.DeleteEvent(ctx, userID, ev.ID))
	_, err = svc.GetEvent(ctx, userID, ev.ID)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}
