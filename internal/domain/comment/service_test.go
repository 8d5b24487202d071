package comment

import (
	"context"
	"testing"

	"github.com/PoodingDev/Evento-BE/internal/domain/apperrors"
	"github.com/PoodingDev/Evento-BE/internal/domain/event"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockRepository struct {
	comments map[uint]*Comment
	nextID   uint
}

func newMockRepository() *mockRepository {
	return &mockRepository{comments: make(map[uint]*Comment)}
}

func (m *mockRepository) Create(_ context.Context, c *Comment) error {
	m.nextID++
	c.ID = m.nextID
	stored := *c
	m.comments[c.ID] = &stored
	return nil
}

func (m *mockRepository) GetByID(_ context.Context, id uint) (*Comment, error) {
	c, ok := m.comments[id]
	if !ok {
		return nil, apperrors.NotFound("comment not found")
	}
	stored := *c
	return &stored, nil
}

func (m *mockRepository) Update(_ context.Context, c *Comment) error {
	if _, ok := m.comments[c.ID]; !ok {
		return apperrors.NotFound("comment not found")
	}
	stored := *c
	m.comments[c.ID] = &stored
	return nil
}

func (m *mockRepository) Delete(_ context.Context, id uint) error {
	if _, ok := m.comments[id]; !ok {
		return apperrors.NotFound("comment not found")
	}
	delete(m.comments, id)
	return nil
}

func (m *mockRepository) ListByEvent(_ context.Context, eventID uuid.UUID) ([]Comment, error) {
	var out []Comment
	for _, c := range m.comments {
		if c.EventID == eventID {
			out = append(out, *c)
		}
	}
	return out, nil
}

type mockEvents struct {
	events map[uuid.UUID]*event.Event
}

func (m *mockEvents) GetByID(_ context.Context, id uuid.UUID) (*event.Event, error) {
	ev, ok := m.events[id]
	if !ok {
		return nil, apperrors.NotFound("event not found")
	}
	return ev, nil
}

type writerAuthorizer struct {
	writer uuid.UUID
}

func (a writerAuthorizer) CanWriteCalendar(_ context.Context, userID, _ uuid.UUID) error {
	if userID == a.writer {
		return nil
	}
	return apperrors.PermissionDenied("no write access to this calendar")
}

func TestComments(t *testing.T) {
	ctx := context.Background()
	writer := uuid.New()
	stranger := uuid.New()
	eventID := uuid.New()

	events := &mockEvents{events: map[uuid.UUID]*event.Event{
		eventID: {ID: eventID, CalendarID: uuid.New()},
	}}
	svc := NewService(newMockRepository(), events, writerAuthorizer{writer: writer}, zap.NewNop())

	t.Run("writers can comment", func(t *testing.T) {
		c, err := svc.CreateComment(ctx, writer, eventID, "looks good")
		require.NoError(t, err)
		assert.NotZero(t, c.ID)
		assert.Equal(t, writer, c.AuthorID)

		list, err := svc.ListComments(ctx, writer, eventID)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("empty content is rejected", func(t *testing.T) {
		_, err := svc.CreateComment(ctx, writer, eventID, "")
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	})

	t.Run("non-writers are denied", func(t *testing.T) {
		_, err := svc.CreateComment(ctx, stranger, eventID, "hi")
		assert.Equal(t, apperrors.KindPermissionDenied, apperrors.KindOf(err))
		_, err = svc.ListComments(ctx, stranger, eventID)
		assert.Equal(t, apperrors.KindPermissionDenied, apperrors.KindOf(err))
	})

	t.Run("commenting on a missing event is not found", func(t *testing.T) {
		_, err := svc.CreateComment(ctx, writer, uuid.New(), "hi")
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	})

	t.Run("update and delete round trip", func(t *testing.T) {
		c, err := svc.CreateComment(ctx, writer, eventID, "first draft")
		require.NoError(t, err)

		updated, err := svc.UpdateComment(ctx, writer, c.ID, "final")
		require.NoError(t, err)
		assert.Equal(t, "final", updated.Content)

		err = svc.DeleteComment(ctx, stranger, c.ID)
		assert.Equal(t, apperrors.KindPermissionDenied, apperrors.KindOf(err))

		require.NoError(t, svc.DeleteComment(ctx, writer, c.ID))
		err = svc.DeleteComment(ctx, writer, c.ID)
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	})
}
