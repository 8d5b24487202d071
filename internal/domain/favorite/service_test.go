package favorite

import (
	"context"
	"testing"
	"time"

	"github.com/PoodingDev/Evento-BE/internal/domain/apperrors"
	"github.com/PoodingDev/Evento-BE/internal/domain/event"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type favoriteKey struct {
	userID  uuid.UUID
	eventID uuid.UUID
}

type mockRepository struct {
	favorites map[favoriteKey]*FavoriteEvent
	events    map[uuid.UUID]*event.Event
	nextID    uint
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		favorites: make(map[favoriteKey]*FavoriteEvent),
		events:    make(map[uuid.UUID]*event.Event),
	}
}

func (m *mockRepository) GetByID(_ context.Context, id uuid.UUID) (*event.Event, error) {
	ev, ok := m.events[id]
	if !ok {
		return nil, apperrors.NotFound("event not found")
	}
	return ev, nil
}

func (m *mockRepository) Create(_ context.Context, f *FavoriteEvent) error {
	key := favoriteKey{f.UserID, f.EventID}
	if _, ok := m.favorites[key]; ok {
		return apperrors.Conflict("event already in favorites")
	}
	m.nextID++
	f.ID = m.nextID
	m.favorites[key] = f
	return nil
}

func (m *mockRepository) Delete(_ context.Context, userID, eventID uuid.UUID) error {
	key := favoriteKey{userID, eventID}
	if _, ok := m.favorites[key]; !ok {
		return apperrors.NotFound("favorite not found")
	}
	delete(m.favorites, key)
	return nil
}

func (m *mockRepository) ListByUser(_ context.Context, userID uuid.UUID) ([]FavoriteView, error) {
	var out []FavoriteView
	for key, f := range m.favorites {
		if key.userID != userID {
			continue
		}
		ev := m.events[key.eventID]
		out = append(out, FavoriteView{
			ID:          f.ID,
			EventID:     key.eventID,
			EventTitle:  ev.Title,
			StartTime:   ev.StartTime,
			EasySidebar: f.EasySidebar,
		})
	}
	return out, nil
}

func (m *mockRepository) SetEasySidebar(_ context.Context, userID, eventID uuid.UUID, easy bool) error {
	key := favoriteKey{userID, eventID}
	f, ok := m.favorites[key]
	if !ok {
		return apperrors.NotFound("favorite not found")
	}
	f.EasySidebar = easy
	return nil
}

func TestFavorites(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	eventID := uuid.New()

	repo := newMockRepository()
	repo.events[eventID] = &event.Event{
		ID:        eventID,
		Title:     "launch day",
		StartTime: time.Date(2026, 9, 11, 9, 0, 0, 0, time.UTC),
	}

	svc := NewService(repo, repo, zap.NewNop()).(*service)
	svc.now = func() time.Time { return time.Date(2026, 9, 1, 15, 0, 0, 0, time.UTC) }

	t.Run("add and list with countdown", func(t *testing.T) {
		f, err := svc.AddFavorite(ctx, userID, eventID, true)
		require.NoError(t, err)
		assert.True(t, f.EasySidebar)

		views, err := svc.ListFavorites(ctx, userID)
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, "launch day", views[0].EventTitle)
		assert.Equal(t, "D-10", views[0].DDay)
	})

	t.Run("adding twice is a conflict", func(t *testing.T) {
		_, err := svc.AddFavorite(ctx, userID, eventID, true)
		assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	})

	t.Run("a missing event cannot be favorited", func(t *testing.T) {
		_, err := svc.AddFavorite(ctx, userID, uuid.New(), true)
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	})

	t.Run("sidebar flag can be toggled off", func(t *testing.T) {
		require.NoError(t, svc.SetEasySidebar(ctx, userID, eventID, false))
		views, err := svc.ListFavorites(ctx, userID)
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.False(t, views[0].EasySidebar)
	})

	t.Run("remove round trip", func(t *testing.T) {
		require.NoError(t, svc.RemoveFavorite(ctx, userID, eventID))
		err := svc.RemoveFavorite(ctx, userID, eventID)
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	})
}
