package calendar

import (
	"context"
	"testing"

	"github.com/PoodingDev/Evento-BE/internal/domain/apperrors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type adminKey struct {
	userID     uuid.UUID
	calendarID uuid.UUID
}

type mockRepository struct {
	calendars map[uuid.UUID]*Calendar
	admins    map[adminKey]bool
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		calendars: make(map[uuid.UUID]*Calendar),
		admins:    make(map[adminKey]bool),
	}
}

func (m *mockRepository) CreateWithCreator(_ context.Context, cal *Calendar) error {
	for _, existing := range m.calendars {
		if existing.InvitationCode == cal.InvitationCode {
			return apperrors.Conflict("invitation code already in use")
		}
	}
	cal.ID = uuid.New()
	m.calendars[cal.ID] = cal
	m.admins[adminKey{cal.CreatorID, cal.ID}] = true
	return nil
}

func (m *mockRepository) GetByID(_ context.Context, id uuid.UUID) (*Calendar, error) {
	cal, ok := m.calendars[id]
	if !ok {
		return nil, apperrors.NotFound("calendar not found")
	}
	copy := *cal
	return &copy, nil
}

func (m *mockRepository) GetByInvitationCode(_ context.Context, code string) (*Calendar, error) {
	for _, cal := range m.calendars {
		if cal.InvitationCode == code {
			return cal, nil
		}
	}
	return nil, apperrors.NotFound("invalid invitation code")
}

func (m *mockRepository) Update(_ context.Context, cal *Calendar) error {
	if _, ok := m.calendars[cal.ID]; !ok {
		return apperrors.NotFound("calendar not found")
	}
	m.calendars[cal.ID] = cal
	return nil
}

func (m *mockRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.calendars[id]; !ok {
		return apperrors.NotFound("calendar not found")
	}
	delete(m.calendars, id)
	return nil
}

func (m *mockRepository) ListVisible(_ context.Context, userID uuid.UUID) ([]Calendar, error) {
	var out []Calendar
	for _, cal := range m.calendars {
		if cal.IsPublic || cal.CreatorID == userID || m.admins[adminKey{userID, cal.ID}] {
			out = append(out, *cal)
		}
	}
	return out, nil
}

func (m *mockRepository) ListAdministered(_ context.Context, userID uuid.UUID) ([]Calendar, error) {
	var out []Calendar
	for _, cal := range m.calendars {
		if cal.CreatorID == userID || m.admins[adminKey{userID, cal.ID}] {
			out = append(out, *cal)
		}
	}
	return out, nil
}

func (m *mockRepository) AddAdmin(_ context.Context, calendarID, userID uuid.UUID) error {
	key := adminKey{userID, calendarID}
	if m.admins[key] {
		return apperrors.Conflict("already an admin")
	}
	m.admins[key] = true
	return nil
}

func (m *mockRepository) HasAdminMembership(_ context.Context, userID, calendarID uuid.UUID) (bool, error) {
	return m.admins[adminKey{userID, calendarID}], nil
}

func (m *mockRepository) ListMembers(_ context.Context, calendarID uuid.UUID) ([]MemberInfo, error) {
	var out []MemberInfo
	for key := range m.admins {
		if key.calendarID == calendarID {
			out = append(out, MemberInfo{UserID: key.userID})
		}
	}
	return out, nil
}

func (m *mockRepository) SearchByCreatorNickname(_ context.Context, _ uuid.UUID, _ string) ([]SearchResult, error) {
	return nil, nil
}

func TestCreateCalendar(t *testing.T) {
	ctx := context.Background()
	creator := uuid.New()
	repo := newMockRepository()
	svc := NewService(repo, zap.NewNop())

	t.Run("mints an invitation code when none given", func(t *testing.T) {
		cal, err := svc.CreateCalendar(ctx, creator, CreateCalendarInput{Name: "team", Color: "#FF8800"})
		require.NoError(t, err)
		assert.NotEmpty(t, cal.InvitationCode)
		assert.Equal(t, creator, cal.CreatorID)

		admin, err := repo.HasAdminMembership(ctx, creator, cal.ID)
		require.NoError(t, err)
		assert.True(t, admin)
	})

	t.Run("keeps an explicitly supplied code", func(t *testing.T) {
		cal, err := svc.CreateCalendar(ctx, creator, CreateCalendarInput{Name: "ops", Color: "#112233", InvitationCode: "OPS123"})
		require.NoError(t, err)
		assert.Equal(t, "OPS123", cal.InvitationCode)
	})

	t.Run("rejects an empty name", func(t *testing.T) {
		_, err := svc.CreateCalendar(ctx, creator, CreateCalendarInput{})
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	})
}

func TestRedeemInvitation(t *testing.T) {
	ctx := context.Background()
	creator := uuid.New()
	joiner := uuid.New()
	repo := newMockRepository()
	svc := NewService(repo, zap.NewNop())

	cal, err := svc.CreateCalendar(ctx, creator, CreateCalendarInput{Name: "shared", Color: "#112233", InvitationCode: "JOIN42"})
	require.NoError(t, err)

	t.Run("grants admin membership", func(t *testing.T) {
		got, err := svc.RedeemInvitation(ctx, joiner, "JOIN42")
		require.NoError(t, err)
		assert.Equal(t, cal.ID, got.ID)

		admin, err := svc.HasAdminPermission(ctx, joiner, cal.ID)
		require.NoError(t, err)
		assert.True(t, admin)
	})

	t.Run("redeeming twice is a conflict", func(t *testing.T) {
		_, err := svc.RedeemInvitation(ctx, joiner, "JOIN42")
		assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	})

	t.Run("the creator cannot redeem their own code", func(t *testing.T) {
		_, err := svc.RedeemInvitation(ctx, creator, "JOIN42")
		assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	})

	t.Run("an unknown code is not found", func(t *testing.T) {
		_, err := svc.RedeemInvitation(ctx, joiner, "NOPE99")
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	})
}

func TestUpdateCalendarPermissions(t *testing.T) {
	ctx := context.Background()
	creator := uuid.New()
	stranger := uuid.New()
	repo := newMockRepository()
	svc := NewService(repo, zap.NewNop())

	cal, err := svc.CreateCalendar(ctx, creator, CreateCalendarInput{Name: "mine", Color: "#112233"})
	require.NoError(t, err)

	name := "renamed"
	_, err = svc.UpdateCalendar(ctx, stranger, cal.ID, UpdateCalendarInput{Name: &name})
	assert.Equal(t, apperrors.KindPermissionDenied, apperrors.KindOf(err))

	updated, err := svc.UpdateCalendar(ctx, creator, cal.ID, UpdateCalendarInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)

	bad := "not-a-color"
	_, err = svc.UpdateCalendar(ctx, creator, cal.ID, UpdateCalendarInput{Color: &bad})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	err = svc.DeleteCalendar(ctx, stranger, cal.ID)
	assert.Equal(t, apperrors.KindPermissionDenied, apperrors.KindOf(err))
	require.NoError(t, svc.DeleteCalendar(ctx, creator, cal.ID))
}

func TestSearchRequiresNickname(t *testing.T) {
	svc := NewService(newMockRepository(), zap.NewNop())
	_, err := svc.Search(context.Background(), uuid.New(), "")
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}
