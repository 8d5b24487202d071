package event

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/PoodingDev/Evento-BE/internal/domain/apperrors"
	"github.com/PoodingDev/Evento-BE/internal/domain/calendar"
	"github.com/PoodingDev/Evento-BE/internal/domain/subscription"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type commentRow struct {
	ID      uint      `gorm:"primaryKey"`
	EventID uuid.UUID `gorm:"type:uuid"`
}

func (commentRow) TableName() string { return "comments" }

type favoriteRow struct {
	ID      uint      `gorm:"primaryKey"`
	EventID uuid.UUID `gorm:"type:uuid"`
}

func (favoriteRow) TableName() string { return "favorites" }

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&calendar.Calendar{},
		&calendar.CalendarAdmin{},
		&subscription.Subscription{},
		&Event{},
		&commentRow{},
		&favoriteRow{},
	))
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func seedCalendar(t *testing.T, db *gorm.DB, creatorID uuid.UUID, public bool) uuid.UUID {
	t.Helper()
	cal := &calendar.Calendar{
		Name:           "fixture",
		Color:          "#336699",
		IsPublic:       public,
		CreatorID:      creatorID,
		InvitationCode: uuid.NewString()[:8],
	}
	require.NoError(t, db.Create(cal).Error)
	return cal.ID
}

func seedEvent(t *testing.T, repo Repository, calendarID uuid.UUID, title string, public bool, start time.Time) *Event {
	t.Helper()
	ev := &Event{
		CalendarID: calendarID,
		Title:      title,
		StartTime:  start,
		EndTime:    start.Add(time.Hour),
		IsPublic:   public,
		CreatedBy:  uuid.New(),
	}
	require.NoError(t, repo.Create(context.Background(), ev))
	return ev
}

func TestRepositoryCRUD(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewRepository(db)
	calendarID := seedCalendar(t, db, uuid.New(), true)

	ev := seedEvent(t, repo, calendarID, "kickoff", true, time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC))
	require.NotEqual(t, uuid.Nil, ev.ID)

	got, err := repo.GetByID(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, "kickoff", got.Title)

	got.Title = "kickoff v2"
	require.NoError(t, repo.Update(ctx, got))
	again, err := repo.GetByID(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, "kickoff v2", again.Title)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestRepositoryDeleteCascades(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewRepository(db)
	calendarID := seedCalendar(t, db, uuid.New(), true)
	ev := seedEvent(t, repo, calendarID, "doomed", true, time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC))

	require.NoError(t, db.Create(&commentRow{EventID: ev.ID}).Error)
	require.NoError(t, db.Create(&favoriteRow{EventID: ev.ID}).Error)

	require.NoError(t, repo.Delete(ctx, ev.ID))

	var comments, favorites int64
	require.NoError(t, db.Model(&commentRow{}).Where("event_id = ?", ev.ID).Count(&comments).Error)
	require.NoError(t, db.Model(&favoriteRow{}).Where("event_id = ?", ev.ID).Count(&favorites).Error)
	assert.Zero(t, comments)
	assert.Zero(t, favorites)

	err := repo.Delete(ctx, ev.ID)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestRepositoryHasOverlap(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewRepository(db)
	calendarID := seedCalendar(t, db, uuid.New(), true)

	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	ev := seedEvent(t, repo, calendarID, "busy", true, base)

	overlap, err := repo.HasOverlap(ctx, calendarID, base.Add(30*time.Minute), base.Add(90*time.Minute), uuid.Nil)
	require.NoError(t, err)
	assert.True(t, overlap)

	overlap, err = repo.HasOverlap(ctx, calendarID, base.Add(time.Hour), base.Add(2*time.Hour), uuid.Nil)
	require.NoError(t, err)
	assert.False(t, overlap)

	overlap, err = repo.HasOverlap(ctx, calendarID, base, base.Add(time.Hour), ev.ID)
	require.NoError(t, err)
	assert.False(t, overlap)

	overlap, err = repo.HasOverlap(ctx, uuid.New(), base, base.Add(time.Hour), uuid.Nil)
	require.NoError(t, err)
	assert.False(t, overlap)
}

func TestRepositoryListVisible(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewRepository(db)

	viewer := uuid.New()
	other := uuid.New()

	ownCal := seedCalendar(t, db, viewer, false)
	subbedCal := seedCalendar(t, db, other, false)
	strangerCal := seedCalendar(t, db, other, false)

	require.NoError(t, db.Create(&subscription.Subscription{
		UserID:       viewer,
		CalendarID:   subbedCal,
		IsActive:     true,
		IsVisible:    true,
		IsOnCalendar: true,
	}).Error)

	base := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	seedEvent(t, repo, ownCal, "own private", false, base)
	seedEvent(t, repo, subbedCal, "subscribed public", true, base.Add(time.Hour))
	seedEvent(t, repo, subbedCal, "subscribed private", false, base.Add(2*time.Hour))
	seedEvent(t, repo, strangerCal, "stranger private", false, base.Add(3*time.Hour))
	seedEvent(t, repo, strangerCal, "stranger public", true, base.Add(4*time.Hour))

	events, err := repo.ListVisible(ctx, viewer)
	require.NoError(t, err)

	titles := make([]string, 0, len(events))
	for _, ev := range events {
		titles = append(titles, ev.Title)
	}
	assert.ElementsMatch(t, []string{"own private", "subscribed public", "stranger public"}, titles)
}

func TestRepositoryListActive(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewRepository(db)

	viewer := uuid.New()
	other := uuid.New()

	activeCal := seedCalendar(t, db, other, true)
	pausedCal := seedCalendar(t, db, other, true)

	require.NoError(t, db.Create(&subscription.Subscription{
		UserID: viewer, CalendarID: activeCal,
		IsActive: true, IsVisible: true, IsOnCalendar: true,
	}).Error)
	require.NoError(t, db.Create(&subscription.Subscription{
		UserID: viewer, CalendarID: pausedCal,
		IsActive: false, IsVisible: true, IsOnCalendar: true,
	}).Error)

	base := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	seedEvent(t, repo, activeCal, "active public", true, base)
	seedEvent(t, repo, activeCal, "active private", false, base.Add(time.Hour))
	seedEvent(t, repo, pausedCal, "paused public", true, base.Add(2*time.Hour))

	events, err := repo.ListActive(ctx, viewer)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "active public", events[0].Title)
}
