package event

import (
	"context"
	"errors"
	"time"

	"github.com/PoodingDev/Evento-BE/internal/domain/apperrors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the data access methods for the event store
type Repository interface {
	Create(ctx context.Context, ev *Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*Event, error)
	Update(ctx context.Context, ev *Event) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByCalendar(ctx context.Context, calendarID uuid.UUID) ([]Event, error)
	ListPublic(ctx context.Context) ([]Event, error)
	ListVisible(ctx context.Context, userID uuid.UUID) ([]Event, error)
	ListActive(ctx context.Context, userID uuid.UUID) ([]Event, error)
	HasOverlap(ctx context.Context, calendarID uuid.UUID, start, end time.Time, excludeID uuid.UUID) (bool, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new event repository instance
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, ev *Event) error {
	return r.db.WithContext(ctx).Create(ev).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	var ev Event
	err := r.db.WithContext(ctx).First(&ev, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("event not found")
	}
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

func (r *repository) Update(ctx context.Context, ev *Event) error {
	return r.db.WithContext(ctx).Save(ev).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM comments WHERE event_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM favorites WHERE event_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&Event{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperrors.NotFound("event not found")
		}
		return nil
	})
}

func (r *repository) ListByCalendar(ctx context.Context, calendarID uuid.UUID) ([]Event, error) {
	var events []Event
	err := r.db.WithContext(ctx).
		Where("calendar_id = ?", calendarID).
		Order("start_time ASC").
		Find(&events).Error
	return events, err
}

func (r *repository) ListPublic(ctx context.Context) ([]Event, error) {
	var events []Event
	err := r.db.WithContext(ctx).
		Where("is_public = ?", true).
		Order("start_time ASC").
		Find(&events).Error
	return events, err
}

// ListVisible returns the union of public events, events of calendars the
// user creates or administers, and public events of actively subscribed
// calendars.
func (r *repository) ListVisible(ctx context.Context, userID uuid.UUID) ([]Event, error) {
	created := r.db.Table("calendars").Select("id").Where("creator_id = ?", userID)
	administered := r.db.Table("calendar_admins").Select("calendar_id").Where("user_id = ?", userID)
	subscribed := r.db.Table("subscriptions").Select("calendar_id").
		Where("user_id = ? AND is_active = ?", userID, true)

	var events []Event
	err := r.db.WithContext(ctx).
		Where("is_public = ?", true).
		Or("calendar_id IN (?)", created).
		Or("calendar_id IN (?)", administered).
		Or("is_public = ? AND calendar_id IN (?)", true, subscribed).
		Order("start_time ASC").
		Find(&events).Error
	return events, err
}

// ListActive returns events of the user's actively subscribed calendars,
// restricted to public events unless the user can write the calendar.
func (r *repository) ListActive(ctx context.Context, userID uuid.UUID) ([]Event, error) {
	created := r.db.Table("calendars").Select("id").Where("creator_id = ?", userID)
	administered := r.db.Table("calendar_admins").Select("calendar_id").Where("user_id = ?", userID)
	subscribed := r.db.Table("subscriptions").Select("calendar_id").
		Where("user_id = ? AND is_active = ?", userID, true)

	var events []Event
	err := r.db.WithContext(ctx).
		Where("calendar_id IN (?)", subscribed).
		Where(r.db.
			Where("is_public = ?", true).
			Or("calendar_id IN (?)", created).
			Or("calendar_id IN (?)", administered)).
		Order("start_time ASC").
		Find(&events).Error
	return events, err
}

func (r *repository) HasOverlap(ctx context.Context, calendarID uuid.UUID, start, end time.Time, excludeID uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&Event{}).
		Where("calendar_id = ?", calendarID).
		Where("start_time < ? AND end_time > ?", end, start)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
