package subscription

import (
	"context"
	"errors"

	"github.com/PoodingDev/Evento-BE/internal/domain/apperrors"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Repository defines the data access methods for the subscription ledger
type Repository interface {
	Create(ctx context.Context, sub *Subscription) error
	Get(ctx context.Context, userID, calendarID uuid.UUID) (*Subscription, error)
	Delete(ctx context.Context, userID, calendarID uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Subscription, error)
	ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]Subscription, error)
	SetActive(ctx context.Context, userID, calendarID uuid.UUID, active bool) error
	ReplaceVisibility(ctx context.Context, userID uuid.UUID, calendarIDs []uuid.UUID, onCalendar bool) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new subscription repository instance
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func (r *repository) Create(ctx context.Context, sub *Subscription) error {
	if err := r.db.WithContext(ctx).Create(sub).Error; err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict("already subscribed to this calendar")
		}
		return err
	}
	return nil
}

func (r *repository) Get(ctx context.Context, userID, calendarID uuid.UUID) (*Subscription, error) {
	var sub Subscription
	err := r.db.WithContext(ctx).
		First(&sub, "user_id = ? AND calendar_id = ?", userID, calendarID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("subscription not found")
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *repository) Delete(ctx context.Context, userID, calendarID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND calendar_id = ?", userID, calendarID).
		Delete(&Subscription{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("subscription not found")
	}
	return nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Subscription, error) {
	var subs []Subscription
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&subs).Error
	return subs, err
}

func (r *repository) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]Subscription, error) {
	var subs []Subscription
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at ASC").
		Find(&subs).Error
	return subs, err
}

func (r *repository) SetActive(ctx context.Context, userID, calendarID uuid.UUID, active bool) error {
	result := r.db.WithContext(ctx).
		Model(&Subscription{}).
		Where("user_id = ? AND calendar_id = ?", userID, calendarID).
		Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("subscription not found")
	}
	return nil
}

// ReplaceVisibility clears every subscription of the user to invisible and
// then marks only the requested calendars. Runs in one transaction so no
// reader observes the all-invisible intermediate state.
func (r *repository) ReplaceVisibility(ctx context.Context, userID uuid.UUID, calendarIDs []uuid.UUID, onCalendar bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Subscription{}).
			Where("user_id = ?", userID).
			Update("is_visible", false).Error; err != nil {
			return err
		}
		if len(calendarIDs) == 0 {
			return nil
		}
		return tx.Model(&Subscription{}).
			Where("user_id = ? AND calendar_id IN ?", userID, calendarIDs).
			Updates(map[string]interface{}{
				"is_visible":     true,
				"is_on_calendar": onCalendar,
			}).Error
	})
}
