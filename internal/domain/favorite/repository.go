package favorite

import (
	"context"
	"errors"

	"github.com/PoodingDev/Evento-BE/internal/domain/apperrors"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Repository defines the data access methods for favorites
type Repository interface {
	Create(ctx context.Context, f *FavoriteEvent) error
	Delete(ctx context.Context, userID, eventID uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]FavoriteView, error)
	SetEasySidebar(ctx context.Context, userID, eventID uuid.UUID, easy bool) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new favorite repository instance
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

func (r *repository) Create(ctx context.Context, f *FavoriteEvent) error {
	if err := r.db.WithContext(ctx).Create(f).Error; err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict("event already in favorites")
		}
		return err
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, userID, eventID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Delete(&FavoriteEvent{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("favorite not found")
	}
	return nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]FavoriteView, error) {
	var views []FavoriteView
	err := r.db.WithContext(ctx).
		Table("favorites").
		Select("favorites.id, favorites.event_id, favorites.easy_sidebar, events.title AS event_title, events.start_time").
		Joins("JOIN events ON events.id = favorites.event_id").
		Where("favorites.user_id = ?", userID).
		Order("events.start_time ASC").
		Scan(&views).Error
	return views, err
}

func (r *repository) SetEasySidebar(ctx context.Context, userID, eventID uuid.UUID, easy bool) error {
	result := r.db.WithContext(ctx).
		Model(&FavoriteEvent{}).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Update("easy_sidebar", easy)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("favorite not found")
	}
	return nil
}
