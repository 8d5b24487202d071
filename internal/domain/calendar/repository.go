package calendar

import (
	"context"
	"errors"

	"github.com/PoodingDev/Evento-BE/internal/domain/apperrors"
	"github.com/PoodingDev/Evento-BE/internal/domain/subscription"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Repository defines the data access methods for calendars and admin
// memberships.
type Repository interface {
	CreateWithCreator(ctx context.Context, cal *Calendar) error
	GetByID(ctx context.Context, id uuid.UUID) (*Calendar, error)
	GetByInvitationCode(ctx context.Context, code string) (*Calendar, error)
	Update(ctx context.Context, cal *Calendar) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListVisible(ctx context.Context, userID uuid.UUID) ([]Calendar, error)
	ListAdministered(ctx context.Context, userID uuid.UUID) ([]Calendar, error)

	AddAdmin(ctx context.Context, calendarID, userID uuid.UUID) error
	HasAdminMembership(ctx context.Context, userID, calendarID uuid.UUID) (bool, error)
	ListMembers(ctx context.Context, calendarID uuid.UUID) ([]MemberInfo, error)

	SearchByCreatorNickname(ctx context.Context, requesterID uuid.UUID, nicknamePrefix string) ([]SearchResult, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new calendar repository instance
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

// CreateWithCreator persists the calendar together with the creator's admin
// membership and initial subscription in one transaction.
func (r *repository) CreateWithCreator(ctx context.Context, cal *Calendar) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(cal).Error; err != nil {
			if isUniqueViolation(err) {
				return apperrors.Conflict("invitation code already in use")
			}
			return err
		}
		admin := &CalendarAdmin{CalendarID: cal.ID, UserID: cal.CreatorID}
		if err := tx.Create(admin).Error; err != nil {
			return err
		}
		sub := &subscription.Subscription{
			UserID:       cal.CreatorID,
			CalendarID:   cal.ID,
			IsActive:     true,
			IsVisible:    true,
			IsOnCalendar: true,
		}
		return tx.Create(sub).Error
	})
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Calendar, error) {
	var cal Calendar
	err := r.db.WithContext(ctx).Preload("Admins").First(&cal, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("calendar not found")
	}
	if err != nil {
		return nil, err
	}
	return &cal, nil
}

func (r *repository) GetByInvitationCode(ctx context.Context, code string) (*Calendar, error) {
	var cal Calendar
	err := r.db.WithContext(ctx).First(&cal, "invitation_code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("invalid invitation code")
	}
	if err != nil {
		return nil, err
	}
	return &cal, nil
}

func (r *repository) Update(ctx context.Context, cal *Calendar) error {
	return r.db.WithContext(ctx).Save(cal).Error
}

// Delete removes the calendar and everything scoped to it: events with their
// comments and favorites, subscriptions and admin rows.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		eventIDs := tx.Table("events").Select("id").Where("calendar_id = ?", id)
		if err := tx.Exec("DELETE FROM comments WHERE event_id IN (?)", eventIDs).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM favorites WHERE event_id IN (?)", eventIDs).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM events WHERE calendar_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("calendar_id = ?", id).Delete(&subscription.Subscription{}).Error; err != nil {
			return err
		}
		if err := tx.Where("calendar_id = ?", id).Delete(&CalendarAdmin{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&Calendar{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperrors.NotFound("calendar not found")
		}
		return nil
	})
}

// ListVisible returns calendars the user created, administers or subscribes
// to.
func (r *repository) ListVisible(ctx context.Context, userID uuid.UUID) ([]Calendar, error) {
	var cals []Calendar
	adminIDs := r.db.Table("calendar_admins").Select("calendar_id").Where("user_id = ?", userID)
	subIDs := r.db.Table("subscriptions").Select("calendar_id").Where("user_id = ?", userID)
	err := r.db.WithContext(ctx).
		Where("creator_id = ?", userID).
		Or("id IN (?)", adminIDs).
		Or("id IN (?)", subIDs).
		Order("created_at ASC").
		Find(&cals).Error
	return cals, err
}

func (r *repository) ListAdministered(ctx context.Context, userID uuid.UUID) ([]Calendar, error) {
	var cals []Calendar
	adminIDs := r.db.Table("calendar_admins").Select("calendar_id").Where("user_id = ?", userID)
	err := r.db.WithContext(ctx).
		Where("creator_id = ?", userID).
		Or("id IN (?)", adminIDs).
		Order("created_at ASC").
		Find(&cals).Error
	return cals, err
}

func (r *repository) AddAdmin(ctx context.Context, calendarID, userID uuid.UUID) error {
	admin := &CalendarAdmin{CalendarID: calendarID, UserID: userID}
	if err := r.db.WithContext(ctx).Create(admin).Error; err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict("user is already a calendar admin")
		}
		return err
	}
	return nil
}

func (r *repository) HasAdminMembership(ctx context.Context, userID, calendarID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&CalendarAdmin{}).
		Where("user_id = ? AND calendar_id = ?", userID, calendarID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) ListMembers(ctx context.Context, calendarID uuid.UUID) ([]MemberInfo, error) {
	var members []MemberInfo
	err := r.db.WithContext(ctx).
		Table("calendar_admins").
		Select("calendar_admins.user_id, users.nickname").
		Joins("JOIN users ON users.id = calendar_admins.user_id").
		Where("calendar_admins.calendar_id = ?", calendarID).
		Scan(&members).Error
	return members, err
}

// SearchByCreatorNickname finds public calendars whose creator nickname
// starts with the given prefix, flagging the ones the requester already
// subscribes to.
func (r *repository) SearchByCreatorNickname(ctx context.Context, requesterID uuid.UUID, nicknamePrefix string) ([]SearchResult, error) {
	var results []SearchResult
	err := r.db.WithContext(ctx).
		Table("calendars").
		Select(`calendars.id AS calendar_id, calendars.name, users.nickname AS creator_nickname,
			EXISTS (SELECT 1 FROM subscriptions
				WHERE subscriptions.calendar_id = calendars.id
				AND subscriptions.user_id = ?) AS is_subscribed`, requesterID).
		Joins("JOIN users ON users.id = calendars.creator_id").
		Where("calendars.is_public = ? AND users.nickname LIKE ?", true, nicknamePrefix+"%").
		Scan(&results).Error
	return results, err
}
