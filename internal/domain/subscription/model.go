package subscription

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Subscription is a user's record of following a calendar. The three flags
// are independent: IsActive feeds visible-event queries, IsVisible drives the
// sidebar and IsOnCalendar the calendar grid. One row per (user, calendar).
type Subscription struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	UserID       uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_subscription_pair;index:idx_subscription_user"`
	CalendarID   uuid.UUID `json:"calendar_id" gorm:"type:uuid;not null;uniqueIndex:idx_subscription_pair"`
	IsActive     bool      `json:"is_active" gorm:"not null"`
	IsVisible    bool      `json:"is_visible" gorm:"not null"`
	IsOnCalendar bool      `json:"is_on_calendar" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Subscription) TableName() string { return "subscriptions" }

func (s *Subscription) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
