package calendar

import (
	"regexp"
	"time"

	"github.com/PoodingDev/Evento-BE/internal/domain/apperrors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Calendar is a shareable event container. The creator always holds admin
// rights even without a CalendarAdmin row; other users gain them by
// redeeming the invitation code.
type Calendar struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Name           string    `json:"name" gorm:"type:varchar(100);not null"`
	Description    string    `json:"description" gorm:"type:text"`
	Color          string    `json:"color" gorm:"type:varchar(7);not null"`
	IsPublic       bool      `json:"is_public" gorm:"not null"`
	CreatorID      uuid.UUID `json:"creator_id" gorm:"type:uuid;not null;index:idx_calendar_creator"`
	InvitationCode string    `json:"invitation_code,omitempty" gorm:"uniqueIndex:idx_calendar_invitation;size:8"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Admins []CalendarAdmin `json:"admins,omitempty" gorm:"foreignKey:CalendarID"`
}

// CalendarAdmin records delegated admin membership on a calendar.
type CalendarAdmin struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	CalendarID uuid.UUID `json:"calendar_id" gorm:"type:uuid;not null;uniqueIndex:idx_calendar_admin_pair"`
	UserID     uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_calendar_admin_pair;index:idx_calendar_admin_user"`
	CreatedAt  time.Time `json:"created_at"`
}

// MemberInfo is an admin membership joined with the member's nickname.
type MemberInfo struct {
	UserID   uuid.UUID `json:"user_id"`
	Nickname string    `json:"nickname"`
}

// SearchResult is one public calendar matched by creator nickname search.
type SearchResult struct {
	CalendarID      uuid.UUID `json:"calendar_id"`
	Name            string    `json:"name"`
	CreatorNickname string    `json:"creator_nickname"`
	IsSubscribed    bool      `json:"is_subscribed"`
}

func (Calendar) TableName() string      { return "calendars" }
func (CalendarAdmin) TableName() string { return "calendar_admins" }

func (c *Calendar) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (a *CalendarAdmin) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Validate checks the calendar fields that do not depend on other records.
func (c *Calendar) Validate() error {
	if c.Name == "" {
		return apperrors.Validation("name is required")
	}
	if !colorPattern.MatchString(c.Color) {
		return apperrors.Validation("color must be a #RRGGBB value")
	}
	return nil
}
