package event

import (
	"strings"
	"time"

	"github.com/PoodingDev/Evento-BE/internal/domain/apperrors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Visibility tags an event as publicly readable or restricted to the
// calendar's writers and subscribers.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// ParseVisibility accepts the two canonical tags, case-insensitively.
func ParseVisibility(s string) (Visibility, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(VisibilityPublic):
		return VisibilityPublic, nil
	case string(VisibilityPrivate):
		return VisibilityPrivate, nil
	default:
		return "", apperrors.Newf(apperrors.KindValidation, "invalid visibility %q", s)
	}
}

// VisibilityOf maps the stored flag back to its tag.
func VisibilityOf(isPublic bool) Visibility {
	if isPublic {
		return VisibilityPublic
	}
	return VisibilityPrivate
}

// Event represents a scheduled entry on a calendar
type Event struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CalendarID  uuid.UUID `gorm:"type:uuid;not null;index" json:"calendar_id"`
	Title       string    `gorm:"type:varchar(200);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	StartTime   time.Time `gorm:"not null" json:"start_time"`
	EndTime     time.Time `gorm:"not null" json:"end_time"`
	IsPublic    bool      `gorm:"not null" json:"is_public"`
	Location    string    `gorm:"type:varchar(200)" json:"location"`
	CreatedBy   uuid.UUID `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Event model
func (Event) TableName() string {
	return "events"
}

// BeforeCreate is a GORM hook that generates a UUID before creating
func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// Visibility returns the event's tag form.
func (e *Event) Visibility() Visibility {
	return VisibilityOf(e.IsPublic)
}

// Validate checks the invariants every stored event must satisfy.
func (e *Event) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return apperrors.Validation("event title is required")
	}
	if e.StartTime.IsZero() || e.EndTime.IsZero() {
		return apperrors.Validation("event start and end times are required")
	}
	if !e.EndTime.After(e.StartTime) {
		return apperrors.Validation("event end time must be after start time")
	}
	return nil
}

// ParseID accepts only canonical 36-character UUID strings.
func ParseID(s string) (uuid.UUID, error) {
	if len(s) != 36 {
		return uuid.Nil, apperrors.Newf(apperrors.KindValidation, "invalid event id %q", s)
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, apperrors.Newf(apperrors.KindValidation, "invalid event id %q", s)
	}
	return id, nil
}
