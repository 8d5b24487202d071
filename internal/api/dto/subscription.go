package dto

import (
	"time"

	"github.com/google/uuid"
)

// SubscribeRequest represents the request body for subscribing to a calendar
type SubscribeRequest struct {
	CalendarID uuid.UUID `json:"calendar_id" binding:"required"`
}

// SetSubscriptionActiveRequest toggles the active flag of a subscription
type SetSubscriptionActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// SetVisibilityRequest replaces the set of visible calendars for the user
type SetVisibilityRequest struct {
	CalendarIDs  []uuid.UUID `json:"calendar_ids" binding:"required"`
	IsOnCalendar bool        `json:"is_on_calendar"`
}

// SubscriptionResponse represents a subscription row in API responses
type SubscriptionResponse struct {
	ID           uuid.UUID `json:"id"`
	CalendarID   uuid.UUID `json:"calendar_id"`
	IsActive     bool      `json:"is_active"`
	IsVisible    bool      `json:"is_visible"`
	IsOnCalendar bool      `json:"is_on_calendar"`
	CreatedAt    time.Time `json:"created_at"`
}
