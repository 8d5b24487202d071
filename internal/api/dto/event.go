package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateEventRequest represents the request body for creating an event
type CreateEventRequest struct {
	CalendarID  uuid.UUID `json:"calendar_id" binding:"required"`
	Title       string    `json:"title" binding:"required,max=200"`
	Description string    `json:"description,omitempty"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	EndTime     time.Time `json:"end_time" binding:"required"`
	Visibility  string    `json:"visibility" binding:"required" example:"public"`
	Location    string    `json:"location,omitempty"`
}

// UpdateEventRequest represents the request body for updating an event
type UpdateEventRequest struct {
	Title       *string    `json:"title,omitempty" binding:"omitempty,max=200"`
	Description *string    `json:"description,omitempty"`
	StartTime   *time.Time `json:"start_time,omitempty"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	Visibility  *string    `json:"visibility,omitempty" example:"private"`
	Location    *string    `json:"location,omitempty"`
}

// EventResponse represents event data returned in API responses
type EventResponse struct {
	ID          uuid.UUID `json:"id"`
	CalendarID  uuid.UUID `json:"calendar_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Visibility  string    `json:"visibility"`
	Location    string    `json:"location,omitempty"`
	CreatedBy   uuid.UUID `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UploadRowResponse reports the outcome of one uploaded row
type UploadRowResponse struct {
	Row     int    `json:"row"`
	EventID string `json:"event_id,omitempty"`
	Action  string `json:"action,omitempty"`
	Error   string `json:"error,omitempty"`
}

// UploadReportResponse summarizes a bulk event upload
type UploadReportResponse struct {
	Created int                 `json:"created"`
	Updated int                 `json:"updated"`
	Failed  int                 `json:"failed"`
	Rows    []UploadRowResponse `json:"rows"`
}
