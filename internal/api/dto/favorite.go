package dto

import (
	"time"

	"github.com/google/uuid"
)

// AddFavoriteRequest represents the request body for pinning an event
type AddFavoriteRequest struct {
	EventID     uuid.UUID `json:"event_id" binding:"required"`
	EasySidebar bool      `json:"easy_sidebar"`
}

// SetEasySidebarRequest toggles the sidebar-ease flag of a favorite
type SetEasySidebarRequest struct {
	EasySidebar *bool `json:"easy_sidebar" binding:"required"`
}

// FavoriteResponse represents a favorite with its rendered D-day
type FavoriteResponse struct {
	ID          uint      `json:"id"`
	EventID     uuid.UUID `json:"event_id"`
	EventTitle  string    `json:"event_title"`
	StartTime   time.Time `json:"start_time"`
	EasySidebar bool      `json:"easy_sidebar"`
	DDay        string    `json:"d_day"`
}
