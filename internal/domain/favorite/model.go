package favorite

import (
	"time"

	"github.com/google/uuid"
)

// FavoriteEvent pins an event to a user's sidebar
type FavoriteEvent struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorite_pair" json:"user_id"`
	EventID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorite_pair" json:"event_id"`
	EasySidebar bool      `gorm:"not null" json:"easy_sidebar"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for the FavoriteEvent model
func (FavoriteEvent) TableName() string {
	return "favorites"
}

// FavoriteView is a favorite joined with its event for listing.
type FavoriteView struct {
	ID          uint      `json:"id"`
	EventID     uuid.UUID `json:"event_id"`
	EventTitle  string    `json:"event_title"`
	StartTime   time.Time `json:"start_time"`
	EasySidebar bool      `json:"easy_sidebar"`
	DDay        string    `json:"d_day"`
}
