package comment

import (
	"strings"
	"time"

	"github.com/PoodingDev/Evento-BE/internal/domain/apperrors"
	"github.com/google/uuid"
)

// Comment represents a threaded note attached to an event
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	EventID   uuid.UUID `gorm:"type:uuid;not null;index" json:"event_id"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null" json:"author_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Comment model
func (Comment) TableName() string {
	return "comments"
}

// Validate checks the comment content invariant.
func (c *Comment) Validate() error {
	if strings.TrimSpace(c.Content) == "" {
		return apperrors.Validation("comment content is required")
	}
	return nil
}
