package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a registered account. Accounts are soft-deleted: delete
// flips IsActive and the row stays while calendars or events reference it.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Email        string    `json:"email" gorm:"uniqueIndex:idx_user_email;not null"`
	Nickname     string    `json:"nickname" gorm:"uniqueIndex:idx_user_nickname;not null;size:30"`
	Username     string    `json:"username" gorm:"not null;size:30"`
	Birth        time.Time `json:"birth" gorm:"type:date"`
	PasswordHash string    `json:"-" gorm:"not null"`
	IsActive     bool      `json:"is_active" gorm:"not null;index:idx_user_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
