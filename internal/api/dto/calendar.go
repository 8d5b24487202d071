package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateCalendarRequest represents the request body for creating a calendar
type CreateCalendarRequest struct {
	Name        string `json:"name" binding:"required,max=100" example:"Team standups"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color" binding:"required" example:"#FF8A3D"`
	IsPublic    bool   `json:"is_public"`
}

// UpdateCalendarRequest represents the request body for updating a calendar
type UpdateCalendarRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,max=100"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty" example:"#FF8A3D"`
	IsPublic    *bool   `json:"is_public,omitempty"`
}

// RedeemInvitationRequest carries an invitation code to redeem
type RedeemInvitationRequest struct {
	Code string `json:"code" binding:"required" example:"A3C9ZK"`
}

// CalendarResponse represents calendar data returned in API responses.
// InvitationCode is only populated for admins.
type CalendarResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	Color          string    `json:"color"`
	IsPublic       bool      `json:"is_public"`
	CreatorID      uuid.UUID `json:"creator_id"`
	InvitationCode string    `json:"invitation_code,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CalendarMemberResponse is one admin member of a calendar
type CalendarMemberResponse struct {
	UserID   uuid.UUID `json:"user_id"`
	Nickname string    `json:"nickname"`
}

// CalendarSearchResponse is one hit of a creator-nickname search
type CalendarSearchResponse struct {
	CalendarID      uuid.UUID `json:"calendar_id"`
	Name            string    `json:"name"`
	CreatorNickname string    `json:"creator_nickname"`
	IsSubscribed    bool      `json:"is_subscribed"`
}
