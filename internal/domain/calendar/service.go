package calendar

import (
	"context"

	"github.com/PoodingDev/Evento-BE/internal/domain/apperrors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateCalendarInput carries the calendar creation fields. An empty
// InvitationCode asks the service to mint one.
type CreateCalendarInput struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	Color          string `json:"color"`
	IsPublic       bool   `json:"is_public"`
	InvitationCode string `json:"invitation_code,omitempty"`
}

// UpdateCalendarInput carries partial calendar updates.
type UpdateCalendarInput struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty"`
	IsPublic    *bool   `json:"is_public,omitempty"`
}

// Service defines the business logic interface for the calendar registry
type Service interface {
	CreateCalendar(ctx context.Context, creatorID uuid.UUID, input CreateCalendarInput) (*Calendar, error)
	GetCalendar(ctx context.Context, id uuid.UUID) (*Calendar, error)
	UpdateCalendar(ctx context.Context, userID, id uuid.UUID, input UpdateCalendarInput) (*Calendar, error)
	DeleteCalendar(ctx context.Context, userID, id uuid.UUID) error
	ListCalendars(ctx context.Context, userID uuid.UUID) ([]Calendar, error)
	ListAdminCalendars(ctx context.Context, userID uuid.UUID) ([]Calendar, error)

	RedeemInvitation(ctx context.Context, userID uuid.UUID, code string) (*Calendar, error)
	HasAdminPermission(ctx context.Context, userID, calendarID uuid.UUID) (bool, error)
	ListMembers(ctx context.Context, userID, calendarID uuid.UUID) ([]MemberInfo, error)
	Search(ctx context.Context, requesterID uuid.UUID, nicknamePrefix string) ([]SearchResult, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new calendar service instance
func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger}
}

func (s *service) CreateCalendar(ctx context.Context, creatorID uuid.UUID, input CreateCalendarInput) (*Calendar, error) {
	code := input.InvitationCode
	if code == "" {
		var err error
		code, err = GenerateInvitationCode()
		if err != nil {
			return nil, err
		}
	}

	cal := &Calendar{
		Name:           input.Name,
		Description:    input.Description,
		Color:          input.Color,
		IsPublic:       input.IsPublic,
		CreatorID:      creatorID,
		InvitationCode: code,
	}
	if err := cal.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.CreateWithCreator(ctx, cal); err != nil {
		return nil, err
	}

	// The creator must end up an admin even if the membership insert was
	// lost; re-check and repair rather than fail the whole creation.
	isMember, err := s.repo.HasAdminMembership(ctx, creatorID, cal.ID)
	if err == nil && !isMember {
		if err := s.repo.AddAdmin(ctx, cal.ID, creatorID); err != nil &&
			!apperrors.IsKind(err, apperrors.KindConflict) {
			s.logger.Warn("failed to repair creator admin membership",
				zap.String("calendar_id", cal.ID.String()),
				zap.Error(err))
		}
	}

	s.logger.Info("calendar created",
		zap.String("calendar_id", cal.ID.String()),
		zap.String("creator_id", creatorID.String()),
		zap.Bool("is_public", cal.IsPublic))
	return cal, nil
}

func (s *service) GetCalendar(ctx context.Context, id uuid.UUID) (*Calendar, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) UpdateCalendar(ctx context.Context, userID, id uuid.UUID, input UpdateCalendarInput) (*Calendar, error) {
	if err := s.requireAdmin(ctx, userID, id); err != nil {
		return nil, err
	}

	cal, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		cal.Name = *input.Name
	}
	if input.Description != nil {
		cal.Description = *input.Description
	}
	if input.Color != nil {
		cal.Color = *input.Color
	}
	if input.IsPublic != nil {
		cal.IsPublic = *input.IsPublic
	}
	if err := cal.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, cal); err != nil {
		return nil, err
	}
	return cal, nil
}

func (s *service) DeleteCalendar(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.requireAdmin(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("calendar deleted", zap.String("calendar_id", id.String()))
	return nil
}

func (s *service) ListCalendars(ctx context.Context, userID uuid.UUID) ([]Calendar, error) {
	return s.repo.ListVisible(ctx, userID)
}

func (s *service) ListAdminCalendars(ctx context.Context, userID uuid.UUID) ([]Calendar, error) {
	return s.repo.ListAdministered(ctx, userID)
}

func (s *service) RedeemInvitation(ctx context.Context, userID uuid.UUID, code string) (*Calendar, error) {
	cal, err := s.repo.GetByInvitationCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if cal.CreatorID == userID {
		return nil, apperrors.Conflict("creator is already a calendar admin")
	}
	isMember, err := s.repo.HasAdminMembership(ctx, userID, cal.ID)
	if err != nil {
		return nil, err
	}
	if isMember {
		return nil, apperrors.Conflict("user is already a calendar admin")
	}

	if err := s.repo.AddAdmin(ctx, cal.ID, userID); err != nil {
		return nil, err
	}
	s.logger.Info("invitation redeemed",
		zap.String("calendar_id", cal.ID.String()),
		zap.String("user_id", userID.String()))
	return cal, nil
}

// HasAdminPermission is the single authorization gate for calendar writes:
// the creator or any admin member.
func (s *service) HasAdminPermission(ctx context.Context, userID, calendarID uuid.UUID) (bool, error) {
	cal, err := s.repo.GetByID(ctx, calendarID)
	if err != nil {
		return false, err
	}
	if cal.CreatorID == userID {
		return true, nil
	}
	return s.repo.HasAdminMembership(ctx, userID, calendarID)
}

func (s *service) ListMembers(ctx context.Context, userID, calendarID uuid.UUID) ([]MemberInfo, error) {
	if err := s.requireAdmin(ctx, userID, calendarID); err != nil {
		return nil, err
	}
	return s.repo.ListMembers(ctx, calendarID)
}

func (s *service) Search(ctx context.Context, requesterID uuid.UUID, nicknamePrefix string) ([]SearchResult, error) {
	if nicknamePrefix == "" {
		return nil, apperrors.Validation("nickname is required")
	}
	return s.repo.SearchByCreatorNickname(ctx, requesterID, nicknamePrefix)
}

func (s *service) requireAdmin(ctx context.Context, userID, calendarID uuid.UUID) error {
	ok, err := s.HasAdminPermission(ctx, userID, calendarID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.PermissionDenied("calendar admin rights required")
	}
	return nil
}
