package user

import (
	"context"
	"time"

	"github.com/PoodingDev/Evento-BE/internal/domain/apperrors"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// CreateUserInput carries the registration fields.
type CreateUserInput struct {
	Email    string    `json:"email"`
	Nickname string    `json:"nickname"`
	Username string    `json:"username"`
	Birth    time.Time `json:"birth"`
	Password string    `json:"password"`
}

// UpdateUserInput carries partial profile updates.
type UpdateUserInput struct {
	Nickname *string    `json:"nickname,omitempty"`
	Username *string    `json:"username,omitempty"`
	Birth    *time.Time `json:"birth,omitempty"`
	Password *string    `json:"password,omitempty"`
}

// Service defines the business logic interface for users
type Service interface {
	Register(ctx context.Context, input CreateUserInput) (*User, error)
	Authenticate(ctx context.Context, email, password string) (*User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*User, error)
	DeactivateUser(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new user service instance
func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger}
}

func (s *service) Register(ctx context.Context, input CreateUserInput) (*User, error) {
	if input.Email == "" || input.Nickname == "" || input.Password == "" {
		return nil, apperrors.Validation("email, nickname and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &User{
		Email:        input.Email,
		Nickname:     input.Nickname,
		Username:     input.Username,
		Birth:        input.Birth,
		PasswordHash: string(hash),
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		zap.String("user_id", u.ID.String()),
		zap.String("nickname", u.Nickname))
	return u, nil
}

func (s *service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindNotFound) {
			return nil, apperrors.Unauthorized("invalid credentials")
		}
		return nil, err
	}

	if !u.IsActive {
		return nil, apperrors.Unauthorized("account is inactive")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.Unauthorized("invalid credentials")
	}

	return u, nil
}

func (s *service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) UpdateUser(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Nickname != nil && *input.Nickname != u.Nickname {
		taken, err := s.repo.NicknameTaken(ctx, *input.Nickname, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperrors.Conflict("nickname already in use")
		}
		u.Nickname = *input.Nickname
	}
	if input.Username != nil {
		u.Username = *input.Username
	}
	if input.Birth != nil {
		u.Birth = *input.Birth
	}
	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hash)
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) DeactivateUser(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return err
	}
	s.logger.Info("user deactivated", zap.String("user_id", id.String()))
	return nil
}
