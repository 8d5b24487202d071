package handlers

import (
	"net/http"
	"time"

	"github.com/PoodingDev/Evento-BE/internal/api/dto"
	"github.com/PoodingDev/Evento-BE/internal/api/middleware"
	"github.com/PoodingDev/Evento-BE/internal/domain/apperrors"
	"github.com/PoodingDev/Evento-BE/internal/domain/user"
	"github.com/PoodingDev/Evento-BE/pkg/security/auth"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

var log = logrus.New()

type UserHandler struct {
	service        user.Service
	jwtSecret      string
	jwtIssuer      string
	jwtExpiryHours int
}

func NewUserHandler(service user.Service, jwtSecret, jwtIssuer string, jwtExpiryHours int) *UserHandler {
	return &UserHandler{
		service:        service,
		jwtSecret:      jwtSecret,
		jwtIssuer:      jwtIssuer,
		jwtExpiryHours: jwtExpiryHours,
	}
}

func toUserResponse(u *user.User) dto.UserResponse {
	resp := dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Nickname:  u.Nickname,
		Username:  u.Username,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if !u.Birth.IsZero() {
		birth := u.Birth
		resp.Birth = &birth
	}
	return resp
}

func parseBirth(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, apperrors.Newf(apperrors.KindValidation, "invalid birth date %q, want YYYY-MM-DD", s)
	}
	return t, nil
}

// Register creates a new user account
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Errorf("Failed to bind CreateUserRequest: %v", err)
		bindError(c, err)
		return
	}

	birth, err := parseBirth(req.Birth)
	if err != nil {
		respondError(c, err)
		return
	}

	u, err := h.service.Register(c.Request.Context(), user.CreateUserInput{
		Email:    req.Email,
		Nickname: req.Nickname,
		Username: req.Username,
		Birth:    birth,
		Password: req.Password,
	})
	if err != nil {
		log.Errorf("Failed to register user: %v", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toUserResponse(u))
}

// Login authenticates a user and issues a JWT
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	u, err := h.service.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		log.Error("Authentication failed", zap.Error(err))
		respondError(c, err)
		return
	}

	token, err := auth.GenerateToken(u.ID, u.Email, u.Nickname, h.jwtSecret, h.jwtIssuer, h.jwtExpiryHours)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token: token,
		User:  toUserResponse(u),
	})
}

// Logout invalidates the caller's token
func (h *UserHandler) Logout(c *gin.Context) {
	token, ok := middleware.GetToken(c)
	if !ok {
		unauthenticated(c)
		return
	}
	auth.GetTokenBlacklist().Add(token)
	c.Status(http.StatusNoContent)
}

// Me returns the authenticated user's profile
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		unauthenticated(c)
		return
	}

	u, err := h.service.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(u))
}

// Update modifies the authenticated user's profile
func (h *UserHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		unauthenticated(c)
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	input := user.UpdateUserInput{
		Nickname: req.Nickname,
		Username: req.Username,
		Password: req.Password,
	}
	if req.Birth != nil {
		birth, err := parseBirth(*req.Birth)
		if err != nil {
			respondError(c, err)
			return
		}
		input.Birth = &birth
	}

	u, err := h.service.UpdateUser(c.Request.Context(), userID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(u))
}

// Deactivate soft-deletes the authenticated user's account
func (h *UserHandler) Deactivate(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		unauthenticated(c)
		return
	}

	if err := h.service.DeactivateUser(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}

	// A deactivated account's token is no longer usable.
	if token, ok := middleware.GetToken(c); ok {
		auth.GetTokenBlacklist().Add(token)
	}
	c.Status(http.StatusNoContent)
}
