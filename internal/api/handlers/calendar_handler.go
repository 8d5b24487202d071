package handlers

import (
	"net/http"

	"github.com/PoodingDev/Evento-BE/internal/api/dto"
	"github.com/PoodingDev/Evento-BE/internal/api/middleware"
	"github.com/PoodingDev/Evento-BE/internal/domain/access"
	"github.com/PoodingDev/Evento-BE/internal/domain/calendar"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CalendarHandler struct {
	service   calendar.Service
	evaluator *access.Evaluator
}

func NewCalendarHandler(service calendar.Service, evaluator *access.Evaluator) *CalendarHandler {
	return &CalendarHandler{service: service, evaluator: evaluator}
}

// toCalendarResponse renders a calendar, hiding the invitation code from
// non-admins.
func toCalendarResponse(cal *calendar.Calendar, isAdmin bool) dto.CalendarResponse {
	resp := dto.CalendarResponse{
		ID:          cal.ID,
		Name:        cal.Name,
		Description: cal.Description,
		Color:       cal.Color,
		IsPublic:    cal.IsPublic,
		CreatorID:   cal.CreatorID,
		CreatedAt:   cal.CreatedAt,
		UpdatedAt:   cal.UpdatedAt,
	}
	if isAdmin {
		resp.InvitationCode = cal.InvitationCode
	}
	return resp
}

func calendarID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": "invalid calendar id"})
		return uuid.Nil, false
	}
	return id, true
}

// Create creates a new calendar owned by the caller
func (h *CalendarHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		unauthenticated(c)
		return
	}

	var req dto.CreateCalendarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	cal, err := h.service.CreateCalendar(c.Request.Context(), userID, calendar.CreateCalendarInput{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toCalendarResponse(cal, true))
}

// Get returns one calendar if the caller may read it
func (h *CalendarHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		unauthenticated(c)
		return
	}
	id, ok := calendarID(c)
	if !ok {
		return
	}

	if err := h.evaluator.CanReadCalendar(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}

	cal, err := h.service.GetCalendar(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	isAdmin, err := h.service.HasAdminPermission(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCalendarResponse(cal, isAdmin))
}

// Update modifies a calendar; admin only
func (h *CalendarHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		unauthenticated(c)
		return
	}
	id, ok := calendarID(c)
	if !ok {
		return
	}

	var req dto.UpdateCalendarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	cal, err := h.service.UpdateCalendar(c.Request.Context(), userID, id, calendar.UpdateCalendarInput{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCalendarResponse(cal, true))
}

// Delete removes a calendar and everything attached to it; admin only
func (h *CalendarHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		unauthenticated(c)
		return
	}
	id, ok := calendarID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteCalendar(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// List returns the calendars visible to the caller
func (h *CalendarHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		unauthenticated(c)
		return
	}

	cals, err := h.service.ListCalendars(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.CalendarResponse, 0, len(cals))
	for i := range cals {
		isAdmin, err := h.service.HasAdminPermission(c.Request.Context(), userID, cals[i].ID)
		if err != nil {
			respondError(c, err)
			return
		}
		resp = append(resp, toCalendarResponse(&cals[i], isAdmin))
	}
	c.JSON(http.StatusOK, resp)
}

// ListAdministered returns the calendars the caller can write
func (h *CalendarHandler) ListAdministered(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		unauthenticated(c)
		return
	}

	cals, err := h.service.ListAdminCalendars(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.CalendarResponse, 0, len(cals))
	for i := range cals {
		resp = append(resp, toCalendarResponse(&cals[i], true))
	}
	c.JSON(http.StatusOK, resp)
}

// RedeemInvitation adds the caller as an admin of the code's calendar
func (h *CalendarHandler) RedeemInvitation(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		unauthenticated(c)
		return
	}

	var req dto.RedeemInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	cal, err := h.service.RedeemInvitation(c.Request.Context(), userID, req.Code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCalendarResponse(cal, true))
}

// ListMembers returns a calendar's admin members; admin only
func (h *CalendarHandler) ListMembers(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		unauthenticated(c)
		return
	}
	id, ok := calendarID(c)
	if !ok {
		return
	}

	members, err := h.service.ListMembers(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.CalendarMemberResponse, 0, len(members))
	for _, m := range members {
		resp = append(resp, dto.CalendarMemberResponse{UserID: m.UserID, Nickname: m.Nickname})
	}
	c.JSON(http.StatusOK, resp)
}

// Search finds public calendars by creator nickname prefix
func (h *CalendarHandler) Search(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		unauthenticated(c)
		return
	}

	prefix := c.Query("nickname")
	if prefix == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": "nickname query parameter is required"})
		return
	}

	results, err := h.service.Search(c.Request.Context(), userID, prefix)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.CalendarSearchResponse, 0, len(results))
	for _, r := range results {
		resp = append(resp, dto.CalendarSearchResponse{
			CalendarID:      r.CalendarID,
			Name:            r.Name,
			CreatorNickname: r.CreatorNickname,
			IsSubscribed:    r.IsSubscribed,
		})
	}
	c.JSON(http.StatusOK, resp)
}
