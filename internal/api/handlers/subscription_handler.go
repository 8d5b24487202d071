package handlers

import (
	"net/http"

	"github.com/PoodingDev/Evento-BE/internal/api/dto"
	"github.com/PoodingDev/Evento-BE/internal/api/middleware"
	"github.com/PoodingDev/Evento-BE/internal/domain/subscription"
	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	service subscription.Service
}

func NewSubscriptionHandler(service subscription.Service) *SubscriptionHandler {
	return &SubscriptionHandler{service: service}
}

func toSubscriptionResponse(sub *subscription.Subscription) dto.SubscriptionResponse {
	return dto.SubscriptionResponse{
		ID:           sub.ID,
		CalendarID:   sub.CalendarID,
		IsActive:     sub.IsActive,
		IsVisible:    sub.IsVisible,
		IsOnCalendar: sub.IsOnCalendar,
		CreatedAt:    sub.CreatedAt,
	}
}

// Subscribe adds the caller to a calendar's subscriber list
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		unauthenticated(c)
		return
	}

	var req dto.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	sub, err := h.service.Subscribe(c.Request.Context(), userID, req.CalendarID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toSubscriptionResponse(sub))
}

// Unsubscribe removes the caller's subscription to a calendar
func (h *SubscriptionHandler) Unsubscribe(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		unauthenticated(c)
		return
	}
	id, ok := calendarID(c)
	if !ok {
		return
	}

	if err := h.service.Unsubscribe(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetActive toggles whether a subscription feeds visible-event queries
func (h *SubscriptionHandler) SetActive(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		unauthenticated(c)
		return
	}
	id, ok := calendarID(c)
	if !ok {
		return
	}

	var req dto.SetSubscriptionActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.service.SetActive(c.Request.Context(), userID, id, *req.IsActive); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetVisibility atomically replaces the set of visible calendars
func (h *SubscriptionHandler) SetVisibility(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		unauthenticated(c)
		return
	}

	var req dto.SetVisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.service.SetVisibility(c.Request.Context(), userID, req.CalendarIDs, req.IsOnCalendar); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// List returns all of the caller's subscriptions
func (h *SubscriptionHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		unauthenticated(c)
		return
	}

	subs, err := h.service.ListSubscriptions(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.SubscriptionResponse, 0, len(subs))
	for i := range subs {
		resp = append(resp, toSubscriptionResponse(&subs[i]))
	}
	c.JSON(http.StatusOK, resp)
}
