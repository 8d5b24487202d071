package handlers

import (
	"net/http"

	"github.com/PoodingDev/Evento-BE/internal/api/dto"
	"github.com/PoodingDev/Evento-BE/internal/api/middleware"
	"github.com/PoodingDev/Evento-BE/internal/domain/favorite"
	"github.com/gin-gonic/gin"
)

type FavoriteHandler struct {
	service favorite.Service
}

func NewFavoriteHandler(service favorite.Service) *FavoriteHandler {
	return &FavoriteHandler{service: service}
}

// Add pins an event to the caller's favorites
func (h *FavoriteHandler) Add(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		unauthenticated(c)
		return
	}

	var req dto.AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	f, err := h.service.AddFavorite(c.Request.Context(), userID, req.EventID, req.EasySidebar)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":           f.ID,
		"event_id":     f.EventID,
		"easy_sidebar": f.EasySidebar,
	})
}

// Remove unpins an event
func (h *FavoriteHandler) Remove(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		unauthenticated(c)
		return
	}
	evID, ok := eventID(c)
	if !ok {
		return
	}

	if err := h.service.RemoveFavorite(c.Request.Context(), userID, evID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// List returns the caller's favorites with rendered D-day values
func (h *FavoriteHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		unauthenticated(c)
		return
	}

	views, err := h.service.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.FavoriteResponse, 0, len(views))
	for _, v := range views {
		resp = append(resp, dto.FavoriteResponse{
			ID:          v.ID,
			EventID:     v.EventID,
			EventTitle:  v.EventTitle,
			StartTime:   v.StartTime,
			EasySidebar: v.EasySidebar,
			DDay:        v.DDay,
		})
	}
	c.JSON(http.StatusOK, resp)
}

// SetEasySidebar toggles the sidebar-ease flag of a favorite
func (h *FavoriteHandler) SetEasySidebar(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		unauthenticated(c)
		return
	}
	evID, ok := eventID(c)
	if !ok {
		return
	}

	var req dto.SetEasySidebarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.service.SetEasySidebar(c.Request.Context(), userID, evID, *req.EasySidebar); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
