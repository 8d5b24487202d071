package handlers

import (
	"net/http"
	"strconv"

	"github.com/PoodingDev/Evento-BE/internal/api/dto"
	"github.com/PoodingDev/Evento-BE/internal/api/middleware"
	"github.com/PoodingDev/Evento-BE/internal/domain/comment"
	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	service comment.Service
}

func NewCommentHandler(service comment.Service) *CommentHandler {
	return &CommentHandler{service: service}
}

func toCommentResponse(cm *comment.Comment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:        cm.ID,
		EventID:   cm.EventID,
		AuthorID:  cm.AuthorID,
		Content:   cm.Content,
		CreatedAt: cm.CreatedAt,
		UpdatedAt: cm.UpdatedAt,
	}
}

func commentID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("comment_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": "invalid comment id"})
		return 0, false
	}
	return uint(id), true
}

// Create adds a comment to an event
func (h *CommentHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		unauthenticated(c)
		return
	}
	evID, ok := eventID(c)
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	cm, err := h.service.CreateComment(c.Request.Context(), userID, evID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCommentResponse(cm))
}

// List returns the comments on an event
func (h *CommentHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		unauthenticated(c)
		return
	}
	evID, ok := eventID(c)
	if !ok {
		return
	}

	comments, err := h.service.ListComments(c.Request.Context(), userID, evID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		resp = append(resp, toCommentResponse(&comments[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Update edits a comment
func (h *CommentHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		unauthenticated(c)
		return
	}
	id, ok := commentID(c)
	if !ok {
		return
	}

	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	cm, err := h.service.UpdateComment(c.Request.Context(), userID, id, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCommentResponse(cm))
}

// Delete removes a comment
func (h *CommentHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		unauthenticated(c)
		return
	}
	id, ok := commentID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteComment(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
