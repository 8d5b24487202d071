package handlers

import (
	"net/http"

	"github.com/PoodingDev/Evento-BE/internal/domain/apperrors"
	"github.com/gin-gonic/gin"
)

// statusOf maps an error kind to its HTTP status code.
func statusOf(err error) int {
	switch apperrors.KindOf(err) {
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindPermissionDenied:
		return http.StatusForbidden
	case apperrors.KindConflict:
		return http.StatusConflict
	case apperrors.KindValidation:
		return http.StatusBadRequest
	case apperrors.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError renders a domain error as {"error": kind, "message": text}.
// Unknown errors become an opaque 500 so internals never leak.
func respondError(c *gin.Context, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		c.JSON(status, gin.H{"error": "internal", "message": "internal server error"})
		return
	}
	c.JSON(status, gin.H{
		"error":   string(apperrors.KindOf(err)),
		"message": err.Error(),
	})
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": err.Error()})
}

func unauthenticated(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "user not authenticated"})
}
