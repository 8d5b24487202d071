package routes

import (
	"github.com/PoodingDev/Evento-BE/internal/api/handlers"
	"github.com/PoodingDev/Evento-BE/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

// UserRoutes handles the setup of user-related routes
type UserRoutes struct {
	handler   *handlers.UserHandler
	jwtSecret string
}

// NewUserRoutes creates a new UserRoutes instance
func NewUserRoutes(handler *handlers.UserHandler, jwtSecret string) *UserRoutes {
	return &UserRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers all user-related routes
func (r *UserRoutes) RegisterRoutes(router *gin.Engine) {
	users := router.Group("/api/users")

	users.POST("", r.handler.Register)
	users.POST("/login", r.handler.Login)

	authed := users.Group("")
	authed.Use(middleware.NewAuthMiddleware(r.jwtSecret))
	authed.POST("/logout", r.handler.Logout)
	authed.GET("/me", r.handler.Me)
	authed.PATCH("/me", r.handler.Update)
	authed.DELETE("/me", r.handler.Deactivate)
}
