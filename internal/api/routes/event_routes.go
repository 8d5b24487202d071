package routes

import (
	"github.com/PoodingDev/Evento-BE/internal/api/handlers"
	"github.com/PoodingDev/Evento-BE/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

// EventRoutes handles the setup of event, comment and favorite routes
type EventRoutes struct {
	events    *handlers.EventHandler
	comments  *handlers.CommentHandler
	favorites *handlers.FavoriteHandler
	jwtSecret string
}

// NewEventRoutes creates a new EventRoutes instance
func NewEventRoutes(events *handlers.EventHandler, comments *handlers.CommentHandler, favorites *handlers.FavoriteHandler, jwtSecret string) *EventRoutes {
	return &EventRoutes{
		events:    events,
		comments:  comments,
		favorites: favorites,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers all event-related routes
func (r *EventRoutes) RegisterRoutes(router *gin.Engine) {
	events := router.Group("/api/events")
	events.Use(middleware.NewAuthMiddleware(r.jwtSecret))

	events.POST("", r.events.Create)
	events.GET("/public", r.events.ListPublic)
	events.GET("/visible", r.events.ListVisible)
	events.GET("/active", r.events.ListActive)
	events.POST("/upload", r.events.Upload)
	events.GET("/calendar/:id", r.events.ListByCalendar)
	events.GET("/:id", r.events.Get)
	events.PATCH("/:id", r.events.Update)
	events.DELETE("/:id", r.events.Delete)

	events.POST("/:id/comments", r.comments.Create)
	events.GET("/:id/comments", r.comments.List)
	events.PATCH("/:id/comments/:comment_id", r.comments.Update)
	events.DELETE("/:id/comments/:comment_id", r.comments.Delete)

	favorites := router.Group("/api/favorites")
	favorites.Use(middleware.NewAuthMiddleware(r.jwtSecret))

	favorites.POST("", r.favorites.Add)
	favorites.GET("", r.favorites.List)
	favorites.PATCH("/:id", r.favorites.SetEasySidebar)
	favorites.DELETE("/:id", r.favorites.Remove)
}
