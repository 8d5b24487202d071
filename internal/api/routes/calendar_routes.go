package routes

import (
	"github.com/PoodingDev/Evento-BE/internal/api/handlers"
	"github.com/PoodingDev/Evento-BE/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

// CalendarRoutes handles the setup of calendar and subscription routes
type CalendarRoutes struct {
	calendars     *handlers.CalendarHandler
	subscriptions *handlers.SubscriptionHandler
	jwtSecret     string
}

// NewCalendarRoutes creates a new CalendarRoutes instance
func NewCalendarRoutes(calendars *handlers.CalendarHandler, subscriptions *handlers.SubscriptionHandler, jwtSecret string) *CalendarRoutes {
	return &CalendarRoutes{
		calendars:     calendars,
		subscriptions: subscriptions,
		jwtSecret:     jwtSecret,
	}
}

// RegisterRoutes registers all calendar-related routes
func (r *CalendarRoutes) RegisterRoutes(router *gin.Engine) {
	calendars := router.Group("/api/calendars")
	calendars.Use(middleware.NewAuthMiddleware(r.jwtSecret))

	calendars.POST("", r.calendars.Create)
	calendars.GET("", r.calendars.List)
	calendars.GET("/administered", r.calendars.ListAdministered)
	calendars.GET("/search", r.calendars.Search)
	calendars.POST("/invitations/redeem", r.calendars.RedeemInvitation)
	calendars.GET("/:id", r.calendars.Get)
	calendars.PATCH("/:id", r.calendars.Update)
	calendars.DELETE("/:id", r.calendars.Delete)
	calendars.GET("/:id/members", r.calendars.ListMembers)

	subscriptions := router.Group("/api/subscriptions")
	subscriptions.Use(middleware.NewAuthMiddleware(r.jwtSecret))

	subscriptions.POST("", r.subscriptions.Subscribe)
	subscriptions.GET("", r.subscriptions.List)
	subscriptions.PUT("/visibility", r.subscriptions.SetVisibility)
	subscriptions.PATCH("/:id", r.subscriptions.SetActive)
	subscriptions.DELETE("/:id", r.subscriptions.Unsubscribe)
}
