package main

import (
	"context"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PoodingDev/Evento-BE/internal/api/handlers"
	"github.com/PoodingDev/Evento-BE/internal/api/middleware"
	"github.com/PoodingDev/Evento-BE/internal/api/routes"
	"github.com/PoodingDev/Evento-BE/internal/domain/access"
	"github.com/PoodingDev/Evento-BE/internal/domain/calendar"
	"github.com/PoodingDev/Evento-BE/internal/domain/comment"
	"github.com/PoodingDev/Evento-BE/internal/domain/event"
	"github.com/PoodingDev/Evento-BE/internal/domain/favorite"
	"github.com/PoodingDev/Evento-BE/internal/domain/subscription"
	"github.com/PoodingDev/Evento-BE/internal/domain/user"
	"github.com/PoodingDev/Evento-BE/internal/infrastructure/cache"
	"github.com/PoodingDev/Evento-BE/internal/infrastructure/persistence/postgres/connection"
	"github.com/PoodingDev/Evento-BE/internal/infrastructure/persistence/postgres/migrations"
	"github.com/PoodingDev/Evento-BE/internal/infrastructure/scheduler"
	"github.com/PoodingDev/Evento-BE/pkg/config"
	"github.com/PoodingDev/Evento-BE/pkg/logger"
	"github.com/PoodingDev/Evento-BE/pkg/security/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// RequestLoggerMiddleware logs all incoming HTTP requests
func RequestLoggerMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		log.Info("Request completed",
			zap.String("path", path),
			zap.String("method", method),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("") // Empty string will make it search in default locations
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	log := logger.NewLogger(cfg.Logging.Level)
	defer log.Sync()

	log.Info("Configuration loaded successfully")
	log.Info("Server mode: " + cfg.Server.Mode)

	// Set up Gin
	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	gin.DefaultWriter = os.Stdout

	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(RequestLoggerMiddleware(log))
	router.Use(middleware.NewMetricsMiddleware().CollectMetrics())
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORS.AllowedOrigins,
		AllowMethods: cfg.CORS.AllowedMethods,
		AllowHeaders: append(cfg.CORS.AllowedHeaders,
			"Accept-Encoding",
			"Content-Type",
			"Authorization",
			"X-Forwarded-For",
			"X-Real-IP",
		),
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-RateLimit-Remaining",
			"X-RateLimit-Reset",
		},
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	// Add Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Connect to database
	db, err := connection.NewDatabase(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if err := migrations.AutoMigrate(db, log.Logger); err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}

	// Initialize Redis
	redisConfig := cache.NewConfigFromEnv(cfg)
	redisClient, err := cache.NewRedisClient(redisConfig)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	// Initialize rate limiter with Redis client
	rateLimiter := auth.NewRedisRateLimiter(redisClient.GetClient(), 1*time.Minute, 1000)

	// Background maintenance (blacklist sweep, cache health reports)
	maintenance := scheduler.NewScheduler(redisClient, log)
	maintenance.Start()
	defer maintenance.Stop()

	// Initialize repositories
	userRepo := user.NewRepository(db.DB)
	calendarRepo := calendar.NewRepository(db.DB)
	subscriptionRepo := subscription.NewRepository(db.DB)
	eventRepo := event.NewRepository(db.DB)
	commentRepo := comment.NewRepository(db.DB)
	favoriteRepo := favorite.NewRepository(db.DB)

	// The evaluator answers every permission question; domain services take
	// it through their own narrow interfaces.
	evaluator := access.NewEvaluator(calendarRepo, subscriptionRepo)

	// Initialize services
	userService := user.NewService(userRepo, log.Logger)
	calendarService := calendar.NewService(calendarRepo, log.Logger)
	subscriptionService := subscription.NewService(subscriptionRepo, evaluator, log.Logger)
	eventService := event.NewService(eventRepo, evaluator, redisClient, cfg.Events.RejectOverlap, log.Logger)
	commentService := comment.NewService(commentRepo, eventRepo, evaluator, log.Logger)
	favoriteService := favorite.NewService(favoriteRepo, eventRepo, log.Logger)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService, cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.JWTExpiryHours)
	calendarHandler := handlers.NewCalendarHandler(calendarService, evaluator)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService)
	eventHandler := handlers.NewEventHandler(eventService)
	commentHandler := handlers.NewCommentHandler(commentService)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService)

	// Health check routes (no /api prefix as these are system endpoints)
	routes.SetupHealthRoutes(router, db, redisClient)

	// Add cache health check
	router.GET("/health/cache", func(c *gin.Context) {
		if err := redisClient.HealthCheck(c); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"component": "cache",
				"error":     err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"component": "cache",
			"metrics":   redisClient.GetMetrics(),
		})
	})

	// Apply rate limiting middleware globally
	router.Use(middleware.RateLimitMiddleware(rateLimiter))

	// Set up user routes
	userRoutes := routes.NewUserRoutes(userHandler, cfg.Auth.JWTSecret)
	userRoutes.RegisterRoutes(router)
	log.Info("Registered user routes at /api/users")

	// Calendar and subscription routes (protected)
	calendarRoutes := routes.NewCalendarRoutes(calendarHandler, subscriptionHandler, cfg.Auth.JWTSecret)
	calendarRoutes.RegisterRoutes(router)
	log.Info("Registered calendar routes at /api/calendars and /api/subscriptions")

	// Event, comment and favorite routes (protected)
	eventRoutes := routes.NewEventRoutes(eventHandler, commentHandler, favoriteHandler, cfg.Auth.JWTSecret)
	eventRoutes.RegisterRoutes(router)
	log.Info("Registered event routes at /api/events and /api/favorites")

	// Start server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info(fmt.Sprintf("Server starting on port %d", cfg.Server.Port))

		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited properly")
}
