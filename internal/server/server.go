// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"playlsd/internal/cache"
	"playlsd/internal/config"
	"playlsd/internal/database"
	"playlsd/internal/featureflags"
	"playlsd/internal/middleware"
	"playlsd/internal/models"
	"playlsd/internal/notifications"
	"playlsd/internal/repository"
	"playlsd/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	shutdownCtx    context.Context
	shutdownFn     context.CancelFunc

	userRepo         repository.UserRepository
	submissionRepo   repository.SubmissionRepository
	playlistRepo     repository.PlaylistRepository
	newsRepo         repository.NewsRepository
	chatRepo         repository.ChatRepository
	notificationRepo repository.NotificationRepository

	notifier *notifications.Notifier
	hub      *notifications.Hub

	featureFlags *featureflags.Manager

	userService         *service.UserService
	submissionService   *service.SubmissionService
	playlistService     *service.PlaylistService
	newsService         *service.NewsService
	chatService         *service.ChatService
	notificationService *service.NotificationService
}

// NewServer creates a new server instance, establishing database and Redis
// connections itself.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	server := &Server{
		config:           cfg,
		db:               db,
		redis:            redisClient,
		promMiddleware:   fiberprometheus.New("playlsd-api"),
		userRepo:         repository.NewUserRepository(db),
		submissionRepo:   repository.NewSubmissionRepository(db),
		playlistRepo:     repository.NewPlaylistRepository(db),
		newsRepo:         repository.NewNewsRepository(db),
		chatRepo:         repository.NewChatRepository(db),
		notificationRepo: repository.NewNotificationRepository(db),
		featureFlags:     featureflags.NewManager(cfg.FeatureFlags),
	}

	middleware.InitMiddleware(cfg)

	server.hub = notifications.NewHub()
	server.hub.SetAdminFilter(func(userID uint) bool {
		admin, err := server.isAdminByUserID(context.Background(), userID)
		return err == nil && admin
	})
	server.notifier = notifications.NewNotifier(redisClient, server.hub)

	server.userService = service.NewUserService(server.userRepo)
	server.submissionService = service.NewSubmissionService(
		server.submissionRepo, server.notificationRepo, server.notifier)
	server.playlistService = service.NewPlaylistService(server.playlistRepo)
	server.newsService = service.NewNewsService(server.newsRepo)
	server.chatService = service.NewChatService(
		server.chatRepo, server.userRepo, server.notifier, cfg.ChatTTL())
	server.notificationService = service.NewNotificationService(server.notificationRepo)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate request ID and user ID
	app.Use(middleware.ContextMiddleware())

	// OpenTelemetry spans per request
	app.Use(middleware.TracingMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS must run before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Upgrade, Connection, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they are handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "PlayLSD Backend Metrics Dashboard",
	}))

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/refresh", s.Refresh)
	auth.Post("/logout", s.Logout)

	// Public catalog routes
	playlists := api.Group("/playlists")
	playlists.Get("/", s.GetPublishedPlaylists)
	playlists.Get("/:slug", s.GetPlaylistBySlug)

	news := api.Group("/news")
	news.Get("/", s.GetPublishedNews)
	news.Get("/:id", s.GetPublishedNewsPost)

	// Public submission form
	api.Post("/submissions", middleware.RateLimit(
		s.redis, 5, 10*time.Minute, "submit"), s.CreateSubmission)

	// Protected routes
	protected := api.Group("", middleware.AuthRequired)

	users := protected.Group("/users")
	users.Get("/me", s.GetMyProfile)
	users.Put("/me", s.UpdateMyProfile)

	// Chat routes
	chat := protected.Group("/chat")
	chat.Get("/messages", s.GetChatMessages)
	chat.Post("/messages", middleware.RateLimit(
		s.redis, 15, time.Minute, "send_chat"), s.PostChatMessage)

	// Websocket endpoint
	api.Get("/ws", middleware.WebSocketAuthRequired, s.WebsocketHandler())

	// Admin routes
	admin := protected.Group("/admin", s.AdminRequired())
	admin.Get("/feature-flags", s.GetFeatureFlags)
	admin.Put("/users/:id/admin", s.SetUserAdmin)

	adminSubmissions := admin.Group("/submissions")
	adminSubmissions.Get("/", s.GetSubmissions)
	adminSubmissions.Get("/:id", s.GetSubmission)
	adminSubmissions.Post("/:id/approve", s.ApproveSubmission)
	adminSubmissions.Post("/:id/reject", s.RejectSubmission)
	adminSubmissions.Put("/:id/status", s.SetSubmissionStatus)

	adminPlaylists := admin.Group("/playlists")
	adminPlaylists.Get("/", s.GetAllPlaylists)
	adminPlaylists.Post("/", s.CreatePlaylist)
	adminPlaylists.Put("/:id/published", s.SetPlaylistPublished)
	adminPlaylists.Put("/:id/featured", s.SetPlaylistFeatured)
	adminPlaylists.Get("/:id", s.GetPlaylist)
	adminPlaylists.Put("/:id", s.UpdatePlaylist)
	adminPlaylists.Delete("/:id", s.DeletePlaylist)

	adminNews := admin.Group("/news")
	adminNews.Get("/", s.GetAllNews)
	adminNews.Post("/", s.CreateNews)
	adminNews.Put("/:id/published", s.SetNewsPublished)
	adminNews.Put("/:id/featured", s.SetNewsFeatured)
	adminNews.Get("/:id", s.GetNewsPost)
	adminNews.Put("/:id", s.UpdateNews)
	adminNews.Delete("/:id", s.DeleteNews)

	adminNotifications := admin.Group("/notifications")
	adminNotifications.Get("/", s.GetNotifications)
	adminNotifications.Post("/read-all", s.MarkAllNotificationsRead)
	adminNotifications.Post("/:id/read", s.MarkNotificationRead)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	// Redis is optional: the app degrades to single-instance delivery and
	// database-only reads without it.
	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// AdminRequired returns middleware that rejects non-admin users with 403.
// Must be placed after AuthRequired so that userID is available in locals.
func (s *Server) AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("userID").(uint)

		admin, err := s.isAdminByUserID(c.Context(), userID)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
		if !admin {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewUnauthorizedError("Admin access required"))
		}

		return c.Next()
	}
}

// Start starts the server and blocks until it exits.
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.shutdownCtx = ctx
	s.shutdownFn = cancel

	app := fiber.New(fiber.Config{
		AppName: "PlayLSD API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	if err := s.hub.StartWiring(ctx, s.notifier); err != nil {
		log.Printf("failed to start hub wiring: %v", err)
	}
	go s.chatService.RunSweeper(ctx, time.Hour)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.shutdownFn != nil {
		s.shutdownFn()
	}

	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if s.hub != nil {
		if err := s.hub.Shutdown(ctx); err != nil {
			log.Printf("error shutting down websocket hub: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
