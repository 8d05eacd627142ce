// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"fmt"
	"time"

	"smashboard/internal/cache"
	"smashboard/internal/config"
	"smashboard/internal/database"
	"smashboard/internal/middleware"
	"smashboard/internal/repository"
	"smashboard/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
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
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	tagRepo     repository.TagRepository
	commentRepo repository.CommentRepository

	userService      *service.UserService
	postService      *service.PostService
	commentService   *service.CommentService
	recommendService *service.RecommendService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient()), nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Tests and bootstrap layers that establish DB/Redis themselves use this.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	middleware.InitMiddleware(cfg)

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: fiberprometheus.New("smashboard-api"),
		userRepo:       repository.NewUserRepository(db),
		postRepo:       repository.NewPostRepository(db),
		tagRepo:        repository.NewTagRepository(db),
		commentRepo:    repository.NewCommentRepository(db),
	}

	server.userService = service.NewUserService(server.userRepo, server.postRepo)
	server.postService = service.NewPostService(server.postRepo, server.tagRepo)
	server.commentService = service.NewCommentService(server.commentRepo, server.postRepo)
	server.recommendService = service.NewRecommendService(server.userRepo, server.postRepo)

	return server
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate request ID and user ID into slog
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	// OpenTelemetry spans per request
	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
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

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", s.Signup)
	auth.Post("/login", s.Login)

	// Public browse routes; OptionalAuth lets the feed personalize when a
	// token is present and stay anonymous otherwise.
	posts := api.Group("/posts")
	posts.Get("/", s.GetPosts)
	posts.Get("/search", s.SearchPosts)
	posts.Get("/hot", s.GetHotPosts)
	posts.Get("/recommended", middleware.OptionalAuth, s.GetRecommendedPosts)
	posts.Get("/:id/comments", s.GetComments)
	posts.Get("/:id", middleware.OptionalAuth, s.GetPost)

	tags := api.Group("/tags")
	tags.Get("/", s.GetTags)

	users := api.Group("/users")
	users.Get("/:id", s.GetUserProfile)

	// Protected routes
	protected := api.Group("", middleware.AuthRequired)

	me := protected.Group("/me")
	me.Get("/", s.GetMyProfile)
	me.Put("/", s.UpdateMyProfile)
	me.Get("/bookmarks", s.GetMyBookmarks)
	me.Get("/affinity", s.GetTagAffinity)
	me.Get("/similar", s.GetSimilarUsers)

	protectedUsers := protected.Group("/users")
	protectedUsers.Post("/:id/follow", s.FollowUser)
	protectedUsers.Delete("/:id/follow", s.UnfollowUser)

	protectedPosts := protected.Group("/posts")
	protectedPosts.Post("/", s.CreatePost)
	// Specific /:id/:resource routes before the generic /:id routes
	protectedPosts.Post("/:id/like", s.TogglePostLike)
	protectedPosts.Post("/:id/bookmark", s.TogglePostBookmark)
	protectedPosts.Post("/:id/tags", s.AttachTags)
	protectedPosts.Delete("/:id/tags/:tagId", s.DetachTag)
	protectedPosts.Post("/:id/comments", s.CreateComment)
	protectedPosts.Put("/:id", s.UpdatePost)
	protectedPosts.Delete("/:id", s.DeletePost)

	comments := protected.Group("/comments")
	comments.Post("/:id/like", s.ToggleCommentLike)
	comments.Put("/:id", s.UpdateComment)
	comments.Delete("/:id", s.DeleteComment)
}

// Shutdown releases the server's database and cache connections.
func (s *Server) Shutdown() error {
	if err := cache.Close(); err != nil {
		return err
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
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
	ctx := c.Context()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	// The cache is optional; readiness only degrades when the database is down.
	redisStatus := "unavailable"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overall := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overall = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}
