// Package server contains the HTTP handlers for the marketplace API.
package server

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"bloxmarket/internal/cache"
	"bloxmarket/internal/config"
	"bloxmarket/internal/database"
	"bloxmarket/internal/featureflags"
	"bloxmarket/internal/middleware"
	"bloxmarket/internal/models"
	"bloxmarket/internal/repository"
	"bloxmarket/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/golang-jwt/jwt/v5"
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
	userRepo       repository.UserRepository
	tradeRepo      repository.TradeRepository
	forumRepo      repository.ForumRepository
	eventRepo      repository.EventRepository
	voteRepo       repository.VoteRepository
	commentRepo    repository.CommentRepository
	wishlistRepo   repository.WishlistRepository
	vouchRepo      repository.VouchRepository
	reportRepo     repository.ReportRepository
	verifyRepo     repository.VerificationRepository
	featureFlags   *featureflags.Manager

	userService     *service.UserService
	tradeService    *service.TradeService
	forumService    *service.ForumService
	eventService    *service.EventService
	voteService     *service.VoteService
	commentService  *service.CommentService
	wishlistService *service.WishlistService
	vouchService    *service.VouchService
	reportService   *service.ReportService
	verifyService   *service.VerificationService
}

// NewServer creates a new server instance with all dependencies
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
	prom := middleware.InitMetrics("bloxmarket-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		userRepo:       repository.NewUserRepository(db),
		tradeRepo:      repository.NewTradeRepository(db),
		forumRepo:      repository.NewForumRepository(db),
		eventRepo:      repository.NewEventRepository(db),
		voteRepo:       repository.NewVoteRepository(db),
		commentRepo:    repository.NewCommentRepository(db),
		wishlistRepo:   repository.NewWishlistRepository(db),
		vouchRepo:      repository.NewVouchRepository(db),
		reportRepo:     repository.NewReportRepository(db),
		verifyRepo:     repository.NewVerificationRepository(db),
		featureFlags:   featureflags.NewManager(cfg.FeatureFlags),
	}

	server.userService = service.NewUserService(server.userRepo)
	server.tradeService = service.NewTradeService(server.tradeRepo, server.roleByUserID)
	server.forumService = service.NewForumService(server.forumRepo, server.roleByUserID)
	server.eventService = service.NewEventService(server.eventRepo, server.roleByUserID)
	server.voteService = service.NewVoteService(server.voteRepo, server.subjectOwner)
	server.commentService = service.NewCommentService(server.commentRepo, server.subjectOwner, server.roleByUserID)
	server.wishlistService = service.NewWishlistService(server.wishlistRepo)
	server.vouchService = service.NewVouchService(server.vouchRepo, server.userRepo, server.tradeRepo, server.roleByUserID)
	server.reportService = service.NewReportService(server.reportRepo, server.userRepo, server.subjectOwner)
	server.verifyService = service.NewVerificationService(server.verifyRepo, server.userRepo)

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

	// Tracing span per request
	app.Use(middleware.TracingMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
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
	api.Get("/", s.HealthCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "BloxMarket Metrics Dashboard",
	}))

	// Uploaded files (trade images, avatars, verification documents)
	app.Static("/uploads", s.config.UploadDir)

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "register"), s.Register)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/refresh", s.AuthRequired(), s.Refresh)
	auth.Post("/logout", s.AuthRequired(), s.Logout)
	auth.Get("/me", s.AuthRequired(), s.Me)

	// Public browse routes
	publicTrades := api.Group("/trades")
	publicTrades.Get("/", s.GetTrades)
	publicTrades.Get("/:id/comments", s.GetComments(models.SubjectTrade))
	publicTrades.Get("/:id", s.GetTrade)

	publicForum := api.Group("/forum")
	publicForum.Get("/", s.GetForumPosts)
	publicForum.Get("/:id/comments", s.GetComments(models.SubjectForumPost))
	publicForum.Get("/:id", s.GetForumPost)

	publicEvents := api.Group("/events")
	publicEvents.Get("/", s.GetEvents)
	publicEvents.Get("/:id/comments", s.GetComments(models.SubjectEvent))
	publicEvents.Get("/:id", s.GetEvent)

	// Public user surface
	api.Get("/users/:id/vouches", s.GetUserVouches)
	api.Get("/users/:id/trades", s.GetUserTrades)
	api.Get("/users/:id/wishlist", s.GetUserWishlist)
	api.Get("/users/:id", s.GetUserProfile)

	// Protected routes
	protected := api.Group("", s.AuthRequired())

	// Trades
	trades := protected.Group("/trades")
	trades.Post("/", middleware.RateLimit(
		s.redis, 5, 5*time.Minute, "create_trade"), s.CreateTrade)
	// Specific /:id/:resource routes BEFORE generic /:id
	trades.Post("/:id/vote", s.Vote(models.SubjectTrade))
	trades.Post("/:id/comments", middleware.RateLimit(
		s.redis, 5, time.Minute, "create_comment"), s.CreateComment(models.SubjectTrade))
	trades.Post("/:id/images", s.UploadTradeImage)
	trades.Patch("/:id/status", s.UpdateTradeStatus)
	trades.Patch("/:id", s.UpdateTrade)
	trades.Delete("/:id", s.DeleteTrade)

	// Forum
	forum := protected.Group("/forum")
	forum.Post("/", middleware.RateLimit(
		s.redis, 5, 5*time.Minute, "create_forum_post"), s.CreateForumPost)
	forum.Post("/:id/vote", s.Vote(models.SubjectForumPost))
	forum.Post("/:id/comments", middleware.RateLimit(
		s.redis, 5, time.Minute, "create_comment"), s.CreateComment(models.SubjectForumPost))
	forum.Patch("/:id", s.UpdateForumPost)
	forum.Delete("/:id", s.DeleteForumPost)

	// Events / giveaways
	events := protected.Group("/events")
	events.Post("/", s.CreateEvent)
	events.Post("/:id/vote", s.Vote(models.SubjectEvent))
	events.Post("/:id/comments", middleware.RateLimit(
		s.redis, 5, time.Minute, "create_comment"), s.CreateComment(models.SubjectEvent))
	events.Patch("/:id", s.UpdateEvent)
	events.Delete("/:id", s.DeleteEvent)

	// Comments (delete only; no edit)
	protected.Delete("/comments/:commentId", s.DeleteComment)

	// Wishlist
	wishlist := protected.Group("/wishlist")
	wishlist.Get("/", s.GetMyWishlist)
	wishlist.Post("/", s.CreateWishlistItem)
	wishlist.Patch("/:itemId", s.UpdateWishlistItem)
	wishlist.Delete("/:itemId", s.DeleteWishlistItem)

	// Vouches
	vouches := protected.Group("/vouches")
	vouches.Post("/", middleware.RateLimit(
		s.redis, 10, 10*time.Minute, "create_vouch"), s.CreateVouch)
	vouches.Delete("/:id", s.DeleteVouch)

	// Reports
	reports := protected.Group("/reports")
	reports.Post("/", middleware.RateLimit(
		s.redis, 5, 10*time.Minute, "create_report"), s.CreateReport)
	reports.Get("/", s.ModeratorRequired(), s.GetReports)
	reports.Post("/:id/resolve", s.ModeratorRequired(), s.ResolveReport)

	// Middleman verification
	verification := protected.Group("/verification")
	verification.Post("/apply", middleware.RateLimit(
		s.redis, 2, time.Hour, "verification_apply"), s.ApplyForVerification)
	verification.Get("/my-application", s.GetMyApplication)
	verification.Get("/applications", s.ModeratorRequired(), s.GetApplications)
	verification.Post("/applications/:id/review", s.ModeratorRequired(), s.ReviewApplication)

	// Users
	users := protected.Group("/users")
	users.Get("/", s.ModeratorRequired(), s.GetAllUsers)
	users.Put("/me", s.UpdateMyProfile)
	users.Post("/:id/role", s.AdminRequired(), s.ChangeUserRole)
	users.Get("/:id/role-history", s.ModeratorRequired(), s.GetRoleHistory)

	// Admin
	admin := protected.Group("/admin", s.AdminRequired())
	admin.Get("/feature-flags", s.GetFeatureFlags)
}

// HealthCheck is a legacy/simple alias for ReadinessCheck
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	return s.ReadinessCheck(c)
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
	if dbStatus == "unhealthy" || redisStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"message": "BloxMarket API",
		"version": "1.0.0",
		"status":  overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// ModeratorRequired returns middleware that rejects users below moderator
// with 403. Must be placed after AuthRequired.
func (s *Server) ModeratorRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("userID").(uint)

		role, err := s.roleByUserID(c.Context(), userID)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
		if !role.CanModerate() {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewUnauthorizedError("Moderator access required"))
		}

		return c.Next()
	}
}

// AdminRequired returns middleware that rejects non-admin users with 403.
// Must be placed after AuthRequired.
func (s *Server) AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("userID").(uint)

		role, err := s.roleByUserID(c.Context(), userID)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
		if !role.CanAdmin() {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewUnauthorizedError("Admin access required"))
		}

		return c.Next()
	}
}

// AuthRequired returns the authentication middleware
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		tokenString := ""
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}
		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(s.config.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token claims"))
		}

		if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != tokenIssuer {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token issuer"))
		}
		if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != tokenAudience {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token audience"))
		}

		sub, ok := claims["sub"].(string)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid subject claim"))
		}
		userID, err := strconv.ParseUint(sub, 10, 32)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid user ID in token"))
		}

		// Check JTI for revocation
		if jti, exists := claims["jti"].(string); exists && jti != "" {
			if s.redis != nil {
				isBlacklisted, err := s.redis.Exists(c.Context(), "blacklist:"+jti).Result()
				if err == nil && isBlacklisted > 0 {
					return models.RespondWithError(c, fiber.StatusUnauthorized,
						models.NewUnauthorizedError("Token has been revoked"))
				}
			}
		}

		// Banned accounts hold a valid token but get no further.
		role, err := s.roleByUserID(c.Context(), uint(userID))
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Account not found"))
		}
		if role.Banned() {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewUnauthorizedError("Account is banned"))
		}

		c.Locals("userID", uint(userID))
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, uint(userID))
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// optionalUserID attempts to extract userID from the Authorization header but
// does not enforce it. Public browse routes use it to surface user_vote.
func (s *Server) optionalUserID(c *fiber.Ctx) (uint, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return 0, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0, false
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, false
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(userID), true
}

// newApp builds the Fiber app with middleware and routes installed and
// remembers it on the server so Shutdown can stop it.
func (s *Server) newApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:   "BloxMarket API",
		BodyLimit: 10 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// Start builds the app and listens until Shutdown is called.
func (s *Server) Start() error {
	app := s.newApp()
	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
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
