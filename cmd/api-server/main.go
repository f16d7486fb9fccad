package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"moviemarks/database"
	"moviemarks/internal/config"
	"moviemarks/internal/httpapi/handler"
	"moviemarks/internal/httpapi/middleware"
	"moviemarks/internal/httpapi/repository"
	"moviemarks/internal/httpapi/service"
	"moviemarks/internal/mailer"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	logger := newLogger(cfg.LogLevel)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	redisClient, err := connectRedis(cfg)
	if err != nil {
		logger.Error("redis connection failed", "error", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	bookmarkRepo := repository.NewBookmarkRepository(db)
	codeStore := repository.NewVerificationCodeStore(redisClient, cfg.VerificationCodeTTL)

	// Services
	mailSender := mailer.NewSMTPSender(cfg)
	authService := service.NewAuthService(userRepo, refreshTokenRepo, codeStore, mailSender, logger, cfg)
	reviewService := service.NewReviewService(reviewRepo)
	bookmarkService := service.NewBookmarkService(bookmarkRepo, reviewRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(authService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	bookmarkHandler := handler.NewBookmarkHandler(bookmarkService)

	if cfg.GoEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		authHandler.RegisterRoutes(api.Group("/auth"))

		users := api.Group("/users")
		users.Use(middleware.AuthMiddleware(authService))
		users.PUT("/me", userHandler.UpdateProfile)

		// Public overview; personal scoping only when a valid token is sent
		api.GET("/catalog", middleware.OptionalAuth(authService), bookmarkHandler.CatalogOverview)

		bookmarks := api.Group("/bookmarks")
		bookmarks.Use(middleware.AuthMiddleware(authService))
		bookmarkHandler.RegisterRoutes(bookmarks)

		api.POST("/reviews", middleware.AuthMiddleware(authService), reviewHandler.Create)
		api.GET("/movies/:movie_id/reviews", middleware.OptionalAuth(authService), reviewHandler.ListByMovie)
	}

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("starting HTTP server", "addr", addr)
	if err := r.Run(addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

func connectRedis(cfg *config.Config) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}
