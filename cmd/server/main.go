package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/yourusername/careertrack-api/internal/config"
	"github.com/yourusername/careertrack-api/internal/handler"
	"github.com/yourusername/careertrack-api/internal/middleware"
	"github.com/yourusername/careertrack-api/internal/repository"
	"github.com/yourusername/careertrack-api/internal/service"
)

func main() {
	// ── Logging ──────────────────────────────────────────
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// ── Config ───────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	log.Info().Str("env", cfg.Env).Str("port", cfg.Port).Msg("Starting CareerTrack API")

	// ── Database ─────────────────────────────────────────
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Database connected")

	// ── Repositories ─────────────────────────────────────
	profileRepo := repository.NewProfileRepo(pool)
	appRepo := repository.NewApplicationRepo(pool)
	savedRepo := repository.NewSavedOpportunityRepo(pool)

	// ── Services ─────────────────────────────────────────
	profileService := service.NewProfileService(profileRepo)
	jsearchClient := service.NewJSearchClient(cfg.RapidAPIKey)

	// ── Handlers ─────────────────────────────────────────
	profileHandler := handler.NewProfileHandler(profileService)
	appHandler := handler.NewApplicationHandler(appRepo)
	savedHandler := handler.NewSavedOpportunityHandler(savedRepo)
	opportunityHandler := handler.NewOpportunityHandler(jsearchClient)
	uploadHandler := handler.NewUploadHandler(cfg.UploadDir)

	// ── Middleware ────────────────────────────────────────
	authMiddleware, err := middleware.NewAuthMiddleware(cfg.FirebaseProjectID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Firebase auth")
	}
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS)

	// ── Router ───────────────────────────────────────────
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger())

	// CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check (unauthenticated)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "careertrack-api",
			"time":    time.Now().UTC(),
		})
	})

	// Uploaded assets are public by URL
	r.Static("/uploads", cfg.UploadDir)

	// External "profile viewed" signal; names its target in the body
	r.POST("/profile/views", profileHandler.IncrementViews)

	// ── Authenticated Routes ─────────────────────────────
	api := r.Group("/", authMiddleware.Authenticate(), rateLimiter.Limit())
	{
		// Profile
		api.GET("/profile", profileHandler.GetProfile)
		api.POST("/profile", profileHandler.CreateProfile)
		api.PUT("/profile", profileHandler.UpdateProfile)
		api.DELETE("/profile", profileHandler.DeleteProfile)

		// Applications
		api.GET("/applications", appHandler.List)
		api.POST("/applications", appHandler.Create)

		// Saved opportunities
		api.GET("/saved-opportunities", savedHandler.List)
		api.POST("/saved-opportunities", savedHandler.Create)
		api.DELETE("/saved-opportunities/:jobId", savedHandler.Delete)

		// External listing search
		api.GET("/opportunities", opportunityHandler.Search)

		// File uploads (profile picture, resume)
		api.POST("/upload", uploadHandler.Upload)
	}

	// ── Server ───────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	log.Info().Str("port", cfg.Port).Msg("CareerTrack API server running")

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

// requestLogger logs every request with zerolog
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		event := log.Info()
		if status >= 400 {
			event = log.Warn()
		}
		if status >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("latency", latency).
			Str("ip", c.ClientIP()).
			Msg(fmt.Sprintf("%s %s", c.Request.Method, path))
	}
}
