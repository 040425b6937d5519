package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/algedu/algedu-api/internal/config"
	"github.com/algedu/algedu-api/internal/domain/auth"
	"github.com/algedu/algedu-api/internal/domain/comment"
	"github.com/algedu/algedu-api/internal/domain/content"
	"github.com/algedu/algedu-api/internal/domain/field"
	"github.com/algedu/algedu-api/internal/domain/file"
	"github.com/algedu/algedu-api/internal/domain/moderation"
	"github.com/algedu/algedu-api/internal/domain/profile"
	"github.com/algedu/algedu-api/internal/domain/user"
	"github.com/algedu/algedu-api/internal/middleware"
	"github.com/algedu/algedu-api/internal/pkg/database"
	"github.com/algedu/algedu-api/internal/pkg/imaging"
	"github.com/algedu/algedu-api/internal/pkg/jwt"
	pkgresponse "github.com/algedu/algedu-api/internal/pkg/response"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting AlgEdu API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redis, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redis)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)
	avatarProcessor := imaging.NewProcessor(imaging.DefaultConfig())

	// ---------- Repositories ----------
	userRepo := user.NewRepository(db)
	fileRepo := file.NewRepository(db)
	fieldRepo := field.NewRepository(db)
	commentRepo := comment.NewRepository(db)
	profileRepo := profile.NewRepository(db)
	moderationRepo := moderation.NewRepository(db)

	// ---------- Services ----------
	authService := auth.NewService(userRepo, jwtService, redis)
	fieldService := field.NewService(fieldRepo)
	commentService := comment.NewService(commentRepo, fieldService)
	profileService := profile.NewService(userRepo, profileRepo, fileRepo, avatarProcessor)
	moderationEngine := moderation.NewEngine(moderationRepo)
	moderationService := moderation.NewService(moderationRepo, moderationEngine)

	// ---------- Handlers ----------
	authHandler := auth.NewHandler(authService)
	fileHandler := file.NewHandler(fileRepo, cfg.MaxUploadBytes)
	fieldHandler := field.NewHandler(fieldService)
	commentHandler := comment.NewHandler(commentService)
	profileHandler := profile.NewHandler(profileService, cfg.MaxUploadBytes)
	moderationHandler := moderation.NewHandler(moderationService)
	contentHandler := content.NewHandler()

	authMiddleware := middleware.Auth(jwtService)
	optionalAuth := middleware.OptionalAuth(jwtService)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))
	r.Use(chimw.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", authHandler.Routes(authMiddleware))
		r.Mount("/profiles", profileHandler.Routes(authMiddleware))
		r.Mount("/fields", fieldHandler.Routes(authMiddleware, optionalAuth))
		r.Mount("/fields/{id}/comments", commentHandler.FieldRoutes(authMiddleware, optionalAuth))
		r.Mount("/comments", commentHandler.Routes(authMiddleware))
		r.Mount("/walls", fieldHandler.WallRoutes(authMiddleware))
		r.Mount("/files", fileHandler.Routes(authMiddleware))
		r.Mount("/moderation", moderationHandler.Routes(authMiddleware))
		r.Mount("/admin/moderation", moderationHandler.AdminRoutes(authMiddleware))
		r.Mount("/pages", contentHandler.Routes())
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		})
	}
}
