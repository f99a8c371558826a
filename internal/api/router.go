package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/filmmemories/backend/internal/api/handler"
	"github.com/filmmemories/backend/internal/api/middleware"
	"github.com/filmmemories/backend/internal/core/domain"
	"github.com/filmmemories/backend/internal/core/service"
	"github.com/filmmemories/backend/internal/infrastructure/config"
	mongostore "github.com/filmmemories/backend/internal/infrastructure/db/mongo"
	redisstore "github.com/filmmemories/backend/internal/infrastructure/db/redis"
	"github.com/filmmemories/backend/internal/infrastructure/storage"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// Every dependency is constructed here and injected explicitly; an
// unavailable dependency is a startup failure in main, never a runtime
// fallback branch.
func NewRouter(db *mongo.Database, rdb *redis.Client, store *storage.ObjectStore, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log, cfg.IsDevelopment())

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("filmmemories"))

	// --- Dependencies ---
	userRepo := mongostore.NewUserRepository(db)
	movieRepo := mongostore.NewMovieRepository(db)
	listCache := redisstore.NewMovieListCache(rdb)

	tokenService := service.NewTokenService(cfg.JWTSecret, service.DefaultTokenTTL)
	authService := service.NewAuthService(userRepo, tokenService, log)
	movieService := service.NewMovieService(movieRepo, userRepo, listCache, log)
	uploader := storage.NewUploader(store, storage.NewImageProcessor(), log)

	authHandler := handler.NewAuthHandler(authService)
	movieHandler := handler.NewMovieHandler(movieService, uploader)
	requireAuth := middleware.Auth(tokenService, userRepo)

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", authHandler.Me, requireAuth)
	auth.GET("/users", authHandler.ListUsers, requireAuth, middleware.RBAC(domain.RoleAdmin))

	// --- Movie routes ---
	movies := e.Group("/movies")
	movies.GET("", movieHandler.List)
	movies.POST("", movieHandler.Create, requireAuth)
	movies.GET("/my-movies", movieHandler.MyMovies, requireAuth)
	movies.GET("/:id", movieHandler.GetByID)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb, store)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
