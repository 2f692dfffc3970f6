package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/intraworks/dochub/docs"
	"github.com/intraworks/dochub/internal/api/handler"
	"github.com/intraworks/dochub/internal/api/middleware"
	"github.com/intraworks/dochub/internal/core/domain"
	"github.com/intraworks/dochub/internal/core/ports"
	"github.com/intraworks/dochub/internal/core/service"
	mongodb "github.com/intraworks/dochub/internal/infrastructure/db/mongo"
	"github.com/intraworks/dochub/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, store ports.ObjectStore, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("dochub"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	resourceRepo := mongodb.NewResourceRepository(db)
	shareRepo := mongodb.NewShareRepository(db)
	toolRepo := mongodb.NewToolRepository(db)
	categoryRepo := mongodb.NewCategoryRepository(db)

	resolver := service.NewPermissionResolver(shareRepo)
	urlTTL := time.Duration(cfg.S3.SignedURLTTLSeconds) * time.Second

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, time.Hour)
	resourceService := service.NewResourceService(resourceRepo, shareRepo, userRepo, store, resolver, urlTTL, log)
	userService := service.NewUserService(userRepo, log)
	toolService := service.NewToolService(toolRepo, log)
	categoryService := service.NewCategoryService(categoryRepo)

	authHandler := handler.NewAuthHandler(authService)
	postHandler := handler.NewResourceHandler(resourceService, domain.KindPost, cfg.MaxUploadBytes)
	trainingHandler := handler.NewResourceHandler(resourceService, domain.KindTraining, cfg.MaxUploadBytes)
	userHandler := handler.NewUserHandler(userService)
	toolHandler := handler.NewToolHandler(toolService)
	categoryHandler := handler.NewCategoryHandler(categoryService)

	// --- Auth routes (public) ---
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)

	// --- Authenticated routes ---
	authed := e.Group("/api", middleware.Auth(cfg.JWTSecret))

	registerResourceRoutes(authed.Group("/posts"), postHandler)
	registerResourceRoutes(authed.Group("/trainings"), trainingHandler)

	authed.GET("/categories", categoryHandler.List)

	// --- Admin-only routes ---
	admin := authed.Group("", middleware.RBAC(domain.RoleAdmin))
	admin.POST("/categories", categoryHandler.Create)

	admin.GET("/users", userHandler.List)
	admin.PATCH("/users/:id/promote", userHandler.Promote)
	admin.PATCH("/users/:id/demote", userHandler.Demote)

	admin.GET("/tools", toolHandler.List)
	admin.POST("/tools", toolHandler.Create)
	admin.GET("/tools/:id", toolHandler.Get)
	admin.PUT("/tools/:id", toolHandler.Update)
	admin.DELETE("/tools/:id", toolHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}

// registerResourceRoutes mounts the shared resource routes on a kind group.
// Posts and trainings expose the same surface.
func registerResourceRoutes(g *echo.Group, h *handler.ResourceHandler) {
	g.POST("", h.Upload)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PATCH("/:id", h.Update)
	g.PATCH("/:id/visibility", h.SetVisibility)
	g.DELETE("/:id", h.Delete)
	g.POST("/:id/share", h.Share)
	g.DELETE("/:id/share/:userId", h.Unshare)
}
