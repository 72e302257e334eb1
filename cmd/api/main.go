package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/scholarpath/intake-api/api/swagger"
	"github.com/scholarpath/intake-api/internal/handler"
	"github.com/scholarpath/intake-api/internal/middleware"
	"github.com/scholarpath/intake-api/internal/repository"
	"github.com/scholarpath/intake-api/internal/service"
	"github.com/scholarpath/intake-api/pkg/cache"
	"github.com/scholarpath/intake-api/pkg/config"
	"github.com/scholarpath/intake-api/pkg/database"
	"github.com/scholarpath/intake-api/pkg/logger"
	corsmiddleware "github.com/scholarpath/intake-api/pkg/middleware/cors"
	reqidmiddleware "github.com/scholarpath/intake-api/pkg/middleware/requestid"
)

// @title Scholarship Intake API
// @version 1.0.0
// @description Scholarship eligibility intake and admin panel backend
// @BasePath /api
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		// The API stays functional without Redis; reads just skip the cache.
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		redisClient = nil
	}

	validate := validator.New()

	applicationRepo := repository.NewApplicationRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	metricsService := service.NewMetricsService()
	applicationService := service.NewApplicationService(applicationRepo, cfg.Database.QueryTimeout, logr)
	adminService := service.NewAdminService(adminRepo, validate, cfg.Session, cfg.Bootstrap, cfg.Database.QueryTimeout, logr)
	settingsService := service.NewSettingsService(settingsRepo, cacheRepo, metricsService, cfg.Settings.CacheTTL, cfg.Database.QueryTimeout, logr)
	exportService := service.NewExportService(applicationRepo, nil, nil, cfg.Database.QueryTimeout, logr)

	if err := adminService.EnsureBootstrapped(context.Background()); err != nil {
		logr.Sugar().Fatalw("failed to bootstrap super admin", "error", err)
	}

	applicationHandler := handler.NewApplicationHandler(applicationService, metricsService)
	adminHandler := handler.NewAdminHandler(adminService)
	settingsHandler := handler.NewSettingsHandler(settingsService)
	exportHandler := handler.NewExportHandler(exportService)
	healthHandler := handler.NewHealthHandler(db, applicationService, adminService, logr)
	metricsHandler := handler.NewMetricsHandler(metricsService)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.MaxBodyBytes > 0 {
		// Bound request bodies; the ceiling must admit a base64-inflated logo.
		r.Use(func(c *gin.Context) {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, cfg.MaxBodyBytes)
			c.Next()
		})
	}
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsService))

	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	session := middleware.Session(adminService)

	applications := api.Group("/applications")
	{
		applications.POST("", applicationHandler.Submit)
		applications.GET("", session, applicationHandler.List)
		applications.GET("/export", session, exportHandler.Export)
		applications.DELETE("/bulk-delete", session, applicationHandler.BulkDelete)
		applications.DELETE("/:id", session, applicationHandler.Delete)
	}

	admins := api.Group("/admins")
	{
		admins.POST("/verify", adminHandler.Verify)
		admins.GET("", session, adminHandler.List)
		admins.POST("", session, adminHandler.Create)
		admins.PUT("/:id", session, adminHandler.Update)
		admins.DELETE("/:id", session, adminHandler.Delete)
	}

	settings := api.Group("/settings")
	{
		settings.GET("/logo", settingsHandler.GetLogo)
		settings.PUT("/logo", session, settingsHandler.UpdateLogo)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
