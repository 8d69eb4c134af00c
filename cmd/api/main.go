package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/sampark-ngo/placement-tracker/api/swagger"
	"github.com/sampark-ngo/placement-tracker/internal/handler"
	"github.com/sampark-ngo/placement-tracker/internal/middleware"
	"github.com/sampark-ngo/placement-tracker/internal/repository"
	"github.com/sampark-ngo/placement-tracker/internal/service"
	"github.com/sampark-ngo/placement-tracker/pkg/cache"
	"github.com/sampark-ngo/placement-tracker/pkg/config"
	"github.com/sampark-ngo/placement-tracker/pkg/database"
	"github.com/sampark-ngo/placement-tracker/pkg/logger"
	corsmiddleware "github.com/sampark-ngo/placement-tracker/pkg/middleware/cors"
	reqidmiddleware "github.com/sampark-ngo/placement-tracker/pkg/middleware/requestid"
	"github.com/sampark-ngo/placement-tracker/pkg/storage"
)

// @title Placement Tracker API
// @version 1.0.0
// @description CRUD and document-broker backend for the student placement dashboard
// @BasePath /api/v1
// @schemes http https

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
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, dashboard caching disabled", "error", err)
		redisClient = nil
	}

	objectStore, err := storage.NewObjectStore(cfg.Storage)
	if err != nil {
		logr.Sugar().Fatalw("failed to init object store", "error", err)
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, redisClient != nil)
	if redisClient != nil {
		defer cacheRepo.Close() //nolint:errcheck
	}

	studentRepo := repository.NewStudentRepository(db)
	normalizer := service.NewLegacyNormalizer(cfg.Legacy.MonthYear)

	uploadSvc := service.NewUploadService(objectStore, logr, service.UploadServiceConfig{
		UploadTTL:      cfg.Storage.UploadTTL,
		DownloadTTL:    cfg.Storage.DownloadTTL,
		MaxUploadBytes: cfg.Storage.MaxUploadBytes,
	})
	studentSvc := service.NewStudentService(studentRepo, uploadSvc, cacheSvc, normalizer, validate, logr)
	dashboardSvc := service.NewDashboardService(studentRepo, cacheSvc, metricsSvc, logr)
	exportSvc := service.NewExportService(studentSvc, logr)
	authSvc := service.NewAuthService(cfg.JWT.Secret, logr)

	studentHandler := handler.NewStudentHandler(studentSvc, exportSvc)
	uploadHandler := handler.NewUploadHandler(uploadSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "down"})
			return
		}
		cacheStatus := "disabled"
		if redisClient != nil {
			cacheStatus = "up"
			if err := redisClient.Ping(c.Request.Context()).Err(); err != nil {
				cacheStatus = "down"
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "cache": cacheStatus})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.JWT(authSvc))
	{
		api.GET("/students", studentHandler.List)
		api.POST("/students", studentHandler.Create)
		api.GET("/students/aggregate", studentHandler.Aggregate)
		api.GET("/students/export", studentHandler.Export)
		api.GET("/students/:id", studentHandler.Get)
		api.PATCH("/students/:id", studentHandler.Update)
		api.DELETE("/students/:id", studentHandler.Delete)

		api.POST("/uploads/target", uploadHandler.CreateUploadTarget)
		api.POST("/uploads/download-target", uploadHandler.CreateDownloadTarget)
		api.DELETE("/uploads/object", uploadHandler.DeleteObject)

		api.GET("/dashboard/summary", dashboardHandler.Summary)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
