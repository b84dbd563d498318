package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/vijayaelectrics/repair-shop-api/api/swagger"
	"github.com/vijayaelectrics/repair-shop-api/internal/handler"
	"github.com/vijayaelectrics/repair-shop-api/internal/middleware"
	"github.com/vijayaelectrics/repair-shop-api/internal/repository"
	"github.com/vijayaelectrics/repair-shop-api/internal/service"
	"github.com/vijayaelectrics/repair-shop-api/pkg/cache"
	"github.com/vijayaelectrics/repair-shop-api/pkg/config"
	"github.com/vijayaelectrics/repair-shop-api/pkg/database"
	"github.com/vijayaelectrics/repair-shop-api/pkg/dispatch"
	"github.com/vijayaelectrics/repair-shop-api/pkg/export"
	"github.com/vijayaelectrics/repair-shop-api/pkg/logger"
	corsmiddleware "github.com/vijayaelectrics/repair-shop-api/pkg/middleware/cors"
	reqidmiddleware "github.com/vijayaelectrics/repair-shop-api/pkg/middleware/requestid"
	"github.com/vijayaelectrics/repair-shop-api/pkg/storage"
)

// @title Vijaya Electrics Repair Shop API
// @version 1.0.0
// @description Job card admission, technician capacity, and repair tracking service
// @BasePath /api/v1
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()

	// Redis is optional: availability caching degrades to direct reads.
	var cacheSvc *service.CacheService
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		} else {
			defer redisClient.Close() //nolint:errcheck
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.AvailabilityTTL, cfg.Cache.JobListTTL, true, logr)
		}
	}

	validate := validator.New()
	if err := service.RegisterCustomValidations(validate); err != nil {
		logr.Sugar().Fatalw("failed to register validations", "error", err)
	}

	jobRepo := repository.NewJobRepository(db, cfg.Admission.DefaultMaxJobs)
	technicianRepo := repository.NewTechnicianRepository(db, cfg.Admission.DefaultMaxJobs)
	notificationRepo := repository.NewNotificationRepository(db)

	notificationSvc := service.NewNotificationService(notificationRepo, dispatch.QueueConfig{
		Workers:    cfg.Notifications.Workers,
		BufferSize: cfg.Notifications.BufferSize,
		MaxRetries: cfg.Notifications.MaxRetries,
		RetryDelay: cfg.Notifications.RetryDelay,
		Logger:     logr,
	}, logr)
	notificationSvc.Start(ctx)
	defer notificationSvc.Stop()

	jobSvc := service.NewJobService(jobRepo, notificationSvc, cacheSvc, metricsSvc, validate, logr)
	technicianSvc := service.NewTechnicianService(technicianRepo, cacheSvc, validate, logr)

	store, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init document storage", "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
	exportSvc := service.NewExportService(jobRepo, store, signer, logr,
		export.NewJobCardExporter("Vijaya Electrics", "Electrical Repairs & Services", "No. 24, Main Street, Colombo | 011-2345678"),
		export.NewCSVExporter(),
	)

	jobHandler := handler.NewJobHandler(jobSvc)
	technicianHandler := handler.NewTechnicianHandler(technicianSvc)
	notificationHandler := handler.NewNotificationHandler(notificationSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
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
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		jobs := api.Group("/jobs")
		{
			jobs.POST("", jobHandler.Create)
			jobs.GET("", jobHandler.List)
			jobs.GET("/search", jobHandler.Search)
			jobs.GET("/export/csv", exportHandler.JobsCSV)
			jobs.GET("/:jobNo", jobHandler.Get)
			jobs.PUT("/:jobNo/status", jobHandler.UpdateStatus)
			jobs.DELETE("/:jobNo", jobHandler.DeleteByJobNumber)
			jobs.GET("/:jobNo/pdf", exportHandler.JobCardPDF)
			jobs.PUT("/id/:id", jobHandler.UpdateByID)
			jobs.DELETE("/id/:id", jobHandler.DeleteByID)
		}

		technicians := api.Group("/technicians")
		{
			technicians.GET("", technicianHandler.List)
			technicians.GET("/available", technicianHandler.ListAvailable)
			technicians.GET("/:id", technicianHandler.Get)
			technicians.POST("", technicianHandler.Create)
			technicians.PUT("/:id", technicianHandler.Update)
			technicians.DELETE("/:id", technicianHandler.Delete)
		}

		notifications := api.Group("/notifications")
		{
			notifications.GET("", notificationHandler.List)
			notifications.PUT("/:id/read", notificationHandler.MarkRead)
			notifications.DELETE("/:id", notificationHandler.Delete)
		}

		api.GET("/downloads", exportHandler.Download)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Errorw("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("shutdown failed", "error", err)
	}
}
