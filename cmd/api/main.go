package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/tuncerburak97/reservation-http-api/api/swagger"
	"github.com/tuncerburak97/reservation-http-api/internal/handler"
	"github.com/tuncerburak97/reservation-http-api/internal/middleware"
	"github.com/tuncerburak97/reservation-http-api/internal/repository"
	"github.com/tuncerburak97/reservation-http-api/internal/service"
	"github.com/tuncerburak97/reservation-http-api/pkg/cache"
	"github.com/tuncerburak97/reservation-http-api/pkg/config"
	"github.com/tuncerburak97/reservation-http-api/pkg/database"
	"github.com/tuncerburak97/reservation-http-api/pkg/logger"
	corsmiddleware "github.com/tuncerburak97/reservation-http-api/pkg/middleware/cors"
	reqidmiddleware "github.com/tuncerburak97/reservation-http-api/pkg/middleware/requestid"
)

// @title Reservation HTTP API
// @version 1.0.0
// @description Business reservation and slot availability engine
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Availability.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, availability cache disabled", "error", err)
		} else {
			defer redisClient.Close()
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Availability.CacheTTL, logr, true)
		}
	}

	userRepo := repository.NewUserRepository(db)
	businessRepo := repository.NewBusinessRepository(db)
	ruleRepo := repository.NewAvailabilityRuleRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	userSvc := service.NewUserService(userRepo, logr)
	businessSvc := service.NewBusinessService(businessRepo, userRepo, cacheSvc, logr)
	settingsSvc := service.NewSettingsService(settingsRepo, businessSvc, cacheSvc, logr)
	ruleSvc := service.NewAvailabilityRuleService(ruleRepo, businessSvc, cacheSvc, logr)
	availabilitySvc := service.NewAvailabilityService(service.AvailabilityServiceParams{
		Businesses:   businessSvc,
		Settings:     settingsSvc,
		Rules:        ruleRepo,
		Reservations: reservationRepo,
		Cache:        cacheSvc,
		Metrics:      metricsSvc,
		Logger:       logr,
		Config: service.AvailabilityServiceConfig{
			CacheTTL:     cfg.Availability.CacheTTL,
			MaxRangeDays: cfg.Availability.MaxRangeDays,
		},
	})
	reservationSvc := service.NewReservationService(service.ReservationServiceParams{
		Repo:       reservationRepo,
		Businesses: businessSvc,
		Users:      userRepo,
		Settings:   settingsSvc,
		Cache:      cacheSvc,
		Logger:     logr,
		Config: service.ReservationServiceConfig{
			PrecheckConflicts: cfg.Booking.ConflictRecheck,
		},
	})
	exportSvc := service.NewExportService(availabilitySvc, logr)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.RegisterRoutes(r, cfg.APIPrefix, handler.Handlers{
		Availability: handler.NewAvailabilityHandler(availabilitySvc, exportSvc),
		Rules:        handler.NewAvailabilityRuleHandler(ruleSvc),
		Reservations: handler.NewReservationHandler(reservationSvc),
		Businesses:   handler.NewBusinessHandler(businessSvc),
		Settings:     handler.NewSettingsHandler(settingsSvc),
		Users:        handler.NewUserHandler(userSvc),
		Metrics:      handler.NewMetricsHandler(metricsSvc),
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
