package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/uwosh/course-combine-api/api/swagger"
	"github.com/uwosh/course-combine-api/internal/handler"
	"github.com/uwosh/course-combine-api/internal/lms"
	"github.com/uwosh/course-combine-api/internal/middleware"
	"github.com/uwosh/course-combine-api/internal/semester"
	"github.com/uwosh/course-combine-api/internal/service"
	"github.com/uwosh/course-combine-api/internal/session"
	"github.com/uwosh/course-combine-api/pkg/cache"
	"github.com/uwosh/course-combine-api/pkg/config"
	"github.com/uwosh/course-combine-api/pkg/logger"
	corsmiddleware "github.com/uwosh/course-combine-api/pkg/middleware/cors"
	reqidmiddleware "github.com/uwosh/course-combine-api/pkg/middleware/requestid"
)

// @title Course Combine API
// @version 1.0.0
// @description Combines LMS course sections into a single section for a chosen semester
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	var store session.Store
	if cfg.Session.Store == "redis" {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect redis", "error", err)
		}
		defer redisClient.Close() //nolint:errcheck
		store = session.NewRedisStore(redisClient, cfg.Session.TTL)
	} else {
		store = session.NewMemoryStore(cfg.Session.TTL)
	}

	lmsClient := lms.NewClient(cfg.LMS, lms.NewIDKeySigner(cfg.LMS), logr)
	codec := semester.NewCodec(cfg.Semester)

	metricsSvc := service.NewMetricsService()
	catalogSvc := service.NewCatalogService(lmsClient, metricsSvc, logr)
	lookupSvc := service.NewSectionLookupService(codec, lmsClient, metricsSvc, nil, logr)
	notifySvc := service.NewNotificationService(&service.LogSender{Logger: logr}, cfg.Mail, cfg.Notify, logr)
	notifySvc.Start(context.Background())
	defer notifySvc.Stop()

	tokenSvc := service.NewTokenService(cfg.Session)
	workflowSvc := service.NewCombineWorkflowService(
		catalogSvc, lookupSvc, notifySvc, codec, store, metricsSvc, cfg.LMS.Host, logr)

	authHandler := handler.NewAuthHandler(workflowSvc, tokenSvc)
	combineHandler := handler.NewCombineHandler(workflowSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/callback", authHandler.StartSession)

	combine := api.Group("/combine")
	combine.Use(middleware.Session(tokenSvc))
	{
		combine.POST("/semester", combineHandler.SelectSemester)
		combine.GET("/sections", combineHandler.SectionChoices)
		combine.POST("/sections", combineHandler.AddSection)
		combine.POST("/selection", combineHandler.SubmitSelection)
		combine.POST("/confirm", combineHandler.ConfirmReview)
		combine.DELETE("", combineHandler.Abandon)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
