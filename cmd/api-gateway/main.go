package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/exam-board-api/api/swagger"
	"github.com/noah-isme/exam-board-api/internal/handler"
	"github.com/noah-isme/exam-board-api/internal/middleware"
	"github.com/noah-isme/exam-board-api/internal/repository"
	"github.com/noah-isme/exam-board-api/internal/service"
	"github.com/noah-isme/exam-board-api/pkg/cache"
	"github.com/noah-isme/exam-board-api/pkg/config"
	"github.com/noah-isme/exam-board-api/pkg/database"
	"github.com/noah-isme/exam-board-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/exam-board-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/exam-board-api/pkg/middleware/requestid"
)

// @title Exam Board API
// @version 0.1.0
// @description Examination board distribution service
// @BasePath /
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

	var summaries *service.SummaryCache
	if redisClient, err := cache.NewRedis(cfg.Redis); err != nil {
		logr.Warn("redis unavailable, distribution summaries will not be cached", zap.Error(err))
	} else {
		defer redisClient.Close()
		summaries = service.NewSummaryCache(redisClient, cfg.Distribution.SummaryCacheTTL)
	}

	boards := repository.NewBoardRepository(db)
	rooms := repository.NewRoomRepository(db)
	teachers := repository.NewTeacherRepository(db)

	metricsSvc := service.NewMetricsService()
	boardSvc := service.NewBoardService(boards, logr)

	var distributionSvc *service.DistributionService
	if cfg.Distribution.Enabled {
		distributionSvc = service.NewDistributionService(
			boards,
			rooms,
			teachers,
			summaries,
			metricsSvc,
			nil,
			logr,
			service.DistributionServiceConfig{Defaults: cfg.Distribution},
		)
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

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
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	boardHandler := handler.NewBoardHandler(distributionSvc, boardSvc)
	api.GET("/exam-boards", boardHandler.List)
	if cfg.Distribution.Enabled {
		api.POST("/exam-boards/distribute", boardHandler.Distribute)
		api.GET("/exam-boards/distribution/summary", boardHandler.Summary)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
