package api

import (
	"context"
	"fmt"
	"time"

	"pantry-planner/internal/api/handlers/health"
	inventoryHandler "pantry-planner/internal/api/handlers/inventory"
	mealplanHandler "pantry-planner/internal/api/handlers/mealplan"
	"pantry-planner/internal/api/middleware"
	"pantry-planner/internal/infrastructure/config"
	"pantry-planner/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// cleanupInterval 限流與去重快取的清理週期
const cleanupInterval = 10 * time.Minute

// Dependencies 路由需要的服務
type Dependencies struct {
	Inventory    inventoryHandler.Service
	Mealplan     mealplanHandler.Generator
	Store        health.Pinger
	ProviderName string
}

// SetupRouter 設置路由；ctx 結束時停止背景清理
func SetupRouter(ctx context.Context, cfg *config.Config, deps Dependencies) (*gin.Engine, error) {
	if deps.Inventory == nil || deps.Mealplan == nil || deps.Store == nil {
		return nil, fmt.Errorf("router dependencies are incomplete")
	}

	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.NoRoute(func(c *gin.Context) {
		c.AbortWithStatusJSON(common.ErrNotFound.Status, common.ErrNotFound.Response(false))
	})
	router.NoMethod(func(c *gin.Context) {
		c.AbortWithStatusJSON(common.ErrMethodNotAllowed.Status, common.ErrMethodNotAllowed.Response(false))
	})

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(requestid.New()) // 自動生成請求 ID
	router.Use(middleware.Logger())

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
		limiter.StartCleanup(cleanupInterval)
		go func() {
			<-ctx.Done()
			limiter.Stop()
		}()
		router.Use(middleware.RateLimit(limiter, cfg.RateLimit.Window))
	}

	router.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	dedup := middleware.NewDeduplicator(cfg.DedupWindow)
	dedup.StartCleanup(cleanupInterval)
	go func() {
		<-ctx.Done()
		dedup.Stop()
	}()

	// 健康檢查路由
	healthH := health.NewHandler(cfg.App.Version, cfg.Storage.Driver, deps.ProviderName, deps.Store)
	router.GET("/health", healthH.HealthCheck)
	router.GET("/ready", healthH.ReadinessCheck)
	router.GET("/live", healthH.LivenessCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API 路由組
	inventoryH := inventoryHandler.NewHandler(deps.Inventory)
	mealplanH := mealplanHandler.NewHandler(deps.Mealplan)

	api := router.Group("/api/v1")
	{
		inventoryGroup := api.Group("/inventory")
		{
			inventoryGroup.POST("", middleware.Deduplication(dedup), inventoryH.HandleCreate)
			inventoryGroup.GET("", inventoryH.HandleList)
			inventoryGroup.DELETE("/:id", inventoryH.HandleDelete)
		}

		mealplanGroup := api.Group("/mealplan")
		{
			mealplanGroup.POST("/generate", mealplanH.HandleGenerate)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.String("storage", cfg.Storage.Driver),
		zap.String("provider", deps.ProviderName),
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
		zap.Duration("timeout", cfg.Server.RequestTimeout),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
	)

	return router, nil
}
