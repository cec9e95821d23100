package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pantry-planner/internal/api"
	"pantry-planner/internal/core/inventory"
	"pantry-planner/internal/core/mealplan"
	"pantry-planner/internal/core/recipe"
	"pantry-planner/internal/infrastructure/config"
	"pantry-planner/internal/infrastructure/storage"
	"pantry-planner/internal/pkg/common"

	"go.uber.org/zap"
)

func main() {
	// 載入設定（含 .env）
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	if err := run(cfg); err != nil {
		common.LogError("Server exited with error", zap.Error(err))
		common.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	common.LogInfo("載入設定",
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.String("recipe_provider", cfg.Provider.Kind),
		zap.String("recipe_api_key", config.MaskAPIKey(cfg.Provider.Remote.APIKey)),
		zap.Int("pool_size", cfg.Mealplan.PoolSize),
		zap.Int("visible_limit", cfg.Mealplan.VisibleLimit),
	)

	// 開啟庫存儲存
	store, err := storage.NewStore(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("open inventory store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			common.LogError("Failed to close inventory store", zap.Error(err))
		}
	}()

	provider, err := recipe.NewProvider(cfg.Provider)
	if err != nil {
		return err
	}

	clock := inventory.SystemClock{}
	inventorySvc := inventory.NewService(store, clock)
	mealplanSvc := mealplan.NewService(inventorySvc, provider, clock, mealplan.Options{
		PoolSize:     cfg.Mealplan.PoolSize,
		VisibleLimit: cfg.Mealplan.VisibleLimit,
	})

	// 設置路由
	router, err := api.SetupRouter(ctx, cfg, api.Dependencies{
		Inventory:    inventorySvc,
		Mealplan:     mealplanSvc,
		Store:        store,
		ProviderName: provider.Name(),
	})
	if err != nil {
		return fmt.Errorf("setup router: %w", err)
	}

	// 設置 HTTP 服務器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Int("port", cfg.Server.Port),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// 等待中斷信號
	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("start server: %w", err)
		}
	case <-ctx.Done():
	}

	common.LogInfo("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	common.LogInfo("Server exited")
	return nil
}
