package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dujiao-next/storefront/internal/config"
	"github.com/dujiao-next/storefront/internal/constants"
	"github.com/dujiao-next/storefront/internal/logger"
	"github.com/dujiao-next/storefront/internal/models"
	"github.com/dujiao-next/storefront/internal/provider"
	"github.com/dujiao-next/storefront/internal/router"
	"github.com/dujiao-next/storefront/internal/worker"
)

// BuildRunner 构建服务运行器
func BuildRunner(cfg *config.Config, mode string) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	mode = strings.ToLower(strings.TrimSpace(mode))
	switch mode {
	case constants.ModeCatalog:
		return buildCatalogRunner(cfg)
	case constants.ModeAll, constants.ModeAPI, constants.ModeWorker:
	default:
		return nil, fmt.Errorf("unknown mode: %s", mode)
	}

	container := provider.NewContainer(cfg)

	var services []Service

	// 初始化 HTTP 服务
	if mode == constants.ModeAll || mode == constants.ModeAPI {
		engine := router.SetupRouter(cfg, container)
		addr := cfg.Server.Host + ":" + cfg.Server.Port
		services = append(services, NewHTTPService("http", addr, engine))
	}

	// 初始化 Worker 服务，all 模式下队列未启用时跳过
	if mode == constants.ModeWorker || (mode == constants.ModeAll && cfg.Queue.Enabled) {
		consumer := worker.NewConsumer(container)
		workerService, err := worker.NewService(&cfg.Queue, consumer)
		if err != nil {
			container.Close()
			return nil, err
		}
		services = append(services, workerService)
	}

	if len(services) == 0 {
		container.Close()
		return nil, errors.New("no services initialized (check mode and config)")
	}

	runner := NewRunner(services...)
	runner.OnClose(container.Close)
	return runner, nil
}

// buildCatalogRunner 构建演示商品服务
func buildCatalogRunner(cfg *config.Config) (*Runner, error) {
	db, err := models.OpenDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}, cfg.Server.Mode == "debug")
	if err != nil {
		return nil, fmt.Errorf("open catalog database: %w", err)
	}
	closeDB := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if err := models.AutoMigrate(db); err != nil {
		closeDB()
		return nil, fmt.Errorf("migrate catalog database: %w", err)
	}

	container := provider.NewCatalogContainer(cfg, db)
	if cfg.Database.Seed {
		inserted, err := container.ProductCatalogService.Seed(context.Background())
		if err != nil {
			closeDB()
			return nil, fmt.Errorf("seed catalog: %w", err)
		}
		logger.Infow("catalog_seeded", "inserted", inserted)
	}

	engine := router.SetupCatalogRouter(cfg, container)
	addr := cfg.Server.Host + ":" + cfg.Server.CatalogPort
	runner := NewRunner(NewHTTPService("catalog", addr, engine))
	runner.OnClose(closeDB)
	return runner, nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	runner, err := BuildRunner(opts.Config, opts.Mode)
	if err != nil {
		return err
	}

	port := opts.Config.Server.Port
	if opts.Mode == constants.ModeCatalog {
		port = opts.Config.Server.CatalogPort
	}
	opts.Logger.Infow("app_start", "addr", opts.Config.Server.Host+":"+port, "mode", opts.Mode)
	return RunWithOptions(runner, opts)
}
