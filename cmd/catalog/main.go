package main

import (
	"os"
	"syscall"

	"github.com/dujiao-next/storefront/internal/app"
	"github.com/dujiao-next/storefront/internal/config"
	"github.com/dujiao-next/storefront/internal/constants"
	"github.com/dujiao-next/storefront/internal/logger"

	"github.com/gin-gonic/gin"
)

// 演示商品服务：json-server 兼容的 /products 接口，空表时写入演示目录
func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.Named("catalog"),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    constants.ModeCatalog,
	}); err != nil {
		stdLog.Fatalf("演示商品服务运行失败: %v", err)
	}
}
