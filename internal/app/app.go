package app

import (
	"context"
	"net/http"
	"strings"

	"go-hrms/internal/config"
	"go-hrms/internal/middleware"
	"go-hrms/internal/shared/connection"
	"go-hrms/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp connects the infrastructure and registers every module on router.
// The returned func releases the connections.
func BuildApp(router *gin.Engine, cfg *config.Config, logger *zap.Logger) (func(), error) {
	log := logger.Named("app")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	log.Info("database connection established")

	rdb, err := connection.ConnectRedisWithRetry(cfg.Redis)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}
	log.Info("redis connection established")

	store, err := storage.New(context.Background(), cfg.Storage, logger)
	if err != nil {
		sqlDB.Close()
		rdb.Close()
		return nil, err
	}

	router.Use(middleware.RequestID())
	router.Use(middleware.RateLimitByIP(20, 40))

	if cfg.Storage.Driver == "local" && strings.HasPrefix(cfg.Storage.PublicBaseURL, "/") {
		router.Static(cfg.Storage.PublicBaseURL, cfg.Storage.LocalDir)
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if err := registerModules(router, cfg, sqlDB, gormDB, rdb, store, logger); err != nil {
		sqlDB.Close()
		rdb.Close()
		return nil, err
	}

	cleanup := func() {
		if err := rdb.Close(); err != nil {
			log.Warn("close redis", zap.Error(err))
		}
		if err := sqlDB.Close(); err != nil {
			log.Warn("close database", zap.Error(err))
		}
	}
	return cleanup, nil
}
