package app

import (
	"employee-directory/internal/attachment"
	"employee-directory/internal/config"
	"employee-directory/internal/employee"
	"employee-directory/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// BuildApp connects infrastructure, applies the schema and registers every
// route on router. The returned func releases the connections.
func BuildApp(router *gin.Engine, cfg *config.Config, logger *zap.Logger) (func(), error) {
	log := logger.Named("app")

	// 1. Setup Infrastructure
	gormDB, err := connection.ConnectGORMWithRetry(
		cfg.DB.Host,
		cfg.DB.User,
		cfg.DB.Password,
		cfg.DB.Name,
		cfg.DB.Port,
		cfg.DB.SSLMode,
		5,
	)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	if err := connection.Migrate(gormDB); err != nil {
		sqlDB.Close()
		return nil, err
	}
	log.Info("database ready")

	redisClient, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, 5)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}
	log.Info("redis ready")

	osFs := afero.NewOsFs()
	if err := osFs.MkdirAll(cfg.Uploads.Dir, 0o755); err != nil {
		sqlDB.Close()
		redisClient.Close()
		return nil, err
	}
	uploads := afero.NewBasePathFs(osFs, cfg.Uploads.Dir)

	var observer attachment.Observer
	var gatherer prometheus.Gatherer
	if cfg.MetricsEnabled {
		obs, err := attachment.NewPrometheusObserver("employee_directory", prometheus.DefaultRegisterer)
		if err != nil {
			sqlDB.Close()
			redisClient.Close()
			return nil, err
		}
		observer = obs
		gatherer = prometheus.DefaultGatherer
	}

	// 2. Register Modules & Routes
	registerInfraRoutes(router, infraDeps{
		db:       sqlDB,
		rdb:      redisClient,
		uploads:  uploads,
		gatherer: gatherer,
	})
	policies := attachment.DefaultPolicies().WithLimits(
		cfg.Uploads.ResumeMaxBytes,
		cfg.Uploads.ImageMaxBytes,
		cfg.Uploads.GalleryMaxFiles,
	)
	registerModules(router, moduleDeps{
		db:       sqlDB,
		gormDB:   gormDB,
		rdb:      redisClient,
		uploads:  uploads,
		policies: policies,
		observer: observer,
		limits:   employee.RouteLimits{RPS: rate.Limit(cfg.RateLimit.RPS), Burst: cfg.RateLimit.Burst},
		logger:   logger,
	})

	cleanup := func() {
		if err := redisClient.Close(); err != nil {
			log.Warn("redis close failed", zap.Error(err))
		}
		if err := sqlDB.Close(); err != nil {
			log.Warn("database close failed", zap.Error(err))
		}
	}
	return cleanup, nil
}
