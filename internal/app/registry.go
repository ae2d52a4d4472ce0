package app

import (
	"database/sql"

	"employee-directory/internal/attachment"
	"employee-directory/internal/employee"
	"employee-directory/internal/messaging/kafka"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type moduleDeps struct {
	db       *sql.DB
	gormDB   *gorm.DB
	rdb      *redis.Client
	uploads  afero.Fs
	policies attachment.Policies
	observer attachment.Observer
	limits   employee.RouteLimits
	logger   *zap.Logger
}

func registerModules(router *gin.Engine, deps moduleDeps) {
	// --- Repositories ---
	employeeRepo := employee.NewRepository(deps.gormDB)
	outboxRepo := kafka.NewOutboxRepository(deps.db)

	// --- Storage ---
	store := attachment.NewStore(deps.uploads, deps.policies, deps.observer, deps.logger)

	// --- Services ---
	employeeService := employee.NewServiceWithOutbox(deps.db, employeeRepo, store, outboxRepo, deps.rdb, deps.logger)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService, deps.logger)

	// --- Routes Registration ---
	api := router.Group("/api")
	{
		employee.RegisterRoutes(api, employeeHandler, deps.rdb, deps.limits)
	}
}
