package app

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"strings"
	"time"

	"employee-directory/internal/attachment"
	"employee-directory/internal/config"
	"employee-directory/internal/middleware"
	"employee-directory/internal/shared/apperror"
	"employee-directory/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// NewRouter builds the engine with the middleware every route shares.
func NewRouter(cfg *config.Config, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.ContextLogger(logger))
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.MaxMultipartMemory = 8 << 20
	return r
}

type infraDeps struct {
	db       *sql.DB
	rdb      *redis.Client
	uploads  afero.Fs
	gatherer prometheus.Gatherer
}

func registerInfraRoutes(router *gin.Engine, deps infraDeps) {
	router.GET("/healthz", healthHandler(deps.db, deps.rdb))
	if deps.gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.gatherer, promhttp.HandlerOpts{})))
	}
	if deps.uploads != nil {
		router.StaticFS("/"+attachment.PublicPrefix, fileOnlyFS{afero.NewHttpFs(deps.uploads)})
	}
}

func healthHandler(db *sql.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		checks := gin.H{"database": "ok"}
		healthy := true
		if db != nil {
			if err := db.PingContext(ctx); err != nil {
				checks["database"] = "unavailable"
				healthy = false
			}
		}
		if rdb != nil {
			checks["redis"] = "ok"
			if err := rdb.Ping(ctx).Err(); err != nil {
				checks["redis"] = "unavailable"
				healthy = false
			}
		}

		if !healthy {
			e := apperror.ErrServiceUnavailable
			response.Error(c, e.HTTPStatus, e.Code, e.Message, checks)
			return
		}
		response.Success(c, http.StatusOK, "ok", checks)
	}
}

// fileOnlyFS hides directories so the uploads root cannot be listed. Names
// are looked up relative to the root, the way the store writes them.
type fileOnlyFS struct {
	http.FileSystem
}

func (f fileOnlyFS) Open(name string) (http.File, error) {
	file, err := f.FileSystem.Open(strings.TrimPrefix(name, "/"))
	if err != nil {
		return nil, err
	}
	if st, err := file.Stat(); err != nil || st.IsDir() {
		file.Close()
		return nil, os.ErrNotExist
	}
	return file, nil
}
