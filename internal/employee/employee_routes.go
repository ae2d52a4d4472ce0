package employee

import (
	"employee-directory/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

type RouteLimits struct {
	RPS   rate.Limit
	Burst int
}

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rdb *redis.Client,
	limits RouteLimits,
) {
	profiles := r.Group("/profiles")
	profiles.Use(middleware.RateLimitByIP(limits.RPS, limits.Burst))
	{
		profiles.GET("", handler.GetAll)
		profiles.GET("/:id", handler.GetByID)
		profiles.POST("", middleware.Idempotency(rdb), handler.Create)
		profiles.PUT("/:id", handler.Update)
		profiles.DELETE("/:id", handler.Delete)
	}
}
