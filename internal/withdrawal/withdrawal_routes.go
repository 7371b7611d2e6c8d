package withdrawal

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	withdrawals := r.Group("/withdrawals")
	withdrawals.Use(middleware.AuthMiddleware())
	{
		withdrawals.POST("",
			middleware.RequireRole(middleware.RoleEmployee),
			middleware.RequireEmployeeScope(),
			middleware.RateLimitByUser(0.5, 2),
			middleware.Idempotency(rdb),
			handler.Request,
		)
		withdrawals.GET("",
			middleware.RequireRole(middleware.RoleEmployee, middleware.RoleCompany),
			middleware.RateLimitByUser(2, 5),
			handler.List,
		)
		withdrawals.GET("/summary",
			middleware.RequireRole(middleware.RoleEmployee),
			middleware.RequireEmployeeScope(),
			middleware.RateLimitByUser(2, 5),
			handler.Summary,
		)
	}
}
