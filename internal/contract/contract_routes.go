package contract

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	contracts := r.Group("/contracts")
	contracts.Use(middleware.AuthMiddleware(), middleware.RequireRole(middleware.RoleCompany), middleware.RequireCompanyScope())
	{
		contracts.POST("",
			middleware.RateLimitByUser(0.5, 2),
			handler.Create,
		)
		contracts.GET("",
			middleware.RateLimitByUser(2, 5),
			handler.GetAll,
		)
		contracts.GET("/:id",
			middleware.RateLimitByUser(2, 5),
			handler.GetByID,
		)
		contracts.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			handler.Update,
		)
	}
}
