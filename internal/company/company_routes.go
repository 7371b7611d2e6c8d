package company

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	companies := r.Group("/companies")
	companies.Use(middleware.AuthMiddleware(), middleware.RequireRole(middleware.RoleCompany))
	{
		companies.POST("",
			middleware.RateLimitByUser(0.1, 1),
			handler.Create,
		)
		companies.GET("/me",
			middleware.RateLimitByUser(2, 5),
			handler.GetMine,
		)
		companies.PUT("/me",
			middleware.RateLimitByUser(0.5, 2),
			handler.UpdateMine,
		)
		companies.DELETE("/me",
			middleware.RateLimitByUser(0.05, 1),
			handler.DeleteMine,
		)
		companies.POST("/me/restore",
			middleware.RateLimitByUser(0.05, 1),
			handler.RestoreMine,
		)
	}
}
