package employee

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware(), middleware.RequireRole(middleware.RoleCompany), middleware.RequireCompanyScope())
	{
		employees.GET("",
			middleware.RateLimitByUser(2, 5),
			handler.GetAll,
		)
		employees.GET("/:id",
			middleware.RateLimitByUser(2, 5),
			handler.GetByID,
		)
	}

	requests := r.Group("/employment-requests")
	{
		requests.POST("",
			middleware.AuthMiddleware(),
			middleware.RequireRole(middleware.RoleEmployee),
			middleware.RequireEmployeeScope(),
			middleware.RateLimitByUser(0.2, 1),
			handler.Apply,
		)

		company := requests.Group("")
		company.Use(middleware.AuthMiddleware(), middleware.RequireRole(middleware.RoleCompany), middleware.RequireCompanyScope())
		{
			company.GET("",
				middleware.RateLimitByUser(2, 5),
				handler.ListRequests,
			)
			company.POST("/:id/approve",
				middleware.RateLimitByUser(0.5, 2),
				handler.ApproveRequest,
			)
			company.POST("/:id/reject",
				middleware.RateLimitByUser(0.5, 2),
				handler.RejectRequest,
			)
		}
	}
}
