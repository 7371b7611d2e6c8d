package payslip

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	payslips := r.Group("/payslips")
	payslips.Use(middleware.AuthMiddleware(), middleware.RequireRole(middleware.RoleCompany), middleware.RequireCompanyScope())
	{
		payslips.GET("/:id",
			middleware.RateLimitByUser(2, 5),
			handler.GetByID,
		)
		payslips.POST("/:id/adjustments",
			middleware.RateLimitByUser(1, 3),
			handler.AppendAdjustment,
		)
	}
}
