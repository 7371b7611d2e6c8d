package app

import (
	"go-payroll/internal/auth"
	"go-payroll/internal/company"
	"go-payroll/internal/contract"
	"go-payroll/internal/employee"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/middleware"
	"go-payroll/internal/payslip"
	"go-payroll/internal/shared/clock"
	"go-payroll/internal/shared/counter"
	"go-payroll/internal/withdrawal"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(zap.L()))

	clk := clock.System()

	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	companyRepo := company.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	contractRepo := contract.NewRepository(gormDB)
	payslipRepo := payslip.NewRepository(gormDB)
	withdrawalRepo := withdrawal.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)

	// --- Services ---
	authService := auth.NewService(gormDB, authRepo, companyRepo, employeeRepo)
	companyService := company.NewService(companyRepo)
	employeeService := employee.NewService(gormDB, employeeRepo, counterRepo)
	contractService := contract.NewService(gormDB, contractRepo, payslipRepo, employeeRepo, outboxRepo, clk)
	payslipService := payslip.NewService(gormDB, payslipRepo)
	withdrawalService := withdrawal.NewService(gormDB, withdrawalRepo, outboxRepo, clk)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	companyHandler := company.NewHandler(companyService)
	employeeHandler := employee.NewHandler(employeeService)
	contractHandler := contract.NewHandler(contractService)
	payslipHandler := payslip.NewHandler(payslipService)
	withdrawalHandler := withdrawal.NewHandler(withdrawalService, rdb)

	// --- Routes ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		company.RegisterRoutes(api, companyHandler)
		employee.RegisterRoutes(api, employeeHandler)
		contract.RegisterRoutes(api, contractHandler)
		payslip.RegisterRoutes(api, payslipHandler)
		withdrawal.RegisterRoutes(api, withdrawalHandler, rdb)
	}

	return nil
}
