package app

import (
	"os"

	"go-payroll/internal/auth"
	"go-payroll/internal/company"
	"go-payroll/internal/contract"
	"go-payroll/internal/employee"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/payslip"
	"go-payroll/internal/shared/connection"
	"go-payroll/internal/shared/counter"
	"go-payroll/internal/withdrawal"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func BuildApp(router *gin.Engine) error {
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	if err := migrate(gormDB); err != nil {
		return err
	}
	zap.L().Info("database migrated")

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}

	return registerModules(router, gormDB, redisClient)
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&auth.User{},
		&company.Company{},
		&employee.Employee{},
		&employee.EmploymentRequest{},
		&contract.SalaryContract{},
		&payslip.MonthlyPayslip{},
		&payslip.SalaryAdjustment{},
		&withdrawal.Withdrawal{},
		&counter.CompanyCounter{},
		&kafka.OutboxEvent{},
	)
}
