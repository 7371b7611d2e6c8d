package contract_test

import (
	"context"
	"fmt"
	"testing"

	"go-payroll/internal/contract"
	"go-payroll/internal/payslip"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openMigratedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&contract.SalaryContract{}, &payslip.MonthlyPayslip{}))
	return db
}

func buildPayslips(contractID uuid.UUID, year int, monthly decimal.Decimal) []payslip.MonthlyPayslip {
	payslips := make([]payslip.MonthlyPayslip, 12)
	for month := 1; month <= 12; month++ {
		payslips[month-1] = payslip.MonthlyPayslip{
			ID:                uuid.New(),
			ContractID:        contractID,
			Month:             month,
			Year:              year,
			BaseMonthlySalary: monthly,
		}
	}
	return payslips
}

func TestContractRepository_CreateWithPayslips_Atomic(t *testing.T) {
	ctx := context.Background()
	db := openMigratedDB(t)

	contractRepo := contract.NewRepository(db)
	payslipRepo := payslip.NewRepository(db)

	first := &contract.SalaryContract{
		ID:                        uuid.New(),
		EmployeeID:                uuid.New(),
		CompanyID:                 uuid.New(),
		YearlySalary:              decimal.RequireFromString("12000.00"),
		WithdrawAllowedPercentage: 50,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := contractRepo.WithTx(tx).Create(ctx, first); err != nil {
			return err
		}
		return payslipRepo.WithTx(tx).CreateBatch(ctx, buildPayslips(first.ID, 2026, decimal.RequireFromString("1000.00")))
	})
	require.NoError(t, err)

	var slipCount int64
	require.NoError(t, db.Model(&payslip.MonthlyPayslip{}).Count(&slipCount).Error)
	assert.EqualValues(t, 12, slipCount)

	// A second contract whose payslips collide on (contract, month, year)
	// must leave nothing behind, contract row included.
	second := &contract.SalaryContract{
		ID:                        uuid.New(),
		EmployeeID:                uuid.New(),
		CompanyID:                 first.CompanyID,
		YearlySalary:              decimal.RequireFromString("6000.00"),
		WithdrawAllowedPercentage: 25,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := contractRepo.WithTx(tx).Create(ctx, second); err != nil {
			return err
		}
		// Reuses the first contract's ID to trip the unique index.
		return payslipRepo.WithTx(tx).CreateBatch(ctx, buildPayslips(first.ID, 2026, decimal.RequireFromString("500.00")))
	})
	require.Error(t, err)

	var contractCount int64
	require.NoError(t, db.Model(&contract.SalaryContract{}).Count(&contractCount).Error)
	assert.EqualValues(t, 1, contractCount)

	require.NoError(t, db.Model(&payslip.MonthlyPayslip{}).Count(&slipCount).Error)
	assert.EqualValues(t, 12, slipCount)
}

func TestContractRepository_UniqueEmployee(t *testing.T) {
	ctx := context.Background()
	db := openMigratedDB(t)
	repo := contract.NewRepository(db)

	employeeID := uuid.New()
	companyID := uuid.New()

	require.NoError(t, repo.Create(ctx, &contract.SalaryContract{
		ID:                        uuid.New(),
		EmployeeID:                employeeID,
		CompanyID:                 companyID,
		YearlySalary:              decimal.RequireFromString("12000.00"),
		WithdrawAllowedPercentage: 50,
	}))

	err := repo.Create(ctx, &contract.SalaryContract{
		ID:                        uuid.New(),
		EmployeeID:                employeeID,
		CompanyID:                 companyID,
		YearlySalary:              decimal.RequireFromString("15000.00"),
		WithdrawAllowedPercentage: 60,
	})
	assert.Error(t, err)
}

func TestContractRepository_ScopedByCompany(t *testing.T) {
	ctx := context.Background()
	db := openMigratedDB(t)
	repo := contract.NewRepository(db)

	mine := uuid.New()
	other := uuid.New()

	created := &contract.SalaryContract{
		ID:                        uuid.New(),
		EmployeeID:                uuid.New(),
		CompanyID:                 mine,
		YearlySalary:              decimal.RequireFromString("12000.00"),
		WithdrawAllowedPercentage: 50,
	}
	require.NoError(t, repo.Create(ctx, created))

	found, err := repo.FindByIDAndCompany(ctx, mine.String(), created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = repo.FindByIDAndCompany(ctx, other.String(), created.ID.String())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

// openConstraintDB enables sqlite foreign key enforcement; the shared
// in-memory database needs a unique name per test to stay isolated.
func openConstraintDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&contract.SalaryContract{},
		&payslip.MonthlyPayslip{},
		&payslip.SalaryAdjustment{},
	))
	return db
}

func TestContractDelete_CascadesToPayslipsAndAdjustments(t *testing.T) {
	db := openConstraintDB(t)

	created := &contract.SalaryContract{
		ID:                        uuid.New(),
		EmployeeID:                uuid.New(),
		CompanyID:                 uuid.New(),
		YearlySalary:              decimal.RequireFromString("12000.00"),
		WithdrawAllowedPercentage: 50,
	}
	require.NoError(t, db.Create(created).Error)

	slips := buildPayslips(created.ID, 2026, decimal.RequireFromString("1000.00"))
	require.NoError(t, db.Create(&slips).Error)

	adjustment := payslip.SalaryAdjustment{
		ID:        uuid.New(),
		PayslipID: slips[0].ID,
		Type:      payslip.AdjustmentTypeAddition,
		Amount:    decimal.RequireFromString("50.00"),
		Reason:    "signing bonus",
	}
	require.NoError(t, db.Create(&adjustment).Error)

	require.NoError(t, db.Delete(&contract.SalaryContract{}, "id = ?", created.ID).Error)

	var slipCount, adjustmentCount int64
	require.NoError(t, db.Model(&payslip.MonthlyPayslip{}).Count(&slipCount).Error)
	require.NoError(t, db.Model(&payslip.SalaryAdjustment{}).Count(&adjustmentCount).Error)
	assert.Zero(t, slipCount)
	assert.Zero(t, adjustmentCount)
}
