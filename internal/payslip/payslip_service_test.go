package payslip_test

import (
	"context"
	"testing"
	"time"

	"go-payroll/internal/payslip"
	paysliperrors "go-payroll/internal/payslip/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakePayslipRepo struct {
	findByIDAndCompanyFn         func(ctx context.Context, companyID, id string) (*payslip.MonthlyPayslip, error)
	findAdjustmentsFn            func(ctx context.Context, payslipID string) ([]payslip.SalaryAdjustment, error)
	createAdjustmentFn           func(ctx context.Context, a *payslip.SalaryAdjustment) error
	createBatchFn                func(ctx context.Context, payslips []payslip.MonthlyPayslip) error
	findByContractFn             func(ctx context.Context, contractID string) ([]payslip.MonthlyPayslip, error)
	adjustmentTotalsByContractFn func(ctx context.Context, contractID string) ([]payslip.AdjustmentTotals, error)
}

func (f *fakePayslipRepo) WithTx(tx *gorm.DB) payslip.Repository { return f }

func (f *fakePayslipRepo) CreateBatch(ctx context.Context, payslips []payslip.MonthlyPayslip) error {
	if f.createBatchFn != nil {
		return f.createBatchFn(ctx, payslips)
	}
	return nil
}

func (f *fakePayslipRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*payslip.MonthlyPayslip, error) {
	if f.findByIDAndCompanyFn != nil {
		return f.findByIDAndCompanyFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePayslipRepo) FindByContract(ctx context.Context, contractID string) ([]payslip.MonthlyPayslip, error) {
	if f.findByContractFn != nil {
		return f.findByContractFn(ctx, contractID)
	}
	return nil, nil
}

func (f *fakePayslipRepo) CreateAdjustment(ctx context.Context, a *payslip.SalaryAdjustment) error {
	if f.createAdjustmentFn != nil {
		return f.createAdjustmentFn(ctx, a)
	}
	return nil
}

func (f *fakePayslipRepo) FindAdjustmentsByPayslip(ctx context.Context, payslipID string) ([]payslip.SalaryAdjustment, error) {
	if f.findAdjustmentsFn != nil {
		return f.findAdjustmentsFn(ctx, payslipID)
	}
	return nil, nil
}

func (f *fakePayslipRepo) AdjustmentTotalsByContract(ctx context.Context, contractID string) ([]payslip.AdjustmentTotals, error) {
	if f.adjustmentTotalsByContractFn != nil {
		return f.adjustmentTotalsByContractFn(ctx, contractID)
	}
	return nil, nil
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

func TestPayslipService_GetByID_ComputesTotalsOnRead(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	slip := payslip.MonthlyPayslip{
		ID:                uuid.New(),
		ContractID:        uuid.New(),
		Month:             3,
		Year:              2026,
		BaseMonthlySalary: decimal.RequireFromString("1000.00"),
	}

	adjustments := []payslip.SalaryAdjustment{
		{ID: uuid.New(), PayslipID: slip.ID, Type: payslip.AdjustmentTypeAddition, Amount: decimal.RequireFromString("200.00"), Reason: "Overtime", CreatedAt: time.Now()},
		{ID: uuid.New(), PayslipID: slip.ID, Type: payslip.AdjustmentTypeDeduction, Amount: decimal.RequireFromString("50.00"), Reason: "Late penalty", CreatedAt: time.Now()},
	}

	repo := &fakePayslipRepo{
		findByIDAndCompanyFn: func(ctx context.Context, cid, id string) (*payslip.MonthlyPayslip, error) {
			assert.Equal(t, companyID, cid)
			s := slip
			return &s, nil
		},
		findAdjustmentsFn: func(ctx context.Context, payslipID string) ([]payslip.SalaryAdjustment, error) {
			return adjustments, nil
		},
	}
	svc := payslip.NewService(openTestDB(t), repo)

	detail, err := svc.GetByID(ctx, companyID, slip.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "1000.00", detail.BaseMonthlySalary)
	assert.Equal(t, "200.00", detail.TotalAdditions)
	assert.Equal(t, "50.00", detail.TotalDeductions)
	assert.Equal(t, "1150.00", detail.FinalSalary)
	assert.Len(t, detail.Adjustments, 2)

	// Reading again recomputes the same figures; nothing is cached.
	again, err := svc.GetByID(ctx, companyID, slip.ID.String())
	require.NoError(t, err)
	assert.Equal(t, detail.FinalSalary, again.FinalSalary)
}

func TestPayslipService_GetByID_FinalSalaryCanGoNegative(t *testing.T) {
	ctx := context.Background()
	slip := payslip.MonthlyPayslip{
		ID:                uuid.New(),
		ContractID:        uuid.New(),
		Month:             1,
		Year:              2026,
		BaseMonthlySalary: decimal.RequireFromString("100.00"),
	}

	repo := &fakePayslipRepo{
		findByIDAndCompanyFn: func(ctx context.Context, cid, id string) (*payslip.MonthlyPayslip, error) {
			s := slip
			return &s, nil
		},
		findAdjustmentsFn: func(ctx context.Context, payslipID string) ([]payslip.SalaryAdjustment, error) {
			return []payslip.SalaryAdjustment{
				{ID: uuid.New(), PayslipID: slip.ID, Type: payslip.AdjustmentTypeDeduction, Amount: decimal.RequireFromString("250.00"), Reason: "Damage"},
			}, nil
		},
	}
	svc := payslip.NewService(openTestDB(t), repo)

	detail, err := svc.GetByID(ctx, uuid.New().String(), slip.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "-150.00", detail.FinalSalary)
}

func TestPayslipService_AppendAdjustment(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	slip := payslip.MonthlyPayslip{
		ID:                uuid.New(),
		ContractID:        uuid.New(),
		Month:             3,
		Year:              2026,
		BaseMonthlySalary: decimal.RequireFromString("1000.00"),
	}

	var created *payslip.SalaryAdjustment
	repo := &fakePayslipRepo{
		findByIDAndCompanyFn: func(ctx context.Context, cid, id string) (*payslip.MonthlyPayslip, error) {
			s := slip
			return &s, nil
		},
		createAdjustmentFn: func(ctx context.Context, a *payslip.SalaryAdjustment) error {
			created = a
			return nil
		},
	}
	svc := payslip.NewService(openTestDB(t), repo)

	resp, err := svc.AppendAdjustment(ctx, companyID, slip.ID.String(), payslip.AppendAdjustmentRequest{
		Type:   payslip.AdjustmentTypeAddition,
		Amount: "200.005",
		Reason: "Overtime",
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "200.00", resp.Amount)
	assert.Equal(t, payslip.AdjustmentTypeAddition, created.Type)

	// Zero amounts are allowed; negatives and unknown types are not.
	_, err = svc.AppendAdjustment(ctx, companyID, slip.ID.String(), payslip.AppendAdjustmentRequest{
		Type: payslip.AdjustmentTypeDeduction, Amount: "0", Reason: "Noop",
	})
	assert.NoError(t, err)

	_, err = svc.AppendAdjustment(ctx, companyID, slip.ID.String(), payslip.AppendAdjustmentRequest{
		Type: payslip.AdjustmentTypeAddition, Amount: "-10", Reason: "Bad",
	})
	assert.ErrorIs(t, err, paysliperrors.ErrInvalidAmount)

	_, err = svc.AppendAdjustment(ctx, companyID, slip.ID.String(), payslip.AppendAdjustmentRequest{
		Type: "bonus", Amount: "10", Reason: "Bad type",
	})
	assert.ErrorIs(t, err, paysliperrors.ErrInvalidAdjustmentType)
}

func TestPayslipService_AppendAdjustment_OtherCompanyPayslip(t *testing.T) {
	ctx := context.Background()

	repo := &fakePayslipRepo{
		findByIDAndCompanyFn: func(ctx context.Context, cid, id string) (*payslip.MonthlyPayslip, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := payslip.NewService(openTestDB(t), repo)

	_, err := svc.AppendAdjustment(ctx, uuid.New().String(), uuid.New().String(), payslip.AppendAdjustmentRequest{
		Type: payslip.AdjustmentTypeAddition, Amount: "10", Reason: "Foreign",
	})
	assert.ErrorIs(t, err, paysliperrors.ErrPayslipNotFound)
}
