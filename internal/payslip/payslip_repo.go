package payslip

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AdjustmentTotals is the per-payslip aggregate used when a contract
// detail embeds all twelve payslips in one query.
type AdjustmentTotals struct {
	PayslipID  string          `gorm:"column:payslip_id"`
	Additions  decimal.Decimal `gorm:"column:additions"`
	Deductions decimal.Decimal `gorm:"column:deductions"`
}

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateBatch(ctx context.Context, payslips []MonthlyPayslip) error
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*MonthlyPayslip, error)
	FindByContract(ctx context.Context, contractID string) ([]MonthlyPayslip, error)

	CreateAdjustment(ctx context.Context, adjustment *SalaryAdjustment) error
	FindAdjustmentsByPayslip(ctx context.Context, payslipID string) ([]SalaryAdjustment, error)
	AdjustmentTotalsByContract(ctx context.Context, contractID string) ([]AdjustmentTotals, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) CreateBatch(ctx context.Context, payslips []MonthlyPayslip) error {
	return r.db.WithContext(ctx).Create(&payslips).Error
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*MonthlyPayslip, error) {
	var payslip MonthlyPayslip
	err := r.db.WithContext(ctx).
		Joins("JOIN salary_contracts ON salary_contracts.id = monthly_payslips.contract_id").
		Where("salary_contracts.company_id = ?", companyID).
		Where("monthly_payslips.id = ?", id).
		First(&payslip).Error
	return &payslip, err
}

func (r *repository) FindByContract(ctx context.Context, contractID string) ([]MonthlyPayslip, error) {
	var payslips []MonthlyPayslip
	err := r.db.WithContext(ctx).
		Where("contract_id = ?", contractID).
		Order("year ASC, month ASC").
		Find(&payslips).Error
	return payslips, err
}

func (r *repository) CreateAdjustment(ctx context.Context, adjustment *SalaryAdjustment) error {
	return r.db.WithContext(ctx).Create(adjustment).Error
}

func (r *repository) FindAdjustmentsByPayslip(ctx context.Context, payslipID string) ([]SalaryAdjustment, error) {
	var adjustments []SalaryAdjustment
	err := r.db.WithContext(ctx).
		Where("payslip_id = ?", payslipID).
		Order("created_at ASC").
		Find(&adjustments).Error
	return adjustments, err
}

func (r *repository) AdjustmentTotalsByContract(ctx context.Context, contractID string) ([]AdjustmentTotals, error) {
	var totals []AdjustmentTotals
	err := r.db.WithContext(ctx).Raw(`
		SELECT sa.payslip_id,
		       COALESCE(SUM(CASE WHEN sa.type = 'addition' THEN sa.amount ELSE 0 END), 0) AS additions,
		       COALESCE(SUM(CASE WHEN sa.type = 'deduction' THEN sa.amount ELSE 0 END), 0) AS deductions
		FROM salary_adjustments sa
		JOIN monthly_payslips mp ON mp.id = sa.payslip_id
		WHERE mp.contract_id = ?
		GROUP BY sa.payslip_id
	`, contractID).Scan(&totals).Error
	return totals, err
}
