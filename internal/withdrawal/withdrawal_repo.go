package withdrawal

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PayslipBudget is the joined payslip/contract projection the guard
// admits against. The percentage is always the contract's live value.
type PayslipBudget struct {
	PayslipID                 string          `gorm:"column:payslip_id"`
	ContractID                string          `gorm:"column:contract_id"`
	EmployeeID                string          `gorm:"column:employee_id"`
	CompanyID                 string          `gorm:"column:company_id"`
	Month                     int             `gorm:"column:month"`
	Year                      int             `gorm:"column:year"`
	BaseMonthlySalary         decimal.Decimal `gorm:"column:base_monthly_salary"`
	WithdrawAllowedPercentage int             `gorm:"column:withdraw_allowed_percentage"`
}

type ListRow struct {
	ID         string          `gorm:"column:id"`
	PayslipID  string          `gorm:"column:payslip_id"`
	EmployeeID string          `gorm:"column:employee_id"`
	Amount     decimal.Decimal `gorm:"column:amount"`
	Date       time.Time       `gorm:"column:date"`
	Month      int             `gorm:"column:month"`
	Year       int             `gorm:"column:year"`
}

type Repository interface {
	WithTx(tx *gorm.DB) Repository

	// LockBudgetByEmployee takes a row lock on the employee's payslip for
	// the given month so concurrent admissions are serialized. Must run
	// inside a transaction.
	LockBudgetByEmployee(ctx context.Context, employeeID string, month, year int) (*PayslipBudget, error)
	FindBudgetByEmployee(ctx context.Context, employeeID string, month, year int) (*PayslipBudget, error)
	SumByPayslip(ctx context.Context, payslipID string) (decimal.Decimal, error)
	Create(ctx context.Context, withdrawal *Withdrawal) error

	FindAllByEmployee(ctx context.Context, employeeID string) ([]ListRow, error)
	FindAllByCompany(ctx context.Context, companyID string) ([]ListRow, error)
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

const budgetSelect = `
	SELECT mp.id AS payslip_id,
	       sc.id AS contract_id,
	       sc.employee_id,
	       sc.company_id,
	       mp.month,
	       mp.year,
	       mp.base_monthly_salary,
	       sc.withdraw_allowed_percentage
	FROM monthly_payslips mp
	JOIN salary_contracts sc ON sc.id = mp.contract_id
	WHERE sc.employee_id = ? AND mp.month = ? AND mp.year = ?
`

func (r *repository) LockBudgetByEmployee(ctx context.Context, employeeID string, month, year int) (*PayslipBudget, error) {
	var budget PayslipBudget
	err := r.db.WithContext(ctx).
		Raw(budgetSelect+" FOR UPDATE OF mp", employeeID, month, year).
		Scan(&budget).Error
	if err != nil {
		return nil, err
	}
	if budget.PayslipID == "" {
		return nil, gorm.ErrRecordNotFound
	}
	return &budget, nil
}

func (r *repository) FindBudgetByEmployee(ctx context.Context, employeeID string, month, year int) (*PayslipBudget, error) {
	var budget PayslipBudget
	err := r.db.WithContext(ctx).
		Raw(budgetSelect, employeeID, month, year).
		Scan(&budget).Error
	if err != nil {
		return nil, err
	}
	if budget.PayslipID == "" {
		return nil, gorm.ErrRecordNotFound
	}
	return &budget, nil
}

func (r *repository) SumByPayslip(ctx context.Context, payslipID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Raw(`SELECT COALESCE(SUM(amount), 0) FROM withdrawals WHERE payslip_id = ?`, payslipID).
		Scan(&total).Error
	return total, err
}

func (r *repository) Create(ctx context.Context, withdrawal *Withdrawal) error {
	return r.db.WithContext(ctx).Create(withdrawal).Error
}

const listSelect = `
	SELECT w.id,
	       w.payslip_id,
	       sc.employee_id,
	       w.amount,
	       w.date,
	       mp.month,
	       mp.year
	FROM withdrawals w
	JOIN monthly_payslips mp ON mp.id = w.payslip_id
	JOIN salary_contracts sc ON sc.id = mp.contract_id
`

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]ListRow, error) {
	var rows []ListRow
	err := r.db.WithContext(ctx).
		Raw(listSelect+" WHERE sc.employee_id = ? ORDER BY w.created_at DESC", employeeID).
		Scan(&rows).Error
	return rows, err
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]ListRow, error) {
	var rows []ListRow
	err := r.db.WithContext(ctx).
		Raw(listSelect+" WHERE sc.company_id = ? ORDER BY w.created_at DESC", companyID).
		Scan(&rows).Error
	return rows, err
}
