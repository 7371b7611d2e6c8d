package contract

import (
	"time"

	"go-payroll/internal/payslip"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalaryContract is the single yearly agreement per employee. The unique
// index on employee_id is what turns a duplicate create into a conflict
// instead of a second contract.
type SalaryContract struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_contract_employee"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index"`

	YearlySalary              decimal.Decimal `gorm:"type:numeric(10,2);not null;check:yearly_salary >= 0"`
	WithdrawAllowedPercentage int             `gorm:"not null;check:withdraw_allowed_percentage >= 0 AND withdraw_allowed_percentage <= 100"`

	// Payslips ride on the contract's lifecycle.
	Payslips []payslip.MonthlyPayslip `gorm:"foreignKey:ContractID;references:ID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
