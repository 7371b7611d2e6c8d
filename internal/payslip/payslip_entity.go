package payslip

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	AdjustmentTypeAddition  = "addition"
	AdjustmentTypeDeduction = "deduction"
)

// MonthlyPayslip freezes the base salary at contract creation time.
// Later contract updates never rewrite existing rows.
type MonthlyPayslip struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ContractID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_payslip_contract_month_year"`
	Month             int             `gorm:"not null;uniqueIndex:uq_payslip_contract_month_year;check:month >= 1 AND month <= 12"`
	Year              int             `gorm:"not null;uniqueIndex:uq_payslip_contract_month_year;check:year >= 2020"`
	BaseMonthlySalary decimal.Decimal `gorm:"type:numeric(10,2);not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SalaryAdjustment rows are append-only; corrections are new entries of
// the opposite type, not edits.
type SalaryAdjustment struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PayslipID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Payslip   *MonthlyPayslip `gorm:"foreignKey:PayslipID;references:ID;constraint:OnDelete:CASCADE"`
	Type      string          `gorm:"type:varchar(10);not null"`
	Amount    decimal.Decimal `gorm:"type:numeric(10,2);not null;check:amount >= 0"`
	Reason    string          `gorm:"type:varchar(255);not null"`

	CreatedAt time.Time
}
