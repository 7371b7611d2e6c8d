package withdrawal

import (
	"time"

	"go-payroll/internal/payslip"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Withdrawal records an admitted advance against one monthly payslip.
// The date is server-assigned; clients never supply it. The RESTRICT
// constraint keeps a payslip alive while money has moved against it.
type Withdrawal struct {
	ID        uuid.UUID               `gorm:"type:uuid;primaryKey"`
	PayslipID uuid.UUID               `gorm:"type:uuid;not null;index"`
	Payslip   *payslip.MonthlyPayslip `gorm:"foreignKey:PayslipID;references:ID;constraint:OnDelete:RESTRICT"`
	Amount    decimal.Decimal         `gorm:"type:numeric(10,2);not null;check:amount > 0"`
	Date      time.Time               `gorm:"type:date;not null"`

	CreatedAt time.Time
}
