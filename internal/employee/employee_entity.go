package employee

import (
	"time"

	"github.com/google/uuid"
)

type Employee struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_employee_user"`

	// Nil until an employment request is approved.
	CompanyID *uuid.UUID `gorm:"type:uuid;index"`

	FullName     string  `gorm:"type:varchar(255);not null"`
	PhoneNumber  *string `gorm:"type:varchar(20);uniqueIndex:uq_employee_phone"`
	EmployeeCode *string `gorm:"type:varchar(20);index"`
	IsActive     bool    `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

type EmploymentRequest struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EmployeeID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	Employee      *Employee  `gorm:"foreignKey:EmployeeID;references:ID;constraint:OnDelete:CASCADE"`
	CompanyID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	SubmittedCode *string    `gorm:"type:varchar(100)"`
	Status        string     `gorm:"type:varchar(10);not null;default:'pending';index"`
	ProcessedBy   *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
