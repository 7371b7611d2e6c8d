package company

import (
	"time"

	"github.com/google/uuid"
)

type Company struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerUserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_company_owner"`
	Name        string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_company_name"`
	Location    *string   `gorm:"type:varchar(255)"`
	PhoneNumber *string   `gorm:"type:varchar(20);uniqueIndex:uq_company_phone"`
	Email       *string   `gorm:"type:varchar(255);uniqueIndex:uq_company_email"`
	Website     *string   `gorm:"type:varchar(255)"`
	Description *string   `gorm:"type:text"`

	// Soft delete is explicit (not gorm.DeletedAt) because restore is part
	// of the public API and deactivated companies must stay queryable.
	IsActive  bool `gorm:"not null;default:true"`
	DeletedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
