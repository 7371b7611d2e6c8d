package counter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompanyCounter backs per-company monotonic sequences (employee codes).
type CompanyCounter struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_company_counter"`
	CounterType string    `gorm:"type:varchar(50);not null;uniqueIndex:uq_company_counter"`
	LastValue   int64     `gorm:"type:bigint;not null;default:0"`
	UpdatedAt   time.Time
}

type Repository interface {
	GetNextValue(ctx context.Context, companyID string, counterType string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetNextValue(ctx context.Context, companyID string, counterType string) (int64, error) {
	var nextValue int64

	// Atomic UPSERT-and-increment so concurrent callers never share a value.
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO company_counters (id, company_id, counter_type, last_value, updated_at)
		VALUES (?, ?, ?, 1, now())
		ON CONFLICT (company_id, counter_type) DO UPDATE
		SET last_value = company_counters.last_value + 1, updated_at = now()
		RETURNING last_value
	`, uuid.New(), companyID, counterType).Scan(&nextValue).Error

	if err != nil {
		return 0, err
	}

	return nextValue, nil
}
