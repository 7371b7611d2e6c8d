package contract

import (
	"context"

	"go-payroll/internal/tenant"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, contract *SalaryContract) error
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*SalaryContract, error)
	FindAllByCompany(ctx context.Context, companyID string) ([]SalaryContract, error)
	Update(ctx context.Context, contract *SalaryContract) error
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

func (r *repository) Create(ctx context.Context, contract *SalaryContract) error {
	return r.db.WithContext(ctx).Create(contract).Error
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*SalaryContract, error) {
	var contract SalaryContract
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&contract, "id = ?", id).Error
	return &contract, err
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]SalaryContract, error) {
	var contracts []SalaryContract
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("created_at DESC").
		Find(&contracts).Error
	return contracts, err
}

func (r *repository) Update(ctx context.Context, contract *SalaryContract) error {
	return r.db.WithContext(ctx).Save(contract).Error
}
