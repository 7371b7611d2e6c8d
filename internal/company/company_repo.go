package company

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, company *Company) error
	FindByID(ctx context.Context, id string) (*Company, error)
	FindByOwnerUser(ctx context.Context, ownerUserID string) (*Company, error)
	Update(ctx context.Context, company *Company) error
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

func (r *repository) Create(ctx context.Context, company *Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Company, error) {
	var company Company
	err := r.db.WithContext(ctx).First(&company, "id = ?", id).Error
	return &company, err
}

func (r *repository) FindByOwnerUser(ctx context.Context, ownerUserID string) (*Company, error) {
	var company Company
	err := r.db.WithContext(ctx).First(&company, "owner_user_id = ?", ownerUserID).Error
	return &company, err
}

func (r *repository) Update(ctx context.Context, company *Company) error {
	company.UpdatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).Save(company).Error
}
