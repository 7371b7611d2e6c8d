package employee

import (
	"context"

	"go-payroll/internal/tenant"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, employee *Employee) error
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindByUser(ctx context.Context, userID string) (*Employee, error)
	FindAllByCompany(ctx context.Context, companyID string) ([]Employee, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Employee, error)
	Update(ctx context.Context, employee *Employee) error

	CreateRequest(ctx context.Context, request *EmploymentRequest) error
	FindRequestByIDAndCompany(ctx context.Context, companyID string, id string) (*EmploymentRequest, error)
	FindRequestsByCompany(ctx context.Context, companyID string, status string) ([]EmploymentRequest, error)
	UpdateRequest(ctx context.Context, request *EmploymentRequest) error
	HasPendingRequest(ctx context.Context, employeeID string) (bool, error)
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

func (r *repository) Create(ctx context.Context, employee *Employee) error {
	return r.db.WithContext(ctx).Create(employee).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var employee Employee
	err := r.db.WithContext(ctx).First(&employee, "id = ?", id).Error
	return &employee, err
}

func (r *repository) FindByUser(ctx context.Context, userID string) (*Employee, error) {
	var employee Employee
	err := r.db.WithContext(ctx).First(&employee, "user_id = ?", userID).Error
	return &employee, err
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("full_name ASC").
		Find(&employees).Error
	return employees, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Employee, error) {
	var employee Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&employee, "id = ?", id).Error
	return &employee, err
}

func (r *repository) Update(ctx context.Context, employee *Employee) error {
	return r.db.WithContext(ctx).Save(employee).Error
}

func (r *repository) CreateRequest(ctx context.Context, request *EmploymentRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *repository) FindRequestByIDAndCompany(ctx context.Context, companyID string, id string) (*EmploymentRequest, error) {
	var request EmploymentRequest
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Scopes(tenant.Scope(companyID)).
		First(&request, "id = ?", id).Error
	return &request, err
}

func (r *repository) FindRequestsByCompany(ctx context.Context, companyID string, status string) ([]EmploymentRequest, error) {
	query := r.db.WithContext(ctx).
		Preload("Employee").
		Scopes(tenant.Scope(companyID)).
		Order("created_at DESC")

	if status != "" {
		query = query.Where("status = ?", status)
	}

	var requests []EmploymentRequest
	err := query.Find(&requests).Error
	return requests, err
}

func (r *repository) UpdateRequest(ctx context.Context, request *EmploymentRequest) error {
	return r.db.WithContext(ctx).Save(request).Error
}

func (r *repository) HasPendingRequest(ctx context.Context, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&EmploymentRequest{}).
		Where("employee_id = ?", employeeID).
		Where("status = ?", RequestStatusPending).
		Count(&count).Error
	return count > 0, err
}
