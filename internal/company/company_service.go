package company

import (
	"context"
	"time"

	companyerrors "go-payroll/internal/company/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, ownerUserID string, req CreateCompanyRequest) (CompanyResponse, error)
	GetMine(ctx context.Context, ownerUserID string) (CompanyResponse, error)
	UpdateMine(ctx context.Context, ownerUserID string, req UpdateCompanyRequest) (CompanyResponse, error)
	DeleteMine(ctx context.Context, ownerUserID string) error
	RestoreMine(ctx context.Context, ownerUserID string) (CompanyResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("company.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(
	ctx context.Context,
	ownerUserID string,
	req CreateCompanyRequest,
) (CompanyResponse, error) {
	ownerUUID, err := uuid.Parse(ownerUserID)
	if err != nil {
		return CompanyResponse{}, companyerrors.ErrCompanyNotFound
	}

	company := &Company{
		ID:          uuid.New(),
		OwnerUserID: ownerUUID,
		Name:        req.Name,
		Location:    req.Location,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Website:     req.Website,
		Description: req.Description,
		IsActive:    true,
	}

	if err := s.repo.Create(ctx, company); err != nil {
		s.logger.Error("create company persist failed", zap.Error(err))
		return CompanyResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("company created",
		zap.String("company_id", company.ID.String()),
		zap.String("owner_user_id", ownerUserID),
	)

	return mapToResponse(*company), nil
}

func (s *service) GetMine(ctx context.Context, ownerUserID string) (CompanyResponse, error) {
	company, err := s.repo.FindByOwnerUser(ctx, ownerUserID)
	if err != nil {
		return CompanyResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*company), nil
}

func (s *service) UpdateMine(
	ctx context.Context,
	ownerUserID string,
	req UpdateCompanyRequest,
) (CompanyResponse, error) {
	company, err := s.repo.FindByOwnerUser(ctx, ownerUserID)
	if err != nil {
		return CompanyResponse{}, mapRepositoryError(err)
	}
	if !company.IsActive {
		return CompanyResponse{}, companyerrors.ErrCompanyDeactivated
	}

	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.Location != nil {
		company.Location = req.Location
	}
	if req.PhoneNumber != nil {
		company.PhoneNumber = req.PhoneNumber
	}
	if req.Email != nil {
		company.Email = req.Email
	}
	if req.Website != nil {
		company.Website = req.Website
	}
	if req.Description != nil {
		company.Description = req.Description
	}

	if err := s.repo.Update(ctx, company); err != nil {
		return CompanyResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*company), nil
}

func (s *service) DeleteMine(ctx context.Context, ownerUserID string) error {
	company, err := s.repo.FindByOwnerUser(ctx, ownerUserID)
	if err != nil {
		return mapRepositoryError(err)
	}

	now := time.Now().UTC()
	company.IsActive = false
	company.DeletedAt = &now

	if err := s.repo.Update(ctx, company); err != nil {
		return mapRepositoryError(err)
	}

	s.logger.Info("company soft deleted", zap.String("company_id", company.ID.String()))

	return nil
}

func (s *service) RestoreMine(ctx context.Context, ownerUserID string) (CompanyResponse, error) {
	company, err := s.repo.FindByOwnerUser(ctx, ownerUserID)
	if err != nil {
		return CompanyResponse{}, mapRepositoryError(err)
	}
	if company.DeletedAt == nil {
		return CompanyResponse{}, companyerrors.ErrCompanyNotDeleted
	}

	company.IsActive = true
	company.DeletedAt = nil

	if err := s.repo.Update(ctx, company); err != nil {
		return CompanyResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("company restored", zap.String("company_id", company.ID.String()))

	return mapToResponse(*company), nil
}

func mapToResponse(company Company) CompanyResponse {
	resp := CompanyResponse{
		ID:          company.ID.String(),
		Name:        company.Name,
		Location:    company.Location,
		PhoneNumber: company.PhoneNumber,
		Email:       company.Email,
		Website:     company.Website,
		Description: company.Description,
		IsActive:    company.IsActive,
	}

	if company.DeletedAt != nil {
		v := company.DeletedAt.Format(time.RFC3339)
		resp.DeletedAt = &v
	}

	return resp
}
