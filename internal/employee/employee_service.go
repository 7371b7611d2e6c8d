package employee

import (
	"context"
	"errors"
	"fmt"
	"time"

	employeeerrors "go-payroll/internal/employee/errors"
	"go-payroll/internal/shared/counter"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	GetAll(ctx context.Context, companyID string) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, companyID, id string) (EmployeeResponse, error)

	Apply(ctx context.Context, employeeID string, req ApplyEmploymentRequest) (EmploymentRequestResponse, error)
	ListRequests(ctx context.Context, companyID string, status string) ([]EmploymentRequestResponse, error)
	ApproveRequest(ctx context.Context, companyID, actorUserID, requestID string) (EmploymentRequestResponse, error)
	RejectRequest(ctx context.Context, companyID, actorUserID, requestID string) (EmploymentRequestResponse, error)
}

type service struct {
	db      *gorm.DB
	repo    Repository
	counter counter.Repository
	logger  *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, counterRepo counter.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{db: db, repo: repo, counter: counterRepo, logger: l}
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]EmployeeResponse, error) {
	employees, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	resp := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		resp[i] = mapToResponse(e)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (EmployeeResponse, error) {
	employee, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*employee), nil
}

func (s *service) Apply(
	ctx context.Context,
	employeeID string,
	req ApplyEmploymentRequest,
) (EmploymentRequestResponse, error) {
	employee, err := s.repo.FindByID(ctx, employeeID)
	if err != nil {
		return EmploymentRequestResponse{}, mapRepositoryError(err)
	}

	if employee.CompanyID != nil {
		return EmploymentRequestResponse{}, employeeerrors.ErrAlreadyEmployed
	}

	pending, err := s.repo.HasPendingRequest(ctx, employeeID)
	if err != nil {
		return EmploymentRequestResponse{}, err
	}
	if pending {
		return EmploymentRequestResponse{}, employeeerrors.ErrPendingRequestExists
	}

	request := &EmploymentRequest{
		ID:            uuid.New(),
		EmployeeID:    employee.ID,
		CompanyID:     uuid.MustParse(req.CompanyID),
		SubmittedCode: req.SubmittedCode,
		Status:        RequestStatusPending,
	}

	if err := s.repo.CreateRequest(ctx, request); err != nil {
		s.logger.Error("create employment request failed", zap.Error(err))
		return EmploymentRequestResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("employment request submitted",
		zap.String("request_id", request.ID.String()),
		zap.String("employee_id", employeeID),
		zap.String("company_id", req.CompanyID),
	)

	request.Employee = employee
	return mapRequestToResponse(*request), nil
}

func (s *service) ListRequests(ctx context.Context, companyID string, status string) ([]EmploymentRequestResponse, error) {
	requests, err := s.repo.FindRequestsByCompany(ctx, companyID, status)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	resp := make([]EmploymentRequestResponse, len(requests))
	for i, r := range requests {
		resp[i] = mapRequestToResponse(r)
	}
	return resp, nil
}

func (s *service) ApproveRequest(
	ctx context.Context,
	companyID, actorUserID, requestID string,
) (EmploymentRequestResponse, error) {
	actorUUID, err := uuid.Parse(actorUserID)
	if err != nil {
		return EmploymentRequestResponse{}, employeeerrors.ErrRequestNotFound
	}

	var request *EmploymentRequest

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		request, err = qtx.FindRequestByIDAndCompany(ctx, companyID, requestID)
		if err != nil {
			return mapRequestError(err)
		}
		if request.Status != RequestStatusPending {
			return employeeerrors.ErrRequestAlreadyProcessed
		}

		employee, err := qtx.FindByID(ctx, request.EmployeeID.String())
		if err != nil {
			return mapRepositoryError(err)
		}
		if employee.CompanyID != nil {
			return employeeerrors.ErrAlreadyEmployed
		}

		nextVal, err := s.counter.GetNextValue(ctx, companyID, "employee_number")
		if err != nil {
			return err
		}
		code := fmt.Sprintf("EMP-%06d", nextVal)

		employee.CompanyID = &request.CompanyID
		employee.EmployeeCode = &code
		if err := qtx.Update(ctx, employee); err != nil {
			return mapRepositoryError(err)
		}

		request.Status = RequestStatusApproved
		request.ProcessedBy = &actorUUID
		request.Employee = employee
		return qtx.UpdateRequest(ctx, request)
	})
	if err != nil {
		return EmploymentRequestResponse{}, err
	}

	s.logger.Info("employment request approved",
		zap.String("request_id", requestID),
		zap.String("company_id", companyID),
	)

	return mapRequestToResponse(*request), nil
}

func (s *service) RejectRequest(
	ctx context.Context,
	companyID, actorUserID, requestID string,
) (EmploymentRequestResponse, error) {
	actorUUID, err := uuid.Parse(actorUserID)
	if err != nil {
		return EmploymentRequestResponse{}, employeeerrors.ErrRequestNotFound
	}

	request, err := s.repo.FindRequestByIDAndCompany(ctx, companyID, requestID)
	if err != nil {
		return EmploymentRequestResponse{}, mapRequestError(err)
	}
	if request.Status != RequestStatusPending {
		return EmploymentRequestResponse{}, employeeerrors.ErrRequestAlreadyProcessed
	}

	request.Status = RequestStatusRejected
	request.ProcessedBy = &actorUUID

	if err := s.repo.UpdateRequest(ctx, request); err != nil {
		return EmploymentRequestResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("employment request rejected",
		zap.String("request_id", requestID),
		zap.String("company_id", companyID),
	)

	return mapRequestToResponse(*request), nil
}

func mapRequestError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrRequestNotFound
	}
	return mapRepositoryError(err)
}

func mapToResponse(employee Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:           employee.ID.String(),
		FullName:     employee.FullName,
		PhoneNumber:  employee.PhoneNumber,
		EmployeeCode: employee.EmployeeCode,
		IsActive:     employee.IsActive,
	}

	if employee.CompanyID != nil {
		v := employee.CompanyID.String()
		resp.CompanyID = &v
	}

	return resp
}

func mapRequestToResponse(request EmploymentRequest) EmploymentRequestResponse {
	resp := EmploymentRequestResponse{
		ID:            request.ID.String(),
		EmployeeID:    request.EmployeeID.String(),
		CompanyID:     request.CompanyID.String(),
		SubmittedCode: request.SubmittedCode,
		Status:        request.Status,
		CreatedAt:     request.CreatedAt.Format(time.RFC3339),
	}

	if request.Employee != nil {
		resp.EmployeeName = request.Employee.FullName
	}
	if request.ProcessedBy != nil {
		v := request.ProcessedBy.String()
		resp.ProcessedBy = &v
	}

	return resp
}
