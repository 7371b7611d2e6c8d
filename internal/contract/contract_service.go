package contract

import (
	"context"
	"encoding/json"
	"time"

	contracterrors "go-payroll/internal/contract/errors"
	"go-payroll/internal/employee"
	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/payslip"
	"go-payroll/internal/shared/clock"
	"go-payroll/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const monthsPerYear = 12

type Service interface {
	Create(ctx context.Context, companyID string, req CreateContractRequest) (ContractDetailResponse, error)
	GetAll(ctx context.Context, companyID string) ([]ContractResponse, error)
	GetByID(ctx context.Context, companyID, id string) (ContractDetailResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateContractRequest) (ContractResponse, error)
}

type service struct {
	db           *gorm.DB
	repo         Repository
	payslipRepo  payslip.Repository
	employeeRepo employee.Repository
	outboxRepo   kafka.OutboxRepository
	clock        clock.Clock
	logger       *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	payslipRepo payslip.Repository,
	employeeRepo employee.Repository,
	outboxRepo kafka.OutboxRepository,
	clk clock.Clock,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("contract.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("contract.service")
	}
	return &service{
		db:           db,
		repo:         repo,
		payslipRepo:  payslipRepo,
		employeeRepo: employeeRepo,
		outboxRepo:   outboxRepo,
		clock:        clk,
		logger:       l,
	}
}

func (s *service) Create(ctx context.Context, companyID string, req CreateContractRequest) (ContractDetailResponse, error) {
	yearly, err := decimal.NewFromString(req.YearlySalary)
	if err != nil || yearly.IsNegative() {
		return ContractDetailResponse{}, contracterrors.ErrInvalidSalary
	}
	if req.WithdrawAllowedPercentage == nil || *req.WithdrawAllowedPercentage < 0 || *req.WithdrawAllowedPercentage > 100 {
		return ContractDetailResponse{}, contracterrors.ErrInvalidPercentage
	}

	emp, err := s.employeeRepo.FindByIDAndCompany(ctx, companyID, req.EmployeeID)
	if err != nil {
		return ContractDetailResponse{}, contracterrors.ErrEmployeeNotInCompany
	}

	yearly = yearly.Round(2)
	monthly := yearly.Div(decimal.NewFromInt(monthsPerYear)).Round(2)
	year := s.clock.Now().Year()

	contract := &SalaryContract{
		ID:                        uuid.New(),
		EmployeeID:                emp.ID,
		CompanyID:                 uuid.MustParse(companyID),
		YearlySalary:              yearly,
		WithdrawAllowedPercentage: *req.WithdrawAllowedPercentage,
	}

	payslips := make([]payslip.MonthlyPayslip, monthsPerYear)
	for month := 1; month <= monthsPerYear; month++ {
		payslips[month-1] = payslip.MonthlyPayslip{
			ID:                uuid.New(),
			ContractID:        contract.ID,
			Month:             month,
			Year:              year,
			BaseMonthlySalary: monthly,
		}
	}

	// Contract, all twelve payslips and the outbox event commit or roll
	// back as one unit.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, contract); err != nil {
			return mapRepositoryError(err)
		}
		if err := s.payslipRepo.WithTx(tx).CreateBatch(ctx, payslips); err != nil {
			return mapRepositoryError(err)
		}
		return s.writeCreatedEvent(ctx, tx, contract, year)
	})
	if err != nil {
		return ContractDetailResponse{}, err
	}

	s.logger.Info("contract created",
		zap.String("contract_id", contract.ID.String()),
		zap.String("employee_id", contract.EmployeeID.String()),
		zap.String("created_by", contextutil.GetUserID(ctx)),
		zap.String("yearly_salary", yearly.StringFixed(2)),
		zap.Int("year", year),
	)

	detail := ContractDetailResponse{
		ContractResponse: mapToResponse(*contract),
		Payslips:         make([]payslip.PayslipResponse, len(payslips)),
	}
	for i, p := range payslips {
		detail.Payslips[i] = payslip.NewResponse(p, decimal.Zero, decimal.Zero)
	}
	return detail, nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]ContractResponse, error) {
	contracts, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	resp := make([]ContractResponse, len(contracts))
	for i, c := range contracts {
		resp[i] = mapToResponse(c)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (ContractDetailResponse, error) {
	contract, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return ContractDetailResponse{}, mapRepositoryError(err)
	}

	payslips, err := s.payslipRepo.FindByContract(ctx, contract.ID.String())
	if err != nil {
		return ContractDetailResponse{}, mapRepositoryError(err)
	}

	totals, err := s.payslipRepo.AdjustmentTotalsByContract(ctx, contract.ID.String())
	if err != nil {
		return ContractDetailResponse{}, mapRepositoryError(err)
	}
	totalsByPayslip := make(map[string]payslip.AdjustmentTotals, len(totals))
	for _, t := range totals {
		totalsByPayslip[t.PayslipID] = t
	}

	detail := ContractDetailResponse{
		ContractResponse: mapToResponse(*contract),
		Payslips:         make([]payslip.PayslipResponse, len(payslips)),
	}
	for i, p := range payslips {
		t := totalsByPayslip[p.ID.String()]
		detail.Payslips[i] = payslip.NewResponse(p, t.Additions, t.Deductions)
	}
	return detail, nil
}

func (s *service) Update(ctx context.Context, companyID, id string, req UpdateContractRequest) (ContractResponse, error) {
	if req.YearlySalary == nil && req.WithdrawAllowedPercentage == nil {
		return ContractResponse{}, contracterrors.ErrNothingToUpdate
	}

	contract, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return ContractResponse{}, mapRepositoryError(err)
	}

	if req.YearlySalary != nil {
		yearly, err := decimal.NewFromString(*req.YearlySalary)
		if err != nil || yearly.IsNegative() {
			return ContractResponse{}, contracterrors.ErrInvalidSalary
		}
		contract.YearlySalary = yearly.Round(2)
	}
	if req.WithdrawAllowedPercentage != nil {
		if *req.WithdrawAllowedPercentage < 0 || *req.WithdrawAllowedPercentage > 100 {
			return ContractResponse{}, contracterrors.ErrInvalidPercentage
		}
		contract.WithdrawAllowedPercentage = *req.WithdrawAllowedPercentage
	}

	// Existing payslips keep their frozen base salary; only future budget
	// checks see the new percentage.
	if err := s.repo.Update(ctx, contract); err != nil {
		return ContractResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("contract updated",
		zap.String("contract_id", contract.ID.String()),
		zap.Int("withdraw_pct", contract.WithdrawAllowedPercentage),
	)

	return mapToResponse(*contract), nil
}

func (s *service) writeCreatedEvent(ctx context.Context, tx *gorm.DB, contract *SalaryContract, year int) error {
	payload, err := json.Marshal(events.ContractCreatedEvent{
		EventType:    "contract.created",
		RequestID:    contextutil.GetRequestID(ctx),
		ContractID:   contract.ID.String(),
		EmployeeID:   contract.EmployeeID.String(),
		CompanyID:    contract.CompanyID.String(),
		Year:         year,
		YearlySalary: contract.YearlySalary.StringFixed(2),
		OccurredAt:   s.clock.Now(),
	})
	if err != nil {
		return err
	}

	return s.outboxRepo.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "contract",
		AggregateID:   contract.ID.String(),
		EventType:     "contract.created",
		Topic:         events.ContractCreatedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func mapToResponse(c SalaryContract) ContractResponse {
	createdAt := c.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	return ContractResponse{
		ID:                        c.ID.String(),
		EmployeeID:                c.EmployeeID.String(),
		CompanyID:                 c.CompanyID.String(),
		YearlySalary:              c.YearlySalary.StringFixed(2),
		MonthlySalary:             c.YearlySalary.Div(decimal.NewFromInt(monthsPerYear)).Round(2).StringFixed(2),
		WithdrawAllowedPercentage: c.WithdrawAllowedPercentage,
		CreatedAt:                 createdAt.Format(time.RFC3339),
	}
}
