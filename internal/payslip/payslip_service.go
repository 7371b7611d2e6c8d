package payslip

import (
	"context"
	"time"

	paysliperrors "go-payroll/internal/payslip/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	GetByID(ctx context.Context, companyID, payslipID string) (PayslipDetailResponse, error)
	AppendAdjustment(ctx context.Context, companyID, payslipID string, req AppendAdjustmentRequest) (AdjustmentResponse, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("payslip.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payslip.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) GetByID(ctx context.Context, companyID, payslipID string) (PayslipDetailResponse, error) {
	payslip, err := s.repo.FindByIDAndCompany(ctx, companyID, payslipID)
	if err != nil {
		return PayslipDetailResponse{}, mapRepositoryError(err)
	}

	adjustments, err := s.repo.FindAdjustmentsByPayslip(ctx, payslipID)
	if err != nil {
		return PayslipDetailResponse{}, mapRepositoryError(err)
	}

	additions, deductions := sumAdjustments(adjustments)

	detail := PayslipDetailResponse{
		PayslipResponse: NewResponse(*payslip, additions, deductions),
		Adjustments:     make([]AdjustmentResponse, len(adjustments)),
	}
	for i, a := range adjustments {
		detail.Adjustments[i] = mapAdjustmentToResponse(a)
	}

	return detail, nil
}

func (s *service) AppendAdjustment(
	ctx context.Context,
	companyID, payslipID string,
	req AppendAdjustmentRequest,
) (AdjustmentResponse, error) {
	if req.Type != AdjustmentTypeAddition && req.Type != AdjustmentTypeDeduction {
		return AdjustmentResponse{}, paysliperrors.ErrInvalidAdjustmentType
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || amount.IsNegative() {
		return AdjustmentResponse{}, paysliperrors.ErrInvalidAmount
	}

	payslip, err := s.repo.FindByIDAndCompany(ctx, companyID, payslipID)
	if err != nil {
		return AdjustmentResponse{}, mapRepositoryError(err)
	}

	adjustment := &SalaryAdjustment{
		ID:        uuid.New(),
		PayslipID: payslip.ID,
		Type:      req.Type,
		Amount:    amount.Round(2),
		Reason:    req.Reason,
	}

	if err := s.repo.CreateAdjustment(ctx, adjustment); err != nil {
		s.logger.Error("append adjustment failed", zap.Error(err))
		return AdjustmentResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("adjustment appended",
		zap.String("payslip_id", payslipID),
		zap.String("type", req.Type),
		zap.String("amount", amount.StringFixed(2)),
	)

	return mapAdjustmentToResponse(*adjustment), nil
}

// NewResponse computes the totals on read; final salary is never stored
// and may go negative when deductions outweigh the base.
func NewResponse(payslip MonthlyPayslip, additions, deductions decimal.Decimal) PayslipResponse {
	final := payslip.BaseMonthlySalary.Add(additions).Sub(deductions)
	return PayslipResponse{
		ID:                payslip.ID.String(),
		ContractID:        payslip.ContractID.String(),
		Month:             payslip.Month,
		Year:              payslip.Year,
		BaseMonthlySalary: payslip.BaseMonthlySalary.StringFixed(2),
		TotalAdditions:    additions.StringFixed(2),
		TotalDeductions:   deductions.StringFixed(2),
		FinalSalary:       final.StringFixed(2),
	}
}

func sumAdjustments(adjustments []SalaryAdjustment) (additions, deductions decimal.Decimal) {
	for _, a := range adjustments {
		switch a.Type {
		case AdjustmentTypeAddition:
			additions = additions.Add(a.Amount)
		case AdjustmentTypeDeduction:
			deductions = deductions.Add(a.Amount)
		}
	}
	return additions, deductions
}

func mapAdjustmentToResponse(a SalaryAdjustment) AdjustmentResponse {
	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	return AdjustmentResponse{
		ID:        a.ID.String(),
		PayslipID: a.PayslipID.String(),
		Type:      a.Type,
		Amount:    a.Amount.StringFixed(2),
		Reason:    a.Reason,
		CreatedAt: createdAt.Format(time.RFC3339),
	}
}
