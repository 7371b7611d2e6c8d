package withdrawal

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/shared/clock"
	"go-payroll/internal/shared/contextutil"
	withdrawalerrors "go-payroll/internal/withdrawal/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

var oneHundred = decimal.NewFromInt(100)

type Service interface {
	Request(ctx context.Context, employeeID string, req RequestWithdrawalRequest) (WithdrawalResponse, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]WithdrawalResponse, error)
	ListByCompany(ctx context.Context, companyID string) ([]WithdrawalResponse, error)
	Summary(ctx context.Context, employeeID string) (SummaryResponse, error)
}

type service struct {
	db         *gorm.DB
	repo       Repository
	outboxRepo kafka.OutboxRepository
	clock      clock.Clock
	group      singleflight.Group
	logger     *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	clk clock.Clock,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("withdrawal.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("withdrawal.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		outboxRepo: outboxRepo,
		clock:      clk,
		logger:     l,
	}
}

// Request admits or rejects a withdrawal against the current month's
// budget. The payslip row lock serializes concurrent requests for the
// same employee; the check and the insert are one transaction, so a
// rejection writes nothing.
func (s *service) Request(ctx context.Context, employeeID string, req RequestWithdrawalRequest) (WithdrawalResponse, error) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return WithdrawalResponse{}, withdrawalerrors.ErrInvalidAmount
	}
	// Round before the positivity check so sub-cent amounts like 0.004
	// are rejected here instead of failing the amount > 0 column check.
	amount = amount.Round(2)
	if !amount.IsPositive() {
		return WithdrawalResponse{}, withdrawalerrors.ErrInvalidAmount
	}

	now := s.clock.Now()
	month, year := int(now.Month()), now.Year()

	var created *Withdrawal
	var budget *PayslipBudget

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		budget, err = qtx.LockBudgetByEmployee(ctx, employeeID, month, year)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return withdrawalerrors.ErrNoActivePayslip
			}
			return err
		}

		withdrawn, err := qtx.SumByPayslip(ctx, budget.PayslipID)
		if err != nil {
			return err
		}

		allowed := budgetFor(budget.BaseMonthlySalary, budget.WithdrawAllowedPercentage)
		if withdrawn.Add(amount).GreaterThan(allowed) {
			return withdrawalerrors.ErrBudgetExceeded.WithDetails(BudgetDetails{
				Allowed:   allowed.StringFixed(2),
				Withdrawn: withdrawn.StringFixed(2),
				Remaining: allowed.Sub(withdrawn).StringFixed(2),
			})
		}

		created = &Withdrawal{
			ID:        uuid.New(),
			PayslipID: uuid.MustParse(budget.PayslipID),
			Amount:    amount,
			Date:      time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		}
		if err := qtx.Create(ctx, created); err != nil {
			return err
		}

		return s.writeCreatedEvent(ctx, tx, created, budget)
	})
	if err != nil {
		return WithdrawalResponse{}, err
	}

	contextutil.GetLogger(ctx, s.logger).Info("withdrawal admitted",
		zap.String("withdrawal_id", created.ID.String()),
		zap.String("employee_id", employeeID),
		zap.String("amount", amount.StringFixed(2)),
		zap.Int("month", month),
		zap.Int("year", year),
	)

	return WithdrawalResponse{
		ID:         created.ID.String(),
		PayslipID:  created.PayslipID.String(),
		EmployeeID: budget.EmployeeID,
		Amount:     created.Amount.StringFixed(2),
		Date:       created.Date.Format(time.DateOnly),
		Month:      budget.Month,
		Year:       budget.Year,
	}, nil
}

func (s *service) ListByEmployee(ctx context.Context, employeeID string) ([]WithdrawalResponse, error) {
	rows, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapListRows(rows), nil
}

func (s *service) ListByCompany(ctx context.Context, companyID string) ([]WithdrawalResponse, error) {
	rows, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return mapListRows(rows), nil
}

// Summary collapses concurrent reads per employee through singleflight;
// the figures are computed fresh, never cached.
func (s *service) Summary(ctx context.Context, employeeID string) (SummaryResponse, error) {
	v, err, _ := s.group.Do(employeeID, func() (interface{}, error) {
		now := s.clock.Now()
		month, year := int(now.Month()), now.Year()

		budget, err := s.repo.FindBudgetByEmployee(ctx, employeeID, month, year)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return SummaryResponse{}, withdrawalerrors.ErrNoActivePayslip
			}
			return SummaryResponse{}, err
		}

		withdrawn, err := s.repo.SumByPayslip(ctx, budget.PayslipID)
		if err != nil {
			return SummaryResponse{}, err
		}

		allowed := budgetFor(budget.BaseMonthlySalary, budget.WithdrawAllowedPercentage)
		remaining := allowed.Sub(withdrawn)

		// A zero budget reports both percentages as zero rather than a
		// fully-remaining 100.
		withdrawnPct, remainingPct := decimal.Zero, decimal.Zero
		if allowed.IsPositive() {
			withdrawnPct = withdrawn.Div(allowed).Mul(oneHundred).Round(2)
			remainingPct = oneHundred.Sub(withdrawnPct)
		}

		return SummaryResponse{
			PayslipID:                 budget.PayslipID,
			Month:                     budget.Month,
			Year:                      budget.Year,
			BaseMonthlySalary:         budget.BaseMonthlySalary.StringFixed(2),
			WithdrawAllowedPercentage: budget.WithdrawAllowedPercentage,
			Budget:                    allowed.StringFixed(2),
			Withdrawn:                 withdrawn.StringFixed(2),
			Remaining:                 remaining.StringFixed(2),
			WithdrawnPercentage:       withdrawnPct.StringFixed(2),
			RemainingPercentage:       remainingPct.StringFixed(2),
		}, nil
	})
	if err != nil {
		return SummaryResponse{}, err
	}
	return v.(SummaryResponse), nil
}

func (s *service) writeCreatedEvent(ctx context.Context, tx *gorm.DB, w *Withdrawal, budget *PayslipBudget) error {
	payload, err := json.Marshal(events.WithdrawalCreatedEvent{
		EventType:    "withdrawal.created",
		RequestID:    contextutil.GetRequestID(ctx),
		WithdrawalID: w.ID.String(),
		PayslipID:    w.PayslipID.String(),
		EmployeeID:   budget.EmployeeID,
		Amount:       w.Amount.StringFixed(2),
		OccurredAt:   s.clock.Now(),
	})
	if err != nil {
		return err
	}

	return s.outboxRepo.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "withdrawal",
		AggregateID:   w.ID.String(),
		EventType:     "withdrawal.created",
		Topic:         events.WithdrawalCreatedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func budgetFor(base decimal.Decimal, pct int) decimal.Decimal {
	return base.Mul(decimal.NewFromInt(int64(pct))).Div(oneHundred).Round(2)
}

func mapListRows(rows []ListRow) []WithdrawalResponse {
	resp := make([]WithdrawalResponse, len(rows))
	for i, row := range rows {
		resp[i] = WithdrawalResponse{
			ID:         row.ID,
			PayslipID:  row.PayslipID,
			EmployeeID: row.EmployeeID,
			Amount:     row.Amount.StringFixed(2),
			Date:       row.Date.Format(time.DateOnly),
			Month:      row.Month,
			Year:       row.Year,
		}
	}
	return resp
}
