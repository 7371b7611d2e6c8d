package withdrawal_test

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/withdrawal"
	withdrawalerrors "go-payroll/internal/withdrawal/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeWithdrawalRepo struct {
	lockBudgetFn func(ctx context.Context, employeeID string, month, year int) (*withdrawal.PayslipBudget, error)
	findBudgetFn func(ctx context.Context, employeeID string, month, year int) (*withdrawal.PayslipBudget, error)
	sumFn        func(ctx context.Context, payslipID string) (decimal.Decimal, error)
	createFn     func(ctx context.Context, w *withdrawal.Withdrawal) error
	listEmpFn    func(ctx context.Context, employeeID string) ([]withdrawal.ListRow, error)
	listCoFn     func(ctx context.Context, companyID string) ([]withdrawal.ListRow, error)
}

func (f *fakeWithdrawalRepo) WithTx(tx *gorm.DB) withdrawal.Repository { return f }

func (f *fakeWithdrawalRepo) LockBudgetByEmployee(ctx context.Context, employeeID string, month, year int) (*withdrawal.PayslipBudget, error) {
	if f.lockBudgetFn != nil {
		return f.lockBudgetFn(ctx, employeeID, month, year)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeWithdrawalRepo) FindBudgetByEmployee(ctx context.Context, employeeID string, month, year int) (*withdrawal.PayslipBudget, error) {
	if f.findBudgetFn != nil {
		return f.findBudgetFn(ctx, employeeID, month, year)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeWithdrawalRepo) SumByPayslip(ctx context.Context, payslipID string) (decimal.Decimal, error) {
	if f.sumFn != nil {
		return f.sumFn(ctx, payslipID)
	}
	return decimal.Zero, nil
}

func (f *fakeWithdrawalRepo) Create(ctx context.Context, w *withdrawal.Withdrawal) error {
	if f.createFn != nil {
		return f.createFn(ctx, w)
	}
	return nil
}

func (f *fakeWithdrawalRepo) FindAllByEmployee(ctx context.Context, employeeID string) ([]withdrawal.ListRow, error) {
	if f.listEmpFn != nil {
		return f.listEmpFn(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakeWithdrawalRepo) FindAllByCompany(ctx context.Context, companyID string) ([]withdrawal.ListRow, error) {
	if f.listCoFn != nil {
		return f.listCoFn(ctx, companyID)
	}
	return nil, nil
}

type fakeOutboxRepo struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutboxRepo) WithTx(tx *gorm.DB) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepo) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}

func (f *fakeOutboxRepo) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepo) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepo) MarkFailed(ctx context.Context, id string, reason string) error { return nil }

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

// budgetState emulates the locked payslip row: base 1000.00 at 50%
// gives a 500.00 monthly budget.
type budgetState struct {
	budget    withdrawal.PayslipBudget
	withdrawn decimal.Decimal
	records   []withdrawal.Withdrawal
}

func newBudgetState(base string, pct int) *budgetState {
	return &budgetState{
		budget: withdrawal.PayslipBudget{
			PayslipID:                 uuid.New().String(),
			ContractID:                uuid.New().String(),
			EmployeeID:                uuid.New().String(),
			CompanyID:                 uuid.New().String(),
			Month:                     5,
			Year:                      2026,
			BaseMonthlySalary:         decimal.RequireFromString(base),
			WithdrawAllowedPercentage: pct,
		},
		withdrawn: decimal.Zero,
	}
}

func (s *budgetState) repo() *fakeWithdrawalRepo {
	return &fakeWithdrawalRepo{
		lockBudgetFn: func(ctx context.Context, employeeID string, month, year int) (*withdrawal.PayslipBudget, error) {
			b := s.budget
			return &b, nil
		},
		findBudgetFn: func(ctx context.Context, employeeID string, month, year int) (*withdrawal.PayslipBudget, error) {
			b := s.budget
			return &b, nil
		},
		sumFn: func(ctx context.Context, payslipID string) (decimal.Decimal, error) {
			return s.withdrawn, nil
		},
		createFn: func(ctx context.Context, w *withdrawal.Withdrawal) error {
			s.withdrawn = s.withdrawn.Add(w.Amount)
			s.records = append(s.records, *w)
			return nil
		},
	}
}

func TestWithdrawalService_Request_BudgetScenario(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	clk := fixedClock{t: time.Date(2026, 5, 14, 10, 0, 0, 0, time.UTC)}

	// Yearly 12000.00 at 50% withdraw: monthly base 1000.00, budget 500.00.
	state := newBudgetState("1000.00", 50)
	outbox := &fakeOutboxRepo{}
	svc := withdrawal.NewService(db, state.repo(), outbox, clk)

	// 300 admitted, 200.00 left.
	resp, err := svc.Request(ctx, state.budget.EmployeeID, withdrawal.RequestWithdrawalRequest{Amount: "300"})
	require.NoError(t, err)
	assert.Equal(t, "300.00", resp.Amount)
	assert.Equal(t, "2026-05-14", resp.Date)

	summary, err := svc.Summary(ctx, state.budget.EmployeeID)
	require.NoError(t, err)
	assert.Equal(t, "500.00", summary.Budget)
	assert.Equal(t, "300.00", summary.Withdrawn)
	assert.Equal(t, "200.00", summary.Remaining)
	assert.Equal(t, "60.00", summary.WithdrawnPercentage)
	assert.Equal(t, "40.00", summary.RemainingPercentage)

	// 250 rejected; the error payload reports the 200.00 headroom and
	// nothing is persisted.
	_, err = svc.Request(ctx, state.budget.EmployeeID, withdrawal.RequestWithdrawalRequest{Amount: "250"})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeBudgetExceeded, appErr.Code)
	details, ok := appErr.Details.(withdrawal.BudgetDetails)
	require.True(t, ok)
	assert.Equal(t, "500.00", details.Allowed)
	assert.Equal(t, "300.00", details.Withdrawn)
	assert.Equal(t, "200.00", details.Remaining)
	assert.Len(t, state.records, 1)

	// Exactly the remaining 200 is admitted; budget is now exhausted.
	_, err = svc.Request(ctx, state.budget.EmployeeID, withdrawal.RequestWithdrawalRequest{Amount: "200"})
	require.NoError(t, err)

	summary, err = svc.Summary(ctx, state.budget.EmployeeID)
	require.NoError(t, err)
	assert.Equal(t, "0.00", summary.Remaining)

	// Even 0.01 is rejected once the budget is spent.
	_, err = svc.Request(ctx, state.budget.EmployeeID, withdrawal.RequestWithdrawalRequest{Amount: "0.01"})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeBudgetExceeded, appErr.Code)
}

func TestWithdrawalService_Request_LivePercentage(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	clk := fixedClock{t: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)}

	state := newBudgetState("1000.00", 10)
	svc := withdrawal.NewService(db, state.repo(), &fakeOutboxRepo{}, clk)

	// 10% of 1000.00 leaves no room for 150.
	_, err := svc.Request(ctx, state.budget.EmployeeID, withdrawal.RequestWithdrawalRequest{Amount: "150"})
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeBudgetExceeded, appErr.Code)

	// Raising the contract percentage takes effect on the next request
	// without touching the payslip.
	state.budget.WithdrawAllowedPercentage = 20
	_, err = svc.Request(ctx, state.budget.EmployeeID, withdrawal.RequestWithdrawalRequest{Amount: "150"})
	assert.NoError(t, err)
}

func TestWithdrawalService_Summary_ZeroBudget(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	clk := fixedClock{t: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)}

	// A 0% contract yields a 0.00 budget; both percentage figures read
	// zero instead of a fully-remaining 100.
	state := newBudgetState("1000.00", 0)
	svc := withdrawal.NewService(db, state.repo(), &fakeOutboxRepo{}, clk)

	summary, err := svc.Summary(ctx, state.budget.EmployeeID)
	require.NoError(t, err)
	assert.Equal(t, "0.00", summary.Budget)
	assert.Equal(t, "0.00", summary.Withdrawn)
	assert.Equal(t, "0.00", summary.Remaining)
	assert.Equal(t, "0.00", summary.WithdrawnPercentage)
	assert.Equal(t, "0.00", summary.RemainingPercentage)
}

func TestWithdrawalService_Request_ConcurrentAdmissionsNeverOverdraw(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	clk := fixedClock{t: time.Date(2026, 5, 14, 10, 0, 0, 0, time.UTC)}

	// Budget 500.00 (base 1000.00 at 50%), sixteen simultaneous requests
	// for 100 each: exactly five may land.
	state := newBudgetState("1000.00", 50)

	// The mutex stands in for the payslip row lock: taken where the
	// repository would block on the locked row, released by the caller
	// once its transaction settles.
	var mu sync.Mutex
	repo := &fakeWithdrawalRepo{
		lockBudgetFn: func(ctx context.Context, employeeID string, month, year int) (*withdrawal.PayslipBudget, error) {
			mu.Lock()
			b := state.budget
			return &b, nil
		},
		sumFn: func(ctx context.Context, payslipID string) (decimal.Decimal, error) {
			return state.withdrawn, nil
		},
		createFn: func(ctx context.Context, w *withdrawal.Withdrawal) error {
			state.withdrawn = state.withdrawn.Add(w.Amount)
			state.records = append(state.records, *w)
			return nil
		},
	}
	svc := withdrawal.NewService(db, repo, &fakeOutboxRepo{}, clk)

	const requests = 16
	var admitted, rejected int32
	var wg sync.WaitGroup
	wg.Add(requests)
	for i := 0; i < requests; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.Request(ctx, state.budget.EmployeeID, withdrawal.RequestWithdrawalRequest{Amount: "100"})
			mu.Unlock()

			if err == nil {
				atomic.AddInt32(&admitted, 1)
				return
			}
			var appErr *apperror.AppError
			if assert.ErrorAs(t, err, &appErr) {
				assert.Equal(t, apperror.CodeBudgetExceeded, appErr.Code)
			}
			atomic.AddInt32(&rejected, 1)
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 5, admitted)
	assert.EqualValues(t, 11, rejected)
	assert.Equal(t, "500.00", state.withdrawn.StringFixed(2))
	assert.Len(t, state.records, 5)
}

func TestWithdrawalService_Request_NoPayslip(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	clk := fixedClock{t: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)}

	created := 0
	repo := &fakeWithdrawalRepo{
		createFn: func(ctx context.Context, w *withdrawal.Withdrawal) error {
			created++
			return nil
		},
	}
	svc := withdrawal.NewService(db, repo, &fakeOutboxRepo{}, clk)

	_, err := svc.Request(ctx, uuid.New().String(), withdrawal.RequestWithdrawalRequest{Amount: "10"})
	assert.ErrorIs(t, err, withdrawalerrors.ErrNoActivePayslip)
	assert.Zero(t, created)
}

func TestWithdrawalService_Request_InvalidAmount(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	svc := withdrawal.NewService(db, &fakeWithdrawalRepo{}, &fakeOutboxRepo{}, fixedClock{t: time.Now()})

	// 0.004 parses as positive but rounds to 0.00, so it must be
	// rejected here rather than reaching the amount > 0 column check.
	for _, amount := range []string{"0", "-5", "abc", "", "0.004"} {
		_, err := svc.Request(ctx, uuid.New().String(), withdrawal.RequestWithdrawalRequest{Amount: amount})
		assert.ErrorIs(t, err, withdrawalerrors.ErrInvalidAmount, "amount %q", amount)
	}
}

func TestWithdrawalService_Request_WritesOutboxEvent(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	clk := fixedClock{t: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)}

	state := newBudgetState("1000.00", 50)
	outbox := &fakeOutboxRepo{}
	svc := withdrawal.NewService(db, state.repo(), outbox, clk)

	resp, err := svc.Request(ctx, state.budget.EmployeeID, withdrawal.RequestWithdrawalRequest{Amount: "125.50"})
	require.NoError(t, err)

	require.Len(t, outbox.created, 1)
	event := outbox.created[0]
	assert.Equal(t, events.WithdrawalCreatedTopic, event.Topic)
	assert.Equal(t, "withdrawal.created", event.EventType)
	assert.Equal(t, resp.ID, event.AggregateID)

	var payload events.WithdrawalCreatedEvent
	require.NoError(t, json.Unmarshal(event.Payload, &payload))
	assert.Equal(t, "125.50", payload.Amount)
	assert.Equal(t, state.budget.EmployeeID, payload.EmployeeID)
}

func TestWithdrawalService_List_ScopedByRole(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	employeeID := uuid.New().String()
	companyID := uuid.New().String()
	row := withdrawal.ListRow{
		ID:         uuid.New().String(),
		PayslipID:  uuid.New().String(),
		EmployeeID: employeeID,
		Amount:     decimal.RequireFromString("42.00"),
		Date:       time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC),
		Month:      5,
		Year:       2026,
	}

	repo := &fakeWithdrawalRepo{
		listEmpFn: func(ctx context.Context, id string) ([]withdrawal.ListRow, error) {
			assert.Equal(t, employeeID, id)
			return []withdrawal.ListRow{row}, nil
		},
		listCoFn: func(ctx context.Context, id string) ([]withdrawal.ListRow, error) {
			assert.Equal(t, companyID, id)
			return []withdrawal.ListRow{row}, nil
		},
	}
	svc := withdrawal.NewService(db, repo, &fakeOutboxRepo{}, fixedClock{t: time.Now()})

	mine, err := svc.ListByEmployee(ctx, employeeID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "42.00", mine[0].Amount)
	assert.Equal(t, "2026-05-02", mine[0].Date)

	all, err := svc.ListByCompany(ctx, companyID)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, employeeID, all[0].EmployeeID)
}
