package withdrawalerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrNoActivePayslip = apperror.New(
		apperror.CodeNotFound,
		"No payslip exists for the current month",
		http.StatusNotFound,
	)
	ErrBudgetExceeded = apperror.New(
		apperror.CodeBudgetExceeded,
		"Requested amount exceeds the remaining withdrawal budget",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"Amount must be a positive decimal",
		http.StatusBadRequest,
	)
)
