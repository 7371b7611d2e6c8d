package employeeerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrPhoneAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"An employee with this phone number already exists",
		http.StatusConflict,
	)
	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employment request not found",
		http.StatusNotFound,
	)
	ErrRequestAlreadyProcessed = apperror.New(
		apperror.CodeConflict,
		"Employment request has already been processed",
		http.StatusConflict,
	)
	ErrPendingRequestExists = apperror.New(
		apperror.CodeConflict,
		"A pending employment request already exists for this employee",
		http.StatusConflict,
	)
	ErrAlreadyEmployed = apperror.New(
		apperror.CodeConflict,
		"Employee is already attached to a company",
		http.StatusConflict,
	)
)
