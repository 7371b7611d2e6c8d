package contracterrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrContractNotFound = apperror.New(
		apperror.CodeNotFound,
		"Contract not found",
		http.StatusNotFound,
	)
	ErrContractAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee already has a salary contract",
		http.StatusConflict,
	)
	ErrEmployeeNotInCompany = apperror.New(
		apperror.CodeNotFound,
		"Employee does not belong to this company",
		http.StatusNotFound,
	)
	ErrInvalidSalary = apperror.New(
		apperror.CodeInvalidInput,
		"Yearly salary must be a non-negative decimal",
		http.StatusBadRequest,
	)
	ErrInvalidPercentage = apperror.New(
		apperror.CodeInvalidInput,
		"Withdraw allowed percentage must be between 0 and 100",
		http.StatusBadRequest,
	)
	ErrNothingToUpdate = apperror.New(
		apperror.CodeInvalidInput,
		"At least one field must be provided",
		http.StatusBadRequest,
	)
)
