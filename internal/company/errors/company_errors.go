package companyerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrCompanyNotFound = apperror.New(
		apperror.CodeNotFound,
		"Company not found",
		http.StatusNotFound,
	)
	ErrCompanyAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"This account already owns a company",
		http.StatusConflict,
	)
	ErrCompanyNameTaken = apperror.New(
		apperror.CodeConflict,
		"A company with this name already exists",
		http.StatusConflict,
	)
	ErrCompanyDeactivated = apperror.New(
		apperror.CodeForbidden,
		"Company is deactivated",
		http.StatusForbidden,
	)
	ErrCompanyNotDeleted = apperror.New(
		apperror.CodeInvalidInput,
		"Company is not deleted",
		http.StatusBadRequest,
	)
)
