package company

import (
	"errors"
	"strings"

	companyerrors "go-payroll/internal/company/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return companyerrors.ErrCompanyNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "uq_company_owner":
				return companyerrors.ErrCompanyAlreadyExists
			case "uq_company_name":
				return companyerrors.ErrCompanyNameTaken
			}
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_company_owner") {
		return companyerrors.ErrCompanyAlreadyExists
	}
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_company_name") {
		return companyerrors.ErrCompanyNameTaken
	}

	return err
}
