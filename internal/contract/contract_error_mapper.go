package contract

import (
	"errors"
	"strings"

	contracterrors "go-payroll/internal/contract/errors"
	paysliperrors "go-payroll/internal/payslip/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return contracterrors.ErrContractNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "uq_contract_employee":
			return contracterrors.ErrContractAlreadyExists
		case "uq_payslip_contract_month_year":
			return paysliperrors.ErrPayslipAlreadyExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") {
		if strings.Contains(errMsg, "uq_contract_employee") {
			return contracterrors.ErrContractAlreadyExists
		}
		if strings.Contains(errMsg, "uq_payslip_contract_month_year") {
			return paysliperrors.ErrPayslipAlreadyExists
		}
	}

	return err
}
