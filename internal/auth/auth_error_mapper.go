package auth

import (
	"errors"
	"strings"

	autherrors "go-payroll/internal/auth/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return autherrors.ErrUserNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "uq_user_email":
			return autherrors.ErrEmailAlreadyRegistered
		case "uq_employee_phone":
			return autherrors.ErrPhoneAlreadyRegistered
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") {
		if strings.Contains(errMsg, "uq_user_email") {
			return autherrors.ErrEmailAlreadyRegistered
		}
		if strings.Contains(errMsg, "uq_employee_phone") {
			return autherrors.ErrPhoneAlreadyRegistered
		}
	}

	return err
}
