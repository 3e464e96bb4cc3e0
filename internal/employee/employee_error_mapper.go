package employee

import (
	"errors"
	"net/http"
	"strings"

	employeeerrors "github.com/Nirjala-pagare/Emp-management/internal/employee/errors"
	"github.com/Nirjala-pagare/Emp-management/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// mapRepositoryError translates store-level failures into the employee error
// taxonomy. The unique index on email turns the create/update race into a
// 23505 here instead of a duplicate row.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_employee_email" {
			return employeeerrors.ErrDuplicateEmail
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_employee_email") {
		return employeeerrors.ErrDuplicateEmail
	}

	// Anything else is a store fault; wrap so no driver detail reaches the client.
	return apperror.Wrap(err, apperror.CodeInternalError, "Employee store operation failed", http.StatusInternalServerError)
}
