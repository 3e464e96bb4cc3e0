package employeeerrors

import (
	"net/http"

	"github.com/Nirjala-pagare/Emp-management/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrDuplicateEmail = apperror.New(
		apperror.CodeConflict,
		"Employee with this email already exists",
		http.StatusConflict,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrInvalidActor = apperror.New(
		apperror.CodeUnauthorized,
		"Acting user identity is missing or invalid",
		http.StatusUnauthorized,
	)
)
