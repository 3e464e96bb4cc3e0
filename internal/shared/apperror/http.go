package apperror

import (
	"errors"
	"net/http"
)

// HTTPError is the wire-level view of a failure: status plus a
// machine-readable code, message and optional details payload.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// ToHTTP maps any error to its HTTP representation. Validation errors expose
// the full violation list; unknown errors collapse to a generic 500 so no
// internal detail leaks to the client.
func ToHTTP(err error) HTTPError {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return HTTPError{
			Status:  http.StatusBadRequest,
			Code:    CodeInvalidInput,
			Message: "Validation failed",
			Details: vErr.Violations,
		}
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return HTTPError{
			Status:  appErr.HTTPStatus,
			Code:    appErr.Code,
			Message: appErr.Message,
		}
	}

	return HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternalError,
		Message: "An unexpected error occurred",
	}
}
