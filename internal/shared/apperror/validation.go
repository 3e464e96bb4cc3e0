package apperror

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FieldViolation is a single failed rule, addressed by the JSON field name.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every violation found in one request so the caller
// can report all problems in a single response.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Message
	}
	return strings.Join(msgs, "; ")
}

func NewValidationError(violations []FieldViolation) *ValidationError {
	return &ValidationError{Violations: violations}
}

func formatFieldName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	caser := cases.Title(language.English)
	return caser.String(splitCamel(s))
}

func splitCamel(s string) string {
	var b strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// MapValidationErrors turns validator output into field violations, keeping
// the declaration order of the failed rules. Field names come from the json
// tags registered in Init().
func MapValidationErrors(err error) []FieldViolation {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldViolation{{Field: "", Message: "Invalid input"}}
	}

	violations := make([]FieldViolation, 0, len(errs))
	for _, e := range errs {
		violations = append(violations, FieldViolation{
			Field:   e.Field(),
			Message: violationMessage(e),
		})
	}
	return violations
}

func violationMessage(e validator.FieldError) string {
	name := formatFieldName(e.Field())
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", name)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", name, e.Param())
	case "email":
		return "Please provide a valid email"
	case "phone":
		return "Please provide a valid phone number"
	case "gte":
		return fmt.Sprintf("%s cannot be negative", name)
	case "datetime":
		return "Please provide a valid date in ISO format"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", name, e.Param())
	default:
		return fmt.Sprintf("%s is invalid", name)
	}
}
