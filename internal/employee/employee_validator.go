package employee

import (
	"regexp"
	"strings"

	"github.com/Nirjala-pagare/Emp-management/internal/shared/apperror"

	"github.com/go-playground/validator/v10"
)

// Permissive phone pattern: digits, spaces, +, -, parentheses, at least 10
// significant characters.
var phoneRegexp = regexp.MustCompile(`^[+]?[0-9\s\-()]{10,}$`)

// Validator applies the employee field rules. It is pure: input in,
// normalized input or the full violation list out, no store access.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()
	apperror.RegisterTagNameFunc(v)
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRegexp.MatchString(fl.Field().String())
	})
	return &Validator{validate: v}
}

// ValidateEmployee trims the payload in place and checks every rule,
// collecting all violations rather than stopping at the first.
func (v *Validator) ValidateEmployee(req *CreateEmployeeRequest) error {
	req.Normalize()
	if err := v.validate.Struct(req); err != nil {
		return apperror.NewValidationError(apperror.MapValidationErrors(err))
	}
	return nil
}

func (r *CreateEmployeeRequest) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Department = strings.TrimSpace(r.Department)
	r.Position = strings.TrimSpace(r.Position)
	r.HireDate = strings.TrimSpace(r.HireDate)
	r.Status = strings.TrimSpace(r.Status)
	if r.Address != nil {
		r.Address.Street = strings.TrimSpace(r.Address.Street)
		r.Address.City = strings.TrimSpace(r.Address.City)
		r.Address.State = strings.TrimSpace(r.Address.State)
		r.Address.ZipCode = strings.TrimSpace(r.Address.ZipCode)
		r.Address.Country = strings.TrimSpace(r.Address.Country)
	}
}
