package employee_test

import (
	"errors"
	"testing"

	"github.com/Nirjala-pagare/Emp-management/internal/employee"
	"github.com/Nirjala-pagare/Emp-management/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
)

func TestValidator_ValidateEmployee(t *testing.T) {
	v := employee.NewValidator()

	t.Run("valid payload accepted", func(t *testing.T) {
		req := validCreateRequest()
		assert.NoError(t, v.ValidateEmployee(&req))
	})

	t.Run("optional fields may be absent", func(t *testing.T) {
		req := validCreateRequest()
		req.HireDate = ""
		req.Status = ""
		req.Address = nil
		assert.NoError(t, v.ValidateEmployee(&req))
	})

	cases := []struct {
		name    string
		mutate  func(*employee.CreateEmployeeRequest)
		field   string
		message string
	}{
		{
			name:   "missing first name",
			mutate: func(r *employee.CreateEmployeeRequest) { r.FirstName = "" },
			field:  "firstName", message: "First Name is required",
		},
		{
			name:   "short first name",
			mutate: func(r *employee.CreateEmployeeRequest) { r.FirstName = "J" },
			field:  "firstName", message: "First Name must be at least 2 characters",
		},
		{
			name:   "whitespace-only last name",
			mutate: func(r *employee.CreateEmployeeRequest) { r.LastName = "   " },
			field:  "lastName", message: "Last Name is required",
		},
		{
			name:   "bad email",
			mutate: func(r *employee.CreateEmployeeRequest) { r.Email = "not-an-email" },
			field:  "email", message: "Please provide a valid email",
		},
		{
			name:   "short phone",
			mutate: func(r *employee.CreateEmployeeRequest) { r.Phone = "12345" },
			field:  "phone", message: "Please provide a valid phone number",
		},
		{
			name:   "phone with letters",
			mutate: func(r *employee.CreateEmployeeRequest) { r.Phone = "555-CALL-NOW" },
			field:  "phone", message: "Please provide a valid phone number",
		},
		{
			name:   "missing department",
			mutate: func(r *employee.CreateEmployeeRequest) { r.Department = "" },
			field:  "department", message: "Department is required",
		},
		{
			name:   "missing position",
			mutate: func(r *employee.CreateEmployeeRequest) { r.Position = "" },
			field:  "position", message: "Position is required",
		},
		{
			name:   "missing salary",
			mutate: func(r *employee.CreateEmployeeRequest) { r.Salary = nil },
			field:  "salary", message: "Salary is required",
		},
		{
			name:   "negative salary",
			mutate: func(r *employee.CreateEmployeeRequest) { r.Salary = floatPtr(-5) },
			field:  "salary", message: "Salary cannot be negative",
		},
		{
			name:   "malformed hire date",
			mutate: func(r *employee.CreateEmployeeRequest) { r.HireDate = "15/03/2025" },
			field:  "hireDate", message: "Please provide a valid date in ISO format",
		},
		{
			name:   "unknown status",
			mutate: func(r *employee.CreateEmployeeRequest) { r.Status = "fired" },
			field:  "status",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validCreateRequest()
			tc.mutate(&req)

			err := v.ValidateEmployee(&req)

			var vErr *apperror.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			found := false
			for _, violation := range vErr.Violations {
				if violation.Field == tc.field {
					found = true
					if tc.message != "" {
						assert.Equal(t, tc.message, violation.Message)
					}
				}
			}
			assert.True(t, found, "no violation for field %s in %v", tc.field, vErr.Violations)
		})
	}

	t.Run("zero salary is valid", func(t *testing.T) {
		req := validCreateRequest()
		req.Salary = floatPtr(0)
		assert.NoError(t, v.ValidateEmployee(&req))
	})

	t.Run("all violations reported together", func(t *testing.T) {
		req := employee.CreateEmployeeRequest{}

		err := v.ValidateEmployee(&req)

		var vErr *apperror.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected validation error, got %v", err)
		}
		// Every required field missing: one violation each.
		assert.GreaterOrEqual(t, len(vErr.Violations), 7)
	})
}
