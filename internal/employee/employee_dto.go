package employee

import "time"

type AddressPayload struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
	Country string `json:"country,omitempty"`
}

// CreateEmployeeRequest is also the shape validated on update, after the
// stored record and the partial payload have been merged.
type CreateEmployeeRequest struct {
	FirstName  string          `json:"firstName" validate:"required,min=2"`
	LastName   string          `json:"lastName" validate:"required,min=2"`
	Email      string          `json:"email" validate:"required,email"`
	Phone      string          `json:"phone" validate:"required,phone"`
	Department string          `json:"department" validate:"required"`
	Position   string          `json:"position" validate:"required"`
	Salary     *float64        `json:"salary" validate:"required,gte=0"`
	HireDate   string          `json:"hireDate" validate:"omitempty,datetime=2006-01-02"`
	Status     string          `json:"status" validate:"omitempty,oneof=active on-leave terminated resigned"`
	Address    *AddressPayload `json:"address"`
}

// UpdateEmployeeRequest carries partial fields; nil means "leave unchanged".
type UpdateEmployeeRequest struct {
	FirstName  *string         `json:"firstName"`
	LastName   *string         `json:"lastName"`
	Email      *string         `json:"email"`
	Phone      *string         `json:"phone"`
	Department *string         `json:"department"`
	Position   *string         `json:"position"`
	Salary     *float64        `json:"salary"`
	HireDate   *string         `json:"hireDate"`
	Status     *string         `json:"status"`
	Address    *AddressPayload `json:"address"`
}

type ListEmployeesQuery struct {
	Page       int
	Limit      int
	Department string
	Status     string
	Search     string
}

type EmployeeResponse struct {
	ID         string          `json:"id"`
	FirstName  string          `json:"firstName"`
	LastName   string          `json:"lastName"`
	Email      string          `json:"email"`
	Phone      string          `json:"phone"`
	Department string          `json:"department"`
	Position   string          `json:"position"`
	Salary     float64         `json:"salary"`
	HireDate   string          `json:"hireDate,omitempty"`
	Status     string          `json:"status"`
	Address    *AddressPayload `json:"address,omitempty"`
	CreatedBy  string          `json:"createdBy,omitempty"`
	UpdatedBy  string          `json:"updatedBy,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

type ListEmployeesResponse struct {
	Employees      []EmployeeResponse `json:"employees"`
	TotalPages     int                `json:"totalPages"`
	CurrentPage    int                `json:"currentPage"`
	TotalEmployees int64              `json:"totalEmployees"`
}

type DepartmentStat struct {
	Department string `json:"department"`
	Count      int64  `json:"count"`
}

type StatusStat struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type RecentHireResponse struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Position   string `json:"position"`
	Department string `json:"department"`
	HireDate   string `json:"hireDate,omitempty"`
}

type StatsResponse struct {
	TotalEmployees  int64                `json:"totalEmployees"`
	DepartmentStats []DepartmentStat     `json:"departmentStats"`
	StatusStats     []StatusStat         `json:"statusStats"`
	RecentHires     []RecentHireResponse `json:"recentHires"`
}
