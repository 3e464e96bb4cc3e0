package employee

import (
	"time"

	"github.com/google/uuid"
)

// Status enumeration. Values are caller-supplied; any status may replace any
// other at any time, there is no workflow between them.
const (
	StatusActive     = "active"
	StatusOnLeave    = "on-leave"
	StatusTerminated = "terminated"
	StatusResigned   = "resigned"
)

// Address is an optional sub-record; every field is individually optional.
type Address struct {
	Street  string `gorm:"type:varchar(255)"`
	City    string `gorm:"type:varchar(100)"`
	State   string `gorm:"type:varchar(100)"`
	ZipCode string `gorm:"type:varchar(20)"`
	Country string `gorm:"type:varchar(100)"`
}

func (a Address) IsZero() bool {
	return a == Address{}
}

type Employee struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	FirstName  string     `gorm:"type:varchar(100);not null"`
	LastName   string     `gorm:"type:varchar(100);not null"`
	Email      string     `gorm:"type:varchar(255);not null;uniqueIndex:uq_employee_email"`
	Phone      string     `gorm:"type:varchar(50);not null"`
	Department string     `gorm:"type:varchar(100);not null;index"`
	Position   string     `gorm:"type:varchar(100);not null"`
	Salary     float64    `gorm:"not null"`
	HireDate   *time.Time `gorm:"index"`
	Status     string     `gorm:"type:varchar(20);not null;default:'active';index"`
	Address    Address    `gorm:"embedded;embeddedPrefix:address_"`
	CreatedBy  uuid.UUID  `gorm:"type:uuid"`
	UpdatedBy  *uuid.UUID `gorm:"type:uuid"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
