package employee

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ListFilter narrows a listing: equality on department and status, plus a
// case-insensitive substring match across first name, last name and email.
type ListFilter struct {
	Department string
	Status     string
	Search     string
}

type FieldCount struct {
	Value string
	Count int64
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	Find(ctx context.Context, filter ListFilter, offset, limit int) ([]Employee, error)
	Count(ctx context.Context, filter ListFilter) (int64, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	Create(ctx context.Context, empl *Employee) error
	Update(ctx context.Context, empl *Employee) error
	Delete(ctx context.Context, id string) error
	CountByField(ctx context.Context, field string) ([]FieldCount, error)
	RecentHires(ctx context.Context, n int) ([]Employee, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (f ListFilter) apply(db *gorm.DB) *gorm.DB {
	if f.Department != "" {
		db = db.Where("department = ?", f.Department)
	}
	if f.Status != "" {
		db = db.Where("status = ?", f.Status)
	}
	if f.Search != "" {
		// LIKE metacharacters in the term are literal text, not wildcards.
		pattern := "%" + likeEscaper.Replace(f.Search) + "%"
		db = db.Where(
			"first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?",
			pattern, pattern, pattern,
		)
	}
	return db
}

func (r *repository) Find(ctx context.Context, filter ListFilter, offset, limit int) ([]Employee, error) {
	var empls []Employee
	err := filter.apply(r.db.WithContext(ctx)).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&empls).Error
	return empls, err
}

func (r *repository) Count(ctx context.Context, filter ListFilter) (int64, error) {
	var total int64
	err := filter.apply(r.db.WithContext(ctx).Model(&Employee{})).
		Count(&total).Error
	return total, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).First(&empl, "id = ?", id).Error
	return &empl, err
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).First(&empl, "email = ?", email).Error
	return &empl, err
}

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Create(empl).Error
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Save(empl).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&Employee{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// groupableColumns whitelists the GROUP BY target; field names come from
// code, never from request input, but the list keeps it that way.
var groupableColumns = map[string]string{
	"department": "department",
	"status":     "status",
}

func (r *repository) CountByField(ctx context.Context, field string) ([]FieldCount, error) {
	column, ok := groupableColumns[field]
	if !ok {
		return nil, fmt.Errorf("field %q is not groupable", field)
	}

	var counts []FieldCount
	err := r.db.WithContext(ctx).
		Model(&Employee{}).
		Select(column + " AS value, COUNT(*) AS count").
		Group(column).
		Order("count DESC").
		Scan(&counts).Error
	return counts, err
}

func (r *repository) RecentHires(ctx context.Context, n int) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Select("first_name", "last_name", "position", "department", "hire_date").
		Order("hire_date DESC NULLS LAST").
		Limit(n).
		Find(&empls).Error
	return empls, err
}
