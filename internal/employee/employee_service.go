package employee

import (
	"context"
	"errors"
	"time"

	employeeerrors "github.com/Nirjala-pagare/Emp-management/internal/employee/errors"
	"github.com/Nirjala-pagare/Emp-management/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
	recentHireCount = 5
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, q ListEmployeesQuery) (ListEmployeesResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Create(ctx context.Context, actorID string, req CreateEmployeeRequest) (EmployeeResponse, error)
	Update(ctx context.Context, actorID, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (StatsResponse, error)
}

type service struct {
	repo      Repository
	validator *Validator
	sf        *singleflight.Group
	logger    *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		repo:      repo,
		validator: NewValidator(),
		sf:        &singleflight.Group{},
		logger:    l,
	}
}

// log returns the request-scoped logger when the context middleware attached
// one, falling back to the service's named logger.
func (s *service) log(ctx context.Context) *zap.Logger {
	return contextutil.GetLogger(ctx, s.logger)
}

func (s *service) List(ctx context.Context, q ListEmployeesQuery) (ListEmployeesResponse, error) {
	if q.Page < 1 {
		q.Page = defaultPage
	}
	if q.Limit < 1 {
		q.Limit = defaultPageSize
	}

	filter := ListFilter{
		Department: q.Department,
		Status:     q.Status,
		Search:     q.Search,
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		s.log(ctx).Error("list employees count failed", zap.Error(err))
		return ListEmployeesResponse{}, mapRepositoryError(err)
	}

	offset := (q.Page - 1) * q.Limit
	empls, err := s.repo.Find(ctx, filter, offset, q.Limit)
	if err != nil {
		s.log(ctx).Error("list employees find failed", zap.Error(err))
		return ListEmployeesResponse{}, mapRepositoryError(err)
	}

	totalPages := int((total + int64(q.Limit) - 1) / int64(q.Limit))

	return ListEmployeesResponse{
		Employees:      mapToListResponse(empls),
		TotalPages:     totalPages,
		CurrentPage:    q.Page,
		TotalEmployees: total,
	}, nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.log(ctx).Error("get employee by id failed",
			zap.String("employee_id", id),
			zap.Error(err),
		)
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*empl), nil
}

func (s *service) Create(ctx context.Context, actorID string, req CreateEmployeeRequest) (EmployeeResponse, error) {
	log := s.log(ctx)
	log.Debug("create employee requested", zap.String("email", req.Email))

	actor, err := uuid.Parse(actorID)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidActor
	}

	if err := s.validator.ValidateEmployee(&req); err != nil {
		log.Warn("create employee validation failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	// Friendly pre-check; the unique index on email closes the race.
	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		log.Warn("create employee duplicate email", zap.String("email", req.Email))
		return EmployeeResponse{}, employeeerrors.ErrDuplicateEmail
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error("create employee email lookup failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	status := req.Status
	if status == "" {
		status = StatusActive
	}

	empl := &Employee{
		ID:         uuid.New(),
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		Department: req.Department,
		Position:   req.Position,
		Salary:     *req.Salary,
		HireDate:   parseHireDate(req.HireDate),
		Status:     status,
		Address:    addressFromPayload(req.Address),
		CreatedBy:  actor,
	}

	if err := s.repo.Create(ctx, empl); err != nil {
		log.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	log.Info("create employee success", zap.String("employee_id", empl.ID.String()))
	return mapToResponse(*empl), nil
}

func (s *service) Update(ctx context.Context, actorID, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	log := s.log(ctx)
	log.Debug("update employee requested", zap.String("employee_id", id))

	actor, err := uuid.Parse(actorID)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidActor
	}
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		log.Error("update employee fetch existing failed",
			zap.String("employee_id", id),
			zap.Error(err),
		)
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	merged := mergeRequest(empl, req)
	merged.Normalize()

	// A change of email must stay unique against every OTHER record; the
	// target itself keeping its email is not a conflict.
	if merged.Email != empl.Email {
		existing, err := s.repo.FindByEmail(ctx, merged.Email)
		if err == nil && existing.ID != empl.ID {
			log.Warn("update employee duplicate email", zap.String("email", merged.Email))
			return EmployeeResponse{}, employeeerrors.ErrDuplicateEmail
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error("update employee email lookup failed", zap.Error(err))
			return EmployeeResponse{}, err
		}
	}

	if err := s.validator.ValidateEmployee(&merged); err != nil {
		log.Warn("update employee validation failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	applyMerged(empl, merged)
	empl.UpdatedBy = &actor
	empl.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, empl); err != nil {
		log.Error("update employee persist failed",
			zap.String("employee_id", id),
			zap.Error(err),
		)
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	log.Info("update employee success", zap.String("employee_id", id))
	return mapToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	log := s.log(ctx)
	log.Debug("delete employee requested", zap.String("employee_id", id))

	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error("delete employee failed",
			zap.String("employee_id", id),
			zap.Error(err),
		)
		return mapRepositoryError(err)
	}

	log.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

// Stats is read-only and identical for every caller, so concurrent dashboard
// requests are collapsed into one store round trip.
func (s *service) Stats(ctx context.Context) (StatsResponse, error) {
	v, err, _ := s.sf.Do("stats:dashboard", func() (interface{}, error) {
		total, err := s.repo.Count(ctx, ListFilter{})
		if err != nil {
			return nil, err
		}

		deptCounts, err := s.repo.CountByField(ctx, "department")
		if err != nil {
			return nil, err
		}

		statusCounts, err := s.repo.CountByField(ctx, "status")
		if err != nil {
			return nil, err
		}

		hires, err := s.repo.RecentHires(ctx, recentHireCount)
		if err != nil {
			return nil, err
		}

		resp := StatsResponse{
			TotalEmployees:  total,
			DepartmentStats: make([]DepartmentStat, 0, len(deptCounts)),
			StatusStats:     make([]StatusStat, 0, len(statusCounts)),
			RecentHires:     make([]RecentHireResponse, 0, len(hires)),
		}
		for _, c := range deptCounts {
			resp.DepartmentStats = append(resp.DepartmentStats, DepartmentStat{
				Department: c.Value,
				Count:      c.Count,
			})
		}
		for _, c := range statusCounts {
			resp.StatusStats = append(resp.StatusStats, StatusStat{
				Status: c.Value,
				Count:  c.Count,
			})
		}
		for _, h := range hires {
			resp.RecentHires = append(resp.RecentHires, RecentHireResponse{
				FirstName:  h.FirstName,
				LastName:   h.LastName,
				Position:   h.Position,
				Department: h.Department,
				HireDate:   formatHireDate(h.HireDate),
			})
		}
		return resp, nil
	})
	if err != nil {
		s.log(ctx).Error("stats query failed", zap.Error(err))
		return StatsResponse{}, mapRepositoryError(err)
	}

	return v.(StatsResponse), nil
}

// mergeRequest folds the partial payload over the stored record, producing
// the full shape the validator understands.
func mergeRequest(empl *Employee, req UpdateEmployeeRequest) CreateEmployeeRequest {
	salary := empl.Salary
	merged := CreateEmployeeRequest{
		FirstName:  empl.FirstName,
		LastName:   empl.LastName,
		Email:      empl.Email,
		Phone:      empl.Phone,
		Department: empl.Department,
		Position:   empl.Position,
		Salary:     &salary,
		HireDate:   formatHireDate(empl.HireDate),
		Status:     empl.Status,
		Address:    payloadFromAddress(empl.Address),
	}

	if req.FirstName != nil {
		merged.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		merged.LastName = *req.LastName
	}
	if req.Email != nil {
		merged.Email = *req.Email
	}
	if req.Phone != nil {
		merged.Phone = *req.Phone
	}
	if req.Department != nil {
		merged.Department = *req.Department
	}
	if req.Position != nil {
		merged.Position = *req.Position
	}
	if req.Salary != nil {
		merged.Salary = req.Salary
	}
	if req.HireDate != nil {
		merged.HireDate = *req.HireDate
	}
	if req.Status != nil {
		merged.Status = *req.Status
	}
	if req.Address != nil {
		merged.Address = req.Address
	}
	return merged
}

func applyMerged(empl *Employee, merged CreateEmployeeRequest) {
	empl.FirstName = merged.FirstName
	empl.LastName = merged.LastName
	empl.Email = merged.Email
	empl.Phone = merged.Phone
	empl.Department = merged.Department
	empl.Position = merged.Position
	empl.Salary = *merged.Salary
	empl.HireDate = parseHireDate(merged.HireDate)
	if merged.Status != "" {
		empl.Status = merged.Status
	}
	empl.Address = addressFromPayload(merged.Address)
}

func parseHireDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

func formatHireDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func addressFromPayload(p *AddressPayload) Address {
	if p == nil {
		return Address{}
	}
	return Address{
		Street:  p.Street,
		City:    p.City,
		State:   p.State,
		ZipCode: p.ZipCode,
		Country: p.Country,
	}
}

func payloadFromAddress(a Address) *AddressPayload {
	if a.IsZero() {
		return nil
	}
	return &AddressPayload{
		Street:  a.Street,
		City:    a.City,
		State:   a.State,
		ZipCode: a.ZipCode,
		Country: a.Country,
	}
}

func mapToResponse(empl Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:         empl.ID.String(),
		FirstName:  empl.FirstName,
		LastName:   empl.LastName,
		Email:      empl.Email,
		Phone:      empl.Phone,
		Department: empl.Department,
		Position:   empl.Position,
		Salary:     empl.Salary,
		HireDate:   formatHireDate(empl.HireDate),
		Status:     empl.Status,
		Address:    payloadFromAddress(empl.Address),
		CreatedAt:  empl.CreatedAt,
		UpdatedAt:  empl.UpdatedAt,
	}
	if empl.CreatedBy != uuid.Nil {
		resp.CreatedBy = empl.CreatedBy.String()
	}
	if empl.UpdatedBy != nil {
		resp.UpdatedBy = empl.UpdatedBy.String()
	}
	return resp
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res
}
