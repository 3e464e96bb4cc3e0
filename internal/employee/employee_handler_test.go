package employee_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Nirjala-pagare/Emp-management/internal/employee"
	employeeerrors "github.com/Nirjala-pagare/Emp-management/internal/employee/errors"
	"github.com/Nirjala-pagare/Emp-management/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeEmployeeService struct {
	ListFn    func(ctx context.Context, q employee.ListEmployeesQuery) (employee.ListEmployeesResponse, error)
	GetByIDFn func(ctx context.Context, id string) (employee.EmployeeResponse, error)
	CreateFn  func(ctx context.Context, actorID string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
	UpdateFn  func(ctx context.Context, actorID, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error)
	DeleteFn  func(ctx context.Context, id string) error
	StatsFn   func(ctx context.Context) (employee.StatsResponse, error)
}

func (f *fakeEmployeeService) List(ctx context.Context, q employee.ListEmployeesQuery) (employee.ListEmployeesResponse, error) {
	return f.ListFn(ctx, q)
}
func (f *fakeEmployeeService) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeEmployeeService) Create(ctx context.Context, actorID string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.CreateFn(ctx, actorID, req)
}
func (f *fakeEmployeeService) Update(ctx context.Context, actorID, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.UpdateFn(ctx, actorID, id, req)
}
func (f *fakeEmployeeService) Delete(ctx context.Context, id string) error {
	return f.DeleteFn(ctx, id)
}
func (f *fakeEmployeeService) Stats(ctx context.Context) (employee.StatsResponse, error) {
	return f.StatsFn(ctx)
}

func withUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func decodeEnvelope(t *testing.T, body string) map[string]any {
	t.Helper()
	var envelope map[string]any
	if err := json.Unmarshal([]byte(body), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return envelope
}

func TestEmployeeHandler_List(t *testing.T) {
	t.Run("query params parsed", func(t *testing.T) {
		svc := &fakeEmployeeService{
			ListFn: func(ctx context.Context, q employee.ListEmployeesQuery) (employee.ListEmployeesResponse, error) {
				assert.Equal(t, 2, q.Page)
				assert.Equal(t, 5, q.Limit)
				assert.Equal(t, "Engineering", q.Department)
				assert.Equal(t, "active", q.Status)
				assert.Equal(t, "smith", q.Search)
				return employee.ListEmployeesResponse{
					Employees:      []employee.EmployeeResponse{},
					TotalPages:     1,
					CurrentPage:    2,
					TotalEmployees: 3,
				}, nil
			},
		}

		r := setupRouter()
		r.GET("/api/employees", employee.NewHandler(svc).List)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet,
			"/api/employees?page=2&limit=5&department=Engineering&status=active&search=smith", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		envelope := decodeEnvelope(t, w.Body.String())
		assert.Equal(t, true, envelope["ok"])
		data := envelope["data"].(map[string]any)
		assert.Equal(t, float64(3), data["totalEmployees"])
		assert.Equal(t, float64(2), data["currentPage"])
		meta := envelope["meta"].(map[string]any)
		assert.Equal(t, float64(3), meta["total"])
		assert.Equal(t, float64(1), meta["totalPages"])
		assert.Equal(t, float64(2), meta["page"])
		assert.Equal(t, float64(5), meta["pageSize"])
	})

	t.Run("missing params fall back to defaults", func(t *testing.T) {
		svc := &fakeEmployeeService{
			ListFn: func(ctx context.Context, q employee.ListEmployeesQuery) (employee.ListEmployeesResponse, error) {
				assert.Equal(t, 1, q.Page)
				assert.Equal(t, 10, q.Limit)
				return employee.ListEmployeesResponse{}, nil
			},
		}

		r := setupRouter()
		r.GET("/api/employees", employee.NewHandler(svc).List)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/employees", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestEmployeeHandler_GetByID(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetByIDFn: func(ctx context.Context, id string) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
			},
		}

		r := setupRouter()
		r.GET("/api/employees/:id", employee.NewHandler(svc).GetByID)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/employees/"+uuid.New().String(), nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		envelope := decodeEnvelope(t, w.Body.String())
		errObj := envelope["error"].(map[string]any)
		assert.Equal(t, apperror.CodeNotFound, errObj["code"])
	})
}

func TestEmployeeHandler_Create(t *testing.T) {
	actorID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, aid string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Equal(t, actorID, aid)
				assert.Equal(t, "John", req.FirstName)
				return employee.EmployeeResponse{
					ID:        uuid.New().String(),
					FirstName: req.FirstName,
					Email:     req.Email,
				}, nil
			},
		}

		r := setupRouter()
		r.POST("/api/employees", withUser(actorID), employee.NewHandler(svc).Create)

		body := `{"firstName":"John","lastName":"Smith","email":"john@example.com","phone":"+1 555 123 4567","department":"Engineering","position":"Developer","salary":75000}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/employees", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("validation failure returns every violation", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, aid string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, apperror.NewValidationError([]apperror.FieldViolation{
					{Field: "salary", Message: "Salary cannot be negative"},
					{Field: "email", Message: "Please provide a valid email"},
				})
			},
		}

		r := setupRouter()
		r.POST("/api/employees", withUser(actorID), employee.NewHandler(svc).Create)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/employees", strings.NewReader(`{"salary":-5}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		envelope := decodeEnvelope(t, w.Body.String())
		errObj := envelope["error"].(map[string]any)
		details := errObj["details"].([]any)
		assert.Len(t, details, 2)
	})

	t.Run("duplicate email conflict", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, aid string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrDuplicateEmail
			},
		}

		r := setupRouter()
		r.POST("/api/employees", withUser(actorID), employee.NewHandler(svc).Create)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/employees", strings.NewReader(`{"email":"dup@example.com"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("failed create releases the idempotency lock", func(t *testing.T) {
		const lockKey = "idemp:/api/employees:user-1:abc-123:lock"
		rdb, mock := redismock.NewClientMock()
		mock.ExpectDel(lockKey).SetVal(1)

		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, aid string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrDuplicateEmail
			},
		}

		r := setupRouter()
		r.POST("/api/employees",
			withUser(actorID),
			func(c *gin.Context) { c.Set("idempotency_lock_key", lockKey); c.Next() },
			employee.NewHandlerWithRedis(svc, rdb).Create,
		)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/employees", strings.NewReader(`{"email":"dup@example.com"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Idempotency-Key", "abc-123")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("malformed body", func(t *testing.T) {
		svc := &fakeEmployeeService{}

		r := setupRouter()
		r.POST("/api/employees", withUser(actorID), employee.NewHandler(svc).Create)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/employees", strings.NewReader(`{"salary":"lots"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestEmployeeHandler_Update(t *testing.T) {
	actorID := uuid.New().String()

	t.Run("partial fields forwarded", func(t *testing.T) {
		id := uuid.New().String()
		svc := &fakeEmployeeService{
			UpdateFn: func(ctx context.Context, aid, targetID string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Equal(t, id, targetID)
				if assert.NotNil(t, req.Department) {
					assert.Equal(t, "Sales", *req.Department)
				}
				assert.Nil(t, req.FirstName)
				return employee.EmployeeResponse{ID: targetID, Department: "Sales"}, nil
			},
		}

		r := setupRouter()
		r.PUT("/api/employees/:id", withUser(actorID), employee.NewHandler(svc).Update)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/employees/"+id, strings.NewReader(`{"department":"Sales"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestEmployeeHandler_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeEmployeeService{
			DeleteFn: func(ctx context.Context, id string) error { return nil },
		}

		r := setupRouter()
		r.DELETE("/api/employees/:id", employee.NewHandler(svc).Delete)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/employees/"+uuid.New().String(), nil))

		assert.Equal(t, http.StatusOK, w.Code)
		envelope := decodeEnvelope(t, w.Body.String())
		data := envelope["data"].(map[string]any)
		assert.Equal(t, true, data["deleted"])
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeEmployeeService{
			DeleteFn: func(ctx context.Context, id string) error {
				return employeeerrors.ErrEmployeeNotFound
			},
		}

		r := setupRouter()
		r.DELETE("/api/employees/:id", employee.NewHandler(svc).Delete)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/employees/"+uuid.New().String(), nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestEmployeeHandler_Stats(t *testing.T) {
	t.Run("payload shape", func(t *testing.T) {
		svc := &fakeEmployeeService{
			StatsFn: func(ctx context.Context) (employee.StatsResponse, error) {
				return employee.StatsResponse{
					TotalEmployees: 2,
					DepartmentStats: []employee.DepartmentStat{
						{Department: "Engineering", Count: 1},
						{Department: "Sales", Count: 1},
					},
					StatusStats: []employee.StatusStat{
						{Status: "active", Count: 1},
						{Status: "on-leave", Count: 1},
					},
					RecentHires: []employee.RecentHireResponse{},
				}, nil
			},
		}

		r := setupRouter()
		r.GET("/api/employees/stats/dashboard", employee.NewHandler(svc).Stats)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/employees/stats/dashboard", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		envelope := decodeEnvelope(t, w.Body.String())
		data := envelope["data"].(map[string]any)
		assert.Equal(t, float64(2), data["totalEmployees"])
		assert.Len(t, data["departmentStats"].([]any), 2)
		assert.Len(t, data["statusStats"].([]any), 2)
	})
}
