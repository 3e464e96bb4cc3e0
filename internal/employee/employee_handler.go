package employee

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/Nirjala-pagare/Emp-management/internal/shared/apperror"
	"github.com/Nirjala-pagare/Emp-management/internal/shared/contextutil"
	"github.com/Nirjala-pagare/Emp-management/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const idempotencyResultTTL = 24 * time.Hour

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	return NewHandlerWithRedis(service, nil, logger...)
}

func NewHandlerWithRedis(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("employee.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.handler")
	}
	return &Handler{service: service, rdb: rdb, logger: l}
}

// reqLogger prefers the request-scoped logger (request_id/user_id attached by
// the context middleware) over the handler's own.
func (h *Handler) reqLogger(c *gin.Context) *zap.Logger {
	return contextutil.GetLogger(c.Request.Context(), h.logger)
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.reqLogger(c).Warn("employee request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) writeMalformedBody(c *gin.Context, err error) {
	h.reqLogger(c).Warn("employee request malformed body", zap.Error(err))
	response.Error(c,
		apperror.ErrInvalidInput.HTTPStatus,
		apperror.ErrInvalidInput.Code,
		"Malformed request body",
		err.Error(),
	)
}

func (h *Handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	q := ListEmployeesQuery{
		Page:       page,
		Limit:      limit,
		Department: c.Query("department"),
		Status:     c.Query("status"),
		Search:     c.Query("search"),
	}
	h.reqLogger(c).Debug("http list employees",
		zap.Int("page", q.Page),
		zap.Int("limit", q.Limit),
		zap.String("search", q.Search),
	)

	resp, err := h.service.List(ctx, q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(resp.TotalEmployees, resp.CurrentPage, q.Limit)
	response.Success(c, http.StatusOK, resp, &meta)
}

func (h *Handler) GetByID(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	h.reqLogger(c).Debug("http get employee by id", zap.String("employee_id", id))

	resp, err := h.service.GetByID(ctx, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	actorID := c.GetString("user_id")
	h.reqLogger(c).Debug("http create employee", zap.String("user_id", actorID))

	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.releaseIdempotencyLock(c)
		h.writeMalformedBody(c, err)
		return
	}

	resp, err := h.service.Create(ctx, actorID, req)
	if err != nil {
		// A failed create must not hold the idempotency key for the lock TTL.
		h.releaseIdempotencyLock(c)
		h.writeServiceError(c, err)
		return
	}

	h.storeIdempotentResult(c, resp)
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	actorID := c.GetString("user_id")
	h.reqLogger(c).Debug("http update employee",
		zap.String("employee_id", id),
		zap.String("user_id", actorID),
	)

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeMalformedBody(c, err)
		return
	}

	resp, err := h.service.Update(ctx, actorID, id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	h.reqLogger(c).Debug("http delete employee", zap.String("employee_id", id))

	if err := h.service.Delete(ctx, id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) Stats(c *gin.Context) {
	ctx := c.Request.Context()
	h.reqLogger(c).Debug("http employee stats dashboard")

	resp, err := h.service.Stats(ctx)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// storeIdempotentResult publishes the created record under the idempotency
// key set by the middleware and releases its in-flight lock.
func (h *Handler) storeIdempotentResult(c *gin.Context, resp EmployeeResponse) {
	if h.rdb == nil {
		return
	}
	cacheKey := c.GetString("idempotency_cache_key")
	if cacheKey == "" {
		return
	}

	ctx := c.Request.Context()
	if payload, err := json.Marshal(resp); err == nil {
		if err := h.rdb.Set(ctx, cacheKey, payload, idempotencyResultTTL).Err(); err != nil {
			h.reqLogger(c).Error("store idempotent result failed",
				zap.String("key", cacheKey),
				zap.Error(err),
			)
		}
	}
	h.releaseIdempotencyLock(c)
}

func (h *Handler) releaseIdempotencyLock(c *gin.Context) {
	if h.rdb == nil {
		return
	}
	lockKey := c.GetString("idempotency_lock_key")
	if lockKey == "" {
		return
	}
	if err := h.rdb.Del(c.Request.Context(), lockKey).Err(); err != nil {
		h.reqLogger(c).Error("release idempotency lock failed",
			zap.String("key", lockKey),
			zap.Error(err),
		)
	}
}
