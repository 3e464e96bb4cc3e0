package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Nirjala-pagare/Emp-management/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func idempotencyRouter(rdb *redis.Client) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/employees",
		func(c *gin.Context) { c.Set("user_id", "user-1"); c.Next() },
		middleware.Idempotency(rdb),
		func(c *gin.Context) {
			cacheKey := c.GetString("idempotency_cache_key")
			c.JSON(http.StatusCreated, gin.H{"ok": true, "cacheKey": cacheKey})
		},
	)
	return r
}

func postWithKey(r *gin.Engine, key string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/employees", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set("Idempotency-Key", key)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotency(t *testing.T) {
	const cacheKey = "idemp:/api/employees:user-1:abc-123"
	const lockKey = cacheKey + ":lock"

	t.Run("first request acquires lock and passes through", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)

		w := postWithKey(idempotencyRouter(rdb), "abc-123")

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), cacheKey)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("cached result replayed without reaching handler", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet(cacheKey).SetVal(`{"id":"e-1","firstName":"John"}`)

		w := postWithKey(idempotencyRouter(rdb), "abc-123")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"firstName":"John"`)
		assert.NotContains(t, w.Body.String(), "cacheKey")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("concurrent duplicate rejected while lock held", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(false)

		w := postWithKey(idempotencyRouter(rdb), "abc-123")

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "PROCESSING")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("redis outage fails open instead of conflicting", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet(cacheKey).SetErr(errors.New("connection refused"))
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetErr(errors.New("connection refused"))

		w := postWithKey(idempotencyRouter(rdb), "abc-123")

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"cacheKey":""`)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing key skips redis entirely", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()

		w := postWithKey(idempotencyRouter(rdb), "")

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
