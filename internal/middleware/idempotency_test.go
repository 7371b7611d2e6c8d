package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdempotency_ReplaysCachedResponse(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	cached := `{"ok":true,"data":{"id":"w-1","amount":"300.00"}}`
	mock.ExpectGet("idemp:/withdrawals:user-1:key-1").SetVal(cached)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	handlerCalls := 0
	router.POST("/withdrawals", func(c *gin.Context) {
		c.Set("user_id", "user-1")
	}, middleware.Idempotency(rdb), func(c *gin.Context) {
		handlerCalls++
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/withdrawals", strings.NewReader(`{"amount":"300"}`))
	req.Header.Set("Idempotency-Key", "key-1")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, cached, w.Body.String())
	assert.Zero(t, handlerCalls, "handler must not run on replay")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_RejectsInFlightDuplicate(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectGet("idemp:/withdrawals:user-1:key-1").RedisNil()
	mock.ExpectSetNX("idemp:/withdrawals:user-1:key-1:lock", "locked", 30*time.Second).SetVal(false)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/withdrawals", func(c *gin.Context) {
		c.Set("user_id", "user-1")
	}, middleware.Idempotency(rdb), func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/withdrawals", strings.NewReader(`{"amount":"300"}`))
	req.Header.Set("Idempotency-Key", "key-1")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "PROCESSING")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_PassesThroughAndStoresKeys(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectGet("idemp:/withdrawals:user-1:key-1").RedisNil()
	mock.ExpectSetNX("idemp:/withdrawals:user-1:key-1:lock", "locked", 30*time.Second).SetVal(true)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	var gotCacheKey, gotLockKey string
	router.POST("/withdrawals", func(c *gin.Context) {
		c.Set("user_id", "user-1")
	}, middleware.Idempotency(rdb), func(c *gin.Context) {
		gotCacheKey = c.GetString(middleware.IdempotencyCacheKey)
		gotLockKey = c.GetString(middleware.IdempotencyLockKey)
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/withdrawals", strings.NewReader(`{"amount":"300"}`))
	req.Header.Set("Idempotency-Key", "key-1")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "idemp:/withdrawals:user-1:key-1", gotCacheKey)
	assert.Equal(t, "idemp:/withdrawals:user-1:key-1:lock", gotLockKey)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_SkipsWithoutHeader(t *testing.T) {
	rdb, mock := redismock.NewClientMock()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	handlerCalls := 0
	router.POST("/withdrawals", middleware.Idempotency(rdb), func(c *gin.Context) {
		handlerCalls++
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/withdrawals", nil))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, handlerCalls)
	require.NoError(t, mock.ExpectationsWereMet())
}
