package withdrawal

import (
	"encoding/json"
	"net/http"
	"time"

	"go-payroll/internal/middleware"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const idempotencyCacheTTL = 24 * time.Hour

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("withdrawal.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("withdrawal.handler")
	}
	return &Handler{service: service, rdb: rdb, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("withdrawal request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Request(c *gin.Context) {
	var req RequestWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	resp, err := h.service.Request(c.Request.Context(), c.GetString("employee_id"), req)
	if err != nil {
		h.releaseIdempotencyLock(c)
		h.writeServiceError(c, err)
		return
	}

	h.cacheIdempotentResponse(c, resp)
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) List(c *gin.Context) {
	var (
		resp []WithdrawalResponse
		err  error
	)

	switch c.GetString("role") {
	case middleware.RoleCompany:
		resp, err = h.service.ListByCompany(c.Request.Context(), c.GetString("company_id"))
	default:
		resp, err = h.service.ListByEmployee(c.Request.Context(), c.GetString("employee_id"))
	}
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Summary(c *gin.Context) {
	resp, err := h.service.Summary(c.Request.Context(), c.GetString("employee_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// cacheIdempotentResponse stores the admitted withdrawal under the key
// the middleware resolved, so a retried request replays the same body
// instead of spending budget twice.
func (h *Handler) cacheIdempotentResponse(c *gin.Context, resp WithdrawalResponse) {
	cacheKey := c.GetString(middleware.IdempotencyCacheKey)
	if cacheKey == "" || h.rdb == nil {
		return
	}

	envelope := response.ApiEnvelope{Ok: true, Data: resp}
	body, err := json.Marshal(envelope)
	if err != nil {
		return
	}

	if err := h.rdb.Set(c.Request.Context(), cacheKey, string(body), idempotencyCacheTTL).Err(); err != nil {
		h.logger.Warn("idempotency cache write failed", zap.Error(err))
	}
	h.releaseIdempotencyLock(c)
}

func (h *Handler) releaseIdempotencyLock(c *gin.Context) {
	lockKey := c.GetString(middleware.IdempotencyLockKey)
	if lockKey == "" || h.rdb == nil {
		return
	}
	if err := h.rdb.Del(c.Request.Context(), lockKey).Err(); err != nil {
		h.logger.Warn("idempotency lock release failed", zap.Error(err))
	}
}
