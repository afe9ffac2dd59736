package response

import (
	"Viralize/internal/api/dto"
	"Viralize/internal/service"
	"encoding/json"
	"errors"
	"io"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Success 成功返回封装，payload 由调用方组装成对外契约的形状
func Success(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}

// Fail 失败返回封装
func Fail(c *gin.Context, status int, code string, message string, retryable bool) {
	c.JSON(status, dto.ErrorDTO{
		Error:     message,
		Code:      code,
		Retryable: retryable,
	})
}

// Error 把任意错误折算成错误分类表中的一项，永远不向调用方泄露未分类错误
func Error(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		Fail(c, http.StatusBadRequest, service.CodeInvalidRequest, service.ErrInvalidRequest.Error(), false)
		return
	}

	// gin 的 JSON 绑定失败：语法错误、类型不匹配、空请求体
	var syntaxError *json.SyntaxError
	var unmarshalTypeError *json.UnmarshalTypeError
	if errors.As(err, &syntaxError) || errors.As(err, &unmarshalTypeError) ||
		errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		Fail(c, http.StatusBadRequest, service.CodeInvalidRequest, service.ErrInvalidRequest.Error(), false)
		return
	}

	var quotaErr *service.QuotaExceededError
	if errors.As(err, &quotaErr) {
		c.JSON(http.StatusTooManyRequests, dto.QuotaExceededDTO{
			Error:                quotaErr.Error(),
			Code:                 service.CodeRateLimitExceeded,
			DailyLimit:           quotaErr.DailyLimit,
			TodayCount:           quotaErr.TodayCount,
			RemainingPredictions: 0,
			Message:              "Upgrade to get unlimited predictions!",
		})
		return
	}

	for sentinel, meta := range service.ErrorMap {
		if errors.Is(err, sentinel) {
			Fail(c, meta.Status, meta.Code, sentinel.Error(), meta.Retryable)
			return
		}
	}

	log.ErrorContext(c.Request.Context(), "Unclassified error", "err", err)
	Fail(c, http.StatusInternalServerError, service.CodeInternalError, service.ErrInternal.Error(), true)
}
