package middleware

import (
	"Viralize/internal/pkg/consts"
	"Viralize/internal/pkg/redis"
	"Viralize/internal/pkg/response"
	"Viralize/internal/pkg/security"
	"Viralize/internal/service"
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware 负责验证 JWT 并将用户身份信息注入 Context。
// 缺失、格式错误、已登出、过期统一报 AUTH_REQUIRED，不向调用方区分原因
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c)
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		signature, err := security.ExtractSignature(tokenString)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		value, err := redis.GetValue(c.Request.Context(), consts.TokenBlacklistKey+signature)
		if err != nil {
			response.Fail(c, http.StatusInternalServerError, service.CodeInternalError, service.ErrInternal.Error(), true)
			c.Abort()
			return
		}
		if value != "" {
			abortUnauthorized(c)
			return
		}

		claims, err := security.ValidateToken(tokenString)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set("user_id", claims.UserID)

		newCtx := context.WithValue(c.Request.Context(), "user_id", claims.UserID)
		c.Request = c.Request.WithContext(newCtx)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	response.Fail(c, http.StatusUnauthorized, service.CodeAuthRequired, service.ErrAuthRequired.Error(), false)
	c.Abort()
}
