package middleware

import (
	"github.com/gin-gonic/gin"
	apperrors "github.com/jsonshare/jsonshare-backend/internal/pkg/errors"
	"github.com/jsonshare/jsonshare-backend/internal/pkg/logger"
	"github.com/jsonshare/jsonshare-backend/internal/pkg/response"
)

// UserIDHeader 客户端身份请求头（未认证，信任客户端）
const UserIDHeader = "X-User-Id"

// RequireUserID 从请求头提取用户标识，缺失时返回 400
func RequireUserID() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(UserIDHeader)
		if userID == "" {
			response.ErrorWithCode(c, apperrors.ErrMissingUserID)
			c.Abort()
			return
		}

		c.Set("user_id", userID)

		ctx := logger.WithUserID(c.Request.Context(), userID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
