package middleware

import (
	"Chirp/internal/pkg/response"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// IdentityMiddleware 从 X-User-ID 头解出调用方身份
// 鉴权由网关完成，服务内只消费网关注入的用户 ID
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := parseUserID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusOK, gin.H{
				"code":    response.Unauthorized,
				"message": "缺少用户身份",
				"data":    nil,
			})
			return
		}
		c.Set("user_id", userID)
		c.Next()
	}
}

// IdentityOptionalMiddleware 身份可选的接口用，未携带时 user_id 为 0
func IdentityOptionalMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := parseUserID(c); ok {
			c.Set("user_id", userID)
		}
		c.Next()
	}
}

func parseUserID(c *gin.Context) (uint64, bool) {
	raw := c.GetHeader("X-User-ID")
	if raw == "" {
		return 0, false
	}
	userID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || userID == 0 {
		return 0, false
	}
	return userID, true
}
