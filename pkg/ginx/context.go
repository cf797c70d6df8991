package ginx

import (
	"github.com/gin-gonic/gin"
)

// contextKey 用于在 gin.Context 中存储值的类型安全 key
type contextKey struct{}

// requestIDKey 用于存储错误响应中的 requestID
var requestIDKey = contextKey{}

// SetRequestID 设置当前请求的 requestID
func SetRequestID(ctx *gin.Context, requestID string) {
	ctx.Set(requestIDKey, requestID)
}

// GetRequestID 获取当前请求的 requestID，不存在时返回空字符串
func GetRequestID(ctx *gin.Context) string {
	v, exists := ctx.Get(requestIDKey)
	if !exists {
		return ""
	}
	if str, ok := v.(string); ok {
		return str
	}
	return ""
}
