// Package middleware は gin のリクエスト横断処理です。
package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader はリクエスト ID を受け渡すヘッダーです。
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "request_id"

type requestIDContextKey struct{}

// RequestID はリクエスト ID を採番し、レスポンスヘッダーとリクエストコンテキストに設定します。
// クライアントが指定した値はそのまま引き継ぎます。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(RequestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}

		c.Set(requestIDKey, rid)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), requestIDContextKey{}, rid))
		c.Header(RequestIDHeader, rid)
		c.Next()
	}
}

// RequestIDFromContext はコンテキストに格納されたリクエスト ID を返します。
func RequestIDFromContext(ctx context.Context) string {
	rid, _ := ctx.Value(requestIDContextKey{}).(string)
	return rid
}
