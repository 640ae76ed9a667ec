package middleware

import "github.com/gin-gonic/gin"

// SecurityHeaders はすべてのレスポンスにブラウザ向けのセキュリティヘッダーを設定します。
// HSTSはisHTTPSがtrueの場合のみ送信します。
func SecurityHeaders(isHTTPS bool, csp string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=(), payment=()")
		if csp != "" {
			h.Set("Content-Security-Policy", csp)
		}
		if isHTTPS {
			h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		c.Next()
	}
}
