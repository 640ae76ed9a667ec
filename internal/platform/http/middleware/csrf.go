// Package middleware はすべてのルートに適用するginミドルウェアをまとめます。
package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"blog_backend/internal/platform/http/view"
)

const (
	// CSRFCookie はダブルサブミット用のトークンを保持します。
	CSRFCookie = "blog_csrf"
	// CSRFField は状態を変更するフォームが返送すべきフィールド名です。
	CSRFField = "csrf_token"
	// CSRFHeader はフォームフィールドの代わりに受け付けるヘッダーです。
	CSRFHeader = "X-CSRF-Token"

	csrfTokenBytes = 32
)

// CSRF は安全でないメソッドにダブルサブミットトークンを要求し、
// view.CSRFTokenを通じてテンプレートにトークンを渡します。
func CSRF(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CSRFCookie)
		if err != nil || token == "" {
			token, err = generateCSRFToken()
			if err != nil {
				slog.Error("failed to generate csrf token", "error", err)
				view.Error(c, http.StatusInternalServerError)
				return
			}
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(CSRFCookie, token, 0, "/", "", secure, true)
		}
		view.SetCSRFToken(c, token)

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		submitted := c.GetHeader(CSRFHeader)
		if submitted == "" {
			submitted = c.PostForm(CSRFField)
		}
		if !validCSRFToken(token, submitted) {
			slog.Warn("csrf token mismatch", "path", c.Request.URL.Path, "remote_addr", c.ClientIP())
			view.Error(c, http.StatusForbidden)
			return
		}
		c.Next()
	}
}

// RequireCSRFQuery は状態を変更するGETルートを保護します。トークンはCSRFFieldの
// クエリパラメータで受け取ります。CSRFの後に配置する必要があります。
func RequireCSRFQuery() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !validCSRFToken(view.CSRFToken(c), c.Query(CSRFField)) {
			slog.Warn("csrf token mismatch", "path", c.Request.URL.Path, "remote_addr", c.ClientIP())
			view.Error(c, http.StatusForbidden)
			return
		}
		c.Next()
	}
}

func generateCSRFToken() (string, error) {
	b := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func validCSRFToken(cookieToken, formToken string) bool {
	if cookieToken == "" || formToken == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(cookieToken), []byte(formToken)) == 1
}
