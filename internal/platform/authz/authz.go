// Package authz は管理者専用ルートを保護します。
//
// RequireAuthenticatedとRequireAdminは別々のチェックです。前者は匿名リクエストを401で、
// 後者は管理者以外を403で拒否します。
package authz

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"blog_backend/internal/feature/auth/domain"
	"blog_backend/internal/platform/http/view"
	"blog_backend/internal/platform/identity"
)

// RequireAuthenticated は匿名リクエストを401で拒否します。
func RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := domain.RequireIdentity(identity.FromContext(c)); err != nil {
			view.Error(c, http.StatusUnauthorized)
			return
		}
		c.Next()
	}
}

// RequireAdmin は記事を管理できないリクエストを拒否します。
// 識別情報がない場合も401を返すため、単独で使っても安全です。
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := identity.FromContext(c)
		err := domain.CanManagePosts(user)
		switch {
		case err == nil:
			c.Next()
		case errors.Is(err, domain.ErrUnauthenticated):
			view.Error(c, http.StatusUnauthorized)
		default:
			slog.Warn("admin route denied", "user_id", user.ID, "path", c.FullPath(), "remote_addr", c.ClientIP())
			view.Error(c, http.StatusForbidden)
		}
	}
}

// StatusFor はゲートのエラーをHTTPステータスに変換します。
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
