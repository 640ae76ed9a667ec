package jwtmw

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"blog_backend/internal/feature/auth/domain/entity"
	"blog_backend/internal/feature/auth/usecase"
	"blog_backend/internal/platform/http/view"
	"blog_backend/internal/platform/identity"
)

// IdentityResolver はセッションIDをユーザーに対応付けます。
type IdentityResolver interface {
	Resolve(ctx context.Context, sessionID string) (*entity.User, error)
}

// LoadIdentity はリクエストごとに一度セッションCookieを解決し、identity.Setでユーザーを保存します。
// 有効なセッションがないリクエストは匿名のまま続行します。
// ユーザーが既に存在しないセッションの場合は404でリクエストを終了します。
func LoadIdentity(resolver IdentityResolver, cookie *SessionCookie) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, present := c.Request.Header["Cookie"]; !present {
			c.Next()
			return
		}

		sid, ok := cookie.Read(c)
		if !ok {
			if _, err := c.Cookie(CookieName); err == nil {
				// 改ざん、または以前の鍵で署名されたもの
				cookie.Clear(c)
			}
			c.Next()
			return
		}

		user, err := resolver.Resolve(c.Request.Context(), sid)
		switch {
		case err == nil:
			identity.Set(c, user)
		case errors.Is(err, usecase.ErrSessionNotFound):
			cookie.Clear(c)
		case errors.Is(err, usecase.ErrUserNotFound):
			slog.Warn("session references missing user", "remote_addr", c.ClientIP())
			cookie.Clear(c)
			view.Error(c, http.StatusNotFound)
			return
		default:
			slog.Error("failed to resolve session", "error", err, "remote_addr", c.ClientIP())
			view.Error(c, http.StatusInternalServerError)
			return
		}
		c.Next()
	}
}
