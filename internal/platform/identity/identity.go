// Package identity はginのリクエスト内で現在のユーザーを受け渡します。
package identity

import (
	"github.com/gin-gonic/gin"

	"blog_backend/internal/feature/auth/domain/entity"
)

const contextKey = "identity.user"

// Set は認証済みユーザーをリクエストの残りの処理のために保存します。
func Set(c *gin.Context, u *entity.User) {
	c.Set(contextKey, u)
}

// FromContext は認証済みユーザーを返します。匿名リクエストではnilです。
func FromContext(c *gin.Context) *entity.User {
	v, ok := c.Get(contextKey)
	if !ok {
		return nil
	}
	u, _ := v.(*entity.User)
	return u
}
