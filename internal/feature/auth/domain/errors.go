// Package domain はauthフィーチャーのドメインエラーと認可ポリシーを定義します。
package domain

import (
	"errors"

	"blog_backend/internal/feature/auth/domain/entity"
)

// 認可エラー。「誰か分からない」と「権限がない」を呼び出し側で区別できるよう
// 別々に定義しています。
var (
	// ErrUnauthenticated はリクエストに識別情報がないことを表します。
	ErrUnauthenticated = errors.New("authentication required")

	// ErrForbidden は識別情報に必要なロールがないことを表します。
	ErrForbidden = errors.New("forbidden")
)

// RequireIdentity はuがnilの場合にErrUnauthenticatedを返します。
func RequireIdentity(u *entity.User) error {
	if u == nil {
		return ErrUnauthenticated
	}
	return nil
}

// CanManagePosts は認証を確認したうえで管理者ロールを確認します。
func CanManagePosts(u *entity.User) error {
	if err := RequireIdentity(u); err != nil {
		return err
	}
	if !u.IsAdmin() {
		return ErrForbidden
	}
	return nil
}
