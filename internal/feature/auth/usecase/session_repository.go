package usecase

import (
	"context"

	"blog_backend/internal/feature/auth/domain/entity"
)

// SessionRepository はセッションエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type SessionRepository interface {
	// Create は新しいセッションをストレージに永続化します。
	Create(ctx context.Context, session *entity.Session) error

	// FindByID はトークン値でセッションを取得します。
	// 存在しない場合はErrSessionNotFoundを返します。
	FindByID(ctx context.Context, id string) (*entity.Session, error)

	// Delete はセッションを削除します。該当がない場合はErrSessionNotFoundを返すことがあり、
	// 呼び出し側はログアウト済みとして扱います。
	Delete(ctx context.Context, id string) error
}
