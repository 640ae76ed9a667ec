// Package di はアプリケーションのコンポーネントを生成する依存性注入用のファクトリを提供します。
package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authadapters "blog_backend/internal/feature/auth/adapters"
	"blog_backend/internal/feature/auth/usecase"
	"blog_backend/internal/platform/session"
)

// NewSessionRepository はSessionRepositoryの実装を生成します。
// Redisが利用可能な場合はRedis実装を返し、
// そうでなければsessionsテーブルを使用します。
func NewSessionRepository(rdb *redis.Client, db *gorm.DB) usecase.SessionRepository {
	if rdb != nil {
		return session.NewSessionRedis(rdb, session.DefaultPrefix)
	}
	return authadapters.NewSessionGorm(db)
}
