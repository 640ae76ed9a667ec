// Package session はRedisによるセッションストアを提供します。
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"blog_backend/internal/feature/auth/domain/entity"
	"blog_backend/internal/feature/auth/usecase"
)

// DefaultPrefix はセッションキーの名前空間です（"session:<id>"）。
const DefaultPrefix = "session"

// ErrSessionExists はセッションIDが既に使われている場合に返されます。
var ErrSessionExists = errors.New("session id already exists")

// SessionRedis はRedisを使ったusecase.SessionRepositoryの実装です。
// キーにTTLはなく、セッションはログアウトで削除されるまで有効です。
type SessionRedis struct {
	client redis.Cmdable
	prefix string
}

var _ usecase.SessionRepository = (*SessionRedis)(nil)

// record はセッションの保存用JSON形式です。
type record struct {
	UserID    uint      `json:"user_id"`
	UserAgent string    `json:"user_agent,omitempty"`
	IPAddress string    `json:"ip_address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewSessionRedis はSessionRedisの新しいインスタンスを生成します。
// prefixが空の場合はDefaultPrefixを使用します。
func NewSessionRedis(client redis.Cmdable, prefix string) *SessionRedis {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &SessionRedis{
		client: client,
		prefix: prefix,
	}
}

// sessionKey はセッションのRedisキーを返します。
func (r *SessionRedis) sessionKey(id string) string {
	return fmt.Sprintf("%s:%s", r.prefix, id)
}

// Create は新しいセッションをRedisに保存します。既存のIDは上書きしません。
func (r *SessionRedis) Create(ctx context.Context, session *entity.Session) error {
	if session == nil {
		return fmt.Errorf("session must not be nil")
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}

	data, err := json.Marshal(record{
		UserID:    session.UserID,
		UserAgent: session.UserAgent,
		IPAddress: session.IPAddress,
		CreatedAt: session.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ok, err := r.client.SetNX(ctx, r.sessionKey(session.ID), data, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	if !ok {
		return ErrSessionExists
	}
	return nil
}

// FindByID はIDでセッションを取得します。
func (r *SessionRedis) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	data, err := r.client.Get(ctx, r.sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, usecase.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &entity.Session{
		ID:        id,
		UserID:    rec.UserID,
		UserAgent: rec.UserAgent,
		IPAddress: rec.IPAddress,
		CreatedAt: rec.CreatedAt,
	}, nil
}

// Delete はセッションを削除します。該当キーがない場合はusecase.ErrSessionNotFoundを返します。
func (r *SessionRedis) Delete(ctx context.Context, id string) error {
	n, err := r.client.Del(ctx, r.sessionKey(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if n == 0 {
		return usecase.ErrSessionNotFound
	}
	return nil
}
