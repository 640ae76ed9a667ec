// Package redis はセッションストアとして任意で使うRedisサーバーに接続します。
package redis

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"blog_backend/internal/platform/config"
)

// ErrDisabled はRedisのホストが設定されていない場合に返されます。
var ErrDisabled = errors.New("redis is not configured")

const pingTimeout = 3 * time.Second

// NewRedisClient はcfgに接続し、PINGで疎通を確認します。
func NewRedisClient(ctx context.Context, cfg config.Redis) (*redis.Client, error) {
	addr := cfg.Addr()
	if addr == "" {
		return nil, ErrDisabled
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       0,
	})

	// 接続確認
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Error("Redis connection failed", "address", addr, "error", err)
		_ = rdb.Close()
		return nil, err
	}

	slog.Info("Redis connection successful", "address", addr)
	return rdb, nil
}
