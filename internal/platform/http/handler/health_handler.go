// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const healthTimeout = 2 * time.Second

// Pinger はヘルスチェック対象（DBなど）の疎通を確認します。
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc は関数をPingerとして扱うためのアダプタです。
type PingFunc func(ctx context.Context) error

// Ping はf(ctx)を呼び出します。
func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// Health はサービスヘルスチェック用の /healthz ハンドラーを返します。
// - HEAD: 本文なし（DB疎通に失敗した場合は503）
// - OPTIONS: 204（本文なし）
// - その他: {"status":"ok"} または 503 と {"status":"unavailable"}
// いずれのレスポンスもキャッシュを防止します。
func Health(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 明示的にキャッシュを防止
		c.Header("Cache-Control", "no-store")

		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		status, body := http.StatusOK, "ok"
		if err := db.Ping(ctx); err != nil {
			slog.Error("health check failed", "error", err)
			status, body = http.StatusServiceUnavailable, "unavailable"
		}

		if c.Request.Method == http.MethodHead {
			c.Status(status)
			return
		}
		c.JSON(status, gin.H{"status": body})
	}
}
