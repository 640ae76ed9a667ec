// Package ratelimiter は固定ウィンドウ方式でキーごとの操作回数を制限します。
package ratelimiter

import (
	"sync"
	"time"
)

// Limiter は、キー（クライアントIPなど）ごとの操作頻度を判定するインターフェースです。
type Limiter interface {
	Allow(key string) bool
}

type window struct {
	count     int
	lastReset time.Time
}

// RateLimiter は interval ごとに limit 回までの操作をキー単位で許可します。
type RateLimiter struct {
	limit    int           // interval あたりの上限
	interval time.Duration // どの単位でリセットするか
	now      func() time.Time

	mu      sync.Mutex
	windows map[string]*window
}

var _ Limiter = (*RateLimiter)(nil)

// NewRateLimiter は新しいRateLimiterのインスタンスを生成します。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:    limit,
		interval: interval,
		now:      time.Now,
		windows:  make(map[string]*window),
	}
}

// Allow は key の現在のウィンドウに空きがあれば true を返してカウントします。
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.windows[key]
	// interval を過ぎたらカウントリセット
	if !ok || now.Sub(w.lastReset) >= rl.interval {
		w = &window{lastReset: now}
		rl.windows[key] = w
		rl.sweep(now)
	}

	if w.count >= rl.limit {
		return false
	}
	w.count++
	return true
}

// sweep は期限切れのウィンドウを削除してメモリの増加を防ぎます。
func (rl *RateLimiter) sweep(now time.Time) {
	for k, w := range rl.windows {
		if now.Sub(w.lastReset) >= rl.interval {
			delete(rl.windows, k)
		}
	}
}
