// Package ratelimiter は固定ウィンドウ方式のリクエスト数制限を提供します。
package ratelimiter

import (
	"sync"
	"time"
)

// sweepThreshold を超えるキーを保持したら期限切れのウィンドウを掃除します。
const sweepThreshold = 10000

type window struct {
	count     int
	lastReset time.Time
}

// RateLimiter はキー（クライアントIPなど）ごとにinterval内のリクエスト数をlimitまでに制限します。
type RateLimiter struct {
	limit    int           // interval あたりの上限
	interval time.Duration // どの単位でリセットするか
	now      func() time.Time

	mu      sync.Mutex
	windows map[string]*window
}

// NewRateLimiter はRateLimiterを生成します。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:    limit,
		interval: interval,
		now:      time.Now,
		windows:  make(map[string]*window),
	}
}

// Allow はkeyのリクエストを1件数え、上限内ならtrueを返します。
// 上限を超えた場合は、ウィンドウがリセットされるまでの待ち時間を返します。
func (rl *RateLimiter) Allow(key string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.windows[key]
	if !ok || now.Sub(w.lastReset) >= rl.interval {
		if !ok && len(rl.windows) >= sweepThreshold {
			rl.sweep(now)
		}
		w = &window{lastReset: now}
		rl.windows[key] = w
	}

	w.count++
	if w.count > rl.limit {
		return false, rl.interval - now.Sub(w.lastReset)
	}
	return true, 0
}

// sweep は期限切れのウィンドウを削除します。呼び出し側でロックを保持していること。
func (rl *RateLimiter) sweep(now time.Time) {
	for k, w := range rl.windows {
		if now.Sub(w.lastReset) >= rl.interval {
			delete(rl.windows, k)
		}
	}
}
