package cache

import (
	"log/slog"
	"time"
)

// DefaultTTL はキャッシュエントリの既定の有効期間です。
const DefaultTTL = 5 * time.Minute

// ParseTTL は CACHE_TTL 形式（例: "90s", "10m"）の値を解釈します。
// 空または不正な値、0以下の値の場合は DefaultTTL を返します。
func ParseTTL(value string) time.Duration {
	if value == "" {
		return DefaultTTL
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		slog.Warn("invalid CACHE_TTL, using default", "value", value, "default", DefaultTTL)
		return DefaultTTL
	}
	return d
}
