// Package middleware holds the gin middleware shared across routes.
package middleware

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	pkgLog "inventory-assistant/pkg/log"
)

const (
	limiterCacheCap = 4096
	limiterCacheTTL = 10 * time.Minute
)

// RateLimitConfig bounds how fast one caller may run assistant turns.
type RateLimitConfig struct {
	RequestsPerMinute int
	Burst             int
}

type Middleware struct {
	l        pkgLog.Logger
	rlConfig RateLimitConfig
	limiters *expirable.LRU[string, *rate.Limiter]
}

func New(l pkgLog.Logger, rlConfig RateLimitConfig) Middleware {
	if rlConfig.RequestsPerMinute <= 0 {
		rlConfig.RequestsPerMinute = 20
	}
	if rlConfig.Burst <= 0 {
		rlConfig.Burst = 5
	}
	return Middleware{
		l:        l,
		rlConfig: rlConfig,
		limiters: expirable.NewLRU[string, *rate.Limiter](limiterCacheCap, nil, limiterCacheTTL),
	}
}
