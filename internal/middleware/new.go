package middleware

import (
	"moving-progress/pkg/log"
)

// Config tunes the middleware set.
type Config struct {
	// RateLimitPerMin is the per-client budget on mutating routes; 0 disables it.
	RateLimitPerMin int
}

type Middleware struct {
	l       log.Logger
	limiter *rateLimiter
}

func New(l log.Logger, cfg Config) Middleware {
	mw := Middleware{l: l}
	if cfg.RateLimitPerMin > 0 {
		mw.limiter = newRateLimiter(cfg.RateLimitPerMin)
	}
	return mw
}
