package ratelimit

import "time"

type RateLimitConfig struct {
	RequestsPerMinute int
	RequestsPerHour   int
	RequestsPerDay    int
}

// LoginLimit bounds credential-guessing on the login endpoint.
var LoginLimit = RateLimitConfig{
	RequestsPerMinute: 10,
	RequestsPerHour:   60,
}

type RateLimiter interface {
	Allow(key string, config RateLimitConfig) (bool, error)
	GetRemaining(key string, window time.Duration) (int64, error)
	Reset(key string) error
}
