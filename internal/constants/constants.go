package constants

import "time"

var CacheTTL = struct {
	TrendingBatch time.Duration
}{
	TrendingBatch: 10 * time.Minute,
}

// YouTube Data API quota accounting. videos.list costs 1 unit per call; the
// daily project budget is 10000 units, reset at midnight Pacific.
var YouTubeQuota = struct {
	DailyLimit   int
	VideosCost   int
	SafetyMargin int
}{
	DailyLimit:   10000,
	VideosCost:   1,
	SafetyMargin: 500,
}

// Snapshot inserts are the only Postgres traffic, so the pool stays small.
var PostgresPool = struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnectTimeout  time.Duration
}{
	MaxOpenConns:    10,
	MaxIdleConns:    2,
	ConnMaxLifetime: 30 * time.Minute,
	ConnectTimeout:  5 * time.Second,
}

var RequestTimeouts = struct {
	TrendingFetch time.Duration
	Generation    time.Duration
	Snapshot      time.Duration
}{
	TrendingFetch: 15 * time.Second,
	Generation:    60 * time.Second,
	Snapshot:      5 * time.Second,
}

var CircuitBreakerConfig = struct {
	FailureThreshold    int
	ResetTimeout        time.Duration
	RateLimitTimeout    time.Duration
	HealthCheckInterval time.Duration
}{
	FailureThreshold:    3,
	ResetTimeout:        60 * time.Second,
	RateLimitTimeout:    5 * time.Minute,
	HealthCheckInterval: 60 * time.Second,
}

var PromptLimits = struct {
	MaxTitleRunes int
	MaxKeywords   int
	MaxCategories int
}{
	MaxTitleRunes: 90,
	MaxKeywords:   10,
	MaxCategories: 6,
}
