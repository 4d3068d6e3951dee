package usecase

import "time"

const (
	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour

	// RecentPostingsCacheTTL is how long the recent-postings dashboard
	// query is cached per source.
	RecentPostingsCacheTTL = 30 * time.Second

	// DefaultRecentPostings is the default page size for recent postings.
	DefaultRecentPostings = 10
)
