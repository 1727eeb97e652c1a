package ratelimit

import (
	"context"
	"time"
)

// Store holds fixed-window counters.
// Hit increments key's counter, opening a new window of length window when
// none is active, and returns the count and the window's reset time.
type Store interface {
	Hit(ctx context.Context, key string, window time.Duration) (count int64, resetAt time.Time, err error)
}
