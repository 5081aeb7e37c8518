package cache

import (
	"context"
	"portfolio-server/pkg/xerrors"
	"time"
)

// DefaultTTL is one day.
const DefaultTTL = 24 * time.Hour

// ErrKeyNotFound matches errors returned for keys that were never added.
var ErrKeyNotFound = xerrors.Sentinel(xerrors.KindKeyNotFound)

// Cache stores values with a creation time and a time-to-live.
//
// Expiry is advisory: expired entries stay readable until they are
// overwritten, so callers decide when to refresh.
type Cache interface {
	// Add stores value under key, overwriting any existing entry.
	Add(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Contains reports whether key was added. Expiry is ignored.
	Contains(ctx context.Context, key string) (bool, error)
	// IsExpired reports whether the entry's ttl has elapsed.
	IsExpired(ctx context.Context, key string) (bool, error)
	// Get returns the stored value whether expired or not.
	Get(ctx context.Context, key string) ([]byte, error)
	// GetOrNil is like Get but returns nil for missing keys.
	GetOrNil(ctx context.Context, key string) ([]byte, error)
	// TimeDelta returns the time elapsed since the entry was last written.
	TimeDelta(ctx context.Context, key string) (time.Duration, error)
	Destroy()
}

type CacheFactory interface {
	NewKvCache() Cache
}

type entry struct {
	value     []byte
	createdAt time.Time
	ttl       time.Duration
}

func (e entry) isExpired(now time.Time) bool {
	return now.Sub(e.createdAt) >= e.ttl
}

func keyNotFound(key string) error {
	return xerrors.Newf(xerrors.KindKeyNotFound, "cache key %q not found", key)
}

type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now, e.g. to simulate time in tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func newOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, f := range opts {
		f(&o)
	}
	return o
}
