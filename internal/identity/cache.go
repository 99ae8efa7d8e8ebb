package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
)

// DefaultCacheTTL bounds how long a verified token is trusted without
// asking the underlying verifier again.
const DefaultCacheTTL = 2 * time.Minute

// CachedVerifier remembers successful verifications for a short TTL.
// Failures are never cached.
type CachedVerifier struct {
	next  Verifier
	cache *ristretto.Cache
	ttl   time.Duration
}

// NewCachedVerifier wraps next with a TTL cache.
func NewCachedVerifier(next Verifier, ttl time.Duration) (*CachedVerifier, error) {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10_000,
		MaxCost:     1_000,
		BufferItems: 64,
		// Each entry costs 1, so MaxCost is an entry count.
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("creating token cache: %w", err)
	}
	return &CachedVerifier{next: next, cache: cache, ttl: ttl}, nil
}

// Verify implements Verifier.
func (c *CachedVerifier) Verify(ctx context.Context, token string) (Identity, error) {
	if token == "" {
		return Identity{}, ErrMissingToken
	}
	if v, ok := c.cache.Get(token); ok {
		if id, ok := v.(Identity); ok {
			return id, nil
		}
	}

	id, err := c.next.Verify(ctx, token)
	if err != nil {
		return Identity{}, err
	}
	c.cache.SetWithTTL(token, id, 1, c.ttl)
	return id, nil
}

// Close releases the cache's background goroutines.
func (c *CachedVerifier) Close() {
	c.cache.Close()
}
