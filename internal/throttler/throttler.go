// Package throttler limits how often an action may start for the same key.
package throttler

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// Throttler ...
type Throttler interface {
	// Acquire reserves the key for the period. It returns false if the key is already reserved.
	Acquire(key string) bool
	// Release frees the key before the period ends.
	Release(key string)
	// Remaining returns how long the key stays reserved.
	Remaining(key string) time.Duration
}

type throttler struct {
	c *cache.Cache

	now func() time.Time
}

// New returns a new instance of Throttler.
func New(period time.Duration) Throttler {
	return &throttler{
		c:   cache.New(period, time.Hour),
		now: time.Now,
	}
}

// Acquire ...
func (t *throttler) Acquire(key string) bool {
	return t.c.Add(key, struct{}{}, cache.DefaultExpiration) == nil
}

// Release ...
func (t *throttler) Release(key string) {
	t.c.Delete(key)
}

// Remaining ...
func (t *throttler) Remaining(key string) time.Duration {
	_, exp, ok := t.c.GetWithExpiration(key)
	if !ok || exp.IsZero() {
		return 0
	}

	if d := exp.Sub(t.now()); d > 0 {
		return d
	}
	return 0
}
