// Package memguard caches decrypted key material in memory and bounds the
// exposure window with an inactivity threshold.
package memguard

import (
	"sync"
	"time"

	"walletkit/internal/model"
)

// DefaultThreshold is the reference inactivity limit before a purge.
const DefaultThreshold = 5 * time.Minute

type entry struct {
	material       model.KeyMaterial
	lastAccessedAt time.Time
}

// Guard is a single-slot cache with explicit overwrite-on-purge. Staleness
// is evaluated lazily on every access as the ground truth; a periodic sweep
// is a best-effort proactive trigger on top.
type Guard struct {
	mu        sync.Mutex
	slot      *entry
	threshold time.Duration
	now       func() time.Time
}

// New creates a guard with the given inactivity threshold.
func New(threshold time.Duration) *Guard {
	return NewWithClock(threshold, time.Now)
}

// NewWithClock creates a guard with an injected clock, used by tests.
func NewWithClock(threshold time.Duration, now func() time.Time) *Guard {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Guard{threshold: threshold, now: now}
}

// Get returns a copy of the cached material and true, or a zero value and
// false when the cache is empty or went stale. A stale slot is purged before
// reporting a miss; a hit refreshes the access time.
func (g *Guard) Get() (model.KeyMaterial, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.purgeIfStaleLocked()
	if g.slot == nil {
		return model.KeyMaterial{}, false
	}

	g.slot.lastAccessedAt = g.now()
	return g.slot.material.Clone(), true
}

// Set stores a copy of the material and resets the access time. Any previous
// slot content is overwritten first.
func (g *Guard) Set(material model.KeyMaterial) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.purgeLocked()
	g.slot = &entry{
		material:       material.Clone(),
		lastAccessedAt: g.now(),
	}
}

// Touch refreshes the access time on a legitimate access.
func (g *Guard) Touch() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.slot != nil {
		g.slot.lastAccessedAt = g.now()
	}
}

// PurgeIfStale overwrites and empties the slot if it exceeded the inactivity
// threshold. Returns true if a purge happened.
func (g *Guard) PurgeIfStale() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.purgeIfStaleLocked()
}

// PurgeNow overwrites and empties the slot immediately. Used on delete and
// disconnect.
func (g *Guard) PurgeNow() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.purgeLocked()
}

// StartSweeper runs the periodic purge check until the returned stop
// function is called. No caller-facing operation ever waits on the ticker.
func (g *Guard) StartSweeper(interval time.Duration) (stop func()) {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				g.PurgeIfStale()
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
	}
}

func (g *Guard) purgeIfStaleLocked() bool {
	if g.slot == nil {
		return false
	}
	if g.now().Sub(g.slot.lastAccessedAt) <= g.threshold {
		return false
	}
	g.purgeLocked()
	return true
}

// purgeLocked actively overwrites the secret bytes before dropping the slot.
func (g *Guard) purgeLocked() {
	if g.slot == nil {
		return
	}
	g.slot.material.Zero()
	g.slot = nil
}
