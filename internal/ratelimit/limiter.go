// Package ratelimit guards sensitive export paths with a per-operation-class
// sliding window and cooldown.
package ratelimit

import (
	"math"
	"sync"
	"time"

	"walletkit/internal/walleterr"
)

// OpClass identifies a guarded operation class.
type OpClass string

const (
	OpExportMnemonic   OpClass = "exportMnemonic"
	OpExportPrivateKey OpClass = "exportPrivateKey"
)

// Policy holds the window parameters for every operation class.
type Policy struct {
	Window      time.Duration // sliding window W
	MaxAttempts int           // attempts N admitted within W
	Cooldown    time.Duration // refusal duration D after exceeding N
}

// DefaultPolicy is the reference policy: 3 attempts per 60s, 300s cooldown.
func DefaultPolicy() Policy {
	return Policy{
		Window:      60 * time.Second,
		MaxAttempts: 3,
		Cooldown:    300 * time.Second,
	}
}

type classState struct {
	attempts      []time.Time
	cooldownUntil time.Time
}

// Limiter tracks attempts per operation class. Every call to Admit counts as
// an attempt, whether or not the guarded operation later succeeds.
//
// Timestamps come from time.Now (or the injected clock), whose monotonic
// reading makes elapsed-time comparison immune to wall-clock rollback, so a
// clock change cannot end a cooldown early.
type Limiter struct {
	mu      sync.Mutex
	policy  Policy
	now     func() time.Time
	classes map[OpClass]*classState
}

// New creates a limiter with the given policy.
func New(policy Policy) *Limiter {
	return NewWithClock(policy, time.Now)
}

// NewWithClock creates a limiter with an injected clock, used by tests.
func NewWithClock(policy Policy, now func() time.Time) *Limiter {
	return &Limiter{
		policy:  policy,
		now:     now,
		classes: make(map[OpClass]*classState),
	}
}

// Admit decides whether one more call of the given class may proceed.
// Returns nil when admitted, or *walleterr.RateLimitedError carrying the
// seconds until the class reopens. Refusals are terminal until the cooldown
// elapses; calls are never queued.
func (l *Limiter) Admit(class OpClass) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	st := l.classes[class]
	if st == nil {
		st = &classState{}
		l.classes[class] = st
	}

	now := l.now()

	// Cooled down: refuse until D elapses, then reset the window.
	if !st.cooldownUntil.IsZero() {
		if now.Before(st.cooldownUntil) {
			return l.refused(class, st.cooldownUntil.Sub(now))
		}
		st.cooldownUntil = time.Time{}
		st.attempts = st.attempts[:0]
	}

	// Drop attempts that slid out of the window.
	kept := st.attempts[:0]
	for _, t := range st.attempts {
		if now.Sub(t) < l.policy.Window {
			kept = append(kept, t)
		}
	}
	st.attempts = kept

	if len(st.attempts) >= l.policy.MaxAttempts {
		st.cooldownUntil = now.Add(l.policy.Cooldown)
		st.attempts = st.attempts[:0]
		return l.refused(class, l.policy.Cooldown)
	}

	st.attempts = append(st.attempts, now)
	return nil
}

func (l *Limiter) refused(class OpClass, remaining time.Duration) error {
	secs := int(math.Ceil(remaining.Seconds()))
	if secs < 1 {
		secs = 1
	}
	return &walleterr.RateLimitedError{
		OpClass:           string(class),
		RetryAfterSeconds: secs,
	}
}
