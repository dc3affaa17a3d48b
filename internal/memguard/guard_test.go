package memguard

import (
	"testing"
	"time"

	"walletkit/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestGetReturnsCopyOfStoredMaterial(t *testing.T) {
	clock := newFakeClock()
	g := NewWithClock(DefaultThreshold, clock.now)

	g.Set(model.NewMnemonicMaterial("legal winner thank year wave"))

	got, ok := g.Get()
	require.True(t, ok)
	assert.Equal(t, model.KindMnemonic, got.Kind)
	assert.Equal(t, "legal winner thank year wave", string(got.Secret))

	// Zeroing the returned copy must not corrupt the slot.
	got.Zero()
	again, ok := g.Get()
	require.True(t, ok)
	assert.Equal(t, "legal winner thank year wave", string(again.Secret))
}

func TestGetMissesWhenEmpty(t *testing.T) {
	g := NewWithClock(DefaultThreshold, newFakeClock().now)
	_, ok := g.Get()
	assert.False(t, ok)
}

func TestStaleSlotPurgedOnAccess(t *testing.T) {
	clock := newFakeClock()
	g := NewWithClock(DefaultThreshold, clock.now)

	g.Set(model.NewRawKeyMaterial([]byte{1, 2, 3}))

	clock.advance(DefaultThreshold + time.Second)
	_, ok := g.Get()
	assert.False(t, ok)
	assert.Nil(t, g.slot)
}

func TestAccessAtThresholdStillFresh(t *testing.T) {
	clock := newFakeClock()
	g := NewWithClock(DefaultThreshold, clock.now)

	g.Set(model.NewRawKeyMaterial([]byte{1, 2, 3}))

	clock.advance(DefaultThreshold)
	_, ok := g.Get()
	assert.True(t, ok)
}

func TestTouchRefreshesAccessTime(t *testing.T) {
	clock := newFakeClock()
	g := NewWithClock(DefaultThreshold, clock.now)

	g.Set(model.NewRawKeyMaterial([]byte{1, 2, 3}))

	clock.advance(4 * time.Minute)
	g.Touch()
	clock.advance(4 * time.Minute)

	// 8 minutes since Set but only 4 since the last touch.
	_, ok := g.Get()
	assert.True(t, ok)
}

func TestPurgeZeroizesSecretBytes(t *testing.T) {
	clock := newFakeClock()
	g := NewWithClock(DefaultThreshold, clock.now)

	g.Set(model.NewRawKeyMaterial([]byte{9, 9, 9, 9}))
	secret := g.slot.material.Secret

	g.PurgeNow()
	assert.Nil(t, g.slot)
	for i, b := range secret {
		assert.Zero(t, b, "byte %d survived the purge", i)
	}
}

func TestSetOverwritesPreviousSlot(t *testing.T) {
	clock := newFakeClock()
	g := NewWithClock(DefaultThreshold, clock.now)

	g.Set(model.NewMnemonicMaterial("first"))
	old := g.slot.material.Secret
	g.Set(model.NewMnemonicMaterial("second"))

	for i, b := range old {
		assert.Zero(t, b, "byte %d of replaced material survived", i)
	}
	got, ok := g.Get()
	require.True(t, ok)
	assert.Equal(t, "second", string(got.Secret))
}

func TestPurgeIfStaleReportsOutcome(t *testing.T) {
	clock := newFakeClock()
	g := NewWithClock(DefaultThreshold, clock.now)

	assert.False(t, g.PurgeIfStale())

	g.Set(model.NewRawKeyMaterial([]byte{1}))
	assert.False(t, g.PurgeIfStale())

	clock.advance(DefaultThreshold + time.Millisecond)
	assert.True(t, g.PurgeIfStale())
	assert.False(t, g.PurgeIfStale())
}

func TestSweeperPurgesInBackground(t *testing.T) {
	g := New(10 * time.Millisecond)
	g.Set(model.NewRawKeyMaterial([]byte{1, 2, 3}))

	stop := g.StartSweeper(5 * time.Millisecond)
	defer stop()

	deadline := time.After(time.Second)
	for {
		g.mu.Lock()
		empty := g.slot == nil
		g.mu.Unlock()
		if empty {
			return
		}
		select {
		case <-deadline:
			t.Fatal("sweeper never purged the stale slot")
		case <-time.After(5 * time.Millisecond):
		}
	}
}
