package audit

import (
	"testing"
	"time"

	"walletkit/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const testAddress = "0x9858EfFD232B4033E47d90003D41EC34EcaEda94"

func TestEmitMasksSubject(t *testing.T) {
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	r := NewRecorderWithClock(nil, func() time.Time { return at })

	r.Emit(WalletCreated, testAddress)

	events := r.Events()
	require.Len(t, events, 1)
	ev := events[0]
	assert.NotEmpty(t, ev.ID)
	assert.Equal(t, WalletCreated, ev.Kind)
	assert.Equal(t, at, ev.Timestamp)
	assert.Equal(t, "0x9858...da94", ev.MaskedSubject)
}

func TestEmitRedactsNonAddressSubjects(t *testing.T) {
	r := NewRecorder(nil)

	r.Emit(ExportFailed, "legal winner thank year wave")

	events := r.Events()
	require.Len(t, events, 1)
	assert.Equal(t, common.RedactedMarker, events[0].MaskedSubject)
}

func TestEventsAreOrderedAndDistinct(t *testing.T) {
	r := NewRecorder(nil)

	r.Emit(ExportAttempted, testAddress)
	r.Emit(ExportSucceeded, testAddress)

	events := r.Events()
	require.Len(t, events, 2)
	assert.Equal(t, ExportAttempted, events[0].Kind)
	assert.Equal(t, ExportSucceeded, events[1].Kind)
	assert.NotEqual(t, events[0].ID, events[1].ID)
}

func TestEventsReturnsSnapshot(t *testing.T) {
	r := NewRecorder(nil)
	r.Emit(WalletDeleted, testAddress)

	snap := r.Events()
	r.Emit(WalletDisconnected, testAddress)
	assert.Len(t, snap, 1)
	assert.Len(t, r.Events(), 2)
}

func TestEmitMirrorsToLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := NewRecorder(zap.New(core))

	r.Emit(WalletImported, testAddress)

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "0x9858...da94", fields["subject"])
	assert.Equal(t, string(WalletImported), fields["kind"])
	assert.NotContains(t, entries[0].Message, testAddress)
}
