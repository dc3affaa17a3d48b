// Package audit records security-relevant lifecycle actions. Subjects are
// masked before they enter an event; secret fields never do.
package audit

import (
	"sync"
	"time"

	"walletkit/internal/common"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Kind names a security-relevant action.
type Kind string

const (
	WalletCreated      Kind = "WalletCreated"
	WalletRecovered    Kind = "WalletRecovered"
	WalletImported     Kind = "WalletImported"
	WalletDeleted      Kind = "WalletDeleted"
	WalletDisconnected Kind = "WalletDisconnected"
	ExportAttempted    Kind = "ExportAttempted"
	ExportSucceeded    Kind = "ExportSucceeded"
	ExportFailed       Kind = "ExportFailed"
)

// Event is a structured, secret-redacted record of one action.
type Event struct {
	ID            string    `json:"id"`
	Kind          Kind      `json:"kind"`
	Timestamp     time.Time `json:"timestamp"`
	MaskedSubject string    `json:"maskedSubject"`
}

// Recorder keeps emitted events in memory and mirrors them to the logger.
type Recorder struct {
	mu     sync.Mutex
	logger *zap.Logger
	now    func() time.Time
	events []Event
}

// NewRecorder creates a recorder. A nil logger disables log mirroring.
func NewRecorder(logger *zap.Logger) *Recorder {
	return NewRecorderWithClock(logger, time.Now)
}

// NewRecorderWithClock creates a recorder with an injected clock, used by tests.
func NewRecorderWithClock(logger *zap.Logger, now func() time.Time) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{logger: logger, now: now}
}

// Emit records one event. subject is an address or other identifier and is
// masked here; callers must never pass secret material.
func (r *Recorder) Emit(kind Kind, subject string) {
	masked := common.MaskAddress(subject)
	ev := Event{
		ID:            uuid.NewString(),
		Kind:          kind,
		Timestamp:     r.now(),
		MaskedSubject: masked,
	}

	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()

	r.logger.Info("audit event",
		zap.String("event_id", ev.ID),
		zap.String("kind", string(ev.Kind)),
		zap.String("subject", ev.MaskedSubject),
	)
}

// Events returns a snapshot of all recorded events, oldest first.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}
