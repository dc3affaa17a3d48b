// Package biometric defines the yes/no authentication challenge guarding
// sensitive operations, with a terminal stand-in for environments without a
// platform sensor.
package biometric

import "context"

// Type names the authentication mechanism behind a gate.
type Type string

const (
	TypeNone        Type = "none"
	TypeFingerprint Type = "fingerprint"
	TypeFace        Type = "face"
	TypePassphrase  Type = "passphrase"
)

// Capability describes what a gate can do on this device.
type Capability struct {
	IsAvailable   bool `json:"isAvailable"`
	BiometricType Type `json:"biometricType"`
	IsEnrolled    bool `json:"isEnrolled"`
}

// Gate issues a pass/fail challenge. A false result is terminal for the
// current call; the caller may re-invoke.
type Gate interface {
	Capability() Capability
	Authenticate(ctx context.Context, prompt string) (bool, error)
}
