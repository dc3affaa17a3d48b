// Package walleterr defines the error kinds surfaced by the credential
// lifecycle. Validation errors are detected before any storage mutation;
// storage errors are surfaced verbatim, never swallowed. No error message
// may embed secret material.
package walleterr

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMnemonic: checksum or wordlist validation failed.
	ErrInvalidMnemonic = errors.New("invalid mnemonic")
	// ErrInvalidPrivateKey: malformed input or not a valid curve scalar.
	ErrInvalidPrivateKey = errors.New("invalid private key")
	// ErrEntropyUnavailable: no secure random source is reachable.
	ErrEntropyUnavailable = errors.New("entropy source unavailable")
	// ErrAlreadyExists: a stored credential record already exists and
	// overwriting must be an explicit caller decision.
	ErrAlreadyExists = errors.New("wallet already exists")
	// ErrBiometricFailed: the biometric challenge was refused. Terminal per
	// call; the caller may re-invoke.
	ErrBiometricFailed = errors.New("biometric authentication failed")
	// ErrNotFound: no stored credential record exists.
	ErrNotFound = errors.New("wallet not found")
)

// RateLimitedError is returned when a sensitive operation class is refused.
// It carries enough structure for the caller to build UI messaging.
type RateLimitedError struct {
	OpClass           string
	RetryAfterSeconds int
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited: %s refused, retry after %ds", e.OpClass, e.RetryAfterSeconds)
}

// IsRateLimited checks if error is a RateLimitedError.
func IsRateLimited(err error) bool {
	var rl *RateLimitedError
	return errors.As(err, &rl)
}

// StorageError wraps failures from the secure persistence backend. Retries,
// if any, belong to the backend, not to the lifecycle manager.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsStorage checks if error is a StorageError.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
