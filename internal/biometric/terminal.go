package biometric

import (
	"context"
	"crypto/subtle"
	"fmt"
	"os"

	"golang.org/x/term"
)

// TerminalGate challenges the operator with a hidden passphrase prompt on
// the controlling terminal. It stands in for a platform biometric sensor on
// desktops and dev machines.
type TerminalGate struct {
	passphrase []byte
}

// NewTerminalGate creates a gate that accepts the given passphrase.
// The passphrase is copied; the caller should zero its own slice after use.
func NewTerminalGate(passphrase []byte) *TerminalGate {
	pass := make([]byte, len(passphrase))
	copy(pass, passphrase)
	return &TerminalGate{passphrase: pass}
}

// Capability reports availability based on whether stdin is a terminal.
func (g *TerminalGate) Capability() Capability {
	available := term.IsTerminal(int(os.Stdin.Fd()))
	return Capability{
		IsAvailable:   available,
		BiometricType: TypePassphrase,
		IsEnrolled:    available && len(g.passphrase) > 0,
	}
}

// Authenticate prompts for the passphrase without echoing and compares it in
// constant time. A wrong passphrase is a refusal, not an error.
func (g *TerminalGate) Authenticate(ctx context.Context, prompt string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, fmt.Errorf("stdin is not a terminal: cannot prompt for confirmation")
	}

	fmt.Fprintf(os.Stderr, "%s\nPassphrase: ", prompt)
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return false, fmt.Errorf("failed to read passphrase: %w", err)
	}
	defer clear(raw)

	return subtle.ConstantTimeCompare(raw, g.passphrase) == 1, nil
}
