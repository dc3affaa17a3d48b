package common

import (
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	// RedactedMarker replaces secret fields in audit subjects.
	RedactedMarker = "[redacted]"

	maskVisible = 4 // hex chars kept at each end of a masked address
)

// MaskAddress partially masks an address for audit output, keeping the first
// and last 4 hex chars visible. Example: 0x9858...da94.
// Anything that does not look like a 0x-hex address is fully redacted.
func MaskAddress(address string) string {
	if !strings.HasPrefix(address, "0x") {
		return RedactedMarker
	}
	body := address[2:]
	if len(body) < maskVisible*2 || !isHex(body) {
		return RedactedMarker
	}
	return fmt.Sprintf("0x%s...%s", body[:maskVisible], body[len(body)-maskVisible:])
}

// ParsePrivateKeyHex decodes a 32-byte private key from hex. The 0x prefix
// is optional. Returns an error for any other length or non-hex input.
func ParsePrivateKeyHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "0x")
	if len(s) != 64 {
		return nil, fmt.Errorf("private key must be 32 bytes hex, got %d chars", len(s))
	}
	key, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex: %w", err)
	}
	return key, nil
}

// NormalizeMnemonic collapses whitespace so validation and derivation see the
// same canonical phrase.
func NormalizeMnemonic(words string) string {
	return strings.Join(strings.Fields(words), " ")
}

func isHex(s string) bool {
	_, err := hex.DecodeString(s)
	return err == nil
}
