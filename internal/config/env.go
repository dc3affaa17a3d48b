package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"
)

// Config contains all configuration parameters for the daemon.
// Note: the keystore passphrase is prompted at runtime and stored in
// memory - use GetPassphraseBytes()
type Config struct {
	Port                  string `envconfig:"PORT" default:"8080"`
	StorePath             string `envconfig:"STORE_PATH" required:"true"`
	ChainID               int64  `envconfig:"CHAIN_ID" default:"1"`
	BiometricMode         string `envconfig:"BIOMETRIC_MODE" default:"terminal"` // terminal or off
	MnemonicBits          int    `envconfig:"MNEMONIC_BITS" default:"128"`
	ExportWindowSeconds   int    `envconfig:"EXPORT_WINDOW_SECONDS" default:"60"`
	ExportMaxAttempts     int    `envconfig:"EXPORT_MAX_ATTEMPTS" default:"3"`
	ExportCooldownSeconds int    `envconfig:"EXPORT_COOLDOWN_SECONDS" default:"300"`
	PurgeMinutes          int    `envconfig:"PURGE_MINUTES" default:"5"`
	SweepSeconds          int    `envconfig:"SWEEP_SECONDS" default:"30"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	cfg = &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return fmt.Errorf("failed to process config: %w", err)
	}
	return nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// GetPort returns port from configuration
func GetPort() string {
	return Get().Port
}

// GetStorePath returns the keystore directory from configuration
func GetStorePath() string {
	return Get().StorePath
}

// GetChainID returns the chain ID used by the signing capability
func GetChainID() int64 {
	return Get().ChainID
}

// GetExportWindow returns the sliding window for sensitive exports
func GetExportWindow() time.Duration {
	return time.Duration(Get().ExportWindowSeconds) * time.Second
}

// GetExportCooldown returns the refusal duration after too many exports
func GetExportCooldown() time.Duration {
	return time.Duration(Get().ExportCooldownSeconds) * time.Second
}

// GetPurgeThreshold returns the memory guard inactivity limit
func GetPurgeThreshold() time.Duration {
	return time.Duration(Get().PurgeMinutes) * time.Minute
}

// GetSweepInterval returns the proactive purge tick
func GetSweepInterval() time.Duration {
	return time.Duration(Get().SweepSeconds) * time.Second
}

var passphraseBytes []byte

// PromptForPassphrase prompts the user for the keystore passphrase in the
// terminal. The passphrase is read without echoing (hidden input) and stored
// in memory. Call this at startup before the server begins handling requests.
func PromptForPassphrase() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("stdin is not a terminal: run the app interactively to enter passphrase")
	}
	fmt.Fprint(os.Stderr, "Enter keystore passphrase: ")
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("failed to read passphrase: %w", err)
	}
	if len(raw) == 0 {
		return errors.New("passphrase cannot be empty")
	}

	passphraseBytes = make([]byte, len(raw))
	copy(passphraseBytes, raw)
	clear(raw)
	return nil
}

// GetPassphraseBytes returns the passphrase stored in memory (from
// PromptForPassphrase). Returns an error if the passphrase was not set.
// Caller must zero the returned slice after use for security.
func GetPassphraseBytes() ([]byte, error) {
	if len(passphraseBytes) == 0 {
		return nil, errors.New("passphrase not set: call PromptForPassphrase at startup")
	}
	out := make([]byte, len(passphraseBytes))
	copy(out, passphraseBytes)
	return out, nil
}
