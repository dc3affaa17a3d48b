// Re-encrypts every keystore record under a new passphrase, in place.
// Usage: STORE_PATH=... go run ./cmd/rotate_passphrase
package main

import (
	"context"
	"fmt"
	"os"

	"walletkit/internal/persistence"

	"golang.org/x/term"
)

func main() {
	dir := os.Getenv("STORE_PATH")
	if dir == "" {
		fmt.Fprintln(os.Stderr, "STORE_PATH not set")
		os.Exit(1)
	}

	oldPass, err := readPassphrase("Current passphrase: ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer clear(oldPass)

	newPass, err := readPassphrase("New passphrase: ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer clear(newPass)

	confirm, err := readPassphrase("Repeat new passphrase: ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer clear(confirm)

	if string(newPass) != string(confirm) {
		fmt.Fprintln(os.Stderr, "passphrases do not match")
		os.Exit(1)
	}

	oldStore, err := persistence.NewFileStore(dir, oldPass)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer oldStore.Close()

	newStore, err := persistence.NewFileStore(dir, newPass)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer newStore.Close()

	ctx := context.Background()
	keys, err := oldStore.ListKeys(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	for _, key := range keys {
		value, ok, err := oldStore.Get(ctx, key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to decrypt %s: %v\n", key, err)
			os.Exit(1)
		}
		if !ok {
			continue
		}
		if err := newStore.Put(ctx, key, value, persistence.PutOptions{AccessibleWhenUnlocked: true}); err != nil {
			fmt.Fprintf(os.Stderr, "failed to re-encrypt %s: %v\n", key, err)
			os.Exit(1)
		}
		fmt.Printf("re-encrypted %s\n", key)
	}

	fmt.Printf("done: %d record(s)\n", len(keys))
}

func readPassphrase(prompt string) ([]byte, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, fmt.Errorf("stdin is not a terminal")
	}
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return nil, fmt.Errorf("failed to read passphrase: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("passphrase cannot be empty")
	}
	return raw, nil
}
