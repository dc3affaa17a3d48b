package persistence

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"walletkit/internal/walleterr"

	"golang.org/x/crypto/scrypt"
)

const (
	// scrypt parameters for the local keystore
	// Security is prioritized over performance
	//
	// N=2^18 (~256MB RAM, 0.5-2s) - optimal balance:
	//   - Maximum security while remaining compatible with mobile devices
	//   - Works on phones (4-16GB RAM) and desktops alike
	//   - Brute-force attacks remain extremely expensive
	//
	// Note: N=2^20 (~1GB) offers higher security but fails on mobile due to
	// Android memory limits per app (~256-512MB typically)
	scryptN      = 1 << 18
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 32
	saltLen      = 32
	nonceLen     = 12

	recordExt = ".wkt"
)

// recordFile is the on-disk structure for one stored value.
type recordFile struct {
	Key        string `json:"key"`
	Salt       string `json:"salt"`
	Nonce      string `json:"nonce"`
	CipherText string `json:"cipherText"`
}

// FileStore is an encrypted one-file-per-key keystore. Values are sealed
// with AES-GCM under a key scrypt-derived from the store passphrase; each
// record gets its own salt and nonce.
type FileStore struct {
	dir        string
	passphrase []byte
}

// NewFileStore creates a store rooted at dir, creating it if needed.
// passphrase is copied; the caller should zero its own slice after use.
func NewFileStore(dir string, passphrase []byte) (*FileStore, error) {
	if len(passphrase) == 0 {
		return nil, errors.New("passphrase cannot be empty")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create store dir: %w", err)
	}

	pass := make([]byte, len(passphrase))
	copy(pass, passphrase)
	return &FileStore{dir: dir, passphrase: pass}, nil
}

// Close zeroes the in-memory passphrase copy.
func (s *FileStore) Close() {
	clear(s.passphrase)
}

// Put seals value and writes it under key. Existing records are overwritten.
func (s *FileStore) Put(ctx context.Context, key, value string, _ PutOptions) error {
	if err := ctx.Err(); err != nil {
		return &walleterr.StorageError{Op: "put", Err: err}
	}

	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return &walleterr.StorageError{Op: "put", Err: fmt.Errorf("failed to generate salt: %w", err)}
	}

	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return &walleterr.StorageError{Op: "put", Err: fmt.Errorf("failed to generate nonce: %w", err)}
	}

	aesGCM, err := s.newGCM(salt)
	if err != nil {
		return &walleterr.StorageError{Op: "put", Err: err}
	}

	plaintext := []byte(value)
	ciphertext := aesGCM.Seal(nil, nonce, plaintext, nil)
	clear(plaintext) // wipe plaintext bytes from memory

	record := recordFile{
		Key:        key,
		Salt:       base64.StdEncoding.EncodeToString(salt),
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		CipherText: base64.StdEncoding.EncodeToString(ciphertext),
	}

	fileData, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return &walleterr.StorageError{Op: "put", Err: fmt.Errorf("failed to marshal record: %w", err)}
	}

	if err := os.WriteFile(s.path(key), fileData, 0600); err != nil {
		return &walleterr.StorageError{Op: "put", Err: fmt.Errorf("failed to write record: %w", err)}
	}
	return nil
}

// Get reads and opens the record under key. An absent key is not an error.
func (s *FileStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, &walleterr.StorageError{Op: "get", Err: err}
	}

	fileData, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, &walleterr.StorageError{Op: "get", Err: fmt.Errorf("failed to read record: %w", err)}
	}

	var record recordFile
	if err := json.Unmarshal(fileData, &record); err != nil {
		return "", false, &walleterr.StorageError{Op: "get", Err: fmt.Errorf("failed to unmarshal record: %w", err)}
	}

	salt, err := base64.StdEncoding.DecodeString(record.Salt)
	if err != nil {
		return "", false, &walleterr.StorageError{Op: "get", Err: fmt.Errorf("failed to decode salt: %w", err)}
	}
	nonce, err := base64.StdEncoding.DecodeString(record.Nonce)
	if err != nil {
		return "", false, &walleterr.StorageError{Op: "get", Err: fmt.Errorf("failed to decode nonce: %w", err)}
	}
	ciphertext, err := base64.StdEncoding.DecodeString(record.CipherText)
	if err != nil {
		return "", false, &walleterr.StorageError{Op: "get", Err: fmt.Errorf("failed to decode ciphertext: %w", err)}
	}

	aesGCM, err := s.newGCM(salt)
	if err != nil {
		return "", false, &walleterr.StorageError{Op: "get", Err: err}
	}

	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", false, &walleterr.StorageError{Op: "get", Err: errors.New("invalid passphrase or corrupted record")}
	}

	value := string(plaintext)
	clear(plaintext) // wipe decrypted bytes from memory
	return value, true, nil
}

// Remove deletes the record under key. Removing an absent key is a no-op.
func (s *FileStore) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return &walleterr.StorageError{Op: "remove", Err: err}
	}
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return &walleterr.StorageError{Op: "remove", Err: err}
	}
	return nil
}

// ListKeys returns every stored key. Keys are recovered from file names, so
// listing never decrypts anything.
func (s *FileStore) ListKeys(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, &walleterr.StorageError{Op: "listKeys", Err: err}
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, &walleterr.StorageError{Op: "listKeys", Err: err}
	}

	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, recordExt) {
			continue
		}
		raw, err := base64.RawURLEncoding.DecodeString(strings.TrimSuffix(name, recordExt))
		if err != nil {
			continue // not one of ours
		}
		keys = append(keys, string(raw))
	}
	return keys, nil
}

// Clear removes every record in the store.
func (s *FileStore) Clear(ctx context.Context) error {
	keys, err := s.ListKeys(ctx)
	if err != nil {
		return err
	}
	for _, key := range keys {
		if err := s.Remove(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// IsAvailable reports whether the store directory is usable.
func (s *FileStore) IsAvailable(_ context.Context) bool {
	info, err := os.Stat(s.dir)
	return err == nil && info.IsDir()
}

// path maps a logical key to its record file. Keys are base64url-encoded so
// any key string yields a safe file name.
func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, base64.RawURLEncoding.EncodeToString([]byte(key))+recordExt)
}

// newGCM derives the record key from the passphrase and salt.
func (s *FileStore) newGCM(salt []byte) (cipher.AEAD, error) {
	key, err := scrypt.Key(s.passphrase, salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	defer clear(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aesGCM, nil
}
