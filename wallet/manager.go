// Package wallet orchestrates the credential lifecycle: create, recover,
// import, load, export, delete. It owns the single stored credential record,
// gates sensitive exports behind the rate limiter and the biometric
// challenge, and emits masked audit events for every lifecycle action.
package wallet

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"walletkit/internal/audit"
	"walletkit/internal/biometric"
	"walletkit/internal/chain"
	"walletkit/internal/common"
	"walletkit/internal/keychain"
	"walletkit/internal/memguard"
	"walletkit/internal/model"
	"walletkit/internal/persistence"
	"walletkit/internal/ratelimit"
	"walletkit/internal/walleterr"

	"go.uber.org/zap"
)

const (
	// Storage key namespace. One active wallet per namespace; the meta key
	// lets existence and address checks skip decryption entirely.
	credentialKey = "walletkit.credential.v1"
	metaKey       = "walletkit.meta.v1"
)

// Config tunes the lifecycle manager. Zero fields fall back to the
// reference behavior.
type Config struct {
	RateLimit      ratelimit.Policy
	PurgeThreshold time.Duration // memory guard inactivity limit
	SweepInterval  time.Duration // proactive purge tick
	MnemonicBits   int           // 128 or 256
}

// Manager is the single logical owner of wallet state in the process. All
// lifecycle operations are serialized against the one stored credential
// record; the memory guard cache is private to this instance.
type Manager struct {
	mu      sync.Mutex
	store   persistence.Store
	gate    biometric.Gate
	signer  chain.Signer
	limiter *ratelimit.Limiter
	guard   *memguard.Guard
	auditor *audit.Recorder
	logger  *zap.Logger
	sweep   time.Duration
	bits    int
	now     func() time.Time
}

// NewManager wires the lifecycle manager with its injected capabilities.
// The manager carries no environment branching: any Store and Gate pair
// works, platform-backed or not.
func NewManager(store persistence.Store, gate biometric.Gate, signer chain.Signer, cfg Config, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.RateLimit.MaxAttempts == 0 {
		cfg.RateLimit = ratelimit.DefaultPolicy()
	}
	if cfg.PurgeThreshold <= 0 {
		cfg.PurgeThreshold = memguard.DefaultThreshold
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = 30 * time.Second
	}
	if cfg.MnemonicBits != keychain.EntropyBits256 {
		cfg.MnemonicBits = keychain.EntropyBits128
	}

	return &Manager{
		store:   store,
		gate:    gate,
		signer:  signer,
		limiter: ratelimit.New(cfg.RateLimit),
		guard:   memguard.New(cfg.PurgeThreshold),
		auditor: audit.NewRecorder(logger),
		logger:  logger,
		sweep:   cfg.SweepInterval,
		bits:    cfg.MnemonicBits,
		now:     time.Now,
	}
}

// StartSweeper launches the periodic purge check. Call the returned stop
// function on shutdown.
func (m *Manager) StartSweeper() (stop func()) {
	return m.guard.StartSweeper(m.sweep)
}

// CreateWallet generates a fresh mnemonic, persists the encrypted credential
// and returns the wallet plus the mnemonic. The mnemonic crosses this
// boundary exactly once; the manager never keeps the plaintext phrase beyond
// the call. Fails with ErrAlreadyExists while a credential record exists —
// overwriting is an explicit caller decision, never a silent one.
func (m *Manager) CreateWallet(ctx context.Context) (model.Wallet, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	exists, err := m.hasCredential(ctx)
	if err != nil {
		return model.Wallet{}, "", err
	}
	if exists {
		return model.Wallet{}, "", walleterr.ErrAlreadyExists
	}

	material, err := keychain.GenerateMnemonic(m.bits)
	if err != nil {
		return model.Wallet{}, "", err
	}
	defer material.Zero()

	w, err := keychain.DeriveAccount(material)
	if err != nil {
		return model.Wallet{}, "", err
	}

	mnemonic := string(material.Secret)
	if err := m.persistCredential(ctx, material, w); err != nil {
		return model.Wallet{}, "", err
	}

	m.guard.Set(material)
	m.auditor.Emit(audit.WalletCreated, w.Address)
	m.logger.Info("wallet created", zap.String("address", common.MaskAddress(w.Address)))
	return w, mnemonic, nil
}

// RecoverFromMnemonic restores a wallet from an existing phrase. Validation
// happens before any storage mutation.
func (m *Manager) RecoverFromMnemonic(ctx context.Context, words string) (model.Wallet, error) {
	if !keychain.ValidateMnemonic(words) {
		return model.Wallet{}, walleterr.ErrInvalidMnemonic
	}

	material := model.NewMnemonicMaterial(common.NormalizeMnemonic(words))
	defer material.Zero()

	return m.install(ctx, material, audit.WalletRecovered)
}

// ImportFromPrivateKey installs a wallet from a raw 32-byte key (hex, 0x
// prefix optional). Validation happens before any storage mutation.
func (m *Manager) ImportFromPrivateKey(ctx context.Context, keyHex string) (model.Wallet, error) {
	raw, err := common.ParsePrivateKeyHex(keyHex)
	if err != nil {
		return model.Wallet{}, fmt.Errorf("%w: %v", walleterr.ErrInvalidPrivateKey, err)
	}
	defer clear(raw)

	material := model.NewRawKeyMaterial(raw)
	defer material.Zero()

	return m.install(ctx, material, audit.WalletImported)
}

// install persists validated material under the single-record invariant and
// warms the memory guard.
func (m *Manager) install(ctx context.Context, material model.KeyMaterial, kind audit.Kind) (model.Wallet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, err := keychain.DeriveAccount(material)
	if err != nil {
		return model.Wallet{}, err
	}

	exists, err := m.hasCredential(ctx)
	if err != nil {
		return model.Wallet{}, err
	}
	if exists {
		return model.Wallet{}, walleterr.ErrAlreadyExists
	}

	if err := m.persistCredential(ctx, material, w); err != nil {
		return model.Wallet{}, err
	}

	m.guard.Set(material)
	m.auditor.Emit(kind, w.Address)
	m.logger.Info("wallet installed", zap.String("address", common.MaskAddress(w.Address)))
	return w, nil
}

// LoadWallet reads the stored credential, warms the memory guard and returns
// the wallet. Returns (nil, nil) when no wallet exists.
func (m *Manager) LoadWallet(ctx context.Context) (*model.Wallet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	material, ok, err := m.loadMaterial(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	defer material.Zero()

	w, err := keychain.DeriveAccount(material)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// HasWallet reports credential existence without decrypting anything.
func (m *Manager) HasWallet(ctx context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hasCredential(ctx)
}

// Address returns the active wallet address from the non-secret registry.
// Fails with ErrNotFound when no wallet exists.
func (m *Manager) Address(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	meta, err := m.readMeta(ctx)
	if err != nil {
		return "", err
	}
	if meta == nil {
		return "", walleterr.ErrNotFound
	}
	return meta.Address, nil
}

// ExportMnemonic returns the stored mnemonic phrase after the rate limiter
// and the biometric gate both pass. Returns "" (not an error) when no wallet
// exists or the credential holds a raw key with no phrase to reveal.
func (m *Manager) ExportMnemonic(ctx context.Context) (string, error) {
	material, ok, err := m.export(ctx, ratelimit.OpExportMnemonic, "Reveal recovery phrase")
	if err != nil || !ok {
		return "", err
	}
	defer material.Zero()

	if material.Kind != model.KindMnemonic {
		m.auditor.Emit(audit.ExportFailed, m.subject(ctx))
		return "", nil
	}

	mnemonic := string(material.Secret)
	m.auditor.Emit(audit.ExportSucceeded, m.subject(ctx))
	return mnemonic, nil
}

// ExportPrivateKey returns the 32-byte signing key as hex after the rate
// limiter and the biometric gate both pass. Returns "" (not an error) when
// no wallet exists.
func (m *Manager) ExportPrivateKey(ctx context.Context) (string, error) {
	material, ok, err := m.export(ctx, ratelimit.OpExportPrivateKey, "Reveal private key")
	if err != nil || !ok {
		return "", err
	}
	defer material.Zero()

	key, err := keychain.PrivateKeyBytes(material)
	if err != nil {
		m.auditor.Emit(audit.ExportFailed, m.subject(ctx))
		return "", err
	}
	defer clear(key)

	m.auditor.Emit(audit.ExportSucceeded, m.subject(ctx))
	return hex.EncodeToString(key), nil
}

// export runs the shared gating path: rate limiter first (a refusal touches
// neither storage nor the gate), then the biometric challenge (a refusal
// still counted the attempt), then the credential read with transparent
// reload through the memory guard. ok=false with a nil error means no wallet
// exists.
func (m *Manager) export(ctx context.Context, op ratelimit.OpClass, prompt string) (model.KeyMaterial, bool, error) {
	// The attempt is counted here, synchronously, before any suspension
	// point: a caller abandoning the operation later cannot uncount it.
	if err := m.limiter.Admit(op); err != nil {
		return model.KeyMaterial{}, false, err
	}

	passed, err := m.gate.Authenticate(ctx, prompt)
	if err != nil {
		return model.KeyMaterial{}, false, fmt.Errorf("biometric challenge error: %w", err)
	}
	if !passed {
		return model.KeyMaterial{}, false, walleterr.ErrBiometricFailed
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.auditor.Emit(audit.ExportAttempted, m.subject(ctx))

	material, ok, err := m.loadMaterial(ctx)
	if err != nil {
		m.auditor.Emit(audit.ExportFailed, m.subject(ctx))
		return model.KeyMaterial{}, false, err
	}
	if !ok {
		m.auditor.Emit(audit.ExportFailed, m.subject(ctx))
		return model.KeyMaterial{}, false, nil
	}
	return material, true, nil
}

// DeleteWallet purges the memory cache and removes the stored credential.
// Idempotent: deleting with no wallet present is a no-op, not an error, and
// emits no event.
func (m *Manager) DeleteWallet(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.guard.PurgeNow()

	exists, err := m.hasCredential(ctx)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}

	subject := m.subject(ctx)
	if err := m.store.Remove(ctx, credentialKey); err != nil {
		return err
	}
	if err := m.store.Remove(ctx, metaKey); err != nil {
		return err
	}

	m.auditor.Emit(audit.WalletDeleted, subject)
	m.logger.Info("wallet deleted", zap.String("address", common.MaskAddress(subject)))
	return nil
}

// Disconnect clears the memory cache but keeps the persisted record. The
// next sensitive call reloads from storage.
func (m *Manager) Disconnect(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.guard.PurgeNow()
	m.auditor.Emit(audit.WalletDisconnected, m.subject(ctx))
}

// SignTransaction signs params with the active wallet's key via the injected
// chain capability. Fails with ErrNotFound when no wallet exists.
func (m *Manager) SignTransaction(ctx context.Context, params chain.TxParams) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	material, ok, err := m.loadMaterial(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, walleterr.ErrNotFound
	}
	defer material.Zero()

	return m.signer.SignTransaction(material, params)
}

// Capability exposes the biometric gate's device capability.
func (m *Manager) Capability() biometric.Capability {
	return m.gate.Capability()
}

// AuditEvents returns the recorded (masked) audit trail, oldest first.
func (m *Manager) AuditEvents() []audit.Event {
	return m.auditor.Events()
}

// hasCredential checks existence through key listing only.
func (m *Manager) hasCredential(ctx context.Context) (bool, error) {
	keys, err := m.store.ListKeys(ctx)
	if err != nil {
		return false, err
	}
	for _, k := range keys {
		if k == credentialKey {
			return true, nil
		}
	}
	return false, nil
}

// loadMaterial returns the cached material or transparently reloads it from
// storage, rewarming the guard. ok=false means no credential record exists.
// The caller owns (and must zero) the returned copy.
func (m *Manager) loadMaterial(ctx context.Context) (model.KeyMaterial, bool, error) {
	if material, ok := m.guard.Get(); ok {
		return material, true, nil
	}

	value, ok, err := m.store.Get(ctx, credentialKey)
	if err != nil {
		return model.KeyMaterial{}, false, err
	}
	if !ok {
		return model.KeyMaterial{}, false, nil
	}

	var record model.StoredCredentialRecord
	if err := json.Unmarshal([]byte(value), &record); err != nil {
		return model.KeyMaterial{}, false, &walleterr.StorageError{Op: "get", Err: fmt.Errorf("corrupted credential record: %w", err)}
	}
	defer record.Zero()

	material := record.Material()
	m.guard.Set(material)
	return material, true, nil
}

// persistCredential writes the encrypted record and the non-secret registry
// entry. If the registry write fails the credential is rolled back so the
// two keys never disagree.
func (m *Manager) persistCredential(ctx context.Context, material model.KeyMaterial, w model.Wallet) error {
	record := model.StoredCredentialRecord{
		Kind:      material.Kind,
		Secret:    material.Secret,
		Address:   w.Address,
		CreatedAt: m.now().UTC().Format(time.RFC3339),
	}
	payload, err := json.Marshal(&record)
	if err != nil {
		return fmt.Errorf("failed to marshal credential record: %w", err)
	}
	defer clear(payload)

	opts := persistence.PutOptions{AccessibleWhenUnlocked: true}
	if err := m.store.Put(ctx, credentialKey, string(payload), opts); err != nil {
		return err
	}

	meta := model.WalletMeta{
		Address:   w.Address,
		Kind:      string(material.Kind),
		CreatedAt: record.CreatedAt,
	}
	metaPayload, err := json.Marshal(&meta)
	if err != nil {
		return fmt.Errorf("failed to marshal wallet meta: %w", err)
	}
	if err := m.store.Put(ctx, metaKey, string(metaPayload), persistence.PutOptions{AccessibleWhenUnlocked: true}); err != nil {
		_ = m.store.Remove(ctx, credentialKey)
		return err
	}
	return nil
}

// subject resolves the audit subject from the registry; empty when absent.
func (m *Manager) subject(ctx context.Context) string {
	meta, err := m.readMeta(ctx)
	if err != nil || meta == nil {
		return ""
	}
	return meta.Address
}

func (m *Manager) readMeta(ctx context.Context) (*model.WalletMeta, error) {
	value, ok, err := m.store.Get(ctx, metaKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var meta model.WalletMeta
	if err := json.Unmarshal([]byte(value), &meta); err != nil {
		return nil, &walleterr.StorageError{Op: "get", Err: fmt.Errorf("corrupted wallet meta: %w", err)}
	}
	return &meta, nil
}
