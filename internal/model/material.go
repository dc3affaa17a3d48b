package model

// MaterialKind discriminates the two credential representations.
type MaterialKind string

const (
	KindMnemonic MaterialKind = "mnemonic"
	KindRawKey   MaterialKind = "rawKey"
)

// KeyMaterial is the secret credential: either a BIP39 mnemonic phrase
// (UTF-8 bytes) or a 32-byte raw private key. The secret is kept as []byte
// so it can be actively overwritten, not merely dereferenced.
//
// Ownership rules: while cached the material belongs to the memory guard;
// callers of export operations own their copy only for the instant it is
// returned.
type KeyMaterial struct {
	Kind   MaterialKind
	Secret []byte
}

// NewMnemonicMaterial wraps a mnemonic phrase as key material.
func NewMnemonicMaterial(words string) KeyMaterial {
	return KeyMaterial{Kind: KindMnemonic, Secret: []byte(words)}
}

// NewRawKeyMaterial wraps a 32-byte private key as key material.
// The bytes are copied; the caller keeps ownership of its slice.
func NewRawKeyMaterial(key []byte) KeyMaterial {
	secret := make([]byte, len(key))
	copy(secret, key)
	return KeyMaterial{Kind: KindRawKey, Secret: secret}
}

// Clone returns an independent copy of the material.
func (m KeyMaterial) Clone() KeyMaterial {
	secret := make([]byte, len(m.Secret))
	copy(secret, m.Secret)
	return KeyMaterial{Kind: m.Kind, Secret: secret}
}

// Zero overwrites the secret bytes in place.
func (m *KeyMaterial) Zero() {
	clear(m.Secret)
	m.Secret = nil
}
