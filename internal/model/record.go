package model

// StoredCredentialRecord is the persisted representation of the credential.
// The secure persistence backend encrypts the serialized record at rest; at
// most one record exists per storage namespace, under a fixed key.
type StoredCredentialRecord struct {
	Kind      MaterialKind `json:"kind"`
	Secret    []byte       `json:"secret"` // mnemonic bytes or 32-byte key (base64 in JSON)
	Address   string       `json:"address"`
	CreatedAt string       `json:"createdAt"`
}

// Material reconstructs key material from the record. The secret bytes are
// copied so zeroing the material does not corrupt the record and vice versa.
func (r *StoredCredentialRecord) Material() KeyMaterial {
	secret := make([]byte, len(r.Secret))
	copy(secret, r.Secret)
	return KeyMaterial{Kind: r.Kind, Secret: secret}
}

// Zero overwrites the record's secret bytes in place.
func (r *StoredCredentialRecord) Zero() {
	clear(r.Secret)
	r.Secret = nil
}
