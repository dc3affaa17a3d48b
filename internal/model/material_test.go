package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRawKeyMaterialCopies(t *testing.T) {
	key := []byte{1, 2, 3, 4}
	m := NewRawKeyMaterial(key)

	key[0] = 99
	assert.Equal(t, byte(1), m.Secret[0])
}

func TestCloneIsIndependent(t *testing.T) {
	m := NewMnemonicMaterial("legal winner thank")
	c := m.Clone()

	m.Zero()
	assert.Equal(t, "legal winner thank", string(c.Secret))
	assert.Equal(t, KindMnemonic, c.Kind)
}

func TestZeroOverwritesInPlace(t *testing.T) {
	m := NewRawKeyMaterial([]byte{7, 7, 7})
	backing := m.Secret

	m.Zero()
	assert.Nil(t, m.Secret)
	for i, b := range backing {
		assert.Zero(t, b, "byte %d survived", i)
	}
}

func TestStoredCredentialRecordMaterial(t *testing.T) {
	rec := StoredCredentialRecord{
		Kind:    KindMnemonic,
		Secret:  []byte("legal winner thank"),
		Address: "0xabc",
	}

	m := rec.Material()
	rec.Zero()
	assert.Equal(t, "legal winner thank", string(m.Secret))
	assert.Equal(t, KindMnemonic, m.Kind)
}

func TestStoredCredentialRecordJSONRoundTrip(t *testing.T) {
	rec := StoredCredentialRecord{
		Kind:      KindRawKey,
		Secret:    []byte{1, 2, 3},
		Address:   "0xabc",
		CreatedAt: "2024-06-01T12:00:00Z",
	}

	payload, err := json.Marshal(&rec)
	require.NoError(t, err)

	var decoded StoredCredentialRecord
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, rec, decoded)
}
