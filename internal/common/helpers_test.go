package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskAddress(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"checksummed address", "0x9858EfFD232B4033E47d90003D41EC34EcaEda94", "0x9858...da94"},
		{"lowercase address", "0xab5801a7d398351b8be11c439e05c5b3259aec9b", "0xab58...ec9b"},
		{"no prefix", "9858EfFD232B4033E47d90003D41EC34EcaEda94", RedactedMarker},
		{"too short", "0xabcd12", RedactedMarker},
		{"not hex", "0xzzzz5801a7d398351b8be11c439e05c5b3259aec", RedactedMarker},
		{"empty", "", RedactedMarker},
		{"mnemonic words", "legal winner thank year wave", RedactedMarker},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MaskAddress(tc.in))
		})
	}
}

func TestParsePrivateKeyHex(t *testing.T) {
	const keyHex = "1837c1be8e2995ec11cda2b066151be2cfb48adf9e47b151d46adab3a21cdf67"

	key, err := ParsePrivateKeyHex(keyHex)
	require.NoError(t, err)
	assert.Len(t, key, 32)

	prefixed, err := ParsePrivateKeyHex("0x" + keyHex)
	require.NoError(t, err)
	assert.Equal(t, key, prefixed)

	padded, err := ParsePrivateKeyHex("  " + keyHex + "\n")
	require.NoError(t, err)
	assert.Equal(t, key, padded)

	_, err = ParsePrivateKeyHex(keyHex[:62])
	assert.Error(t, err)

	_, err = ParsePrivateKeyHex("zz" + keyHex[2:])
	assert.Error(t, err)

	_, err = ParsePrivateKeyHex("")
	assert.Error(t, err)
}

func TestNormalizeMnemonic(t *testing.T) {
	assert.Equal(t, "legal winner thank", NormalizeMnemonic("  legal\twinner \n thank  "))
	assert.Equal(t, "", NormalizeMnemonic("   "))
}
