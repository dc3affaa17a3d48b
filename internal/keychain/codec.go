// Package keychain converts between mnemonic phrases, raw private keys and
// the derived account. All functions are deterministic and pure: the same
// material always derives the same address.
package keychain

import (
	"fmt"

	"walletkit/internal/common"
	"walletkit/internal/model"
	"walletkit/internal/walleterr"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/tyler-smith/go-bip39"
)

const (
	// EntropyBits128 yields a 12-word mnemonic, EntropyBits256 a 24-word one.
	EntropyBits128 = 128
	EntropyBits256 = 256

	// BIP44 path m/44'/60'/0'/0/0 — first external account.
	purposeIndex = hdkeychain.HardenedKeyStart + 44
	coinIndex    = hdkeychain.HardenedKeyStart + 60
	accountIndex = hdkeychain.HardenedKeyStart + 0
	changeIndex  = 0
	addressIndex = 0
)

// GenerateMnemonic produces key material from fresh CSPRNG entropy.
// bits must be 128 or 256.
func GenerateMnemonic(bits int) (model.KeyMaterial, error) {
	if bits != EntropyBits128 && bits != EntropyBits256 {
		return model.KeyMaterial{}, fmt.Errorf("entropy must be 128 or 256 bits, got %d", bits)
	}

	entropy, err := bip39.NewEntropy(bits)
	if err != nil {
		return model.KeyMaterial{}, fmt.Errorf("%w: %v", walleterr.ErrEntropyUnavailable, err)
	}
	defer clear(entropy)

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return model.KeyMaterial{}, fmt.Errorf("failed to encode mnemonic: %w", err)
	}

	return model.NewMnemonicMaterial(mnemonic), nil
}

// ValidateMnemonic checks wordlist membership and checksum. Pure, no side
// effects.
func ValidateMnemonic(words string) bool {
	return bip39.IsMnemonicValid(common.NormalizeMnemonic(words))
}

// DeriveAccount derives the public wallet identity from key material.
// Mnemonics go through the standard hierarchical path; raw keys are used
// directly.
func DeriveAccount(material model.KeyMaterial) (model.Wallet, error) {
	key, err := PrivateKeyBytes(material)
	if err != nil {
		return model.Wallet{}, err
	}
	defer clear(key)

	priv, err := ethcrypto.ToECDSA(key)
	if err != nil {
		return model.Wallet{}, fmt.Errorf("%w: %v", materialError(material.Kind), err)
	}

	address := ethcrypto.PubkeyToAddress(priv.PublicKey)
	return model.Wallet{Address: address.Hex()}, nil
}

// PrivateKeyBytes extracts the 32-byte signing scalar from key material.
// Caller must zero the returned slice after use.
func PrivateKeyBytes(material model.KeyMaterial) ([]byte, error) {
	switch material.Kind {
	case model.KindMnemonic:
		return derivePrivateKey(string(material.Secret))
	case model.KindRawKey:
		if len(material.Secret) != 32 {
			return nil, fmt.Errorf("%w: expected 32 bytes, got %d", walleterr.ErrInvalidPrivateKey, len(material.Secret))
		}
		// Reject scalars outside the curve order before handing them out.
		if _, err := ethcrypto.ToECDSA(material.Secret); err != nil {
			return nil, fmt.Errorf("%w: %v", walleterr.ErrInvalidPrivateKey, err)
		}
		key := make([]byte, 32)
		copy(key, material.Secret)
		return key, nil
	default:
		return nil, fmt.Errorf("unknown key material kind %q", material.Kind)
	}
}

// derivePrivateKey walks m/44'/60'/0'/0/0 from the mnemonic seed.
func derivePrivateKey(mnemonic string) ([]byte, error) {
	mnemonic = common.NormalizeMnemonic(mnemonic)
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, walleterr.ErrInvalidMnemonic
	}

	seed := bip39.NewSeed(mnemonic, "")
	defer clear(seed)

	master, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("failed to build master key: %w", err)
	}

	child := master
	for _, idx := range []uint32{purposeIndex, coinIndex, accountIndex, changeIndex, addressIndex} {
		child, err = child.Derive(idx)
		if err != nil {
			return nil, fmt.Errorf("failed to derive child key: %w", err)
		}
	}

	ecPriv, err := child.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("failed to extract private key: %w", err)
	}

	key := make([]byte, 32)
	copy(key, ecPriv.Serialize())
	ecPriv.Zero()
	return key, nil
}

func materialError(kind model.MaterialKind) error {
	if kind == model.KindMnemonic {
		return walleterr.ErrInvalidMnemonic
	}
	return walleterr.ErrInvalidPrivateKey
}
