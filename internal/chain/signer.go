// Package chain provides the injected signing capability consumed by the
// lifecycle manager. Transaction construction semantics and broadcast stay
// outside this module; the signer only turns key material plus parameters
// into an encoded signed transaction.
package chain

import (
	"fmt"
	"math/big"

	"walletkit/internal/keychain"
	"walletkit/internal/model"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// TxParams are the caller-supplied transaction fields. The signer treats
// them as opaque input and never inspects business meaning.
type TxParams struct {
	Nonce    uint64
	To       string // 0x-prefixed hex address
	Value    *big.Int
	GasLimit uint64
	GasPrice *big.Int
	Data     []byte
}

// Signer signs with the supplied key material and derives its address.
type Signer interface {
	SignTransaction(material model.KeyMaterial, params TxParams) ([]byte, error)
	Address(material model.KeyMaterial) (model.Wallet, error)
}

// EthSigner signs legacy transactions for a fixed chain ID. Signing is fully
// local; no network is involved.
type EthSigner struct {
	chainID *big.Int
}

// NewEthSigner creates a signer bound to chainID.
func NewEthSigner(chainID int64) *EthSigner {
	return &EthSigner{chainID: big.NewInt(chainID)}
}

// SignTransaction signs params with the private key behind material and
// returns the RLP-encoded signed transaction.
func (s *EthSigner) SignTransaction(material model.KeyMaterial, params TxParams) ([]byte, error) {
	if !common.IsHexAddress(params.To) {
		return nil, fmt.Errorf("invalid recipient address %q", params.To)
	}

	keyBytes, err := keychain.PrivateKeyBytes(material)
	if err != nil {
		return nil, err
	}
	defer clear(keyBytes)

	priv, err := ethcrypto.ToECDSA(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to load signing key: %w", err)
	}

	to := common.HexToAddress(params.To)
	tx := types.NewTx(&types.LegacyTx{
		Nonce:    params.Nonce,
		To:       &to,
		Value:    params.Value,
		Gas:      params.GasLimit,
		GasPrice: params.GasPrice,
		Data:     params.Data,
	})

	signed, err := types.SignTx(tx, types.LatestSignerForChainID(s.chainID), priv)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	encoded, err := signed.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("failed to encode transaction: %w", err)
	}
	return encoded, nil
}

// Address derives the wallet identity for material.
func (s *EthSigner) Address(material model.KeyMaterial) (model.Wallet, error) {
	return keychain.DeriveAccount(material)
}
