package model

// Wallet is the public, non-secret identity of the active account.
// The address is derived deterministically from key material and is
// immutable once derived.
type Wallet struct {
	Address string `json:"address"` // 20-byte identifier as 0x-prefixed hex
}

// WalletMeta is the non-secret registry record stored next to the encrypted
// credential so existence and address checks never need to decrypt anything.
type WalletMeta struct {
	Address   string `json:"address"`
	Kind      string `json:"kind"` // "mnemonic" or "rawKey"
	CreatedAt string `json:"createdAt"`
}
