package model

// RecoverRequest represents request for POST /wallet/recover
type RecoverRequest struct {
	Mnemonic string `json:"mnemonic" binding:"required"`
}

// ImportRequest represents request for POST /wallet/import
type ImportRequest struct {
	PrivateKey string `json:"privateKey" binding:"required"` // 32 bytes hex, 0x prefix optional
}

// RecoverResponse represents response for POST /wallet/recover and /wallet/import
type RecoverResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Address string `json:"address,omitempty"`
}
