package model

// ExportResponse represents response for POST /wallet/export/...
// Exactly one of Mnemonic or PrivateKey is set depending on the endpoint.
type ExportResponse struct {
	Mnemonic   string `json:"mnemonic,omitempty"`
	PrivateKey string `json:"privateKey,omitempty"` // 32 bytes hex
}
