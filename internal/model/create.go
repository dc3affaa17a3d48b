package model

// CreateResponse represents response for POST /wallet/create.
// The mnemonic is returned exactly once and never persisted in plaintext.
type CreateResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Address  string `json:"address,omitempty"`
	Mnemonic string `json:"mnemonic,omitempty"`
}
