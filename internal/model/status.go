package model

// StatusResponse represents response for GET /wallet
type StatusResponse struct {
	Exists  bool   `json:"exists"`
	Address string `json:"address,omitempty"`
}

// QRResponse represents response for GET /wallet/qr
type QRResponse struct {
	Address string `json:"address"`
	QR      string `json:"qr"` // PNG as base64
}

// DeleteResponse represents response for DELETE /wallet
type DeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
