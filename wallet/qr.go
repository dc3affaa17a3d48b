package wallet

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/skip2/go-qrcode"
)

// AddressQR renders the active address as a QR code PNG in base64, for
// receive screens. Fails with ErrNotFound when no wallet exists. No secret
// material is involved.
func (m *Manager) AddressQR(ctx context.Context) (address, png string, err error) {
	address, err = m.Address(ctx)
	if err != nil {
		return "", "", err
	}

	qr, err := qrcode.New(address, qrcode.Medium)
	if err != nil {
		return "", "", fmt.Errorf("failed to create QR code: %w", err)
	}

	img, err := qr.PNG(256)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate PNG: %w", err)
	}

	return address, base64.StdEncoding.EncodeToString(img), nil
}
