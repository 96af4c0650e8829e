package wallet

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// AddressQR renders address as a QR code made of terminal block characters,
// so a freshly generated wallet can be funded from a phone.
func AddressQR(address string) (string, error) {
	qr, err := qrcode.New(address, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to create QR code: %w", err)
	}
	return qr.ToSmallString(false), nil
}
