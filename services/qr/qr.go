package qr

import (
	"encoding/base64"
	"fmt"
	"net/url"

	"lexaid/config"

	qrcode "github.com/skip2/go-qrcode"
)

// TrackingURL builds the public tracking link for a control number. The
// front desk resolves it at check-in instead of typing the number by hand.
func TrackingURL(controlNumber string) string {
	return fmt.Sprintf("%s/track/%s", config.AppConfig.PortalBaseURL, url.PathEscape(controlNumber))
}

// ControlNumberPNG renders the tracking link for a control number as a PNG
// QR code of the given pixel size.
func ControlNumberPNG(controlNumber string, size int) ([]byte, error) {
	if controlNumber == "" {
		return nil, fmt.Errorf("qr: control number is required")
	}
	if size <= 0 {
		size = 256
	}
	png, err := qrcode.Encode(TrackingURL(controlNumber), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("qr: failed to encode: %w", err)
	}
	return png, nil
}

// ControlNumberDataURL renders the QR code as a data URL for inline embedding
// in the confirmation view.
func ControlNumberDataURL(controlNumber string, size int) (string, error) {
	png, err := ControlNumberPNG(controlNumber, size)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
