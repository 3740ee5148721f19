package qr

import (
	"bytes"
	"strings"
	"testing"

	"lexaid/config"
)

func TestTrackingURL(t *testing.T) {
	config.AppConfig.PortalBaseURL = "https://portal.example.org"
	got := TrackingURL("IBP-2026-000123")
	want := "https://portal.example.org/track/IBP-2026-000123"
	if got != want {
		t.Errorf("TrackingURL = %q, want %q", got, want)
	}
}

func TestControlNumberPNG(t *testing.T) {
	config.AppConfig.PortalBaseURL = "https://portal.example.org"

	png, err := ControlNumberPNG("IBP-2026-000123", 256)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}

	if _, err := ControlNumberPNG("", 256); err == nil {
		t.Error("an empty control number must be rejected")
	}
}

func TestControlNumberDataURL(t *testing.T) {
	config.AppConfig.PortalBaseURL = "https://portal.example.org"

	dataURL, err := ControlNumberDataURL("IBP-2026-000123", 128)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if !strings.HasPrefix(dataURL, "data:image/png;base64,") {
		t.Errorf("unexpected data URL prefix: %q", dataURL[:30])
	}
}
