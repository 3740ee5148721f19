package meeting

import (
	"testing"

	"lexaid/config"
)

func TestRoomTokenRoundTrip(t *testing.T) {
	config.AppConfig.MeetingEmbedSecret = "test-embed-secret"

	token, err := GenerateRoomToken("appt-123", "user-456", "Carla Cruz")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	room, userID, err := ParseRoomToken(token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if room != "appt-123" || userID != "user-456" {
		t.Errorf("claims = (%q, %q), want (appt-123, user-456)", room, userID)
	}
}

func TestRoomTokenRejectsTampering(t *testing.T) {
	config.AppConfig.MeetingEmbedSecret = "test-embed-secret"
	token, err := GenerateRoomToken("appt-123", "user-456", "Carla Cruz")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, _, err := ParseRoomToken(token + "x"); err == nil {
		t.Error("a tampered token must not validate")
	}

	config.AppConfig.MeetingEmbedSecret = "different-secret"
	if _, _, err := ParseRoomToken(token); err == nil {
		t.Error("a token signed with another secret must not validate")
	}
}

func TestGenerateRoomTokenRequiresSecret(t *testing.T) {
	config.AppConfig.MeetingEmbedSecret = ""
	if _, err := GenerateRoomToken("appt-123", "user-456", "Carla Cruz"); err == nil {
		t.Error("expected an error when the embed secret is not configured")
	}
}
