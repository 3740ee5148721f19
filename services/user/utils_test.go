package user

import "testing"

func TestVerifyPasswordComplexity(t *testing.T) {
	tests := []struct {
		name string
		pw   string
		ok   bool
	}{
		{"valid", "Str0ngPass", true},
		{"too short", "Ab1", false},
		{"no uppercase", "weakpass1", false},
		{"no lowercase", "WEAKPASS1", false},
		{"no number", "WeakPassword", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyPasswordComplexity(tt.pw)
			if tt.ok && err != nil {
				t.Errorf("expected %q to pass, got %v", tt.pw, err)
			}
			if !tt.ok && err == nil {
				t.Errorf("expected %q to fail", tt.pw)
			}
		})
	}
}
