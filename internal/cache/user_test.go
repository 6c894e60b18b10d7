package cache

import "testing"

func TestUserKey(t *testing.T) {
	tests := []struct {
		name   string
		wallet string
		want   string
	}{
		{"simple", "SP1ABC", "user:wallet:SP1ABC"},
		{"empty", "", "user:wallet:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := userKey(tt.wallet); got != tt.want {
				t.Errorf("userKey(%q) = %q, want %q", tt.wallet, got, tt.want)
			}
		})
	}
}
