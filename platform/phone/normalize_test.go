package phone

import (
	"testing"

	"lead_console/platform/config"
)

func TestNormalizeE164(t *testing.T) {
	cases := []struct {
		name   string
		input  string
		region string
		want   string
	}{
		{"national number", "98123 45678", "IN", "+919812345678"},
		{"already e164", "+919812345678", "IN", "+919812345678"},
		{"foreign prefix kept", "+31612345678", "IN", "+31612345678"},
		{"default region", "9812345678", "", "+919812345678"},
		{"invalid passthrough", "not a phone", "IN", "not a phone"},
		{"empty", "   ", "IN", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeE164(tc.input, tc.region)
			if got != tc.want {
				t.Fatalf("NormalizeE164(%q, %q) = %q, want %q", tc.input, tc.region, got, tc.want)
			}
		})
	}
}

func TestNormalizerUsesConfiguredRegion(t *testing.T) {
	n := NewNormalizer(&config.Config{PhoneRegion: "NL"})

	if got := n.E164("0612345678"); got != "+31612345678" {
		t.Fatalf("E164 = %q, want +31612345678", got)
	}
}
