// Package phone provides phone number utilities.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"strings"

	"lead_console/platform/config"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion is used when no region is supplied.
const DefaultRegion = "IN"

// Normalizer formats numbers using a configured default region.
type Normalizer struct {
	region string
}

// NewNormalizer creates a normalizer for the configured region.
func NewNormalizer(cfg config.PhoneConfig) *Normalizer {
	return &Normalizer{region: cfg.GetPhoneRegion()}
}

// E164 normalizes input using the configured region.
func (n *Normalizer) E164(input string) string {
	return NormalizeE164(input, n.region)
}

// NormalizeE164 formats a phone number to E.164 using the given default
// region for numbers without a country prefix. If parsing fails, it
// returns the trimmed input.
func NormalizeE164(input, region string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return trimmed
	}
	if region == "" {
		region = DefaultRegion
	}

	number, err := phonenumbers.Parse(trimmed, region)
	if err != nil {
		return trimmed
	}

	if !phonenumbers.IsValidNumber(number) {
		return trimmed
	}

	return phonenumbers.Format(number, phonenumbers.E164)
}
