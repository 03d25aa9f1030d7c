package export

import (
	"strings"
	"testing"
	"time"

	"lead_console/internal/leads/transport"
)

const header = "Full Name,Email,Phone,Source,Status,Created At"

func TestCSVEmptyCollection(t *testing.T) {
	got := CSV(nil)
	if got != header {
		t.Fatalf("expected bare header row, got %q", got)
	}
	if strings.Contains(got, "\n") {
		t.Fatal("expected no content beyond the header")
	}
}

func TestCSVExtraFieldsRoundTrip(t *testing.T) {
	leads := []transport.Lead{
		{
			ID:          "a1",
			FullName:    "Asha Verma",
			Email:       "asha@example.in",
			Phone:       "+919812345678",
			Source:      "facebook",
			Status:      transport.LeadStatusNew,
			CreatedAt:   time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC),
			ExtraFields: map[string]interface{}{"campaign": "fb-ad-1"},
		},
	}

	got := CSV(leads)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %d lines", len(lines))
	}
	if lines[0] != header+",campaign" {
		t.Fatalf("expected campaign column appended, got %q", lines[0])
	}
	if lines[1] != "Asha Verma,asha@example.in,+919812345678,facebook,new,2026-03-01T10:30:00Z,fb-ad-1" {
		t.Fatalf("unexpected data row: %q", lines[1])
	}
}

func TestCSVExtraKeyUnionFirstSeenOrder(t *testing.T) {
	leads := []transport.Lead{
		{ID: "a1", Source: "facebook", Status: transport.LeadStatusNew,
			ExtraFields: map[string]interface{}{"campaign": "x"}},
		{ID: "b2", Source: "facebook", Status: transport.LeadStatusNew,
			ExtraFields: map[string]interface{}{"adset": "y", "campaign": "z"}},
	}

	got := CSV(leads)
	lines := strings.Split(got, "\n")
	if lines[0] != header+",campaign,adset" {
		t.Fatalf("expected first-seen key order campaign,adset, got %q", lines[0])
	}
	// Lead a1 has no adset value; its cell must be empty.
	if !strings.HasSuffix(lines[1], ",x,") {
		t.Fatalf("expected empty adset cell for first lead, got %q", lines[1])
	}
	if !strings.HasSuffix(lines[2], ",z,y") {
		t.Fatalf("expected both extra values for second lead, got %q", lines[2])
	}
}

func TestCSVQuotesEmbeddedSeparators(t *testing.T) {
	leads := []transport.Lead{
		{
			ID:       "a1",
			FullName: `Verma, Asha "AV"`,
			Source:   "facebook",
			Status:   transport.LeadStatusNew,
			ExtraFields: map[string]interface{}{
				"note": "a,b\nsecond line",
			},
		},
	}

	got := CSV(leads)
	if !strings.Contains(got, `"Verma, Asha ""AV"""`) {
		t.Fatalf("expected RFC 4180 quoting of name, got %q", got)
	}
	if !strings.Contains(got, "\"a,b\nsecond line\"") {
		t.Fatalf("expected quoting of extra value with comma and newline, got %q", got)
	}
}

func TestCSVMissingFieldsRenderEmpty(t *testing.T) {
	leads := []transport.Lead{
		{ID: "a1", Source: "facebook", Status: transport.LeadStatusContacted},
	}

	got := CSV(leads)
	lines := strings.Split(got, "\n")
	if lines[1] != ",,,facebook,contacted," {
		t.Fatalf("expected empty cells for missing fields, got %q", lines[1])
	}
}

func TestCSVNumericExtraValues(t *testing.T) {
	leads := []transport.Lead{
		{ID: "a1", Source: "facebook", Status: transport.LeadStatusNew,
			ExtraFields: map[string]interface{}{"score": float64(42)}},
	}

	got := CSV(leads)
	if !strings.HasSuffix(got, ",42") {
		t.Fatalf("expected integer-clean rendering of numeric extra, got %q", got)
	}
}
