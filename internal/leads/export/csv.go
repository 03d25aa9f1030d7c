// Package export serializes lead collections for download.
package export

import (
	"encoding/csv"
	"fmt"
	"sort"
	"strings"
	"time"

	"lead_console/internal/leads/transport"
)

// baseHeaders is the fixed leading column set of every export.
var baseHeaders = []string{"Full Name", "Email", "Phone", "Source", "Status", "Created At"}

// CSV renders the collection as RFC 4180 CSV text. The header is the
// fixed base set followed by the union of all extraFields keys, in
// first-seen order across the leads. Missing values render as empty
// strings and createdAt is serialized as RFC 3339 UTC. The result
// carries no trailing newline.
func CSV(leads []transport.Lead) string {
	extraKeys := collectExtraKeys(leads)

	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	_ = writer.Write(append(append([]string{}, baseHeaders...), extraKeys...))

	for _, lead := range leads {
		row := []string{
			lead.FullName,
			lead.Email,
			lead.Phone,
			lead.Source,
			string(lead.Status),
			formatCreatedAt(lead.CreatedAt),
		}
		for _, key := range extraKeys {
			row = append(row, formatExtra(lead.ExtraFields[key]))
		}
		_ = writer.Write(row)
	}

	writer.Flush()
	return strings.TrimSuffix(sb.String(), "\n")
}

// collectExtraKeys gathers the union of extraFields keys in first-seen
// order, which fixes the column order of the export.
func collectExtraKeys(leads []transport.Lead) []string {
	seen := make(map[string]struct{})
	keys := make([]string, 0)
	for _, lead := range leads {
		for _, key := range orderedKeys(lead.ExtraFields) {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			keys = append(keys, key)
		}
	}
	return keys
}

// orderedKeys returns one lead's map keys in a stable order. Go map
// iteration is randomized, so without this the column order would
// differ per export.
func orderedKeys(fields map[string]interface{}) []string {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func formatCreatedAt(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func formatExtra(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		// JSON numbers decode as float64; keep integers clean.
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprint(v)
	}
}
