package portal

import (
	"strings"

	"fretebot/domain/entities"
)

// StatusFilter is the allow-list applied to scraped quote rows. The
// business rule for which situations are actionable has flipped between
// releases (APROVADO only vs PENDENTE plus APROVADO), so the list is
// injected rather than baked in. An empty filter keeps every row.
type StatusFilter []string

// DefaultStatusFilter returns the allow-list currently used in
// production.
func DefaultStatusFilter() StatusFilter {
	return StatusFilter{"PENDENTE", "APROVADO"}
}

// Allows reports whether a row with the given situation passes the
// filter. Matching ignores case and surrounding whitespace.
func (f StatusFilter) Allows(status string) bool {
	if len(f) == 0 {
		return true
	}
	status = strings.TrimSpace(status)
	for _, want := range f {
		if strings.EqualFold(status, strings.TrimSpace(want)) {
			return true
		}
	}
	return false
}

// Apply returns the rows whose situation column passes the filter.
// Rows without a situation column only survive an empty filter.
func (f StatusFilter) Apply(records []entities.QuoteRecord) []entities.QuoteRecord {
	if len(f) == 0 {
		return records
	}
	var out []entities.QuoteRecord
	for _, r := range records {
		if f.Allows(r.Status()) {
			out = append(out, r)
		}
	}
	return out
}
