package entities

import (
	"bytes"
	"encoding/json"
	"strings"
)

// StatusColumn is the header of the grid column that carries a quote's
// current situation on the portal.
const StatusColumn = "Situação"

// QuoteField is a single header/value pair from a scraped grid row.
type QuoteField struct {
	Header string `json:"header"`
	Value  string `json:"value"`
}

// QuoteRecord represents one row of the quotes grid. Fields keep the
// portal's column order, so callers can render rows exactly as the site
// shows them regardless of which columns this release has.
type QuoteRecord struct {
	Fields []QuoteField
}

// NewQuoteRecord pairs headers with cell values positionally. Callers
// must pass slices of equal length.
func NewQuoteRecord(headers, cells []string) QuoteRecord {
	fields := make([]QuoteField, len(headers))
	for i, h := range headers {
		fields[i] = QuoteField{Header: h, Value: cells[i]}
	}
	return QuoteRecord{Fields: fields}
}

// Get returns the value under the given header, matching
// case-insensitively.
func (r QuoteRecord) Get(header string) (string, bool) {
	for _, f := range r.Fields {
		if strings.EqualFold(f.Header, header) {
			return f.Value, true
		}
	}
	return "", false
}

// Status returns the row's situation cell, or an empty string when the
// grid has no such column.
func (r QuoteRecord) Status() string {
	v, _ := r.Get(StatusColumn)
	return v
}

// Headers returns the column names in grid order.
func (r QuoteRecord) Headers() []string {
	out := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		out[i] = f.Header
	}
	return out
}

// ContainsAll reports whether every given term appears somewhere in the
// row's combined cell text.
func (r QuoteRecord) ContainsAll(terms ...string) bool {
	var sb strings.Builder
	for _, f := range r.Fields {
		sb.WriteString(f.Value)
		sb.WriteString(" ")
	}
	text := sb.String()
	for _, t := range terms {
		if t == "" || !strings.Contains(text, t) {
			return false
		}
	}
	return true
}

// MarshalJSON renders the record as a JSON object whose keys keep the
// grid's column order.
func (r QuoteRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Header)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
