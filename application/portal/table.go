package portal

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"fretebot/domain/entities"
)

// ParseQuotesTable extracts the quotes grid from page markup into
// header-keyed rows. Column layout is taken from the grid's own header
// row, never hard-coded, so the parser survives column reordering.
//
// The grid renders a leading action cell in every body row that has no
// matching header; it is dropped before pairing. Rows whose remaining
// cell count still disagrees with the header count are skipped with a
// warning instead of failing the whole scrape.
func ParseQuotesTable(html string, logger *zap.Logger) ([]string, []entities.QuoteRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, nil, fmt.Errorf("parsing page markup: %w", err)
	}

	table := doc.Find(`table[role="grid"]`).First()
	if table.Length() == 0 {
		table = doc.Find("table").First()
	}
	if table.Length() == 0 {
		return nil, nil, fmt.Errorf("quotes grid not found in page markup")
	}

	var headers []string
	table.Find("thead th").Each(func(_ int, th *goquery.Selection) {
		if text := strings.TrimSpace(th.Text()); text != "" {
			headers = append(headers, text)
		}
	})
	if len(headers) == 0 {
		return nil, nil, fmt.Errorf("quotes grid has no header cells")
	}

	var records []entities.QuoteRecord
	table.Find("tbody tr").Each(func(i int, tr *goquery.Selection) {
		var cells []string
		tr.Find("td").Each(func(_ int, td *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(td.Text()))
		})
		if len(cells) == 0 {
			return
		}
		// leading action cell has no header
		cells = cells[1:]
		if len(cells) != len(headers) {
			logger.Warn("skipping grid row with unexpected cell count",
				zap.Int("row", i),
				zap.Int("expected", len(headers)),
				zap.Int("found", len(cells)))
			return
		}
		records = append(records, entities.NewQuoteRecord(headers, cells))
	})

	return headers, records, nil
}

// FindQuoteRow returns the first row whose combined text contains both
// the protocol and the order number. Both keys must hit the same row;
// a row matching only one of them is not the target.
func FindQuoteRow(records []entities.QuoteRecord, protocolID, orderID string) *entities.QuoteRecord {
	if strings.TrimSpace(protocolID) == "" || strings.TrimSpace(orderID) == "" {
		return nil
	}
	for i := range records {
		if records[i].ContainsAll(protocolID, orderID) {
			return &records[i]
		}
	}
	return nil
}

// compositeRowSelector builds the XPath used to locate the grid row
// carrying both identifiers on the live page.
func compositeRowSelector(protocolID, orderID string) string {
	return fmt.Sprintf(`//tr[contains(., %q) and contains(., %q)]`, protocolID, orderID)
}
