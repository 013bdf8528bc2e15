package portal

import (
	"context"
	"fmt"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"fretebot/domain/entities"
	"fretebot/infrastructure/browser"
)

// ScrapeQuotes pulls the current quotes grid and returns the rows that
// pass the robot's status filter, in grid order. The grid's header
// landmark must render before extraction starts; a page without it is
// a scrape failure, not an empty result.
func (r *Robot) ScrapeQuotes(ctx context.Context, sess *Session, cfg entities.PortalConfig) ([]entities.QuoteRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	page := sess.Page()

	records, err := r.scrapeQuotes(page, cfg)
	if err != nil {
		r.rec.Capture(page, "raspagem cotacoes")
		return nil, fmt.Errorf("%w: %v", ErrScrape, err)
	}

	kept := r.filter.Apply(records)
	r.logger.Info("quotes scraped",
		zap.Int("rows", len(records)),
		zap.Int("kept", len(kept)),
		zap.Strings("situacoes", r.filter))
	return kept, nil
}

func (r *Robot) scrapeQuotes(page playwright.Page, cfg entities.PortalConfig) ([]entities.QuoteRecord, error) {
	if target := cfg.WorkingURL(); page.URL() != target {
		if _, err := page.Goto(target, playwright.PageGotoOptions{
			WaitUntil: playwright.WaitUntilStateNetworkidle,
		}); err != nil {
			return nil, fmt.Errorf("navigating to quotes page: %w", err)
		}
	}

	if err := r.waitForGrid(page, cfg); err != nil {
		return nil, err
	}

	html, err := page.Content()
	if err != nil {
		return nil, fmt.Errorf("reading page markup: %w", err)
	}

	_, records, err := ParseQuotesTable(html, r.logger)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// waitForGrid waits for the quotes grid header. The exact header id is
// probed first; when the portal renames it the generic grid selector
// still anchors the scrape.
func (r *Robot) waitForGrid(page playwright.Page, cfg entities.PortalConfig) error {
	candidates := []browser.Candidate{
		browser.LocatorCandidate(selQuotesHeader, page.Locator(selQuotesHeader)),
		browser.LocatorCandidate("grid thead", page.Locator(selQuotesGrid+" thead").First()),
	}
	for i := range candidates {
		candidates[i].Timeout = cfg.NavigationTimeout() / 2
	}
	if _, err := browser.FirstVisible(r.logger, candidates); err != nil {
		return fmt.Errorf("quotes grid header never rendered: %w", err)
	}
	return nil
}
