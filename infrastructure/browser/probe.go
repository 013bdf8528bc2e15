package browser

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

const defaultProbeTimeout = 5 * time.Second

// Candidate is one entry of an ordered selector-fallback list. Portals
// rename element ids between releases, so callers probe several
// selectors and take the first whose element turns up visible.
type Candidate struct {
	Description string
	Timeout     time.Duration
	Wait        func(timeout time.Duration) error
}

// LocatorCandidate wraps a Playwright locator as a probe candidate.
func LocatorCandidate(description string, loc playwright.Locator) Candidate {
	return Candidate{
		Description: description,
		Wait: func(timeout time.Duration) error {
			return loc.WaitFor(playwright.LocatorWaitForOptions{
				State:   playwright.WaitForSelectorStateVisible,
				Timeout: playwright.Float(float64(timeout.Milliseconds())),
			})
		},
	}
}

// FirstVisible probes the candidates in order and returns the index of
// the first whose element became visible within its timeout.
func FirstVisible(logger *zap.Logger, candidates []Candidate) (int, error) {
	for i, c := range candidates {
		timeout := c.Timeout
		if timeout <= 0 {
			timeout = defaultProbeTimeout
		}
		if err := c.Wait(timeout); err != nil {
			logger.Debug("probe missed",
				zap.String("candidate", c.Description),
				zap.Duration("timeout", timeout))
			continue
		}
		logger.Debug("probe matched", zap.String("candidate", c.Description))
		return i, nil
	}
	return -1, fmt.Errorf("no candidate became visible after trying %d selectors", len(candidates))
}
