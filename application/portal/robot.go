package portal

import (
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"fretebot/infrastructure/diagnostics"
)

// Robot drives the portal operations on an established session:
// scraping the quotes grid, booking a shipment and watching a quote's
// status. It owns no browser; sessions come from the Manager.
type Robot struct {
	logger *zap.Logger
	rec    *diagnostics.Recorder
	filter StatusFilter

	// swappable so monitor tests can fake the grid without a browser
	readStatus func(page playwright.Page, protocolID, orderID string) (string, bool, error)
	reload     func(page playwright.Page, timeout time.Duration) error
}

// NewRobot - creates the portal robot
func NewRobot(logger *zap.Logger, rec *diagnostics.Recorder, filter StatusFilter) *Robot {
	if filter == nil {
		filter = DefaultStatusFilter()
	}
	r := &Robot{
		logger: logger,
		rec:    rec,
		filter: filter,
	}
	r.readStatus = r.readQuoteStatus
	r.reload = reloadPage
	return r
}

// SetStatusFilter replaces the robot's status allow-list.
func (r *Robot) SetStatusFilter(situacoes []string) {
	r.filter = StatusFilter(situacoes)
}
