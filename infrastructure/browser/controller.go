package browser

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"fretebot/domain/entities"
)

// Options configures one browser launch.
type Options struct {
	// Visible runs the browser headed for operator inspection.
	Visible bool
	// State is the serialized context state from a previous login;
	// empty means start cold.
	State entities.SessionState
	// Timeout is applied as the default for navigations and element
	// waits on the page.
	Timeout time.Duration
}

// Controller owns one Playwright browser, its context and its page.
type Controller struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
	timeout time.Duration
	logger  *zap.Logger
}

// Launch starts Chromium and opens a context seeded with the saved
// session state when one is given. A state blob that fails to decode is
// ignored, which just means the run will log in fresh.
func Launch(opts Options, logger *zap.Logger) (*Controller, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	contextOptions := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  1280,
			Height: 720,
		},
		UserAgent: playwright.String("Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	}

	if !opts.State.Empty() {
		var storageState playwright.StorageState
		if err := json.Unmarshal(opts.State, &storageState); err == nil {
			contextOptions.StorageState = storageState.ToOptionalStorageState()
			logger.Debug("seeding browser context from saved session state")
		} else {
			logger.Warn("saved session state is not valid JSON, starting cold", zap.Error(err))
		}
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(!opts.Visible),
		SlowMo:   playwright.Float(50),
		Args: []string{
			"--disable-popup-blocking",
			"--disable-blink-features=AutomationControlled",
			"--disable-dev-shm-usage",
			"--no-sandbox",
			"--disable-infobars",
			"--disable-notifications",
		},
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	context, err := browser.NewContext(contextOptions)
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	page, err := context.NewPage()
	if err != nil {
		context.Close()
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	page.SetDefaultTimeout(float64(timeout.Milliseconds()))
	page.SetDefaultNavigationTimeout(float64(timeout.Milliseconds()))

	logger.Info("browser launched",
		zap.Bool("visible", opts.Visible),
		zap.Bool("seeded_session", !opts.State.Empty()),
		zap.Duration("timeout", timeout))

	return &Controller{
		pw:      pw,
		browser: browser,
		context: context,
		page:    page,
		timeout: timeout,
		logger:  logger,
	}, nil
}

// Page returns the controller's single page.
func (c *Controller) Page() playwright.Page {
	return c.page
}

// Navigate - navigates to url and waits for the network to settle
func (c *Controller) Navigate(url string) error {
	c.logger.Debug("navigating", zap.String("url", url))
	_, err := c.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
		Timeout:   playwright.Float(float64(c.timeout.Milliseconds())),
	})
	if err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

// CaptureState serializes the context's cookies and storage so a later
// run can skip the login.
func (c *Controller) CaptureState() (entities.SessionState, error) {
	state, err := c.context.StorageState()
	if err != nil {
		return nil, fmt.Errorf("failed to read storage state: %w", err)
	}
	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize storage state: %w", err)
	}
	return entities.SessionState(data), nil
}

// Close - closes the browser, tolerating targets that already went away
func (c *Controller) Close() error {
	var closeErr error

	if c.context != nil {
		if err := c.context.Close(); err != nil && !alreadyClosed(err) {
			closeErr = fmt.Errorf("failed to close context: %w", err)
		}
		c.context = nil
	}

	if c.browser != nil {
		if err := c.browser.Close(); err != nil && !alreadyClosed(err) {
			if closeErr != nil {
				closeErr = fmt.Errorf("%v; failed to close browser: %w", closeErr, err)
			} else {
				closeErr = fmt.Errorf("failed to close browser: %w", err)
			}
		}
		c.browser = nil
	}

	if c.pw != nil {
		if err := c.pw.Stop(); err != nil && closeErr == nil && !alreadyClosed(err) {
			closeErr = fmt.Errorf("failed to stop playwright: %w", err)
		}
		c.pw = nil
	}

	return closeErr
}

func alreadyClosed(err error) bool {
	s := err.Error()
	return strings.Contains(s, "closed") || strings.Contains(s, "target closed")
}
