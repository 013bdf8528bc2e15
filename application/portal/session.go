package portal

import (
	"context"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"fretebot/domain/entities"
	"fretebot/infrastructure/browser"
)

// Portal selectors. Ids come from the carrier's JSF markup; the button
// labels carry a leading icon glyph that is part of the accessible
// name, so the space prefix is intentional.
const (
	selLoginUser    = "#j_username"
	selLoginPass    = "#j_password"
	selBranchLabel  = "#filial_label"
	selQuotesGrid   = `table[role="grid"]`
	selQuotesHeader = `[id="form-minhas-cotacoes:tbFretes_head"]`

	labelLoginButton = " Acessar"

	sessionProbeTimeout = 8 * time.Second
)

// portalBrowser is the slice of the browser controller that session
// handling needs, kept narrow so tests can fake the browser layer.
type portalBrowser interface {
	Page() playwright.Page
	Navigate(url string) error
	CaptureState() (entities.SessionState, error)
	Close() error
}

// Session is an authenticated page handle plus the browser that owns
// it. Callers must Close it when done.
type Session struct {
	ctrl       portalBrowser
	page       playwright.Page
	freshState entities.SessionState
}

// Page returns the authenticated page.
func (s *Session) Page() playwright.Page {
	return s.page
}

// FreshState returns the session state captured after a fresh login,
// or nil when a saved session was reused as-is. The caller decides
// where (and whether) to persist it.
func (s *Session) FreshState() entities.SessionState {
	return s.freshState
}

// Close shuts the browser down.
func (s *Session) Close() error {
	return s.ctrl.Close()
}

// Manager establishes authenticated portal sessions, reusing saved
// browser state when it still works and logging in fresh otherwise.
type Manager struct {
	logger *zap.Logger

	// swappable so session tests can fake the browser layer
	launch   func(browser.Options, *zap.Logger) (portalBrowser, error)
	validate func(page playwright.Page) bool
}

// NewManager - creates a portal session manager
func NewManager(logger *zap.Logger) *Manager {
	m := &Manager{
		logger: logger,
		launch: func(opts browser.Options, logger *zap.Logger) (portalBrowser, error) {
			return browser.Launch(opts, logger)
		},
	}
	m.validate = m.sessionValid
	return m
}

// Acquire returns an authenticated session on the portal's working
// page. When prior state is given the manager first tries to reuse it;
// only if the portal still shows the login form does it authenticate
// again. Reusing a valid session performs no login interaction at all.
func (m *Manager) Acquire(ctx context.Context, cfg entities.PortalConfig, prior entities.SessionState) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPrecondition, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctrl, err := m.launch(browser.Options{
		Visible: cfg.Visible,
		State:   prior,
		Timeout: cfg.NavigationTimeout(),
	}, m.logger)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSession, err)
	}

	page := ctrl.Page()

	if err := ctrl.Navigate(cfg.WorkingURL()); err != nil {
		ctrl.Close()
		return nil, fmt.Errorf("%w: portal unreachable: %v", ErrSession, err)
	}

	if m.validate(page) {
		m.logger.Info("saved session still valid, skipping login",
			zap.String("account", cfg.Username))
		return &Session{ctrl: ctrl, page: page}, nil
	}

	m.logger.Info("no usable session, logging in",
		zap.String("account", cfg.Username),
		zap.String("branch", cfg.BranchName))

	if err := m.login(page, cfg); err != nil {
		ctrl.Close()
		return nil, fmt.Errorf("%w: %v", ErrSession, err)
	}

	if err := ctrl.Navigate(cfg.WorkingURL()); err != nil {
		ctrl.Close()
		return nil, fmt.Errorf("%w: working page unreachable after login: %v", ErrSession, err)
	}

	if !m.validate(page) {
		ctrl.Close()
		return nil, fmt.Errorf("%w: quotes grid did not appear after login", ErrSession)
	}

	state, err := ctrl.CaptureState()
	if err != nil {
		// the session works even if we cannot persist it
		m.logger.Warn("could not capture session state after login", zap.Error(err))
	}

	return &Session{ctrl: ctrl, page: page, freshState: state}, nil
}

// sessionValid checks both sides of the session probe: the login form
// must be absent and the quotes grid must actually render. A page that
// merely lacks the login form is not proof of a working session.
func (m *Manager) sessionValid(page playwright.Page) bool {
	if count, err := page.Locator(selLoginUser).Count(); err == nil && count > 0 {
		return false
	}
	err := page.Locator(selQuotesGrid).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(float64(sessionProbeTimeout.Milliseconds())),
	})
	return err == nil
}

func (m *Manager) login(page playwright.Page, cfg entities.PortalConfig) error {
	if cfg.BranchName != "" {
		if err := browser.SelectRoleOption(page, selBranchLabel, cfg.BranchName); err != nil {
			return fmt.Errorf("selecting branch %q: %w", cfg.BranchName, err)
		}
	}

	if err := page.Locator(selLoginUser).Fill(cfg.Username); err != nil {
		return fmt.Errorf("filling username: %w", err)
	}
	if err := page.Locator(selLoginPass).Fill(cfg.Password); err != nil {
		return fmt.Errorf("filling password: %w", err)
	}

	loginButton := page.GetByRole(*playwright.AriaRoleButton, playwright.PageGetByRoleOptions{
		Name: labelLoginButton,
	})
	if err := loginButton.Click(); err != nil {
		return fmt.Errorf("clicking login button: %w", err)
	}

	if err := page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateNetworkidle,
		Timeout: playwright.Float(float64(cfg.NavigationTimeout().Milliseconds())),
	}); err != nil {
		m.logger.Warn("page did not settle after login submit", zap.Error(err))
	}
	return nil
}
