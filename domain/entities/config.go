package entities

import (
	"fmt"
	"strings"
	"time"
)

// ExecutionMode controls whether the automation commits changes on the
// portal or stops right before the final confirmation.
type ExecutionMode string

const (
	ModeDryRun ExecutionMode = "dry_run"
	ModeLive   ExecutionMode = "live"
)

// PortalConfig carries everything one portal run needs: where to go,
// which branch to log into, and how patient to be.
type PortalConfig struct {
	AccessURL       string        `json:"access_url"`
	ScrapingPageURL string        `json:"scraping_page_url,omitempty"`
	BranchName      string        `json:"branch_name"`
	Username        string        `json:"username"`
	Password        string        `json:"-"`
	Visible         bool          `json:"visible"`
	WaitSeconds     int           `json:"wait_seconds"`
	Mode            ExecutionMode `json:"mode"`
}

// Validate checks the fields without which no portal operation can start.
func (c PortalConfig) Validate() error {
	var missing []string
	if strings.TrimSpace(c.AccessURL) == "" {
		missing = append(missing, "access_url")
	}
	if strings.TrimSpace(c.Username) == "" {
		missing = append(missing, "username")
	}
	if strings.TrimSpace(c.Password) == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required portal settings: %s", strings.Join(missing, ", "))
	}
	switch c.Mode {
	case "", ModeDryRun, ModeLive:
	default:
		return fmt.Errorf("unknown execution mode %q", c.Mode)
	}
	if c.WaitSeconds < 0 {
		return fmt.Errorf("wait_seconds must not be negative, got %d", c.WaitSeconds)
	}
	return nil
}

// WorkingURL returns the page the automation operates on. The scraping
// page wins when configured; otherwise the portal entry URL is used.
func (c PortalConfig) WorkingURL() string {
	if strings.TrimSpace(c.ScrapingPageURL) != "" {
		return c.ScrapingPageURL
	}
	return c.AccessURL
}

// NavigationTimeout converts the configured wait into a duration,
// falling back to one minute when unset.
func (c PortalConfig) NavigationTimeout() time.Duration {
	if c.WaitSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.WaitSeconds) * time.Second
}

// Live reports whether the run is allowed to commit on the portal.
func (c PortalConfig) Live() bool {
	return c.Mode == ModeLive
}
