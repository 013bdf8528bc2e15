package browser

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

const dropdownTimeout = 10 * time.Second

// SelectByDataLabel drives the portal's custom dropdown widget: click
// the label element to open the panel, then click the list item whose
// data-label matches the wanted option.
func SelectByDataLabel(page playwright.Page, labelSelector, option string) error {
	label := page.Locator(labelSelector)
	if err := label.Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(float64(dropdownTimeout.Milliseconds())),
	}); err != nil {
		return fmt.Errorf("failed to open dropdown %s: %w", labelSelector, err)
	}

	item := page.Locator(fmt.Sprintf(`//li[@data-label='%s']`, option))
	if err := item.Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(float64(dropdownTimeout.Milliseconds())),
	}); err != nil {
		return fmt.Errorf("failed to pick option %q from dropdown %s: %w", option, labelSelector, err)
	}
	return nil
}

// SelectRoleOption picks an entry from a dropdown whose panel renders
// accessible options, matching the option name exactly.
func SelectRoleOption(page playwright.Page, labelSelector, option string) error {
	label := page.Locator(labelSelector)
	if err := label.Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(float64(dropdownTimeout.Milliseconds())),
	}); err != nil {
		return fmt.Errorf("failed to open dropdown %s: %w", labelSelector, err)
	}

	item := page.GetByRole(*playwright.AriaRoleOption, playwright.PageGetByRoleOptions{
		Name:  option,
		Exact: playwright.Bool(true),
	})
	if err := item.Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(float64(dropdownTimeout.Milliseconds())),
	}); err != nil {
		return fmt.Errorf("failed to pick option %q from dropdown %s: %w", option, labelSelector, err)
	}
	return nil
}
