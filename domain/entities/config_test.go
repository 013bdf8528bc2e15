package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() PortalConfig {
	return PortalConfig{
		AccessURL: "https://portal.example.com/login",
		Username:  "transportadora01",
		Password:  "s3cr3t",
	}
}

func TestPortalConfigValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	cfg := validConfig()
	cfg.Username = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "username")

	cfg = validConfig()
	cfg.Password = "   "
	require.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.AccessURL = ""
	require.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Mode = "turbo"
	require.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.WaitSeconds = -1
	require.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Mode = ModeLive
	require.NoError(t, cfg.Validate())
}

func TestPortalConfigWorkingURL(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, cfg.AccessURL, cfg.WorkingURL())

	cfg.ScrapingPageURL = "https://portal.example.com/minhas-cotacoes"
	assert.Equal(t, cfg.ScrapingPageURL, cfg.WorkingURL())
}

func TestPortalConfigNavigationTimeout(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, 60*time.Second, cfg.NavigationTimeout())

	cfg.WaitSeconds = 15
	assert.Equal(t, 15*time.Second, cfg.NavigationTimeout())
}
