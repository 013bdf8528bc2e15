package cmd

import (
	"fmt"

	"github.com/spf13/viper"

	"fretebot/domain/entities"
	"fretebot/domain/interfaces"
	"fretebot/infrastructure/observability"
	"fretebot/infrastructure/storage"
)

// appConfig is the whole configuration tree, filled from config.yaml,
// environment variables (FRETEBOT_ prefix) and .env.
type appConfig struct {
	Portal       portalSettings       `mapstructure:"portal"`
	Scrape       scrapeSettings       `mapstructure:"scrape"`
	Session      sessionSettings      `mapstructure:"session"`
	Logger       observability.Config `mapstructure:"logger"`
	ArtifactsDir string               `mapstructure:"artifacts_dir"`
}

type portalSettings struct {
	AccessURL       string `mapstructure:"access_url"`
	ScrapingPageURL string `mapstructure:"scraping_page_url"`
	Branch          string `mapstructure:"branch"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Visible         bool   `mapstructure:"visible"`
	WaitSeconds     int    `mapstructure:"wait_seconds"`
	Mode            string `mapstructure:"mode"`
}

type scrapeSettings struct {
	// Situacoes is the status allow-list applied to scraped rows.
	Situacoes []string `mapstructure:"situacoes"`
}

type sessionSettings struct {
	// Backend picks where session state lives: "file" or "sqlite".
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
}

func (p portalSettings) toEntity() entities.PortalConfig {
	mode := entities.ExecutionMode(p.Mode)
	if mode == "" {
		mode = entities.ModeDryRun
	}
	return entities.PortalConfig{
		AccessURL:       p.AccessURL,
		ScrapingPageURL: p.ScrapingPageURL,
		BranchName:      p.Branch,
		Username:        p.Username,
		Password:        p.Password,
		Visible:         p.Visible,
		WaitSeconds:     p.WaitSeconds,
		Mode:            mode,
	}
}

func setConfigDefaults() {
	viper.SetDefault("portal.wait_seconds", 60)
	viper.SetDefault("portal.mode", string(entities.ModeDryRun))
	viper.SetDefault("scrape.situacoes", []string{"PENDENTE", "APROVADO"})
	viper.SetDefault("session.backend", "file")
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("logger.log_file", "fretebot.log")
	viper.SetDefault("logger.max_size_mb", 10)
	viper.SetDefault("logger.max_backups", 5)
	viper.SetDefault("logger.max_age_days", 30)
	viper.SetDefault("artifacts_dir", "artifacts")
}

// openSessionStore builds the configured session store. The returned
// closer releases the backing database when there is one.
func openSessionStore(cfg sessionSettings) (interfaces.SessionStore, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Backend {
	case "", "file":
		store, err := storage.NewFileStore(cfg.Path)
		return store, noop, err
	case "sqlite":
		path := cfg.Path
		if path == "" {
			path = "fretebot_sessions.db"
		}
		db, err := storage.OpenSQLite(path)
		if err != nil {
			return nil, noop, err
		}
		store, err := storage.NewSQLiteStore(db)
		if err != nil {
			db.Close()
			return nil, noop, err
		}
		return store, db.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown session backend %q (want file or sqlite)", cfg.Backend)
	}
}
