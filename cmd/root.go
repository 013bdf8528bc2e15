package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"fretebot/infrastructure/observability"
)

var (
	cfgFile string
	appCfg  appConfig
)

// rootCmd represents the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:     "fretebot",
	Short:   "Automates freight scheduling on the carrier portal.",
	Long:    "fretebot logs into the carrier's freight portal, scrapes actionable quotes, books shipments and watches their approval status.",
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// credentials usually live in .env next to the binary
		godotenv.Load()

		if err := initializeConfig(); err != nil {
			return err
		}
		if err := viper.Unmarshal(&appCfg); err != nil {
			observability.Initialize(observability.Config{Level: "info", Format: "console"})
			return fmt.Errorf("failed to unmarshal config: %w", err)
		}

		observability.Initialize(appCfg.Logger)
		observability.L().Debug("configuration loaded",
			zap.String("config_file", viper.ConfigFileUsed()),
			zap.String("mode", appCfg.Portal.Mode))
		return nil
	},
}

// Execute runs the CLI.
func Execute() {
	defer observability.Sync()
	if err := rootCmd.Execute(); err != nil {
		observability.L().Error("command failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().Bool("visivel", false, "run the browser headed for inspection")
	viper.BindPFlag("portal.visible", rootCmd.PersistentFlags().Lookup("visivel"))
}

func initializeConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	setConfigDefaults()

	viper.SetEnvPrefix("FRETEBOT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}
