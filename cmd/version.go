package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the fretebot version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("fretebot", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
