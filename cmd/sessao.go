package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sessaoCmd = &cobra.Command{
	Use:   "sessao",
	Short: "Manage the saved portal session",
}

var sessaoLimparCmd = &cobra.Command{
	Use:   "limpar",
	Short: "Discard the saved session so the next run logs in fresh",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signalContext()
		defer cancel()

		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.close()

		if err := rt.store.Delete(ctx, rt.cfg.Username); err != nil {
			return fmt.Errorf("discarding saved session: %w", err)
		}
		fmt.Printf("Sessão salva de %s descartada.\n", rt.cfg.Username)
		return nil
	},
}

func init() {
	sessaoCmd.AddCommand(sessaoLimparCmd)
	rootCmd.AddCommand(sessaoCmd)
}
