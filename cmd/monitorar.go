package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"fretebot/application/portal"
	"fretebot/domain/entities"
)

var (
	monitorarProtocolo string
	monitorarPedido    string
	monitorarIntervalo time.Duration
	monitorarMaximo    time.Duration
)

var monitorarCmd = &cobra.Command{
	Use:   "monitorar",
	Short: "Watch a quote until the portal publishes a final status",
	Long:  "Polls the quotes grid until the quote is approved or rejected, the maximum wait elapses, or the watch is interrupted with Ctrl-C.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if monitorarProtocolo == "" || monitorarPedido == "" {
			return fmt.Errorf("--protocolo and --pedido are required")
		}

		ctx, cancel := signalContext()
		defer cancel()

		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.close()

		sess, err := rt.acquire(ctx)
		if err != nil {
			return err
		}
		defer sess.Close()

		result := rt.robot.MonitorStatus(ctx, sess, rt.cfg, monitorarProtocolo, monitorarPedido, portal.MonitorOptions{
			PollInterval: monitorarIntervalo,
			MaxWait:      monitorarMaximo,
		})
		rt.persistState(ctx, result.NewSessionState)

		fmt.Println(result.UserMessage)
		if result.Status == entities.StatusError {
			return fmt.Errorf("monitoramento falhou: %s", result.Message)
		}
		return nil
	},
}

func init() {
	monitorarCmd.Flags().StringVar(&monitorarProtocolo, "protocolo", "", "quote protocol number")
	monitorarCmd.Flags().StringVar(&monitorarPedido, "pedido", "", "order number")
	monitorarCmd.Flags().DurationVar(&monitorarIntervalo, "intervalo", 30*time.Second, "pause between grid reloads")
	monitorarCmd.Flags().DurationVar(&monitorarMaximo, "tempo-maximo", 30*time.Minute, "give up after this long without a final status")
	rootCmd.AddCommand(monitorarCmd)
}
