package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fretebot/domain/entities"
)

var (
	agendarRequestFile string
	agendarProtocolo   string
	agendarPedido      string
	agendarMotorista   string
	agendarCPF         string
	agendarPlaca       string
	agendarUF          string
	agendarCarroceria  string
	agendarReboques    []string
	agendarContato     string
	agendarTelefone    string
	agendarLive        bool
)

var agendarCmd = &cobra.Command{
	Use:   "agendar",
	Short: "Book a shipment for an approved quote",
	Long:  "Locates the quote by protocol and order number, fills the scheduling form, registers the driver and confirms the booking. Without --executar the run stops right before the final save.",
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := buildScheduleRequest()
		if err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.close()

		if agendarLive {
			rt.cfg.Mode = entities.ModeLive
		}

		sess, err := rt.acquire(ctx)
		if err != nil {
			return err
		}
		defer sess.Close()

		result := rt.robot.SubmitSchedule(ctx, sess, rt.cfg, req)
		rt.persistState(ctx, result.NewSessionState)

		fmt.Println(result.UserMessage)
		if result.Status == entities.StatusError {
			return fmt.Errorf("agendamento falhou: %s", result.Message)
		}
		return nil
	},
}

// buildScheduleRequest assembles the request from --request JSON or
// from the individual flags.
func buildScheduleRequest() (entities.ScheduleRequest, error) {
	var req entities.ScheduleRequest

	if agendarRequestFile != "" {
		data, err := os.ReadFile(agendarRequestFile)
		if err != nil {
			return req, fmt.Errorf("reading request file: %w", err)
		}
		if err := json.Unmarshal(data, &req); err != nil {
			return req, fmt.Errorf("decoding request file: %w", err)
		}
	} else {
		req = entities.ScheduleRequest{
			ProtocolID: agendarProtocolo,
			OrderID:    agendarPedido,
			Driver: entities.Driver{
				FullName:   agendarMotorista,
				NationalID: agendarCPF,
			},
			Vehicle: entities.Vehicle{
				Plate:    agendarPlaca,
				State:    agendarUF,
				BodyType: agendarCarroceria,
			},
			ContactName:  agendarContato,
			ContactPhone: agendarTelefone,
		}
		for _, spec := range agendarReboques {
			pair, err := parseTrailer(spec)
			if err != nil {
				return req, err
			}
			req.Vehicle.Trailers = append(req.Vehicle.Trailers, pair)
		}
	}

	return req, req.Validate()
}

func parseTrailer(spec string) (entities.TrailerPair, error) {
	for i := len(spec) - 1; i >= 0; i-- {
		if spec[i] == ':' {
			return entities.TrailerPair{Plate: spec[:i], State: spec[i+1:]}, nil
		}
	}
	return entities.TrailerPair{}, fmt.Errorf("invalid trailer %q, want PLACA:UF", spec)
}

func init() {
	agendarCmd.Flags().StringVar(&agendarRequestFile, "request", "", "JSON file with the full schedule request")
	agendarCmd.Flags().StringVar(&agendarProtocolo, "protocolo", "", "quote protocol number")
	agendarCmd.Flags().StringVar(&agendarPedido, "pedido", "", "order number")
	agendarCmd.Flags().StringVar(&agendarMotorista, "motorista", "", "driver full name")
	agendarCmd.Flags().StringVar(&agendarCPF, "cpf", "", "driver CPF")
	agendarCmd.Flags().StringVar(&agendarPlaca, "placa", "", "truck plate")
	agendarCmd.Flags().StringVar(&agendarUF, "uf", "", "truck plate state (UF)")
	agendarCmd.Flags().StringVar(&agendarCarroceria, "carroceria", "", "body type")
	agendarCmd.Flags().StringSliceVar(&agendarReboques, "reboque", nil, "trailer as PLACA:UF, up to three")
	agendarCmd.Flags().StringVar(&agendarContato, "contato", "", "contact name")
	agendarCmd.Flags().StringVar(&agendarTelefone, "telefone", "", "contact phone, format (DD) NNNN-NNNN")
	agendarCmd.Flags().BoolVar(&agendarLive, "executar", false, "actually confirm the booking (overrides the configured dry-run mode)")
	rootCmd.AddCommand(agendarCmd)
}
