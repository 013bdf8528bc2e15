package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"fretebot/domain/entities"
)

var (
	cotacoesSituacoes []string
	cotacoesJSON      bool
)

var cotacoesCmd = &cobra.Command{
	Use:   "cotacoes",
	Short: "List actionable freight quotes from the portal",
	Long:  "Logs into the portal (reusing a saved session when possible), scrapes the quotes grid and lists the rows whose situation passes the allow-list.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signalContext()
		defer cancel()

		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.close()

		if len(cotacoesSituacoes) > 0 {
			rt.robot.SetStatusFilter(cotacoesSituacoes)
		}

		sess, err := rt.acquire(ctx)
		if err != nil {
			return err
		}
		defer sess.Close()

		records, err := rt.robot.ScrapeQuotes(ctx, sess, rt.cfg)
		if err != nil {
			return err
		}

		if cotacoesJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(records)
		}

		renderQuotes(records)
		return nil
	},
}

func renderQuotes(records []entities.QuoteRecord) {
	if len(records) == 0 {
		fmt.Println("Nenhuma cotação encontrada com as situações configuradas.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)

	header := table.Row{}
	for _, h := range records[0].Headers() {
		header = append(header, h)
	}
	t.AppendHeader(header)

	for _, r := range records {
		row := table.Row{}
		for _, f := range r.Fields {
			row = append(row, f.Value)
		}
		t.AppendRow(row)
	}
	t.Render()
}

func init() {
	cotacoesCmd.Flags().StringSliceVar(&cotacoesSituacoes, "situacao", nil, "status allow-list (overrides config, e.g. --situacao PENDENTE --situacao APROVADO)")
	cotacoesCmd.Flags().BoolVar(&cotacoesJSON, "json", false, "emit the rows as JSON")
	rootCmd.AddCommand(cotacoesCmd)
}
