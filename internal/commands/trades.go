package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/diogo/tradebot/internal/config"
	"github.com/diogo/tradebot/internal/dataset"
	"github.com/diogo/tradebot/internal/models"
)

type tradesOptions struct {
	json  bool
	limit int
}

// NewTradesCmd creates the trades command
func NewTradesCmd(deps *Dependencies, flags *globalFlags) *cobra.Command {
	opts := &tradesOptions{}

	cmd := &cobra.Command{
		Use:   "trades",
		Short: "Print the sample trades table",
		Long: `Fetch the sample trades from the answering service and print them.
Columns follow the key order of the first record.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			return runTrades(cmd.Context(), deps, cfg, *opts)
		},
	}

	cmd.Flags().BoolVar(&opts.json, "json", false, "Print records as JSON")
	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "Print at most n rows (0 = all)")

	return cmd
}

func runTrades(ctx context.Context, deps *Dependencies, cfg config.Config, opts tradesOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	client, err := deps.client(cfg, verboseLogger(cfg, deps.stderr()))
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	defer client.Close()

	loader := dataset.NewLoader()
	loader.Start()
	loader.Finish(client.ListTrades(ctx))
	if err := loader.Err(); err != nil {
		return fmt.Errorf("failed to load trades: %w", err)
	}

	rows := loader.Rows()
	if opts.limit > 0 && len(rows) > opts.limit {
		rows = rows[:opts.limit]
	}

	out := deps.stdout()
	switch {
	case opts.json:
		return writeTradesJSON(out, rows)
	case len(rows) == 0:
		fmt.Fprintln(out, dataset.EmptyText)
		return nil
	case isTerminal(out):
		fmt.Fprintln(out, tradesTable(rows))
		return nil
	default:
		return writeTradesTSV(out, rows)
	}
}

func writeTradesJSON(w io.Writer, rows []models.Record) error {
	if rows == nil {
		rows = []models.Record{}
	}
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode trades: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// writeTradesTSV prints an aligned plain table for pipes and files
func writeTradesTSV(w io.Writer, rows []models.Record) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(dataset.Columns(rows), "\t"))
	for _, cells := range dataset.Cells(rows) {
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

// tradesTable renders a styled table for terminals
func tradesTable(rows []models.Record) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorSuccess).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Foreground(colorText).Padding(0, 1)
	oddStyle := cellStyle.Foreground(colorTextDim)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorTextMute)).
		Headers(dataset.Columns(rows)...).
		Rows(dataset.Cells(rows)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row%2 == 1:
				return oddStyle
			default:
				return cellStyle
			}
		})

	return t.Render()
}
