package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/diogo/tradebot/internal/server"
)

type serveOptions struct {
	envFile string
	addr    string
	dataDir string
}

// NewServeCmd creates the serve command
func NewServeCmd(deps *Dependencies) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the answering service",
		Long: `Run the HTTP service the chat client talks to.

Settings come from the environment and an optional .env file:
  OPENAI_API_KEY, OPENAI_BASE_URL, OPENAI_MODEL (default gpt-4o)
  TRADEBOT_ADDR (default :5000), TRADEBOT_DATA_DIR (default .)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, deps, *opts)
		},
	}

	cmd.Flags().StringVar(&opts.envFile, "env-file", ".env", "Environment file to load")
	cmd.Flags().StringVar(&opts.addr, "addr", "", "Listen address (overrides TRADEBOT_ADDR)")
	cmd.Flags().StringVar(&opts.dataDir, "data-dir", "", "Directory holding the CSV files (overrides TRADEBOT_DATA_DIR)")

	return cmd
}

func runServe(ctx context.Context, deps *Dependencies, opts serveOptions) error {
	cfg, err := server.LoadConfig(opts.envFile)
	if err != nil {
		return err
	}
	if opts.addr != "" {
		cfg.Addr = opts.addr
	}
	if opts.dataDir != "" {
		cfg.DataDir = opts.dataDir
	}

	if cfg.OpenAIAPIKey == "" {
		fmt.Fprintln(deps.stderr(), "Warning: OPENAI_API_KEY is not set; every question will fail")
	}

	gin.SetMode(cfg.GinMode)

	srv, err := server.New(cfg, deps.answerer(cfg))
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}
