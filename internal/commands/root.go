// Package commands provides CLI commands for tradebot.
package commands

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diogo/tradebot/internal/config"
)

var (
	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// globalFlags are shared by every subcommand
type globalFlags struct {
	url     string
	verbose bool
	timeout int
}

// loadConfig reads the config file and applies flag overrides.
// Flags win over TRADEBOT_URL, which wins over the file.
func (f *globalFlags) loadConfig() (config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return cfg, err
	}
	if u := strings.TrimSpace(f.url); u != "" {
		cfg.BaseURL = strings.TrimRight(u, "/")
	}
	if f.verbose {
		cfg.Verbose = true
	}
	if f.timeout > 0 {
		cfg.RequestTimeout = f.timeout
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// verboseLogger returns a stderr logger when verbose output is enabled
func verboseLogger(cfg config.Config, w io.Writer) *log.Logger {
	if !cfg.Verbose {
		return nil
	}
	return log.New(w, "[verbose] ", 0)
}

// NewRootCmd builds the command tree
func NewRootCmd(deps *Dependencies) *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "tradebot",
		Short: "Chat with an assistant about your trading data",
		Long: `tradebot is a terminal chat client for a trade-analysis assistant.
Run without arguments to open the chat window: the assistant greets you,
answers questions about your trades, and a table of sample trades is shown
below the conversation.

Examples:
  tradebot                              Start interactive chat
  tradebot ask "What was my best trade?"
  tradebot trades                       Print the sample trades table
  tradebot serve                        Run the answering service
  tradebot --url http://host:5000       Use another service`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Fprintf(cmd.OutOrStdout(), "tradebot %s (built %s)\n", Version, BuildTime)
				return nil
			}
			return runChat(deps, flags)
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.url, "url", "u", "", "Answering service URL (default from config or "+config.EnvBaseURL+")")
	cmd.PersistentFlags().BoolVar(&flags.verbose, "verbose", false, "Print diagnostics to stderr")
	cmd.PersistentFlags().IntVar(&flags.timeout, "timeout", 0, "Request timeout in seconds (0 = no limit)")
	cmd.Flags().BoolP("version", "v", false, "Show version and exit")

	cmd.AddCommand(NewChatCmd(deps, flags))
	cmd.AddCommand(NewAskCmd(deps, flags))
	cmd.AddCommand(NewTradesCmd(deps, flags))
	cmd.AddCommand(NewServeCmd(deps))
	cmd.AddCommand(NewConfigCmd(deps, flags))

	return cmd
}

var rootCmd = NewRootCmd(NewDependencies())

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Error"))
		os.Exit(1)
	}
}
