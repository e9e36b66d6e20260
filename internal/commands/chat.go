package commands

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/diogo/tradebot/internal/render"
	"github.com/diogo/tradebot/internal/tui"
)

// NewChatCmd creates the chat command
func NewChatCmd(deps *Dependencies, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long: `Start an interactive chat session with the trade assistant.

Enter sends the question, Alt+Enter inserts a newline, Tab moves focus to
the trades table and Ctrl+Y copies the last answer. Esc or Ctrl+C quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(deps, flags)
		},
	}
}

func runChat(deps *Dependencies, flags *globalFlags) error {
	cfg, err := flags.loadConfig()
	if err != nil {
		return err
	}

	// stdout belongs to the renderer; diagnostics go to a file
	var logger *log.Logger
	if cfg.Verbose && cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o700); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := tea.LogToFile(cfg.LogFile, "tradebot")
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logger = log.New(f, "[verbose] ", log.LstdFlags)
		fmt.Fprintf(deps.stderr(), "Logging to %s\n", cfg.LogFile)
	}

	client, err := deps.client(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	defer client.Close()

	opts := tui.DefaultOptions()
	opts.Theme = cfg.TUITheme
	opts.Markdown = render.OptionsFromConfig(cfg.Markdown)
	opts.CopyToClipboard = cfg.CopyToClipboard

	return deps.tui().RunChat(client, opts)
}
