package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/diogo/tradebot/internal/api"
	"github.com/diogo/tradebot/internal/config"
	apierrors "github.com/diogo/tradebot/internal/errors"
	"github.com/diogo/tradebot/internal/models"
	"github.com/diogo/tradebot/internal/render"
	"github.com/diogo/tradebot/internal/tui"
)

// Styles matching the chat TUI
var (
	botLabelStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	botBubbleStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Foreground(colorText).
			Padding(0, 1).
			MarginBottom(1)
)

type askOptions struct {
	output string
	file   string
	raw    bool
}

// NewAskCmd creates the one-shot ask command
func NewAskCmd(deps *Dependencies, flags *globalFlags) *cobra.Command {
	opts := &askOptions{}

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask a single question and print the answer",
		Long: `Ask the trade assistant one question without opening the chat window.

The question comes from the argument, from --file, or from stdin.
When stdout is not a terminal the raw answer is printed without decoration.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question, err := readQuestion(opts.file, args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			if question == "" {
				return cmd.Help()
			}

			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			return runAsk(deps, cfg, question, *opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Save answer to file")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Read question from file")
	cmd.Flags().BoolVar(&opts.raw, "raw", false, "Print only the answer text")

	return cmd
}

// readQuestion picks the question from --file, the argument, or piped stdin
func readQuestion(file string, args []string, stdin io.Reader) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}

	if len(args) > 0 {
		return strings.TrimSpace(args[0]), nil
	}

	if f, ok := stdin.(*os.File); ok {
		stat, err := f.Stat()
		if err != nil || stat.Mode()&os.ModeCharDevice != 0 {
			return "", nil
		}
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// runAsk executes a single question and outputs the answer
func runAsk(deps *Dependencies, cfg config.Config, question string, opts askOptions) error {
	question = strings.TrimSpace(question)
	if question == "" {
		return apierrors.ErrEmptyQuestion
	}

	stdout, stderr := deps.stdout(), deps.stderr()
	rawOutput := opts.raw || !isTerminal(stdout)
	logger := verboseLogger(cfg, stderr)

	client, err := deps.client(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	defer client.Close()

	if logger != nil {
		logger.Printf("Service: %s", client.BaseURL())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var spin *spinner
	if !rawOutput {
		spin = newSpinner(stderr, "Asking the assistant")
		spin.start()
	}

	startTime := time.Now()
	out := client.Ask(ctx, models.QuestionRequest(question))
	if logger != nil {
		logger.Printf("Request took %s (%s)", time.Since(startTime).Round(time.Millisecond), out.Kind)
	}

	if err := outcomeError(out); err != nil {
		if !rawOutput {
			spin.stopWithError()
		}
		return err
	}
	if !rawOutput {
		spin.stopWithSuccess("Done")
	}

	text := out.Text

	if rawOutput {
		if opts.output != "" {
			return writeOutput(opts.output, text)
		}
		fmt.Fprint(stdout, text)
		return nil
	}

	if cfg.CopyToClipboard {
		copyFn := clipboard.WriteAll
		if deps != nil && deps.Clipboard != nil {
			copyFn = deps.Clipboard
		}
		if err := copyFn(text); err != nil {
			warnMsg := lipgloss.NewStyle().Foreground(colorError).Render(
				fmt.Sprintf("⚠ Failed to copy to clipboard: %v", err),
			)
			fmt.Fprintln(stderr, warnMsg)
		} else {
			fmt.Fprintln(stderr, lipgloss.NewStyle().Foreground(colorSuccess).Render("✓ Copied to clipboard"))
		}
	}

	if opts.output != "" {
		if err := writeOutput(opts.output, text); err != nil {
			return err
		}
		fmt.Fprintln(stderr, lipgloss.NewStyle().Foreground(colorSuccess).Render(
			fmt.Sprintf("✓ Answer saved to %s", opts.output),
		))
		return nil
	}

	bubbleWidth := getTerminalWidth(stdout) - 4
	if bubbleWidth < 40 {
		bubbleWidth = 40
	}
	if bubbleWidth > 120 {
		bubbleWidth = 120
	}

	rendered := render.Answer(text, render.OptionsFromConfig(cfg.Markdown).WithWidth(bubbleWidth-4))
	fmt.Fprintln(stdout, botLabelStyle.Render("✦ Assistant"))
	fmt.Fprintln(stdout, botBubbleStyle.Width(bubbleWidth).Render(rendered))
	return nil
}

// outcomeError converts a failed outcome into an error for the exit status
func outcomeError(out api.Outcome) error {
	switch out.Kind {
	case api.OutcomeServiceError:
		return apierrors.NewServiceError(0, out.Text)
	case api.OutcomeTransportError:
		if out.Err != nil {
			return fmt.Errorf("%s: %w", models.BackendUnreachableText, out.Err)
		}
		return fmt.Errorf("%s", models.BackendUnreachableText)
	}
	return nil
}

func writeOutput(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// getTerminalWidth returns the terminal width or a default value
func getTerminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return 80
}

// isTerminal reports whether w is connected to a terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// formatErrorMessage formats an error with a context line and a hint
func formatErrorMessage(err error, context string) string {
	if err == nil {
		return ""
	}
	return tui.FormatError(fmt.Errorf("%s: %w", context, err))
}
