package commands

import (
	"io"
	"log"
	"os"

	"github.com/diogo/tradebot/internal/api"
	"github.com/diogo/tradebot/internal/config"
	"github.com/diogo/tradebot/internal/server"
	"github.com/diogo/tradebot/internal/tui"
)

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	RunChat(client api.ServiceInterface, opts tui.Options) error
}

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// NewClient builds the answering service client. Nil uses api.NewClient.
	NewClient func(cfg config.Config, logger *log.Logger) (api.ServiceInterface, error)

	// TUI is the terminal user interface.
	TUI TUIInterface

	// Stdout and Stderr default to the process streams.
	Stdout io.Writer
	Stderr io.Writer

	// Clipboard writes text to the system clipboard.
	Clipboard func(string) error

	// NewAnswerer builds the LLM backend for serve. Nil uses OpenAI.
	NewAnswerer func(cfg *server.Config) server.Answerer
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) RunChat(client api.ServiceInterface, opts tui.Options) error {
	return tui.RunChat(client, opts)
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		TUI: &DefaultTUI{},
	}
}

func (d *Dependencies) stdout() io.Writer {
	if d == nil || d.Stdout == nil {
		return os.Stdout
	}
	return d.Stdout
}

func (d *Dependencies) stderr() io.Writer {
	if d == nil || d.Stderr == nil {
		return os.Stderr
	}
	return d.Stderr
}

func (d *Dependencies) tui() TUIInterface {
	if d == nil || d.TUI == nil {
		return &DefaultTUI{}
	}
	return d.TUI
}

// client creates the service client for cfg
func (d *Dependencies) client(cfg config.Config, logger *log.Logger) (api.ServiceInterface, error) {
	if d != nil && d.NewClient != nil {
		return d.NewClient(cfg, logger)
	}
	opts := []api.ClientOption{api.WithTimeout(cfg.Timeout())}
	if logger != nil {
		opts = append(opts, api.WithLogger(logger))
	}
	return api.NewClient(cfg.BaseURL, opts...)
}

func (d *Dependencies) answerer(cfg *server.Config) server.Answerer {
	if d != nil && d.NewAnswerer != nil {
		return d.NewAnswerer(cfg)
	}
	return server.NewOpenAIAnswerer(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
}
