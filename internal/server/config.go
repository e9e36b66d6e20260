package server

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	"github.com/diogo/tradebot/internal/models"
)

// Config holds the answering service settings, read from the environment.
type Config struct {
	Addr string `env:"TRADEBOT_ADDR" envDefault:":5000"`

	// LLM settings
	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`
	OpenAIModel   string `env:"OPENAI_MODEL" envDefault:"gpt-4o"`

	// Data files, relative to DataDir unless absolute
	DataDir     string `env:"TRADEBOT_DATA_DIR" envDefault:"."`
	ProfitsFile string `env:"TRADEBOT_PROFITS_CSV" envDefault:"trade_profits_summary.csv"`
	SummaryFile string `env:"TRADEBOT_SUMMARY_CSV" envDefault:"trade_summary.csv"`
	TradesFile  string `env:"TRADEBOT_TRADES_CSV" envDefault:"Trades_sample.csv"`

	// GinMode is passed to gin.SetMode (debug, release, test)
	GinMode string `env:"GIN_MODE" envDefault:"release"`
}

// LoadConfig reads envFile (when present) into the process environment and
// parses Config from it. A missing env file is not an error.
func LoadConfig(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = models.DefaultLLMModel
	}
	return cfg, nil
}

func (c *Config) path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

// ProfitsPath is the precomputed profits table used in trade prompts
func (c *Config) ProfitsPath() string { return c.path(c.ProfitsFile) }

// SummaryPath is the precomputed analysis table used in trade prompts
func (c *Config) SummaryPath() string { return c.path(c.SummaryFile) }

// TradesPath is the sample served by /api/trades
func (c *Config) TradesPath() string { return c.path(c.TradesFile) }
