package render

import "github.com/diogo/tradebot/internal/config"

// LoadOptions reads markdown settings from the config file and applies the
// given width. A missing or unreadable config falls back to defaults.
func LoadOptions(width int) Options {
	cfg, err := config.LoadConfig()
	if err != nil {
		return DefaultOptions().WithWidth(width)
	}
	return OptionsFromConfig(cfg.Markdown).WithWidth(width)
}
