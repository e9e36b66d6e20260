package render

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Palette is the color scheme for the chat window and the trades panel
type Palette struct {
	Name string

	Border  lipgloss.Color
	Surface lipgloss.Color

	// Chat bubbles
	UserBubble lipgloss.Color
	UserText   lipgloss.Color
	BotBubble  lipgloss.Color
	BotText    lipgloss.Color

	Accent  lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	// Trades table
	HeaderFg   lipgloss.Color
	HeaderBg   lipgloss.Color
	SelectedFg lipgloss.Color
	SelectedBg lipgloss.Color

	TextDim lipgloss.Color
}

var palettes = map[string]Palette{
	"tokyonight": {
		Name:       "tokyonight",
		Border:     lipgloss.Color("#414868"),
		Surface:    lipgloss.Color("#24283b"),
		UserBubble: lipgloss.Color("#7aa2f7"),
		UserText:   lipgloss.Color("#1a1b26"),
		BotBubble:  lipgloss.Color("#2f3549"),
		BotText:    lipgloss.Color("#c0caf5"),
		Accent:     lipgloss.Color("#bb9af7"),
		Warning:    lipgloss.Color("#e0af68"),
		Error:      lipgloss.Color("#f7768e"),
		HeaderFg:   lipgloss.Color("#1a1b26"),
		HeaderBg:   lipgloss.Color("#9ece6a"),
		SelectedFg: lipgloss.Color("#c0caf5"),
		SelectedBg: lipgloss.Color("#3b4261"),
		TextDim:    lipgloss.Color("#565f89"),
	},
	"nord": {
		Name:       "nord",
		Border:     lipgloss.Color("#4c566a"),
		Surface:    lipgloss.Color("#3b4252"),
		UserBubble: lipgloss.Color("#88c0d0"),
		UserText:   lipgloss.Color("#2e3440"),
		BotBubble:  lipgloss.Color("#434c5e"),
		BotText:    lipgloss.Color("#eceff4"),
		Accent:     lipgloss.Color("#b48ead"),
		Warning:    lipgloss.Color("#ebcb8b"),
		Error:      lipgloss.Color("#bf616a"),
		HeaderFg:   lipgloss.Color("#2e3440"),
		HeaderBg:   lipgloss.Color("#a3be8c"),
		SelectedFg: lipgloss.Color("#eceff4"),
		SelectedBg: lipgloss.Color("#4c566a"),
		TextDim:    lipgloss.Color("#7b88a1"),
	},
	"light": {
		Name:       "light",
		Border:     lipgloss.Color("#c8c8c8"),
		Surface:    lipgloss.Color("#f5f5f5"),
		UserBubble: lipgloss.Color("#0b84ff"),
		UserText:   lipgloss.Color("#ffffff"),
		BotBubble:  lipgloss.Color("#e5e5ea"),
		BotText:    lipgloss.Color("#1c1c1e"),
		Accent:     lipgloss.Color("#8e44ad"),
		Warning:    lipgloss.Color("#b7791f"),
		Error:      lipgloss.Color("#c0392b"),
		HeaderFg:   lipgloss.Color("#ffffff"),
		HeaderBg:   lipgloss.Color("#2e7d32"),
		SelectedFg: lipgloss.Color("#1c1c1e"),
		SelectedBg: lipgloss.Color("#dfe6ee"),
		TextDim:    lipgloss.Color("#8e8e93"),
	},
}

// DefaultPaletteName is used when the configured theme is unknown
const DefaultPaletteName = "tokyonight"

// PaletteByName returns the palette called name
func PaletteByName(name string) (Palette, bool) {
	p, ok := palettes[name]
	return p, ok
}

// ResolvePalette returns the named palette or the default one
func ResolvePalette(name string) Palette {
	if p, ok := palettes[name]; ok {
		return p
	}
	return palettes[DefaultPaletteName]
}

// PaletteNames returns the sorted list of palette names
func PaletteNames() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
