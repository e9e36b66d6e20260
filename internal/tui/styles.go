// Package tui provides the terminal user interface for tradebot.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/tradebot/internal/errors"
	"github.com/diogo/tradebot/internal/render"
)

// Active palette (updated from theme)
var palette render.Palette

// Style variables (rebuilt when theme changes)
var (
	headerStyle   lipgloss.Style
	titleStyle    lipgloss.Style
	subtitleStyle lipgloss.Style
	hintStyle     lipgloss.Style

	// Messages area panel
	messagesAreaStyle lipgloss.Style

	userBubbleStyle lipgloss.Style
	userLabelStyle  lipgloss.Style
	botBubbleStyle  lipgloss.Style
	botLabelStyle   lipgloss.Style
	typingStyle     lipgloss.Style

	inputPanelStyle lipgloss.Style
	inputLabelStyle lipgloss.Style
	loadingStyle    lipgloss.Style

	// Trades panel
	tradesPanelStyle  lipgloss.Style
	tradesTitleStyle  lipgloss.Style
	placeholderStyle  lipgloss.Style
	focusedPanelStyle lipgloss.Style

	statusBarStyle  lipgloss.Style
	statusKeyStyle  lipgloss.Style
	statusDescStyle lipgloss.Style
	flashStyle      lipgloss.Style

	errorStyle lipgloss.Style
)

func init() {
	UpdateTheme(render.DefaultPaletteName)
}

// UpdateTheme switches the active palette and rebuilds all styles.
// Unknown names fall back to the default palette.
func UpdateTheme(name string) {
	palette = render.ResolvePalette(name)
	rebuildStyles()
}

func rebuildStyles() {
	headerStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(palette.Border).
		Padding(0, 2)

	titleStyle = lipgloss.NewStyle().
		Foreground(palette.UserBubble).
		Bold(true)

	subtitleStyle = lipgloss.NewStyle().
		Foreground(palette.TextDim)

	hintStyle = lipgloss.NewStyle().
		Foreground(palette.TextDim).
		Italic(true)

	messagesAreaStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(palette.Border).
		Padding(0, 1)

	// User bubbles sit on the right, bot bubbles on the left
	userBubbleStyle = lipgloss.NewStyle().
		Background(palette.UserBubble).
		Foreground(palette.UserText).
		Padding(0, 1)

	userLabelStyle = lipgloss.NewStyle().
		Foreground(palette.UserBubble).
		Bold(true)

	botBubbleStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(palette.Border).
		Foreground(palette.BotText).
		Padding(0, 1)

	botLabelStyle = lipgloss.NewStyle().
		Foreground(palette.Accent).
		Bold(true)

	typingStyle = lipgloss.NewStyle().
		Foreground(palette.TextDim).
		Bold(true)

	inputPanelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(palette.Border).
		Padding(0, 1)

	inputLabelStyle = lipgloss.NewStyle().
		Foreground(palette.UserBubble).
		Bold(true)

	loadingStyle = lipgloss.NewStyle().
		Foreground(palette.Accent).
		Bold(true)

	tradesPanelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(palette.Border).
		Padding(0, 1)

	focusedPanelStyle = tradesPanelStyle.
		BorderForeground(palette.Accent)

	tradesTitleStyle = lipgloss.NewStyle().
		Foreground(palette.HeaderBg).
		Bold(true)

	placeholderStyle = lipgloss.NewStyle().
		Foreground(palette.TextDim).
		Italic(true)

	statusBarStyle = lipgloss.NewStyle().
		Foreground(palette.TextDim)

	statusKeyStyle = lipgloss.NewStyle().
		Foreground(palette.BotText).
		Bold(true)

	statusDescStyle = lipgloss.NewStyle().
		Foreground(palette.TextDim)

	flashStyle = lipgloss.NewStyle().
		Foreground(palette.Warning)

	errorStyle = lipgloss.NewStyle().
		Foreground(palette.Error).
		Bold(true)
}

// tableStyles returns bubbles/table styles for the active palette
func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(palette.Border).
		BorderBottom(true).
		Foreground(palette.HeaderFg).
		Background(palette.HeaderBg).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(palette.SelectedFg).
		Background(palette.SelectedBg).
		Bold(false)
	return s
}

// FormatError returns a styled error message with a hint for the failure class.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	dimStyle := lipgloss.NewStyle().Foreground(palette.TextDim)

	var sb strings.Builder
	sb.WriteString(errorStyle.Render(fmt.Sprintf("✗ %v", err)))

	if status := errors.GetHTTPStatus(err); status > 0 {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  HTTP Status: %d", status)))
	}

	switch {
	case errors.IsServiceError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: The service reported a problem. Check its logs"))
	case errors.IsTimeoutError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: Request timed out. Raise request_timeout or try again"))
	case errors.IsNetworkError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: Is the service running? Start it with 'tradebot serve'"))
	case errors.IsParseError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: The service returned an unexpected payload. Check --url"))
	}

	return sb.String()
}

// PrintError prints a styled error message.
func PrintError(err error) {
	if err == nil {
		return
	}
	fmt.Println(FormatError(err))
}
