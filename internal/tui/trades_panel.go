package tui

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/diogo/tradebot/internal/dataset"
	"github.com/diogo/tradebot/internal/models"
)

const (
	minColumnWidth = 4
	maxColumnWidth = 24
)

// tradesPanel shows the sample trade dataset below the chat
type tradesPanel struct {
	table       table.Model
	placeholder string
	width       int
	height      int
	focused     bool
}

func newTradesPanel() tradesPanel {
	t := table.New(
		table.WithFocused(false),
		table.WithStyles(tableStyles()),
	)
	return tradesPanel{
		table:       t,
		placeholder: dataset.LoadingText,
	}
}

// sync rebuilds the table from the loader state
func (p *tradesPanel) sync(status dataset.Status, rows []models.Record) {
	p.placeholder = dataset.Placeholder(status, rows)
	if p.placeholder != "" {
		p.table.SetRows(nil)
		p.table.SetColumns(nil)
		return
	}

	headers := dataset.Columns(rows)
	cells := dataset.Cells(rows)

	// Clear rows first: the table renders each row against the current columns
	p.table.SetRows(nil)
	p.table.SetColumns(buildColumns(headers, cells))
	p.table.SetRows(buildRows(len(headers), cells))
}

// buildColumns sizes each column to its widest header or cell
func buildColumns(headers []string, cells [][]string) []table.Column {
	cols := make([]table.Column, len(headers))
	for i, h := range headers {
		w := runewidth.StringWidth(h)
		for _, row := range cells {
			if i < len(row) {
				if cw := runewidth.StringWidth(row[i]); cw > w {
					w = cw
				}
			}
		}
		cols[i] = table.Column{Title: h, Width: clampWidth(w)}
	}
	return cols
}

// buildRows fits each row to n cells. Values stay in the row's own order,
// so heterogeneous rows keep their positional misalignment.
func buildRows(n int, cells [][]string) []table.Row {
	rows := make([]table.Row, len(cells))
	for i, c := range cells {
		row := make(table.Row, n)
		copy(row, c)
		rows[i] = row
	}
	return rows
}

func clampWidth(w int) int {
	if w < minColumnWidth {
		return minColumnWidth
	}
	if w > maxColumnWidth {
		return maxColumnWidth
	}
	return w
}

func (p *tradesPanel) setSize(width, height int) {
	p.width = width
	p.height = height
	p.table.SetWidth(width - 4)
	// Title line and border take three rows
	h := height - 3
	if h < 2 {
		h = 2
	}
	p.table.SetHeight(h)
}

func (p *tradesPanel) focus() {
	p.focused = true
	p.table.Focus()
}

func (p *tradesPanel) blur() {
	p.focused = false
	p.table.Blur()
}

func (p tradesPanel) update(msg tea.Msg) (tradesPanel, tea.Cmd) {
	var cmd tea.Cmd
	p.table, cmd = p.table.Update(msg)
	return p, cmd
}

func (p tradesPanel) rowCount() int {
	return len(p.table.Rows())
}

func (p tradesPanel) view() string {
	style := tradesPanelStyle
	if p.focused {
		style = focusedPanelStyle
	}

	title := tradesTitleStyle.Render("Trades")
	var body string
	if p.placeholder != "" {
		body = placeholderStyle.Render(p.placeholder)
	} else {
		body = p.table.View()
	}

	return style.Width(p.width - 2).Render(lipgloss.JoinVertical(lipgloss.Left, title, body))
}
