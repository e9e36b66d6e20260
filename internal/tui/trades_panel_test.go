package tui

import (
	"strings"
	"testing"

	"github.com/diogo/tradebot/internal/dataset"
	"github.com/diogo/tradebot/internal/models"
)

func TestTradesPanelSync(t *testing.T) {
	rows := []models.Record{
		models.NewRecord("Symbol", "AAPL", "Profit", "12.5"),
		models.NewRecord("Symbol", "TSLA", "Profit", "-3"),
	}

	p := newTradesPanel()
	p.setSize(80, tradesPanelHeight)
	p.sync(dataset.StatusLoaded, rows)

	if p.placeholder != "" {
		t.Fatalf("placeholder = %q", p.placeholder)
	}
	if p.rowCount() != 2 {
		t.Errorf("rowCount() = %d", p.rowCount())
	}

	view := p.view()
	for _, want := range []string{"Symbol", "Profit", "AAPL", "TSLA"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestTradesPanelPlaceholders(t *testing.T) {
	tests := []struct {
		status dataset.Status
		rows   []models.Record
		want   string
	}{
		{dataset.StatusLoading, nil, dataset.LoadingText},
		{dataset.StatusLoaded, nil, dataset.EmptyText},
		{dataset.StatusFailed, nil, dataset.EmptyText},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			p := newTradesPanel()
			p.setSize(80, tradesPanelHeight)
			p.sync(tt.status, tt.rows)

			if !strings.Contains(p.view(), tt.want) {
				t.Errorf("view = %q, want %q", p.view(), tt.want)
			}
		})
	}
}

func TestBuildRowsKeepsPositionalValues(t *testing.T) {
	cells := [][]string{
		{"AAPL", "10"},
		{"5", "TSLA", "extra"},
		{"only"},
	}

	rows := buildRows(2, cells)

	if rows[1][0] != "5" || rows[1][1] != "TSLA" || len(rows[1]) != 2 {
		t.Errorf("row 1 = %v, want values in the row's own order", rows[1])
	}
	if rows[2][0] != "only" || rows[2][1] != "" {
		t.Errorf("row 2 = %v, want padded", rows[2])
	}
}

func TestBuildColumnsWidth(t *testing.T) {
	cols := buildColumns(
		[]string{"ID", "Description"},
		[][]string{{"1", strings.Repeat("x", 100)}},
	)

	if cols[0].Width != minColumnWidth {
		t.Errorf("cols[0].Width = %d, want %d", cols[0].Width, minColumnWidth)
	}
	if cols[1].Width != maxColumnWidth {
		t.Errorf("cols[1].Width = %d, want %d", cols[1].Width, maxColumnWidth)
	}
}
