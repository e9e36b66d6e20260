package server

import (
	"strings"
	"testing"
)

func TestParseTrades(t *testing.T) {
	input := "\ufeffDate,Symbol,Price\n2024-01-02,AAPL,185.2\n2024-01-03,,nan\n2024-01-04,TSLA\n"

	records, err := parseTrades(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parseTrades() error = %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("len = %d, want 3", len(records))
	}

	if got := strings.Join(records[0].Keys(), ","); got != "Date,Symbol,Price" {
		t.Errorf("keys = %q, want BOM stripped and header order", got)
	}
	if v, ok := records[0].Get("Price"); !ok || v != "185.2" {
		t.Errorf("Price = %q, %v", v, ok)
	}
	if _, ok := records[1].Get("Symbol"); ok {
		t.Error("empty cell should be null")
	}
	if _, ok := records[1].Get("Price"); ok {
		t.Error("nan cell should be null")
	}
	if records[2].Len() != 3 {
		t.Errorf("short row should be padded to the header, got %d fields", records[2].Len())
	}
}

func TestParseTradesHeaderOnly(t *testing.T) {
	records, err := parseTrades(strings.NewReader("Date,Symbol\n"))
	if err != nil {
		t.Fatalf("parseTrades() error = %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Errorf("records = %v, want empty non-nil", records)
	}
}

func TestParseTradesMalformed(t *testing.T) {
	if _, err := parseTrades(strings.NewReader("a,b\n\"unterminated,1\n")); err == nil {
		t.Error("expected an error for a malformed quote")
	}
}

func TestTradePrompt(t *testing.T) {
	p := TradePrompt("P", "S", "What now?")
	for _, want := range []string{"sample of trading data:\n\nP", "analysis : S", "Question: What now?"} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
