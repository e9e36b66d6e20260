package commands

import (
	"errors"
	"strings"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/diogo/tradebot/internal/api"
	"github.com/diogo/tradebot/internal/dataset"
	"github.com/diogo/tradebot/internal/models"
)

func sampleTrades() []models.Record {
	return []models.Record{
		models.NewRecord("Symbol", "AAPL", "Qty", "10", "Price", "189.5"),
		models.NewRecord("Symbol", "MSFT", "Qty", "5", "Price", "410.25"),
		models.NewRecord("Symbol", "TSLA", "Qty", "2", "Price", "240"),
	}
}

func TestTradesPlainTable(t *testing.T) {
	env := newTestEnv(t)
	env.mock.Trades = api.TradesResult{Records: sampleTrades()}

	if err := env.run("trades"); err != nil {
		t.Fatalf("trades failed: %v", err)
	}

	lines := strings.Split(strings.TrimRight(env.stdout.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines:\n%s", len(lines), env.stdout.String())
	}
	if fields := strings.Fields(lines[0]); strings.Join(fields, ",") != "Symbol,Qty,Price" {
		t.Errorf("header = %q", lines[0])
	}
	if fields := strings.Fields(lines[2]); strings.Join(fields, ",") != "MSFT,5,410.25" {
		t.Errorf("row 2 = %q", lines[2])
	}
	if env.mock.TradesCalls() != 1 {
		t.Errorf("TradesCalls() = %d", env.mock.TradesCalls())
	}
}

func TestTradesLimit(t *testing.T) {
	env := newTestEnv(t)
	env.mock.Trades = api.TradesResult{Records: sampleTrades()}

	if err := env.run("trades", "-n", "1"); err != nil {
		t.Fatalf("trades failed: %v", err)
	}
	lines := strings.Split(strings.TrimRight(env.stdout.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Errorf("got %d lines, want header + 1 row", len(lines))
	}
}

func TestTradesJSON(t *testing.T) {
	env := newTestEnv(t)
	env.mock.Trades = api.TradesResult{Records: sampleTrades()}

	if err := env.run("trades", "--json"); err != nil {
		t.Fatalf("trades failed: %v", err)
	}

	out := env.stdout.String()
	if !gjson.Valid(out) {
		t.Fatalf("invalid JSON: %s", out)
	}
	rows := gjson.Parse(out).Array()
	if len(rows) != 3 {
		t.Fatalf("rows = %d", len(rows))
	}
	if rows[1].Get("Symbol").String() != "MSFT" {
		t.Errorf("rows[1] = %s", rows[1].Raw)
	}

	var keys []string
	rows[0].ForEach(func(k, _ gjson.Result) bool {
		keys = append(keys, k.String())
		return true
	})
	if strings.Join(keys, ",") != "Symbol,Qty,Price" {
		t.Errorf("keys = %v, want record order", keys)
	}
}

func TestTradesEmpty(t *testing.T) {
	env := newTestEnv(t)
	env.mock.Trades = api.TradesResult{Records: []models.Record{}}

	if err := env.run("trades"); err != nil {
		t.Fatalf("trades failed: %v", err)
	}
	if got := strings.TrimSpace(env.stdout.String()); got != dataset.EmptyText {
		t.Errorf("stdout = %q", got)
	}
}

func TestTradesEmptyJSON(t *testing.T) {
	env := newTestEnv(t)

	if err := env.run("trades", "--json"); err != nil {
		t.Fatalf("trades failed: %v", err)
	}
	if got := strings.TrimSpace(env.stdout.String()); got != "[]" {
		t.Errorf("stdout = %q", got)
	}
}

func TestTradesFailure(t *testing.T) {
	env := newTestEnv(t)
	cause := errors.New("connection refused")
	env.mock.Trades = api.TradesResult{Err: cause}

	err := env.run("trades")
	if !errors.Is(err, cause) {
		t.Errorf("err = %v, want it to wrap the cause", err)
	}
}

func TestTradesTableRendersCells(t *testing.T) {
	out := tradesTable(sampleTrades())
	for _, want := range []string{"Symbol", "Qty", "Price", "AAPL", "410.25", "TSLA"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}
