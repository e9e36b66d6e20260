package commands

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/diogo/tradebot/internal/server"
)

type staticAnswerer struct{}

func (staticAnswerer) Complete(ctx context.Context, prompt string, p server.Params) (string, error) {
	return "ok", nil
}

func serveEnv(t *testing.T) *testEnv {
	t.Helper()
	env := newTestEnv(t)
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GIN_MODE", "test")
	env.deps.NewAnswerer = func(cfg *server.Config) server.Answerer {
		return staticAnswerer{}
	}
	return env
}

func TestServeMissingData(t *testing.T) {
	env := serveEnv(t)

	err := runServe(context.Background(), env.deps, serveOptions{
		addr:    "127.0.0.1:0",
		dataDir: t.TempDir(),
	})
	if err == nil {
		t.Fatal("serve should fail without the prompt tables")
	}
	if !strings.Contains(err.Error(), "profits") {
		t.Errorf("err = %v", err)
	}
	if !strings.Contains(env.stderr.String(), "OPENAI_API_KEY") {
		t.Errorf("expected a missing key warning, got %q", env.stderr.String())
	}
}

func TestServeStopsOnCancel(t *testing.T) {
	env := serveEnv(t)

	dir := t.TempDir()
	for _, name := range []string{"trade_profits_summary.csv", "trade_summary.csv", "Trades_sample.csv"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("a,b\n1,2\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- runServe(ctx, env.deps, serveOptions{addr: "127.0.0.1:0", dataDir: dir})
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("runServe() = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop after cancel")
	}
}

func TestServeBadEnvFile(t *testing.T) {
	env := serveEnv(t)

	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("OPENAI_MODEL=\"unterminated\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := runServe(context.Background(), env.deps, serveOptions{envFile: envFile}); err == nil {
		t.Error("malformed env file should fail")
	}
}
