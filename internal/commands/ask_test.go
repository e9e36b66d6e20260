package commands

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/diogo/tradebot/internal/api"
	apierrors "github.com/diogo/tradebot/internal/errors"
	"github.com/diogo/tradebot/internal/models"
)

func TestAskPrintsRawAnswer(t *testing.T) {
	env := newTestEnv(t)
	env.mock.AskOutcome = api.AnswerOutcome("You made **$1,200**.")

	if err := env.run("ask", "  How much did I make?  "); err != nil {
		t.Fatalf("ask failed: %v", err)
	}

	// stdout is a buffer, so the answer is printed undecorated
	if got := env.stdout.String(); got != "You made **$1,200**." {
		t.Errorf("stdout = %q", got)
	}

	reqs := env.mock.Requests()
	if len(reqs) != 1 {
		t.Fatalf("requests = %d, want 1", len(reqs))
	}
	if reqs[0] != models.QuestionRequest("How much did I make?") {
		t.Errorf("request = %+v", reqs[0])
	}
	if !env.mock.CloseCalled() {
		t.Error("client should be closed")
	}
}

func TestAskServiceError(t *testing.T) {
	env := newTestEnv(t)
	env.mock.AskOutcome = api.ServiceErrorOutcome("quota exceeded")

	err := env.run("ask", "anything")
	if err == nil {
		t.Fatal("service error should fail the command")
	}
	if !apierrors.IsServiceError(err) {
		t.Errorf("err = %v, want a service error", err)
	}
	if !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("err = %v", err)
	}
	if env.stdout.Len() != 0 {
		t.Errorf("nothing should be printed on failure, got %q", env.stdout.String())
	}
}

func TestAskTransportError(t *testing.T) {
	env := newTestEnv(t)
	cause := errors.New("connection refused")
	env.mock.AskOutcome = api.TransportErrorOutcome(cause)

	err := env.run("ask", "anything")
	if err == nil {
		t.Fatal("transport error should fail the command")
	}
	if !errors.Is(err, cause) {
		t.Errorf("err = %v, want it to wrap the cause", err)
	}
	if !strings.HasPrefix(err.Error(), models.BackendUnreachableText) {
		t.Errorf("err = %v", err)
	}
}

func TestAskFromFileWritesOutput(t *testing.T) {
	env := newTestEnv(t)
	env.mock.AskOutcome = api.AnswerOutcome("42 trades")

	dir := t.TempDir()
	in := filepath.Join(dir, "question.txt")
	out := filepath.Join(dir, "answer.md")
	if err := os.WriteFile(in, []byte("How many trades?\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := env.run("ask", "-f", in, "-o", out); err != nil {
		t.Fatalf("ask failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("output file: %v", err)
	}
	if string(data) != "42 trades" {
		t.Errorf("output = %q", data)
	}
	if reqs := env.mock.Requests(); len(reqs) != 1 || reqs[0].Question != "How many trades?" {
		t.Errorf("requests = %+v", reqs)
	}
}

func TestAskFromStdin(t *testing.T) {
	env := newTestEnv(t)
	env.mock.AskOutcome = api.AnswerOutcome("ok")

	cmd := NewRootCmd(env.deps)
	cmd.SetIn(strings.NewReader("piped question\n"))
	cmd.SetOut(env.stdout)
	cmd.SetErr(env.stderr)
	cmd.SetArgs([]string{"ask"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("ask failed: %v", err)
	}

	if reqs := env.mock.Requests(); len(reqs) != 1 || reqs[0].Question != "piped question" {
		t.Errorf("requests = %+v", reqs)
	}
}

func TestAskWithoutQuestionShowsHelp(t *testing.T) {
	env := newTestEnv(t)

	cmd := NewRootCmd(env.deps)
	cmd.SetIn(strings.NewReader("   "))
	cmd.SetOut(env.stdout)
	cmd.SetErr(env.stderr)
	cmd.SetArgs([]string{"ask"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("ask failed: %v", err)
	}

	if len(env.mock.Requests()) != 0 {
		t.Error("no request should be sent without a question")
	}
	if !strings.Contains(env.stdout.String(), "Usage:") {
		t.Errorf("expected help output, got %q", env.stdout.String())
	}
}

func TestRunAskEmptyQuestion(t *testing.T) {
	env := newTestEnv(t)
	err := runAsk(env.deps, env.cfg, " \n ", askOptions{raw: true})
	if !errors.Is(err, apierrors.ErrEmptyQuestion) {
		t.Errorf("err = %v, want ErrEmptyQuestion", err)
	}
}

func TestReadQuestionPriority(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "q.txt")
	if err := os.WriteFile(file, []byte(" from file "), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		file  string
		args  []string
		stdin string
		want  string
	}{
		{"file wins", file, []string{"from arg"}, "from stdin", "from file"},
		{"arg over stdin", "", []string{" from arg "}, "from stdin", "from arg"},
		{"stdin", "", nil, "from stdin\n", "from stdin"},
		{"nothing", "", nil, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readQuestion(tt.file, tt.args, strings.NewReader(tt.stdin))
			if err != nil {
				t.Fatalf("readQuestion() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("readQuestion() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadQuestionMissingFile(t *testing.T) {
	_, err := readQuestion(filepath.Join(t.TempDir(), "missing.txt"), nil, strings.NewReader(""))
	if err == nil {
		t.Error("missing file should be an error")
	}
}

func TestOutcomeError(t *testing.T) {
	if err := outcomeError(api.AnswerOutcome("fine")); err != nil {
		t.Errorf("answer outcome produced %v", err)
	}
	if err := outcomeError(api.TransportErrorOutcome(nil)); err == nil || err.Error() != models.BackendUnreachableText {
		t.Errorf("transport outcome without cause = %v", err)
	}
}

func TestFormatErrorMessage(t *testing.T) {
	if formatErrorMessage(nil, "Error") != "" {
		t.Error("nil error should format empty")
	}
	got := formatErrorMessage(errors.New("boom"), "Error")
	if !strings.Contains(got, "Error: boom") {
		t.Errorf("formatErrorMessage() = %q", got)
	}
}
