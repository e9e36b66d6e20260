package commands

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer is a bytes.Buffer safe for the spinner goroutine
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerLifecycle_StopWithSuccess(t *testing.T) {
	var out syncBuffer
	s := newSpinner(&out, "Asking")
	s.start()
	time.Sleep(200 * time.Millisecond)
	s.stopWithSuccess("done")

	got := out.String()
	if !strings.Contains(got, "Asking") {
		t.Errorf("spinner never rendered its message: %q", got)
	}
	if !strings.Contains(got, "done") {
		t.Errorf("missing success message: %q", got)
	}
}

func TestSpinnerLifecycle_StopWithError(t *testing.T) {
	var out syncBuffer
	s := newSpinner(&out, "Asking")
	s.start()
	time.Sleep(30 * time.Millisecond)
	s.stopWithError()
	// second stop must not panic
	s.stopOnce()
}
