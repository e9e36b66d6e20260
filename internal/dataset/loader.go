// Package dataset holds the one-shot trade sample loader and the generic
// column inference used to display it.
package dataset

import (
	"sync"

	"github.com/diogo/tradebot/internal/api"
	"github.com/diogo/tradebot/internal/models"
)

// Status is the lifecycle state of the dataset
type Status int

const (
	StatusUninitialized Status = iota
	StatusLoading
	StatusLoaded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusUninitialized:
		return "uninitialized"
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Loader fetches the dataset exactly once and never retries.
type Loader struct {
	mu     sync.RWMutex
	status Status
	rows   []models.Record
	err    error
}

// NewLoader returns an uninitialized loader
func NewLoader() *Loader {
	return &Loader{}
}

// Start moves Uninitialized to Loading. It reports false on every later call,
// so the caller issues the read request at most once.
func (l *Loader) Start() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.status != StatusUninitialized {
		return false
	}
	l.status = StatusLoading
	return true
}

// Finish applies the fetch result. Only the first result after Start counts.
// Service and transport errors both end in Failed with no rows.
func (l *Loader) Finish(res api.TradesResult) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.status != StatusLoading {
		return false
	}
	if res.Err != nil {
		l.status = StatusFailed
		l.rows = nil
		l.err = res.Err
		return true
	}
	l.status = StatusLoaded
	l.rows = res.Records
	return true
}

// Status returns the current lifecycle state
func (l *Loader) Status() Status {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.status
}

// Loading reports whether the fetch is in flight
func (l *Loader) Loading() bool {
	return l.Status() == StatusLoading
}

// Rows returns the loaded records; empty unless Loaded
func (l *Loader) Rows() []models.Record {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.Record, len(l.rows))
	copy(out, l.rows)
	return out
}

// Err returns the failure that ended the fetch, if any.
// It is kept for diagnostics only; the display treats failure as empty.
func (l *Loader) Err() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.err
}
