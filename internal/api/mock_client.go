package api

import (
	"context"
	"sync"

	"github.com/diogo/tradebot/internal/models"
)

// MockClient is a mock implementation of ServiceInterface for testing
type MockClient struct {
	// AskFunc, when set, computes the outcome of each Ask
	AskFunc func(req models.AskRequest) Outcome
	// AskOutcome is returned when AskFunc is nil
	AskOutcome Outcome
	// Trades is returned by ListTrades
	Trades TradesResult
	URL    string

	mu          sync.Mutex
	requests    []models.AskRequest
	tradesCalls int
	closeCalled bool
}

// Ensure MockClient implements ServiceInterface
var _ ServiceInterface = (*MockClient)(nil)

func (m *MockClient) Ask(ctx context.Context, req models.AskRequest) Outcome {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	fn := m.AskFunc
	out := m.AskOutcome
	m.mu.Unlock()

	if fn != nil {
		return fn(req)
	}
	return out
}

func (m *MockClient) ListTrades(ctx context.Context) TradesResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tradesCalls++
	return m.Trades
}

func (m *MockClient) BaseURL() string {
	if m.URL == "" {
		return models.DefaultBaseURL
	}
	return m.URL
}

func (m *MockClient) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeCalled = true
}

// Requests returns every Ask request received so far
func (m *MockClient) Requests() []models.AskRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.AskRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// TradesCalls returns how many times ListTrades was invoked
func (m *MockClient) TradesCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tradesCalls
}

// CloseCalled reports whether Close was invoked
func (m *MockClient) CloseCalled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closeCalled
}
