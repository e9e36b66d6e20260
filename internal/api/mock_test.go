package api

import (
	"io"
	"strings"
	"sync"

	fhttp "github.com/bogdanfinn/fhttp"
)

// MockResponseBody is a ReadCloser that simulates reading response data
type MockResponseBody struct {
	data []byte
	pos  int
}

// NewMockResponseBody creates a new MockResponseBody with the given data
func NewMockResponseBody(data []byte) *MockResponseBody {
	return &MockResponseBody{data: data, pos: 0}
}

// Read implements the io.Reader interface
func (m *MockResponseBody) Read(p []byte) (n int, err error) {
	if m.pos >= len(m.data) {
		return 0, io.EOF
	}
	n = copy(p, m.data[m.pos:])
	m.pos += n
	return n, nil
}

// Close implements the io.Closer interface
func (m *MockResponseBody) Close() error {
	return nil
}

// MockHttpClient records requests and replays a canned response
type MockHttpClient struct {
	StatusCode int
	Body       string
	Err        error

	mu       sync.Mutex
	requests []*fhttp.Request
	bodies   []string
}

// Do implements httpDoer
func (m *MockHttpClient) Do(req *fhttp.Request) (*fhttp.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)
	if req.Body != nil {
		data, _ := io.ReadAll(req.Body)
		m.bodies = append(m.bodies, string(data))
	} else {
		m.bodies = append(m.bodies, "")
	}

	if m.Err != nil {
		return nil, m.Err
	}

	status := m.StatusCode
	if status == 0 {
		status = 200
	}
	return &fhttp.Response{
		StatusCode: status,
		Header:     fhttp.Header{"Content-Type": []string{"application/json"}},
		Body:       NewMockResponseBody([]byte(m.Body)),
	}, nil
}

func (m *MockHttpClient) lastRequest() (*fhttp.Request, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return nil, ""
	}
	return m.requests[len(m.requests)-1], strings.TrimSpace(m.bodies[len(m.bodies)-1])
}

// errorBody is a ReadCloser that fails mid-read
type errorBody struct{}

func (errorBody) Read(p []byte) (int, error) { return 0, io.ErrUnexpectedEOF }
func (errorBody) Close() error               { return nil }

// brokenBodyClient returns a response whose body cannot be read
type brokenBodyClient struct{}

func (brokenBodyClient) Do(req *fhttp.Request) (*fhttp.Response, error) {
	return &fhttp.Response{StatusCode: 200, Body: errorBody{}}, nil
}
