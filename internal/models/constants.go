package models

import "time"

// Endpoint paths exposed by the answering service
const (
	PathAsk    = "/ask"
	PathTrades = "/api/trades"
)

// DefaultBaseURL is where the client looks for the answering service
const DefaultBaseURL = "http://localhost:5000"

// Fixed user-facing texts
const (
	// ErrorPrefix is prepended to service-level error details in the log
	ErrorPrefix = "Error: "

	// BackendUnreachableText replaces any transport or parse failure in the log
	BackendUnreachableText = "Failed to connect to the backend."

	// NoQuestionText is returned by the service for an empty question
	NoQuestionText = "No question provided"
)

// Generation settings used by the answering service
const (
	DefaultLLMModel = "gpt-4o"

	GreetingTemperature = 0.6
	GreetingMaxTokens   = 100

	AnswerTemperature = 0.3
	AnswerMaxTokens   = 600
)

// ScrollAnimationInterval is the frame interval of the smooth scroll-to-latest effect
const ScrollAnimationInterval = 16 * time.Millisecond

// AskRequest is the wire payload of the Ask operation.
// Exactly one of Question or IsFirst is populated.
type AskRequest struct {
	Question string `json:"question,omitempty"`
	IsFirst  bool   `json:"is_first,omitempty"`
}

// GreetingRequest returns the distinguished startup request
func GreetingRequest() AskRequest {
	return AskRequest{IsFirst: true}
}

// QuestionRequest returns a request carrying a user question
func QuestionRequest(question string) AskRequest {
	return AskRequest{Question: question}
}
