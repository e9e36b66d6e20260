// Package api provides the client for the tradebot answering service.
package api

// GJSON paths for extracting values from answering service responses.
const (
	// PathAnswer holds the answer text of a successful Ask
	PathAnswer = "answer"

	// PathError holds the error detail of a service-level failure,
	// on both Ask and ListTrades
	PathError = "error"
)
