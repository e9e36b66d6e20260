package api

import (
	apierrors "github.com/diogo/tradebot/internal/errors"
	"github.com/diogo/tradebot/internal/models"
)

// OutcomeKind tags how a request/response cycle ended
type OutcomeKind int

const (
	// OutcomeAnswer is a well-formed answer
	OutcomeAnswer OutcomeKind = iota
	// OutcomeServiceError is a well-formed payload carrying an error field
	OutcomeServiceError
	// OutcomeTransportError is any failure to obtain or parse a response
	OutcomeTransportError
)

// String returns a short name for logs
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeAnswer:
		return "answer"
	case OutcomeServiceError:
		return "service_error"
	case OutcomeTransportError:
		return "transport_error"
	default:
		return "unknown"
	}
}

// Outcome is the tagged result of an Ask round trip.
// Text is the answer for OutcomeAnswer and the error detail for OutcomeServiceError.
type Outcome struct {
	Kind OutcomeKind
	Text string
	Err  error
}

// AnswerOutcome wraps a successful answer
func AnswerOutcome(answer string) Outcome {
	return Outcome{Kind: OutcomeAnswer, Text: answer}
}

// ServiceErrorOutcome wraps a service-level error detail
func ServiceErrorOutcome(detail string) Outcome {
	return Outcome{
		Kind: OutcomeServiceError,
		Text: detail,
		Err:  apierrors.NewServiceError(0, detail),
	}
}

// TransportErrorOutcome wraps a transport or parse failure
func TransportErrorOutcome(err error) Outcome {
	return Outcome{Kind: OutcomeTransportError, Err: err}
}

// OutcomeFromError classifies err into a service or transport outcome
func OutcomeFromError(err error) Outcome {
	if detail, ok := apierrors.ServiceDetail(err); ok {
		return Outcome{Kind: OutcomeServiceError, Text: detail, Err: err}
	}
	return TransportErrorOutcome(err)
}

// BotMessage translates the outcome into the bot message appended to the log
func (o Outcome) BotMessage() models.Message {
	switch o.Kind {
	case OutcomeAnswer:
		return models.BotMessage(o.Text)
	case OutcomeServiceError:
		return models.BotMessage(models.ErrorPrefix + o.Text)
	default:
		return models.BotMessage(models.BackendUnreachableText)
	}
}

// TradesResult is the result of the one-shot ListTrades fetch
type TradesResult struct {
	Records []models.Record
	Err     error
}

// OK reports whether the fetch produced a usable (possibly empty) dataset
func (r TradesResult) OK() bool {
	return r.Err == nil
}

// Kind classifies the result with the same tags as Ask
func (r TradesResult) Kind() OutcomeKind {
	switch {
	case r.Err == nil:
		return OutcomeAnswer
	case apierrors.IsServiceError(r.Err):
		return OutcomeServiceError
	default:
		return OutcomeTransportError
	}
}
