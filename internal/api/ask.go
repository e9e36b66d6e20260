package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/tradebot/internal/errors"
	"github.com/diogo/tradebot/internal/models"
)

// Ask sends a greeting or a question to the answering service.
// It never returns a raw error: every failure is classified into the Outcome.
func (c *Client) Ask(ctx context.Context, req models.AskRequest) Outcome {
	answer, err := c.ask(ctx, req)
	if err != nil {
		out := OutcomeFromError(err)
		c.logf("ask resolved as %s: %v", out.Kind, err)
		return out
	}
	return AnswerOutcome(answer)
}

func (c *Client) ask(ctx context.Context, req models.AskRequest) (string, error) {
	if !req.IsFirst && req.Question == "" {
		return "", apierrors.ErrEmptyQuestion
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to build payload: %w", err)
	}

	status, body, err := c.do(ctx, http.MethodPost, models.PathAsk, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}

	return parseAskResponse(status, body)
}

// parseAskResponse extracts the answer from an Ask response body.
// A truthy error field wins over everything else, whatever the status code.
func parseAskResponse(status int, body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		if !isSuccess(status) {
			return "", apierrors.NewAPIError(status, models.PathAsk, "non-JSON error response")
		}
		return "", apierrors.NewParseError("response is not valid JSON", "")
	}

	if errField := gjson.GetBytes(body, PathError); truthy(errField) {
		return "", apierrors.NewServiceError(status, errField.String())
	}

	if !isSuccess(status) {
		return "", apierrors.NewAPIError(status, models.PathAsk, "unexpected status")
	}

	answer := gjson.GetBytes(body, PathAnswer)
	if answer.Type != gjson.String {
		return "", apierrors.NewParseError("missing answer field", PathAnswer)
	}

	return answer.String(), nil
}

// truthy mirrors how a loosely typed client tests a JSON value
func truthy(r gjson.Result) bool {
	switch r.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.String:
		return r.Str != ""
	case gjson.Number:
		return r.Num != 0
	case gjson.True, gjson.JSON:
		return true
	default:
		return false
	}
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
