package api

import (
	"context"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/tradebot/internal/errors"
	"github.com/diogo/tradebot/internal/models"
)

// ListTrades fetches the trade sample dataset
func (c *Client) ListTrades(ctx context.Context) TradesResult {
	status, body, err := c.do(ctx, http.MethodGet, models.PathTrades, nil)
	if err != nil {
		return TradesResult{Err: err}
	}

	records, err := parseTrades(status, body)
	if err != nil {
		c.logf("list trades failed: %v", err)
		return TradesResult{Err: err}
	}
	return TradesResult{Records: records}
}

// parseTrades decodes an array of records, keeping each object's key order
func parseTrades(status int, body []byte) ([]models.Record, error) {
	if !gjson.ValidBytes(body) {
		if !isSuccess(status) {
			return nil, apierrors.NewAPIError(status, models.PathTrades, "non-JSON error response")
		}
		return nil, apierrors.NewParseError("response is not valid JSON", "")
	}

	root := gjson.ParseBytes(body)

	if root.IsObject() {
		if errField := root.Get(PathError); truthy(errField) {
			return nil, apierrors.NewServiceError(status, errField.String())
		}
	}

	if !isSuccess(status) {
		return nil, apierrors.NewAPIError(status, models.PathTrades, "unexpected status")
	}

	if !root.IsArray() {
		return nil, apierrors.NewParseError("expected an array of records", "")
	}

	records := []models.Record{}
	root.ForEach(func(_, row gjson.Result) bool {
		records = append(records, recordFromJSON(row))
		return true
	})
	return records, nil
}

// recordFromJSON converts one JSON object into an ordered Record.
// Non-object rows become empty records.
func recordFromJSON(row gjson.Result) models.Record {
	var rec models.Record
	if !row.IsObject() {
		return rec
	}
	row.ForEach(func(key, value gjson.Result) bool {
		rec.Fields = append(rec.Fields, fieldFromJSON(key.String(), value))
		return true
	})
	return rec
}

func fieldFromJSON(key string, value gjson.Result) models.Field {
	switch value.Type {
	case gjson.Null:
		return models.Field{Key: key, Null: true}
	case gjson.JSON:
		return models.Field{Key: key, Value: value.Raw}
	default:
		return models.Field{Key: key, Value: value.String()}
	}
}
