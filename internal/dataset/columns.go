package dataset

import "github.com/diogo/tradebot/internal/models"

// Display texts for the non-populated states
const (
	LoadingText = "Loading trade data..."
	EmptyText   = "No trade data available."
)

// Columns returns the header set: the key order of the first row.
func Columns(rows []models.Record) []string {
	if len(rows) == 0 {
		return nil
	}
	return rows[0].Keys()
}

// Cells returns every row's values in that row's own key order.
// Rows are not re-aligned against the header, so a row whose keys differ
// from the first row's will display misaligned.
func Cells(rows []models.Record) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = r.Values()
	}
	return out
}

// Placeholder returns the text shown instead of a table, or "" when the
// table should be drawn. Failed and empty are deliberately indistinguishable.
func Placeholder(status Status, rows []models.Record) string {
	switch {
	case status == StatusLoading || status == StatusUninitialized:
		return LoadingText
	case len(rows) == 0:
		return EmptyText
	default:
		return ""
	}
}
