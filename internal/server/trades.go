package server

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/diogo/tradebot/internal/models"
)

// ReadTrades parses a CSV file into records keyed by the header row.
// Empty and NaN cells become null; every record keeps header order.
func ReadTrades(path string) ([]models.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return parseTrades(f)
}

func parseTrades(r io.Reader) ([]models.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []models.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	records := []models.Record{}
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}

		rec := models.Record{Fields: make([]models.Field, len(header))}
		for i, key := range header {
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			rec.Fields[i] = cellField(key, cell)
		}
		records = append(records, rec)
	}
	return records, nil
}

func cellField(key, cell string) models.Field {
	v := strings.TrimSpace(cell)
	switch strings.ToLower(v) {
	case "", "nan", "nat":
		return models.Field{Key: key, Null: true}
	}
	return models.Field{Key: key, Value: v}
}

// readText returns the whole file as prompt material
func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
