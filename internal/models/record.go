package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Field is one key/value cell of a Record
type Field struct {
	Key   string
	Value string
	Null  bool
}

// Record is an ordered mapping from field name to display value.
// Field order is the order the keys appeared on the wire.
type Record struct {
	Fields []Field
}

// NewRecord builds a record from alternating key/value pairs
func NewRecord(pairs ...string) Record {
	r := Record{Fields: make([]Field, 0, len(pairs)/2)}
	for i := 0; i+1 < len(pairs); i += 2 {
		r.Fields = append(r.Fields, Field{Key: pairs[i], Value: pairs[i+1]})
	}
	return r
}

// Len returns the number of fields
func (r Record) Len() int {
	return len(r.Fields)
}

// Keys returns field names in record order
func (r Record) Keys() []string {
	keys := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		keys[i] = f.Key
	}
	return keys
}

// Values returns display values in record order. Null cells render empty.
func (r Record) Values() []string {
	values := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		if !f.Null {
			values[i] = f.Value
		}
	}
	return values
}

// Get returns the value stored under key
func (r Record) Get(key string) (string, bool) {
	for _, f := range r.Fields {
		if f.Key == key {
			return f.Value, !f.Null
		}
	}
	return "", false
}

// MarshalJSON writes the record as a JSON object keeping field order.
// Numeric cells are emitted as numbers, null cells as null.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		switch {
		case f.Null:
			buf.WriteString("null")
		case isJSONNumber(f.Value):
			buf.WriteString(f.Value)
		default:
			val, err := json.Marshal(f.Value)
			if err != nil {
				return nil, err
			}
			buf.Write(val)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// isJSONNumber reports whether s can be written verbatim as a JSON number
func isJSONNumber(s string) bool {
	if s == "" {
		return false
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return false
	}
	// ParseFloat accepts forms JSON does not
	return json.Valid([]byte(s))
}
