// Package json decodes repository snapshot files into rows aligned with a
// fixed field list.
//
// Accepted input shapes:
//
//   - JSON Lines / NDJSON, one object per top-level value:
//     {"id":1,"repo_name":"a"}
//     {"id":2,"repo_name":"b"}
//   - a top-level array of objects: [ {...}, {...} ]
//
// Both may be mixed in one stream. Fields are coerced one at a time: a
// missing key, an explicit null or a value of the wrong JSON type becomes nil
// for that field only, and every other field of the record is kept. Syntax
// errors and non-object records fail the whole stream.
package json

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/nahlarmash/GitHub-Repos-Pipeline/internal/schema"
)

// Stats summarizes a decoded stream.
type Stats struct {
	Records int // objects decoded
	Nulled  int // present, non-null values dropped for a type mismatch
}

// DecodeRepos reads every record from r and returns one row per record with
// row[i] holding the coerced value of fields[i] (int64, string or nil).
//
// On error no rows are returned: callers treat a stream as all-or-nothing.
func DecodeRepos(r io.Reader, fields []schema.Field) ([][]any, Stats, error) {
	dec := json.NewDecoder(r)
	// UseNumber keeps integers exact and lets us reject fractional values.
	dec.UseNumber()

	var (
		rows  [][]any
		stats Stats
	)

	emit := func(v any) error {
		obj, ok := v.(map[string]any)
		if !ok {
			return fmt.Errorf("json: record %d: got %s, want object", stats.Records+1, jsonType(v))
		}
		rows = append(rows, coerceRecord(obj, fields, &stats))
		stats.Records++
		return nil
	}

	for {
		var root any
		if err := dec.Decode(&root); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, Stats{}, fmt.Errorf("json: decode after record %d: %w", stats.Records, err)
		}

		if arr, ok := root.([]any); ok {
			for _, elem := range arr {
				if err := emit(elem); err != nil {
					return nil, Stats{}, err
				}
			}
			continue
		}
		if err := emit(root); err != nil {
			return nil, Stats{}, err
		}
	}

	return rows, stats, nil
}

// coerceRecord projects obj onto fields. Unknown keys are ignored.
func coerceRecord(obj map[string]any, fields []schema.Field, stats *Stats) []any {
	row := make([]any, len(fields))
	for i, f := range fields {
		raw, ok := obj[f.Name]
		if !ok || raw == nil {
			continue
		}
		v, ok := coerceValue(raw, f.Kind)
		if !ok {
			stats.Nulled++
			continue
		}
		row[i] = v
	}
	return row
}

// coerceValue converts a decoded JSON value to the Go value for kind.
// It reports false when raw has the wrong JSON type.
func coerceValue(raw any, kind schema.Kind) (any, bool) {
	switch kind {
	case schema.KindInt64:
		n, ok := raw.(json.Number)
		if !ok {
			return nil, false
		}
		i, err := n.Int64()
		if err != nil {
			// fractional, exponent form, or out of int64 range
			return nil, false
		}
		return i, true
	case schema.KindString:
		s, ok := raw.(string)
		if !ok {
			return nil, false
		}
		return s, true
	default:
		return nil, false
	}
}

func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
