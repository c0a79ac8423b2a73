package ingest

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"
)

// Row holds one normalized record keyed by destination column. Values are
// string, int64, float64, or untyped nil for SQL NULL.
type Row map[string]any

// DetectDelimiter inspects the first line of the upload and prefers ';' over
// ',' over tab, defaulting to ','. It is a heuristic, not a full sniff: a
// quoted comma in the header before any semicolon will be misread.
func DetectDelimiter(firstLine string) rune {
	switch {
	case strings.ContainsRune(firstLine, ';'):
		return ';'
	case strings.ContainsRune(firstLine, ','):
		return ','
	case strings.ContainsRune(firstLine, '\t'):
		return '\t'
	default:
		return ','
	}
}

// Normalize parses delimited text into typed rows for one schema. The first
// record is the header; cells are pulled by exact header name and coerced per
// field. Rows where every field normalized to null or empty are dropped.
// Structural CSV failures return a *ParseError before anything else happens;
// a dataset with no surviving rows returns ErrEmptyDataset.
func Normalize(data []byte, schema Schema) ([]Row, error) {
	firstLine, _, _ := strings.Cut(string(data), "\n")

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = DetectDelimiter(firstLine)
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}

	header := records[0]
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[cleanCell(name)] = i
	}

	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(Row, len(schema.Fields))
		empty := true
		for _, f := range schema.Fields {
			var raw string
			if i, ok := index[f.Header]; ok && i < len(record) {
				raw = cleanCell(record[i])
			}
			value := coerce(raw, f)
			if value != nil && value != "" {
				empty = false
			}
			row[f.Column] = value
		}
		if !empty {
			rows = append(rows, row)
		}
	}

	if len(rows) == 0 {
		return nil, ErrEmptyDataset
	}
	return rows, nil
}

// cleanCell trims whitespace and strips a single layer of enclosing quotes.
func cleanCell(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'') {
			s = s[1 : len(s)-1]
		}
	}
	return s
}

func coerce(raw string, f Field) any {
	switch f.Kind {
	case KindInt:
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return v
		}
		// exports occasionally write counts as "12.0"
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return int64(v)
		}
		if f.ZeroDefault {
			return int64(0)
		}
		return nil
	case KindFloat:
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return v
		}
		if f.ZeroDefault {
			return float64(0)
		}
		return nil
	default:
		if raw == "" {
			return nil
		}
		return raw
	}
}
