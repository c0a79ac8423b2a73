package ingest

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTable is returned when the caller selects a target table outside
// the fixed schema set.
var ErrUnknownTable = errors.New("unknown target table")

// ErrEmptyDataset is returned when every row was filtered out as blank; no
// insert is attempted.
var ErrEmptyDataset = errors.New("no data rows after filtering")

// ParseError wraps a CSV structure failure. It always fires before any insert
// attempt, so no partial state exists.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("csv parse error: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IngestionFailedError is raised only when zero batches succeeded. It carries
// every batch-level warning collected along the way.
type IngestionFailedError struct {
	Warnings []string
}

func (e *IngestionFailedError) Error() string {
	return fmt.Sprintf("ingestion failed, no rows inserted: %s", strings.Join(e.Warnings, "; "))
}
