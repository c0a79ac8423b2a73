package ingest

import (
	"context"
	"fmt"

	"darts-tracker/internal/constants"

	"github.com/rs/zerolog"
)

// RowInserter persists one batch of normalized rows into a statistic table.
// A failed batch must leave no rows from that batch behind.
type RowInserter interface {
	InsertRows(ctx context.Context, table string, rows []Row) error
}

// Report summarizes one ingestion run. Expected vs Inserted makes partial
// loads visible to the admin instead of silently best-effort.
type Report struct {
	Table    string   `json:"table"`
	Expected int      `json:"expected"`
	Inserted int      `json:"inserted"`
	Warnings []string `json:"warnings,omitempty"`
}

type Ingestor struct {
	store  RowInserter
	logger zerolog.Logger
}

func NewIngestor(store RowInserter, logger zerolog.Logger) *Ingestor {
	return &Ingestor{store: store, logger: logger}
}

// Ingest normalizes the upload for the selected table and inserts it in
// sequential batches of at most 100 rows. A failing batch is recorded as a
// warning and ingestion continues with the next batch; only a run where zero
// rows landed fails outright, with an *IngestionFailedError carrying the
// collected warnings.
func (ing *Ingestor) Ingest(ctx context.Context, table string, data []byte) (*Report, error) {
	schema, ok := Lookup(table)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}

	rows, err := Normalize(data, schema)
	if err != nil {
		return nil, err
	}

	ing.logger.Info().
		Str("table", schema.Table).
		Int("rows", len(rows)).
		Msg("starting ingestion")

	report := &Report{Table: schema.Table, Expected: len(rows)}

	for i := 0; i < len(rows); i += constants.IngestBatchSize {
		end := i + constants.IngestBatchSize
		if end > len(rows) {
			end = len(rows)
		}
		batch := rows[i:end]

		if err := ing.store.InsertRows(ctx, schema.Table, batch); err != nil {
			warning := fmt.Sprintf("rows %d-%d: %v", i+1, end, err)
			report.Warnings = append(report.Warnings, warning)
			ing.logger.Warn().
				Err(err).
				Str("table", schema.Table).
				Int("batch_start", i+1).
				Int("batch_end", end).
				Msg("batch insert failed, continuing")
			continue
		}
		report.Inserted += len(batch)
	}

	if report.Inserted == 0 {
		return nil, &IngestionFailedError{Warnings: report.Warnings}
	}

	ing.logger.Info().
		Str("table", schema.Table).
		Int("expected", report.Expected).
		Int("inserted", report.Inserted).
		Int("warnings", len(report.Warnings)).
		Msg("ingestion finished")

	return report, nil
}
