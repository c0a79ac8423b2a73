package ingest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInserter struct {
	calls     int
	failCalls map[int]error
	inserted  int
}

func (f *fakeInserter) InsertRows(_ context.Context, _ string, rows []Row) error {
	f.calls++
	if err, ok := f.failCalls[f.calls]; ok {
		return err
	}
	f.inserted += len(rows)
	return nil
}

func legsCSV(n int) []byte {
	var sb strings.Builder
	sb.WriteString("Date,Player,Opponent,Darts,ScoreLeft,Result\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, "2024-02-%02d,Bob,Carol,%d,0,Won\n", i%28+1, 15+i%10)
	}
	return []byte(sb.String())
}

func TestIngestBatchesOfOneHundred(t *testing.T) {
	store := &fakeInserter{}
	ing := NewIngestor(store, zerolog.Nop())

	report, err := ing.Ingest(context.Background(), "jda_legs", legsCSV(250))
	require.NoError(t, err)

	assert.Equal(t, 3, store.calls)
	assert.Equal(t, 250, report.Expected)
	assert.Equal(t, 250, report.Inserted)
	assert.Empty(t, report.Warnings)
}

func TestIngestContinuesPastFailedBatch(t *testing.T) {
	store := &fakeInserter{failCalls: map[int]error{2: errors.New("disk full")}}
	ing := NewIngestor(store, zerolog.Nop())

	report, err := ing.Ingest(context.Background(), "jda_legs", legsCSV(250))
	require.NoError(t, err)

	assert.Equal(t, 250, report.Expected)
	assert.Equal(t, 150, report.Inserted)
	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0], "rows 101-200")
	assert.Contains(t, report.Warnings[0], "disk full")
}

func TestIngestFailsWhenNothingLands(t *testing.T) {
	boom := errors.New("locked")
	store := &fakeInserter{failCalls: map[int]error{1: boom, 2: boom, 3: boom}}
	ing := NewIngestor(store, zerolog.Nop())

	_, err := ing.Ingest(context.Background(), "jda_legs", legsCSV(250))

	var failed *IngestionFailedError
	require.ErrorAs(t, err, &failed)
	assert.Len(t, failed.Warnings, 3)
	assert.Equal(t, 0, store.inserted)
}

func TestIngestUnknownTable(t *testing.T) {
	ing := NewIngestor(&fakeInserter{}, zerolog.Nop())

	_, err := ing.Ingest(context.Background(), "sessions; DROP TABLE profiles", legsCSV(1))
	assert.ErrorIs(t, err, ErrUnknownTable)
}

func TestIngestHeaderOnlyUpload(t *testing.T) {
	store := &fakeInserter{}
	ing := NewIngestor(store, zerolog.Nop())

	_, err := ing.Ingest(context.Background(), "jda_legs", legsCSV(0))
	assert.ErrorIs(t, err, ErrEmptyDataset)
	assert.Zero(t, store.calls)
}
