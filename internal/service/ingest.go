package service

import (
	"context"

	"darts-tracker/internal/constants"
	"darts-tracker/internal/ingest"
	"darts-tracker/internal/repository"

	"github.com/rs/zerolog"
)

type IngestService struct {
	ingestor *ingest.Ingestor
	logger   zerolog.Logger
}

func NewIngestService(statsRepo *repository.StatsRepository, logger zerolog.Logger) *IngestService {
	return &IngestService{
		ingestor: ingest.NewIngestor(statsRepo, logger),
		logger:   logger,
	}
}

// Upload normalizes a CSV export and loads it into the named statistic table.
// The report carries expected-vs-inserted counts plus a warning per failed
// batch; callers decide how loudly to surface partial loads.
func (s *IngestService) Upload(ctx context.Context, table string, data []byte) (*ingest.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.IngestTimeout)
	defer cancel()

	return s.ingestor.Ingest(ctx, table, data)
}

// Targets lists the tables an upload may address, with their labels.
func (s *IngestService) Targets() []ingest.Schema {
	return ingest.Schemas()
}
