package ingestion

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rpattn/roaslytics/internal/repository"
)

// ErrUnknownEntityKind is returned when an upload names an entity kind the
// pipeline does not ingest.
var ErrUnknownEntityKind = errors.New("unknown entity kind")

// EntityKind selects which resolver a batch runs through.
type EntityKind string

const (
	EntityInfluencers EntityKind = "influencers"
	EntityPosts       EntityKind = "posts"
	EntityTracking    EntityKind = "tracking"
	EntityPayouts     EntityKind = "payouts"
)

// Service drives one bulk upload through parse, resolve and commit.
type Service struct {
	runner repository.TxRunner
}

// NewService creates a new ingestion service.
func NewService(runner repository.TxRunner) *Service {
	return &Service{runner: runner}
}

// Request describes the ingestion input.
type Request struct {
	EntityKind EntityKind
	FileName   string
	Data       io.Reader
}

// Report summarizes one processed batch. ExistingCount folds rows that
// already existed together with rejected rows; the error list keeps the
// distinction for callers that need it.
type Report struct {
	TotalRecords  int      `json:"total_records"`
	CreatedCount  int      `json:"created_count"`
	ExistingCount int      `json:"existing_count"`
	Errors        []string `json:"errors"`
}

// Ingest parses the upload and processes every row inside one storage
// transaction. A rejected row is recorded and skipped; an infrastructure
// error aborts the whole batch and nothing commits.
func (s *Service) Ingest(ctx context.Context, req Request) (Report, error) {
	res := resolverFor(req.EntityKind)
	if res == nil {
		return Report{}, fmt.Errorf("%w: %q", ErrUnknownEntityKind, req.EntityKind)
	}
	if req.Data == nil {
		return Report{}, errors.New("data reader is required")
	}

	payload, err := io.ReadAll(req.Data)
	if err != nil {
		return Report{}, fmt.Errorf("failed to read upload: %w", err)
	}

	records, err := parseRecords(req.FileName, payload)
	if err != nil {
		return Report{}, err
	}

	report := Report{TotalRecords: len(records), Errors: []string{}}
	err = s.runner.InTx(ctx, func(store repository.Store) error {
		for i, rec := range records {
			out, err := res.resolve(ctx, store, rec)
			if err != nil {
				return fmt.Errorf("row %d: %w", i+1, err)
			}
			switch out.kind {
			case outcomeCreated:
				report.CreatedCount++
			case outcomeRejected:
				report.Errors = append(report.Errors, fmt.Sprintf("row %d: %s", i+1, out.reason))
			}
		}
		return nil
	})
	if err != nil {
		return Report{}, err
	}

	report.ExistingCount = report.TotalRecords - report.CreatedCount
	return report, nil
}

// ClearAll removes every stored row of all four entities in dependency
// order as one atomic operation.
func (s *Service) ClearAll(ctx context.Context) error {
	return s.runner.InTx(ctx, func(store repository.Store) error {
		return store.Maintenance.ClearAll(ctx)
	})
}
