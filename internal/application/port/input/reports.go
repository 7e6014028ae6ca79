package input

import (
	"context"

	"intelligent-cd/internal/domain/entity"
)

// RAGReporter produces the RAG diagnostics shown on the test tab. Reports
// never fail; section errors render inline.
type RAGReporter interface {
	Probe(ctx context.Context, query, storeName string) string
	Status(ctx context.Context, storeName string) string
	Databases(ctx context.Context) []string
}

type StatusReporter interface {
	Report(ctx context.Context) string
}

type IngestRunner interface {
	Run(ctx context.Context) (*entity.IngestReport, error)
}
