package ports

import (
	"context"

	"github.com/sand/fraud-analytics-dashboard/backend/internal/entities"
)

// LedgerGenerator synthesizes a ledger of n transactions.
type LedgerGenerator interface {
	Generate(n int) (entities.Ledger, error)
	Seed() uint64
}

// Aggregator derives dashboard figures from a ledger.
type Aggregator interface {
	Aggregate(ledger entities.Ledger, topK int) entities.Aggregates
}

// ReportService builds the report once and hands it out read-only.
type ReportService interface {
	Build(ctx context.Context) (*entities.Report, error)
	Current() (*entities.Report, error)
}
