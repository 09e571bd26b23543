package usecases

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/sand/fraud-analytics-dashboard/backend/internal/usecases/mocked"
)

// Overrides replaces selected pipeline settings. Nil fields keep the
// configured value.
type Overrides struct {
	LedgerSize *int
	TopK       *int
	Seed       *uint64
	Now        *time.Time
}

// Apply returns copies of cfg and opts with the set overrides applied.
func (o Overrides) Apply(cfg ReportConfig, opts mocked.Options) (ReportConfig, mocked.Options) {
	if o.LedgerSize != nil {
		cfg.LedgerSize = *o.LedgerSize
	}
	if o.TopK != nil {
		cfg.TopK = *o.TopK
	}
	if o.Seed != nil {
		opts.Seed = *o.Seed
	}
	if o.Now != nil {
		opts.Now = *o.Now
	}
	return cfg, opts
}

// NewPipeline wires a generator and an aggregator sharing the same fraud rules
// into a ReportService.
func NewPipeline(logger *slog.Logger, cfg ReportConfig, opts mocked.Options, location *time.Location, overrides Overrides) (*ReportService, error) {
	cfg, opts = overrides.Apply(cfg, opts)

	generator, err := mocked.NewLedgerGenerator(logger, opts)
	if err != nil {
		return nil, fmt.Errorf("create ledger generator: %w", err)
	}

	aggregator := NewAggregator(logger, opts.Rules, location)

	return NewReportService(logger, generator, aggregator, cfg), nil
}
