package analytics

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

const DefaultCurrency = "SAR"

// Estimates are business figures the engines report but do not derive.
type Estimates struct {
	SavingsVsMarket       float64
	SavingsTrend          float64
	ResponseTimeTrend     float64
	SupplierQualityScore  float64
	SupplierResponseHours float64
	SupplierWinRate       float64
}

type Config struct {
	Currency  string
	Estimates Estimates
	// Clock defaults to time.Now.
	Clock func() time.Time
}

type engine struct {
	store  Store
	lookup Lookup
	cfg    Config
	logger *slog.Logger
}

func newEngine(store Store, lookup Lookup, cfg Config, logger *slog.Logger) engine {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Currency == "" {
		cfg.Currency = DefaultCurrency
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return engine{store: store, lookup: lookup, cfg: cfg, logger: logger}
}

// gather runs independent reads concurrently. The first error cancels the
// shared context and is returned once every read has finished.
func gather(ctx context.Context, reads ...func(ctx context.Context) error) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, read := range reads {
		read := read
		g.Go(func() error { return read(gctx) })
	}
	return g.Wait()
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
