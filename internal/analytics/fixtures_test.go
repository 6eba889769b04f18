package analytics_test

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"marketpulse/internal/analytics"
	"marketpulse/internal/model"
	"marketpulse/internal/store"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return testNow }

func daysAgo(d float64) time.Time {
	return testNow.Add(-time.Duration(d * float64(24*time.Hour)))
}

func ptr[T any](v T) *T { return &v }

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newService(st *store.Memory) *analytics.Service {
	return analytics.NewService(st, st, analytics.Config{
		Currency: "SAR",
		Estimates: analytics.Estimates{
			SavingsVsMarket:      12.5,
			SupplierQualityScore: 4.5,
		},
		Clock: clock,
	}, nil)
}

func monthWindow() analytics.Window {
	return analytics.ResolveWindow("month", testNow)
}

var errStoreDown = errors.New("connection refused")

// failingStore fails the selected reads and delegates the rest.
type failingStore struct {
	*store.Memory
	failOrders bool
	failRFQs   bool
	failQuotes bool
	failLookup bool
}

func (f *failingStore) FindOrders(ctx context.Context, fl analytics.OrderFilter, r analytics.Range) ([]model.Order, error) {
	if f.failOrders {
		return nil, errStoreDown
	}
	return f.Memory.FindOrders(ctx, fl, r)
}

func (f *failingStore) AggregateOrders(ctx context.Context, fl analytics.OrderFilter, r analytics.Range) (analytics.Aggregate, error) {
	if f.failOrders {
		return analytics.Aggregate{}, errStoreDown
	}
	return f.Memory.AggregateOrders(ctx, fl, r)
}

func (f *failingStore) CountRFQs(ctx context.Context, fl analytics.RFQFilter, r analytics.Range) (int, error) {
	if f.failRFQs {
		return 0, errStoreDown
	}
	return f.Memory.CountRFQs(ctx, fl, r)
}

func (f *failingStore) FindQuotes(ctx context.Context, fl analytics.QuoteFilter, r analytics.Range) ([]model.Quote, error) {
	if f.failQuotes {
		return nil, errStoreDown
	}
	return f.Memory.FindQuotes(ctx, fl, r)
}

func (f *failingStore) SellerNames(ctx context.Context, ids []string) (map[string]string, error) {
	if f.failLookup {
		return nil, errStoreDown
	}
	return f.Memory.SellerNames(ctx, ids)
}

// aggregateStub answers AggregateOrders with fixed current/previous figures.
type aggregateStub struct {
	*store.Memory
	window    analytics.Window
	cur, prev analytics.Aggregate
}

func (s *aggregateStub) AggregateOrders(_ context.Context, _ analytics.OrderFilter, r analytics.Range) (analytics.Aggregate, error) {
	if r == s.window.Previous() {
		return s.prev, nil
	}
	return s.cur, nil
}
