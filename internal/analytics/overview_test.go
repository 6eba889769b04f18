package analytics_test

import (
	"context"
	"errors"
	"testing"

	"marketpulse/internal/analytics"
	"marketpulse/internal/store"
)

func newFailingService(fs *failingStore) *analytics.Service {
	return analytics.NewService(fs, fs, analytics.Config{Clock: clock}, nil)
}

func TestBuyerOverview(t *testing.T) {
	svc := newService(seedBuyer(t))
	ctx := context.Background()

	got, err := svc.BuyerOverview(ctx, buyerID, "month")
	if err != nil {
		t.Fatalf("BuyerOverview failed: %v", err)
	}
	if got.Period != monthWindow() {
		t.Errorf("Period = %+v, want %+v", got.Period, monthWindow())
	}

	kpis, err := svc.Buyer.KPIs(ctx, buyerID, monthWindow())
	if err != nil {
		t.Fatalf("KPIs failed: %v", err)
	}
	if got.KPIs != kpis {
		t.Errorf("overview KPIs = %+v, want %+v", got.KPIs, kpis)
	}
	if len(got.SpendByCategory) != 2 || len(got.TopSuppliers) != 2 || len(got.Timeline) != 5 {
		t.Errorf("overview sizes = %d/%d/%d, want 2/2/5",
			len(got.SpendByCategory), len(got.TopSuppliers), len(got.Timeline))
	}
	if got.RFQFunnel.OrdersPlaced != 1 {
		t.Errorf("RFQFunnel.OrdersPlaced = %d, want 1", got.RFQFunnel.OrdersPlaced)
	}
}

func TestSellerOverview(t *testing.T) {
	svc := newService(seedSeller(t))

	got, err := svc.SellerOverview(context.Background(), sellerID, "month")
	if err != nil {
		t.Fatalf("SellerOverview failed: %v", err)
	}
	if got.KPIs.TotalRevenue != 2550 {
		t.Errorf("KPIs.TotalRevenue = %v, want 2550", got.KPIs.TotalRevenue)
	}
	if len(got.RevenueByCategory) != 3 || len(got.TopProducts) != 3 || len(got.RegionDistribution) != 3 {
		t.Errorf("overview sizes = %d/%d/%d, want 3/3/3",
			len(got.RevenueByCategory), len(got.TopProducts), len(got.RegionDistribution))
	}
	if got.ConversionFunnel.OrdersWon != 2 {
		t.Errorf("ConversionFunnel.OrdersWon = %d, want 2", got.ConversionFunnel.OrdersWon)
	}
	if got.LifecycleMetrics.OutstandingReceivables != 600 {
		t.Errorf("OutstandingReceivables = %v, want 600", got.LifecycleMetrics.OutstandingReceivables)
	}
}

func TestOverviewUnknownPeriod(t *testing.T) {
	svc := newService(store.NewMemory())

	got, err := svc.BuyerOverview(context.Background(), buyerID, "fortnight")
	if err != nil {
		t.Fatalf("BuyerOverview failed: %v", err)
	}
	if got.Period.Period != analytics.PeriodMonth || got.Period != monthWindow() {
		t.Errorf("Period = %+v, want month window", got.Period)
	}
}

func TestOverviewEmptyStore(t *testing.T) {
	svc := newService(store.NewMemory())

	got, err := svc.SellerOverview(context.Background(), sellerID, "week")
	if err != nil {
		t.Fatalf("SellerOverview failed: %v", err)
	}
	if len(got.RevenueByCategory) != 0 || len(got.TopProducts) != 0 || len(got.LifecycleMetrics.TopBuyers) != 0 {
		t.Errorf("empty overview has entries: %+v", got)
	}
	for _, stage := range got.ConversionFunnel.Stages[1:] {
		if stage.Percentage != 0 {
			t.Errorf("stage %q = %d%%, want 0", stage.Stage, stage.Percentage)
		}
	}
}

func TestOverviewFailures(t *testing.T) {
	tests := []struct {
		name   string
		fs     failingStore
		seller bool
	}{
		{name: "buyer orders", fs: failingStore{failOrders: true}},
		{name: "buyer quotes", fs: failingStore{failQuotes: true}},
		{name: "buyer supplier names", fs: failingStore{failLookup: true}},
		{name: "seller orders", fs: failingStore{failOrders: true}, seller: true},
		{name: "seller rfqs", fs: failingStore{failRFQs: true}, seller: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := tt.fs
			if tt.seller {
				fs.Memory = seedSeller(t)
			} else {
				fs.Memory = seedBuyer(t)
			}
			svc := newFailingService(&fs)

			var (
				got any
				err error
			)
			if tt.seller {
				var ov *analytics.SellerOverview
				ov, err = svc.SellerOverview(context.Background(), sellerID, "month")
				if ov != nil {
					got = ov
				}
			} else {
				var ov *analytics.BuyerOverview
				ov, err = svc.BuyerOverview(context.Background(), buyerID, "month")
				if ov != nil {
					got = ov
				}
			}

			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if got != nil {
				t.Errorf("expected nil overview on failure, got %+v", got)
			}
			if !errors.Is(err, analytics.ErrRetrieval) {
				t.Errorf("error %v does not wrap ErrRetrieval", err)
			}
			if !errors.Is(err, errStoreDown) {
				t.Errorf("error %v does not wrap the store error", err)
			}
		})
	}
}

func TestOverviewCancelled(t *testing.T) {
	svc := newService(seedBuyer(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.BuyerOverview(ctx, buyerID, "month")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
