package analytics

import (
	"context"
	"fmt"
	"log/slog"
)

// Service assembles per-actor overviews from the buyer and seller engines.
type Service struct {
	Buyer  *BuyerEngine
	Seller *SellerEngine

	cfg    Config
	logger *slog.Logger
}

func NewService(store Store, lookup Lookup, cfg Config, logger *slog.Logger) *Service {
	base := newEngine(store, lookup, cfg, logger)
	return &Service{
		Buyer:  &BuyerEngine{engine: base},
		Seller: &SellerEngine{engine: base},
		cfg:    base.cfg,
		logger: base.logger,
	}
}

// Window resolves a period token against the service clock. Unknown tokens
// fall back to a month window.
func (s *Service) Window(token string) Window {
	if _, ok := ParsePeriod(token); !ok && token != "" {
		s.logger.Warn("unknown period, using month", "period", token)
	}
	return ResolveWindow(token, s.cfg.Clock())
}

// BuyerOverview computes every buyer metric concurrently over one window.
// Any failed read fails the whole overview.
func (s *Service) BuyerOverview(ctx context.Context, buyerID, period string) (*BuyerOverview, error) {
	w := s.Window(period)
	out := &BuyerOverview{Period: w}

	err := gather(ctx,
		func(ctx context.Context) (err error) {
			out.KPIs, err = s.Buyer.KPIs(ctx, buyerID, w)
			return err
		},
		func(ctx context.Context) (err error) {
			out.SpendByCategory, err = s.Buyer.SpendBySupplier(ctx, buyerID, w)
			return err
		},
		func(ctx context.Context) (err error) {
			out.TopSuppliers, err = s.Buyer.TopSuppliers(ctx, buyerID, w)
			return err
		},
		func(ctx context.Context) (err error) {
			out.RFQFunnel, err = s.Buyer.RFQFunnel(ctx, buyerID, w)
			return err
		},
		func(ctx context.Context) (err error) {
			out.Timeline, err = s.Buyer.Timeline(ctx, buyerID, w)
			return err
		},
	)
	if err != nil {
		return nil, fmt.Errorf("buyer overview: %w", err)
	}
	return out, nil
}

// SellerOverview computes every seller metric concurrently over one window.
// Any failed read fails the whole overview.
func (s *Service) SellerOverview(ctx context.Context, sellerID, period string) (*SellerOverview, error) {
	w := s.Window(period)
	out := &SellerOverview{Period: w}

	err := gather(ctx,
		func(ctx context.Context) (err error) {
			out.KPIs, err = s.Seller.KPIs(ctx, sellerID, w)
			return err
		},
		func(ctx context.Context) (err error) {
			out.RevenueByCategory, err = s.Seller.RevenueByCategory(ctx, sellerID, w)
			return err
		},
		func(ctx context.Context) (err error) {
			out.TopProducts, err = s.Seller.TopProducts(ctx, sellerID, w)
			return err
		},
		func(ctx context.Context) (err error) {
			out.ConversionFunnel, err = s.Seller.ConversionFunnel(ctx, sellerID, w)
			return err
		},
		func(ctx context.Context) (err error) {
			out.RegionDistribution, err = s.Seller.RegionDistribution(ctx, sellerID, w)
			return err
		},
		func(ctx context.Context) (err error) {
			out.LifecycleMetrics, err = s.Seller.LifecycleMetrics(ctx, sellerID, w)
			return err
		},
	)
	if err != nil {
		return nil, fmt.Errorf("seller overview: %w", err)
	}
	return out, nil
}
