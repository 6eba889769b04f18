package handler

import (
	"context"
	"net/http"
	"time"

	"marketpulse/internal/analytics"
	"marketpulse/internal/mw"
)

func SellerOverviewHandler(svc *analytics.Service, timeout time.Duration) http.HandlerFunc {
	return serve(mw.RoleSeller, "overview", timeout, func(ctx context.Context, sellerID, period string) (any, error) {
		return svc.SellerOverview(ctx, sellerID, period)
	})
}

func SellerKPIsHandler(svc *analytics.Service, timeout time.Duration) http.HandlerFunc {
	return serve(mw.RoleSeller, "kpis", timeout, func(ctx context.Context, sellerID, period string) (any, error) {
		return svc.Seller.KPIs(ctx, sellerID, svc.Window(period))
	})
}

func RevenueByCategoryHandler(svc *analytics.Service, timeout time.Duration) http.HandlerFunc {
	return serve(mw.RoleSeller, "revenue_by_category", timeout, func(ctx context.Context, sellerID, period string) (any, error) {
		return svc.Seller.RevenueByCategory(ctx, sellerID, svc.Window(period))
	})
}

func TopProductsHandler(svc *analytics.Service, timeout time.Duration) http.HandlerFunc {
	return serve(mw.RoleSeller, "top_products", timeout, func(ctx context.Context, sellerID, period string) (any, error) {
		return svc.Seller.TopProducts(ctx, sellerID, svc.Window(period))
	})
}

func ConversionFunnelHandler(svc *analytics.Service, timeout time.Duration) http.HandlerFunc {
	return serve(mw.RoleSeller, "conversion_funnel", timeout, func(ctx context.Context, sellerID, period string) (any, error) {
		return svc.Seller.ConversionFunnel(ctx, sellerID, svc.Window(period))
	})
}

func RegionDistributionHandler(svc *analytics.Service, timeout time.Duration) http.HandlerFunc {
	return serve(mw.RoleSeller, "region_distribution", timeout, func(ctx context.Context, sellerID, period string) (any, error) {
		return svc.Seller.RegionDistribution(ctx, sellerID, svc.Window(period))
	})
}

func LifecycleMetricsHandler(svc *analytics.Service, timeout time.Duration) http.HandlerFunc {
	return serve(mw.RoleSeller, "lifecycle", timeout, func(ctx context.Context, sellerID, period string) (any, error) {
		return svc.Seller.LifecycleMetrics(ctx, sellerID, svc.Window(period))
	})
}
