package handler

import (
	"context"
	"net/http"
	"time"

	"marketpulse/internal/analytics"
	"marketpulse/internal/mw"
)

func BuyerOverviewHandler(svc *analytics.Service, timeout time.Duration) http.HandlerFunc {
	return serve(mw.RoleBuyer, "overview", timeout, func(ctx context.Context, buyerID, period string) (any, error) {
		return svc.BuyerOverview(ctx, buyerID, period)
	})
}

func BuyerKPIsHandler(svc *analytics.Service, timeout time.Duration) http.HandlerFunc {
	return serve(mw.RoleBuyer, "kpis", timeout, func(ctx context.Context, buyerID, period string) (any, error) {
		return svc.Buyer.KPIs(ctx, buyerID, svc.Window(period))
	})
}

func SpendBySupplierHandler(svc *analytics.Service, timeout time.Duration) http.HandlerFunc {
	return serve(mw.RoleBuyer, "spend_by_supplier", timeout, func(ctx context.Context, buyerID, period string) (any, error) {
		return svc.Buyer.SpendBySupplier(ctx, buyerID, svc.Window(period))
	})
}

func TopSuppliersHandler(svc *analytics.Service, timeout time.Duration) http.HandlerFunc {
	return serve(mw.RoleBuyer, "top_suppliers", timeout, func(ctx context.Context, buyerID, period string) (any, error) {
		return svc.Buyer.TopSuppliers(ctx, buyerID, svc.Window(period))
	})
}

func RFQFunnelHandler(svc *analytics.Service, timeout time.Duration) http.HandlerFunc {
	return serve(mw.RoleBuyer, "rfq_funnel", timeout, func(ctx context.Context, buyerID, period string) (any, error) {
		return svc.Buyer.RFQFunnel(ctx, buyerID, svc.Window(period))
	})
}

func TimelineHandler(svc *analytics.Service, timeout time.Duration) http.HandlerFunc {
	return serve(mw.RoleBuyer, "timeline", timeout, func(ctx context.Context, buyerID, period string) (any, error) {
		return svc.Buyer.Timeline(ctx, buyerID, svc.Window(period))
	})
}
