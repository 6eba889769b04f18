package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"marketpulse/internal/analytics"
	"marketpulse/internal/mw"
)

type RouterConfig struct {
	JWTSecret string
	Timeout   time.Duration
	Ping      func(ctx context.Context) error
	Metrics   http.Handler
}

func NewRouter(svc *analytics.Service, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if cfg.Ping != nil {
		r.Get("/healthz", HealthHandler(cfg.Ping))
	}
	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics)
	}

	r.Route("/api/analytics", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.JWTSecret))

		r.Route("/buyer", func(r chi.Router) {
			r.Use(mw.RequireRole(mw.RoleBuyer))

			r.Get("/overview", BuyerOverviewHandler(svc, cfg.Timeout))
			r.Get("/kpis", BuyerKPIsHandler(svc, cfg.Timeout))
			r.Get("/spend-by-supplier", SpendBySupplierHandler(svc, cfg.Timeout))
			r.Get("/top-suppliers", TopSuppliersHandler(svc, cfg.Timeout))
			r.Get("/rfq-funnel", RFQFunnelHandler(svc, cfg.Timeout))
			r.Get("/timeline", TimelineHandler(svc, cfg.Timeout))
		})

		r.Route("/seller", func(r chi.Router) {
			r.Use(mw.RequireRole(mw.RoleSeller))

			r.Get("/overview", SellerOverviewHandler(svc, cfg.Timeout))
			r.Get("/kpis", SellerKPIsHandler(svc, cfg.Timeout))
			r.Get("/revenue-by-category", RevenueByCategoryHandler(svc, cfg.Timeout))
			r.Get("/top-products", TopProductsHandler(svc, cfg.Timeout))
			r.Get("/conversion-funnel", ConversionFunnelHandler(svc, cfg.Timeout))
			r.Get("/regions", RegionDistributionHandler(svc, cfg.Timeout))
			r.Get("/lifecycle", LifecycleMetricsHandler(svc, cfg.Timeout))
		})
	})

	return r
}
