package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"

	"marketpulse/internal/analytics"
	"marketpulse/internal/model"
	"marketpulse/internal/mw"
	"marketpulse/internal/store"
)

const (
	secret   = "handler-secret"
	buyerID  = "6d0c2b61-3f7e-4b8a-9a51-0c1f5b7e2d11"
	sellerID = "a4e9f0c2-51b3-4d6e-8f7a-2b3c4d5e6f70"
)

var now = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func token(t *testing.T, userID, role string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    role,
	}).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return "Bearer " + s
}

func seeded() *store.Memory {
	st := store.NewMemory()
	st.AddSellers(model.SellerProfile{ID: sellerID, DisplayName: "Gulf Bearings"})
	st.AddItems(model.Item{ID: "item-1", Category: "Bearings"})
	st.AddOrders(model.Order{
		ID:            "o1",
		BuyerID:       buyerID,
		SellerID:      sellerID,
		ItemID:        "item-1",
		Quantity:      4,
		UnitPrice:     decimal.NewFromInt(250),
		TotalPrice:    decimal.NewFromInt(1000),
		Status:        model.OrderDelivered,
		PaymentStatus: model.PaymentUnpaid,
		CreatedAt:     now.Add(-48 * time.Hour),
	})
	return st
}

type backend interface {
	analytics.Store
	analytics.Lookup
}

func newServer(t *testing.T, st backend, timeout time.Duration, ping func(context.Context) error) *httptest.Server {
	t.Helper()
	svc := analytics.NewService(st, st, analytics.Config{Clock: func() time.Time { return now }}, nil)
	srv := httptest.NewServer(NewRouter(svc, RouterConfig{
		JWTSecret: secret,
		Timeout:   timeout,
		Ping:      ping,
	}))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, srv *httptest.Server, path, auth string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, srv.URL+path, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestBuyerOverviewEndpoint(t *testing.T) {
	srv := newServer(t, seeded(), time.Second, nil)

	resp := get(t, srv, "/api/analytics/buyer/overview?period=week", token(t, buyerID, mw.RoleBuyer))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var body analytics.BuyerOverview
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Period.Period != analytics.PeriodWeek {
		t.Errorf("period = %q, want week", body.Period.Period)
	}
	if body.KPIs.TotalSpend != 1000 || body.KPIs.Currency != analytics.DefaultCurrency {
		t.Errorf("kpis = %+v", body.KPIs)
	}
	if len(body.SpendByCategory) != 1 || body.SpendByCategory[0].Category != "Gulf Bearings" {
		t.Errorf("spendByCategory = %+v", body.SpendByCategory)
	}
}

func TestSellerEndpoints(t *testing.T) {
	srv := newServer(t, seeded(), time.Second, nil)
	auth := token(t, sellerID, mw.RoleSeller)

	for _, path := range []string{
		"/api/analytics/seller/overview",
		"/api/analytics/seller/kpis",
		"/api/analytics/seller/revenue-by-category",
		"/api/analytics/seller/top-products",
		"/api/analytics/seller/conversion-funnel",
		"/api/analytics/seller/regions",
		"/api/analytics/seller/lifecycle?period=year",
	} {
		t.Run(path, func(t *testing.T) {
			resp := get(t, srv, path, auth)
			if resp.StatusCode != http.StatusOK {
				t.Errorf("status = %d, want 200", resp.StatusCode)
			}
		})
	}

	var lifecycle analytics.LifecycleMetrics
	resp := get(t, srv, "/api/analytics/seller/lifecycle", auth)
	if err := json.NewDecoder(resp.Body).Decode(&lifecycle); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if lifecycle.OutstandingReceivables != 1000 || lifecycle.OrdersByStatus["delivered"] != 1 {
		t.Errorf("lifecycle = %+v", lifecycle)
	}
}

func TestAccessControl(t *testing.T) {
	srv := newServer(t, seeded(), time.Second, nil)

	tests := []struct {
		name       string
		path       string
		auth       string
		wantStatus int
	}{
		{name: "no token", path: "/api/analytics/buyer/kpis", wantStatus: http.StatusUnauthorized},
		{name: "seller on buyer route", path: "/api/analytics/buyer/kpis", auth: token(t, sellerID, mw.RoleSeller), wantStatus: http.StatusForbidden},
		{name: "buyer on seller route", path: "/api/analytics/seller/kpis", auth: token(t, buyerID, mw.RoleBuyer), wantStatus: http.StatusForbidden},
		{name: "non uuid subject", path: "/api/analytics/buyer/kpis", auth: token(t, "buyer-1", mw.RoleBuyer), wantStatus: http.StatusUnauthorized},
		{name: "buyer", path: "/api/analytics/buyer/timeline", auth: token(t, buyerID, mw.RoleBuyer), wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := get(t, srv, tt.path, tt.auth)
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}

func TestUnknownPeriodFallsBackToMonth(t *testing.T) {
	srv := newServer(t, seeded(), time.Second, nil)

	resp := get(t, srv, "/api/analytics/buyer/overview?period=decade", token(t, buyerID, mw.RoleBuyer))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var body analytics.BuyerOverview
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Period.Period != analytics.PeriodMonth {
		t.Errorf("period = %q, want month", body.Period.Period)
	}
}

// brokenStore fails order reads, or blocks them until the request context
// ends when slow is set.
type brokenStore struct {
	*store.Memory
	slow bool
}

func (b *brokenStore) FindOrders(ctx context.Context, _ analytics.OrderFilter, _ analytics.Range) ([]model.Order, error) {
	if b.slow {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return nil, errors.New("connection reset by peer")
}

func (b *brokenStore) AggregateOrders(ctx context.Context, f analytics.OrderFilter, r analytics.Range) (analytics.Aggregate, error) {
	_, err := b.FindOrders(ctx, f, r)
	return analytics.Aggregate{}, err
}

func TestRetrievalFailures(t *testing.T) {
	tests := []struct {
		name       string
		store      *brokenStore
		timeout    time.Duration
		wantStatus int
		wantBody   string
	}{
		{
			name:       "store error",
			store:      &brokenStore{Memory: seeded()},
			timeout:    time.Second,
			wantStatus: http.StatusInternalServerError,
			wantBody:   "analytics unavailable",
		},
		{
			name:       "deadline",
			store:      &brokenStore{Memory: seeded(), slow: true},
			timeout:    20 * time.Millisecond,
			wantStatus: http.StatusGatewayTimeout,
			wantBody:   "analytics timed out",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newServer(t, tt.store, tt.timeout, nil)

			resp := get(t, srv, "/api/analytics/seller/overview", token(t, sellerID, mw.RoleSeller))
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			var sb strings.Builder
			if _, err := io.Copy(&sb, resp.Body); err != nil {
				t.Fatalf("read body: %v", err)
			}
			if !strings.Contains(sb.String(), tt.wantBody) {
				t.Errorf("body = %q, want %q", sb.String(), tt.wantBody)
			}
			if strings.Contains(sb.String(), "totalRevenue") {
				t.Errorf("failed response leaked partial data: %q", sb.String())
			}
		})
	}
}

func TestHealth(t *testing.T) {
	ok := newServer(t, seeded(), time.Second, func(context.Context) error { return nil })
	if resp := get(t, ok, "/healthz", ""); resp.StatusCode != http.StatusOK {
		t.Errorf("healthy status = %d, want 200", resp.StatusCode)
	}

	down := newServer(t, seeded(), time.Second, func(context.Context) error { return errors.New("down") })
	if resp := get(t, down, "/healthz", ""); resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("unhealthy status = %d, want 503", resp.StatusCode)
	}
}
