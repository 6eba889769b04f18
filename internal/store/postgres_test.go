package store

import (
	"reflect"
	"testing"
	"time"

	"marketpulse/internal/analytics"
	"marketpulse/internal/model"
)

func TestOrderWhere(t *testing.T) {
	from := time.Date(2026, 2, 13, 12, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	r := analytics.Range{From: from, To: to}

	tests := []struct {
		name     string
		filter   analytics.OrderFilter
		r        analytics.Range
		wantSQL  string
		wantArgs []any
	}{
		{
			name: "no conditions",
		},
		{
			name:     "buyer in window",
			filter:   analytics.OrderFilter{BuyerID: "b1"},
			r:        r,
			wantSQL:  " WHERE buyer_id = $1 AND created_at >= $2 AND created_at <= $3",
			wantArgs: []any{"b1", from, to},
		},
		{
			name: "receivables",
			filter: analytics.OrderFilter{
				SellerID:        "s1",
				Statuses:        []model.OrderStatus{model.OrderDelivered},
				PaymentStatuses: []model.PaymentStatus{model.PaymentUnpaid, model.PaymentAuthorized},
			},
			wantSQL:  " WHERE seller_id = $1 AND status = ANY($2) AND payment_status = ANY($3)",
			wantArgs: []any{"s1", []string{"delivered"}, []string{"unpaid", "authorized"}},
		},
		{
			name:     "rfq backed",
			filter:   analytics.OrderFilter{SellerID: "s1", FromRFQ: true},
			r:        r,
			wantSQL:  " WHERE seller_id = $1 AND rfq_id IS NOT NULL AND created_at >= $2 AND created_at <= $3",
			wantArgs: []any{"s1", from, to},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := orderWhere(tt.filter, tt.r)
			if got := w.String(); got != tt.wantSQL {
				t.Errorf("sql = %q, want %q", got, tt.wantSQL)
			}
			if !reflect.DeepEqual(w.args, tt.wantArgs) {
				t.Errorf("args = %v, want %v", w.args, tt.wantArgs)
			}
		})
	}
}

func TestQuoteWhere(t *testing.T) {
	w := quoteWhere(analytics.QuoteFilter{
		SellerID: "s1",
		Statuses: []model.QuoteStatus{model.QuoteAccepted},
	}, analytics.Range{})

	want := " WHERE q.seller_id = $1 AND q.status = ANY($2)"
	if got := w.String(); got != want {
		t.Errorf("sql = %q, want %q", got, want)
	}
	if !reflect.DeepEqual(w.args, []any{"s1", []string{"accepted"}}) {
		t.Errorf("args = %v", w.args)
	}
}

func TestRFQWhere(t *testing.T) {
	w := rfqWhere(analytics.RFQFilter{BuyerID: "b1", SellerID: "s1"}, analytics.Range{})

	want := " WHERE buyer_id = $1 AND seller_id = $2"
	if got := w.String(); got != want {
		t.Errorf("sql = %q, want %q", got, want)
	}
}
