package analytics

import (
	"context"
	"slices"

	"github.com/shopspring/decimal"

	"marketpulse/internal/model"
)

// Store is the read-only data access the engines depend on. Find* results
// are ordered by their timestamp, then id.
type Store interface {
	AggregateOrders(ctx context.Context, f OrderFilter, r Range) (Aggregate, error)
	CountOrders(ctx context.Context, f OrderFilter, r Range) (int, error)
	DistinctOrderBuyers(ctx context.Context, f OrderFilter, r Range) ([]string, error)
	FindOrders(ctx context.Context, f OrderFilter, r Range) ([]model.Order, error)

	CountRFQs(ctx context.Context, f RFQFilter, r Range) (int, error)
	FindRFQs(ctx context.Context, f RFQFilter, r Range) ([]model.RFQ, error)

	CountQuotes(ctx context.Context, f QuoteFilter, r Range) (int, error)
	FindQuotes(ctx context.Context, f QuoteFilter, r Range) ([]model.Quote, error)

	FindInvoices(ctx context.Context, sellerID string, r Range) ([]model.Invoice, error)
	FindPayments(ctx context.Context, sellerID string, r Range) ([]model.Payment, error)
}

// Lookup resolves dimension labels in batch. Ids without a record are
// simply absent from the returned map.
type Lookup interface {
	SellerNames(ctx context.Context, ids []string) (map[string]string, error)
	ItemCategories(ctx context.Context, ids []string) (map[string]string, error)
}

// Aggregate is a sum over order totals plus the matching row count.
type Aggregate struct {
	Sum   decimal.Decimal
	Count int
}

// OrderFilter narrows order reads; zero fields do not filter. Orders are
// windowed on CreatedAt.
type OrderFilter struct {
	BuyerID         string
	SellerID        string
	Statuses        []model.OrderStatus
	PaymentStatuses []model.PaymentStatus
	FromRFQ         bool
}

func (f OrderFilter) Match(o model.Order) bool {
	if f.BuyerID != "" && o.BuyerID != f.BuyerID {
		return false
	}
	if f.SellerID != "" && o.SellerID != f.SellerID {
		return false
	}
	if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, o.Status) {
		return false
	}
	if len(f.PaymentStatuses) > 0 && !slices.Contains(f.PaymentStatuses, o.PaymentStatus) {
		return false
	}
	if f.FromRFQ && o.RFQID == nil {
		return false
	}
	return true
}

// RFQFilter matches RFQs by owner or addressed seller. A SellerID filter
// never matches broadcast RFQs.
type RFQFilter struct {
	BuyerID  string
	SellerID string
}

func (f RFQFilter) Match(r model.RFQ) bool {
	if f.BuyerID != "" && r.BuyerID != f.BuyerID {
		return false
	}
	if f.SellerID != "" && (r.SellerID == nil || *r.SellerID != f.SellerID) {
		return false
	}
	return true
}

// QuoteFilter matches quotes by issuing seller or by the buyer that owns the
// parent RFQ.
type QuoteFilter struct {
	SellerID   string
	RFQBuyerID string
	Statuses   []model.QuoteStatus
}

func (f QuoteFilter) Match(q model.Quote) bool {
	if f.SellerID != "" && q.SellerID != f.SellerID {
		return false
	}
	if f.RFQBuyerID != "" && q.RFQBuyerID != f.RFQBuyerID {
		return false
	}
	if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, q.Status) {
		return false
	}
	return true
}

var (
	// ConfirmedSpendStatuses are the order states that count as realized spend.
	ConfirmedSpendStatuses = []model.OrderStatus{
		model.OrderConfirmed,
		model.OrderProcessing,
		model.OrderShipped,
		model.OrderDelivered,
		model.OrderClosed,
	}

	UnpaidPaymentStatuses = []model.PaymentStatus{
		model.PaymentUnpaid,
		model.PaymentAuthorized,
		model.PaymentPendingConf,
	}
)
