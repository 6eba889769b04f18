package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"marketpulse/internal/model"
)

const (
	UnknownBuyer = "Unknown Buyer"

	topBuyerLimit = 5
)

// LifecycleMetrics reports the seller's operational health: receivables,
// delivery and payment delays, fulfillment, top buyers and payment intake.
// Receivables are all-time; everything else is scoped to the window.
func (e *SellerEngine) LifecycleMetrics(ctx context.Context, sellerID string, w Window) (LifecycleMetrics, error) {
	var (
		receivables Aggregate
		orders      []model.Order
		invoices    []model.Invoice
		payments    []model.Payment
	)
	err := gather(ctx,
		func(ctx context.Context) (err error) {
			receivables, err = e.store.AggregateOrders(ctx, OrderFilter{
				SellerID:        sellerID,
				Statuses:        []model.OrderStatus{model.OrderDelivered},
				PaymentStatuses: UnpaidPaymentStatuses,
			}, Range{})
			return wrapRead("receivables", err)
		},
		func(ctx context.Context) (err error) {
			orders, err = e.store.FindOrders(ctx, OrderFilter{SellerID: sellerID}, w.Current())
			return wrapRead("lifecycle orders", err)
		},
		func(ctx context.Context) (err error) {
			invoices, err = e.store.FindInvoices(ctx, sellerID, w.Current())
			return wrapRead("invoices", err)
		},
		func(ctx context.Context) (err error) {
			payments, err = e.store.FindPayments(ctx, sellerID, w.Current())
			return wrapRead("payments", err)
		},
	)
	if err != nil {
		return LifecycleMetrics{}, fmt.Errorf("lifecycle metrics: %w", err)
	}

	m := orderLifecycle(orders)
	m.OutstandingReceivables = money(receivables.Sum)
	m.AvgPaymentDelayDays = avgPaymentDelayDays(invoices)
	m.Payments = summarizePayments(payments)
	return m, nil
}

type buyerTally struct {
	name   string
	orders int
	spend  decimal.Decimal
}

func orderLifecycle(orders []model.Order) LifecycleMetrics {
	byStatus := make(map[string]int)
	var (
		spans     []time.Duration
		fulfilled int
	)
	buyers := newOrderedGroups[buyerTally]()

	for _, o := range orders {
		byStatus[string(o.Status)]++
		if o.Status == model.OrderDelivered || o.Status == model.OrderClosed {
			fulfilled++
		}
		if o.ShippedAt != nil && o.DeliveredAt != nil {
			spans = append(spans, max(o.DeliveredAt.Sub(*o.ShippedAt), 0))
		}

		b := buyers.at(o.BuyerID)
		if b.name == "" {
			b.name = orDefault(o.BuyerCompany, o.BuyerName)
		}
		b.orders++
		b.spend = b.spend.Add(o.TotalPrice)
	}

	buckets := make([]Bucket, 0, buyers.len())
	buyers.each(func(id string, b buyerTally) {
		buckets = append(buckets, Bucket{Key: id, Value: b.spend, Count: b.orders})
	})
	top := TopN(buckets, topBuyerLimit, "")
	topBuyers := make([]TopBuyer, 0, len(top))
	for _, bk := range top {
		b, _ := buyers.get(bk.Key)
		topBuyers = append(topBuyers, TopBuyer{
			BuyerID:    bk.Key,
			Name:       orDefault(b.name, UnknownBuyer),
			TotalSpend: money(b.spend),
			Orders:     b.orders,
		})
	}

	return LifecycleMetrics{
		AvgDeliveryDays: meanDays(spans),
		FulfillmentRate: rateInt(fulfilled, len(orders)),
		TotalOrders:     len(orders),
		OrdersByStatus:  byStatus,
		TopBuyers:       topBuyers,
	}
}

func avgPaymentDelayDays(invoices []model.Invoice) float64 {
	var spans []time.Duration
	for _, inv := range invoices {
		if inv.PaidAt != nil {
			spans = append(spans, max(inv.PaidAt.Sub(inv.IssuedAt), 0))
		}
	}
	return meanDays(spans)
}

func summarizePayments(payments []model.Payment) PaymentSummary {
	s := PaymentSummary{Received: len(payments)}
	var total time.Duration
	for _, p := range payments {
		if p.ConfirmedAt == nil {
			continue
		}
		s.Confirmed++
		total += max(p.ConfirmedAt.Sub(p.CreatedAt), 0)
	}
	if s.Confirmed > 0 {
		s.AvgConfirmationHours = round1(total.Hours() / float64(s.Confirmed))
	}
	return s
}
