package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"marketpulse/internal/model"
)

const (
	UnknownSupplier = "Unknown Supplier"

	supplierSpendLimit = 8
	topSupplierLimit   = 5
)

// BuyerEngine computes buyer-facing analytics.
type BuyerEngine struct {
	engine
}

func NewBuyerEngine(store Store, lookup Lookup, cfg Config, logger *slog.Logger) *BuyerEngine {
	return &BuyerEngine{engine: newEngine(store, lookup, cfg, logger)}
}

// KPIs reports spend, order and RFQ totals with trends against the previous
// window, and the mean quote response time in hours.
func (e *BuyerEngine) KPIs(ctx context.Context, buyerID string, w Window) (BuyerKPIs, error) {
	orders := OrderFilter{BuyerID: buyerID}
	rfqs := RFQFilter{BuyerID: buyerID}

	var (
		cur, prev         Aggregate
		rfqsSent, rfqsWas int
		quotes            []model.Quote
	)
	err := gather(ctx,
		func(ctx context.Context) (err error) {
			cur, err = e.store.AggregateOrders(ctx, orders, w.Current())
			return wrapRead("current spend", err)
		},
		func(ctx context.Context) (err error) {
			prev, err = e.store.AggregateOrders(ctx, orders, w.Previous())
			return wrapRead("previous spend", err)
		},
		func(ctx context.Context) (err error) {
			rfqsSent, err = e.store.CountRFQs(ctx, rfqs, w.Current())
			return wrapRead("current rfqs", err)
		},
		func(ctx context.Context) (err error) {
			rfqsWas, err = e.store.CountRFQs(ctx, rfqs, w.Previous())
			return wrapRead("previous rfqs", err)
		},
		func(ctx context.Context) (err error) {
			quotes, err = e.store.FindQuotes(ctx, QuoteFilter{RFQBuyerID: buyerID}, w.Current())
			return wrapRead("received quotes", err)
		},
	)
	if err != nil {
		return BuyerKPIs{}, fmt.Errorf("buyer kpis: %w", err)
	}

	return BuyerKPIs{
		TotalSpend:      money(cur.Sum),
		TotalOrders:     cur.Count,
		RFQsSent:        rfqsSent,
		AvgResponseTime: e.avgResponseHours(quotes),
		SavingsVsMarket: e.cfg.Estimates.SavingsVsMarket,
		Currency:        e.cfg.Currency,
		Trends: BuyerTrends{
			Spend:        Trend(cur.Sum, prev.Sum),
			Orders:       TrendCount(cur.Count, prev.Count),
			RFQs:         TrendCount(rfqsSent, rfqsWas),
			ResponseTime: e.cfg.Estimates.ResponseTimeTrend,
			Savings:      e.cfg.Estimates.SavingsTrend,
		},
	}, nil
}

// avgResponseHours averages quote latency behind the parent RFQ. A quote
// dated before its RFQ is a data anomaly: it is logged and counted as zero.
func (e *BuyerEngine) avgResponseHours(quotes []model.Quote) float64 {
	if len(quotes) == 0 {
		return 0
	}
	var total time.Duration
	for _, q := range quotes {
		d := q.CreatedAt.Sub(q.RFQCreatedAt)
		if d < 0 {
			e.logger.Warn("quote predates its rfq", "quote", q.ID, "rfq", q.RFQID, "skew", d)
			d = 0
		}
		total += d
	}
	return round1(total.Hours() / float64(len(quotes)))
}

// SpendBySupplier breaks realized spend down by supplier, top 8 plus an
// "Others" entry.
func (e *BuyerEngine) SpendBySupplier(ctx context.Context, buyerID string, w Window) ([]SupplierSpend, error) {
	orders, err := e.store.FindOrders(ctx, OrderFilter{BuyerID: buyerID, Statuses: ConfirmedSpendStatuses}, w.Current())
	if err != nil {
		return nil, fmt.Errorf("spend by supplier: %w", wrapRead("confirmed orders", err))
	}

	groups := newOrderedGroups[Bucket]()
	for _, o := range orders {
		b := groups.at(o.SellerID)
		b.Key = o.SellerID
		b.Value = b.Value.Add(o.TotalPrice)
		b.Count++
	}

	names, err := e.supplierNames(ctx, groups.keys)
	if err != nil {
		return nil, fmt.Errorf("spend by supplier: %w", err)
	}

	buckets := make([]Bucket, 0, groups.len())
	groups.each(func(id string, b Bucket) {
		b.Label = orDefault(names[id], UnknownSupplier)
		buckets = append(buckets, b)
	})

	top := TopN(buckets, supplierSpendLimit, OthersLabel)
	out := make([]SupplierSpend, 0, len(top))
	for _, b := range top {
		entry := SupplierSpend{
			SupplierID: b.Key,
			Category:   b.Label,
			Amount:     money(b.Value),
			Percentage: b.Percentage,
			OrderCount: b.Count,
		}
		if b.Count > 0 {
			entry.AvgOrderValue = money(b.Value.Div(decimal.NewFromInt(int64(b.Count))).Round(2))
		}
		out = append(out, entry)
	}
	return out, nil
}

type supplierTally struct {
	orders int
	onTime int
	spend  decimal.Decimal
}

// TopSuppliers ranks suppliers by spend over every in-window order.
func (e *BuyerEngine) TopSuppliers(ctx context.Context, buyerID string, w Window) ([]TopSupplier, error) {
	orders, err := e.store.FindOrders(ctx, OrderFilter{BuyerID: buyerID}, w.Current())
	if err != nil {
		return nil, fmt.Errorf("top suppliers: %w", wrapRead("orders", err))
	}

	groups := newOrderedGroups[supplierTally]()
	for _, o := range orders {
		t := groups.at(o.SellerID)
		t.orders++
		t.spend = t.spend.Add(o.TotalPrice)
		if deliveredOnTime(o) {
			t.onTime++
		}
	}

	buckets := make([]Bucket, 0, groups.len())
	groups.each(func(id string, t supplierTally) {
		buckets = append(buckets, Bucket{Key: id, Value: t.spend, Count: t.orders})
	})
	top := TopN(buckets, topSupplierLimit, "")

	ids := make([]string, 0, len(top))
	for _, b := range top {
		ids = append(ids, b.Key)
	}
	names, err := e.supplierNames(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("top suppliers: %w", err)
	}

	est := e.cfg.Estimates
	out := make([]TopSupplier, 0, len(top))
	for _, b := range top {
		t, _ := groups.get(b.Key)
		out = append(out, TopSupplier{
			SupplierID:     b.Key,
			Name:           orDefault(names[b.Key], UnknownSupplier),
			TotalOrders:    t.orders,
			TotalSpend:     money(t.spend),
			OnTimeDelivery: rateInt(t.onTime, t.orders),
			QualityScore:   est.SupplierQualityScore,
			ResponseTime:   est.SupplierResponseHours,
			WinRate:        est.SupplierWinRate,
		})
	}
	return out, nil
}

// deliveredOnTime treats an order as healthy once it reached delivered or
// closed.
func deliveredOnTime(o model.Order) bool {
	return o.Status == model.OrderDelivered || o.Status == model.OrderClosed
}

func (e *BuyerEngine) supplierNames(ctx context.Context, ids []string) (map[string]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	names, err := e.lookup.SellerNames(ctx, ids)
	return names, wrapRead("seller names", err)
}

// RFQFunnel reports the RFQ → quote → order conversion for the buyer.
func (e *BuyerEngine) RFQFunnel(ctx context.Context, buyerID string, w Window) (RFQFunnel, error) {
	var rfqs, quotes, orders int
	err := gather(ctx,
		func(ctx context.Context) (err error) {
			rfqs, err = e.store.CountRFQs(ctx, RFQFilter{BuyerID: buyerID}, w.Current())
			return wrapRead("rfqs sent", err)
		},
		func(ctx context.Context) (err error) {
			quotes, err = e.store.CountQuotes(ctx, QuoteFilter{RFQBuyerID: buyerID}, w.Current())
			return wrapRead("quotes received", err)
		},
		func(ctx context.Context) (err error) {
			orders, err = e.store.CountOrders(ctx, OrderFilter{BuyerID: buyerID, FromRFQ: true}, w.Current())
			return wrapRead("rfq orders", err)
		},
	)
	if err != nil {
		return RFQFunnel{}, fmt.Errorf("rfq funnel: %w", err)
	}
	return buildRFQFunnel(rfqs, quotes, orders), nil
}

func buildRFQFunnel(rfqs, quotes, orders int) RFQFunnel {
	return RFQFunnel{
		RFQsSent:              rfqs,
		QuotesReceived:        quotes,
		OrdersPlaced:          orders,
		RFQToQuoteRate:        rate1(quotes, rfqs),
		QuoteToOrderRate:      rate1(orders, quotes),
		OverallConversionRate: rate1(orders, rfqs),
	}
}

// Timeline returns daily spend, order and RFQ counts. Days without activity
// are omitted.
func (e *BuyerEngine) Timeline(ctx context.Context, buyerID string, w Window) ([]TimelinePoint, error) {
	var (
		orders []model.Order
		rfqs   []model.RFQ
	)
	err := gather(ctx,
		func(ctx context.Context) (err error) {
			orders, err = e.store.FindOrders(ctx, OrderFilter{BuyerID: buyerID}, w.Current())
			return wrapRead("timeline orders", err)
		},
		func(ctx context.Context) (err error) {
			rfqs, err = e.store.FindRFQs(ctx, RFQFilter{BuyerID: buyerID}, w.Current())
			return wrapRead("timeline rfqs", err)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("timeline: %w", err)
	}

	type day struct {
		spend  decimal.Decimal
		orders int
		rfqs   int
	}
	days := newOrderedGroups[day]()
	for _, o := range orders {
		d := days.at(dateKey(o.CreatedAt))
		d.spend = d.spend.Add(o.TotalPrice)
		d.orders++
	}
	for _, r := range rfqs {
		days.at(dateKey(r.CreatedAt)).rfqs++
	}

	points := make([]TimelinePoint, 0, days.len())
	days.each(func(date string, d day) {
		points = append(points, TimelinePoint{Date: date, Spend: money(d.spend), Orders: d.orders, RFQs: d.rfqs})
	})
	slices.SortFunc(points, func(a, b TimelinePoint) int {
		return strings.Compare(a.Date, b.Date)
	})
	return points, nil
}

func dateKey(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}
