package analytics

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"marketpulse/internal/model"
)

const (
	OtherCategory  = "Other"
	UnknownProduct = "Unknown Product"
	UnknownSKU     = "N/A"

	categoryLimit   = 6
	topProductLimit = 5
	regionLimit     = 5
)

// Funnel stage names, in order.
const (
	StageRFQsReceived = "RFQs Received"
	StageQuotesSent   = "Quotes Sent"
	StageOrdersWon    = "Orders Won"
)

// SellerEngine computes seller-facing analytics.
type SellerEngine struct {
	engine
}

func NewSellerEngine(store Store, lookup Lookup, cfg Config, logger *slog.Logger) *SellerEngine {
	return &SellerEngine{engine: newEngine(store, lookup, cfg, logger)}
}

func (e *SellerEngine) KPIs(ctx context.Context, sellerID string, w Window) (SellerKPIs, error) {
	orders := OrderFilter{SellerID: sellerID}

	var (
		cur, prev            Aggregate
		buyers, buyersWas    []string
		rfqsReceived, accept int
	)
	err := gather(ctx,
		func(ctx context.Context) (err error) {
			cur, err = e.store.AggregateOrders(ctx, orders, w.Current())
			return wrapRead("current revenue", err)
		},
		func(ctx context.Context) (err error) {
			prev, err = e.store.AggregateOrders(ctx, orders, w.Previous())
			return wrapRead("previous revenue", err)
		},
		func(ctx context.Context) (err error) {
			buyers, err = e.store.DistinctOrderBuyers(ctx, orders, w.Current())
			return wrapRead("current buyers", err)
		},
		func(ctx context.Context) (err error) {
			buyersWas, err = e.store.DistinctOrderBuyers(ctx, orders, w.Previous())
			return wrapRead("previous buyers", err)
		},
		func(ctx context.Context) (err error) {
			rfqsReceived, err = e.store.CountRFQs(ctx, RFQFilter{SellerID: sellerID}, w.Current())
			return wrapRead("rfqs received", err)
		},
		func(ctx context.Context) (err error) {
			accept, err = e.store.CountQuotes(ctx, QuoteFilter{SellerID: sellerID, Statuses: []model.QuoteStatus{model.QuoteAccepted}}, w.Current())
			return wrapRead("accepted quotes", err)
		},
	)
	if err != nil {
		return SellerKPIs{}, fmt.Errorf("seller kpis: %w", err)
	}

	kpis := SellerKPIs{
		TotalRevenue: money(cur.Sum),
		TotalOrders:  cur.Count,
		NewBuyers:    len(buyers),
		WinRate:      rateInt(accept, rfqsReceived),
		Currency:     e.cfg.Currency,
		Trends: SellerTrends{
			Revenue: Trend(cur.Sum, prev.Sum),
			Orders:  TrendCount(cur.Count, prev.Count),
			Buyers:  TrendCount(len(buyers), len(buyersWas)),
		},
	}
	if cur.Count > 0 {
		kpis.AvgOrderValue = money(cur.Sum.Div(decimal.NewFromInt(int64(cur.Count))).Round(2))
	}
	return kpis, nil
}

// RevenueByCategory sums line-item revenue (quantity × unit price) per item
// category, top 6 plus an "Others" entry.
func (e *SellerEngine) RevenueByCategory(ctx context.Context, sellerID string, w Window) ([]CategoryRevenue, error) {
	orders, err := e.store.FindOrders(ctx, OrderFilter{SellerID: sellerID}, w.Current())
	if err != nil {
		return nil, fmt.Errorf("revenue by category: %w", wrapRead("orders", err))
	}

	items := newOrderedGroups[struct{}]()
	for _, o := range orders {
		if o.ItemID != "" {
			items.at(o.ItemID)
		}
	}
	var categories map[string]string
	if items.len() > 0 {
		categories, err = e.lookup.ItemCategories(ctx, items.keys)
		if err != nil {
			return nil, fmt.Errorf("revenue by category: %w", wrapRead("item categories", err))
		}
	}

	return categoryRevenue(orders, categories), nil
}

func categoryRevenue(orders []model.Order, categories map[string]string) []CategoryRevenue {
	groups := newOrderedGroups[Bucket]()
	for _, o := range orders {
		category := orDefault(categories[o.ItemID], OtherCategory)
		b := groups.at(category)
		b.Label = category
		b.Value = b.Value.Add(o.LineTotal())
		b.Count++
	}

	buckets := make([]Bucket, 0, groups.len())
	groups.each(func(_ string, b Bucket) { buckets = append(buckets, b) })

	top := TopN(buckets, categoryLimit, OthersLabel)
	out := make([]CategoryRevenue, 0, len(top))
	for _, b := range top {
		out = append(out, CategoryRevenue{Category: b.Label, Amount: money(b.Value), Percentage: b.Percentage})
	}
	return out
}

type productTally struct {
	name    string
	sku     string
	orders  int
	revenue decimal.Decimal
}

// TopProducts ranks items by line-item revenue. Item name and sku come from
// the order itself.
func (e *SellerEngine) TopProducts(ctx context.Context, sellerID string, w Window) ([]TopProduct, error) {
	orders, err := e.store.FindOrders(ctx, OrderFilter{SellerID: sellerID}, w.Current())
	if err != nil {
		return nil, fmt.Errorf("top products: %w", wrapRead("orders", err))
	}
	return topProducts(orders), nil
}

func topProducts(orders []model.Order) []TopProduct {
	groups := newOrderedGroups[productTally]()
	for _, o := range orders {
		p := groups.at(o.ItemID)
		if p.name == "" {
			p.name = o.ItemName
		}
		if p.sku == "" {
			p.sku = o.ItemSKU
		}
		p.orders++
		p.revenue = p.revenue.Add(o.LineTotal())
	}

	buckets := make([]Bucket, 0, groups.len())
	groups.each(func(id string, p productTally) {
		buckets = append(buckets, Bucket{Key: id, Value: p.revenue, Count: p.orders})
	})

	top := TopN(buckets, topProductLimit, "")
	out := make([]TopProduct, 0, len(top))
	for _, b := range top {
		p, _ := groups.get(b.Key)
		out = append(out, TopProduct{
			ItemID:  b.Key,
			Name:    orDefault(p.name, UnknownProduct),
			SKU:     orDefault(p.sku, UnknownSKU),
			Revenue: money(p.revenue),
			Orders:  p.orders,
		})
	}
	return out
}

// ConversionFunnel reports RFQs received, quotes sent and RFQ-backed orders
// won, each stage as an integer share of RFQs received.
func (e *SellerEngine) ConversionFunnel(ctx context.Context, sellerID string, w Window) (ConversionFunnel, error) {
	var rfqs, quotes, orders int
	err := gather(ctx,
		func(ctx context.Context) (err error) {
			rfqs, err = e.store.CountRFQs(ctx, RFQFilter{SellerID: sellerID}, w.Current())
			return wrapRead("rfqs received", err)
		},
		func(ctx context.Context) (err error) {
			quotes, err = e.store.CountQuotes(ctx, QuoteFilter{SellerID: sellerID}, w.Current())
			return wrapRead("quotes sent", err)
		},
		func(ctx context.Context) (err error) {
			orders, err = e.store.CountOrders(ctx, OrderFilter{SellerID: sellerID, FromRFQ: true}, w.Current())
			return wrapRead("orders won", err)
		},
	)
	if err != nil {
		return ConversionFunnel{}, fmt.Errorf("conversion funnel: %w", err)
	}
	return buildConversionFunnel(rfqs, quotes, orders), nil
}

func buildConversionFunnel(rfqs, quotes, orders int) ConversionFunnel {
	return ConversionFunnel{
		RFQsReceived: rfqs,
		QuotesSent:   quotes,
		OrdersWon:    orders,
		Stages: []FunnelStage{
			{Stage: StageRFQsReceived, Count: rfqs, Percentage: 100},
			{Stage: StageQuotesSent, Count: quotes, Percentage: rateInt(quotes, rfqs)},
			{Stage: StageOrdersWon, Count: orders, Percentage: rateInt(orders, rfqs)},
		},
	}
}

// RegionDistribution counts orders per shipping city, top 5. Addresses that
// do not parse count as "Unknown".
func (e *SellerEngine) RegionDistribution(ctx context.Context, sellerID string, w Window) ([]RegionShare, error) {
	orders, err := e.store.FindOrders(ctx, OrderFilter{SellerID: sellerID}, w.Current())
	if err != nil {
		return nil, fmt.Errorf("region distribution: %w", wrapRead("orders", err))
	}
	return regionDistribution(orders), nil
}

func regionDistribution(orders []model.Order) []RegionShare {
	groups := newOrderedGroups[Bucket]()
	for _, o := range orders {
		region := regionOf(o.ShippingAddress)
		b := groups.at(region)
		b.Label = region
		b.Value = b.Value.Add(decimal.NewFromInt(1))
		b.Count++
	}

	buckets := make([]Bucket, 0, groups.len())
	groups.each(func(_ string, b Bucket) { buckets = append(buckets, b) })

	top := TopN(buckets, regionLimit, "")
	out := make([]RegionShare, 0, len(top))
	for _, b := range top {
		out = append(out, RegionShare{Region: b.Label, Orders: b.Count, Percentage: rateInt(b.Count, len(orders))})
	}
	return out
}
