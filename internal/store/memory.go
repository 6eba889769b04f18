package store

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"marketpulse/internal/analytics"
	"marketpulse/internal/model"
)

// Memory is an in-memory analytics.Store and analytics.Lookup. It backs the
// demo mode and the tests.
type Memory struct {
	mu sync.RWMutex

	orders   []model.Order
	rfqs     []model.RFQ
	quotes   []model.Quote
	invoices []model.Invoice
	payments []model.Payment

	sellers map[string]string // seller id -> display name
	items   map[string]string // item id -> category
}

func NewMemory() *Memory {
	return &Memory{
		sellers: make(map[string]string),
		items:   make(map[string]string),
	}
}

func (m *Memory) AddOrders(orders ...model.Order) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = append(m.orders, orders...)
}

// AddRFQs stores rfqs. Quotes added later pick up their RFQ's buyer and
// creation time.
func (m *Memory) AddRFQs(rfqs ...model.RFQ) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rfqs = append(m.rfqs, rfqs...)
}

func (m *Memory) AddQuotes(quotes ...model.Quote) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, q := range quotes {
		for _, r := range m.rfqs {
			if r.ID == q.RFQID {
				q.RFQBuyerID = r.BuyerID
				q.RFQCreatedAt = r.CreatedAt
				break
			}
		}
		m.quotes = append(m.quotes, q)
	}
}

func (m *Memory) AddInvoices(invoices ...model.Invoice) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invoices = append(m.invoices, invoices...)
}

func (m *Memory) AddPayments(payments ...model.Payment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments = append(m.payments, payments...)
}

func (m *Memory) AddSellers(profiles ...model.SellerProfile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range profiles {
		m.sellers[p.ID] = p.DisplayName
	}
}

func (m *Memory) AddItems(items ...model.Item) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, it := range items {
		m.items[it.ID] = it.Category
	}
}

func (m *Memory) AggregateOrders(ctx context.Context, f analytics.OrderFilter, r analytics.Range) (analytics.Aggregate, error) {
	orders, err := m.FindOrders(ctx, f, r)
	if err != nil {
		return analytics.Aggregate{}, err
	}
	agg := analytics.Aggregate{Sum: decimal.Zero, Count: len(orders)}
	for _, o := range orders {
		agg.Sum = agg.Sum.Add(o.TotalPrice)
	}
	return agg, nil
}

func (m *Memory) CountOrders(ctx context.Context, f analytics.OrderFilter, r analytics.Range) (int, error) {
	orders, err := m.FindOrders(ctx, f, r)
	return len(orders), err
}

func (m *Memory) DistinctOrderBuyers(ctx context.Context, f analytics.OrderFilter, r analytics.Range) ([]string, error) {
	orders, err := m.FindOrders(ctx, f, r)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var buyers []string
	for _, o := range orders {
		if !seen[o.BuyerID] {
			seen[o.BuyerID] = true
			buyers = append(buyers, o.BuyerID)
		}
	}
	return buyers, nil
}

func (m *Memory) FindOrders(ctx context.Context, f analytics.OrderFilter, r analytics.Range) ([]model.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []model.Order
	for _, o := range m.orders {
		if f.Match(o) && r.Contains(o.CreatedAt) {
			out = append(out, o)
		}
	}
	sortByTime(out, func(o model.Order) (time.Time, string) { return o.CreatedAt, o.ID })
	return out, nil
}

func (m *Memory) CountRFQs(ctx context.Context, f analytics.RFQFilter, r analytics.Range) (int, error) {
	rfqs, err := m.FindRFQs(ctx, f, r)
	return len(rfqs), err
}

func (m *Memory) FindRFQs(ctx context.Context, f analytics.RFQFilter, r analytics.Range) ([]model.RFQ, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []model.RFQ
	for _, q := range m.rfqs {
		if f.Match(q) && r.Contains(q.CreatedAt) {
			out = append(out, q)
		}
	}
	sortByTime(out, func(q model.RFQ) (time.Time, string) { return q.CreatedAt, q.ID })
	return out, nil
}

func (m *Memory) CountQuotes(ctx context.Context, f analytics.QuoteFilter, r analytics.Range) (int, error) {
	quotes, err := m.FindQuotes(ctx, f, r)
	return len(quotes), err
}

func (m *Memory) FindQuotes(ctx context.Context, f analytics.QuoteFilter, r analytics.Range) ([]model.Quote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []model.Quote
	for _, q := range m.quotes {
		if f.Match(q) && r.Contains(q.CreatedAt) {
			out = append(out, q)
		}
	}
	sortByTime(out, func(q model.Quote) (time.Time, string) { return q.CreatedAt, q.ID })
	return out, nil
}

func (m *Memory) FindInvoices(ctx context.Context, sellerID string, r analytics.Range) ([]model.Invoice, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []model.Invoice
	for _, inv := range m.invoices {
		if inv.SellerID == sellerID && r.Contains(inv.IssuedAt) {
			out = append(out, inv)
		}
	}
	sortByTime(out, func(inv model.Invoice) (time.Time, string) { return inv.IssuedAt, inv.ID })
	return out, nil
}

func (m *Memory) FindPayments(ctx context.Context, sellerID string, r analytics.Range) ([]model.Payment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []model.Payment
	for _, p := range m.payments {
		if p.SellerID == sellerID && r.Contains(p.CreatedAt) {
			out = append(out, p)
		}
	}
	sortByTime(out, func(p model.Payment) (time.Time, string) { return p.CreatedAt, p.ID })
	return out, nil
}

func (m *Memory) SellerNames(ctx context.Context, ids []string) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return pick(m.sellers, ids), ctx.Err()
}

func (m *Memory) ItemCategories(ctx context.Context, ids []string) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return pick(m.items, ids), ctx.Err()
}

func pick(src map[string]string, ids []string) map[string]string {
	out := make(map[string]string, len(ids))
	for _, id := range ids {
		if v, ok := src[id]; ok && v != "" {
			out[id] = v
		}
	}
	return out
}

func sortByTime[T any](rows []T, key func(T) (time.Time, string)) {
	slices.SortStableFunc(rows, func(a, b T) int {
		ta, ia := key(a)
		tb, ib := key(b)
		if c := ta.Compare(tb); c != 0 {
			return c
		}
		return cmp.Compare(ia, ib)
	})
}
