package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"marketpulse/internal/analytics"
	"marketpulse/internal/metrics"
	"marketpulse/internal/model"
)

// Postgres reads the marketplace schema through database/sql (pgx driver).
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const orderColumns = `id, buyer_id, seller_id, COALESCE(buyer_name, ''), COALESCE(buyer_company, ''),
	COALESCE(item_id::text, ''), COALESCE(item_name, ''), COALESCE(item_sku, ''),
	quantity, unit_price, total_price, status, payment_status, shipping_address,
	rfq_id, created_at, shipped_at, delivered_at`

// where accumulates AND-ed conditions with positional arguments.
type where struct {
	conds []string
	args  []any
}

func (w *where) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, strings.ReplaceAll(cond, "?", fmt.Sprintf("$%d", len(w.args))))
}

func (w *where) raw(cond string) {
	w.conds = append(w.conds, cond)
}

func (w *where) window(column string, r analytics.Range) {
	if r.IsZero() {
		return
	}
	w.add(column+" >= ?", r.From)
	w.add(column+" <= ?", r.To)
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

func orderWhere(f analytics.OrderFilter, r analytics.Range) *where {
	w := &where{}
	if f.BuyerID != "" {
		w.add("buyer_id = ?", f.BuyerID)
	}
	if f.SellerID != "" {
		w.add("seller_id = ?", f.SellerID)
	}
	if len(f.Statuses) > 0 {
		w.add("status = ANY(?)", toStrings(f.Statuses))
	}
	if len(f.PaymentStatuses) > 0 {
		w.add("payment_status = ANY(?)", toStrings(f.PaymentStatuses))
	}
	if f.FromRFQ {
		w.raw("rfq_id IS NOT NULL")
	}
	w.window("created_at", r)
	return w
}

func rfqWhere(f analytics.RFQFilter, r analytics.Range) *where {
	w := &where{}
	if f.BuyerID != "" {
		w.add("buyer_id = ?", f.BuyerID)
	}
	if f.SellerID != "" {
		w.add("seller_id = ?", f.SellerID)
	}
	w.window("created_at", r)
	return w
}

func quoteWhere(f analytics.QuoteFilter, r analytics.Range) *where {
	w := &where{}
	if f.SellerID != "" {
		w.add("q.seller_id = ?", f.SellerID)
	}
	if f.RFQBuyerID != "" {
		w.add("r.buyer_id = ?", f.RFQBuyerID)
	}
	if len(f.Statuses) > 0 {
		w.add("q.status = ANY(?)", toStrings(f.Statuses))
	}
	w.window("q.created_at", r)
	return w
}

func toStrings[S ~string](vals []S) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}

func (s *Postgres) AggregateOrders(ctx context.Context, f analytics.OrderFilter, r analytics.Range) (analytics.Aggregate, error) {
	defer metrics.ObserveQuery("aggregate_orders", time.Now())

	w := orderWhere(f, r)
	var agg analytics.Aggregate
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(total_price), 0), COUNT(*) FROM orders`+w.String(), w.args...,
	).Scan(&agg.Sum, &agg.Count)
	if err != nil {
		return analytics.Aggregate{}, fmt.Errorf("aggregate orders: %w", err)
	}
	return agg, nil
}

func (s *Postgres) CountOrders(ctx context.Context, f analytics.OrderFilter, r analytics.Range) (int, error) {
	defer metrics.ObserveQuery("count_orders", time.Now())
	return s.count(ctx, `SELECT COUNT(*) FROM orders`, orderWhere(f, r))
}

func (s *Postgres) DistinctOrderBuyers(ctx context.Context, f analytics.OrderFilter, r analytics.Range) ([]string, error) {
	defer metrics.ObserveQuery("distinct_order_buyers", time.Now())

	w := orderWhere(f, r)
	rows, err := s.db.QueryContext(ctx,
		`SELECT buyer_id FROM orders`+w.String()+` GROUP BY buyer_id ORDER BY MIN(created_at), buyer_id`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("query order buyers: %w", err)
	}
	defer rows.Close()

	var buyers []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan order buyer: %w", err)
		}
		buyers = append(buyers, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return buyers, nil
}

func (s *Postgres) FindOrders(ctx context.Context, f analytics.OrderFilter, r analytics.Range) ([]model.Order, error) {
	defer metrics.ObserveQuery("find_orders", time.Now())

	w := orderWhere(f, r)
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders`+w.String()+` ORDER BY created_at, id`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return orders, nil
}

func scanOrder(rows *sql.Rows) (model.Order, error) {
	var (
		o                      model.Order
		address, rfqID         sql.NullString
		shippedAt, deliveredAt sql.NullTime
	)
	err := rows.Scan(&o.ID, &o.BuyerID, &o.SellerID, &o.BuyerName, &o.BuyerCompany,
		&o.ItemID, &o.ItemName, &o.ItemSKU,
		&o.Quantity, &o.UnitPrice, &o.TotalPrice, &o.Status, &o.PaymentStatus, &address,
		&rfqID, &o.CreatedAt, &shippedAt, &deliveredAt)
	if err != nil {
		return model.Order{}, fmt.Errorf("scan order: %w", err)
	}
	if address.Valid {
		o.ShippingAddress = &address.String
	}
	if rfqID.Valid {
		o.RFQID = &rfqID.String
	}
	if shippedAt.Valid {
		o.ShippedAt = &shippedAt.Time
	}
	if deliveredAt.Valid {
		o.DeliveredAt = &deliveredAt.Time
	}
	return o, nil
}

func (s *Postgres) CountRFQs(ctx context.Context, f analytics.RFQFilter, r analytics.Range) (int, error) {
	defer metrics.ObserveQuery("count_rfqs", time.Now())
	return s.count(ctx, `SELECT COUNT(*) FROM rfqs`, rfqWhere(f, r))
}

func (s *Postgres) FindRFQs(ctx context.Context, f analytics.RFQFilter, r analytics.Range) ([]model.RFQ, error) {
	defer metrics.ObserveQuery("find_rfqs", time.Now())

	w := rfqWhere(f, r)
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, buyer_id, seller_id, status, created_at FROM rfqs`+w.String()+` ORDER BY created_at, id`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("query rfqs: %w", err)
	}
	defer rows.Close()

	var rfqs []model.RFQ
	for rows.Next() {
		var (
			q        model.RFQ
			sellerID sql.NullString
		)
		if err := rows.Scan(&q.ID, &q.BuyerID, &sellerID, &q.Status, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan rfq: %w", err)
		}
		if sellerID.Valid {
			q.SellerID = &sellerID.String
		}
		rfqs = append(rfqs, q)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return rfqs, nil
}

const quoteFrom = ` FROM quotes q JOIN rfqs r ON r.id = q.rfq_id`

func (s *Postgres) CountQuotes(ctx context.Context, f analytics.QuoteFilter, r analytics.Range) (int, error) {
	defer metrics.ObserveQuery("count_quotes", time.Now())
	return s.count(ctx, `SELECT COUNT(*)`+quoteFrom, quoteWhere(f, r))
}

func (s *Postgres) FindQuotes(ctx context.Context, f analytics.QuoteFilter, r analytics.Range) ([]model.Quote, error) {
	defer metrics.ObserveQuery("find_quotes", time.Now())

	w := quoteWhere(f, r)
	rows, err := s.db.QueryContext(ctx,
		`SELECT q.id, q.rfq_id, q.seller_id, q.status, q.created_at, r.buyer_id, r.created_at`+
			quoteFrom+w.String()+` ORDER BY q.created_at, q.id`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("query quotes: %w", err)
	}
	defer rows.Close()

	var quotes []model.Quote
	for rows.Next() {
		var q model.Quote
		if err := rows.Scan(&q.ID, &q.RFQID, &q.SellerID, &q.Status, &q.CreatedAt, &q.RFQBuyerID, &q.RFQCreatedAt); err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		quotes = append(quotes, q)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return quotes, nil
}

func (s *Postgres) FindInvoices(ctx context.Context, sellerID string, r analytics.Range) ([]model.Invoice, error) {
	defer metrics.ObserveQuery("find_invoices", time.Now())

	w := &where{}
	w.add("seller_id = ?", sellerID)
	w.window("issued_at", r)
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, seller_id, status, issued_at, paid_at FROM invoices`+w.String()+` ORDER BY issued_at, id`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("query invoices: %w", err)
	}
	defer rows.Close()

	var invoices []model.Invoice
	for rows.Next() {
		var (
			inv    model.Invoice
			paidAt sql.NullTime
		)
		if err := rows.Scan(&inv.ID, &inv.SellerID, &inv.Status, &inv.IssuedAt, &paidAt); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		if paidAt.Valid {
			inv.PaidAt = &paidAt.Time
		}
		invoices = append(invoices, inv)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return invoices, nil
}

func (s *Postgres) FindPayments(ctx context.Context, sellerID string, r analytics.Range) ([]model.Payment, error) {
	defer metrics.ObserveQuery("find_payments", time.Now())

	w := &where{}
	w.add("seller_id = ?", sellerID)
	w.window("created_at", r)
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, seller_id, created_at, confirmed_at FROM payments`+w.String()+` ORDER BY created_at, id`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("query payments: %w", err)
	}
	defer rows.Close()

	var payments []model.Payment
	for rows.Next() {
		var (
			p           model.Payment
			confirmedAt sql.NullTime
		)
		if err := rows.Scan(&p.ID, &p.SellerID, &p.CreatedAt, &confirmedAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		if confirmedAt.Valid {
			p.ConfirmedAt = &confirmedAt.Time
		}
		payments = append(payments, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return payments, nil
}

func (s *Postgres) SellerNames(ctx context.Context, ids []string) (map[string]string, error) {
	defer metrics.ObserveQuery("seller_names", time.Now())
	return s.labels(ctx, `SELECT id, display_name FROM seller_profiles WHERE id = ANY($1::uuid[])`, ids)
}

func (s *Postgres) ItemCategories(ctx context.Context, ids []string) (map[string]string, error) {
	defer metrics.ObserveQuery("item_categories", time.Now())
	return s.labels(ctx, `SELECT id, category FROM items WHERE id = ANY($1::uuid[])`, ids)
}

// labels runs an id -> label lookup. NULL or empty labels are left out.
func (s *Postgres) labels(ctx context.Context, query string, ids []string) (map[string]string, error) {
	out := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := s.db.QueryContext(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("query labels: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id    string
			label sql.NullString
		)
		if err := rows.Scan(&id, &label); err != nil {
			return nil, fmt.Errorf("scan label: %w", err)
		}
		if label.Valid && label.String != "" {
			out[id] = label.String
		}
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return out, nil
}

func (s *Postgres) count(ctx context.Context, query string, w *where) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, query+w.String(), w.args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

var (
	_ analytics.Store  = (*Postgres)(nil)
	_ analytics.Lookup = (*Postgres)(nil)
	_ analytics.Store  = (*Memory)(nil)
	_ analytics.Lookup = (*Memory)(nil)
)
