package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPendingConfirmation OrderStatus = "pending_confirmation"
	OrderConfirmed           OrderStatus = "confirmed"
	OrderProcessing          OrderStatus = "processing"
	OrderShipped             OrderStatus = "shipped"
	OrderDelivered           OrderStatus = "delivered"
	OrderClosed              OrderStatus = "closed"
	OrderCancelled           OrderStatus = "cancelled"
	OrderFailed              OrderStatus = "failed"
	OrderRefunded            OrderStatus = "refunded"
)

type PaymentStatus string

const (
	PaymentUnpaid      PaymentStatus = "unpaid"
	PaymentAuthorized  PaymentStatus = "authorized"
	PaymentPendingConf PaymentStatus = "pending_conf"
	PaymentPaid        PaymentStatus = "paid"
	PaymentRefunded    PaymentStatus = "refunded"
)

// Order is the read projection of a marketplace order. TotalPrice is stored
// independently of Quantity*UnitPrice and is authoritative for spend figures.
type Order struct {
	ID              string          `json:"id"`
	BuyerID         string          `json:"buyer_id"`
	SellerID        string          `json:"seller_id"`
	BuyerName       string          `json:"buyer_name,omitempty"`
	BuyerCompany    string          `json:"buyer_company,omitempty"`
	ItemID          string          `json:"item_id"`
	ItemName        string          `json:"item_name,omitempty"`
	ItemSKU         string          `json:"item_sku,omitempty"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	Status          OrderStatus     `json:"status"`
	PaymentStatus   PaymentStatus   `json:"payment_status"`
	ShippingAddress *string         `json:"shipping_address,omitempty"` // JSON text, not guaranteed well-formed
	RFQID           *string         `json:"rfq_id,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	ShippedAt       *time.Time      `json:"shipped_at,omitempty"`
	DeliveredAt     *time.Time      `json:"delivered_at,omitempty"`
}

// LineTotal re-derives the order value at line-item level.
func (o Order) LineTotal() decimal.Decimal {
	return o.UnitPrice.Mul(decimal.NewFromInt(int64(o.Quantity)))
}
