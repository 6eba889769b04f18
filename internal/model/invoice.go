package model

import "time"

type Invoice struct {
	ID       string     `json:"id"`
	SellerID string     `json:"seller_id"`
	Status   string     `json:"status"` // draft, issued, paid, overdue, void
	IssuedAt time.Time  `json:"issued_at"`
	PaidAt   *time.Time `json:"paid_at,omitempty"`
}
