package model

import "time"

type Payment struct {
	ID          string     `json:"id"`
	SellerID    string     `json:"seller_id"`
	CreatedAt   time.Time  `json:"created_at"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
}
