package model

import "time"

type RFQ struct {
	ID        string    `json:"id"`
	BuyerID   string    `json:"buyer_id"`
	SellerID  *string   `json:"seller_id,omitempty"` // nil for broadcast RFQs
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func (r RFQ) IsBroadcast() bool {
	return r.SellerID == nil
}
