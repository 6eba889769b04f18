package model

import "time"

type QuoteStatus string

const (
	QuotePending  QuoteStatus = "pending"
	QuoteAccepted QuoteStatus = "accepted"
	QuoteRejected QuoteStatus = "rejected"
	QuoteExpired  QuoteStatus = "expired"
)

// Quote carries its parent RFQ's buyer and creation time, joined on read.
type Quote struct {
	ID           string      `json:"id"`
	RFQID        string      `json:"rfq_id"`
	SellerID     string      `json:"seller_id"`
	Status       QuoteStatus `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
	RFQBuyerID   string      `json:"rfq_buyer_id"`
	RFQCreatedAt time.Time   `json:"rfq_created_at"`
}
