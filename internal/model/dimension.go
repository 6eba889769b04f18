package model

type SellerProfile struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

type Item struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	SKU      string `json:"sku"`
	Category string `json:"category"`
}
