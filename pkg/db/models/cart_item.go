package models

import "github.com/shopspring/decimal"

// CartItem pairs a product snapshot with a positive quantity.
type CartItem struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Product   Product `json:"product"`
}

// LineTotal is price times quantity.
func (c CartItem) LineTotal() decimal.Decimal {
	return c.Product.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

// Banner is the single homepage hero configuration.
type Banner struct {
	Title    string `json:"title"`
	ImageURL string `json:"imageUrl"`
}
