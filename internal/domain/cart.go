package domain

import "time"

// CartLine is one (product, quantity, selection) entry in a shopper's
// cart. Product fields are denormalized at add time so later catalog
// changes don't rewrite an existing cart.
type CartLine struct {
	ProductID      string    `json:"product_id"`
	Title          string    `json:"title"`
	Price          int64     `json:"price"`
	OriginalPrice  int64     `json:"original_price,omitempty"`
	ImageURL       string    `json:"image_url,omitempty"`
	Stock          int       `json:"stock"`
	IsFreeShipping bool      `json:"is_free_shipping"`
	Quantity       int       `json:"quantity"`
	Selected       bool      `json:"selected"`
	AddedAt        time.Time `json:"added_at"`
}

// LineOriginal returns the pre-discount unit price for the line.
func (l CartLine) LineOriginal() int64 {
	if l.OriginalPrice > 0 {
		return l.OriginalPrice
	}
	return l.Price
}

// ClampQuantity bounds qty to [1, stock]. A line never reaches
// quantity 0, so stock below 1 is treated as 1.
func ClampQuantity(qty, stock int) int {
	if stock < 1 {
		stock = 1
	}
	if qty < 1 {
		return 1
	}
	if qty > stock {
		return stock
	}
	return qty
}
