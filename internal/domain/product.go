package domain

import "time"

// Product is a read-only catalog record. Prices are integer Rupiah,
// no fractional subunits. OriginalPrice is 0 when the product has no
// pre-discount price; when set it is >= Price.
type Product struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Price           int64   `json:"price"`
	OriginalPrice   int64   `json:"original_price,omitempty"`
	DiscountPercent int     `json:"discount_percent,omitempty"`
	Rating          float64 `json:"rating"`
	Sold            int     `json:"sold"`
	Stock           int     `json:"stock"`
	IsFreeShipping  bool    `json:"is_free_shipping"`
	Category        string  `json:"category"`
	Brand           string  `json:"brand"`
	ImageURL        string  `json:"image_url,omitempty"`
}

// EffectiveOriginal returns the pre-discount unit price, falling back
// to the current price when none is set.
func (p Product) EffectiveOriginal() int64 {
	if p.OriginalPrice > 0 {
		return p.OriginalPrice
	}
	return p.Price
}

type WishlistItem struct {
	Product   Product   `json:"product"`
	AddedAt   time.Time `json:"added_at"`
	Available bool      `json:"available"`
}
