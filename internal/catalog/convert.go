package catalog

import "github.com/raditya/storefront/internal/domain"

// rawProduct is the catalog service's wire schema. Field names differ
// from the internal shape and several fields are optional.
type rawProduct struct {
	SKU          string  `json:"sku"`
	Name         string  `json:"name"`
	PriceIDR     int64   `json:"price_idr"`
	ListPriceIDR int64   `json:"list_price_idr,omitempty"`
	Rating       float64 `json:"rating,omitempty"`
	SoldCount    int     `json:"sold_count,omitempty"`
	StockQty     int     `json:"stock_qty,omitempty"`
	FreeShipping bool    `json:"free_shipping,omitempty"`
	Category     string  `json:"category,omitempty"`
	Brand        string  `json:"brand,omitempty"`
	Image        string  `json:"image,omitempty"`
}

// Convert normalizes a catalog record: renames fields, clamps the
// rating into [0, 5], drops a list price below the current price, and
// derives the discount percent when the catalog omits it.
func Convert(raw rawProduct) domain.Product {
	p := domain.Product{
		ID:             raw.SKU,
		Title:          raw.Name,
		Price:          raw.PriceIDR,
		Rating:         raw.Rating,
		Sold:           raw.SoldCount,
		Stock:          raw.StockQty,
		IsFreeShipping: raw.FreeShipping,
		Category:       raw.Category,
		Brand:          raw.Brand,
		ImageURL:       raw.Image,
	}

	if p.Price < 0 {
		p.Price = 0
	}
	if raw.ListPriceIDR >= p.Price {
		p.OriginalPrice = raw.ListPriceIDR
	}
	if p.OriginalPrice > 0 && p.OriginalPrice > p.Price {
		p.DiscountPercent = int((p.OriginalPrice - p.Price) * 100 / p.OriginalPrice)
	}
	if p.Rating < 0 {
		p.Rating = 0
	}
	if p.Rating > 5 {
		p.Rating = 5
	}
	if p.Stock < 0 {
		p.Stock = 0
	}

	return p
}
