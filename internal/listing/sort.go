package listing

import (
	"sort"

	"github.com/raditya/storefront/internal/domain"
)

type SortKey string

const (
	SortPriceAsc      SortKey = "price_asc"
	SortPriceDesc     SortKey = "price_desc"
	SortRatingDesc    SortKey = "rating_desc"
	SortSoldDesc      SortKey = "sold_desc"
	SortRelevanceDesc SortKey = "relevance_desc"
	SortNewest        SortKey = "newest"
)

// Sort returns the products ordered by key. Sorting is stable: ties,
// unknown keys, and "newest" keep the input order, so re-filtering a
// rendered list never reshuffles equal rows.
func Sort(products []domain.Product, key SortKey) []domain.Product {
	out := make([]domain.Product, len(products))
	copy(out, products)

	var less func(a, b domain.Product) bool
	switch key {
	case SortPriceAsc:
		less = func(a, b domain.Product) bool { return a.Price < b.Price }
	case SortPriceDesc:
		less = func(a, b domain.Product) bool { return a.Price > b.Price }
	case SortRatingDesc:
		less = func(a, b domain.Product) bool { return a.Rating > b.Rating }
	case SortSoldDesc:
		less = func(a, b domain.Product) bool { return a.Sold > b.Sold }
	case SortRelevanceDesc:
		// Relevance approximated by sales weighted with rating; the
		// catalog supplies no per-query score.
		less = func(a, b domain.Product) bool { return relevance(a) > relevance(b) }
	default:
		// SortNewest and unknown keys: catalog order is newest-first
		// already, keep it.
		return out
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func relevance(p domain.Product) float64 {
	return float64(p.Sold) * p.Rating
}
