// Package listing filters and sorts product lists for the browse and
// search pages.
package listing

import (
	"strings"

	"github.com/raditya/storefront/internal/domain"
)

// Filter describes the simultaneous predicates of a listing query.
// Zero values mean "no constraint". All predicates combine with AND.
type Filter struct {
	Query      string
	MinPrice   int64
	MaxPrice   int64 // 0 = unbounded
	Categories []string
	Brands     []string
	MinRating  float64
}

// Apply returns the products matching every predicate, preserving
// input order. The cheap numeric checks run before the text match.
func Apply(products []domain.Product, f Filter) []domain.Product {
	categories := toSet(f.Categories)
	brands := toSet(f.Brands)
	query := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.Price < f.MinPrice {
			continue
		}
		if f.MaxPrice > 0 && p.Price > f.MaxPrice {
			continue
		}
		if p.Rating < f.MinRating {
			continue
		}
		if len(categories) > 0 && !categories[strings.ToLower(p.Category)] {
			continue
		}
		if len(brands) > 0 && !brands[strings.ToLower(p.Brand)] {
			continue
		}
		if query != "" && !matchesQuery(p, query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesQuery(p domain.Product, query string) bool {
	return strings.Contains(strings.ToLower(p.Title), query) ||
		strings.Contains(strings.ToLower(p.Category), query) ||
		strings.Contains(strings.ToLower(p.Brand), query)
}

func toSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[strings.ToLower(v)] = true
	}
	return set
}
