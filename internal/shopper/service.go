// Package shopper coordinates the cart and wishlist stores for
// operations spanning both.
package shopper

import (
	"sync"

	"github.com/raditya/storefront/internal/cart"
	"github.com/raditya/storefront/internal/domain"
	"github.com/raditya/storefront/internal/wishlist"
)

// Service owns the session's two stores. MoveToCart runs under one
// lock so the add and the remove land together; a reader never sees
// the product in both places or in neither.
type Service struct {
	mu       sync.Mutex
	Cart     *cart.Store
	Wishlist *wishlist.Store
}

func NewService(carts *cart.Store, wishlists *wishlist.Store) *Service {
	return &Service{
		Cart:     carts,
		Wishlist: wishlists,
	}
}

// MoveToCart adds the saved product to the cart and removes it from
// the wishlist as a single operation.
func (s *Service) MoveToCart(sessionID, productID string) (domain.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.Wishlist.Get(sessionID, productID)
	if !ok {
		return domain.CartLine{}, wishlist.ErrNotSaved
	}

	line := s.Cart.AddItem(sessionID, item.Product, 1)
	s.Wishlist.RemoveItem(sessionID, productID)
	return line, nil
}
