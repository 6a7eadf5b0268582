// Package wishlist holds per-session saved products, independent of
// the cart.
package wishlist

import (
	"errors"
	"sync"
	"time"

	"github.com/raditya/storefront/internal/domain"
)

// ErrNotSaved marks an operation on a product the shopper never saved.
var ErrNotSaved = errors.New("product not in wishlist")

type Store struct {
	mu    sync.RWMutex
	lists map[string][]domain.WishlistItem // sessionID -> items, in add order
}

func NewStore() *Store {
	return &Store{
		lists: make(map[string][]domain.WishlistItem),
	}
}

// AddItem saves the product. Saving an already-saved product is a
// no-op; there is no quantity on a wishlist.
func (s *Store) AddItem(sessionID string, p domain.Product) domain.WishlistItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.lists[sessionID]
	for _, it := range items {
		if it.Product.ID == p.ID {
			return it
		}
	}

	item := domain.WishlistItem{
		Product:   p,
		AddedAt:   time.Now().UTC(),
		Available: p.Stock > 0,
	}
	s.lists[sessionID] = append(items, item)
	return item
}

// RemoveItem drops the saved product. No-op when absent.
func (s *Store) RemoveItem(sessionID, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.lists[sessionID]
	for i := range items {
		if items[i].Product.ID == productID {
			s.lists[sessionID] = append(items[:i], items[i+1:]...)
			return
		}
	}
}

// Clear empties the session's wishlist.
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.lists, sessionID)
}

// Items returns a copy of the saved items in add order.
func (s *Store) Items(sessionID string) []domain.WishlistItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := s.lists[sessionID]
	out := make([]domain.WishlistItem, len(items))
	copy(out, items)
	return out
}

// Get returns the saved item for productID, if present.
func (s *Store) Get(sessionID, productID string) (domain.WishlistItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, it := range s.lists[sessionID] {
		if it.Product.ID == productID {
			return it, true
		}
	}
	return domain.WishlistItem{}, false
}
