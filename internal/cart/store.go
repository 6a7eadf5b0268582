// Package cart holds the in-memory shopping carts, one per shopper
// session. All mutation goes through Store methods; callers only ever
// see copies of the line items.
package cart

import (
	"sync"
	"time"

	"github.com/raditya/storefront/internal/domain"
)

type Store struct {
	mu    sync.RWMutex
	carts map[string][]domain.CartLine // sessionID -> lines, in add order
}

func NewStore() *Store {
	return &Store{
		carts: make(map[string][]domain.CartLine),
	}
}

// AddItem merges the product into the session's cart. An existing
// line gains qty; a new line is appended selected. The resulting
// quantity is always clamped to [1, stock], never rejected.
func (s *Store) AddItem(sessionID string, p domain.Product, qty int) domain.CartLine {
	if qty < 1 {
		qty = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[sessionID]
	for i := range lines {
		if lines[i].ProductID == p.ID {
			lines[i].Quantity = domain.ClampQuantity(lines[i].Quantity+qty, lines[i].Stock)
			return lines[i]
		}
	}

	line := domain.CartLine{
		ProductID:      p.ID,
		Title:          p.Title,
		Price:          p.Price,
		OriginalPrice:  p.OriginalPrice,
		ImageURL:       p.ImageURL,
		Stock:          p.Stock,
		IsFreeShipping: p.IsFreeShipping,
		Quantity:       domain.ClampQuantity(qty, p.Stock),
		Selected:       true,
		AddedAt:        time.Now().UTC(),
	}
	s.carts[sessionID] = append(lines, line)
	return line
}

// SetQuantity sets the line's quantity, clamped to [1, stock].
// No-op when the product is not in the cart.
func (s *Store) SetQuantity(sessionID, productID string, qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[sessionID]
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity = domain.ClampQuantity(qty, lines[i].Stock)
			return
		}
	}
}

// RemoveItem drops the line for productID. No-op when absent.
func (s *Store) RemoveItem(sessionID, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[sessionID]
	for i := range lines {
		if lines[i].ProductID == productID {
			s.carts[sessionID] = append(lines[:i], lines[i+1:]...)
			return
		}
	}
}

// ToggleSelection flips the line's selected flag. No-op when absent.
func (s *Store) ToggleSelection(sessionID, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[sessionID]
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Selected = !lines[i].Selected
			return
		}
	}
}

// SelectAll sets every line's selected flag to selected.
func (s *Store) SelectAll(sessionID string, selected bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[sessionID]
	for i := range lines {
		lines[i].Selected = selected
	}
}

// Clear empties the session's cart.
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}

// RemoveItems drops the lines for the given product ids. Used when an
// order completes: only the purchased lines leave the cart, anything
// else (including deselected lines) survives.
func (s *Store) RemoveItems(sessionID string, productIDs []string) {
	ids := make(map[string]bool, len(productIDs))
	for _, id := range productIDs {
		ids[id] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[sessionID]
	kept := lines[:0]
	for _, l := range lines {
		if !ids[l.ProductID] {
			kept = append(kept, l)
		}
	}
	if len(kept) == 0 {
		delete(s.carts, sessionID)
		return
	}
	s.carts[sessionID] = kept
}

// Items returns a copy of the session's cart lines in add order.
func (s *Store) Items(sessionID string) []domain.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lines := s.carts[sessionID]
	out := make([]domain.CartLine, len(lines))
	copy(out, lines)
	return out
}

// Selected returns a copy of the lines that participate in checkout.
func (s *Store) Selected(sessionID string) []domain.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.CartLine
	for _, l := range s.carts[sessionID] {
		if l.Selected {
			out = append(out, l)
		}
	}
	return out
}
