package checkout

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/raditya/storefront/internal/cart"
	"github.com/raditya/storefront/internal/domain"
	"github.com/raditya/storefront/internal/pricing"
)

// Publisher emits the order-placed event. The Kafka producer in
// internal/messaging satisfies it; a nil Publisher disables eventing.
type Publisher interface {
	Publish(ctx context.Context, key string, event any) error
}

// Manager owns the active checkout sessions. One session per checkout
// id; sessions are never persisted.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	carts     *cart.Store
	publisher Publisher
	logger    *slog.Logger
}

func NewManager(carts *cart.Store, publisher Publisher, logger *slog.Logger) *Manager {
	return &Manager{
		sessions:  make(map[string]*Session),
		carts:     carts,
		publisher: publisher,
		logger:    logger,
	}
}

// Begin snapshots the shopper's currently selected cart lines into a
// new session at the address step. Fails with ErrNoSelection when
// nothing is selected.
func (m *Manager) Begin(shopperID string) (Session, error) {
	selected := m.carts.Selected(shopperID)
	if len(selected) == 0 {
		return Session{}, ErrNoSelection
	}

	s := &Session{
		ID:        uuid.New().String(),
		ShopperID: shopperID,
		Items:     selected,
		Step:      StepAddress,
		CreatedAt: time.Now().UTC(),
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	return *s, nil
}

// Get returns a copy of the session.
func (m *Manager) Get(id string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return *s, nil
}

// SetAddress updates the shipping address. Allowed at any step before
// submission; the address guard re-evaluates on the next read.
func (m *Manager) SetAddress(id string, addr domain.Address) (Session, error) {
	return m.update(id, func(s *Session) error {
		s.Address = addr
		return nil
	})
}

// SetShippingMethod picks one of the fixed shipping methods.
func (m *Manager) SetShippingMethod(id string, method domain.ShippingMethod) (Session, error) {
	return m.update(id, func(s *Session) error {
		if !validShipping(method) {
			return ErrUnknownShippingMethod
		}
		s.ShippingMethod = method
		return nil
	})
}

// SetPaymentMethod picks one of the fixed payment methods.
func (m *Manager) SetPaymentMethod(id string, method domain.PaymentMethod) (Session, error) {
	return m.update(id, func(s *Session) error {
		if !validPayment(method) {
			return ErrUnknownPaymentMethod
		}
		s.PaymentMethod = method
		return nil
	})
}

// Next advances one step when the current step's guard passes.
func (m *Manager) Next(id string) (Session, error) {
	return m.update(id, func(s *Session) error {
		return s.advance()
	})
}

// Back retreats one step, always allowed.
func (m *Manager) Back(id string) (Session, error) {
	return m.update(id, func(s *Session) error {
		s.retreat()
		return nil
	})
}

// Totals recomputes the price breakdown for the session's snapshot
// with its currently chosen methods. Derived fresh on every call.
func (m *Manager) Totals(id string) (domain.Totals, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return domain.Totals{}, ErrSessionNotFound
	}
	return pricing.Compute(s.Items, s.ShippingMethod, s.PaymentMethod), nil
}

// Cancel discards the session; the cart is untouched. Navigating away
// from checkout maps to this.
func (m *Manager) Cancel(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Submit performs the terminal transition: it builds the immutable
// order, publishes the order-placed event, removes the purchased
// lines from the cart (deselected lines survive) and discards the
// session. A second Submit while one is in flight fails with
// ErrSubmitInFlight; a submitted session is gone, so retrying after
// success fails with ErrSessionNotFound.
func (m *Manager) Submit(ctx context.Context, id string) (domain.Order, error) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if !ok {
		m.mu.Unlock()
		return domain.Order{}, ErrSessionNotFound
	}
	if s.submitting {
		m.mu.Unlock()
		return domain.Order{}, ErrSubmitInFlight
	}
	if s.Step != StepPayment || !s.CanProceed() {
		m.mu.Unlock()
		return domain.Order{}, ErrStepIncomplete
	}
	s.submitting = true
	order := domain.Order{
		ID:             uuid.New().String(),
		Items:          s.Items,
		Totals:         pricing.Compute(s.Items, s.ShippingMethod, s.PaymentMethod),
		Address:        s.Address,
		ShippingMethod: s.ShippingMethod,
		PaymentMethod:  s.PaymentMethod,
		CreatedAt:      time.Now().UTC(),
	}
	m.mu.Unlock()

	// The publish is the only suspension point; ctx cancellation here
	// aborts the submission before anything is mutated.
	if m.publisher != nil {
		event := domain.OrderPlacedEvent{
			OrderID:       order.ID,
			SessionID:     s.ShopperID,
			Items:         order.Items,
			Total:         order.Totals.Total,
			PaymentMethod: order.PaymentMethod,
			CustomerEmail: order.Address.Email,
			Timestamp:     order.CreatedAt,
		}
		if err := m.publisher.Publish(ctx, order.ID, event); err != nil {
			if ctx.Err() != nil {
				m.mu.Lock()
				s.submitting = false
				m.mu.Unlock()
				return domain.Order{}, ctx.Err()
			}
			// Event delivery is best effort; the order still stands.
			m.logger.Error("failed to publish order placed event", "error", err, "order_id", order.ID)
		}
	}

	m.mu.Lock()
	s.Step = StepSubmitted
	delete(m.sessions, id)
	m.mu.Unlock()

	purchased := make([]string, len(order.Items))
	for i, l := range order.Items {
		purchased[i] = l.ProductID
	}
	m.carts.RemoveItems(s.ShopperID, purchased)

	m.logger.Info("order placed", "order_id", order.ID, "shopper_id", s.ShopperID, "total", order.Totals.Total)
	return order, nil
}

func (m *Manager) update(id string, fn func(*Session) error) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	if s.submitting {
		return Session{}, ErrSubmitInFlight
	}
	if err := fn(s); err != nil {
		return Session{}, err
	}
	return *s, nil
}
