// Package checkout runs the guarded Address -> Shipping -> Payment
// wizard and turns a submitted session into an immutable order.
package checkout

import (
	"errors"
	"time"

	"github.com/raditya/storefront/internal/domain"
)

type Step string

const (
	StepAddress   Step = "address"
	StepShipping  Step = "shipping"
	StepPayment   Step = "payment"
	StepSubmitted Step = "submitted"
)

var (
	// ErrNoSelection: checkout cannot begin on an empty selection.
	ErrNoSelection = errors.New("no selected cart items")
	// ErrSessionNotFound: unknown or already-discarded checkout id.
	ErrSessionNotFound = errors.New("checkout session not found")
	// ErrStepIncomplete: the current step's guard rejected progression.
	ErrStepIncomplete = errors.New("current step is incomplete")
	// ErrAlreadySubmitted: the session reached its terminal step.
	ErrAlreadySubmitted = errors.New("checkout already submitted")
	// ErrSubmitInFlight: a submission for this session is in progress.
	ErrSubmitInFlight = errors.New("submission already in flight")
	// ErrSubmitRequired: the payment step only completes via Submit.
	ErrSubmitRequired = errors.New("payment step completes via submit")
	// ErrUnknownShippingMethod / ErrUnknownPaymentMethod: the chosen
	// method is not in the fixed enumerated set.
	ErrUnknownShippingMethod = errors.New("unknown shipping method")
	ErrUnknownPaymentMethod  = errors.New("unknown payment method")
)

// Session is one shopper's checkout flow: a snapshot of the selected
// cart lines plus the wizard state. It lives in memory only and is
// discarded on submission or cancellation.
type Session struct {
	ID             string                `json:"id"`
	ShopperID      string                `json:"shopper_id"`
	Items          []domain.CartLine     `json:"items"`
	Address        domain.Address        `json:"address"`
	ShippingMethod domain.ShippingMethod `json:"shipping_method,omitempty"`
	PaymentMethod  domain.PaymentMethod  `json:"payment_method,omitempty"`
	Step           Step                  `json:"step"`
	CreatedAt      time.Time             `json:"created_at"`

	submitting bool
}

// CanProceed re-derives the current step's guard. It is evaluated
// fresh on every call so field edits immediately unblock or re-block
// the next transition.
func (s *Session) CanProceed() bool {
	switch s.Step {
	case StepAddress:
		return s.Address.Complete()
	case StepShipping:
		return s.ShippingMethod != ""
	case StepPayment:
		return s.PaymentMethod != ""
	default:
		return false
	}
}

func (s *Session) advance() error {
	if s.Step == StepSubmitted {
		return ErrAlreadySubmitted
	}
	if !s.CanProceed() {
		return ErrStepIncomplete
	}
	switch s.Step {
	case StepAddress:
		s.Step = StepShipping
	case StepShipping:
		s.Step = StepPayment
	case StepPayment:
		return ErrSubmitRequired
	}
	return nil
}

// retreat is always allowed; no guard on backward transitions.
func (s *Session) retreat() {
	switch s.Step {
	case StepShipping:
		s.Step = StepAddress
	case StepPayment:
		s.Step = StepShipping
	}
}

func validShipping(m domain.ShippingMethod) bool {
	switch m {
	case domain.ShippingRegular, domain.ShippingExpress, domain.ShippingSameDay:
		return true
	}
	return false
}

func validPayment(m domain.PaymentMethod) bool {
	switch m {
	case domain.PaymentBankTransferBCA, domain.PaymentBankTransferMandiri,
		domain.PaymentEWalletGopay, domain.PaymentEWalletOVO, domain.PaymentCOD:
		return true
	}
	return false
}
