// Package pricing derives order totals from cart lines. It is pure:
// no state, recomputed from scratch on every call.
package pricing

import "github.com/raditya/storefront/internal/domain"

// Fixed rate tables. Unrecognized methods fall back to 0 rather than
// failing; the checkout guards keep unknown methods out anyway.
var shippingCosts = map[domain.ShippingMethod]int64{
	domain.ShippingRegular: 15000,
	domain.ShippingExpress: 25000,
	domain.ShippingSameDay: 0,
}

var adminFees = map[domain.PaymentMethod]int64{
	domain.PaymentBankTransferBCA:     0,
	domain.PaymentBankTransferMandiri: 0,
	domain.PaymentEWalletGopay:        2500,
	domain.PaymentEWalletOVO:          2500,
	domain.PaymentCOD:                 5000,
}

// ShippingCost returns the table price for the method, or 0 when every
// selected line ships free. The free-shipping override applies on both
// the cart summary and the checkout summary.
func ShippingCost(lines []domain.CartLine, method domain.ShippingMethod) int64 {
	if allFreeShipping(lines) {
		return 0
	}
	return shippingCosts[method]
}

// AdminFee returns the payment surcharge for the method.
func AdminFee(method domain.PaymentMethod) int64 {
	return adminFees[method]
}

// Compute derives the totals for the selected lines only. Deselected
// lines contribute nothing.
func Compute(lines []domain.CartLine, shipping domain.ShippingMethod, payment domain.PaymentMethod) domain.Totals {
	var subtotal, original int64
	selected := selectedOnly(lines)
	for _, l := range selected {
		qty := int64(l.Quantity)
		subtotal += l.Price * qty
		original += l.LineOriginal() * qty
	}

	shippingCost := ShippingCost(selected, shipping)
	fee := AdminFee(payment)

	return domain.Totals{
		Subtotal:         subtotal,
		OriginalSubtotal: original,
		Savings:          original - subtotal,
		ShippingCost:     shippingCost,
		AdminFee:         fee,
		Total:            subtotal + shippingCost + fee,
	}
}

func selectedOnly(lines []domain.CartLine) []domain.CartLine {
	out := make([]domain.CartLine, 0, len(lines))
	for _, l := range lines {
		if l.Selected {
			out = append(out, l)
		}
	}
	return out
}

func allFreeShipping(lines []domain.CartLine) bool {
	if len(lines) == 0 {
		return false
	}
	for _, l := range lines {
		if !l.IsFreeShipping {
			return false
		}
	}
	return true
}
