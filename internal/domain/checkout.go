package domain

import "time"

// Address holds the shipping destination. Name, Phone, Line, City and
// Province are required before checkout can leave the address step;
// the rest are optional.
type Address struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Line       string `json:"line"`
	City       string `json:"city"`
	Province   string `json:"province"`
	Email      string `json:"email,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// Complete reports whether every required field is non-empty.
func (a Address) Complete() bool {
	return a.Name != "" && a.Phone != "" && a.Line != "" && a.City != "" && a.Province != ""
}

type ShippingMethod string

const (
	ShippingRegular ShippingMethod = "regular"
	ShippingExpress ShippingMethod = "express"
	ShippingSameDay ShippingMethod = "same_day"
)

type PaymentMethod string

const (
	PaymentBankTransferBCA     PaymentMethod = "bank_transfer_bca"
	PaymentBankTransferMandiri PaymentMethod = "bank_transfer_mandiri"
	PaymentEWalletGopay        PaymentMethod = "ewallet_gopay"
	PaymentEWalletOVO          PaymentMethod = "ewallet_ovo"
	PaymentCOD                 PaymentMethod = "cod"
)

// Totals is the derived price breakdown for a set of selected lines.
// Total == Subtotal + ShippingCost + AdminFee always holds.
type Totals struct {
	Subtotal         int64 `json:"subtotal"`
	OriginalSubtotal int64 `json:"original_subtotal"`
	Savings          int64 `json:"savings"`
	ShippingCost     int64 `json:"shipping_cost"`
	AdminFee         int64 `json:"admin_fee"`
	Total            int64 `json:"total"`
}

// Order is the terminal artifact of a checkout. Created once,
// immutable thereafter.
type Order struct {
	ID             string         `json:"id"`
	Items          []CartLine     `json:"items"`
	Totals         Totals         `json:"totals"`
	Address        Address        `json:"address"`
	ShippingMethod ShippingMethod `json:"shipping_method"`
	PaymentMethod  PaymentMethod  `json:"payment_method"`
	CreatedAt      time.Time      `json:"created_at"`
}
