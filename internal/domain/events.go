package domain

import "time"

type OrderPlacedEvent struct {
	OrderID       string        `json:"order_id"`
	SessionID     string        `json:"session_id"`
	Items         []CartLine    `json:"items"`
	Total         int64         `json:"total"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	CustomerEmail string        `json:"customer_email,omitempty"`
	Timestamp     time.Time     `json:"timestamp"`
}
