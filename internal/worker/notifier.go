// Package worker turns order-placed events into customer
// notifications.
package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/raditya/storefront/internal/domain"
	"github.com/raditya/storefront/internal/money"
)

type Notifier struct {
	emailServiceURL string
	httpClient      *http.Client
	logger          *slog.Logger
}

func NewNotifier(emailServiceURL string, client *http.Client, logger *slog.Logger) *Notifier {
	return &Notifier{
		emailServiceURL: emailServiceURL,
		httpClient:      client,
		logger:          logger,
	}
}

// Handle processes one order.placed payload: decode, send the
// confirmation email. A failed send returns an error so the message
// is redelivered instead of silently dropped.
func (n *Notifier) Handle(ctx context.Context, payload []byte) error {
	var event domain.OrderPlacedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("unmarshal order placed event: %w", err)
	}

	n.logger.Info("processing order placed event", "order_id", event.OrderID, "session_id", event.SessionID)

	if event.CustomerEmail == "" {
		// Email is optional on the shipping address; nothing to send.
		n.logger.Info("order has no customer email, skipping notification", "order_id", event.OrderID)
		return nil
	}

	if err := n.sendConfirmation(ctx, event); err != nil {
		n.logger.Error("failed to send confirmation email", "error", err, "order_id", event.OrderID)
		return fmt.Errorf("send confirmation email: %w", err)
	}

	n.logger.Info("order confirmation sent", "order_id", event.OrderID, "to", event.CustomerEmail)
	return nil
}

func (n *Notifier) sendConfirmation(ctx context.Context, event domain.OrderPlacedEvent) error {
	body := map[string]string{
		"to":      event.CustomerEmail,
		"subject": "Order Confirmation: " + event.OrderID,
		"body": fmt.Sprintf("Your order %s with %d item(s) has been placed. Total: %s.",
			event.OrderID, len(event.Items), money.Format(event.Total)),
	}

	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal email request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.emailServiceURL+"/send", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	_ = resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("email service returned status %d", resp.StatusCode)
	}

	return nil
}
