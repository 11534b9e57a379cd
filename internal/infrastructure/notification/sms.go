package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dukahub/backend/internal/infrastructure/config"
	"github.com/go-resty/resty/v2"
)

// ErrSMSDeliveryFailed indicates the SMS gateway rejected the message
var ErrSMSDeliveryFailed = errors.New("sms delivery failed")

// SMSNotifier sends order confirmations through an HTTP SMS gateway
type SMSNotifier struct {
	client *resty.Client
	sender string
}

type smsRequest struct {
	To      string `json:"to"`
	From    string `json:"from"`
	Message string `json:"message"`
}

// NewSMSNotifier creates a new SMS notifier
func NewSMSNotifier(cfg config.SMSConfig) *SMSNotifier {
	client := resty.New().
		SetBaseURL(cfg.Endpoint).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(cfg.APIKey)

	return &SMSNotifier{client: client, sender: cfg.Sender}
}

// NotifyOrderCreated texts the customer an order confirmation
func (s *SMSNotifier) NotifyOrderCreated(ctx context.Context, n OrderNotification) error {
	if n.CustomerPhone == "" {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s, your order has been received by %s.\n", n.CustomerName, n.StoreName)
	for _, line := range n.Receipt() {
		b.WriteString(line)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Total: %s. Thank you for shopping with us.", n.TotalPrice.StringFixed(2))
	message := b.String()

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(smsRequest{
			To:      n.CustomerPhone,
			From:    s.sender,
			Message: message,
		}).
		Post("/messages")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSMSDeliveryFailed, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: status %d", ErrSMSDeliveryFailed, resp.StatusCode())
	}

	return nil
}

// Ensure SMSNotifier implements Notifier
var _ Notifier = (*SMSNotifier)(nil)
