package notification

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/dukahub/backend/internal/infrastructure/config"
)

// ErrEmailDeliveryFailed indicates the SMTP server rejected the message
var ErrEmailDeliveryFailed = errors.New("email delivery failed")

// sendMailFunc matches smtp.SendMail, injectable for tests
type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailNotifier sends order confirmations over SMTP
type EmailNotifier struct {
	cfg      config.EmailConfig
	sendMail sendMailFunc
}

// NewEmailNotifier creates a new email notifier
func NewEmailNotifier(cfg config.EmailConfig) *EmailNotifier {
	return &EmailNotifier{cfg: cfg, sendMail: smtp.SendMail}
}

// NotifyOrderCreated emails the customer an order confirmation
func (e *EmailNotifier) NotifyOrderCreated(_ context.Context, n OrderNotification) error {
	if n.CustomerEmail == "" {
		return nil
	}

	subject := fmt.Sprintf("Order confirmation from %s", n.StoreName)

	var body strings.Builder
	fmt.Fprintf(&body, "Hello %s,\r\n\r\nYour order has been received by %s.\r\n\r\n", n.CustomerName, n.StoreName)
	for _, line := range n.Receipt() {
		body.WriteString(line)
		body.WriteString("\r\n")
	}
	fmt.Fprintf(&body, "\r\nTotal: %s\r\nOrder reference: %s\r\n\r\nThank you for shopping with us.\r\n",
		n.TotalPrice.StringFixed(2), n.OrderID)

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", e.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", n.CustomerEmail)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body.String())

	addr := fmt.Sprintf("%s:%d", e.cfg.Host, e.cfg.Port)
	var auth smtp.Auth
	if e.cfg.Username != "" {
		auth = smtp.PlainAuth("", e.cfg.Username, e.cfg.Password, e.cfg.Host)
	}

	if err := e.sendMail(addr, auth, e.cfg.From, []string{n.CustomerEmail}, []byte(msg.String())); err != nil {
		return fmt.Errorf("%w: %v", ErrEmailDeliveryFailed, err)
	}
	return nil
}

// Ensure EmailNotifier implements Notifier
var _ Notifier = (*EmailNotifier)(nil)
