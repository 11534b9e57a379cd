// Package notification delivers order confirmations to customers over
// SMS and email. Delivery failures are reported to the caller but must
// never abort the business operation that triggered them.
package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderLine is one receipt line of the confirmation
type OrderLine struct {
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// OrderNotification carries everything needed to confirm an order to a customer
type OrderNotification struct {
	OrderID       uuid.UUID
	StoreName     string
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	TotalPrice    decimal.Decimal
	Items         []OrderLine
}

// Receipt renders one "qty x name @ unit = total" line per item
func (n OrderNotification) Receipt() []string {
	lines := make([]string, 0, len(n.Items))
	for _, item := range n.Items {
		lines = append(lines, fmt.Sprintf("%d x %s @ %s = %s",
			item.Quantity, item.Name, item.UnitPrice.StringFixed(2), item.LineTotal.StringFixed(2)))
	}
	return lines
}

// Notifier sends order confirmations
type Notifier interface {
	NotifyOrderCreated(ctx context.Context, n OrderNotification) error
}

// NoopNotifier discards notifications. Used when no channel is configured.
type NoopNotifier struct{}

// NotifyOrderCreated does nothing
func (NoopNotifier) NotifyOrderCreated(context.Context, OrderNotification) error {
	return nil
}

// Ensure NoopNotifier implements Notifier
var _ Notifier = NoopNotifier{}
