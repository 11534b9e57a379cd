package notification

import (
	"context"
	"errors"
)

// CompositeNotifier fans a notification out to every configured channel.
// All channels are attempted; their failures are joined into one error.
type CompositeNotifier struct {
	notifiers []Notifier
}

// NewCompositeNotifier creates a notifier that delivers through all the given channels
func NewCompositeNotifier(notifiers ...Notifier) *CompositeNotifier {
	return &CompositeNotifier{notifiers: notifiers}
}

// NotifyOrderCreated delivers the confirmation on every channel
func (c *CompositeNotifier) NotifyOrderCreated(ctx context.Context, n OrderNotification) error {
	var errs []error
	for _, notifier := range c.notifiers {
		if err := notifier.NotifyOrderCreated(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Ensure CompositeNotifier implements Notifier
var _ Notifier = (*CompositeNotifier)(nil)
