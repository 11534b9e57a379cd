package telemetry

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// BusinessMetrics tracks order and notification activity per store.
type BusinessMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	orderCreatedTotal *Counter
	orderAmountTotal  *Counter
	orderItemsTotal   *Counter
	notifySentTotal   *Counter
	notifyFailedTotal *Counter
}

// NewBusinessMetrics creates a new BusinessMetrics instance.
func NewBusinessMetrics(meter metric.Meter, logger *zap.Logger) (*BusinessMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	bm := &BusinessMetrics{meter: meter, logger: logger}

	var err error
	if bm.orderCreatedTotal, err = NewCounter(meter,
		"orders_created_total", "Total number of orders created", "{order}"); err != nil {
		return nil, err
	}
	if bm.orderAmountTotal, err = NewCounter(meter,
		"orders_amount_total", "Total order value in minor currency units", "{cent}"); err != nil {
		return nil, err
	}
	if bm.orderItemsTotal, err = NewCounter(meter,
		"order_items_total", "Total number of order items sold", "{item}"); err != nil {
		return nil, err
	}
	if bm.notifySentTotal, err = NewCounter(meter,
		"notifications_sent_total", "Order notifications delivered", "{notification}"); err != nil {
		return nil, err
	}
	if bm.notifyFailedTotal, err = NewCounter(meter,
		"notifications_failed_total", "Order notifications that failed to deliver", "{notification}"); err != nil {
		return nil, err
	}

	return bm, nil
}

// RecordOrderCreated records a successfully created order.
func (bm *BusinessMetrics) RecordOrderCreated(ctx context.Context, storeID uuid.UUID, total decimal.Decimal, itemCount int) {
	attrs := AttrStoreID.String(storeID.String())
	bm.orderCreatedTotal.Inc(ctx, attrs)
	bm.orderAmountTotal.Add(ctx, total.Mul(decimal.NewFromInt(100)).IntPart(), attrs)
	bm.orderItemsTotal.Add(ctx, int64(itemCount), attrs)
}

// RecordNotification records a notification delivery attempt.
func (bm *BusinessMetrics) RecordNotification(ctx context.Context, storeID uuid.UUID, succeeded bool) {
	attrs := AttrStoreID.String(storeID.String())
	if succeeded {
		bm.notifySentTotal.Inc(ctx, attrs)
		return
	}
	bm.notifyFailedTotal.Inc(ctx, attrs)
}
