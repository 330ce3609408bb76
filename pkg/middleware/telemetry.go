package middleware

import (
	"context"

	"go.uber.org/zap"

	"github.com/ravikoss/backforge/pkg/bus"
	"github.com/ravikoss/backforge/pkg/common"
)

// Telemetry is decorator middleware that counts events by kind without
// altering the event stream. It is wired the same way Monitor is: wrap
// the router's OnXxx field, never replace it.
type Telemetry struct {
	logger *zap.Logger

	tickCounter               int64
	barCounter                int64
	orderSubmittedCounter     int64
	orderAcceptedCounter      int64
	orderRejectedCounter      int64
	orderWorkingCounter       int64
	orderModifiedCounter      int64
	orderCancelledCounter     int64
	orderCancelRejectCounter  int64
	orderExpiredCounter       int64
	orderFilledCounter        int64
	accountEventCounter       int64
}

func NewTelemetry(logger *zap.Logger) *Telemetry {
	return &Telemetry{logger: logger}
}

func (t *Telemetry) WithTick(handler bus.TickHandler) bus.TickHandler {
	return func(ctx context.Context, e common.Tick) {
		t.tickCounter++
		handler(ctx, e)
	}
}

func (t *Telemetry) WithBar(handler bus.BarHandler) bus.BarHandler {
	return func(ctx context.Context, e common.Bar) {
		t.barCounter++
		handler(ctx, e)
	}
}

func (t *Telemetry) WithOrderSubmitted(handler bus.OrderSubmittedHandler) bus.OrderSubmittedHandler {
	return func(ctx context.Context, e common.OrderSubmitted) {
		t.orderSubmittedCounter++
		handler(ctx, e)
	}
}

func (t *Telemetry) WithOrderAccepted(handler bus.OrderAcceptedHandler) bus.OrderAcceptedHandler {
	return func(ctx context.Context, e common.OrderAccepted) {
		t.orderAcceptedCounter++
		handler(ctx, e)
	}
}

func (t *Telemetry) WithOrderRejected(handler bus.OrderRejectedHandler) bus.OrderRejectedHandler {
	return func(ctx context.Context, e common.OrderRejected) {
		t.orderRejectedCounter++
		handler(ctx, e)
	}
}

func (t *Telemetry) WithOrderWorking(handler bus.OrderWorkingHandler) bus.OrderWorkingHandler {
	return func(ctx context.Context, e common.OrderWorking) {
		t.orderWorkingCounter++
		handler(ctx, e)
	}
}

func (t *Telemetry) WithOrderModified(handler bus.OrderModifiedHandler) bus.OrderModifiedHandler {
	return func(ctx context.Context, e common.OrderModified) {
		t.orderModifiedCounter++
		handler(ctx, e)
	}
}

func (t *Telemetry) WithOrderCancelled(handler bus.OrderCancelledHandler) bus.OrderCancelledHandler {
	return func(ctx context.Context, e common.OrderCancelled) {
		t.orderCancelledCounter++
		handler(ctx, e)
	}
}

func (t *Telemetry) WithOrderCancelReject(handler bus.OrderCancelRejectHandler) bus.OrderCancelRejectHandler {
	return func(ctx context.Context, e common.OrderCancelReject) {
		t.orderCancelRejectCounter++
		handler(ctx, e)
	}
}

func (t *Telemetry) WithOrderExpired(handler bus.OrderExpiredHandler) bus.OrderExpiredHandler {
	return func(ctx context.Context, e common.OrderExpired) {
		t.orderExpiredCounter++
		handler(ctx, e)
	}
}

func (t *Telemetry) WithOrderFilled(handler bus.OrderFilledHandler) bus.OrderFilledHandler {
	return func(ctx context.Context, e common.OrderFilled) {
		t.orderFilledCounter++
		handler(ctx, e)
	}
}

func (t *Telemetry) WithAccountEvent(handler bus.AccountEventHandler) bus.AccountEventHandler {
	return func(ctx context.Context, e common.AccountEvent) {
		t.accountEventCounter++
		handler(ctx, e)
	}
}

func (t *Telemetry) PrintStatistics() {
	t.logger.Info("event statistics",
		zap.Int64("tick_events", t.tickCounter),
		zap.Int64("bar_events", t.barCounter),
		zap.Int64("order_submitted_events", t.orderSubmittedCounter),
		zap.Int64("order_accepted_events", t.orderAcceptedCounter),
		zap.Int64("order_rejected_events", t.orderRejectedCounter),
		zap.Int64("order_working_events", t.orderWorkingCounter),
		zap.Int64("order_modified_events", t.orderModifiedCounter),
		zap.Int64("order_cancelled_events", t.orderCancelledCounter),
		zap.Int64("order_cancel_reject_events", t.orderCancelRejectCounter),
		zap.Int64("order_expired_events", t.orderExpiredCounter),
		zap.Int64("order_filled_events", t.orderFilledCounter),
		zap.Int64("account_events", t.accountEventCounter))
}
