package bus

import (
	"context"

	"github.com/ravikoss/backforge/pkg/common"
)

type EventHandler[T any] = func(context.Context, T)

type TickHandler = EventHandler[common.Tick]
type BarHandler = EventHandler[common.Bar]
type OrderSubmittedHandler = EventHandler[common.OrderSubmitted]
type OrderAcceptedHandler = EventHandler[common.OrderAccepted]
type OrderRejectedHandler = EventHandler[common.OrderRejected]
type OrderWorkingHandler = EventHandler[common.OrderWorking]
type OrderModifiedHandler = EventHandler[common.OrderModified]
type OrderCancelledHandler = EventHandler[common.OrderCancelled]
type OrderCancelRejectHandler = EventHandler[common.OrderCancelReject]
type OrderExpiredHandler = EventHandler[common.OrderExpired]
type OrderFilledHandler = EventHandler[common.OrderFilled]
type AccountEventHandler = EventHandler[common.AccountEvent]

// MergeHandlers composes several handlers of the same event type into
// one, invoked in order. Used to attach middleware (monitor, telemetry)
// ahead of the strategy's own handler without the router knowing about
// either.
func MergeHandlers[T any](handlers ...EventHandler[T]) EventHandler[T] {
	return func(ctx context.Context, event T) {
		for _, h := range handlers {
			if h != nil {
				h(ctx, event)
			}
		}
	}
}
