package middleware

import (
	"context"
	"log/slog"

	"github.com/ravikoss/backforge/pkg/bus"
	"github.com/ravikoss/backforge/pkg/common"
)

type MonitorFlags uint16

//goland:noinspection GoUnusedConst
const (
	MonitorNone MonitorFlags = 1 << iota
	MonitorAll
	MonitorTicks
	MonitorBars
	MonitorOrderSubmitted
	MonitorOrderAccepted
	MonitorOrderRejected
	MonitorOrderWorking
	MonitorOrderModified
	MonitorOrderCancelled
	MonitorOrderCancelReject
	MonitorOrderExpired
	MonitorOrderFilled
	MonitorAccount
)

// Monitor is decorator middleware: each With* method wraps a handler
// with a conditional slog line, then always calls through. It never
// swallows or short-circuits the wrapped handler.
type Monitor struct {
	flags MonitorFlags
}

func NewMonitor(flags MonitorFlags) *Monitor {
	return &Monitor{flags: flags}
}

func (m *Monitor) enabled(flag MonitorFlags) bool {
	return m.flags&flag != 0 || m.flags&MonitorAll != 0
}

func (m *Monitor) WithTick(handler bus.TickHandler) bus.TickHandler {
	return func(ctx context.Context, tick common.Tick) {
		if m.enabled(MonitorTicks) {
			slog.Info("event", "tick", tick)
		}
		handler(ctx, tick)
	}
}

func (m *Monitor) WithBar(handler bus.BarHandler) bus.BarHandler {
	return func(ctx context.Context, bar common.Bar) {
		if m.enabled(MonitorBars) {
			slog.Info("event", "bar", bar)
		}
		handler(ctx, bar)
	}
}

func (m *Monitor) WithOrderSubmitted(handler bus.OrderSubmittedHandler) bus.OrderSubmittedHandler {
	return func(ctx context.Context, e common.OrderSubmitted) {
		if m.enabled(MonitorOrderSubmitted) {
			slog.Info("event", "order_submitted", e)
		}
		handler(ctx, e)
	}
}

func (m *Monitor) WithOrderAccepted(handler bus.OrderAcceptedHandler) bus.OrderAcceptedHandler {
	return func(ctx context.Context, e common.OrderAccepted) {
		if m.enabled(MonitorOrderAccepted) {
			slog.Info("event", "order_accepted", e)
		}
		handler(ctx, e)
	}
}

func (m *Monitor) WithOrderRejected(handler bus.OrderRejectedHandler) bus.OrderRejectedHandler {
	return func(ctx context.Context, e common.OrderRejected) {
		if m.enabled(MonitorOrderRejected) {
			slog.Info("event", "order_rejected", e)
		}
		handler(ctx, e)
	}
}

func (m *Monitor) WithOrderWorking(handler bus.OrderWorkingHandler) bus.OrderWorkingHandler {
	return func(ctx context.Context, e common.OrderWorking) {
		if m.enabled(MonitorOrderWorking) {
			slog.Info("event", "order_working", e)
		}
		handler(ctx, e)
	}
}

func (m *Monitor) WithOrderModified(handler bus.OrderModifiedHandler) bus.OrderModifiedHandler {
	return func(ctx context.Context, e common.OrderModified) {
		if m.enabled(MonitorOrderModified) {
			slog.Info("event", "order_modified", e)
		}
		handler(ctx, e)
	}
}

func (m *Monitor) WithOrderCancelled(handler bus.OrderCancelledHandler) bus.OrderCancelledHandler {
	return func(ctx context.Context, e common.OrderCancelled) {
		if m.enabled(MonitorOrderCancelled) {
			slog.Info("event", "order_cancelled", e)
		}
		handler(ctx, e)
	}
}

func (m *Monitor) WithOrderCancelReject(handler bus.OrderCancelRejectHandler) bus.OrderCancelRejectHandler {
	return func(ctx context.Context, e common.OrderCancelReject) {
		if m.enabled(MonitorOrderCancelReject) {
			slog.Info("event", "order_cancel_reject", e)
		}
		handler(ctx, e)
	}
}

func (m *Monitor) WithOrderExpired(handler bus.OrderExpiredHandler) bus.OrderExpiredHandler {
	return func(ctx context.Context, e common.OrderExpired) {
		if m.enabled(MonitorOrderExpired) {
			slog.Info("event", "order_expired", e)
		}
		handler(ctx, e)
	}
}

func (m *Monitor) WithOrderFilled(handler bus.OrderFilledHandler) bus.OrderFilledHandler {
	return func(ctx context.Context, e common.OrderFilled) {
		if m.enabled(MonitorOrderFilled) {
			slog.Info("event", "order_filled", e)
		}
		handler(ctx, e)
	}
}

func (m *Monitor) WithAccountEvent(handler bus.AccountEventHandler) bus.AccountEventHandler {
	return func(ctx context.Context, e common.AccountEvent) {
		if m.enabled(MonitorAccount) {
			slog.Info("event", "account", e)
		}
		handler(ctx, e)
	}
}
