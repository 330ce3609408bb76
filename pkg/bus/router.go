package bus

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/ravikoss/backforge/pkg/common"
)

type event struct {
	kind EventKind
	data any
}

// Router is the queued, single-consumer event dispatcher the simulator
// is handed as its common.EventSink. Posting never blocks: a full queue
// is a post failure, counted and returned, never a stall.
type Router struct {
	logger *zap.Logger

	events chan event

	OnTick              TickHandler
	OnBar               BarHandler
	OnOrderSubmitted    OrderSubmittedHandler
	OnOrderAccepted     OrderAcceptedHandler
	OnOrderRejected     OrderRejectedHandler
	OnOrderWorking      OrderWorkingHandler
	OnOrderModified     OrderModifiedHandler
	OnOrderCancelled    OrderCancelledHandler
	OnOrderCancelReject OrderCancelRejectHandler
	OnOrderExpired      OrderExpiredHandler
	OnOrderFilled       OrderFilledHandler
	OnAccountEvent      AccountEventHandler

	runTime       time.Duration
	postCount     atomic.Uint64
	postFails     atomic.Uint64
	dispatchCount atomic.Uint64
	dispatchFails atomic.Uint64
}

func NewRouter(logger *zap.Logger, eventCapacity int) *Router {
	return &Router{
		logger: logger,
		events: make(chan event, eventCapacity),
	}
}

func (r *Router) Post(kind EventKind, data any) error {
	select {
	case r.events <- event{kind, data}:
		r.postCount.Add(1)
		return nil
	default:
		r.postFails.Add(1)
		return errors.New("bus: event capacity reached")
	}
}

// Emit implements common.EventSink: it dispatches the concrete event
// type reported by the simulator to the matching bus.EventKind. The
// simulator never imports bus itself; it depends only on the EventSink
// interface, and Router is one implementation of it.
func (r *Router) Emit(ev any) {
	kind, ok := kindOf(ev)
	if !ok {
		if r.logger != nil {
			r.logger.Warn("bus: emit of unrecognised event type", zap.Any("event", ev))
		}
		return
	}
	if err := r.Post(kind, ev); err != nil && r.logger != nil {
		r.logger.Warn("bus: post failed", zap.Error(err))
	}
}

// KindOf exposes the event-type-to-EventKind mapping used by Emit, so
// other EventSink implementations (e.g. pkg/recorder) can classify the
// same concrete event structs without duplicating the switch.
func KindOf(ev any) (EventKind, bool) {
	return kindOf(ev)
}

func kindOf(ev any) (EventKind, bool) {
	switch ev.(type) {
	case common.Tick:
		return TickEvent, true
	case common.Bar:
		return BarEvent, true
	case common.OrderSubmitted:
		return OrderSubmittedEvent, true
	case common.OrderAccepted:
		return OrderAcceptedEvent, true
	case common.OrderRejected:
		return OrderRejectedEvent, true
	case common.OrderWorking:
		return OrderWorkingEvent, true
	case common.OrderModified:
		return OrderModifiedEvent, true
	case common.OrderCancelled:
		return OrderCancelledEvent, true
	case common.OrderCancelReject:
		return OrderCancelRejectEvent, true
	case common.OrderExpired:
		return OrderExpiredEvent, true
	case common.OrderFilled:
		return OrderFilledEvent, true
	case common.AccountEvent:
		return AccountEvent, true
	default:
		return 0, false
	}
}

// Exec drains the event queue until ctx is cancelled, dispatching each
// event synchronously to its registered handler. The returned channel
// receives ctx.Err() exactly once, when Exec returns.
func (r *Router) Exec(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	go func() {
		start := time.Now()
		defer func() { r.runTime += time.Since(start) }()

		for {
			select {
			case <-ctx.Done():
				done <- ctx.Err()
				return
			case ev := <-r.events:
				r.dispatchCount.Add(1)
				if err := r.dispatch(ctx, ev); err != nil {
					r.dispatchFails.Add(1)
					if r.logger != nil {
						r.logger.Warn("bus: dispatch failed", zap.Error(err))
					}
				}
			}
		}
	}()
	return done
}

// ExecLoop interleaves event dispatch with a driver-supplied step
// function, invoked whenever the queue is momentarily empty. This is how
// the backtest driver advances the simulator's clock between bursts of
// strategy-issued commands. doOnceCb's error ends the loop.
func (r *Router) ExecLoop(ctx context.Context, doOnceCb func() error) <-chan error {
	done := make(chan error, 1)
	go func() {
		start := time.Now()
		defer func() { r.runTime += time.Since(start) }()

		for {
			select {
			case <-ctx.Done():
				done <- ctx.Err()
				return
			case ev := <-r.events:
				r.dispatchCount.Add(1)
				if err := r.dispatch(ctx, ev); err != nil {
					r.dispatchFails.Add(1)
					if r.logger != nil {
						r.logger.Warn("bus: dispatch failed", zap.Error(err))
					}
				}
			default:
				if err := doOnceCb(); err != nil {
					done <- err
					return
				}
			}
		}
	}()
	return done
}

func (r *Router) Statistics() Statistics {
	post := r.postCount.Load()
	throughput := float64(0)
	if r.runTime > 0 {
		throughput = float64(post) / r.runTime.Seconds()
	}
	return Statistics{
		RunTime:       r.runTime,
		PostCount:     post,
		PostFails:     r.postFails.Load(),
		DispatchCount: r.dispatchCount.Load(),
		DispatchFails: r.dispatchFails.Load(),
		Throughput:    throughput,
	}
}

func (r *Router) dispatch(ctx context.Context, ev event) error {
	switch ev.kind {
	case TickEvent:
		return callHandler(ctx, r.OnTick, ev, "tick")
	case BarEvent:
		return callHandler(ctx, r.OnBar, ev, "bar")
	case OrderSubmittedEvent:
		return callHandler(ctx, r.OnOrderSubmitted, ev, "order submitted")
	case OrderAcceptedEvent:
		return callHandler(ctx, r.OnOrderAccepted, ev, "order accepted")
	case OrderRejectedEvent:
		return callHandler(ctx, r.OnOrderRejected, ev, "order rejected")
	case OrderWorkingEvent:
		return callHandler(ctx, r.OnOrderWorking, ev, "order working")
	case OrderModifiedEvent:
		return callHandler(ctx, r.OnOrderModified, ev, "order modified")
	case OrderCancelledEvent:
		return callHandler(ctx, r.OnOrderCancelled, ev, "order cancelled")
	case OrderCancelRejectEvent:
		return callHandler(ctx, r.OnOrderCancelReject, ev, "order cancel reject")
	case OrderExpiredEvent:
		return callHandler(ctx, r.OnOrderExpired, ev, "order expired")
	case OrderFilledEvent:
		return callHandler(ctx, r.OnOrderFilled, ev, "order filled")
	case AccountEvent:
		return callHandler(ctx, r.OnAccountEvent, ev, "account")
	default:
		return fmt.Errorf("bus: unsupported event kind: %v", ev.kind)
	}
}

// callHandler is generic glue between the switch in dispatch (which only
// knows the wire EventKind) and the strongly typed EventHandler[T]
// fields on Router.
func callHandler[T any](ctx context.Context, h EventHandler[T], ev event, label string) error {
	typed, ok := ev.data.(T)
	if !ok {
		return fmt.Errorf("bus: invalid type assertion for %s event", label)
	}
	if h != nil {
		h(ctx, typed)
	}
	return nil
}
