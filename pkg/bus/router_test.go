package bus

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravikoss/backforge/pkg/common"
)

func TestRouter_Post(t *testing.T) {
	r := NewRouter(nil, 10)

	require.NoError(t, r.Post(TickEvent, common.Tick{}))
	assert.EqualValues(t, 1, r.postCount.Load())
}

func TestRouter_PostCapacityReached(t *testing.T) {
	r := NewRouter(nil, 1)

	require.NoError(t, r.Post(TickEvent, common.Tick{}))
	require.Error(t, r.Post(TickEvent, common.Tick{}))
	assert.EqualValues(t, 1, r.postFails.Load())
}

func TestRouter_Exec(t *testing.T) {
	r := NewRouter(nil, 10)

	var tickHandled bool
	r.OnTick = func(ctx context.Context, tick common.Tick) {
		tickHandled = true
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errChan := r.Exec(ctx)

	require.NoError(t, r.Post(TickEvent, common.Tick{}))
	time.Sleep(10 * time.Millisecond)
	cancel()

	err := <-errChan
	assert.True(t, errors.Is(err, context.Canceled))
	assert.True(t, tickHandled)
	assert.EqualValues(t, 1, r.dispatchCount.Load())
}

func TestRouter_ExecLoop(t *testing.T) {
	r := NewRouter(nil, 10)

	var barHandled bool
	r.OnBar = func(ctx context.Context, bar common.Bar) {
		barHandled = true
	}

	require.NoError(t, r.Post(BarEvent, common.Bar{}))

	doOnceCount := 0
	doOnceCb := func() error {
		doOnceCount++
		if doOnceCount > 5 {
			return errors.New("done")
		}
		return nil
	}

	errChan := r.ExecLoop(context.Background(), doOnceCb)
	err := <-errChan

	assert.EqualError(t, err, "done")
	assert.True(t, barHandled)
	assert.Greater(t, doOnceCount, 5)
}

func TestRouter_AllEventKinds(t *testing.T) {
	r := NewRouter(nil, 20)

	handled := make(map[EventKind]bool)
	var mu sync.Mutex
	mark := func(k EventKind) {
		mu.Lock()
		defer mu.Unlock()
		handled[k] = true
	}

	r.OnTick = func(ctx context.Context, e common.Tick) { mark(TickEvent) }
	r.OnBar = func(ctx context.Context, e common.Bar) { mark(BarEvent) }
	r.OnOrderSubmitted = func(ctx context.Context, e common.OrderSubmitted) { mark(OrderSubmittedEvent) }
	r.OnOrderAccepted = func(ctx context.Context, e common.OrderAccepted) { mark(OrderAcceptedEvent) }
	r.OnOrderRejected = func(ctx context.Context, e common.OrderRejected) { mark(OrderRejectedEvent) }
	r.OnOrderWorking = func(ctx context.Context, e common.OrderWorking) { mark(OrderWorkingEvent) }
	r.OnOrderModified = func(ctx context.Context, e common.OrderModified) { mark(OrderModifiedEvent) }
	r.OnOrderCancelled = func(ctx context.Context, e common.OrderCancelled) { mark(OrderCancelledEvent) }
	r.OnOrderCancelReject = func(ctx context.Context, e common.OrderCancelReject) { mark(OrderCancelRejectEvent) }
	r.OnOrderExpired = func(ctx context.Context, e common.OrderExpired) { mark(OrderExpiredEvent) }
	r.OnOrderFilled = func(ctx context.Context, e common.OrderFilled) { mark(OrderFilledEvent) }
	r.OnAccountEvent = func(ctx context.Context, e common.AccountEvent) { mark(AccountEvent) }

	ctx, cancel := context.WithCancel(context.Background())
	errChan := r.Exec(ctx)

	require.NoError(t, r.Post(TickEvent, common.Tick{}))
	require.NoError(t, r.Post(BarEvent, common.Bar{}))
	require.NoError(t, r.Post(OrderSubmittedEvent, common.OrderSubmitted{}))
	require.NoError(t, r.Post(OrderAcceptedEvent, common.OrderAccepted{}))
	require.NoError(t, r.Post(OrderRejectedEvent, common.OrderRejected{}))
	require.NoError(t, r.Post(OrderWorkingEvent, common.OrderWorking{}))
	require.NoError(t, r.Post(OrderModifiedEvent, common.OrderModified{}))
	require.NoError(t, r.Post(OrderCancelledEvent, common.OrderCancelled{}))
	require.NoError(t, r.Post(OrderCancelRejectEvent, common.OrderCancelReject{}))
	require.NoError(t, r.Post(OrderExpiredEvent, common.OrderExpired{}))
	require.NoError(t, r.Post(OrderFilledEvent, common.OrderFilled{}))
	require.NoError(t, r.Post(AccountEvent, common.AccountEvent{}))

	time.Sleep(50 * time.Millisecond)
	cancel()
	<-errChan

	for _, k := range []EventKind{
		TickEvent, BarEvent, OrderSubmittedEvent, OrderAcceptedEvent, OrderRejectedEvent,
		OrderWorkingEvent, OrderModifiedEvent, OrderCancelledEvent, OrderCancelRejectEvent,
		OrderExpiredEvent, OrderFilledEvent, AccountEvent,
	} {
		assert.Truef(t, handled[k], "event %s not dispatched", k)
	}
	assert.EqualValues(t, 12, r.dispatchCount.Load())
}

func TestRouter_InvalidTypeAssertion(t *testing.T) {
	r := NewRouter(nil, 10)
	r.OnTick = func(ctx context.Context, tick common.Tick) {
		t.Error("handler should not be called")
	}

	ctx, cancel := context.WithCancel(context.Background())
	errChan := r.Exec(ctx)

	require.NoError(t, r.Post(TickEvent, "not a tick"))
	time.Sleep(10 * time.Millisecond)
	cancel()
	<-errChan

	assert.EqualValues(t, 1, r.dispatchFails.Load())
}

func TestRouter_NilHandlers(t *testing.T) {
	r := NewRouter(nil, 10)

	ctx, cancel := context.WithCancel(context.Background())
	errChan := r.Exec(ctx)

	require.NoError(t, r.Post(TickEvent, common.Tick{}))
	require.NoError(t, r.Post(BarEvent, common.Bar{}))

	time.Sleep(10 * time.Millisecond)
	cancel()
	<-errChan

	assert.EqualValues(t, 2, r.dispatchCount.Load())
	assert.EqualValues(t, 0, r.dispatchFails.Load())
}

func TestRouter_UnsupportedEventKind(t *testing.T) {
	r := NewRouter(nil, 10)

	ctx, cancel := context.WithCancel(context.Background())
	errChan := r.Exec(ctx)

	require.NoError(t, r.Post(EventKind(99), struct{}{}))
	time.Sleep(10 * time.Millisecond)
	cancel()
	<-errChan

	assert.EqualValues(t, 1, r.dispatchFails.Load())
}

func TestRouter_ConcurrentPost(t *testing.T) {
	r := NewRouter(nil, 1000)

	var wg sync.WaitGroup
	const goroutines, perGoroutine = 10, 100

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				assert.NoError(t, r.Post(TickEvent, common.Tick{}))
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, goroutines*perGoroutine, r.postCount.Load())
}

func TestRouter_ContextCancellation(t *testing.T) {
	r := NewRouter(nil, 10)

	ctx, cancel := context.WithCancel(context.Background())
	errChan := r.Exec(ctx)
	cancel()

	err := <-errChan
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRouter_Emit(t *testing.T) {
	r := NewRouter(nil, 10)

	var filled bool
	r.OnOrderFilled = func(ctx context.Context, e common.OrderFilled) { filled = true }

	ctx, cancel := context.WithCancel(context.Background())
	errChan := r.Exec(ctx)

	r.Emit(common.OrderFilled{OrderId: "1"})

	time.Sleep(10 * time.Millisecond)
	cancel()
	<-errChan

	assert.True(t, filled)
}
