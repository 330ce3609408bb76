package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravikoss/backforge/pkg/utility/fixed"
)

func TestOrder_LifecycleHappyPath(t *testing.T) {
	o := NewOrder("o1", "EURUSD", OrderSideBuy, OrderTypeMarket, fixed.FromInt(1, 0), fixed.Zero, TimeInForceGoodTillCancel)
	assert.Equal(t, OrderStateInitialised, o.State())

	require.NoError(t, o.Apply(OrderSubmitted{}))
	assert.Equal(t, OrderStateSubmitted, o.State())

	require.NoError(t, o.Apply(OrderAccepted{}))
	assert.Equal(t, OrderStateAccepted, o.State())

	require.NoError(t, o.Apply(OrderFilled{FillPrice: fixed.FromInt(11001, 4), Quantity: fixed.FromInt(1, 0)}))
	assert.Equal(t, OrderStateFilled, o.State())
	assert.True(t, o.IsComplete())
	assert.Equal(t, "1.1001", o.LastPrice().String())
}

func TestOrder_WorkingThenFilled(t *testing.T) {
	o := NewOrder("o1", "EURUSD", OrderSideBuy, OrderTypeStopMarket, fixed.FromInt(1, 0), fixed.FromInt(11010, 4), TimeInForceGoodTillCancel)
	require.NoError(t, o.Apply(OrderSubmitted{}))
	require.NoError(t, o.Apply(OrderAccepted{}))
	require.NoError(t, o.Apply(OrderWorking{BrokerId: "B1"}))
	assert.Equal(t, OrderStateWorking, o.State())
	assert.True(t, o.IsWorking())
	assert.Equal(t, "B1", o.BrokerId())

	require.NoError(t, o.Apply(OrderFilled{FillPrice: fixed.FromInt(11011, 4), Quantity: fixed.FromInt(1, 0)}))
	assert.Equal(t, OrderStateFilled, o.State())
}

func TestOrder_RejectRequiresAccepted(t *testing.T) {
	o := NewOrder("o1", "EURUSD", OrderSideBuy, OrderTypeStopMarket, fixed.FromInt(1, 0), fixed.FromInt(10990, 4), TimeInForceGoodTillCancel)
	err := o.Apply(OrderRejected{Reason: "too soon"})
	require.Error(t, err)
	assert.Equal(t, OrderStateInitialised, o.State())

	require.NoError(t, o.Apply(OrderSubmitted{}))
	require.NoError(t, o.Apply(OrderAccepted{}))
	require.NoError(t, o.Apply(OrderRejected{Reason: "stop price is below the ask 1.1000"}))
	assert.Equal(t, OrderStateRejected, o.State())
	assert.True(t, o.IsComplete())
}

func TestOrder_ModifyOnlyWhileWorking(t *testing.T) {
	o := NewOrder("o1", "EURUSD", OrderSideBuy, OrderTypeStopMarket, fixed.FromInt(1, 0), fixed.FromInt(11010, 4), TimeInForceGoodTillCancel)
	require.NoError(t, o.Apply(OrderSubmitted{}))
	require.NoError(t, o.Apply(OrderAccepted{}))

	err := o.Apply(OrderModified{NewPrice: fixed.FromInt(10990, 4)})
	require.Error(t, err)

	require.NoError(t, o.Apply(OrderWorking{}))
	require.NoError(t, o.Apply(OrderModified{NewPrice: fixed.FromInt(10990, 4)}))
	assert.Equal(t, OrderStateWorking, o.State())
	assert.Equal(t, "1.0990", o.Price.String())
}

func TestOrder_ExpireOnlyWhileWorking(t *testing.T) {
	o := NewOrder("o1", "EURUSD", OrderSideBuy, OrderTypeStopMarket, fixed.FromInt(1, 0), fixed.FromInt(11050, 4), TimeInForceGoodTillDate)
	o.ExpireTime = time.Date(2024, 1, 2, 9, 2, 0, 0, time.UTC)
	require.NoError(t, o.Apply(OrderSubmitted{}))
	require.NoError(t, o.Apply(OrderAccepted{}))
	require.NoError(t, o.Apply(OrderWorking{}))

	require.NoError(t, o.Apply(OrderExpired{}))
	assert.Equal(t, OrderStateExpired, o.State())
	assert.True(t, o.IsComplete())
}

func TestOrder_UnknownEventRejected(t *testing.T) {
	o := NewOrder("o1", "EURUSD", OrderSideBuy, OrderTypeMarket, fixed.FromInt(1, 0), fixed.Zero, TimeInForceGoodTillCancel)
	err := o.Apply(struct{}{})
	require.Error(t, err)
	var invalid *InvalidTransition
	require.ErrorAs(t, err, &invalid)
}

func TestOrderType_IsStopLike(t *testing.T) {
	assert.True(t, OrderTypeStopMarket.IsStopLike())
	assert.True(t, OrderTypeStopLimit.IsStopLike())
	assert.True(t, OrderTypeMarketIfTouched.IsStopLike())
	assert.False(t, OrderTypeLimit.IsStopLike())
	assert.False(t, OrderTypeMarket.IsStopLike())
}
