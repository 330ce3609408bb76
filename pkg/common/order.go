package common

import (
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/ravikoss/backforge/pkg/utility/fixed"
)

type OrderId string

type OrderSide int

const (
	OrderSideBuy OrderSide = iota
	OrderSideSell
)

func (s OrderSide) String() string {
	if s == OrderSideSell {
		return "SELL"
	}
	return "BUY"
}

type OrderType int

const (
	OrderTypeMarket OrderType = iota
	OrderTypeLimit
	OrderTypeStopMarket
	OrderTypeStopLimit
	OrderTypeMarketIfTouched
)

func (t OrderType) String() string {
	switch t {
	case OrderTypeMarket:
		return "MARKET"
	case OrderTypeLimit:
		return "LIMIT"
	case OrderTypeStopMarket:
		return "STOP_MARKET"
	case OrderTypeStopLimit:
		return "STOP_LIMIT"
	case OrderTypeMarketIfTouched:
		return "MIT"
	default:
		return "UNKNOWN"
	}
}

// IsStopLike reports whether the order's admission and fill semantics are
// the stop family (STOP_MARKET, STOP_LIMIT, MIT): all three fill on a
// touch of order.price rather than a crossing of it.
func (t OrderType) IsStopLike() bool {
	switch t {
	case OrderTypeStopMarket, OrderTypeStopLimit, OrderTypeMarketIfTouched:
		return true
	default:
		return false
	}
}

type TimeInForce int

const (
	TimeInForceGoodTillCancel TimeInForce = iota
	TimeInForceImmediateOrCancel
	TimeInForceFillOrKill
	TimeInForceGoodTillDate
)

// OrderState is the order's lifecycle state, driven exclusively by events
// applied in arrival order via Apply.
type OrderState int

const (
	OrderStateInitialised OrderState = iota
	OrderStateSubmitted
	OrderStateAccepted
	OrderStateRejected
	OrderStateWorking
	OrderStateFilled
	OrderStateCancelled
	OrderStateExpired
)

func (s OrderState) String() string {
	switch s {
	case OrderStateInitialised:
		return "INITIALISED"
	case OrderStateSubmitted:
		return "SUBMITTED"
	case OrderStateAccepted:
		return "ACCEPTED"
	case OrderStateRejected:
		return "REJECTED"
	case OrderStateWorking:
		return "WORKING"
	case OrderStateFilled:
		return "FILLED"
	case OrderStateCancelled:
		return "CANCELLED"
	case OrderStateExpired:
		return "EXPIRED"
	default:
		return "UNKNOWN"
	}
}

// Order is the strategy's handle on a single resting or terminal order.
// The simulator never writes its fields directly; it applies events which
// the order interprets against its own state machine.
type Order struct {
	Id          OrderId
	Symbol      string
	Side        OrderSide
	Type        OrderType
	Quantity    fixed.Point
	Price       fixed.Point
	TimeInForce TimeInForce
	ExpireTime  time.Time
	Label       string
	StrategyId  string

	state    OrderState
	brokerId string
	lastPrice fixed.Point
	filledQty fixed.Point
}

func NewOrder(id OrderId, symbol string, side OrderSide, typ OrderType, quantity, price fixed.Point, tif TimeInForce) *Order {
	return &Order{
		Id:          id,
		Symbol:      symbol,
		Side:        side,
		Type:        typ,
		Quantity:    quantity,
		Price:       price,
		TimeInForce: tif,
		state:       OrderStateInitialised,
	}
}

func (o *Order) State() OrderState      { return o.state }
func (o *Order) BrokerId() string       { return o.brokerId }
func (o *Order) LastPrice() fixed.Point { return o.lastPrice }
func (o *Order) FilledQuantity() fixed.Point { return o.filledQty }

func (o *Order) IsWorking() bool { return o.state == OrderStateWorking }

func (o *Order) IsComplete() bool {
	switch o.state {
	case OrderStateRejected, OrderStateFilled, OrderStateCancelled, OrderStateExpired:
		return true
	default:
		return false
	}
}

// Apply validates and performs a state transition driven by an emitted
// event. It is the only legitimate way to mutate an Order.
func (o *Order) Apply(event any) error {
	switch e := event.(type) {
	case OrderSubmitted:
		if o.state != OrderStateInitialised {
			return &InvalidTransition{OrderId: o.Id, From: o.state, Event: "OrderSubmitted"}
		}
		o.state = OrderStateSubmitted
		return nil

	case OrderAccepted:
		if o.state != OrderStateSubmitted {
			return &InvalidTransition{OrderId: o.Id, From: o.state, Event: "OrderAccepted"}
		}
		o.state = OrderStateAccepted
		return nil

	case OrderRejected:
		if o.state != OrderStateAccepted {
			return &InvalidTransition{OrderId: o.Id, From: o.state, Event: "OrderRejected"}
		}
		o.state = OrderStateRejected
		return nil

	case OrderWorking:
		if o.state != OrderStateAccepted {
			return &InvalidTransition{OrderId: o.Id, From: o.state, Event: "OrderWorking"}
		}
		o.state = OrderStateWorking
		o.brokerId = e.BrokerId
		return nil

	case OrderModified:
		if o.state != OrderStateWorking {
			return &InvalidTransition{OrderId: o.Id, From: o.state, Event: "OrderModified"}
		}
		o.Price = e.NewPrice
		o.state = OrderStateWorking
		return nil

	case OrderCancelled:
		if o.state != OrderStateWorking {
			return &InvalidTransition{OrderId: o.Id, From: o.state, Event: "OrderCancelled"}
		}
		o.state = OrderStateCancelled
		return nil

	case OrderExpired:
		if o.state != OrderStateWorking {
			return &InvalidTransition{OrderId: o.Id, From: o.state, Event: "OrderExpired"}
		}
		o.state = OrderStateExpired
		return nil

	case OrderFilled:
		if o.state != OrderStateWorking && o.state != OrderStateAccepted {
			return &InvalidTransition{OrderId: o.Id, From: o.state, Event: "OrderFilled"}
		}
		o.state = OrderStateFilled
		o.lastPrice = e.FillPrice
		o.filledQty = o.filledQty.Add(e.Quantity)
		return nil

	default:
		return &InvalidTransition{OrderId: o.Id, From: o.state, Event: "unknown"}
	}
}

func (o *Order) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("id", string(o.Id))
	enc.AddString("symbol", o.Symbol)
	enc.AddString("side", o.Side.String())
	enc.AddString("type", o.Type.String())
	enc.AddString("quantity", o.Quantity.String())
	enc.AddString("price", o.Price.String())
	enc.AddString("state", o.state.String())
	return nil
}
