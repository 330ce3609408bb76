// Package bus is the in-process event dispatch mechanism connecting the
// execution simulator to strategy-side handlers. It is the concrete
// EventSink the simulator is constructed with.
package bus

type EventKind uint8

const (
	TickEvent EventKind = iota
	BarEvent
	OrderSubmittedEvent
	OrderAcceptedEvent
	OrderRejectedEvent
	OrderWorkingEvent
	OrderModifiedEvent
	OrderCancelledEvent
	OrderCancelRejectEvent
	OrderExpiredEvent
	OrderFilledEvent
	AccountEvent
)

func (k EventKind) String() string {
	switch k {
	case TickEvent:
		return "Tick"
	case BarEvent:
		return "Bar"
	case OrderSubmittedEvent:
		return "OrderSubmitted"
	case OrderAcceptedEvent:
		return "OrderAccepted"
	case OrderRejectedEvent:
		return "OrderRejected"
	case OrderWorkingEvent:
		return "OrderWorking"
	case OrderModifiedEvent:
		return "OrderModified"
	case OrderCancelledEvent:
		return "OrderCancelled"
	case OrderCancelRejectEvent:
		return "OrderCancelReject"
	case OrderExpiredEvent:
		return "OrderExpired"
	case OrderFilledEvent:
		return "OrderFilled"
	case AccountEvent:
		return "AccountEvent"
	default:
		return "Unknown"
	}
}
