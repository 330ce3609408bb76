package common

import "fmt"

// PreconditionError signals a programming error by the caller: submitting
// an order id that is already working, cancelling or modifying an order
// that is not in the working set, or constructing a component with
// malformed parameters. These fail fast, before any event is emitted, and
// are never reported through the event sink.
type PreconditionError struct {
	Op     string
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("backforge: precondition violated in %s: %s", e.Op, e.Reason)
}

func NewPreconditionError(op, reason string) *PreconditionError {
	return &PreconditionError{Op: op, Reason: reason}
}

// InvalidTransition is returned by Order.Apply when an event kind is not
// legal for the order's current state.
type InvalidTransition struct {
	OrderId OrderId
	From    OrderState
	Event   string
}

func (e *InvalidTransition) Error() string {
	return fmt.Sprintf("backforge: order %s: event %s not legal from state %s", e.OrderId, e.Event, e.From)
}

// InvariantViolation is panicked, never returned, for internal invariant
// breaks that make the simulation unable to continue meaningfully: an
// out-of-range bar-array index, an unknown symbol, an unknown order type.
type InvariantViolation struct {
	Reason string
}

func (e InvariantViolation) Error() string {
	return "backforge: invariant violated: " + e.Reason
}

func PanicInvariant(reason string) {
	panic(InvariantViolation{Reason: reason})
}
