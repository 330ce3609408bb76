package common

import (
	"time"

	"github.com/ravikoss/backforge/pkg/utility/fixed"
)

// EventId is the emitted, globally unique identifier of an event
// instance, produced by the injected id factory. It is unrelated to
// OrderId and to bus.EventKind: this is the record's own primary key,
// not a routing tag.
type EventId string

// OrderSubmitted marks the strategy's submit_order call reaching the
// simulator, before any admission check has run.
type OrderSubmitted struct {
	EventId        EventId   `json:"event_id"`
	EventTimestamp time.Time `json:"event_timestamp"`
	Symbol         string    `json:"symbol"`
	OrderId        OrderId   `json:"order_id"`
	SubmittedTime  time.Time `json:"submitted_time"`
}

// OrderAccepted marks registration into the simulator's book, prior to
// the admission-price evaluation that decides fill/reject/working.
type OrderAccepted struct {
	EventId        EventId   `json:"event_id"`
	EventTimestamp time.Time `json:"event_timestamp"`
	Symbol         string    `json:"symbol"`
	OrderId        OrderId   `json:"order_id"`
	AcceptedTime   time.Time `json:"accepted_time"`
}

// OrderRejected reports a domain rejection: the order failed the
// admission-price check against the closing bar. Never an out-of-band
// error.
type OrderRejected struct {
	EventId        EventId   `json:"event_id"`
	EventTimestamp time.Time `json:"event_timestamp"`
	Symbol         string    `json:"symbol"`
	OrderId        OrderId   `json:"order_id"`
	RejectedTime   time.Time `json:"rejected_time"`
	Reason         string    `json:"reason"`
}

// OrderWorking marks the order resting in the simulator's working-order
// map, eligible for fill or expiry on subsequent iterations.
type OrderWorking struct {
	EventId        EventId       `json:"event_id"`
	EventTimestamp time.Time     `json:"event_timestamp"`
	Symbol         string        `json:"symbol"`
	OrderId        OrderId       `json:"order_id"`
	BrokerId       string        `json:"broker_id"`
	Label          string        `json:"label"`
	Side           OrderSide     `json:"side"`
	Type           OrderType     `json:"type"`
	Quantity       fixed.Point   `json:"quantity"`
	Price          fixed.Point   `json:"price"`
	TimeInForce    TimeInForce   `json:"time_in_force"`
	WorkingTime    time.Time     `json:"working_time"`
	ExpireTime     time.Time     `json:"expire_time"`
}

// OrderModified reports a successful modify_order price change on a
// working order; the order remains Working thereafter.
type OrderModified struct {
	EventId        EventId     `json:"event_id"`
	EventTimestamp time.Time   `json:"event_timestamp"`
	Symbol         string      `json:"symbol"`
	OrderId        OrderId     `json:"order_id"`
	BrokerId       string      `json:"broker_id"`
	NewPrice       fixed.Point `json:"new_price"`
	ModifiedTime   time.Time   `json:"modified_time"`
}

// OrderCancelled reports a strategy-initiated cancel_order taking effect.
type OrderCancelled struct {
	EventId        EventId   `json:"event_id"`
	EventTimestamp time.Time `json:"event_timestamp"`
	Symbol         string    `json:"symbol"`
	OrderId        OrderId   `json:"order_id"`
	CancelledTime  time.Time `json:"cancelled_time"`
}

// OrderCancelReject reports a failed modify_order: the new price fails
// the admission check. The reason code is bit-exact "INVALID PRICE".
type OrderCancelReject struct {
	EventId        EventId   `json:"event_id"`
	EventTimestamp time.Time `json:"event_timestamp"`
	Symbol         string    `json:"symbol"`
	OrderId        OrderId   `json:"order_id"`
	RejectedTime   time.Time `json:"rejected_time"`
	ReasonCode     string    `json:"reason_code"`
	ReasonText     string    `json:"reason_text"`
}

// OrderExpired reports a working order removed because the simulated
// clock reached its expire_time without a fill.
type OrderExpired struct {
	EventId        EventId   `json:"event_id"`
	EventTimestamp time.Time `json:"event_timestamp"`
	Symbol         string    `json:"symbol"`
	OrderId        OrderId   `json:"order_id"`
	ExpiredTime    time.Time `json:"expired_time"`
}

// OrderFilled reports a working order (or a market order at submission)
// crossing the synthetic market. ExecutionId and ExecutionTicket are
// synthesized deterministically from the order id ("E"+id, "ET"+id).
type OrderFilled struct {
	EventId          EventId     `json:"event_id"`
	EventTimestamp   time.Time   `json:"event_timestamp"`
	Symbol           string      `json:"symbol"`
	OrderId          OrderId     `json:"order_id"`
	ExecutionId      string      `json:"execution_id"`
	ExecutionTicket  string      `json:"execution_ticket"`
	Side             OrderSide   `json:"side"`
	Quantity         fixed.Point `json:"quantity"`
	FillPrice        fixed.Point `json:"fill_price"`
	ExecutionTime    time.Time   `json:"execution_time"`
}

// AccountEvent is a full snapshot of the Account's overwritable fields,
// emitted on day rollover, on every fill, and on collateral_inquiry.
type AccountEvent struct {
	EventId               EventId     `json:"event_id"`
	EventTimestamp        time.Time   `json:"event_timestamp"`
	AccountId             string      `json:"account_id"`
	Broker                string      `json:"broker"`
	AccountNumber         string      `json:"account_number"`
	Currency              string      `json:"currency"`
	CashBalance           fixed.Point `json:"cash_balance"`
	CashStartDay          fixed.Point `json:"cash_start_day"`
	CashActivityDay       fixed.Point `json:"cash_activity_day"`
	MarginUsedLiquidation fixed.Point `json:"margin_used_liquidation"`
	MarginUsedMaintenance fixed.Point `json:"margin_used_maintenance"`
	MarginRatio           fixed.Point `json:"margin_ratio"`
	MarginCallStatus      string      `json:"margin_call_status"`
}
