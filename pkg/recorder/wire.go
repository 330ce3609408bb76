package recorder

import (
	"time"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/ravikoss/backforge/pkg/common"
	"github.com/ravikoss/backforge/pkg/utility/fixed"
)

// timeLayout is used for every timestamp field so a recorded trace is
// human-diffable with a text tool as well as byte-exact comparable.
const timeLayout = time.RFC3339Nano

func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendTime(b []byte, num protowire.Number, t time.Time) []byte {
	if t.IsZero() {
		return b
	}
	return appendString(b, num, t.Format(timeLayout))
}

func appendFixed(b []byte, num protowire.Number, p fixed.Point) []byte {
	if p.IsZero() {
		return b
	}
	return appendString(b, num, p.String())
}

// Identifier fields (event, order, broker and execution ids) are written
// with appendString like any other string field.

func encodeTick(e common.Tick) []byte {
	var b []byte
	b = appendString(b, 1, e.Source)
	b = appendString(b, 2, e.Symbol)
	b = appendTime(b, 3, e.TimeStamp)
	b = appendFixed(b, 4, e.Ask)
	b = appendFixed(b, 5, e.Bid)
	b = appendFixed(b, 6, e.AskVolume)
	b = appendFixed(b, 7, e.BidVolume)
	return b
}

func encodeBar(e common.Bar) []byte {
	var b []byte
	b = appendFixed(b, 1, e.Open)
	b = appendFixed(b, 2, e.High)
	b = appendFixed(b, 3, e.Low)
	b = appendFixed(b, 4, e.Close)
	return b
}

func encodeOrderSubmitted(e common.OrderSubmitted) []byte {
	var b []byte
	b = appendString(b, 1, string(e.EventId))
	b = appendTime(b, 2, e.EventTimestamp)
	b = appendString(b, 3, e.Symbol)
	b = appendString(b, 4, string(e.OrderId))
	b = appendTime(b, 5, e.SubmittedTime)
	return b
}

func encodeOrderAccepted(e common.OrderAccepted) []byte {
	var b []byte
	b = appendString(b, 1, string(e.EventId))
	b = appendTime(b, 2, e.EventTimestamp)
	b = appendString(b, 3, e.Symbol)
	b = appendString(b, 4, string(e.OrderId))
	b = appendTime(b, 5, e.AcceptedTime)
	return b
}

func encodeOrderRejected(e common.OrderRejected) []byte {
	var b []byte
	b = appendString(b, 1, string(e.EventId))
	b = appendTime(b, 2, e.EventTimestamp)
	b = appendString(b, 3, e.Symbol)
	b = appendString(b, 4, string(e.OrderId))
	b = appendTime(b, 5, e.RejectedTime)
	b = appendString(b, 6, e.Reason)
	return b
}

func encodeOrderWorking(e common.OrderWorking) []byte {
	var b []byte
	b = appendString(b, 1, string(e.EventId))
	b = appendTime(b, 2, e.EventTimestamp)
	b = appendString(b, 3, e.Symbol)
	b = appendString(b, 4, string(e.OrderId))
	b = appendString(b, 5, e.BrokerId)
	b = appendString(b, 6, e.Label)
	b = appendVarint(b, 7, uint64(e.Side))
	b = appendVarint(b, 8, uint64(e.Type))
	b = appendFixed(b, 9, e.Quantity)
	b = appendFixed(b, 10, e.Price)
	b = appendVarint(b, 11, uint64(e.TimeInForce))
	b = appendTime(b, 12, e.WorkingTime)
	b = appendTime(b, 13, e.ExpireTime)
	return b
}

func encodeOrderModified(e common.OrderModified) []byte {
	var b []byte
	b = appendString(b, 1, string(e.EventId))
	b = appendTime(b, 2, e.EventTimestamp)
	b = appendString(b, 3, e.Symbol)
	b = appendString(b, 4, string(e.OrderId))
	b = appendString(b, 5, e.BrokerId)
	b = appendFixed(b, 6, e.NewPrice)
	b = appendTime(b, 7, e.ModifiedTime)
	return b
}

func encodeOrderCancelled(e common.OrderCancelled) []byte {
	var b []byte
	b = appendString(b, 1, string(e.EventId))
	b = appendTime(b, 2, e.EventTimestamp)
	b = appendString(b, 3, e.Symbol)
	b = appendString(b, 4, string(e.OrderId))
	b = appendTime(b, 5, e.CancelledTime)
	return b
}

func encodeOrderCancelReject(e common.OrderCancelReject) []byte {
	var b []byte
	b = appendString(b, 1, string(e.EventId))
	b = appendTime(b, 2, e.EventTimestamp)
	b = appendString(b, 3, e.Symbol)
	b = appendString(b, 4, string(e.OrderId))
	b = appendTime(b, 5, e.RejectedTime)
	b = appendString(b, 6, e.ReasonCode)
	b = appendString(b, 7, e.ReasonText)
	return b
}

func encodeOrderExpired(e common.OrderExpired) []byte {
	var b []byte
	b = appendString(b, 1, string(e.EventId))
	b = appendTime(b, 2, e.EventTimestamp)
	b = appendString(b, 3, e.Symbol)
	b = appendString(b, 4, string(e.OrderId))
	b = appendTime(b, 5, e.ExpiredTime)
	return b
}

func encodeOrderFilled(e common.OrderFilled) []byte {
	var b []byte
	b = appendString(b, 1, string(e.EventId))
	b = appendTime(b, 2, e.EventTimestamp)
	b = appendString(b, 3, e.Symbol)
	b = appendString(b, 4, string(e.OrderId))
	b = appendString(b, 5, e.ExecutionId)
	b = appendString(b, 6, e.ExecutionTicket)
	b = appendVarint(b, 7, uint64(e.Side))
	b = appendFixed(b, 8, e.Quantity)
	b = appendFixed(b, 9, e.FillPrice)
	b = appendTime(b, 10, e.ExecutionTime)
	return b
}

func encodeAccountEvent(e common.AccountEvent) []byte {
	var b []byte
	b = appendString(b, 1, string(e.EventId))
	b = appendTime(b, 2, e.EventTimestamp)
	b = appendString(b, 3, e.AccountId)
	b = appendString(b, 4, e.Broker)
	b = appendString(b, 5, e.AccountNumber)
	b = appendString(b, 6, e.Currency)
	b = appendFixed(b, 7, e.CashBalance)
	b = appendFixed(b, 8, e.CashStartDay)
	b = appendFixed(b, 9, e.CashActivityDay)
	b = appendFixed(b, 10, e.MarginUsedLiquidation)
	b = appendFixed(b, 11, e.MarginUsedMaintenance)
	b = appendFixed(b, 12, e.MarginRatio)
	b = appendString(b, 13, e.MarginCallStatus)
	return b
}
