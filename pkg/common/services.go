package common

import (
	"fmt"
	"time"
)

// Clock is the simulator's only source of "now". In a backtest it never
// reads the wall clock: SetTime is called exclusively by the bar cursor
// and by iterate.
type Clock interface {
	Now() time.Time
	SetTime(t time.Time)
}

// SimClock is a deterministic, advanceable clock: the only Clock
// implementation the simulator ever needs, since backtests never read
// real wall-clock time.
type SimClock struct {
	t time.Time
}

func NewSimClock(start time.Time) *SimClock {
	return &SimClock{t: start}
}

func (c *SimClock) Now() time.Time     { return c.t }
func (c *SimClock) SetTime(t time.Time) { c.t = t }

// IdFactory generates fresh identifiers for events and orders. A factory
// seeded identically across two runs must produce an identical sequence,
// which is what makes the event stream byte-reproducible.
type IdFactory interface {
	NextEventId() EventId
	NextOrderId() OrderId
}

// SequentialIdFactory produces "<seed>-<n>" identifiers, with n counting
// up from 1 separately for events and for orders. It is the id factory
// backtests use: deterministic and trivially reproducible across runs
// given the same seed.
type SequentialIdFactory struct {
	seed      int64
	eventSeq  int64
	orderSeq  int64
}

func NewSequentialIdFactory(seed int64) *SequentialIdFactory {
	return &SequentialIdFactory{seed: seed}
}

func (f *SequentialIdFactory) NextEventId() EventId {
	f.eventSeq++
	return EventId(fmt.Sprintf("%d-%d", f.seed, f.eventSeq))
}

func (f *SequentialIdFactory) NextOrderId() OrderId {
	f.orderSeq++
	return OrderId(fmt.Sprintf("%d-%d", f.seed, f.orderSeq))
}

// EventSink receives every event the simulator emits, in emission order.
// The simulator never inspects the sink's behaviour.
type EventSink interface {
	Emit(event any)
}
