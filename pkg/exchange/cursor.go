package exchange

import (
	"time"

	"github.com/ravikoss/backforge/pkg/common"
	"github.com/ravikoss/backforge/pkg/utility/fixed"
)

// BarCursor is a random-access view into precomputed per-symbol bid/ask
// OHLC arrays, aligned to a single shared datetime index. It owns no
// clock of its own: SetInitialIteration winds an injected common.Clock
// forward as a side effect of positioning the iteration pointer.
type BarCursor struct {
	index []time.Time
	bid   map[string]common.BarFrame
	ask   map[string]common.BarFrame

	clock     common.Clock
	iteration int
}

func NewBarCursor(index []time.Time, bid, ask map[string]common.BarFrame, clock common.Clock) *BarCursor {
	return &BarCursor{index: index, bid: bid, ask: ask, clock: clock}
}

func (c *BarCursor) Iteration() int { return c.iteration }

// SetInitialIteration advances an internal wall clock from index[0] in
// increments of step, incrementing iteration each time the wall clock
// reaches the next index entry, until the wall clock reaches toTime. The
// injected clock is then set to the resulting wall-clock value. If
// toTime precedes index[0], zero steps are taken.
func (c *BarCursor) SetInitialIteration(toTime time.Time, step time.Duration) {
	if len(c.index) == 0 {
		return
	}
	if toTime.Before(c.index[0]) {
		c.iteration = 0
		c.clock.SetTime(c.index[0])
		return
	}

	wall := c.index[0]
	for wall.Before(toTime) {
		wall = wall.Add(step)
		if next := c.iteration + 1; next < len(c.index) && !wall.Before(c.index[next]) {
			c.iteration = next
		}
	}
	c.clock.SetTime(wall)
}

// Advance moves the cursor to the next bar. Called once per iterate().
func (c *BarCursor) Advance() {
	if c.iteration+1 < len(c.index) {
		c.iteration++
	}
}

func (c *BarCursor) bidBar(symbol string) common.Bar { return c.bar(c.bid, symbol) }
func (c *BarCursor) askBar(symbol string) common.Bar { return c.bar(c.ask, symbol) }

func (c *BarCursor) bar(frames map[string]common.BarFrame, symbol string) common.Bar {
	frame, ok := frames[symbol]
	if !ok {
		common.PanicInvariant("bar cursor: unknown symbol " + symbol)
	}
	if c.iteration < 0 || c.iteration >= frame.Len() {
		common.PanicInvariant("bar cursor: iteration out of range for symbol " + symbol)
	}
	return frame.Bars[c.iteration]
}

func (c *BarCursor) HighestBid(symbol string) fixed.Point { return c.bidBar(symbol).High }
func (c *BarCursor) LowestBid(symbol string) fixed.Point  { return c.bidBar(symbol).Low }
func (c *BarCursor) ClosingBid(symbol string) fixed.Point { return c.bidBar(symbol).Close }

func (c *BarCursor) HighestAsk(symbol string) fixed.Point { return c.askBar(symbol).High }
func (c *BarCursor) LowestAsk(symbol string) fixed.Point  { return c.askBar(symbol).Low }
func (c *BarCursor) ClosingAsk(symbol string) fixed.Point { return c.askBar(symbol).Close }
