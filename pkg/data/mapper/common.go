package mapper

import (
	"time"

	"github.com/ravikoss/backforge/pkg/common"
	"github.com/ravikoss/backforge/pkg/utility/fixed"
)

// BinaryTick is the fixed-width, memory-mappable on-disk representation
// of a single tick, read by Reader[BinaryTick] out of the memory-mapped
// file and converted into a common.Tick on demand.
type BinaryTick struct {
	TimeStamp int64
	Bid       float64
	Ask       float64
	BidVolume float64
	AskVolume float64
}

func (binaryTick BinaryTick) ToTick(tick *common.Tick) {
	tick.TimeStamp = time.Unix(0, binaryTick.TimeStamp)
	tick.Ask = fixed.FromFloat64(binaryTick.Ask)
	tick.Bid = fixed.FromFloat64(binaryTick.Bid)
	tick.AskVolume = fixed.FromFloat64(binaryTick.AskVolume)
	tick.BidVolume = fixed.FromFloat64(binaryTick.BidVolume)
}
