package common

import (
	"time"

	"github.com/ravikoss/backforge/pkg/utility/fixed"
)

// Tick is a single top-of-book quote, the finest-grained market data input
// the simulator accepts. Bars are the venue's fill surface; ticks pass
// through the event sink untouched for strategies that consume them
// directly.
type Tick struct {
	Ask       fixed.Point `json:"ask"`
	Bid       fixed.Point `json:"bid"`
	AskVolume fixed.Point `json:"ask_volume"`
	BidVolume fixed.Point `json:"bid_volume"`

	Source    string    `json:"src,omitempty"`
	Symbol    string    `json:"symbol,omitempty"`
	TimeStamp time.Time `json:"ts"`
}
