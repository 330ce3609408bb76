package common

import (
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/ravikoss/backforge/pkg/utility/fixed"
)

// Bar is a single open/high/low/close aggregate at the instrument's
// tick precision. A backtest run stores one dense Bar array per symbol
// per side (bid, ask), aligned to a shared datetime index.
type Bar struct {
	Open  fixed.Point `json:"open"`
	High  fixed.Point `json:"high"`
	Low   fixed.Point `json:"low"`
	Close fixed.Point `json:"close"`
}

func (b Bar) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("open", b.Open.String())
	enc.AddString("high", b.High.String())
	enc.AddString("low", b.Low.String())
	enc.AddString("close", b.Close.String())
	return nil
}

// BarFrame is a dense, indexed sequence of Bars for one symbol, keyed by
// a shared UTC datetime index. It is read-only once constructed.
type BarFrame struct {
	Index []time.Time
	Bars  []Bar
}

func NewBarFrame(index []time.Time, bars []Bar) BarFrame {
	if len(index) != len(bars) {
		panic("backforge: bar frame index/bars length mismatch")
	}
	return BarFrame{Index: index, Bars: bars}
}

func (f BarFrame) Len() int { return len(f.Index) }
