package common

import (
	"fmt"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/ravikoss/backforge/pkg/utility/fixed"
)

// PositionId is "<symbol>-<N>" where N is the running count of positions
// ever opened for that symbol. Ids are never reused.
type PositionId string

func NewPositionId(symbol string, seq int64) PositionId {
	return PositionId(fmt.Sprintf("%s-%d", symbol, seq))
}

// Position is the net directional exposure accumulated for one symbol by
// a sequence of fills. It is created lazily on the first fill for a
// symbol and mutated only by applying further fill events; it is
// append-only with respect to the fills it has seen.
type Position struct {
	Id        PositionId
	Symbol    string
	Quantity  fixed.Point // signed: positive is long, negative is short
	AvgPrice  fixed.Point
	IsExited  bool
	OpenTime  time.Time
	CloseTime time.Time
}

func NewPosition(id PositionId, symbol string, openTime time.Time) *Position {
	return &Position{Id: id, Symbol: symbol, OpenTime: openTime}
}

// Apply folds a fill into the position's net quantity and average entry
// price. A fill that reduces the magnitude of an existing exposure
// weights only the entry-price average of the remaining side; a fill
// that flips the sign resets the average price to the new fill's price
// for the resulting (opposite-sign) remainder.
func (p *Position) Apply(fill OrderFilled) {
	signedQty := fill.Quantity
	if fill.Side == OrderSideSell {
		signedQty = signedQty.Neg()
	}

	switch {
	case p.Quantity.IsZero():
		p.Quantity = signedQty
		p.AvgPrice = fill.FillPrice

	case sameSign(p.Quantity, signedQty):
		totalQty := p.Quantity.Add(signedQty)
		weightedExisting := p.AvgPrice.Mul(p.Quantity.Abs())
		weightedNew := fill.FillPrice.Mul(signedQty.Abs())
		p.AvgPrice = weightedExisting.Add(weightedNew).Div(totalQty.Abs())
		p.Quantity = totalQty

	default:
		remaining := p.Quantity.Add(signedQty)
		if remaining.IsZero() {
			p.Quantity = remaining
		} else if sameSign(remaining, p.Quantity) {
			// partial reduction: average price of the surviving side is unchanged
			p.Quantity = remaining
		} else {
			// flip: the fill overshoots the existing exposure and opens the
			// opposite side at the fill price
			p.Quantity = remaining
			p.AvgPrice = fill.FillPrice
		}
	}

	if p.Quantity.IsZero() {
		p.IsExited = true
		p.CloseTime = fill.ExecutionTime
	}
}

func sameSign(a, b fixed.Point) bool {
	return a.Sign() == b.Sign() || a.IsZero() || b.IsZero()
}

func (p *Position) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("id", string(p.Id))
	enc.AddString("symbol", p.Symbol)
	enc.AddString("quantity", p.Quantity.String())
	enc.AddString("avg_price", p.AvgPrice.String())
	enc.AddBool("is_exited", p.IsExited)
	return nil
}
