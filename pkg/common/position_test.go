package common

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ravikoss/backforge/pkg/utility/fixed"
)

func fill(side OrderSide, qty, price string, ts time.Time) OrderFilled {
	return OrderFilled{
		Side:          side,
		Quantity:      mustParseTest(qty),
		FillPrice:     mustParseTest(price),
		ExecutionTime: ts,
	}
}

// mustParseTest builds an exact fixed.Point from a decimal literal for
// test fixtures, mirroring pkg/exchange's own test helper.
func mustParseTest(s string) fixed.Point {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	whole, frac, hasFrac := strings.Cut(s, ".")
	scale := len(frac)
	wholeVal, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		panic(err)
	}
	var fracVal int64
	if hasFrac {
		fracVal, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			panic(err)
		}
	}
	mag := int64(1)
	for i := 0; i < scale; i++ {
		mag *= 10
	}
	value := wholeVal*mag + fracVal
	if neg {
		value = -value
	}
	return fixed.FromInt64(value, scale)
}

var t0 = time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)

func TestPosition_OpensOnFirstFill(t *testing.T) {
	p := NewPosition("EURUSD-1", "EURUSD", t0)
	p.Apply(fill(OrderSideBuy, "100000", "1.1001", t0))

	assert.Equal(t, "100000", p.Quantity.String())
	assert.Equal(t, "1.1001", p.AvgPrice.String())
	assert.False(t, p.IsExited)
}

func TestPosition_AddsToSameSideWeightsAveragePrice(t *testing.T) {
	p := NewPosition("EURUSD-1", "EURUSD", t0)
	p.Apply(fill(OrderSideBuy, "100000", "1.1000", t0))
	p.Apply(fill(OrderSideBuy, "100000", "1.1010", t0.Add(time.Minute)))

	assert.Equal(t, "200000", p.Quantity.String())
	assert.Equal(t, "1.1005", p.AvgPrice.String())
}

func TestPosition_PartialReductionKeepsAveragePrice(t *testing.T) {
	p := NewPosition("EURUSD-1", "EURUSD", t0)
	p.Apply(fill(OrderSideBuy, "100000", "1.1000", t0))
	p.Apply(fill(OrderSideSell, "40000", "1.1050", t0.Add(time.Minute)))

	assert.Equal(t, "60000", p.Quantity.String())
	assert.Equal(t, "1.1000", p.AvgPrice.String())
	assert.False(t, p.IsExited)
}

func TestPosition_FullReductionCloses(t *testing.T) {
	p := NewPosition("EURUSD-1", "EURUSD", t0)
	p.Apply(fill(OrderSideBuy, "100000", "1.1000", t0))
	closeTime := t0.Add(time.Minute)
	p.Apply(fill(OrderSideSell, "100000", "1.1050", closeTime))

	assert.True(t, p.Quantity.IsZero())
	assert.True(t, p.IsExited)
	assert.Equal(t, closeTime, p.CloseTime)
}

func TestPosition_OvershootFlipsSide(t *testing.T) {
	p := NewPosition("EURUSD-1", "EURUSD", t0)
	p.Apply(fill(OrderSideBuy, "100000", "1.1000", t0))
	p.Apply(fill(OrderSideSell, "150000", "1.1050", t0.Add(time.Minute)))

	assert.Equal(t, "-50000", p.Quantity.String())
	assert.Equal(t, "1.1050", p.AvgPrice.String())
	assert.False(t, p.IsExited)
}
