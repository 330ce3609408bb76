package common

import (
	"strings"

	"go.uber.org/zap"

	"github.com/ravikoss/backforge/pkg/utility/fixed"
)

// Instrument is immutable per-symbol metadata: the tradable unit's tick
// size and the number of fractional digits every Price for that symbol
// must carry. Constructed once and looked up by symbol; never mutated.
type Instrument struct {
	Symbol        string
	TickSize      fixed.Point
	TickPrecision int
	ContractSize  fixed.Point
	QuoteCurrency string
}

func (i Instrument) Fields() []zap.Field {
	return []zap.Field{
		zap.String("symbol", i.Symbol),
		zap.String("tick_size", i.TickSize.String()),
		zap.Int("tick_precision", i.TickPrecision),
		zap.String("contract_size", i.ContractSize.String()),
		zap.String("quote_currency", i.QuoteCurrency),
	}
}

// Quantize rounds a raw price to this instrument's tick precision using
// half-to-even (banker's) rounding.
func (i Instrument) Quantize(p fixed.Point) fixed.Point {
	return fixed.Quantize(p, i.TickPrecision)
}

// Catalogue is an immutable, keyed container of Instruments, constructed
// once and handed to the simulator by value. It replaces the
// global-mutable, symbol-keyed lookup style of the source system.
type Catalogue struct {
	bySymbol map[string]Instrument
}

// NewCatalogue builds a Catalogue from a list of Instruments. Symbol
// lookups are case-insensitive; the catalogue is immutable thereafter.
func NewCatalogue(instruments ...Instrument) Catalogue {
	c := Catalogue{bySymbol: make(map[string]Instrument, len(instruments))}
	for _, in := range instruments {
		c.bySymbol[strings.ToUpper(in.Symbol)] = in
	}
	return c
}

func (c Catalogue) Lookup(symbol string) (Instrument, bool) {
	in, ok := c.bySymbol[strings.ToUpper(symbol)]
	return in, ok
}

func (c Catalogue) MustLookup(symbol string) Instrument {
	in, ok := c.Lookup(symbol)
	if !ok {
		PanicInvariant("unknown symbol " + symbol)
	}
	return in
}
