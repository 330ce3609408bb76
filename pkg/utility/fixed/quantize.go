package fixed

// Quantize rounds p to precision fractional digits using half-to-even
// (banker's) rounding and zero-pads it to exactly that many digits, as
// required when a raw floating-point OHLC value is converted into an
// instrument's tick-precision Price.
func Quantize(p Point, precision int) Point {
	return p.Round(precision).Rescale(precision)
}

// QuantizeFloat64 converts a raw float64 (as read from a bar/tick data
// source) directly into a Point rounded to precision fractional digits.
func QuantizeFloat64(v float64, precision int) Point {
	return Quantize(FromFloat64(v), precision)
}
