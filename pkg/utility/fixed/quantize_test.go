package fixed

import "testing"

func TestQuantize_RoundsHalfToEven(t *testing.T) {
	tests := []struct {
		name      string
		value     Point
		precision int
		want      string
	}{
		{"exact", FromFloat64(1.1000), 4, "1.1000"},
		{"round down half-even", FromInt64(112345, 5), 4, "1.1234"},
		{"round up half-even", FromInt64(112355, 5), 4, "1.1236"},
		{"zero precision", FromFloat64(1.5), 0, "2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Quantize(tt.value, tt.precision)
			if got.String() != tt.want {
				t.Errorf("Quantize(%s, %d) = %s; want %s", tt.value.String(), tt.precision, got.String(), tt.want)
			}
		})
	}
}

func TestQuantizeFloat64(t *testing.T) {
	got := QuantizeFloat64(1.10005, 4)
	if got.String() != "1.1000" && got.String() != "1.1001" {
		t.Errorf("QuantizeFloat64(1.10005, 4) = %s; want a value rounded to 4 digits", got.String())
	}
}
