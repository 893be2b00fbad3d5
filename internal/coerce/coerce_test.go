package coerce

import (
	"encoding/json"
	"math"
	"testing"
)

func TestToUint64(t *testing.T) {
	tests := []struct {
		input  any
		name   string
		want   uint64
		wantOK bool
	}{
		{uint64(math.MaxUint64), "uint64 max", math.MaxUint64, true},
		{uint8(7), "uint8", 7, true},
		{int(5), "int", 5, true},
		{int(-1), "int negative", 0, false},
		{int8(-1), "int8 negative", 0, false},
		{float64(42), "float64 integral", 42, true},
		{float64(3.5), "float64 fractional", 0, false},
		{float64(-1), "float64 negative", 0, false},
		{float64(1 << 64), "float64 2^64", 0, false},
		{float32(100), "float32", 100, true},
		{json.Number("18446744073709551615"), "json max", math.MaxUint64, true},
		{json.Number("1e3"), "json exponent", 1000, true},
		{json.Number("-3"), "json negative", 0, false},
		{"12", "string", 0, false},
		{nil, "nil", 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ToUint64(tc.input)
			if ok != tc.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tc.wantOK)
			}
			if ok && got != tc.want {
				t.Errorf("got %d, want %d", got, tc.want)
			}
		})
	}
}

func TestToInt64(t *testing.T) {
	tests := []struct {
		input  any
		name   string
		want   int64
		wantOK bool
	}{
		{int64(math.MinInt64), "int64 min", math.MinInt64, true},
		{int8(-5), "int8", -5, true},
		{uint32(math.MaxUint32), "uint32 max", math.MaxUint32, true},
		{uint64(math.MaxInt64), "uint64 in range", math.MaxInt64, true},
		{uint64(math.MaxInt64 + 1), "uint64 too large", 0, false},
		{float64(-2), "float64", -2, true},
		{float64(1 << 63), "float64 2^63", 0, false},
		{float64(-(1 << 63)), "float64 -2^63", math.MinInt64, true},
		{float32(0.5), "float32 fractional", 0, false},
		{json.Number("-9223372036854775808"), "json min", math.MinInt64, true},
		{json.Number("abc"), "json garbage", 0, false},
		{true, "bool", 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ToInt64(tc.input)
			if ok != tc.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tc.wantOK)
			}
			if ok && got != tc.want {
				t.Errorf("got %d, want %d", got, tc.want)
			}
		})
	}
}

func TestToFloat64(t *testing.T) {
	tests := []struct {
		input  any
		name   string
		want   float64
		wantOK bool
	}{
		{float64(1.5), "float64", 1.5, true},
		{float32(0.25), "float32", 0.25, true},
		{int(-3), "int", -3, true},
		{uint64(10), "uint64", 10, true},
		{json.Number("2.5"), "json", 2.5, true},
		{"2.5", "string", 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ToFloat64(tc.input)
			if ok != tc.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tc.wantOK)
			}
			if ok && got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestUnsignedAndSigned(t *testing.T) {
	if _, ok := Unsigned(255, 8); !ok {
		t.Error("255 fits 8 bits")
	}
	if _, ok := Unsigned(256, 8); ok {
		t.Error("256 does not fit 8 bits")
	}
	if _, ok := Unsigned(uint64(math.MaxUint64), 64); !ok {
		t.Error("max uint64 fits 64 bits")
	}
	if _, ok := Signed(-128, 8); !ok {
		t.Error("-128 fits 8 bits")
	}
	if _, ok := Signed(128, 8); ok {
		t.Error("128 does not fit signed 8 bits")
	}
	if v, ok := Signed(-32768, 16); !ok || v != -32768 {
		t.Errorf("Signed(-32768, 16) = %d, %v", v, ok)
	}
	if _, ok := Signed(int64(math.MinInt64), 64); !ok {
		t.Error("min int64 fits 64 bits")
	}
}
