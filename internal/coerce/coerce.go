package coerce

import (
	"encoding/json"
	"math"
	"strconv"
)

// 2^64 and 2^63 as floats; the MaxUint64/MaxInt64 constants round up to
// these, so comparisons against them must be strict.
const (
	twoTo64 = 18446744073709551616.0
	twoTo63 = 9223372036854775808.0
)

// ToUint64 handles JSON decoded numbers (float64, json.Number) and other numeric types.
func ToUint64(value any) (uint64, bool) {
	switch v := value.(type) {
	case uint64:
		return v, true
	case uint8:
		return uint64(v), true
	case uint16:
		return uint64(v), true
	case uint32:
		return uint64(v), true
	case uint:
		return uint64(v), true
	case int8:
		if v >= 0 {
			return uint64(v), true
		}
	case int16:
		if v >= 0 {
			return uint64(v), true
		}
	case int32:
		if v >= 0 {
			return uint64(v), true
		}
	case int:
		if v >= 0 {
			return uint64(v), true
		}
	case int64:
		if v >= 0 {
			return uint64(v), true
		}
	case float64:
		if v >= 0 && v < twoTo64 && v == math.Trunc(v) {
			return uint64(v), true
		}
	case float32:
		f := float64(v)
		if f >= 0 && f < twoTo64 && f == math.Trunc(f) {
			return uint64(f), true
		}
	case json.Number:
		if u, err := strconv.ParseUint(string(v), 10, 64); err == nil {
			return u, true
		}
		if f, err := v.Float64(); err == nil {
			return ToUint64(f)
		}
	}
	return 0, false
}

func ToInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint:
		if uint64(v) <= math.MaxInt64 {
			return int64(v), true
		}
	case uint64:
		if v <= math.MaxInt64 {
			return int64(v), true
		}
	case float64:
		if v >= -twoTo63 && v < twoTo63 && v == math.Trunc(v) {
			return int64(v), true
		}
	case float32:
		f := float64(v)
		if f >= -twoTo63 && f < twoTo63 && f == math.Trunc(f) {
			return int64(f), true
		}
	case json.Number:
		if i, err := strconv.ParseInt(string(v), 10, 64); err == nil {
			return i, true
		}
		if f, err := v.Float64(); err == nil {
			return ToInt64(f)
		}
	}
	return 0, false
}

// ToFloat64 accepts any numeric type. Integers beyond 2^53 lose precision.
func ToFloat64(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}
	if i, ok := ToInt64(value); ok {
		return float64(i), true
	}
	if u, ok := ToUint64(value); ok {
		return float64(u), true
	}
	return 0, false
}

// Unsigned range-checks value against an unsigned width of bits.
func Unsigned(value any, bits int) (uint64, bool) {
	u, ok := ToUint64(value)
	if !ok {
		return 0, false
	}
	if bits < 64 && u > 1<<bits-1 {
		return 0, false
	}
	return u, true
}

// Signed range-checks value against a signed width of bits.
func Signed(value any, bits int) (int64, bool) {
	i, ok := ToInt64(value)
	if !ok {
		return 0, false
	}
	if bits < 64 {
		lim := int64(1) << (bits - 1)
		if i < -lim || i >= lim {
			return 0, false
		}
	}
	return i, true
}
