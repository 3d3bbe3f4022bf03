package abi

import (
	"math"
	"reflect"
)

// Result classifies the outcome of a numeric coercion.
type Result uint8

const (
	OK Result = iota
	NotNumeric
	OutOfRange
)

// ToInt64 reads any Go integer or float as an int64. Floats truncate toward
// zero; NaN is not numeric, infinities and values beyond int64 are out of
// range. Named types are read through their reflect.Kind.
func ToInt64(value any) (int64, Result) {
	switch v := value.(type) {
	case int64:
		return v, OK
	case int:
		return int64(v), OK
	case int8:
		return int64(v), OK
	case int16:
		return int64(v), OK
	case int32:
		return int64(v), OK
	case uint8:
		return int64(v), OK
	case uint16:
		return int64(v), OK
	case uint32:
		return int64(v), OK
	case uint:
		return uintToInt64(uint64(v))
	case uint64:
		return uintToInt64(v)
	case float64:
		return floatToInt64(v)
	case float32:
		return floatToInt64(float64(v))
	case nil, bool:
		return 0, NotNumeric
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), OK
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return uintToInt64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return floatToInt64(rv.Float())
	}
	return 0, NotNumeric
}

func uintToInt64(v uint64) (int64, Result) {
	if v > math.MaxInt64 {
		return 0, OutOfRange
	}
	return int64(v), OK
}

func floatToInt64(v float64) (int64, Result) {
	if math.IsNaN(v) {
		return 0, NotNumeric
	}
	// -2^63 is exact in float64; 2^63 is the first value past MaxInt64.
	if v < -9223372036854775808.0 || v >= 9223372036854775808.0 {
		return 0, OutOfRange
	}
	return int64(math.Trunc(v)), OK
}

// ToFloat64 reads any Go integer or float as a float64.
func ToFloat64(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case nil, bool:
		return 0, false
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// IsInteger reports whether value has an integer kind.
func IsInteger(value any) bool {
	if value == nil {
		return false
	}
	switch reflect.TypeOf(value).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

// IsFloat reports whether value has a float kind.
func IsFloat(value any) bool {
	if value == nil {
		return false
	}
	k := reflect.TypeOf(value).Kind()
	return k == reflect.Float32 || k == reflect.Float64
}
