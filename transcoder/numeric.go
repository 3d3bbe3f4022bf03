package transcoder

import (
	"reflect"

	"golang.org/x/exp/constraints"

	"github.com/wippyai/fudge/errors"
	"github.com/wippyai/fudge/transcoder/internal/abi"
	"github.com/wippyai/fudge/wire"
)

// convertInteger narrows value to the signed integer kind typ. The range is
// taken from typ, so T must be the Go type of the same width.
func convertInteger[T constraints.Signed](value any, typ wire.Type) (T, error) {
	n, res := abi.ToInt64(value)
	low, high, _ := typ.IntRange()
	switch res {
	case abi.NotNumeric:
		return 0, errors.NotNumeric(errors.PhaseConvert, abi.TypeName(value), typ.String())
	case abi.OutOfRange:
		return 0, errors.Overflow(errors.PhaseConvert, value, typ.String(), low, high)
	}
	if n < low || n > high {
		return 0, errors.Overflow(errors.PhaseConvert, value, typ.String(), low, high)
	}
	return T(n), nil
}

func convertFloat[T constraints.Float](value any, typ wire.Type) (T, error) {
	f, ok := abi.ToFloat64(value)
	if !ok {
		return 0, errors.NotNumeric(errors.PhaseConvert, abi.TypeName(value), typ.String())
	}
	return T(f), nil
}

// ToByte converts value to a Fudge byte (-128..127).
func ToByte(value any) (int8, error) {
	return convertInteger[int8](value, wire.TypeByte)
}

// ToShort converts value to a Fudge short.
func ToShort(value any) (int16, error) {
	return convertInteger[int16](value, wire.TypeShort)
}

// ToInt converts value to a Fudge int.
func ToInt(value any) (int32, error) {
	return convertInteger[int32](value, wire.TypeInt)
}

// ToLong converts value to a Fudge long.
func ToLong(value any) (int64, error) {
	return convertInteger[int64](value, wire.TypeLong)
}

// ToFloat converts value to a Fudge float. Values beyond float32 become ±Inf.
func ToFloat(value any) (float32, error) {
	return convertFloat[float32](value, wire.TypeFloat)
}

// ToDouble converts value to a Fudge double.
func ToDouble(value any) (float64, error) {
	return convertFloat[float64](value, wire.TypeDouble)
}

// ToBool reports the truthiness of value. It never fails: nil, false, zero
// numbers, empty strings and collections, nil pointers and values whose Len
// is zero are false; everything else is true.
func ToBool(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Func, reflect.Chan, reflect.Map, reflect.Slice:
		if rv.IsNil() {
			return false
		}
	}
	if l, ok := value.(interface{ Len() int }); ok {
		return l.Len() > 0
	}

	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.Complex64, reflect.Complex128:
		return rv.Complex() != 0
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array, reflect.Chan:
		return rv.Len() > 0
	}
	return true
}
