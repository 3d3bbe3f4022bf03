package fudge

import (
	"encoding/binary"

	"github.com/wippyai/fudge/errors"
	fbinary "github.com/wippyai/fudge/internal/binary"
	"github.com/wippyai/fudge/transcoder"
	"github.com/wippyai/fudge/wire"
)

func exact[T any](f *Field, want wire.Type) (T, error) {
	r := f.raw()
	if r.typ != want {
		var zero T
		return zero, typeMismatch(want, r.typ)
	}
	return r.value.(T), nil
}

func exactSlice[T any](f *Field, want wire.Type) ([]T, error) {
	v, err := exact[[]T](f, want)
	if err != nil {
		return nil, err
	}
	return clone(v), nil
}

// Strict accessors. Each fails with type_mismatch unless the stored type is
// exactly the accessor's type.

func (f *Field) Bool() (bool, error) {
	return exact[bool](f, wire.TypeBoolean)
}

func (f *Field) Byte() (int8, error) {
	return exact[int8](f, wire.TypeByte)
}

func (f *Field) Short() (int16, error) {
	return exact[int16](f, wire.TypeShort)
}

func (f *Field) Int() (int32, error) {
	return exact[int32](f, wire.TypeInt)
}

func (f *Field) Long() (int64, error) {
	return exact[int64](f, wire.TypeLong)
}

func (f *Field) Float() (float32, error) {
	return exact[float32](f, wire.TypeFloat)
}

func (f *Field) Double() (float64, error) {
	return exact[float64](f, wire.TypeDouble)
}

func (f *Field) Text() (string, error) {
	return exact[string](f, wire.TypeString)
}

func (f *Field) ShortArray() ([]int16, error) {
	return exactSlice[int16](f, wire.TypeShortArray)
}

func (f *Field) IntArray() ([]int32, error) {
	return exactSlice[int32](f, wire.TypeIntArray)
}

func (f *Field) LongArray() ([]int64, error) {
	return exactSlice[int64](f, wire.TypeLongArray)
}

func (f *Field) FloatArray() ([]float32, error) {
	return exactSlice[float32](f, wire.TypeFloatArray)
}

func (f *Field) DoubleArray() ([]float64, error) {
	return exactSlice[float64](f, wire.TypeDoubleArray)
}

func (f *Field) Date() (wire.Date, error) {
	return exact[wire.Date](f, wire.TypeDate)
}

func (f *Field) Time() (wire.Time, error) {
	return exact[wire.Time](f, wire.TypeTime)
}

func (f *Field) DateTime() (wire.DateTime, error) {
	return exact[wire.DateTime](f, wire.TypeDateTime)
}

// Message returns the sub-message, interned in the owning message.
func (f *Field) Message() (*Message, error) {
	s, err := exact[*store](f, wire.TypeMessage)
	if err != nil {
		return nil, err
	}
	return f.owner.wrap(s), nil
}

// ByteArray returns a copy of a byte[] or byte[N] payload.
func (f *Field) ByteArray() ([]byte, error) {
	r := f.raw()
	if !r.typ.IsByteArray() {
		return nil, typeMismatch(wire.TypeByteArray, r.typ)
	}
	return clone(r.value.([]byte)), nil
}

// Bytes returns the raw payload of array and unknown-type fields. Typed
// array elements are little-endian.
func (f *Field) Bytes() ([]byte, error) {
	r := f.raw()
	switch {
	case r.typ.IsByteArray() || !r.typ.Known():
		return clone(r.value.([]byte)), nil
	case r.typ.IsArray():
		return fbinary.AppendArray(nil, r.value, binary.LittleEndian), nil
	}
	return nil, errors.New(errors.PhaseAccess, errors.KindTypeMismatch).
		WireType(r.typ.String()).
		Mismatch("array or unknown type", r.typ.String()).
		Detail("%s fields have no raw payload", r.typ).
		Build()
}

func coerceMismatch(target string, got wire.Type) error {
	return errors.New(errors.PhaseAccess, errors.KindTypeMismatch).
		WireType(got.String()).
		Mismatch(target, got.String()).
		Detail("cannot read %s as %s", got, target).
		Build()
}

// coerceInt reads booleans as 1 or 0 and numbers through conv, which range
// checks and truncates floats toward zero.
func coerceInt[T any](f *Field, target wire.Type, conv func(any) (T, error)) (T, error) {
	r := f.raw()
	switch {
	case r.typ == wire.TypeBoolean:
		if r.value.(bool) {
			return conv(1)
		}
		return conv(0)
	case r.typ.IsInteger() || r.typ.IsFloat():
		return conv(r.value)
	}
	var zero T
	return zero, coerceMismatch(target.String(), r.typ)
}

func coerceFloat[T any](f *Field, target wire.Type, conv func(any) (T, error)) (T, error) {
	r := f.raw()
	if r.typ.IsInteger() || r.typ.IsFloat() {
		return conv(r.value)
	}
	var zero T
	return zero, coerceMismatch(target.String(), r.typ)
}

// Coercing accessors. Booleans and numbers convert to the integer kinds with
// range checks; numbers convert to the float kinds.

func (f *Field) AsByte() (int8, error) {
	return coerceInt(f, wire.TypeByte, transcoder.ToByte)
}

func (f *Field) AsShort() (int16, error) {
	return coerceInt(f, wire.TypeShort, transcoder.ToShort)
}

func (f *Field) AsInt() (int32, error) {
	return coerceInt(f, wire.TypeInt, transcoder.ToInt)
}

func (f *Field) AsLong() (int64, error) {
	return coerceInt(f, wire.TypeLong, transcoder.ToLong)
}

func (f *Field) AsFloat() (float32, error) {
	return coerceFloat(f, wire.TypeFloat, transcoder.ToFloat)
}

func (f *Field) AsDouble() (float64, error) {
	return coerceFloat(f, wire.TypeDouble, transcoder.ToDouble)
}

// AsBool reads booleans directly and integers as non-zero.
func (f *Field) AsBool() (bool, error) {
	r := f.raw()
	switch {
	case r.typ == wire.TypeBoolean:
		return r.value.(bool), nil
	case r.typ.IsInteger():
		return transcoder.ToBool(r.value), nil
	}
	return false, coerceMismatch(wire.TypeBoolean.String(), r.typ)
}
