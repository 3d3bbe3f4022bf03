package binary

import (
	"encoding/binary"
	"math"

	"github.com/wippyai/fudge/wire"
)

// AppendArray appends the elements of a typed array value ([]byte, []int16,
// []int32, []int64, []float32 or []float64) in the given byte order.
func AppendArray(dst []byte, value any, order binary.AppendByteOrder) []byte {
	switch v := value.(type) {
	case []byte:
		dst = append(dst, v...)
	case []int16:
		for _, x := range v {
			dst = order.AppendUint16(dst, uint16(x))
		}
	case []int32:
		for _, x := range v {
			dst = order.AppendUint32(dst, uint32(x))
		}
	case []int64:
		for _, x := range v {
			dst = order.AppendUint64(dst, uint64(x))
		}
	case []float32:
		for _, x := range v {
			dst = order.AppendUint32(dst, math.Float32bits(x))
		}
	case []float64:
		for _, x := range v {
			dst = order.AppendUint64(dst, math.Float64bits(x))
		}
	}
	return dst
}

// DecodeArray decodes the payload of a variable-length array type. It
// reports false when typ is not an array type or the payload is not a whole
// number of elements.
func DecodeArray(typ wire.Type, b []byte, order binary.ByteOrder) (any, bool) {
	w := typ.ElementWidth()
	if !typ.IsArray() || w == 0 || len(b)%w != 0 {
		return nil, false
	}
	n := len(b) / w
	switch typ {
	case wire.TypeByteArray:
		return append([]byte(nil), b...), true
	case wire.TypeShortArray:
		out := make([]int16, n)
		for i := range out {
			out[i] = int16(order.Uint16(b[i*2:]))
		}
		return out, true
	case wire.TypeIntArray:
		out := make([]int32, n)
		for i := range out {
			out[i] = int32(order.Uint32(b[i*4:]))
		}
		return out, true
	case wire.TypeLongArray:
		out := make([]int64, n)
		for i := range out {
			out[i] = int64(order.Uint64(b[i*8:]))
		}
		return out, true
	case wire.TypeFloatArray:
		out := make([]float32, n)
		for i := range out {
			out[i] = math.Float32frombits(order.Uint32(b[i*4:]))
		}
		return out, true
	case wire.TypeDoubleArray:
		out := make([]float64, n)
		for i := range out {
			out[i] = math.Float64frombits(order.Uint64(b[i*8:]))
		}
		return out, true
	}
	return nil, false
}
