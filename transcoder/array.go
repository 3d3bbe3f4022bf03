package transcoder

import (
	"reflect"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/wippyai/fudge/errors"
	"github.com/wippyai/fudge/transcoder/internal/abi"
	"github.com/wippyai/fudge/wire"
)

const (
	// Pool limits to prevent memory bloat
	poolMaxCap  = 4096 // max elements kept in a pooled buffer
	poolInitCap = 16
)

// scratch is a pool of conversion buffers for one element type. inUse counts
// buffers handed out and not yet returned.
type scratch[T any] struct {
	pool  sync.Pool
	inUse atomic.Int64
}

func newScratch[T any]() *scratch[T] {
	s := &scratch[T]{}
	s.pool.New = func() any {
		buf := make([]T, 0, poolInitCap)
		return &buf
	}
	return s
}

func (s *scratch[T]) get() *[]T {
	s.inUse.Add(1)
	return s.pool.Get().(*[]T)
}

func (s *scratch[T]) put(buf *[]T) {
	s.inUse.Add(-1)
	if buf == nil || cap(*buf) > poolMaxCap {
		return // reject oversized
	}
	*buf = (*buf)[:0]
	s.pool.Put(buf)
}

var (
	byteScratch   = newScratch[int8]()
	shortScratch  = newScratch[int16]()
	intScratch    = newScratch[int32]()
	longScratch   = newScratch[int64]()
	floatScratch  = newScratch[float32]()
	doubleScratch = newScratch[float64]()
)

// toArray converts every element of seq with conv. On any failure the
// scratch buffer goes back to the pool and no partial result is returned.
func toArray[T any](seq reflect.Value, s *scratch[T], conv func(any) (T, error)) ([]T, error) {
	n := seq.Len()
	if n > abi.MaxListLength {
		return nil, errors.New(errors.PhaseConvert, errors.KindInvalidInput).
			Detail("sequence of %d elements exceeds limit %d", n, abi.MaxListLength).
			Build()
	}

	buf := s.get()
	defer s.put(buf)

	for i := 0; i < n; i++ {
		v, err := conv(seq.Index(i).Interface())
		if err != nil {
			return nil, errors.AtIndex(errors.PhaseConvert, err, i)
		}
		*buf = append(*buf, v)
	}
	return slices.Clone(*buf), nil
}

func convertArray[T any](value any, typ wire.Type, s *scratch[T], conv func(any) (T, error)) ([]T, error) {
	if direct, ok := value.([]T); ok {
		return slices.Clone(direct), nil
	}
	seq, ok := abi.Sequence(value)
	if !ok {
		return nil, errors.New(errors.PhaseConvert, errors.KindTypeMismatch).
			GoType(abi.TypeName(value)).
			WireType(typ.String()).
			Mismatch(typ.String(), abi.TypeName(value)).
			Detail("expected a slice or array").
			Build()
	}
	return toArray(seq, s, conv)
}

// ToShortArray converts a slice or array to a short[] payload.
func ToShortArray(value any) ([]int16, error) {
	return convertArray(value, wire.TypeShortArray, shortScratch, ToShort)
}

// ToIntArray converts a slice or array to an int[] payload.
func ToIntArray(value any) ([]int32, error) {
	return convertArray(value, wire.TypeIntArray, intScratch, ToInt)
}

// ToLongArray converts a slice or array to a long[] payload.
func ToLongArray(value any) ([]int64, error) {
	return convertArray(value, wire.TypeLongArray, longScratch, ToLong)
}

// ToFloatArray converts a slice or array to a float[] payload.
func ToFloatArray(value any) ([]float32, error) {
	return convertArray(value, wire.TypeFloatArray, floatScratch, ToFloat)
}

// ToDoubleArray converts a slice or array to a double[] payload.
func ToDoubleArray(value any) ([]float64, error) {
	return convertArray(value, wire.TypeDoubleArray, doubleScratch, ToDouble)
}
