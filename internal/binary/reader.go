package binary

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/wippyai/fudge/wire"
)

// Error is a decode failure at a byte offset.
type Error struct {
	Detail string
	Offset int
	Status wire.Status
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("fudge: %s at %d: %s", e.Status.String(), e.Offset, e.Detail)
	}
	return fmt.Sprintf("fudge: %s at %d", e.Status.String(), e.Offset)
}

// Unwrap exposes the status so errors.Is(err, wire.StatusOutOfBytes) works.
func (e *Error) Unwrap() error {
	return e.Status
}

// Reader reads big-endian Fudge primitives from a byte slice with position
// tracking. Offsets reported in errors are absolute within the original
// input, including for sub-readers.
type Reader struct {
	data []byte
	pos  int
	base int
}

// NewReader creates a new Reader over data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Position returns the absolute byte position.
func (r *Reader) Position() int {
	return r.base + r.pos
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// Fail builds an *Error at the current position.
func (r *Reader) Fail(status wire.Status, detail string, args ...any) error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{Offset: r.Position(), Status: status, Detail: detail}
}

func (r *Reader) need(n int) error {
	if n < 0 || r.Remaining() < n {
		return r.Fail(wire.StatusOutOfBytes, "need %d bytes, have %d", n, r.Remaining())
	}
	return nil
}

// ReadByte reads a single byte and advances the position.
func (r *Reader) ReadByte() (byte, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// ReadBytes reads exactly n bytes into a new slice.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, r.data[r.pos:r.pos+n])
	r.pos += n
	return out, nil
}

// Sub returns a reader over the next n bytes and skips them in r.
func (r *Reader) Sub(n int) (*Reader, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	sub := &Reader{data: r.data[r.pos : r.pos+n], base: r.Position()}
	r.pos += n
	return sub, nil
}

// ReadU16 reads a big-endian uint16.
func (r *Reader) ReadU16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return v, nil
}

// ReadU32 reads a big-endian uint32.
func (r *Reader) ReadU32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v, nil
}

// ReadU64 reads a big-endian uint64.
func (r *Reader) ReadU64() (uint64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint64(r.data[r.pos:])
	r.pos += 8
	return v, nil
}

// ReadI16 reads a big-endian int16.
func (r *Reader) ReadI16() (int16, error) {
	v, err := r.ReadU16()
	return int16(v), err
}

// ReadI32 reads a big-endian int32.
func (r *Reader) ReadI32() (int32, error) {
	v, err := r.ReadU32()
	return int32(v), err
}

// ReadI64 reads a big-endian int64.
func (r *Reader) ReadI64() (int64, error) {
	v, err := r.ReadU64()
	return int64(v), err
}

// ReadF32 reads a big-endian IEEE-754 float32.
func (r *Reader) ReadF32() (float32, error) {
	v, err := r.ReadU32()
	return math.Float32frombits(v), err
}

// ReadF64 reads a big-endian IEEE-754 float64.
func (r *Reader) ReadF64() (float64, error) {
	v, err := r.ReadU64()
	return math.Float64frombits(v), err
}
