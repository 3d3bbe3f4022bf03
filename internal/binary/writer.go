package binary

import (
	"bytes"
	"encoding/binary"
	"math"
)

// Writer provides buffered big-endian writing for Fudge encoding.
type Writer struct {
	buf *bytes.Buffer
}

// NewWriter creates a new Writer with capacity for size bytes.
func NewWriter(size int) *Writer {
	return &Writer{buf: bytes.NewBuffer(make([]byte, 0, size))}
}

// Bytes returns the written bytes.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the number of bytes written.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Byte writes a single byte.
func (w *Writer) Byte(b byte) {
	w.buf.WriteByte(b)
}

// WriteBytes writes a byte slice.
func (w *Writer) WriteBytes(data []byte) {
	w.buf.Write(data)
}

// WriteString writes s without a length prefix.
func (w *Writer) WriteString(s string) {
	w.buf.WriteString(s)
}

// WriteU16 writes a big-endian uint16.
func (w *Writer) WriteU16(v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	w.buf.Write(b[:])
}

// WriteU32 writes a big-endian uint32.
func (w *Writer) WriteU32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
}

// WriteU64 writes a big-endian uint64.
func (w *Writer) WriteU64(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	w.buf.Write(b[:])
}

// WriteI16 writes a big-endian int16.
func (w *Writer) WriteI16(v int16) {
	w.WriteU16(uint16(v))
}

// WriteI32 writes a big-endian int32.
func (w *Writer) WriteI32(v int32) {
	w.WriteU32(uint32(v))
}

// WriteI64 writes a big-endian int64.
func (w *Writer) WriteI64(v int64) {
	w.WriteU64(uint64(v))
}

// WriteF32 writes a big-endian IEEE-754 float32.
func (w *Writer) WriteF32(v float32) {
	w.WriteU32(math.Float32bits(v))
}

// WriteF64 writes a big-endian IEEE-754 float64.
func (w *Writer) WriteF64(v float64) {
	w.WriteU64(math.Float64bits(v))
}

// WriteArray writes a typed array value big-endian.
func (w *Writer) WriteArray(value any) {
	w.buf.Write(AppendArray(nil, value, binary.BigEndian))
}
