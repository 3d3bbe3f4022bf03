package fudge

import (
	"github.com/wippyai/fudge/wire"
)

// Header is the envelope metadata carried alongside the payload.
type Header struct {
	Directives    byte
	SchemaVersion byte
	Taxonomy      int16
}

// Codec converts between an envelope and bytes. Failures that are not
// *errors.Error values are reported to callers as codec_failure, with the
// wire.Status found in the error chain.
type Codec interface {
	Encode(h Header, m *Message) ([]byte, error)
	Decode(data []byte) (Header, *Message, error)
}

// BinaryCodec is the Fudge binary encoding.
//
// An encoded envelope is an 8-byte header (directives, schema version,
// taxonomy int16, total size int32) followed by the payload's fields. All
// integers are big-endian. Each field is
//
//	prefix  byte   0x80 fixed width, 0x60 size width, 0x10 ordinal, 0x08 name
//	type    byte
//	ordinal int16  when 0x10 is set
//	name    byte length + UTF-8, when 0x08 is set
//	size    0, 1, 2 or 4 bytes for variable-width types
//	payload
type BinaryCodec struct{}

const (
	headerSize = 8

	prefixFixed     = 0x80
	prefixSizeMask  = 0x60
	prefixSizeShift = 5
	prefixOrdinal   = 0x10
	prefixName      = 0x08

	maxWireName = 255

	// noOffset marks a time without a UTC offset.
	noOffset = -128
)

// MaxNesting is the deepest sub-message nesting BinaryCodec decodes.
const MaxNesting = 1024

// sizeFlag returns the size width flag and byte count for a payload size.
func sizeFlag(n int) (flag byte, width int) {
	switch {
	case n == 0:
		return 0, 0
	case n <= 0xFF:
		return 1, 1
	case n <= 0xFFFF:
		return 2, 2
	}
	return 3, 4
}

// payloadSize returns the encoded payload size of f.
func payloadSize(f *field) int {
	switch v := f.value.(type) {
	case bool, int8:
		return 1
	case int16:
		return 2
	case int32, float32:
		return 4
	case int64, float64:
		return 8
	case string:
		return len(v)
	case []byte:
		return len(v)
	case []int16:
		return 2 * len(v)
	case []int32:
		return 4 * len(v)
	case []int64:
		return 8 * len(v)
	case []float32:
		return 4 * len(v)
	case []float64:
		return 8 * len(v)
	case *store:
		return v.blockSize()
	case wire.Date:
		return 4
	case wire.Time:
		return 8
	case wire.DateTime:
		return 12
	}
	return 0
}

// fieldSize returns the encoded size of f including its prefix.
func fieldSize(f *field) int {
	n := 2
	if f.hasOrdinal {
		n += 2
	}
	if f.hasName {
		n += 1 + len(f.name)
	}
	size := payloadSize(f)
	if _, fixed := f.typ.FixedWidth(); !fixed {
		_, w := sizeFlag(size)
		n += w
	}
	return n + size
}

// blockSize returns the encoded size of the store's fields.
func (s *store) blockSize() int {
	n := 0
	for i := range s.fields {
		n += fieldSize(&s.fields[i])
	}
	return n
}
