package fudge

import (
	"encoding/binary"
	"unicode/utf8"

	fbinary "github.com/wippyai/fudge/internal/binary"
	"github.com/wippyai/fudge/wire"
)

// Decode reads an envelope. The declared size must match len(data).
func (BinaryCodec) Decode(data []byte) (Header, *Message, error) {
	r := fbinary.NewReader(data)
	var h Header
	var err error
	if h.Directives, err = r.ReadByte(); err != nil {
		return Header{}, nil, err
	}
	if h.SchemaVersion, err = r.ReadByte(); err != nil {
		return Header{}, nil, err
	}
	if h.Taxonomy, err = r.ReadI16(); err != nil {
		return Header{}, nil, err
	}
	total, err := r.ReadI32()
	if err != nil {
		return Header{}, nil, err
	}
	switch {
	case total < headerSize:
		return Header{}, nil, r.Fail(wire.StatusPayloadSizeMismatch, "declared size %d is smaller than the header", total)
	case int(total) > len(data):
		return Header{}, nil, r.Fail(wire.StatusOutOfBytes, "declared size %d, have %d bytes", total, len(data))
	case int(total) < len(data):
		return Header{}, nil, r.Fail(wire.StatusTrailingBytes, "declared size %d, have %d bytes", total, len(data))
	}

	s, err := decodeFields(r, 0)
	if err != nil {
		return Header{}, nil, err
	}
	return h, wrapStore(s), nil
}

// decodeFields reads fields until r is exhausted. depth is the number of
// enclosing sub-messages.
func decodeFields(r *fbinary.Reader, depth int) (*store, error) {
	s := newStore()
	for r.Remaining() > 0 {
		f, err := decodeField(r, depth)
		if err != nil {
			return nil, err
		}
		s.fields = append(s.fields, f)
	}
	return s, nil
}

func decodeField(r *fbinary.Reader, depth int) (field, error) {
	var f field
	prefix, err := r.ReadByte()
	if err != nil {
		return f, err
	}
	typ, err := r.ReadByte()
	if err != nil {
		return f, err
	}
	f.typ = wire.Type(typ)

	if prefix&prefixOrdinal != 0 {
		if f.ordinal, err = r.ReadU16(); err != nil {
			return f, err
		}
		f.hasOrdinal = true
	}
	if prefix&prefixName != 0 {
		n, err := r.ReadByte()
		if err != nil {
			return f, err
		}
		name, err := r.ReadBytes(int(n))
		if err != nil {
			return f, err
		}
		if !utf8.Valid(name) {
			return f, r.Fail(wire.StatusInvalidUTF8, "field name")
		}
		f.name, f.hasName = string(name), true
	}

	size, err := payloadLength(r, f.typ, prefix)
	if err != nil {
		return f, err
	}
	sub, err := r.Sub(size)
	if err != nil {
		return f, err
	}
	if f.value, err = decodePayload(sub, f.typ, depth); err != nil {
		return f, err
	}
	if sub.Remaining() != 0 {
		return f, sub.Fail(wire.StatusPayloadSizeMismatch, "%d unread payload bytes", sub.Remaining())
	}
	return f, nil
}

// payloadLength resolves the payload size from the type registry or the
// size field, checking that the width flags agree with the type.
func payloadLength(r *fbinary.Reader, typ wire.Type, prefix byte) (int, error) {
	width, fixed := typ.FixedWidth()
	flag := (prefix & prefixSizeMask) >> prefixSizeShift

	if prefix&prefixFixed != 0 {
		switch {
		case !typ.Known():
			return 0, r.Fail(wire.StatusUnknownFixedWidth, "type %d", typ)
		case !fixed || flag != 0:
			return 0, r.Fail(wire.StatusInvalidWidthFlag, "type %s", typ)
		}
		return width, nil
	}
	if fixed {
		return 0, r.Fail(wire.StatusInvalidWidthFlag, "fixed-width type %s without fixed flag", typ)
	}

	switch flag {
	case 0:
		return 0, nil
	case 1:
		n, err := r.ReadByte()
		return int(n), err
	case 2:
		n, err := r.ReadU16()
		return int(n), err
	}
	n, err := r.ReadI32()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, r.Fail(wire.StatusFieldTooLarge, "negative size %d", n)
	}
	return int(n), nil
}

func decodePayload(r *fbinary.Reader, typ wire.Type, depth int) (any, error) {
	switch {
	case typ == wire.TypeIndicator:
		return nil, nil
	case typ == wire.TypeBoolean:
		b, err := r.ReadByte()
		return b != 0, err
	case typ == wire.TypeByte:
		b, err := r.ReadByte()
		return int8(b), err
	case typ == wire.TypeShort:
		return r.ReadI16()
	case typ == wire.TypeInt:
		return r.ReadI32()
	case typ == wire.TypeLong:
		return r.ReadI64()
	case typ == wire.TypeFloat:
		return r.ReadF32()
	case typ == wire.TypeDouble:
		return r.ReadF64()
	case typ == wire.TypeString:
		b, err := r.ReadBytes(r.Remaining())
		if err != nil {
			return nil, err
		}
		if !utf8.Valid(b) {
			return nil, r.Fail(wire.StatusInvalidUTF8, "string payload")
		}
		return string(b), nil
	case typ == wire.TypeMessage:
		if depth >= MaxNesting {
			return nil, r.Fail(wire.StatusInvalidValue, "sub-messages nested deeper than %d", MaxNesting)
		}
		return decodeFields(r, depth+1)
	case typ.IsArray():
		b, err := r.ReadBytes(r.Remaining())
		if err != nil {
			return nil, err
		}
		v, ok := fbinary.DecodeArray(typ, b, binary.BigEndian)
		if !ok {
			return nil, r.Fail(wire.StatusPayloadSizeMismatch, "%d bytes is not a whole %s", len(b), typ)
		}
		return v, nil
	case typ.IsFixedByteArray() || !typ.Known():
		return r.ReadBytes(r.Remaining())
	case typ == wire.TypeDate:
		return readDate(r)
	case typ == wire.TypeTime:
		return readTime(r)
	case typ == wire.TypeDateTime:
		d, err := readDate(r)
		if err != nil {
			return nil, err
		}
		t, err := readTime(r)
		if err != nil {
			return nil, err
		}
		return wire.DateTime{Date: d, Time: t}, nil
	}
	return nil, r.Fail(wire.StatusInvalidValue, "no decoder for type %s", typ)
}

func readDate(r *fbinary.Reader) (wire.Date, error) {
	v, err := r.ReadI32()
	if err != nil {
		return wire.Date{}, err
	}
	d := wire.Date{Year: v >> 9, Month: uint8(v>>5) & 0x0F, Day: uint8(v) & 0x1F}
	if d.Month > 12 {
		return wire.Date{}, r.Fail(wire.StatusInvalidValue, "month %d", d.Month)
	}
	return d, nil
}

func readTime(r *fbinary.Reader) (wire.Time, error) {
	v, err := r.ReadU32()
	if err != nil {
		return wire.Time{}, err
	}
	nanos, err := r.ReadU32()
	if err != nil {
		return wire.Time{}, err
	}

	secs := v & 0xFFFFF
	prec := wire.Precision(v >> 20 & 0x0F)
	t := wire.Time{
		Precision:  prec,
		Hour:       uint8(secs / 3600),
		Minute:     uint8(secs / 60 % 60),
		Second:     uint8(secs % 60),
		Nanosecond: nanos,
	}
	switch {
	case secs >= 86400:
		return wire.Time{}, r.Fail(wire.StatusInvalidValue, "%d seconds past midnight", secs)
	case !t.Precision.Valid():
		return wire.Time{}, r.Fail(wire.StatusInvalidValue, "precision %d", t.Precision)
	case nanos > 999_999_999:
		return wire.Time{}, r.Fail(wire.StatusInvalidValue, "%d nanoseconds", nanos)
	}
	if offset := int8(v >> 24); offset != noOffset {
		t.Offset, t.HasOffset = offset, true
	}
	return t, nil
}
