package fudge

import (
	"math"

	fbinary "github.com/wippyai/fudge/internal/binary"
	"github.com/wippyai/fudge/wire"
)

type encoder struct {
	w *fbinary.Writer
}

func (e *encoder) fail(status wire.Status, detail string) error {
	return &fbinary.Error{Offset: e.w.Len(), Status: status, Detail: detail}
}

// Encode writes the header and the message's fields.
func (BinaryCodec) Encode(h Header, m *Message) ([]byte, error) {
	if m == nil || m.store == nil {
		return nil, wire.StatusNilPayload
	}
	body := m.store.blockSize()
	total := headerSize + body
	if total > math.MaxInt32 {
		return nil, &fbinary.Error{Status: wire.StatusFieldTooLarge, Detail: "envelope exceeds 2 GiB"}
	}

	e := &encoder{w: fbinary.NewWriter(total)}
	e.w.Byte(h.Directives)
	e.w.Byte(h.SchemaVersion)
	e.w.WriteI16(h.Taxonomy)
	e.w.WriteI32(int32(total))
	if err := e.fields(m.store); err != nil {
		return nil, err
	}
	return e.w.Bytes(), nil
}

func (e *encoder) fields(s *store) error {
	for i := range s.fields {
		if err := e.field(&s.fields[i]); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) field(f *field) error {
	size := payloadSize(f)
	_, fixed := f.typ.FixedWidth()

	var prefix byte
	flag, width := sizeFlag(size)
	if fixed {
		prefix |= prefixFixed
	} else {
		prefix |= flag << prefixSizeShift
	}
	if f.hasOrdinal {
		prefix |= prefixOrdinal
	}
	if f.hasName {
		if len(f.name) > maxWireName {
			return e.fail(wire.StatusNameTooLong, "field name exceeds 255 bytes")
		}
		prefix |= prefixName
	}
	if size > math.MaxInt32 {
		return e.fail(wire.StatusFieldTooLarge, "field payload exceeds 2 GiB")
	}

	e.w.Byte(prefix)
	e.w.Byte(byte(f.typ))
	if f.hasOrdinal {
		e.w.WriteU16(f.ordinal)
	}
	if f.hasName {
		e.w.Byte(byte(len(f.name)))
		e.w.WriteString(f.name)
	}
	if !fixed {
		switch width {
		case 1:
			e.w.Byte(byte(size))
		case 2:
			e.w.WriteU16(uint16(size))
		case 4:
			e.w.WriteI32(int32(size))
		}
	}
	return e.payload(f)
}

func (e *encoder) payload(f *field) error {
	switch v := f.value.(type) {
	case nil:
	case bool:
		if v {
			e.w.Byte(1)
		} else {
			e.w.Byte(0)
		}
	case int8:
		e.w.Byte(byte(v))
	case int16:
		e.w.WriteI16(v)
	case int32:
		e.w.WriteI32(v)
	case int64:
		e.w.WriteI64(v)
	case float32:
		e.w.WriteF32(v)
	case float64:
		e.w.WriteF64(v)
	case string:
		e.w.WriteString(v)
	case []byte, []int16, []int32, []int64, []float32, []float64:
		e.w.WriteArray(v)
	case *store:
		return e.fields(v)
	case wire.Date:
		e.w.WriteI32(packDate(v))
	case wire.Time:
		e.time(v)
	case wire.DateTime:
		e.w.WriteI32(packDate(v.Date))
		e.time(v.Time)
	default:
		return e.fail(wire.StatusInvalidValue, "unencodable "+f.typ.String()+" value")
	}
	return nil
}

func packDate(d wire.Date) int32 {
	return d.Year<<9 | int32(d.Month&0x0F)<<5 | int32(d.Day&0x1F)
}

func (e *encoder) time(t wire.Time) {
	offset := int8(noOffset)
	if t.HasOffset {
		offset = t.Offset
	}
	secs := uint32(t.Hour)*3600 + uint32(t.Minute)*60 + uint32(t.Second)
	e.w.WriteU32(uint32(uint8(offset))<<24 | uint32(t.Precision&0x0F)<<20 | secs)
	e.w.WriteU32(t.Nanosecond)
}
