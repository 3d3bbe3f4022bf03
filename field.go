package fudge

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/wippyai/fudge/wire"
)

// Field is a read-only view of one field of a Message. It re-reads the
// message's storage on every call.
type Field struct {
	owner *Message
	index int
}

func (f *Field) raw() *field {
	return &f.owner.store.fields[f.index]
}

// Type returns the field's wire type.
func (f *Field) Type() wire.Type {
	return f.raw().typ
}

// Name returns the field name, if set.
func (f *Field) Name() (string, bool) {
	r := f.raw()
	return r.name, r.hasName
}

// Ordinal returns the field ordinal, if set.
func (f *Field) Ordinal() (uint16, bool) {
	r := f.raw()
	return r.ordinal, r.hasOrdinal
}

// ByteLength returns the payload size of variable-width, array and fixed
// byte array fields. For sub-messages it is the encoded size of the child's
// fields.
func (f *Field) ByteLength() (int, bool) {
	r := f.raw()
	if _, fixed := r.typ.FixedWidth(); fixed && !r.typ.IsFixedByteArray() {
		return 0, false
	}
	return payloadSize(r), true
}

// ElementCount returns the number of logical elements: 0 for an indicator,
// 1 for scalars and date/time values, the element count of arrays, code
// points of strings, fields of sub-messages and bytes of unknown types.
func (f *Field) ElementCount() int {
	r := f.raw()
	switch v := r.value.(type) {
	case nil:
		return 0
	case string:
		return utf8.RuneCountInString(v)
	case *store:
		return len(v.fields)
	case []byte:
		return len(v)
	case []int16:
		return len(v)
	case []int32:
		return len(v)
	case []int64:
		return len(v)
	case []float32:
		return len(v)
	case []float64:
		return len(v)
	}
	return 1
}

// Value returns the value in its canonical Go form. Slices are copies;
// sub-messages are the wrapper interned in the owning message.
func (f *Field) Value() any {
	r := f.raw()
	switch v := r.value.(type) {
	case *store:
		return f.owner.wrap(v)
	case []byte:
		return clone(v)
	case []int16:
		return clone(v)
	case []int32:
		return clone(v)
	case []int64:
		return clone(v)
	case []float32:
		return clone(v)
	case []float64:
		return clone(v)
	}
	return r.value
}

func clone[T any](s []T) []T {
	return append(make([]T, 0, len(s)), s...)
}

// String renders the field as Field[name|ordinal|type:value].
func (f *Field) String() string {
	r := f.raw()
	var b strings.Builder
	b.WriteString("Field[")
	if r.hasName {
		b.WriteString(r.name)
	}
	b.WriteByte('|')
	if r.hasOrdinal {
		b.WriteString(strconv.Itoa(int(r.ordinal)))
	}
	b.WriteByte('|')
	b.WriteString(r.typ.String())
	b.WriteByte(':')
	switch v := r.value.(type) {
	case nil:
	case []byte:
		fmt.Fprintf(&b, "<%d bytes>", len(v))
	case *store:
		b.WriteString(f.owner.wrap(v).String())
	default:
		fmt.Fprint(&b, v)
	}
	b.WriteByte(']')
	return b.String()
}

// Index returns the field's position in its message.
func (f *Field) Index() int {
	return f.index
}
