package fudge

import (
	"strings"
	"unicode/utf8"

	"github.com/wippyai/fudge/errors"
	"github.com/wippyai/fudge/transcoder"
	"github.com/wippyai/fudge/wire"
)

// MaxNameLength is the longest field name, in code points.
const MaxNameLength = 256

// Message is an ordered collection of typed fields.
//
// A Message is a wrapper around shared storage: adding a Message to another
// embeds it by reference, so later additions to the child are visible
// through the parent. Sub-messages read back through a parent always surface
// as the same *Message for the same storage.
//
// A Message and everything reachable from it must not be mutated from more
// than one goroutine at a time. Independent messages need no coordination.
type Message struct {
	store *store
	cache map[Handle]*Message
	conv  transcoder.Converter
}

// MessageOption configures a Message.
type MessageOption func(*Message)

// WithTextWidth sets the code unit width used when text is added as a byte
// array. Widths other than 1, 2 and 4 make those adds fail with
// unsupported_text_width.
func WithTextWidth(w transcoder.TextWidth) MessageOption {
	return func(m *Message) {
		m.conv.TextWidth = w
	}
}

// NewMessage creates an empty message.
func NewMessage(opts ...MessageOption) *Message {
	m := &Message{store: newStore(), conv: transcoder.Default}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func wrapStore(s *store) *Message {
	return &Message{store: s, conv: transcoder.Default}
}

// Handle returns the identity of the message's storage.
func (m *Message) Handle() Handle {
	return m.store.handle
}

// TextWidth returns the width used for text stored as byte arrays.
func (m *Message) TextWidth() transcoder.TextWidth {
	if m.conv.TextWidth == 0 {
		return transcoder.UTF8
	}
	return m.conv.TextWidth
}

// Len returns the number of fields.
func (m *Message) Len() int {
	return len(m.store.fields)
}

// FieldAt returns the field at index i in insertion order.
func (m *Message) FieldAt(i int) (*Field, error) {
	if i < 0 || i >= len(m.store.fields) {
		return nil, errors.IndexOutOfRange(errors.PhaseLookup, i, len(m.store.fields))
	}
	return &Field{owner: m, index: i}, nil
}

// Fields returns every field in insertion order.
func (m *Message) Fields() []*Field {
	out := make([]*Field, len(m.store.fields))
	for i := range out {
		out[i] = &Field{owner: m, index: i}
	}
	return out
}

func checkName(phase errors.Phase, name string) error {
	if n := utf8.RuneCountInString(name); n > MaxNameLength {
		return errors.NameTooLong(phase, n, MaxNameLength)
	}
	if !utf8.ValidString(name) {
		return errors.InvalidUTF8(phase, []string{"name"}, []byte(name))
	}
	return nil
}

// LookupName returns the first field named name, or nil when there is none.
func (m *Message) LookupName(name string) (*Field, error) {
	if err := checkName(errors.PhaseLookup, name); err != nil {
		return nil, err
	}
	for i := range m.store.fields {
		f := &m.store.fields[i]
		if f.hasName && f.name == name {
			return &Field{owner: m, index: i}, nil
		}
	}
	return nil, nil
}

// FieldByName returns the first field named name.
func (m *Message) FieldByName(name string) (*Field, error) {
	f, err := m.LookupName(name)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, errors.NotFound(errors.PhaseLookup, "name", name)
	}
	return f, nil
}

// LookupOrdinal returns the first field with the ordinal, or nil.
func (m *Message) LookupOrdinal(ordinal uint16) *Field {
	for i := range m.store.fields {
		f := &m.store.fields[i]
		if f.hasOrdinal && f.ordinal == ordinal {
			return &Field{owner: m, index: i}
		}
	}
	return nil
}

// FieldByOrdinal returns the first field with the ordinal.
func (m *Message) FieldByOrdinal(ordinal uint16) (*Field, error) {
	if f := m.LookupOrdinal(ordinal); f != nil {
		return f, nil
	}
	return nil, errors.NotFound(errors.PhaseLookup, "ordinal", ordinal)
}

// Get looks a field up by ordinal (any integer) or by name (a string).
func (m *Message) Get(key any) (*Field, error) {
	switch k := key.(type) {
	case string:
		return m.FieldByName(k)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		ord, err := transcoder.ToLong(k)
		if err != nil || ord < 0 || ord > 0xFFFF {
			return nil, errors.NotFound(errors.PhaseLookup, "ordinal", key)
		}
		return m.FieldByOrdinal(uint16(ord))
	}
	return nil, errors.TypeMismatch(errors.PhaseLookup, "integer or string key", typeName(key))
}

// String renders the message as Message[field, field, ...].
func (m *Message) String() string {
	var b strings.Builder
	b.WriteString("Message[")
	for i, f := range m.Fields() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.String())
	}
	b.WriteByte(']')
	return b.String()
}

func typeMismatch(want, got wire.Type) error {
	return errors.TypeMismatch(errors.PhaseAccess, want.String(), got.String())
}
