package fudge

import (
	"reflect"
	"time"

	"github.com/wippyai/fudge/errors"
	"github.com/wippyai/fudge/transcoder"
	"github.com/wippyai/fudge/wire"
)

type fieldOptions struct {
	name       string
	typ        wire.Type
	ordinal    uint16
	hasName    bool
	hasOrdinal bool
	hasType    bool
}

// FieldOption configures a field being added.
type FieldOption func(*fieldOptions)

// WithName names the field.
func WithName(name string) FieldOption {
	return func(o *fieldOptions) {
		o.name, o.hasName = name, true
	}
}

// WithOrdinal sets the field ordinal.
func WithOrdinal(ordinal uint16) FieldOption {
	return func(o *fieldOptions) {
		o.ordinal, o.hasOrdinal = ordinal, true
	}
}

// WithType selects the wire type instead of inferring it. For typed adds it
// must agree with the method's type.
func WithType(t wire.Type) FieldOption {
	return func(o *fieldOptions) {
		o.typ, o.hasType = t, true
	}
}

func applyOptions(opts []FieldOption) (fieldOptions, error) {
	var o fieldOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.hasName {
		if err := checkName(errors.PhaseBuild, o.name); err != nil {
			return o, err
		}
	}
	return o, nil
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}

// pending is a converted field not yet committed, plus the child wrapper to
// intern for message fields.
type pending struct {
	child *Message
	f     field
}

// Entry is one field for AddAll.
type Entry struct {
	value any
	opts  []FieldOption
}

// NewEntry describes a field to add: the value and its options, as for Add.
func NewEntry(value any, opts ...FieldOption) Entry {
	return Entry{value: value, opts: opts}
}

// Add appends value as a new field. Without WithType the wire type is
// inferred, in order: nil is an indicator, bool a boolean, any integer a
// long, any float a double, text a string, a *Message a sub-message, and
// wire.Date, wire.Time, wire.DateTime or time.Time a date/time field.
// Integers are never narrowed; use the typed adds for smaller kinds.
//
// With WithType the value goes through that type's conversion. Date and time
// types, and types with no conversion, fail with unsupported_type.
func (m *Message) Add(value any, opts ...FieldOption) error {
	p, err := m.prepare(value, opts)
	if err != nil {
		return err
	}
	m.commit(p)
	return nil
}

// AddAll converts every entry and then appends them all. If any entry fails
// the message is left unchanged.
func (m *Message) AddAll(entries ...Entry) error {
	ps := make([]pending, 0, len(entries))
	for i, e := range entries {
		p, err := m.prepare(e.value, e.opts)
		if err != nil {
			return errors.AtIndex(errors.PhaseBuild, err, i)
		}
		ps = append(ps, p)
	}
	m.commit(ps...)
	return nil
}

func (m *Message) prepare(value any, opts []FieldOption) (pending, error) {
	o, err := applyOptions(opts)
	if err != nil {
		return pending{}, err
	}
	typ := o.typ
	if o.hasType {
		switch {
		case typ == wire.TypeDate || typ == wire.TypeTime || typ == wire.TypeDateTime:
			return pending{}, errors.UnsupportedType(errors.PhaseBuild, int(typ),
				typ.String()+" fields are added with AddDate, AddTime or AddDateTime")
		case !typ.Known():
			return pending{}, errors.UnsupportedType(errors.PhaseBuild, int(typ),
				"no conversion for type "+typ.String())
		}
	} else {
		typ, err = infer(value)
		if err != nil {
			return pending{}, err
		}
	}
	return m.convert(typ, value, o)
}

// infer picks the wire type for an untyped add.
func infer(value any) (wire.Type, error) {
	switch value.(type) {
	case nil:
		return wire.TypeIndicator, nil
	case bool:
		return wire.TypeBoolean, nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, uintptr:
		return wire.TypeLong, nil
	case float32, float64:
		return wire.TypeDouble, nil
	case string:
		return wire.TypeString, nil
	case *Message:
		return wire.TypeMessage, nil
	case wire.Date:
		return wire.TypeDate, nil
	case wire.Time:
		return wire.TypeTime, nil
	case wire.DateTime, time.Time:
		return wire.TypeDateTime, nil
	}

	switch reflect.ValueOf(value).Kind() {
	case reflect.Bool:
		return wire.TypeBoolean, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return wire.TypeLong, nil
	case reflect.Float32, reflect.Float64:
		return wire.TypeDouble, nil
	case reflect.String:
		return wire.TypeString, nil
	}
	return 0, errors.NoInferredType(errors.PhaseBuild, typeName(value))
}

// convert runs the conversion for typ and builds the field.
func (m *Message) convert(typ wire.Type, value any, o fieldOptions) (pending, error) {
	p := pending{f: field{
		typ:        typ,
		name:       o.name,
		hasName:    o.hasName,
		ordinal:    o.ordinal,
		hasOrdinal: o.hasOrdinal,
	}}

	var (
		v   any
		err error
	)
	switch {
	case typ == wire.TypeIndicator:
	case typ == wire.TypeBoolean:
		v = transcoder.ToBool(value)
	case typ == wire.TypeByte:
		v, err = transcoder.ToByte(value)
	case typ == wire.TypeShort:
		v, err = transcoder.ToShort(value)
	case typ == wire.TypeInt:
		v, err = transcoder.ToInt(value)
	case typ == wire.TypeLong:
		v, err = transcoder.ToLong(value)
	case typ == wire.TypeFloat:
		v, err = transcoder.ToFloat(value)
	case typ == wire.TypeDouble:
		v, err = transcoder.ToDouble(value)
	case typ == wire.TypeString:
		v, err = transcoder.ToString(value)
	case typ == wire.TypeByteArray:
		v, err = m.conv.ToBytes(value)
	case typ.IsFixedByteArray():
		width, _ := typ.FixedWidth()
		v, err = m.conv.ToFixedBytes(value, width)
	case typ == wire.TypeShortArray:
		v, err = transcoder.ToShortArray(value)
	case typ == wire.TypeIntArray:
		v, err = transcoder.ToIntArray(value)
	case typ == wire.TypeLongArray:
		v, err = transcoder.ToLongArray(value)
	case typ == wire.TypeFloatArray:
		v, err = transcoder.ToFloatArray(value)
	case typ == wire.TypeDoubleArray:
		v, err = transcoder.ToDoubleArray(value)
	case typ == wire.TypeDate:
		v, err = transcoder.ToDate(value)
	case typ == wire.TypeTime:
		v, err = transcoder.ToTime(value)
	case typ == wire.TypeDateTime:
		v, err = transcoder.ToDateTime(value)
	case typ == wire.TypeMessage:
		var child *Message
		child, err = m.checkChild(value)
		if err == nil {
			v, p.child = child.store, child
		}
	default:
		err = errors.UnsupportedType(errors.PhaseBuild, int(typ), "no conversion for type "+typ.String())
	}
	if err != nil {
		return pending{}, err
	}
	p.f.value = v
	return p, nil
}

func (m *Message) checkChild(value any) (*Message, error) {
	child, ok := value.(*Message)
	if !ok {
		return nil, errors.New(errors.PhaseBuild, errors.KindTypeMismatch).
			GoType(typeName(value)).
			WireType(wire.TypeMessage.String()).
			Mismatch("*fudge.Message", typeName(value)).
			Detail("expected a message").
			Build()
	}
	if child == nil || child.store == nil {
		return nil, errors.InvalidInput(errors.PhaseBuild, "nil message")
	}
	if child.store.reaches(m.store) {
		return nil, errors.InvalidInput(errors.PhaseBuild, "adding the message would create a cycle")
	}
	return child, nil
}

func (m *Message) commit(ps ...pending) {
	for _, p := range ps {
		if p.child != nil {
			m.intern(p.child.store.handle, p.child)
		}
		m.store.fields = append(m.store.fields, p.f)
	}
}

func (m *Message) addAs(typ wire.Type, value any, opts []FieldOption) error {
	o, err := applyOptions(opts)
	if err != nil {
		return err
	}
	if o.hasType && o.typ != typ {
		return errors.InvalidInput(errors.PhaseBuild,
			"WithType("+o.typ.String()+") conflicts with a "+typ.String()+" add")
	}
	p, err := m.convert(typ, value, o)
	if err != nil {
		return err
	}
	m.commit(p)
	return nil
}

// AddIndicator appends a field with no value.
func (m *Message) AddIndicator(opts ...FieldOption) error {
	return m.addAs(wire.TypeIndicator, nil, opts)
}

// AddBool appends the truthiness of value as a boolean.
func (m *Message) AddBool(value any, opts ...FieldOption) error {
	return m.addAs(wire.TypeBoolean, value, opts)
}

// AddByte appends value as a byte, range-checked to -128..127.
func (m *Message) AddByte(value any, opts ...FieldOption) error {
	return m.addAs(wire.TypeByte, value, opts)
}

// AddShort appends value as a short.
func (m *Message) AddShort(value any, opts ...FieldOption) error {
	return m.addAs(wire.TypeShort, value, opts)
}

// AddInt appends value as an int.
func (m *Message) AddInt(value any, opts ...FieldOption) error {
	return m.addAs(wire.TypeInt, value, opts)
}

// AddLong appends value as a long.
func (m *Message) AddLong(value any, opts ...FieldOption) error {
	return m.addAs(wire.TypeLong, value, opts)
}

// AddFloat appends value as a float. Doubles beyond float32 range become ±Inf.
func (m *Message) AddFloat(value any, opts ...FieldOption) error {
	return m.addAs(wire.TypeFloat, value, opts)
}

// AddDouble appends value as a double.
func (m *Message) AddDouble(value any, opts ...FieldOption) error {
	return m.addAs(wire.TypeDouble, value, opts)
}

// AddString appends text given as a string, []byte or []rune.
func (m *Message) AddString(value any, opts ...FieldOption) error {
	return m.addAs(wire.TypeString, value, opts)
}

// AddMessage embeds child by reference. Embedding a message in itself or in
// one of its descendants fails with invalid_input.
func (m *Message) AddMessage(child *Message, opts ...FieldOption) error {
	return m.addAs(wire.TypeMessage, child, opts)
}

// AddByteArray appends text (at the message's text width), bytes or a
// sequence of byte-range integers.
func (m *Message) AddByteArray(value any, opts ...FieldOption) error {
	return m.addAs(wire.TypeByteArray, value, opts)
}

// AddFixedByteArray appends a byte[width] field. The converted value must be
// exactly width bytes.
func (m *Message) AddFixedByteArray(width int, value any, opts ...FieldOption) error {
	typ, ok := wire.FixedByteArrayOf(width)
	if !ok {
		return errors.UnsupportedType(errors.PhaseBuild, width, "no fixed byte array of this width")
	}
	return m.addAs(typ, value, opts)
}

// AddShortArray appends a slice or array as short[].
func (m *Message) AddShortArray(value any, opts ...FieldOption) error {
	return m.addAs(wire.TypeShortArray, value, opts)
}

// AddIntArray appends a slice or array as int[].
func (m *Message) AddIntArray(value any, opts ...FieldOption) error {
	return m.addAs(wire.TypeIntArray, value, opts)
}

// AddLongArray appends a slice or array as long[].
func (m *Message) AddLongArray(value any, opts ...FieldOption) error {
	return m.addAs(wire.TypeLongArray, value, opts)
}

// AddFloatArray appends a slice or array as float[].
func (m *Message) AddFloatArray(value any, opts ...FieldOption) error {
	return m.addAs(wire.TypeFloatArray, value, opts)
}

// AddDoubleArray appends a slice or array as double[].
func (m *Message) AddDoubleArray(value any, opts ...FieldOption) error {
	return m.addAs(wire.TypeDoubleArray, value, opts)
}

// AddDate appends a time.Time's calendar date or a wire.Date.
func (m *Message) AddDate(value any, opts ...FieldOption) error {
	return m.addAs(wire.TypeDate, value, opts)
}

// AddTime appends a time.Time's time of day and zone offset, or a wire.Time.
func (m *Message) AddTime(value any, opts ...FieldOption) error {
	return m.addAs(wire.TypeTime, value, opts)
}

// AddDateTime appends a time.Time or a wire.DateTime.
func (m *Message) AddDateTime(value any, opts ...FieldOption) error {
	return m.addAs(wire.TypeDateTime, value, opts)
}
