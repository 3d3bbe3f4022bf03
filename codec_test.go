package fudge

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/fudge/errors"
	"github.com/wippyai/fudge/transcoder"
	"github.com/wippyai/fudge/wire"
)

func roundTrip(t *testing.T, m *Message, opts ...EnvelopeOption) *Envelope {
	t.Helper()
	env, err := NewEnvelope(m, opts...)
	require.NoError(t, err)
	data, err := env.Encode()
	require.NoError(t, err)
	back, err := Decode(data)
	require.NoError(t, err)
	return back
}

func requireSameFields(t *testing.T, want, got *Message) {
	t.Helper()
	require.Equal(t, want.Len(), got.Len())
	for i, wf := range want.Fields() {
		gf, err := got.FieldAt(i)
		require.NoError(t, err)

		assert.Equal(t, wf.Type(), gf.Type(), "field %d type", i)
		wn, wok := wf.Name()
		gn, gok := gf.Name()
		assert.Equal(t, wok, gok, "field %d has name", i)
		assert.Equal(t, wn, gn, "field %d name", i)
		wo, wok := wf.Ordinal()
		gotOrd, gok := gf.Ordinal()
		assert.Equal(t, wok, gok, "field %d has ordinal", i)
		assert.Equal(t, wo, gotOrd, "field %d ordinal", i)

		if wf.Type() == wire.TypeMessage {
			wm, _ := wf.Message()
			gm, _ := gf.Message()
			requireSameFields(t, wm, gm)
			continue
		}
		assert.Equal(t, wf.Value(), gf.Value(), "field %d value", i)
	}
}

func TestCodecRoundTripAllTypes(t *testing.T) {
	east := time.FixedZone("", 5*3600+45*60)

	inner := NewMessage()
	require.NoError(t, inner.Add("nested", WithName("s")))
	require.NoError(t, inner.AddMessage(NewMessage(), WithName("empty")))

	m := NewMessage()
	require.NoError(t, m.AddIndicator(WithName("indicator")))
	require.NoError(t, m.AddBool(true, WithOrdinal(1)))
	require.NoError(t, m.AddByte(-128, WithName("byte"), WithOrdinal(2)))
	require.NoError(t, m.AddShort(-32768))
	require.NoError(t, m.AddInt(2147483647))
	require.NoError(t, m.AddLong(int64(-1)<<63))
	require.NoError(t, m.AddFloat(1.5))
	require.NoError(t, m.AddDouble(-2.25))
	require.NoError(t, m.Add(""))
	require.NoError(t, m.Add("héllo wörld 🌍", WithName("ünïcode")))
	require.NoError(t, m.AddByteArray(bytes.Repeat([]byte{7}, 300)))
	require.NoError(t, m.AddByteArray(make([]byte, 70000)))
	require.NoError(t, m.AddShortArray([]int{1, -2, 3}))
	require.NoError(t, m.AddIntArray([]int32{-1}))
	require.NoError(t, m.AddLongArray([]int64{1 << 40}))
	require.NoError(t, m.AddFloatArray([]float32{0.5, -0.5}))
	require.NoError(t, m.AddDoubleArray([]float64{}))
	for _, width := range []int{4, 8, 16, 20, 32, 64, 128, 256, 512} {
		require.NoError(t, m.AddFixedByteArray(width, bytes.Repeat([]byte{byte(width)}, width)))
	}
	require.NoError(t, m.AddDate(wire.Date{Year: 2024, Month: 2, Day: 29}))
	require.NoError(t, m.AddDate(wire.Date{Year: -500}))
	require.NoError(t, m.AddDate(wire.Date{Year: transcoder.MinYear, Month: 12, Day: 31}))
	require.NoError(t, m.AddTime(wire.Time{Precision: wire.PrecisionNanosecond, Hour: 23, Minute: 59, Second: 59, Nanosecond: 999_999_999}))
	require.NoError(t, m.AddTime(time.Date(2020, 1, 1, 12, 30, 0, 0, east)))
	require.NoError(t, m.AddDateTime(time.Date(1999, 12, 31, 23, 59, 59, 123456000, time.UTC)))
	require.NoError(t, m.AddMessage(inner, WithName("inner")))
	m.store.fields = append(m.store.fields, field{typ: wire.Type(200), value: []byte{9, 8, 7}, name: "raw", hasName: true})

	back := roundTrip(t, m)
	requireSameFields(t, m, back.Message())
}

func TestCodecHeaderLayout(t *testing.T) {
	env, err := NewEnvelope(NewMessage(), WithDirectives(1), WithSchemaVersion(2), WithTaxonomy(-2))
	require.NoError(t, err)
	data, err := env.Encode()
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 0xff, 0xfe, 0, 0, 0, 8}, data)
}

func TestCodecFieldLayout(t *testing.T) {
	tests := []struct {
		name string
		add  func(m *Message) error
		want []byte
	}{
		{
			name: "fixed width with ordinal",
			add:  func(m *Message) error { return m.AddInt(1, WithOrdinal(2)) },
			want: []byte{0x90, 4, 0, 2, 0, 0, 0, 1},
		},
		{
			name: "named string",
			add:  func(m *Message) error { return m.Add("hi", WithName("a")) },
			want: []byte{0x28, 14, 1, 'a', 2, 'h', 'i'},
		},
		{
			name: "empty string has no size",
			add:  func(m *Message) error { return m.Add("") },
			want: []byte{0x00, 14},
		},
		{
			name: "indicator",
			add:  func(m *Message) error { return m.AddIndicator() },
			want: []byte{0x80, 0},
		},
		{
			name: "two byte size",
			add:  func(m *Message) error { return m.AddByteArray(make([]byte, 256)) },
			want: append([]byte{0x40, 6, 1, 0}, make([]byte, 256)...),
		},
		{
			name: "date packing",
			add:  func(m *Message) error { return m.AddDate(wire.Date{Year: 1, Month: 2, Day: 3}) },
			want: []byte{0x80, 26, 0, 0, 0x02, 0x43},
		},
		{
			name: "time without offset",
			add: func(m *Message) error {
				return m.AddTime(wire.Time{Precision: wire.PrecisionSecond, Hour: 1, Second: 1, Nanosecond: 5})
			},
			want: []byte{0x80, 27, 0x80, 0x70, 0x0e, 0x11, 0, 0, 0, 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMessage()
			require.NoError(t, tt.add(m))
			data, err := BinaryCodec{}.Encode(Header{}, m)
			require.NoError(t, err)
			assert.Equal(t, tt.want, data[headerSize:])
			assert.Equal(t, headerSize+m.store.blockSize(), len(data))
		})
	}
}

func TestCodecDecodeIdentity(t *testing.T) {
	m := NewMessage()
	require.NoError(t, m.AddMessage(NewMessage(), WithName("a")))
	require.NoError(t, m.AddMessage(NewMessage(), WithName("b")))

	back := roundTrip(t, m).Message()
	a1, err := back.FieldAt(0)
	require.NoError(t, err)
	a2, err := back.FieldByName("a")
	require.NoError(t, err)
	b, err := back.FieldByName("b")
	require.NoError(t, err)

	assert.Same(t, a1.Value(), a2.Value())
	assert.NotSame(t, a1.Value(), b.Value())
	assert.NotEqual(t, m.Handle(), back.Handle())
}

func codecStatus(t *testing.T, err error) wire.Status {
	t.Helper()
	requireKind(t, err, errors.KindCodecFailure)
	e, ok := errors.As(err)
	require.True(t, ok)
	st, ok := e.Value.(wire.Status)
	require.True(t, ok, "status %T", e.Value)
	return st
}

func TestCodecDecodeErrors(t *testing.T) {
	header := func(size int, fields ...byte) []byte {
		return append([]byte{0, 0, 0, 0, 0, 0, byte(size >> 8), byte(size)}, fields...)
	}

	tests := []struct {
		name string
		data []byte
		want wire.Status
	}{
		{"short header", []byte{0, 0, 0}, wire.StatusOutOfBytes},
		{"declared too large", header(20), wire.StatusOutOfBytes},
		{"declared too small", header(4), wire.StatusPayloadSizeMismatch},
		{"trailing bytes", append(header(8), 0), wire.StatusTrailingBytes},
		{"truncated field", header(10, 0x80, 4), wire.StatusOutOfBytes},
		{"unknown fixed width", header(10, 0x80, 200), wire.StatusUnknownFixedWidth},
		{"fixed type without fixed flag", header(14, 0x00, 4, 0, 0, 0, 1), wire.StatusInvalidWidthFlag},
		{"variable type with fixed flag", header(10, 0x80, 14), wire.StatusInvalidWidthFlag},
		{"partial array element", header(14, 0x20, 8, 3, 1, 2, 3), wire.StatusPayloadSizeMismatch},
		{"invalid string", header(13, 0x20, 14, 2, 0xff, 0xfe), wire.StatusInvalidUTF8},
		{"invalid name", header(13, 0x88, 0, 2, 0xff, 0xfe), wire.StatusInvalidUTF8},
		{"bad precision", header(18, 0x80, 27, 0x80, 0xf0, 0, 0, 0, 0, 0, 0), wire.StatusInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data)
			assert.Equal(t, tt.want, codecStatus(t, err))
		})
	}
}

func TestCodecEncodeNameTooLong(t *testing.T) {
	m := NewMessage()
	require.NoError(t, m.Add(1, WithName(strings.Repeat("é", 200))))
	env, err := NewEnvelope(m)
	require.NoError(t, err)
	_, err = env.Encode()
	assert.Equal(t, wire.StatusNameTooLong, codecStatus(t, err))
}

func nestedMessage(t *testing.T, levels int) *Message {
	t.Helper()
	m := NewMessage()
	for i := 0; i < levels; i++ {
		parent := NewMessage()
		require.NoError(t, parent.AddMessage(m))
		m = parent
	}
	return m
}

func TestCodecNestingLimit(t *testing.T) {
	back := roundTrip(t, nestedMessage(t, MaxNesting))
	assert.Equal(t, 1, back.Message().Len())

	env, err := NewEnvelope(nestedMessage(t, MaxNesting+1))
	require.NoError(t, err)
	data, err := env.Encode()
	require.NoError(t, err)
	_, err = Decode(data)
	assert.Equal(t, wire.StatusInvalidValue, codecStatus(t, err))
}
