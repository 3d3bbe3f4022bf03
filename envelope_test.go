package fudge

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/fudge/errors"
	"github.com/wippyai/fudge/wire"
)

func TestNewEnvelope(t *testing.T) {
	_, err := NewEnvelope(nil)
	requireKind(t, err, errors.KindInvalidInput)

	m := NewMessage()
	env, err := NewEnvelope(m, WithDirectives(3), WithSchemaVersion(4), WithTaxonomy(-5))
	require.NoError(t, err)
	assert.Same(t, m, env.Message())
	assert.Equal(t, byte(3), env.Directives())
	assert.Equal(t, byte(4), env.SchemaVersion())
	assert.Equal(t, int16(-5), env.Taxonomy())
	assert.Equal(t, Header{Directives: 3, SchemaVersion: 4, Taxonomy: -5}, env.Header())
}

func TestEnvelopeRoundTrip(t *testing.T) {
	m := NewMessage()
	require.NoError(t, m.Add(true, WithName("flag")))
	require.NoError(t, m.AddFloat(1.25, WithName("ratio")))
	require.NoError(t, m.Add("héllo", WithName("greeting"), WithOrdinal(1)))

	back := roundTrip(t, m, WithDirectives(1), WithSchemaVersion(2), WithTaxonomy(300))
	assert.Equal(t, Header{Directives: 1, SchemaVersion: 2, Taxonomy: 300}, back.Header())
	requireSameFields(t, m, back.Message())

	// the payload stays shared, so later additions are encoded
	env, err := NewEnvelope(m)
	require.NoError(t, err)
	require.NoError(t, m.AddIndicator(WithName("late")))
	data, err := env.Encode()
	require.NoError(t, err)
	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, 4, decoded.Message().Len())
}

type stubCodec struct {
	encodeErr error
	decodeErr error
	decoded   *Message
}

func (c stubCodec) Encode(Header, *Message) ([]byte, error) {
	if c.encodeErr != nil {
		return nil, c.encodeErr
	}
	return []byte{1}, nil
}

func (c stubCodec) Decode([]byte) (Header, *Message, error) {
	return Header{Taxonomy: 9}, c.decoded, c.decodeErr
}

func TestEnvelopeCodecFailures(t *testing.T) {
	m := NewMessage()

	tests := []struct {
		name   string
		err    error
		status wire.Status
	}{
		{"plain error", stderrors.New("boom"), wire.StatusCodecError},
		{"bare status", wire.StatusInvalidValue, wire.StatusInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := NewEnvelope(m, WithCodec(stubCodec{encodeErr: tt.err}))
			require.NoError(t, err)
			_, err = env.Encode()
			assert.Equal(t, tt.status, codecStatus(t, err))
			assert.ErrorIs(t, err, tt.err)
			assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseEncode, Kind: errors.KindCodecFailure})

			_, err = Decode([]byte{1}, WithCodec(stubCodec{decodeErr: tt.err}))
			assert.Equal(t, tt.status, codecStatus(t, err))
			assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindCodecFailure})
		})
	}

	structured := errors.InvalidInput(errors.PhaseEncode, "rejected")
	env, err := NewEnvelope(m, WithCodec(stubCodec{encodeErr: structured}))
	require.NoError(t, err)
	_, err = env.Encode()
	assert.Same(t, structured, err)

	_, err = Decode([]byte{1}, WithCodec(stubCodec{}))
	assert.Equal(t, wire.StatusNilPayload, codecStatus(t, err))

	decoded, err := Decode([]byte{1}, WithCodec(stubCodec{decoded: m}))
	require.NoError(t, err)
	assert.Same(t, m, decoded.Message())
	assert.Equal(t, int16(9), decoded.Taxonomy())
}

func TestEnvelopeLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })

	env, err := NewEnvelope(NewMessage())
	require.NoError(t, err)
	data, err := env.Encode()
	require.NoError(t, err)
	_, err = Decode(data)
	require.NoError(t, err)
	_, err = Decode(data[:4])
	require.Error(t, err)

	assert.Equal(t, 1, logs.FilterMessage("encoded envelope").Len())
	assert.Equal(t, 1, logs.FilterMessage("decoded envelope").Len())
	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warnings, 1)
	assert.Equal(t, "codec failure", warnings[0].Message)
	assert.Equal(t, "decode", warnings[0].ContextMap()["phase"])
}
