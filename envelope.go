package fudge

import (
	stderrors "errors"

	"go.uber.org/zap"

	"github.com/wippyai/fudge/errors"
	"github.com/wippyai/fudge/wire"
)

// Envelope binds header metadata to one payload message.
type Envelope struct {
	payload *Message
	codec   Codec
	header  Header
}

// EnvelopeOption configures an Envelope.
type EnvelopeOption func(*Envelope)

// WithDirectives sets the header directives byte.
func WithDirectives(d byte) EnvelopeOption {
	return func(e *Envelope) { e.header.Directives = d }
}

// WithSchemaVersion sets the header schema version.
func WithSchemaVersion(v byte) EnvelopeOption {
	return func(e *Envelope) { e.header.SchemaVersion = v }
}

// WithTaxonomy sets the header taxonomy id.
func WithTaxonomy(t int16) EnvelopeOption {
	return func(e *Envelope) { e.header.Taxonomy = t }
}

// WithCodec replaces the default BinaryCodec.
func WithCodec(c Codec) EnvelopeOption {
	return func(e *Envelope) { e.codec = c }
}

// NewEnvelope wraps payload, which is shared rather than copied.
func NewEnvelope(payload *Message, opts ...EnvelopeOption) (*Envelope, error) {
	if payload == nil {
		return nil, errors.InvalidInput(errors.PhaseBuild, "envelope payload is nil")
	}
	e := newEnvelope(opts)
	e.payload = payload
	return e, nil
}

func newEnvelope(opts []EnvelopeOption) *Envelope {
	e := &Envelope{codec: BinaryCodec{}}
	for _, opt := range opts {
		opt(e)
	}
	if e.codec == nil {
		e.codec = BinaryCodec{}
	}
	return e
}

// Directives returns the header directives byte.
func (e *Envelope) Directives() byte {
	return e.header.Directives
}

// SchemaVersion returns the header schema version.
func (e *Envelope) SchemaVersion() byte {
	return e.header.SchemaVersion
}

// Taxonomy returns the header taxonomy id.
func (e *Envelope) Taxonomy() int16 {
	return e.header.Taxonomy
}

// Message returns the payload.
func (e *Envelope) Message() *Message {
	return e.payload
}

// Header returns the envelope metadata.
func (e *Envelope) Header() Header {
	return e.header
}

// Encode serializes the envelope with its codec.
func (e *Envelope) Encode() ([]byte, error) {
	data, err := e.codec.Encode(e.header, e.payload)
	if err != nil {
		return nil, codecFailure(errors.PhaseEncode, err)
	}
	Logger().Debug("encoded envelope",
		zap.Uint64("message", uint64(e.payload.Handle())),
		zap.Int("bytes", len(data)))
	return data, nil
}

// Decode parses data into an envelope. Only WithCodec is meaningful among
// opts; header values come from data.
func Decode(data []byte, opts ...EnvelopeOption) (*Envelope, error) {
	e := newEnvelope(opts)
	h, m, err := e.codec.Decode(data)
	if err != nil {
		return nil, codecFailure(errors.PhaseDecode, err)
	}
	if m == nil {
		return nil, codecFailure(errors.PhaseDecode, wire.StatusNilPayload)
	}
	e.header, e.payload = h, m
	Logger().Debug("decoded envelope",
		zap.Uint64("message", uint64(m.Handle())),
		zap.Int("fields", m.Len()),
		zap.Int("bytes", len(data)))
	return e, nil
}

// codecFailure passes *errors.Error values through and reports anything
// else as codec_failure with the status found in err's chain.
func codecFailure(phase errors.Phase, err error) error {
	if e, ok := errors.As(err); ok {
		return e
	}
	status := wire.StatusCodecError
	var st wire.Status
	if stderrors.As(err, &st) {
		status = st
	}
	Logger().Warn("codec failure",
		zap.String("phase", string(phase)),
		zap.Stringer("status", status),
		zap.Error(err))
	return errors.CodecFailure(phase, status, err)
}
