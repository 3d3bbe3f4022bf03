package transcoder

import (
	"bytes"
	"reflect"
	"strconv"

	"github.com/wippyai/fudge/errors"
	"github.com/wippyai/fudge/transcoder/internal/abi"
	"github.com/wippyai/fudge/wire"
)

// Converter holds the settings that affect byte array conversion. The zero
// value stores text as UTF-8.
type Converter struct {
	TextWidth TextWidth
}

// Default is the converter used by the package-level functions.
var Default = Converter{TextWidth: UTF8}

func (c Converter) width() (TextWidth, error) {
	switch c.TextWidth {
	case 0:
		return UTF8, nil
	case UTF8, UTF16, UTF32:
		return c.TextWidth, nil
	}
	return 0, errors.UnsupportedTextWidth(errors.PhaseConvert, int(c.TextWidth))
}

// Validate reports an error when the converter's text width is unsupported.
func (c Converter) Validate() error {
	_, err := c.width()
	return err
}

// ToBytes converts value to a variable-length byte array. Text is encoded at
// the converter's width; []byte and byte arrays are copied; any other slice or
// array must hold integers in the signed byte range.
func (c Converter) ToBytes(value any) ([]byte, error) {
	switch v := value.(type) {
	case string:
		w, err := c.width()
		if err != nil {
			return nil, err
		}
		return encodeText(v, w)
	case []byte:
		return bytes.Clone(v), nil
	case []int8:
		out := make([]byte, len(v))
		for i, b := range v {
			out[i] = byte(b)
		}
		return out, nil
	}

	rv, ok := abi.Sequence(value)
	if !ok {
		return nil, errors.New(errors.PhaseConvert, errors.KindTypeMismatch).
			GoType(abi.TypeName(value)).
			WireType(wire.TypeByteArray.String()).
			Mismatch(wire.TypeByteArray.String(), abi.TypeName(value)).
			Detail("expected text, bytes or a sequence of bytes").
			Build()
	}
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		out := make([]byte, rv.Len())
		for i := range out {
			out[i] = byte(rv.Index(i).Uint())
		}
		return out, nil
	}
	signed, err := toArray(rv, byteScratch, ToByte)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(signed))
	for i, b := range signed {
		out[i] = byte(b)
	}
	return out, nil
}

// ToFixedBytes converts value like ToBytes and requires the result to be
// exactly width bytes. Width must be one of the fixed byte array widths.
func (c Converter) ToFixedBytes(value any, width int) ([]byte, error) {
	typ, ok := wire.FixedByteArrayOf(width)
	if !ok {
		return nil, errors.UnsupportedType(errors.PhaseConvert, width,
			"no fixed byte array of width "+strconv.Itoa(width))
	}
	b, err := c.ToBytes(value)
	if err != nil {
		return nil, err
	}
	if len(b) != width {
		return nil, errors.SizeMismatch(errors.PhaseConvert, typ.String(), width, len(b))
	}
	return b, nil
}

// ToBytes converts value with the Default converter.
func ToBytes(value any) ([]byte, error) {
	return Default.ToBytes(value)
}

// ToFixedBytes converts value with the Default converter.
func ToFixedBytes(value any, width int) ([]byte, error) {
	return Default.ToFixedBytes(value, width)
}
