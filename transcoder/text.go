package transcoder

import (
	"reflect"
	"strconv"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"

	"github.com/wippyai/fudge/errors"
	"github.com/wippyai/fudge/transcoder/internal/abi"
	"github.com/wippyai/fudge/wire"
)

// TextWidth is the code unit width, in bytes, used when text is stored as a
// byte array.
type TextWidth int

const (
	UTF8  TextWidth = 1
	UTF16 TextWidth = 2 // little-endian, no BOM
	UTF32 TextWidth = 4 // little-endian, no BOM
)

func (w TextWidth) String() string {
	switch w {
	case UTF8:
		return "utf-8"
	case UTF16:
		return "utf-16le"
	case UTF32:
		return "utf-32le"
	}
	return "unsupported"
}

// WidthOf returns the narrowest code unit width that holds every rune of s in
// a single unit: UTF8 for ASCII, UTF16 for the Basic Multilingual Plane and
// UTF32 otherwise.
func WidthOf(s string) TextWidth {
	i := 0
	for i < len(s) && s[i] < utf8.RuneSelf {
		i++
	}
	if i == len(s) {
		return UTF8
	}
	for _, r := range s[i:] {
		if r > 0xFFFF {
			return UTF32
		}
	}
	return UTF16
}

// ToString converts text to a Fudge string. It accepts string, []byte and
// []rune values and any type whose kind is string; content must be valid
// UTF-8 and is never altered.
func ToString(value any) (string, error) {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case []rune:
		for i, r := range v {
			if !utf8.ValidRune(r) {
				seg := "[" + strconv.Itoa(i) + "]"
				return "", errors.New(errors.PhaseConvert, errors.KindInvalidUTF8).
					Path(seg).
					WireType(wire.TypeString.String()).
					Value(r).
					Detail("invalid rune %U", r).
					Build()
			}
		}
		s = string(v)
	default:
		rv := reflect.ValueOf(value)
		if !rv.IsValid() || rv.Kind() != reflect.String {
			return "", errors.New(errors.PhaseConvert, errors.KindTypeMismatch).
				GoType(abi.TypeName(value)).
				WireType(wire.TypeString.String()).
				Mismatch(wire.TypeString.String(), abi.TypeName(value)).
				Detail("value is not text").
				Build()
		}
		s = rv.String()
	}

	if len(s) > abi.MaxStringSize {
		return "", errors.New(errors.PhaseConvert, errors.KindInvalidInput).
			WireType(wire.TypeString.String()).
			Detail("string of %d bytes exceeds limit %d", len(s), abi.MaxStringSize).
			Build()
	}
	if WidthOf(s) != UTF8 && !utf8.ValidString(s) {
		return "", errors.InvalidUTF8(errors.PhaseConvert, nil, []byte(s))
	}
	return s, nil
}

// encodeText encodes s with code units of width w.
func encodeText(s string, w TextWidth) ([]byte, error) {
	switch w {
	case UTF8:
		return []byte(s), nil
	case UTF16:
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder().Bytes([]byte(s))
	case UTF32:
		return utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM).NewEncoder().Bytes([]byte(s))
	}
	return nil, errors.UnsupportedTextWidth(errors.PhaseConvert, int(w))
}

// DecodeText is the inverse of the text path of ToBytes.
func DecodeText(b []byte, w TextWidth) (string, error) {
	var (
		out []byte
		err error
	)
	switch w {
	case UTF8:
		out = b
	case UTF16:
		out, err = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().Bytes(b)
	case UTF32:
		out, err = utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM).NewDecoder().Bytes(b)
	default:
		return "", errors.UnsupportedTextWidth(errors.PhaseAccess, int(w))
	}
	if err != nil {
		return "", errors.New(errors.PhaseAccess, errors.KindInvalidUTF8).Cause(err).Build()
	}
	if !utf8.Valid(out) {
		return "", errors.InvalidUTF8(errors.PhaseAccess, nil, out)
	}
	return string(out), nil
}
