// Package transcoder converts Go host values into Fudge wire values.
//
// Every conversion is checked: integers are range-checked against the
// target's signed range, fixed byte arrays must match their width exactly,
// time zone offsets must be whole quarter hours, and a failed array
// conversion commits nothing.
//
//	┌────────────────────────────────────────────────────┐
//	│ Go value (any) → [transcoder] → wire payload       │
//	└────────────────────────────────────────────────────┘
//
// # Conversions
//
//	Target          Accepts                                  Go result
//	─────────────────────────────────────────────────────────────────────
//	byte..long      integers, floats (truncated toward 0)    int8..int64
//	float, double   integers, floats                         float32, float64
//	boolean         anything (truthiness)                    bool
//	string          string, []byte, []rune (valid UTF-8)     string
//	byte[], byte[N] text, []byte, sequences of -128..127     []byte
//	short[]..       slices and arrays, per-element checks    []int16..
//	date/time       time.Time, wire structs, raw components  wire.Date..
//
// # Failures
//
//	not_numeric                    value is not a number
//	overflow                       integer outside [low, high]
//	size_mismatch                  fixed byte array of the wrong length
//	invalid_component_range        date/time component outside its range
//	unsupported_offset_resolution  offset not a multiple of 15 minutes
//	unsupported_text_width         Converter.TextWidth not 1, 2 or 4
//
// Array element failures carry the element index in the error path.
//
// # Text widths
//
// Text stored as a byte array is encoded at the Converter's TextWidth:
// UTF-8 (default), UTF-16LE or UTF-32LE. Strings themselves are always
// stored as UTF-8 and never altered.
package transcoder
