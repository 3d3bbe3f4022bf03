// Package wire defines the Fudge type registry and the wire-level value types
// shared by the converters, the message model and the codec.
//
// # Type ids
//
//	id      name        width
//	0       indicator   0
//	1       boolean     1
//	2-5     byte..long  1, 2, 4, 8
//	6-9     byte[]..long[]   variable
//	10, 11  float, double    4, 8
//	12, 13  float[], double[] variable
//	14      string      variable (UTF-8)
//	15      message     variable
//	17-25   byte[4]..byte[512] fixed
//	26-28   date, time, datetime 4, 8, 12
//
// Ids outside the registry are unknown types. They survive decoding and
// encoding as raw bytes and render as their decimal id.
//
// # Date and time
//
// Date, Time and DateTime mirror the Fudge date/time model: unset date
// components are zero, time zone offsets are whole quarter hours, and a
// Precision travels with every time value.
package wire
