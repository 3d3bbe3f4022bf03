// Package binary provides the big-endian primitives of the Fudge encoding:
// a position-tracking Reader whose errors carry the byte offset and a
// wire.Status, a buffered Writer, and typed array packing in either byte order.
package binary
