// Package fudge marshals Go values into Fudge messages: self-describing,
// hierarchical collections of typed fields that may carry a name, an
// ordinal, or both.
//
// # Architecture Overview
//
//	fudge/               Message, Field, Envelope and the binary codec
//	├── wire/            Type registry, date/time values, codec status codes
//	├── transcoder/      Checked conversions from Go values to wire values
//	├── errors/          Structured error types
//	├── internal/binary/ Big-endian reader and writer
//	└── cmd/fudgedump/   Command-line inspector and builder
//
// # Quick Start
//
//	msg := fudge.NewMessage()
//	msg.Add(true, fudge.WithName("flag"))
//	msg.AddFloat(1.25, fudge.WithName("ratio"))
//	msg.Add("héllo", fudge.WithName("greeting"), fudge.WithOrdinal(1))
//
//	f, err := msg.FieldByName("greeting")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(f.Value()) // "héllo"
//
//	env, _ := fudge.NewEnvelope(msg, fudge.WithTaxonomy(3))
//	data, err := env.Encode()
//
// # Type Inference
//
// Add infers the wire type from the value: nil is an indicator, bool a
// boolean, every integer kind a long, every float kind a double, text a
// string, a *Message a sub-message, and date/time values a date, time or
// datetime. Use the typed adds (AddByte, AddShortArray, AddFixedByteArray,
// ...) or WithType for any other kind.
//
// # Reading Fields
//
// Strict accessors (Int, Text, LongArray, ...) require the stored type to
// match exactly. Coercing accessors (AsInt, AsDouble, AsBool, ...) convert
// between booleans, integers and floats with range checks:
//
//	stored          AsByte..AsLong          AsFloat, AsDouble   AsBool
//	boolean         1 or 0                  type_mismatch       value
//	integer kinds   range checked           converted           non-zero
//	float, double   truncated, checked      converted           type_mismatch
//
// # Sub-message Identity
//
// Sub-messages are shared, not copied. Each Message interns the wrapper it
// hands out for a child's storage, so reading the same sub-message field
// twice yields the same *Message, while two equal but distinct children get
// distinct wrappers.
//
// # Logging
//
// The package logs through go.uber.org/zap. Logger returns a no-op logger
// until SetLogger installs one.
package fudge
