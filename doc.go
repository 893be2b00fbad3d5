// Package oer is a schema-driven codec for a subset of ASN.1 Octet
// Encoding Rules (OER).
//
// A schema descriptor describes the shape of a value; the codec walks the
// descriptor and a Go value in lockstep, writing to or reading from a
// caller-owned, bounded byte buffer. The first failure latches an error
// code in the buffer cursor, after which all further buffer work is
// skipped; the caller gets the first error, never a later one.
//
// # Architecture Overview
//
//	oer/
//	├── schema/          Descriptor trees, validation, WIT and YAML import
//	├── codec/           Compiled and dynamic OER encode/decode
//	├── jer/             JSON rendering of descriptor values
//	├── wasmmem/         Codec over wazero guest linear memory
//	├── errors/          Structured errors with numeric codes and paths
//	└── examples/        Runnable usage examples
//
// # Quick Start
//
//	var Point = schema.Sequence(
//		schema.Member("x", schema.S32()),
//		schema.Member("y", schema.S32()),
//	)
//
//	type P struct{ X, Y int32 }
//
//	buf := make([]byte, 16)
//	n, err := codec.Encode(buf, Point, &P{X: 1, Y: -1})
//	if err != nil {
//	    // n is the negated code, err carries the member path
//	}
//
//	var out P
//	_, err = codec.Decode(&out, Point, buf[:n])
//
// # Error Codes
//
// Entry points return the byte count on success and the negated code on
// failure, alongside an *errors.Error:
//
//	12   buffer too small (encode)
//	22   invalid input, schema or binding
//	280  bad choice
//	281  bad length
//	282  out of data (decode)
//
// # Thread Safety
//
// Descriptors, compiled bindings and the package-level codecs are safe for
// concurrent use. Each call owns its buffer and cursor.
package oer
