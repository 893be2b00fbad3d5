// Package codec provides OER encoding and decoding driven by schema
// descriptors.
//
// One generic walker interprets a schema.Type tree; there is no generated
// code per type. Two bindings share the wire format:
//
//	┌──────────────────────────────────────────────────────────┐
//	│ Go struct  ←→ [Encoder/Decoder] ←→ OER bytes             │
//	│ any value  ←→ [EncodeValue/DecodeValue] ←→ OER bytes     │
//	└──────────────────────────────────────────────────────────┘
//
// # Wire Format
//
//	Type            Encoding
//	──────────────────────────────────────────────────────────
//	bool            1 byte, 0xFF / 0x00 (decode: non-zero is true)
//	u8..u64         1/2/4/8 bytes, big-endian
//	s8..s64         two's complement, big-endian
//	f32/f64         IEEE754 bits, big-endian, NaN payload kept
//	octets(n)       exactly n raw bytes
//	sequence        members in declared order
//	choice          tag 0x80+index, then payload (may be empty)
//	sequence-of     0x01, count byte, then count elements
//
// # Go Binding
//
//	Schema          Go type
//	──────────────────────────────────────────────────────────
//	bool            bool
//	u8..s64         uint8..int64 of the same width
//	f32/f64         float32/float64
//	octets(n)       [n]byte
//	sequence        struct; members matched by oer:"name" tag,
//	                case-insensitive name, or kebab-case name
//	choice          struct with one pointer field per variant;
//	                exactly one is non-nil
//	sequence-of     slice of the element binding
//
// # Type Compilation
//
// The Compiler validates the descriptor, checks the Go type against it and
// records struct offsets once. Encode and decode then walk the value with
// unsafe pointer arithmetic and no per-call reflection lookups.
//
// # Errors
//
// Every entry point returns a byte count and an error. On failure the count
// is the negated numeric code and the error is an *errors.Error with the
// same code:
//
//	[encode] buffer_too_small at b.y: need 2 bytes at offset 3, capacity 4
//	[decode] bad_choice at b: unknown tag 0x82
//
// The first failure wins. Decoding zeroes everything after the failure
// point, so a partially decoded value never carries stale data.
//
// # Thread Safety
//
// Compiler, CompiledType, Encoder and Decoder are safe for concurrent use.
// Each call owns its cursor.
package codec
