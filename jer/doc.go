// Package jer renders schema-typed values as JSON following the JSON
// Encoding Rules, and parses them back.
//
// Values use the dynamic form of the codec package, so a value decoded
// from OER with codec.DecodeValue marshals to JER unchanged, and the
// result of Unmarshal encodes to OER with codec.EncodeValue.
//
//	Type            JSON
//	──────────────────────────────────────────────────────────
//	bool            true / false
//	integers        number
//	reals           number, or "INF", "-INF", "NaN"
//	octets(n)       hex string of n bytes (upper case on output)
//	sequence        object with every member, in declared order
//	choice          object with one key, the variant name
//	                (null payload for an empty variant)
//	sequence-of     array
//
// Unmarshal accepts JSONC: line and block comments and trailing commas
// are stripped before parsing.
package jer
