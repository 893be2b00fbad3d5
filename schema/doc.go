// Package schema defines the descriptor trees consumed by the OER codec.
//
// A descriptor describes the shape of a composite type: fixed-width scalars,
// fixed-length octet strings, sequences (ordered members), choices (tagged
// variants) and bounded sequence-of lists. Descriptors are normally declared
// by hand or by a generator next to the Go types they describe:
//
//	var Message = schema.Sequence(
//		schema.Member("id", schema.U32()),
//		schema.Member("body", schema.Choice(
//			schema.Variant("ping", nil),
//			schema.Variant("data", schema.Octets(16)),
//		)),
//		schema.Member("tags", schema.SequenceOf(schema.U8(), 4)),
//	)
//
// FromWIT imports descriptors from WIT type definitions; ParseYAML reads them
// from YAML documents.
//
// Descriptors are read-only once built and safe for concurrent use.
package schema
