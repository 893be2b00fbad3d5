// Package types defines the compiled type structures for fast transcoding.
//
// CompiledType pairs a schema descriptor with the Go type it is bound to
// and records the struct offsets of sequence members and choice variants,
// so the codec walks values without per-call reflection lookups.
//
// This package is internal to the codec.
package types
