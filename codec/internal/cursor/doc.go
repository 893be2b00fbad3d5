// Package cursor implements the bounded buffer cursors shared by one
// encode or decode call, and the primitive codec on top of them.
//
// Both cursors keep a capacity and a position. The first failure stores
// the negated error code in both, which makes every later reservation
// fail immediately without buffer access; the first error is the one
// reported.
//
// All multi-byte integers are big-endian. Floats travel as their IEEE754
// bit patterns.
//
// This package is internal to the codec.
package cursor
