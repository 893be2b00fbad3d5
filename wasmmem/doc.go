// Package wasmmem runs the OER codec directly over the linear memory of a
// wazero module instance.
//
// A guest hands the host an (offset, size) region; the host encodes into
// or decodes from that region without an intermediate copy:
//
//	mc, err := wasmmem.New(mod, nil)
//	n, err := mc.Encode(ptr, size, msgType, &msg)
//
// The region is resolved once per call. A region that does not fit the
// current memory fails with an out_of_bounds error before any byte is
// touched; otherwise the usual codec contract applies, including
// BufferTooSmall when the value does not fit the region.
//
// Memory growth invalidates views, so a Codec must not be used
// concurrently with guest code that may grow memory.
package wasmmem
