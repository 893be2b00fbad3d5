package cursor

import (
	"math"

	"github.com/wippyai/oer/errors"
)

// Writer is the encode cursor. The zero value is unusable; call Init.
//
// A failed Writer has size == pos == -code. Since pos+n <= size is then
// false for every n > 0, later appends fail without touching buf.
type Writer struct {
	buf  []byte
	size int
	pos  int

	// first failure, kept for diagnostics
	failPos  int
	failNeed int
	failCap  int
}

func (w *Writer) Init(buf []byte, size int) {
	if size > len(buf) {
		size = len(buf)
	}
	*w = Writer{buf: buf, size: size}
}

// Reserve claims n bytes and returns their offset, or a negative value
// after aborting with BufferTooSmall.
func (w *Writer) Reserve(n int) int {
	if w.size >= 0 && w.pos+n <= w.size {
		pos := w.pos
		w.pos += n
		return pos
	}
	if w.size >= 0 {
		w.failNeed, w.failCap = n, w.size
	}
	w.Abort(errors.CodeBufferTooSmall)
	return w.pos
}

// Abort latches code unless an earlier error is already latched.
func (w *Writer) Abort(code int) {
	if w.size >= 0 {
		w.failPos = w.pos
		w.size = -code
		w.pos = -code
	}
}

// FailPos is the offset at which the cursor aborted.
func (w *Writer) FailPos() int {
	return w.failPos
}

func (w *Writer) Failed() bool {
	return w.size < 0
}

// Result is the number of bytes written, or the negated error code.
func (w *Writer) Result() int {
	return w.pos
}

// Err builds the structured error for a BufferTooSmall abort.
// Other codes are latched by the caller together with its own error.
func (w *Writer) Err() *errors.Error {
	if w.size >= 0 {
		return nil
	}
	if -w.size == errors.CodeBufferTooSmall {
		return errors.BufferTooSmall(w.failPos, w.failNeed, w.failCap)
	}
	return &errors.Error{Phase: errors.PhaseEncode, Kind: errors.KindForCode(-w.size)}
}

func (w *Writer) AppendBytes(b []byte) {
	pos := w.Reserve(len(b))
	if pos < 0 {
		return
	}
	copy(w.buf[pos:], b)
}

func (w *Writer) AppendU8(v uint8) {
	pos := w.Reserve(1)
	if pos < 0 {
		return
	}
	w.buf[pos] = v
}

func (w *Writer) AppendU16(v uint16) {
	pos := w.Reserve(2)
	if pos < 0 {
		return
	}
	w.buf[pos] = byte(v >> 8)
	w.buf[pos+1] = byte(v)
}

func (w *Writer) AppendU32(v uint32) {
	pos := w.Reserve(4)
	if pos < 0 {
		return
	}
	b := w.buf[pos : pos+4]
	b[0] = byte(v >> 24)
	b[1] = byte(v >> 16)
	b[2] = byte(v >> 8)
	b[3] = byte(v)
}

func (w *Writer) AppendU64(v uint64) {
	pos := w.Reserve(8)
	if pos < 0 {
		return
	}
	b := w.buf[pos : pos+8]
	b[0] = byte(v >> 56)
	b[1] = byte(v >> 48)
	b[2] = byte(v >> 40)
	b[3] = byte(v >> 32)
	b[4] = byte(v >> 24)
	b[5] = byte(v >> 16)
	b[6] = byte(v >> 8)
	b[7] = byte(v)
}

// AppendF32 writes the IEEE754 bit pattern unchanged, NaN payloads included.
func (w *Writer) AppendF32(v float32) {
	w.AppendU32(math.Float32bits(v))
}

func (w *Writer) AppendF64(v float64) {
	w.AppendU64(math.Float64bits(v))
}

func (w *Writer) AppendBool(v bool) {
	if v {
		w.AppendU8(0xff)
	} else {
		w.AppendU8(0)
	}
}
