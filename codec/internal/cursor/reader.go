package cursor

import (
	"math"

	"github.com/wippyai/oer/errors"
)

// Reader is the decode cursor. Reads after a failure return zero values
// and leave destinations zero-filled.
type Reader struct {
	buf  []byte
	size int
	pos  int

	failPos  int
	failNeed int
	failLen  int
}

func (r *Reader) Init(buf []byte, size int) {
	if size > len(buf) {
		size = len(buf)
	}
	*r = Reader{buf: buf, size: size}
}

// Consume claims n bytes and returns their offset, or a negative value
// after aborting with OutOfData.
func (r *Reader) Consume(n int) int {
	if r.size >= 0 && r.pos+n <= r.size {
		pos := r.pos
		r.pos += n
		return pos
	}
	if r.size >= 0 {
		r.failNeed, r.failLen = n, r.size
	}
	r.Abort(errors.CodeOutOfData)
	return r.pos
}

func (r *Reader) Abort(code int) {
	if r.size >= 0 {
		r.failPos = r.pos
		r.size = -code
		r.pos = -code
	}
}

// FailPos is the offset at which the cursor aborted.
func (r *Reader) FailPos() int {
	return r.failPos
}

func (r *Reader) Failed() bool {
	return r.size < 0
}

// Result is the number of bytes consumed, or the negated error code.
func (r *Reader) Result() int {
	return r.pos
}

// Err builds the structured error for an OutOfData abort.
func (r *Reader) Err() *errors.Error {
	if r.size >= 0 {
		return nil
	}
	if -r.size == errors.CodeOutOfData {
		return errors.OutOfData(r.failPos, r.failNeed, r.failLen)
	}
	return &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindForCode(-r.size)}
}

// ReadBytes fills dst with the next len(dst) bytes, or with zeros on failure.
func (r *Reader) ReadBytes(dst []byte) {
	pos := r.Consume(len(dst))
	if pos < 0 {
		clear(dst)
		return
	}
	copy(dst, r.buf[pos:pos+len(dst)])
}

func (r *Reader) ReadU8() uint8 {
	pos := r.Consume(1)
	if pos < 0 {
		return 0
	}
	return r.buf[pos]
}

func (r *Reader) ReadU16() uint16 {
	pos := r.Consume(2)
	if pos < 0 {
		return 0
	}
	b := r.buf[pos : pos+2]
	return uint16(b[0])<<8 | uint16(b[1])
}

func (r *Reader) ReadU32() uint32 {
	pos := r.Consume(4)
	if pos < 0 {
		return 0
	}
	b := r.buf[pos : pos+4]
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func (r *Reader) ReadU64() uint64 {
	pos := r.Consume(8)
	if pos < 0 {
		return 0
	}
	b := r.buf[pos : pos+8]
	return uint64(b[0])<<56 | uint64(b[1])<<48 | uint64(b[2])<<40 | uint64(b[3])<<32 |
		uint64(b[4])<<24 | uint64(b[5])<<16 | uint64(b[6])<<8 | uint64(b[7])
}

func (r *Reader) ReadF32() float32 {
	return math.Float32frombits(r.ReadU32())
}

func (r *Reader) ReadF64() float64 {
	return math.Float64frombits(r.ReadU64())
}

// ReadBool accepts any non-zero byte as true, not only the 0xFF the
// writer produces.
func (r *Reader) ReadBool() bool {
	return r.ReadU8() != 0
}
