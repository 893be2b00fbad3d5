package codec

import (
	"sync"

	"github.com/wippyai/oer/errors"
)

const (
	// Pool limits to prevent memory bloat
	poolMaxCap  = 64 << 10 // largest scratch buffer kept
	poolInitCap = 256
)

// scratch buffer pool for Marshal
var bufPool = sync.Pool{
	New: func() any {
		buf := make([]byte, 0, poolInitCap)
		return &buf
	},
}

// getBuf returns a pooled buffer resliced to exactly size bytes.
func getBuf(size int) *[]byte {
	buf := bufPool.Get().(*[]byte)
	if cap(*buf) < size {
		*buf = make([]byte, size)
	}
	*buf = (*buf)[:size]
	return buf
}

func putBuf(buf *[]byte) {
	if buf == nil || cap(*buf) > poolMaxCap {
		return // reject oversized
	}
	*buf = (*buf)[:0]
	bufPool.Put(buf)
}

// marshalGrow runs enc against pooled buffers, starting small and doubling
// up to limit whenever the destination runs out. The written bytes are
// copied out so the buffer can go back to the pool.
func marshalGrow(limit int, enc func(dst []byte) (int, error)) ([]byte, error) {
	size := min(poolInitCap, limit)
	for {
		buf := getBuf(size)
		n, err := enc(*buf)
		if err == nil {
			out := make([]byte, n)
			copy(out, (*buf)[:n])
			putBuf(buf)
			return out, nil
		}
		putBuf(buf)

		if errors.CodeOf(err) != errors.CodeBufferTooSmall || size >= limit {
			return nil, err
		}
		if size > limit/2 {
			size = limit
		} else {
			size *= 2
		}
	}
}
