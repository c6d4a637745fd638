// Package arena provides the per-frame transient allocator. Everything
// allocated from it is released at once by Reset at the end of the frame.
package arena

import (
	"fmt"
	"unsafe"
)

// DefaultChunkSize is the size of the first chunk.
const DefaultChunkSize = 64 * 1024

// Arena is a chunked bump allocator. Allocations are carved linearly from
// the current chunk; when it is full a new chunk is started. Reset keeps
// the first chunk and drops the rest.
type Arena struct {
	chunkSize int
	chunks    [][]byte
	current   int
	used      int
	frames    uint64
}

// New creates an arena whose chunks are at least chunkSize bytes.
func New(chunkSize int) *Arena {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Arena{
		chunkSize: chunkSize,
		chunks:    [][]byte{make([]byte, 0, chunkSize)},
	}
}

// Alloc returns n zeroed bytes owned by the arena until the next Reset.
func (a *Arena) Alloc(n int) []byte {
	buf := a.reserve(n)
	clear(buf)
	a.commit(n)
	return buf
}

// Sprintf formats into arena memory. The returned string is only valid
// until the next Reset.
func (a *Arena) Sprintf(format string, args ...any) string {
	c := a.chunks[a.current]
	tail := c[len(c):cap(c)]
	out := fmt.Appendf(tail[:0], format, args...)
	if len(out) == 0 {
		return ""
	}
	if len(tail) == 0 || &out[0] != &tail[0] {
		// Did not fit in the current chunk; copy into a fresh one.
		buf := a.reserve(len(out))
		copy(buf, out)
		out = buf
	}
	a.commit(len(out))
	return unsafe.String(unsafe.SliceData(out), len(out))
}

// reserve returns n bytes at the end of a chunk with room for them,
// without committing them.
func (a *Arena) reserve(n int) []byte {
	c := a.chunks[a.current]
	if cap(c)-len(c) < n {
		a.grow(n)
		c = a.chunks[a.current]
	}
	return c[len(c) : len(c)+n]
}

func (a *Arena) commit(n int) {
	c := a.chunks[a.current]
	a.chunks[a.current] = c[:len(c)+n]
	a.used += n
}

func (a *Arena) grow(n int) {
	a.chunks = append(a.chunks, make([]byte, 0, max(a.chunkSize, n)))
	a.current = len(a.chunks) - 1
}

// Used returns the number of bytes handed out since the last Reset.
func (a *Arena) Used() int {
	return a.used
}

// Chunks returns the number of chunks currently held.
func (a *Arena) Chunks() int {
	return len(a.chunks)
}

// Frames returns how many times Reset has been called.
func (a *Arena) Frames() uint64 {
	return a.frames
}

// Reset releases every allocation at once. A frame that overflowed into
// extra chunks makes the first chunk large enough for that frame.
func (a *Arena) Reset() {
	first := a.chunks[0][:0]
	if len(a.chunks) > 1 && a.used > cap(first) {
		first = make([]byte, 0, a.used)
	}
	clear(a.chunks)
	a.chunks = a.chunks[:1]
	a.chunks[0] = first
	a.current = 0
	a.used = 0
	a.frames++
}
