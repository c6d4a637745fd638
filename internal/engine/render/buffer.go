package render

// bufferAlign is the granularity of dynamic buffer allocations in bytes.
const bufferAlign = 256

// DynamicBuffer tracks the size of a GPU buffer that grows to fit its
// contents and never shrinks.
type DynamicBuffer struct {
	size int
}

// Size returns the current allocation in bytes.
func (b *DynamicBuffer) Size() int {
	return b.size
}

// Reserve makes room for required bytes. It reports whether the buffer had
// to be reallocated, in which case the caller recreates the GPU buffer with
// Size bytes.
func (b *DynamicBuffer) Reserve(required int) bool {
	if required <= b.size {
		return false
	}
	n := max(required, 2*b.size)
	b.size = (n + bufferAlign - 1) / bufferAlign * bufferAlign
	return true
}
