package gos

// Alloc returns n zeroed bytes from the kernel heap, or nil when the heap
// cannot satisfy the request.
func (o *OS) Alloc(n int) []byte {
	return o.sys.Heap().Alloc(n)
}

// Free returns a block obtained from Alloc or Realloc to the kernel heap.
func (o *OS) Free(b []byte) {
	o.sys.Heap().Free(b)
}

// Realloc grows p to newSize bytes.
//
// If newSize <= oldSize, p is returned as is. Otherwise a new block is
// allocated, the first oldSize bytes of p are copied into it, and the new
// block is returned. p is never freed here; the caller decides whether to
// Free it. On allocation failure Realloc returns nil and p is untouched.
func (o *OS) Realloc(p []byte, oldSize, newSize int) []byte {
	if newSize <= oldSize {
		return p
	}
	b := o.Alloc(newSize)
	if b == nil {
		return nil
	}
	if oldSize > 0 {
		copy(b, p[:min(oldSize, len(p))])
	}
	return b
}
