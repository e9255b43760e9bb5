package kernel

import "sync"

// Heap is a memory pool with an optional capacity. Allocation fails once
// the capacity would be exceeded.
type Heap struct {
	mu       sync.Mutex
	capacity int
	used     int
}

// NewHeap returns a heap holding at most capacity bytes. Zero means
// unlimited.
func NewHeap(capacity int) *Heap {
	if capacity < 0 {
		capacity = 0
	}
	return &Heap{capacity: capacity}
}

// Alloc returns a zeroed block of n bytes, or nil if the heap is exhausted.
func (h *Heap) Alloc(n int) []byte {
	if n <= 0 {
		return nil
	}
	h.mu.Lock()
	if h.capacity > 0 && h.used+n > h.capacity {
		h.mu.Unlock()
		return nil
	}
	h.used += n
	h.mu.Unlock()
	return make([]byte, n)
}

// Free returns a block obtained from Alloc.
func (h *Heap) Free(b []byte) {
	n := cap(b)
	if n == 0 {
		return
	}
	h.mu.Lock()
	h.used -= n
	if h.used < 0 {
		h.used = 0
	}
	h.mu.Unlock()
}

// Status returns the bytes in use and the bytes still available.
// Available is -1 for an unlimited heap.
func (h *Heap) Status() (used, available int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.capacity == 0 {
		return h.used, -1
	}
	return h.used, h.capacity - h.used
}
