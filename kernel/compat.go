package kernel

import "fmt"

// Kernel 2.x/3.x names for the wakeup messages.
const (
	RdyOK      = MsgOK
	RdyTimeout = MsgTimeout
	RdyReset   = MsgReset
)

// SemInit initializes sp with counter n (2.x API; 3.x renamed it
// SemObjectInit).
func (s *System) SemInit(sp *Semaphore, n int32) {
	s.requireMajor("SemInit", MinMajor, 2)
	s.semInit(sp, n)
}

// CreateFromHeap allocates a working area of size bytes from heap and
// starts fn(arg) on it (2.x/3.x API; threads are unnamed).
func (s *System) CreateFromHeap(heap *Heap, size int, prio Priority, fn ThreadFunc, arg any) *Thread {
	s.requireMajor("CreateFromHeap", MinMajor, 3)
	return s.createFromHeap(heap, size, "", prio, fn, arg)
}

// SCnt returns the raw counter under its 2.x/3.x field name.
// Must be called with the lock held.
func (sp *Semaphore) SCnt() int32 {
	return sp.cnt
}

func (s *System) requireMajor(call string, lo, hi int) {
	if s.cfg.Major < lo || s.cfg.Major > hi {
		panic(fmt.Sprintf("kernel: %s is not available in API %d.x", call, s.cfg.Major))
	}
}
