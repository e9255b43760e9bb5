package gos

import (
	"fortio.org/safecast"

	"gfxport/kernel"
)

// Priority is the layer's abstract thread priority. Any value is valid;
// it is scaled onto the kernel's native range.
type Priority uint8

const (
	LowPriority    Priority = 0
	NormalPriority Priority = 128
	HighPriority   Priority = 255
)

// ThreadFunc is a thread body. The return value is reported by
// ThreadHandle.Wait.
type ThreadFunc func(arg any) int

// ThreadHandle refers to a running or finished thread. The kernel owns
// the thread; the handle only observes it. A nil handle means creation
// failed.
type ThreadHandle struct {
	t    *kernel.Thread
	exit int
}

// ThreadCreate starts fn(arg) in a new thread.
//
// With stack == nil the working area is allocated from the kernel heap;
// size 0 selects the configured default stack size, and creation fails
// if there is none. With a caller stack, size must be positive and fit
// in it; the memory must outlive the thread.
//
// It returns nil if the arguments are invalid or the kernel could not
// provide the thread. Nothing is left running on failure.
func (o *OS) ThreadCreate(stack []byte, size int, prio Priority, fn ThreadFunc, arg any) *ThreadHandle {
	if fn == nil || size < 0 {
		return nil
	}
	h := &ThreadHandle{}
	body := func(arg any) kernel.Msg {
		h.exit = fn(arg)
		return kernel.MsgOK
	}
	native := o.nativePriority(prio)

	var t *kernel.Thread
	if stack == nil {
		if size == 0 {
			size = o.cfg.GOS.DefaultStackSize
		}
		if size <= 0 {
			return nil
		}
		t = o.port.createFromHeap(size, native, body, arg)
	} else {
		if size == 0 || size > len(stack) {
			return nil
		}
		t = o.port.createStatic(stack[:size], native, body, arg)
	}
	if t == nil {
		return nil
	}
	h.t = t
	return h
}

// nativePriority scales p linearly onto LowPrio..HighPrio. The mapping is
// monotonic and hits both ends of the native range.
func (o *OS) nativePriority(p Priority) kernel.Priority {
	lo := uint32(kernel.LowPrio)
	hi := uint32(o.sys.HighPrio())
	n := lo + uint32(p)*(hi-lo)/uint32(HighPriority)
	v, err := safecast.Conv[uint8](n)
	if err != nil {
		return o.sys.HighPrio()
	}
	return kernel.Priority(v)
}

// Wait blocks until the thread returns and reports its return value.
func (h *ThreadHandle) Wait() int {
	h.t.Wait()
	return h.exit
}

// Done is closed when the thread returns.
func (h *ThreadHandle) Done() <-chan struct{} { return h.t.Done() }

// Name returns the kernel thread name, empty on kernels without names.
func (h *ThreadHandle) Name() string { return h.t.Name() }

// Priority returns the native priority the thread was given.
func (h *ThreadHandle) Priority() kernel.Priority { return h.t.Priority() }

// Close releases the handle. The thread itself keeps running; h must
// not be used afterwards.
func (h *ThreadHandle) Close() {
	if h == nil {
		return
	}
	h.t = nil
}

// Valid reports whether h refers to a thread.
func (h *ThreadHandle) Valid() bool { return h != nil && h.t != nil }
