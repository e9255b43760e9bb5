package kernel

// Priority is a native thread priority.
type Priority uint8

const (
	// IdlePrio is reserved for the idle context.
	IdlePrio Priority = 0
	// LowPrio is the lowest priority a user thread may have.
	LowPrio Priority = 1
)

// MinStackSize is the smallest working area a thread can be built over.
const MinStackSize = 64

// ThreadFunc is a thread body. Its return value is the exit message seen
// by Thread.Wait.
type ThreadFunc func(arg any) Msg

// Thread is a kernel execution context.
type Thread struct {
	name string
	prio Priority

	wa       []byte
	fromHeap *Heap

	done chan struct{}
	exit Msg
}

// CreateStatic starts fn(arg) over the caller-owned working area wa.
// It returns nil if wa is smaller than MinStackSize or fn is nil.
func (s *System) CreateStatic(wa []byte, prio Priority, fn ThreadFunc, arg any) *Thread {
	if len(wa) < MinStackSize || fn == nil {
		return nil
	}
	return s.spawn("", wa, nil, s.clampPrio(prio), fn, arg)
}

// CreateFromHeapNamed allocates a working area of size bytes from heap and
// starts fn(arg) on it (4.x/5.x API). A nil heap means the default heap.
// It returns nil if the allocation fails.
func (s *System) CreateFromHeapNamed(heap *Heap, size int, name string, prio Priority, fn ThreadFunc, arg any) *Thread {
	s.requireMajor("CreateFromHeapNamed", 4, MaxMajor)
	return s.createFromHeap(heap, size, name, prio, fn, arg)
}

func (s *System) createFromHeap(heap *Heap, size int, name string, prio Priority, fn ThreadFunc, arg any) *Thread {
	if size < MinStackSize || fn == nil {
		return nil
	}
	if heap == nil {
		heap = s.heap
	}
	wa := heap.Alloc(size)
	if wa == nil {
		return nil
	}
	return s.spawn(name, wa, heap, s.clampPrio(prio), fn, arg)
}

func (s *System) clampPrio(p Priority) Priority {
	if p < LowPrio {
		return LowPrio
	}
	if hi := s.HighPrio(); p > hi {
		return hi
	}
	return p
}

func (s *System) spawn(name string, wa []byte, heap *Heap, prio Priority, fn ThreadFunc, arg any) *Thread {
	t := &Thread{
		name:     name,
		prio:     prio,
		wa:       wa,
		fromHeap: heap,
		done:     make(chan struct{}),
	}
	go t.run(fn, arg)
	return t
}

func (t *Thread) run(fn ThreadFunc, arg any) {
	t.exit = fn(arg)
	if t.fromHeap != nil {
		t.fromHeap.Free(t.wa)
		t.wa = nil
	}
	close(t.done)
}

// Name returns the name given at creation (empty for legacy and static threads).
func (t *Thread) Name() string { return t.name }

// Priority returns the native priority.
func (t *Thread) Priority() Priority { return t.prio }

// Done is closed when the thread body returns.
func (t *Thread) Done() <-chan struct{} { return t.done }

// Wait blocks until the thread exits and returns its exit message.
func (t *Thread) Wait() Msg {
	<-t.done
	return t.exit
}
