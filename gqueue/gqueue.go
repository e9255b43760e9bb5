// Package gqueue provides a bounded FIFO for passing values between
// threads of the portability layer.
package gqueue

import "gfxport/gos"

// Sync is a fixed-capacity FIFO. Producers block while it is full and
// consumers while it is empty, each up to a gos.Delay.
//
// Two bounded semaphores count the free slots and the queued items; the
// ring itself is only touched inside the layer's critical section.
type Sync[T any] struct {
	_ [0]func() // prevent accidental copying.

	os    *gos.OS
	free  *gos.Sem
	items *gos.Sem

	// head and tail index slots directly and wrap at len(slots).
	head, tail int
	slots      []T
}

// New returns an empty queue holding at most capacity values. Capacity is
// clamped to 1..gos.MaxSemCount.
func New[T any](o *gos.OS, capacity int) *Sync[T] {
	if capacity < 1 {
		capacity = 1
	}
	if capacity > gos.MaxSemCount {
		capacity = gos.MaxSemCount
	}
	return &Sync[T]{
		os:    o,
		free:  o.NewSem(capacity, capacity),
		items: o.NewSem(0, capacity),
		slots: make([]T, capacity),
	}
}

// Cap returns the capacity.
func (q *Sync[T]) Cap() int { return len(q.slots) }

// Len returns the number of queued values.
func (q *Sync[T]) Len() int { return q.items.Count() }

// Put appends v, waiting up to d for a free slot. It reports false if no
// slot became free in time.
func (q *Sync[T]) Put(v T, d gos.Delay) bool {
	if !q.free.Wait(d) {
		return false
	}
	cs := q.os.Lock()
	q.push(v)
	q.items.SignalI(cs)
	q.os.Unlock(cs)
	return true
}

// Get removes the oldest value, waiting up to d for one to arrive.
func (q *Sync[T]) Get(d gos.Delay) (T, bool) {
	if !q.items.Wait(d) {
		var zero T
		return zero, false
	}
	cs := q.os.Lock()
	v := q.pop()
	q.free.SignalI(cs)
	q.os.Unlock(cs)
	return v, true
}

// PutI is a non-blocking Put from inside the critical section cs.
func (q *Sync[T]) PutI(cs gos.Critical, v T) bool {
	if !q.free.WaitI(cs) {
		return false
	}
	q.push(v)
	q.items.SignalI(cs)
	return true
}

// GetI is a non-blocking Get from inside the critical section cs.
func (q *Sync[T]) GetI(cs gos.Critical) (T, bool) {
	if !q.items.WaitI(cs) {
		var zero T
		return zero, false
	}
	v := q.pop()
	q.free.SignalI(cs)
	return v, true
}

// Destroy releases every blocked producer and consumer with a failure
// result. The queue must not be used afterwards.
func (q *Sync[T]) Destroy() {
	q.free.Destroy()
	q.items.Destroy()
}

func (q *Sync[T]) push(v T) {
	q.slots[q.head] = v
	q.head = (q.head + 1) % len(q.slots)
}

func (q *Sync[T]) pop() T {
	v := q.slots[q.tail]
	var zero T
	q.slots[q.tail] = zero
	q.tail = (q.tail + 1) % len(q.slots)
	return v
}
