// Package gos is the operating-system portability layer of the graphics
// stack.
//
// It gives graphics and application code one contract for timed sleeps,
// bounded counting semaphores, thread creation and growth-only
// reallocation, whichever kernel API generation is underneath. The
// generation is read from the kernel at construction and bound to an
// internal port; nothing above this package sees the difference.
//
// # Delays
//
// Every blocking call takes a [Delay] in milliseconds. [Immediate] polls
// and never blocks, [Infinite] blocks with no timeout, and any other value
// is a finite bound. The two sentinels are the extremes of the range, so
// no finite wait can be mistaken for one.
//
// # Bounded semaphores
//
// A [Sem] is a counting semaphore whose count never exceeds the limit
// given at creation. A Signal that would cross the limit is dropped:
//
//	swap := o.NewSem(0, 1)
//	swap.Signal()
//	swap.Signal()      // dropped, count stays 1
//	swap.Wait(gos.Infinite)
//
// WaitI and SignalI are the critical-section variants. They require a
// [Critical] token, which only [OS.Lock] hands out:
//
//	cs := o.Lock()
//	if sem.WaitI(cs) {
//		...
//	}
//	o.Unlock(cs)
//
// # Threads and memory
//
// [OS.ThreadCreate] starts a context over caller memory or over a working
// area taken from the kernel heap. [OS.Realloc] only grows; it never
// frees the old block.
package gos
