package kernel

// Semaphore is the native counting semaphore. It has no upper bound.
//
// A negative counter is the number of contexts queued on it. Waiters are
// released in FIFO order.
type Semaphore struct {
	sys   *System
	cnt   int32
	queue threadQueue
}

// SemObjectInit initializes sp with counter n (3.x API onwards).
func (s *System) SemObjectInit(sp *Semaphore, n int32) {
	s.requireMajor("SemObjectInit", 3, MaxMajor)
	s.semInit(sp, n)
}

func (s *System) semInit(sp *Semaphore, n int32) {
	if n < 0 {
		n = 0
	}
	*sp = Semaphore{sys: s, cnt: n}
}

// GetCounterI returns the raw counter. Must be called with the lock held.
func (sp *Semaphore) GetCounterI() int32 {
	return sp.cnt
}

// Wait blocks until the semaphore can be taken.
func (sp *Semaphore) Wait() Msg {
	return sp.WaitTimeout(TimeInfinite)
}

// WaitTimeout takes the semaphore, waiting at most t ticks.
func (sp *Semaphore) WaitTimeout(t Time) Msg {
	sp.sys.Lock()
	msg := sp.WaitTimeoutS(t)
	sp.sys.Unlock()
	return msg
}

// WaitTimeoutS is WaitTimeout for callers already holding the lock. The
// lock is released while the caller is queued and held again on return.
func (sp *Semaphore) WaitTimeoutS(t Time) Msg {
	if sp.cnt > 0 {
		sp.cnt--
		return MsgOK
	}
	if t == TimeImmediate {
		return MsgTimeout
	}

	sp.cnt--
	w := &waiter{wake: make(chan Msg, 1)}
	sp.queue.push(w)

	sys := sp.sys
	deadline := ^uint64(0)
	if t != TimeInfinite {
		deadline = sys.Ticks() + uint64(t)
	}

	sys.mu.Unlock()
	msg, woken := sys.waitUntil(deadline, w.wake)
	sys.mu.Lock()

	if woken {
		return msg
	}
	if sp.queue.remove(w) {
		// Still queued: nobody signalled, so give the slot back.
		sp.cnt++
		return msg
	}
	// Dequeued between the timeout and re-taking the lock.
	return <-w.wake
}

// SignalI releases one unit, waking the oldest waiter if any.
// Must be called with the lock held; it does not reschedule.
func (sp *Semaphore) SignalI() {
	sp.cnt++
	if sp.cnt <= 0 {
		if w := sp.queue.pop(); w != nil {
			w.wake <- MsgOK
		}
	}
}

// Signal is SignalI wrapped in the critical section with a reschedule.
func (sp *Semaphore) Signal() {
	sp.sys.Lock()
	sp.SignalI()
	sp.sys.RescheduleS()
	sp.sys.Unlock()
}

// FastWaitI decrements the counter without queueing. The caller must have
// checked that the counter is positive. Must be called with the lock held.
func (sp *Semaphore) FastWaitI() {
	sp.cnt--
}

// ResetI sets the counter to n and wakes every waiter with MsgReset.
// Must be called with the lock held.
func (sp *Semaphore) ResetI(n int32) {
	if n < 0 {
		n = 0
	}
	sp.cnt = n
	for w := sp.queue.pop(); w != nil; w = sp.queue.pop() {
		w.wake <- MsgReset
	}
}

// Reset is ResetI wrapped in the critical section with a reschedule.
func (sp *Semaphore) Reset(n int32) {
	sp.sys.Lock()
	sp.ResetI(n)
	sp.sys.RescheduleS()
	sp.sys.Unlock()
}

// Waiters returns the number of queued contexts. Must be called with the
// lock held.
func (sp *Semaphore) Waiters() int {
	return sp.queue.len()
}
