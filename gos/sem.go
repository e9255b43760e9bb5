package gos

import (
	"math"

	"gfxport/kernel"
)

// MaxSemCount is the largest limit a semaphore can have.
const MaxSemCount = math.MaxInt16

// Sem is a counting semaphore with a fixed upper bound on its count.
//
// The count is only changed under the kernel lock: by the kernel itself
// for Wait, by Signal/Destroy, or by the holder of a Critical token for
// the I variants. A Sem must not be used after Destroy.
type Sem struct {
	os    *OS
	sem   kernel.Semaphore
	limit int32
}

// NewSem creates a semaphore with the given initial count and limit. An
// initial count above the limit is clamped to the limit; negative values
// are clamped to zero, and the limit to MaxSemCount.
func (o *OS) NewSem(initial, limit int) *Sem {
	limit = clampCount(limit)
	initial = clampCount(initial)
	if initial > limit {
		initial = limit
	}
	s := &Sem{os: o, limit: int32(limit)}
	o.port.semInit(&s.sem, int32(initial))
	return s
}

func clampCount(n int) int {
	if n < 0 {
		return 0
	}
	if n > MaxSemCount {
		return MaxSemCount
	}
	return n
}

// Limit returns the maximum count.
func (s *Sem) Limit() int { return int(s.limit) }

// Count returns the number of units currently available. It takes the
// critical section; inside one use CountI.
func (s *Sem) Count() int {
	sys := s.os.sys
	sys.Lock()
	n := s.os.port.semCountI(&s.sem)
	sys.Unlock()
	if n < 0 {
		return 0
	}
	return int(n)
}

// CountI is Count from inside the critical section cs.
func (s *Sem) CountI(cs Critical) int {
	cs.check(s.os)
	n := s.os.port.semCountI(&s.sem)
	if n < 0 {
		return 0
	}
	return int(n)
}

// Wait takes one unit. Immediate polls, Infinite blocks until a unit is
// available, and a finite delay blocks for at most that many
// milliseconds. It reports false on timeout, on a failed poll, or when the
// semaphore is destroyed while waiting. Wait must not be called inside a
// critical section.
func (s *Sem) Wait(d Delay) bool {
	switch class, ms := d.Classify(); class {
	case DelayPoll:
		return s.os.port.semWaitTimeout(&s.sem, kernel.TimeImmediate)
	case DelayForever:
		return s.os.port.semWaitTimeout(&s.sem, kernel.TimeInfinite)
	default:
		return s.os.port.semWaitTimeout(&s.sem, s.os.sys.MillisecondsToTicks(ms))
	}
}

// WaitI takes one unit without blocking, from inside the critical
// section cs. It reports false if no unit is available.
func (s *Sem) WaitI(cs Critical) bool {
	cs.check(s.os)
	if s.os.port.semCountI(&s.sem) <= 0 {
		return false
	}
	s.sem.FastWaitI()
	return true
}

// Signal releases one unit and wakes a waiter, unless the count is
// already at the limit, in which case the signal is dropped. It gives
// higher-priority waiters a chance to run before returning.
func (s *Sem) Signal() {
	sys := s.os.sys
	sys.Lock()
	s.signalI()
	sys.RescheduleS()
	sys.Unlock()
}

// SignalI is Signal from inside the critical section cs. It does not
// reschedule; the caller yields after Unlock if it needs to.
func (s *Sem) SignalI(cs Critical) {
	cs.check(s.os)
	s.signalI()
}

func (s *Sem) signalI() {
	if s.os.port.semCountI(&s.sem) < s.limit {
		s.sem.SignalI()
	}
}

// Destroy wakes every waiter with a failure result and releases the
// semaphore.
func (s *Sem) Destroy() {
	sys := s.os.sys
	sys.Lock()
	s.sem.ResetI(0)
	sys.RescheduleS()
	sys.Unlock()
}
