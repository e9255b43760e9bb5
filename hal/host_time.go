//go:build !tinygo

package hal

import "time"

const hostTickPeriod = time.Millisecond

// hostTime turns the runner's frame steps into a millisecond tick stream.
// Elapsed wall time is accumulated so that a 60 Hz runner still produces
// about 1000 ticks per second, delivered in bursts.
type hostTime struct {
	ch  chan uint64
	seq uint64

	last time.Time
	acc  time.Duration
}

func newHostTime() *hostTime {
	return &hostTime{ch: make(chan uint64, 1024)}
}

func (t *hostTime) Ticks() <-chan uint64 { return t.ch }

func (t *hostTime) step() {
	t.stepAt(time.Now())
}

func (t *hostTime) stepAt(now time.Time) {
	if t.last.IsZero() {
		t.last = now
		t.emit(1)
		return
	}
	t.acc += now.Sub(t.last)
	t.last = now

	n := uint64(t.acc / hostTickPeriod)
	if n == 0 {
		return
	}
	t.acc %= hostTickPeriod
	t.emit(n)
}

// emit publishes only the newest sequence number; consumers catch up with
// it in one step, so a full channel loses nothing.
func (t *hostTime) emit(n uint64) {
	t.seq += n
	select {
	case t.ch <- t.seq:
	default:
	}
}
