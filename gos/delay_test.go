package gos

import (
	"math"
	"testing"
	"time"

	"gfxport/kernel"
)

func TestDelayClassify(t *testing.T) {
	for _, tc := range []struct {
		d     Delay
		class DelayClass
		n     uint32
	}{
		{Immediate, DelayPoll, 0},
		{Infinite, DelayForever, 0},
		{1, DelayFinite, 1},
		{50, DelayFinite, 50},
		{MaxFinite, DelayFinite, uint32(MaxFinite)},
	} {
		class, n := tc.d.Classify()
		if class != tc.class || n != tc.n {
			t.Fatalf("Delay(%d).Classify() = %s, %d, want %s, %d", uint32(tc.d), class, n, tc.class, tc.n)
		}
	}
}

func TestMillisecondsStaysFinite(t *testing.T) {
	if got := Milliseconds(-5); got != Immediate {
		t.Fatalf("Milliseconds(-5) = %v, want immediate", got)
	}
	if got := Milliseconds(20); got != 20 {
		t.Fatalf("Milliseconds(20) = %d, want 20", got)
	}
	if got := Milliseconds(math.MaxInt); got != MaxFinite {
		t.Fatalf("Milliseconds(MaxInt) = %d, want MaxFinite", got)
	}
}

func TestFromDurationRoundsUp(t *testing.T) {
	for _, tc := range []struct {
		d    time.Duration
		want Delay
	}{
		{0, Immediate},
		{-time.Second, Immediate},
		{time.Nanosecond, 1},
		{time.Millisecond, 1},
		{1500 * time.Microsecond, 2},
		{time.Second, 1000},
		{1 << 62, MaxFinite},
	} {
		if got := FromDuration(tc.d); got != tc.want {
			t.Fatalf("FromDuration(%v) = %d, want %d", tc.d, got, tc.want)
		}
	}
}

func TestMillisecondsToTicksKeepsSentinels(t *testing.T) {
	o := newTestOS(t, func(c *Config) { c.Kernel.TickHz = 100 })

	if got := o.MillisecondsToTicks(Immediate); got != kernel.TimeImmediate {
		t.Fatalf("MillisecondsToTicks(Immediate) = %d, want TimeImmediate", got)
	}
	if got := o.MillisecondsToTicks(Infinite); got != kernel.TimeInfinite {
		t.Fatalf("MillisecondsToTicks(Infinite) = %d, want TimeInfinite", got)
	}
	if got := o.MillisecondsToTicks(1); got != 1 {
		t.Fatalf("MillisecondsToTicks(1) = %d, want 1", got)
	}
	if got := o.MillisecondsToTicks(MaxFinite); got == kernel.TimeInfinite || got == kernel.TimeImmediate {
		t.Fatalf("MillisecondsToTicks(MaxFinite) = %d, want a finite wait", got)
	}
}
