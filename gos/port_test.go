package gos

import (
	"testing"
	"time"
)

// The layer behaves the same on both kernel API generations.
func TestPortsAgree(t *testing.T) {
	for _, major := range []int{2, 3, 4, 5} {
		o := newTestOS(t, func(c *Config) { c.Kernel.Major = major })

		s := o.NewSem(0, 1)
		ch := make(chan bool, 1)
		go func() { ch <- s.Wait(Infinite) }()
		waitForWaiters(t, s, 1)
		s.Signal()
		if !waitResult(t, ch, "Wait(Infinite)") {
			t.Fatalf("major %d: Wait(Infinite) = false after Signal", major)
		}
		s.Signal()
		s.Signal()
		if got := s.Count(); got != 1 {
			t.Fatalf("major %d: Count() = %d, want 1", major, got)
		}
		if s.Wait(Immediate) != true || s.Wait(5) != false {
			t.Fatalf("major %d: poll/timeout results wrong", major)
		}

		h := o.ThreadCreate(nil, 0, NormalPriority, func(any) int { return major }, nil)
		if !h.Valid() {
			t.Fatalf("major %d: ThreadCreate() = nil", major)
		}
		select {
		case <-h.Done():
		case <-time.After(2 * time.Second):
			t.Fatalf("major %d: thread did not finish", major)
		}
		if got := h.Wait(); got != major {
			t.Fatalf("major %d: Wait() = %d", major, got)
		}
		wantName := "gfx"
		if major <= 3 {
			wantName = ""
		}
		if got := h.Name(); got != wantName {
			t.Fatalf("major %d: Name() = %q, want %q", major, got, wantName)
		}
	}
}
