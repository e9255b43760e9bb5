package gos

import (
	"testing"
	"time"

	"gfxport/kernel"
)

func TestThreadCreateWithoutStackOrDefaultFails(t *testing.T) {
	o := newTestOS(t, func(c *Config) { c.GOS.DefaultStackSize = 0 })

	ran := make(chan struct{}, 1)
	h := o.ThreadCreate(nil, 0, NormalPriority, func(any) int {
		ran <- struct{}{}
		return 0
	}, nil)
	if h != nil {
		t.Fatalf("ThreadCreate(nil, 0) = %v, want nil", h)
	}
	select {
	case <-ran:
		t.Fatalf("failed ThreadCreate still ran the thread body")
	case <-time.After(10 * time.Millisecond):
	}
}

func TestThreadCreateFromHeap(t *testing.T) {
	o := newTestOS(t, nil)
	heap := o.Kernel().Heap()

	release := make(chan struct{})
	h := o.ThreadCreate(nil, 0, HighPriority, func(arg any) int {
		<-release
		return arg.(int) * 2
	}, 21)
	if !h.Valid() {
		t.Fatalf("ThreadCreate(nil, 0) with default stack = nil, want a thread")
	}
	if used, _ := heap.Status(); used != DefaultStackSize {
		t.Fatalf("heap used while running = %d, want %d", used, DefaultStackSize)
	}
	if got := h.Name(); got != "gfx" {
		t.Fatalf("Name() = %q, want %q", got, "gfx")
	}
	if got := h.Priority(); got != o.Kernel().HighPrio() {
		t.Fatalf("Priority() = %d, want %d", got, o.Kernel().HighPrio())
	}

	close(release)
	if got := h.Wait(); got != 42 {
		t.Fatalf("Wait() = %d, want 42", got)
	}
	if used, _ := heap.Status(); used != 0 {
		t.Fatalf("heap used after exit = %d, want 0", used)
	}
	h.Close()
	if h.Valid() {
		t.Fatalf("Valid() after Close = true")
	}
}

func TestThreadCreateHeapExhausted(t *testing.T) {
	o := newTestOS(t, func(c *Config) { c.Kernel.HeapBytes = 128 })

	h := o.ThreadCreate(nil, 256, NormalPriority, func(any) int { return 0 }, nil)
	if h != nil {
		t.Fatalf("ThreadCreate over exhausted heap = %v, want nil", h)
	}
}

func TestThreadCreateStatic(t *testing.T) {
	o := newTestOS(t, nil)
	stack := make([]byte, 512)
	body := func(any) int { return 1 }

	if h := o.ThreadCreate(stack, 0, NormalPriority, body, nil); h != nil {
		t.Fatalf("ThreadCreate(stack, 0) = %v, want nil", h)
	}
	if h := o.ThreadCreate(stack, len(stack)+1, NormalPriority, body, nil); h != nil {
		t.Fatalf("ThreadCreate(stack, len+1) = %v, want nil", h)
	}
	if h := o.ThreadCreate(stack, 256, NormalPriority, nil, nil); h != nil {
		t.Fatalf("ThreadCreate(nil func) = %v, want nil", h)
	}

	h := o.ThreadCreate(stack, 256, NormalPriority, body, nil)
	if !h.Valid() {
		t.Fatalf("ThreadCreate(stack, 256) = nil, want a thread")
	}
	if got := h.Wait(); got != 1 {
		t.Fatalf("Wait() = %d, want 1", got)
	}
	if used, _ := o.Kernel().Heap().Status(); used != 0 {
		t.Fatalf("static thread used %d heap bytes", used)
	}
}

func TestNativePriorityIsMonotonicAndTotal(t *testing.T) {
	for _, high := range []uint8{2, 10, 127, 255} {
		o := newTestOS(t, func(c *Config) { c.Kernel.HighPriority = high })

		prev := kernel.Priority(0)
		for p := 0; p <= int(HighPriority); p++ {
			got := o.nativePriority(Priority(p))
			if got < kernel.LowPrio || got > o.Kernel().HighPrio() {
				t.Fatalf("high %d: nativePriority(%d) = %d, out of range", high, p, got)
			}
			if got < prev {
				t.Fatalf("high %d: nativePriority(%d) = %d < nativePriority(%d) = %d", high, p, got, p-1, prev)
			}
			prev = got
		}
		if got := o.nativePriority(LowPriority); got != kernel.LowPrio {
			t.Fatalf("high %d: nativePriority(Low) = %d, want %d", high, got, kernel.LowPrio)
		}
		if got := o.nativePriority(HighPriority); got != kernel.Priority(high) {
			t.Fatalf("high %d: nativePriority(High) = %d, want %d", high, got, high)
		}
	}
}
