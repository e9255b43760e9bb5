package app

import (
	"testing"

	"gfxport/gos"
)

func newScrollOS(t *testing.T, heap int) *gos.OS {
	t.Helper()
	cfg := gos.DefaultConfig()
	cfg.Kernel.HeapBytes = heap
	o, err := gos.New(cfg)
	if err != nil {
		t.Fatalf("gos.New() error = %v", err)
	}
	t.Cleanup(o.Deinit)
	return o
}

func TestScrollbackGrowsAndKeepsLines(t *testing.T) {
	o := newScrollOS(t, 0)
	b := NewScrollback(o)

	for i := 0; i < 100; i++ {
		if !b.Append(Print("line %03d", i).Text) {
			t.Fatalf("Append(%d) = false", i)
		}
	}
	if b.Len() != 100 {
		t.Fatalf("Len() = %d, want 100", b.Len())
	}
	if got := b.Line(0); got != "line 000" {
		t.Fatalf("Line(0) = %q", got)
	}
	if got := b.Line(99); got != "line 099" {
		t.Fatalf("Line(99) = %q", got)
	}
	tail := b.Tail(2)
	if len(tail) != 2 || tail[0] != "line 098" || tail[1] != "line 099" {
		t.Fatalf("Tail(2) = %q", tail)
	}
	if used, _ := o.Kernel().Heap().Status(); used != b.Bytes() {
		t.Fatalf("heap used = %d, want only the live block (%d)", used, b.Bytes())
	}

	b.Release()
	if used, _ := o.Kernel().Heap().Status(); used != 0 {
		t.Fatalf("heap used after Release = %d, want 0", used)
	}
}

func TestScrollbackDropsWhenHeapIsFull(t *testing.T) {
	o := newScrollOS(t, 600)
	b := NewScrollback(o)

	line := string(make([]byte, 99))
	appended := 0
	for i := 0; i < 10; i++ {
		if b.Append(line) {
			appended++
		}
	}
	// 256 bytes hold two lines; growing to 512 needs 768 with the old block.
	if appended != 2 || b.Dropped() != 8 {
		t.Fatalf("appended %d, dropped %d, want 2, 8", appended, b.Dropped())
	}
	if b.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", b.Len())
	}
}

func TestScrollbackEmptyLine(t *testing.T) {
	b := NewScrollback(newScrollOS(t, 0))
	b.Append("")
	b.Append("x")
	if b.Line(0) != "" || b.Line(1) != "x" {
		t.Fatalf("lines = %q, %q", b.Line(0), b.Line(1))
	}
	if got := b.Tail(5); len(got) != 2 {
		t.Fatalf("Tail(5) = %q", got)
	}
}
