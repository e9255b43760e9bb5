package gos

import (
	"testing"

	"golang.org/x/sync/errgroup"
)

func TestMutexExcludes(t *testing.T) {
	m := NewMutex()
	defer m.Destroy()

	n := 0
	var g errgroup.Group
	for i := 0; i < 4; i++ {
		g.Go(func() error {
			for j := 0; j < 1000; j++ {
				m.Enter()
				n++
				m.Exit()
			}
			return nil
		})
	}
	_ = g.Wait()
	if n != 4000 {
		t.Fatalf("counter = %d, want 4000", n)
	}

	m.Enter()
	if m.TryEnter() {
		t.Fatalf("TryEnter() on held mutex = true")
	}
	m.Exit()
}
