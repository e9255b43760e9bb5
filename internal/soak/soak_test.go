package soak

import (
	"context"
	"testing"
	"time"

	"gfxport/gos"
)

func TestRunKeepsInvariants(t *testing.T) {
	for _, major := range []int{3, 5} {
		cfg := gos.DefaultConfig()
		cfg.Kernel.Major = major
		o, err := gos.New(cfg)
		if err != nil {
			t.Fatalf("gos.New() error = %v", err)
		}

		opts := DefaultOptions()
		opts.Duration = 200 * time.Millisecond
		r, err := Run(context.Background(), o, opts)
		o.Deinit()
		if err != nil {
			t.Fatalf("major %d: Run() error = %v", major, err)
		}
		if !r.OK() {
			t.Fatalf("major %d: violations %q", major, r.Violations)
		}
		if r.Signals == 0 || r.Waits == 0 || r.QueueGot == 0 {
			t.Fatalf("major %d: no work done: %+v", major, r)
		}
		if r.MaxCount > opts.Limit {
			t.Fatalf("major %d: MaxCount = %d, limit %d", major, r.MaxCount, opts.Limit)
		}
		if r.Kernel != major {
			t.Fatalf("Kernel = %d, want %d", r.Kernel, major)
		}
	}
}

func TestRunRejectsBadOptions(t *testing.T) {
	o, err := gos.New(gos.DefaultConfig())
	if err != nil {
		t.Fatalf("gos.New() error = %v", err)
	}
	defer o.Deinit()

	opts := DefaultOptions()
	opts.Workers = 1
	if _, err := Run(context.Background(), o, opts); err == nil {
		t.Fatalf("Run(workers=1) error = nil")
	}
}
