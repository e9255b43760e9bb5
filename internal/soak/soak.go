// Package soak hammers the bounded semaphore and the queue from many
// threads and checks their invariants while doing so.
package soak

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"gfxport/gos"
	"gfxport/gqueue"
)

// Options controls a run.
type Options struct {
	Workers    int
	Duration   time.Duration
	Limit      int
	QueueDepth int
	Seed       int64
}

// DefaultOptions is a short run suitable for CI.
func DefaultOptions() Options {
	return Options{
		Workers:    8,
		Duration:   2 * time.Second,
		Limit:      3,
		QueueDepth: 16,
		Seed:       1,
	}
}

// Report is the outcome of a run.
type Report struct {
	Kernel   int           `json:"kernel" msgpack:"kernel"`
	TickHz   uint32        `json:"tick_hz" msgpack:"tick_hz"`
	Workers  int           `json:"workers" msgpack:"workers"`
	Limit    int           `json:"limit" msgpack:"limit"`
	Elapsed  time.Duration `json:"elapsed_ns" msgpack:"elapsed_ns"`
	Signals  uint64        `json:"signals" msgpack:"signals"`
	Waits    uint64        `json:"waits" msgpack:"waits"`
	Acquired uint64        `json:"acquired" msgpack:"acquired"`
	MaxCount int           `json:"max_count" msgpack:"max_count"`

	QueuePut uint64 `json:"queue_put" msgpack:"queue_put"`
	QueueGot uint64 `json:"queue_got" msgpack:"queue_got"`

	Violations []string `json:"violations,omitempty" msgpack:"violations,omitempty"`
}

// OK reports whether no invariant was broken.
func (r Report) OK() bool { return len(r.Violations) == 0 }

var errViolation = errors.New("invariant violated")

type counters struct {
	signals, waits, acquired atomic.Uint64
	put, got                 atomic.Uint64
	maxCount                 atomic.Int64
}

func (c *counters) observe(n int) {
	for {
		cur := c.maxCount.Load()
		if int64(n) <= cur || c.maxCount.CompareAndSwap(cur, int64(n)) {
			return
		}
	}
}

// Run soaks o until opts.Duration elapses or ctx is done. The first
// violation stops the run; it is recorded in the report, not returned as
// an error.
func Run(ctx context.Context, o *gos.OS, opts Options) (Report, error) {
	if opts.Workers < 2 || opts.Limit < 1 || opts.QueueDepth < 1 || opts.Duration <= 0 {
		return Report{}, fmt.Errorf("soak: invalid options %+v", opts)
	}
	ctx, cancel := context.WithTimeout(ctx, opts.Duration)
	defer cancel()

	sem := o.NewSem(0, opts.Limit)
	q := gqueue.New[uint64](o, opts.QueueDepth)
	var c counters

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < opts.Workers; w++ {
		rng := rand.New(rand.NewSource(opts.Seed + int64(w)))
		if w%2 == 0 {
			g.Go(func() error { return signaller(gctx, sem, rng, &c) })
		} else {
			g.Go(func() error { return waiter(gctx, sem, rng, &c) })
		}
	}
	g.Go(func() error { return producer(gctx, q, &c) })
	g.Go(func() error { return consumer(gctx, q, &c) })

	err := g.Wait()
	sem.Destroy()
	q.Destroy()

	r := Report{
		Kernel:   o.Kernel().Major(),
		TickHz:   o.Kernel().TickHz(),
		Workers:  opts.Workers,
		Limit:    opts.Limit,
		Elapsed:  time.Since(start),
		Signals:  c.signals.Load(),
		Waits:    c.waits.Load(),
		Acquired: c.acquired.Load(),
		MaxCount: int(c.maxCount.Load()),
		QueuePut: c.put.Load(),
		QueueGot: c.got.Load(),
	}
	if errors.Is(err, errViolation) {
		r.Violations = append(r.Violations, err.Error())
		err = nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		err = nil
	}
	if r.MaxCount > opts.Limit {
		r.Violations = append(r.Violations, fmt.Sprintf("count reached %d, limit %d", r.MaxCount, opts.Limit))
	}
	return r, err
}

func checkCount(sem *gos.Sem, c *counters) error {
	n := sem.Count()
	c.observe(n)
	if n < 0 || n > sem.Limit() {
		return fmt.Errorf("%w: count %d outside 0..%d", errViolation, n, sem.Limit())
	}
	return nil
}

func signaller(ctx context.Context, sem *gos.Sem, rng *rand.Rand, c *counters) error {
	for ctx.Err() == nil {
		for i := rng.Intn(4); i >= 0; i-- {
			sem.Signal()
			c.signals.Add(1)
		}
		if err := checkCount(sem, c); err != nil {
			return err
		}
		time.Sleep(time.Duration(rng.Intn(200)) * time.Microsecond)
	}
	return ctx.Err()
}

func waiter(ctx context.Context, sem *gos.Sem, rng *rand.Rand, c *counters) error {
	delays := []gos.Delay{gos.Immediate, 1, 2, 5}
	for ctx.Err() == nil {
		c.waits.Add(1)
		if sem.Wait(delays[rng.Intn(len(delays))]) {
			c.acquired.Add(1)
		}
		if err := checkCount(sem, c); err != nil {
			return err
		}
	}
	return ctx.Err()
}

func producer(ctx context.Context, q *gqueue.Sync[uint64], c *counters) error {
	var next uint64
	for ctx.Err() == nil {
		if q.Put(next, 5) {
			next++
			c.put.Add(1)
		}
	}
	return ctx.Err()
}

// consumer checks that values come out in the order they went in.
func consumer(ctx context.Context, q *gqueue.Sync[uint64], c *counters) error {
	var want uint64
	for ctx.Err() == nil {
		v, ok := q.Get(5)
		if !ok {
			continue
		}
		if v != want {
			return fmt.Errorf("%w: queue returned %d, want %d", errViolation, v, want)
		}
		want++
		c.got.Add(1)
	}
	return ctx.Err()
}
