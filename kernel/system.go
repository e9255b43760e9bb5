package kernel

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// Config selects the kernel API generation and its static resources.
type Config struct {
	// Major is the kernel API generation (2..5).
	Major int `toml:"major"`

	// TickHz is the system tick frequency.
	TickHz uint32 `toml:"tick_hz"`

	// HeapBytes caps the default heap. Zero means unlimited.
	HeapBytes int `toml:"heap_bytes"`

	// HighPriority is the highest native thread priority.
	HighPriority uint8 `toml:"high_priority"`

	// ExternalTick disables the internal ticker; ticks come from TickTo.
	ExternalTick bool `toml:"external_tick"`
}

const (
	MinMajor = 2
	MaxMajor = 5

	DefaultTickHz       = 1000
	DefaultHeapBytes    = 64 * 1024
	DefaultHighPriority = 255

	// ExternalTickHz is the rate of the HAL tick stream fed to TickTo.
	// An externally ticked kernel must be configured with this TickHz.
	ExternalTickHz = 1000
)

// DefaultConfig returns the configuration of a current-generation kernel.
func DefaultConfig() Config {
	return Config{
		Major:        MaxMajor,
		TickHz:       DefaultTickHz,
		HeapBytes:    DefaultHeapBytes,
		HighPriority: DefaultHighPriority,
	}
}

// System is the kernel state: timebase, global lock, default heap.
type System struct {
	cfg Config

	// mu is the global critical section.
	mu         sync.Mutex
	reschedule bool

	ticks  atomic.Uint64
	tickMu sync.Mutex
	tickCh chan struct{}

	heap *Heap

	started  atomic.Bool
	stop     chan struct{}
	stopOnce sync.Once
}

// NewSystem creates a kernel instance. It does not start the timebase.
func NewSystem(cfg Config) *System {
	if cfg.TickHz == 0 {
		cfg.TickHz = DefaultTickHz
	}
	if cfg.HighPriority <= uint8(LowPrio) {
		cfg.HighPriority = DefaultHighPriority
	}
	return &System{
		cfg:    cfg,
		tickCh: make(chan struct{}),
		heap:   NewHeap(cfg.HeapBytes),
		stop:   make(chan struct{}),
	}
}

// Major returns the API generation this kernel implements.
func (s *System) Major() int { return s.cfg.Major }

// TickHz returns the tick frequency.
func (s *System) TickHz() uint32 { return s.cfg.TickHz }

// Heap returns the default heap.
func (s *System) Heap() *Heap { return s.heap }

// HighPrio returns the highest native priority.
func (s *System) HighPrio() Priority { return Priority(s.cfg.HighPriority) }

// NormalPrio returns the priority in the middle of the native range.
func (s *System) NormalPrio() Priority {
	return LowPrio + (s.HighPrio()-LowPrio)/2
}

// Start brings the kernel up. Calling it twice is harmless.
func (s *System) Start() {
	if !s.started.CompareAndSwap(false, true) {
		return
	}
	if !s.cfg.ExternalTick {
		s.startTick()
	}
}

// Started reports whether Start has been called.
func (s *System) Started() bool { return s.started.Load() }

// Stop halts the timebase and releases every context sleeping forever.
func (s *System) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
}

// Stopped returns a channel closed by Stop.
func (s *System) Stopped() <-chan struct{} { return s.stop }

func (s *System) startTick() {
	period := time.Second / time.Duration(s.cfg.TickHz)
	if period <= 0 {
		period = time.Millisecond
	}
	go func() {
		t := time.NewTicker(period)
		defer t.Stop()
		for {
			select {
			case <-s.stop:
				return
			case <-t.C:
				s.advance(1)
			}
		}
	}()
}

// Ticks returns the current tick count.
func (s *System) Ticks() uint64 {
	return s.ticks.Load()
}

// TickTo advances the tick counter to seq. Older values are ignored.
func (s *System) TickTo(seq uint64) {
	for {
		cur := s.ticks.Load()
		if seq <= cur {
			return
		}
		if s.ticks.CompareAndSwap(cur, seq) {
			s.broadcastTick()
			return
		}
	}
}

func (s *System) advance(n uint64) {
	s.ticks.Add(n)
	s.broadcastTick()
}

func (s *System) broadcastTick() {
	s.tickMu.Lock()
	close(s.tickCh)
	s.tickCh = make(chan struct{})
	s.tickMu.Unlock()
}

func (s *System) tickChan() <-chan struct{} {
	s.tickMu.Lock()
	ch := s.tickCh
	s.tickMu.Unlock()
	return ch
}

// Lock enters the global critical section.
func (s *System) Lock() {
	s.mu.Lock()
}

// Unlock leaves the global critical section, yielding if a reschedule
// was requested while it was held.
func (s *System) Unlock() {
	yield := s.reschedule
	s.reschedule = false
	s.mu.Unlock()
	if yield {
		runtime.Gosched()
	}
}

// RescheduleS requests a reschedule when the critical section is left.
// Must be called with the lock held.
func (s *System) RescheduleS() {
	s.reschedule = true
}

// Yield gives the processor to other ready contexts.
func (s *System) Yield() {
	runtime.Gosched()
}

// Sleep suspends the caller for t ticks. TimeImmediate returns at once and
// TimeInfinite sleeps until Stop.
func (s *System) Sleep(t Time) {
	switch t {
	case TimeImmediate:
		return
	case TimeInfinite:
		<-s.stop
		return
	}
	s.waitUntil(s.Ticks()+uint64(t), nil)
}

// SleepMicroseconds suspends the caller for us microseconds using the
// host's sub-tick sleep.
func (s *System) SleepMicroseconds(us uint32) {
	if us == 0 {
		return
	}
	sleepPrecise(time.Duration(us) * time.Microsecond)
}

// waitUntil blocks until the tick counter reaches deadline or a message
// arrives on wake. woken is false on timeout.
func (s *System) waitUntil(deadline uint64, wake <-chan Msg) (msg Msg, woken bool) {
	for {
		ch := s.tickChan()
		if s.Ticks() >= deadline {
			return MsgTimeout, false
		}
		select {
		case m := <-wake:
			return m, true
		case <-ch:
		case <-s.stop:
			return MsgReset, false
		}
	}
}
