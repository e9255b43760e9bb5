package app

import (
	"strings"
	"sync"
	"testing"
	"time"

	"gfxport/gdisp"
	"gfxport/gos"
	"gfxport/hal"
)

type fakeFB struct {
	w, h int
	buf  []byte

	mu       sync.Mutex
	presents int
}

func (f *fakeFB) Width() int              { return f.w }
func (f *fakeFB) Height() int             { return f.h }
func (f *fakeFB) Format() hal.PixelFormat { return hal.PixelFormatRGB565 }
func (f *fakeFB) StrideBytes() int        { return f.w * 2 }
func (f *fakeFB) Buffer() []byte          { return f.buf }
func (f *fakeFB) ClearRGB(r, g, b uint8)  {}

func (f *fakeFB) Present() error {
	f.mu.Lock()
	f.presents++
	f.mu.Unlock()
	return nil
}

func (f *fakeFB) presentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.presents
}

type fakeLED struct {
	mu sync.Mutex
	on bool
}

func (l *fakeLED) High() { l.set(true) }
func (l *fakeLED) Low()  { l.set(false) }

func (l *fakeLED) set(on bool) {
	l.mu.Lock()
	l.on = on
	l.mu.Unlock()
}

func (l *fakeLED) isOn() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.on
}

type fakeKeyboard struct{ ch chan hal.KeyEvent }

func (k fakeKeyboard) Events() <-chan hal.KeyEvent { return k.ch }

type fakeHAL struct {
	fb  *fakeFB
	led *fakeLED
	kbd fakeKeyboard
	t   chan uint64
	log *lineLog
}

func newFakeHAL() *fakeHAL {
	return &fakeHAL{
		fb:  &fakeFB{w: 120, h: 80, buf: make([]byte, 120*80*2)},
		led: &fakeLED{},
		kbd: fakeKeyboard{ch: make(chan hal.KeyEvent, 16)},
		t:   make(chan uint64, 1),
		log: &lineLog{},
	}
}

func (h *fakeHAL) Logger() hal.Logger   { return h.log }
func (h *fakeHAL) LED() hal.LED         { return h.led }
func (h *fakeHAL) Display() hal.Display { return h }
func (h *fakeHAL) Input() hal.Input     { return h }
func (h *fakeHAL) Time() hal.Time       { return h }

func (h *fakeHAL) Framebuffer() hal.Framebuffer { return h.fb }
func (h *fakeHAL) Keyboard() hal.Keyboard       { return h.kbd }
func (h *fakeHAL) Ticks() <-chan uint64         { return h.t }

type lineLog struct {
	mu    sync.Mutex
	lines []string
}

func (l *lineLog) WriteLineString(s string) {
	l.mu.Lock()
	l.lines = append(l.lines, s)
	l.mu.Unlock()
}

func (l *lineLog) WriteLineBytes(b []byte) { l.WriteLineString(string(b)) }

func (l *lineLog) contains(sub string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range l.lines {
		if strings.Contains(line, sub) {
			return true
		}
	}
	return false
}

func newTestSystem(t *testing.T, h *fakeHAL, edit func(*Config)) *System {
	t.Helper()
	cfg := DefaultConfig()
	cfg.GOS.Kernel.ExternalTick = false
	cfg.Demo = false
	if edit != nil {
		edit(&cfg)
	}
	s, err := New(h, cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

// stepUntil calls Step like a frame loop until cond holds.
func stepUntil(t *testing.T, s *System, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		if err := s.Step(); err != nil {
			t.Fatalf("Step() error = %v", err)
		}
		time.Sleep(2 * time.Millisecond)
	}
}

func TestPrintReachesScrollbackAndPanel(t *testing.T) {
	h := newFakeHAL()
	s := newTestSystem(t, h, nil)

	for i := 0; i < 3; i++ {
		if !s.Submit(Print("line %d", i), gos.Infinite) {
			t.Fatalf("Submit() = false")
		}
	}
	stepUntil(t, s, "three lines", func() bool { return len(s.ScrollbackLines(10)) == 3 })

	got := s.ScrollbackLines(10)
	want := []string{"line 0", "line 1", "line 2"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("scrollback = %q, want %q", got, want)
	}

	stepUntil(t, s, "a presented frame", func() bool { return h.fb.presentCount() > 0 })
	lit := false
	for _, b := range h.fb.buf {
		if b != 0 {
			lit = true
			break
		}
	}
	if !lit {
		t.Fatalf("panel is blank after printing")
	}
}

func TestStepPresentsOncePerSwap(t *testing.T) {
	h := newFakeHAL()
	s := newTestSystem(t, h, nil)

	// The initial frame.
	stepUntil(t, s, "first frame", func() bool { return h.fb.presentCount() == 1 })
	for i := 0; i < 5; i++ {
		s.Step()
	}
	if got := h.fb.presentCount(); got != 1 {
		t.Fatalf("presents without new work = %d, want 1", got)
	}
	steps, presented := s.Frames()
	if steps < 6 || presented != 1 {
		t.Fatalf("Frames() = %d, %d", steps, presented)
	}
}

func TestKeyboardCommands(t *testing.T) {
	h := newFakeHAL()
	s := newTestSystem(t, h, nil)

	for _, r := range "hi" {
		h.kbd.ch <- hal.KeyEvent{Press: true, Rune: r}
	}
	h.kbd.ch <- hal.KeyEvent{Code: hal.KeyEnter, Press: true}
	stepUntil(t, s, "typed line", func() bool {
		lines := s.ScrollbackLines(1)
		return len(lines) == 1 && lines[0] == "> hi"
	})

	if !h.led.isOn() {
		t.Fatalf("LED off while the panel is on")
	}
	h.kbd.ch <- hal.KeyEvent{Code: hal.KeyF3, Press: true}
	stepUntil(t, s, "panel sleep", func() bool { return !h.led.isOn() })
}

func TestRotateKeepsScrollback(t *testing.T) {
	h := newFakeHAL()
	s := newTestSystem(t, h, nil)

	s.Submit(Print("before"), gos.Infinite)
	s.Submit(Command{Kind: CmdRotate}, gos.Infinite)

	var termWidth int16
	stepUntil(t, s, "rotation", func() bool {
		if !s.fbGate.Wait(gos.Infinite) {
			return false
		}
		defer s.fbGate.Signal()
		termWidth, _ = s.tdisp.Size()
		return s.disp.Orientation() == gdisp.Rotate90
	})

	if termWidth != 80 {
		t.Fatalf("terminal width after rotation = %d, want 80", termWidth)
	}
	if got := s.ScrollbackLines(1); len(got) != 1 || got[0] != "before" {
		t.Fatalf("scrollback after rotation = %q", got)
	}
}

func TestExternalTicksDriveDemo(t *testing.T) {
	h := newFakeHAL()
	s := newTestSystem(t, h, func(c *Config) {
		c.GOS.Kernel.ExternalTick = true
		c.Demo = true
		c.DemoPeriod = 5
	})

	go func() {
		for seq := uint64(1); seq < 10_000; seq++ {
			select {
			case h.t <- seq:
			case <-s.done:
				return
			}
			time.Sleep(100 * time.Microsecond)
		}
	}()
	stepUntil(t, s, "demo line", func() bool {
		lines := s.ScrollbackLines(100)
		return len(lines) > 0 && strings.HasPrefix(lines[0], "tick 1 ")
	})
}

func TestCloseIsIdempotent(t *testing.T) {
	s := newTestSystem(t, newFakeHAL(), func(c *Config) { c.Demo = true; c.DemoPeriod = 1000 })
	s.Close()
	s.Close()
	if s.Submit(Print("late"), gos.Immediate) {
		t.Fatalf("Submit() after Close = true")
	}
}

func TestStepDoesNotWaitForBusyRenderer(t *testing.T) {
	h := newFakeHAL()
	// External ticks that never arrive: the kernel clock stands still,
	// as it does while the runner that feeds it is inside Step.
	s := newTestSystem(t, h, func(c *Config) { c.GOS.Kernel.ExternalTick = true })

	if !s.fbGate.Wait(gos.Immediate) {
		t.Fatalf("fbGate.Wait(Immediate) = false on an idle system")
	}

	done := make(chan error, 1)
	go func() { done <- s.Step() }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Step() error = %v", err)
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatal("Step() blocked while the framebuffer was held")
	}
	if got := h.fb.presentCount(); got != 0 {
		t.Fatalf("presents while busy = %d, want 0", got)
	}

	s.fbGate.Signal()
	if err := s.Step(); err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if got := h.fb.presentCount(); got != 1 {
		t.Fatalf("presents after release = %d, want 1 (frame kept pending)", got)
	}
}

func TestRefusedControlIsLogged(t *testing.T) {
	h := newFakeHAL()
	s := newTestSystem(t, h, nil)

	s.control(gdisp.ControlCode(99), 1)
	if !h.log.contains("app: control 99=1") {
		t.Fatalf("log = %q, want the refused control", h.log.lines)
	}
}
