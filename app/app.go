package app

import (
	"fmt"
	"image/color"
	"sync/atomic"

	"gfxport/gdisp"
	"gfxport/gos"
	"gfxport/gqueue"
	"gfxport/hal"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
	"tinygo.org/x/tinyterm"
)

const (
	queueDepth   = 16
	statusHeight = 12

	renderPoll   = gos.Delay(50)
	inputPutWait = gos.Delay(10)
)

var (
	termFont = &proggy.TinySZ8pt7b

	fg       = color.RGBA{R: 0xE0, G: 0xE0, B: 0xE0, A: 0xFF}
	bg       = color.RGBA{A: 0xFF}
	statusFG = color.RGBA{R: 0x10, G: 0x10, B: 0x10, A: 0xFF}
	statusBG = color.RGBA{R: 0x60, G: 0xC0, B: 0x60, A: 0xFF}
)

// Config configures the demo system.
type Config struct {
	GOS gos.Config

	// Demo starts a thread that prints a line every DemoPeriod.
	Demo       bool
	DemoPeriod gos.Delay
}

// DefaultConfig drives the kernel from the HAL tick stream.
func DefaultConfig() Config {
	cfg := gos.DefaultConfig()
	cfg.Kernel.ExternalTick = true
	return Config{GOS: cfg, Demo: true, DemoPeriod: 500}
}

// System renders a text console through the portability layer.
//
// Worker threads feed commands into a bounded queue; the render thread
// applies them to the framebuffer while holding fbGate, then signals
// swap. Step, called once per frame by the HAL runner, presents at most
// one frame per signal no matter how many commands were applied.
type System struct {
	cfg Config
	h   hal.HAL
	os  *gos.OS

	disp   *gdisp.FB
	tdisp  *gdisp.TermDisplay
	status *gdisp.TermDisplay
	term   *tinyterm.Terminal

	fbGate *gos.Sem // exclusive framebuffer access
	swap   *gos.Sem // a rendered frame is waiting to be presented
	cmds   *gqueue.Sync[Command]

	// scroll is guarded by fbGate.
	scroll *Scrollback

	threads []*gos.ThreadHandle
	closing atomic.Bool
	done    chan struct{}

	frames    atomic.Uint64
	presented atomic.Uint64
}

// New builds the system on h and starts its threads.
func New(h hal.HAL, cfg Config) (*System, error) {
	if cfg.DemoPeriod == gos.Immediate {
		cfg.DemoPeriod = DefaultConfig().DemoPeriod
	}
	o, err := gos.New(cfg.GOS, gos.WithLogger(h.Logger()))
	if err != nil {
		return nil, err
	}

	var fb hal.Framebuffer
	if d := h.Display(); d != nil {
		fb = d.Framebuffer()
	}
	disp, err := gdisp.NewFB(fb)
	if err != nil {
		o.Deinit()
		return nil, fmt.Errorf("display: %w", err)
	}

	s := &System{
		cfg:    cfg,
		h:      h,
		os:     o,
		disp:   disp,
		fbGate: o.NewSem(1, 1),
		swap:   o.NewSem(0, 1),
		cmds:   gqueue.New[Command](o, queueDepth),
		scroll: NewScrollback(o),
		done:   make(chan struct{}),
	}
	s.layout()
	s.setLED()

	if err := s.startThreads(); err != nil {
		s.Close()
		return nil, err
	}
	s.swap.Signal()
	return s, nil
}

func (s *System) startThreads() error {
	if s.cfg.GOS.Kernel.ExternalTick {
		if t := s.h.Time(); t != nil && t.Ticks() != nil {
			if err := s.spawn("tick", gos.HighPriority, s.tick, t.Ticks()); err != nil {
				return err
			}
		}
	}
	if err := s.spawn("render", gos.NormalPriority, s.render, nil); err != nil {
		return err
	}
	if in := s.h.Input(); in != nil && in.Keyboard() != nil {
		if err := s.spawn("input", gos.NormalPriority+32, s.input, in.Keyboard().Events()); err != nil {
			return err
		}
	}
	if s.cfg.Demo {
		if err := s.spawn("demo", gos.LowPriority, s.demo, nil); err != nil {
			return err
		}
	}
	return nil
}

func (s *System) spawn(name string, prio gos.Priority, fn gos.ThreadFunc, arg any) error {
	t := s.os.ThreadCreate(nil, 0, prio, fn, arg)
	if t == nil {
		return fmt.Errorf("app: cannot create %s thread", name)
	}
	s.threads = append(s.threads, t)
	return nil
}

// layout splits the panel into the terminal and the status line and
// resets the terminal. It must be called with fbGate held, or before the
// threads start.
func (s *System) layout() {
	w, h := s.disp.Size()
	s.disp.Clear(gdisp.FromRGBA(bg))
	s.tdisp = gdisp.NewTermDisplay(s.disp, gdisp.Region{W: w, H: h - statusHeight})
	s.status = gdisp.NewTermDisplay(s.disp, gdisp.Region{Y: h - statusHeight, W: w, H: statusHeight})

	s.term = tinyterm.NewTerminal(s.tdisp)
	s.term.Configure(&tinyterm.Config{
		Font:              termFont,
		FontHeight:        10,
		FontOffset:        6,
		UseSoftwareScroll: true,
	})
}

// Submit queues cmd, waiting up to d for room.
func (s *System) Submit(cmd Command, d gos.Delay) bool {
	if s.closing.Load() {
		return false
	}
	return s.cmds.Put(cmd, d)
}

// Step presents the latest frame if one is ready. It never blocks: the
// HAL runner calling it may be the one advancing the kernel clock.
func (s *System) Step() error {
	s.frames.Add(1)
	if !s.swap.Wait(gos.Immediate) {
		return nil
	}
	if !s.fbGate.Wait(gos.Immediate) {
		// Renderer is busy; keep the frame pending.
		s.swap.Signal()
		return nil
	}
	s.drawStatus()
	err := s.disp.Flush()
	s.fbGate.Signal()
	s.presented.Add(1)
	return err
}

// Frames returns the number of Step calls and how many presented.
func (s *System) Frames() (steps, presented uint64) {
	return s.frames.Load(), s.presented.Load()
}

// ScrollbackLines returns the last n printed lines.
func (s *System) ScrollbackLines(n int) []string {
	if !s.fbGate.Wait(gos.Infinite) {
		return nil
	}
	defer s.fbGate.Signal()
	return s.scroll.Tail(n)
}

// Close stops the threads and the kernel. The system cannot be used
// afterwards.
func (s *System) Close() {
	if !s.closing.CompareAndSwap(false, true) {
		return
	}
	close(s.done)
	// Stopping the kernel releases every sleep and wait.
	s.os.Deinit()
	s.cmds.Destroy()
	for _, t := range s.threads {
		t.Wait()
		t.Close()
	}
	s.threads = nil
	s.scroll.Release()
}

func (s *System) drawStatus() {
	_ = s.status.FillRectangle(0, 0, int16(s.status.Region().W), statusHeight, statusBG)
	line := fmt.Sprintf("%s %d lines %dB bl%d%%", s.disp.Power(), s.scroll.Len(), s.scroll.Bytes(), s.disp.Backlight())
	tinyfont.WriteLine(s.status, termFont, 2, 9, line, statusFG)
}

func (s *System) setLED() {
	led := s.h.LED()
	if led == nil {
		return
	}
	if s.disp.Power() == gdisp.PowerOn {
		led.High()
	} else {
		led.Low()
	}
}
