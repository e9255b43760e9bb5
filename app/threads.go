package app

import (
	"fmt"

	"gfxport/gdisp"
	"gfxport/gos"
	"gfxport/hal"
)

// tick feeds the HAL tick stream into the kernel timebase.
func (s *System) tick(arg any) int {
	ticks := arg.(<-chan uint64)
	sys := s.os.Kernel()
	for {
		select {
		case seq := <-ticks:
			sys.TickTo(seq)
		case <-sys.Stopped():
			return 0
		}
	}
}

func (s *System) render(any) int {
	applied := 0
	for !s.closing.Load() {
		cmd, ok := s.cmds.Get(renderPoll)
		if !ok {
			continue
		}
		if !s.fbGate.Wait(gos.Infinite) {
			break
		}
		s.apply(cmd)
		s.fbGate.Signal()
		s.swap.Signal()
		applied++
	}
	return applied
}

// apply runs one command. fbGate is held.
func (s *System) apply(cmd Command) {
	switch cmd.Kind {
	case CmdPrint:
		s.scroll.Append(cmd.Text)
		s.term.Write([]byte(cmd.Text + "\n"))
	case CmdClear:
		s.layout()
	case CmdRotate:
		s.control(gdisp.ControlOrientation, int(s.disp.Orientation().Next()))
		s.replay()
	case CmdBacklight:
		level := s.disp.Backlight() - 25
		if level < 0 {
			level = 100
		}
		s.control(gdisp.ControlBacklight, level)
	case CmdPower:
		mode := gdisp.PowerSleep
		if s.disp.Power() != gdisp.PowerOn {
			mode = gdisp.PowerOn
		}
		s.control(gdisp.ControlPower, int(mode))
		s.setLED()
	case CmdReplay:
		s.replay()
	}
}

// control forwards to the panel and logs a refused request.
func (s *System) control(what gdisp.ControlCode, value int) {
	if err := s.disp.Control(what, value); err != nil {
		s.h.Logger().WriteLineString(fmt.Sprintf("app: control %d=%d: %v", what, value, err))
	}
}

// replay redraws the terminal from the scrollback.
func (s *System) replay() {
	s.layout()
	_, h := s.tdisp.Size()
	for _, line := range s.scroll.Tail(int(h) / 10) {
		s.term.Write([]byte(line + "\n"))
	}
}

// input turns key events into commands. Typed text is collected until
// Enter.
func (s *System) input(arg any) int {
	events := arg.(<-chan hal.KeyEvent)
	var line []rune
	for {
		select {
		case <-s.done:
			return 0
		case ev := <-events:
			cmd, ok := keyCommand(ev, &line)
			if ok {
				s.Submit(cmd, inputPutWait)
			}
		}
	}
}

func keyCommand(ev hal.KeyEvent, line *[]rune) (Command, bool) {
	if !ev.Press {
		return Command{}, false
	}
	if ev.Rune != 0 {
		if ev.Rune >= ' ' {
			*line = append(*line, ev.Rune)
		}
		return Command{}, false
	}
	switch ev.Code {
	case hal.KeyEnter:
		text := string(*line)
		*line = (*line)[:0]
		return Print("> %s", text), true
	case hal.KeyBackspace:
		if n := len(*line); n > 0 {
			*line = (*line)[:n-1]
		}
	case hal.KeyEscape:
		return Command{Kind: CmdClear}, true
	case hal.KeyHome:
		return Command{Kind: CmdReplay}, true
	case hal.KeyF1:
		return Command{Kind: CmdRotate}, true
	case hal.KeyF2:
		return Command{Kind: CmdBacklight}, true
	case hal.KeyF3:
		return Command{Kind: CmdPower}, true
	}
	return Command{}, false
}

func (s *System) demo(any) int {
	n := 0
	for {
		s.os.SleepMilliseconds(s.cfg.DemoPeriod)
		if s.closing.Load() {
			return n
		}
		n++
		s.Submit(Print("tick %d at %d", n, s.os.SystemTicks()), gos.Immediate)
	}
}
