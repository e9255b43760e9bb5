package app

import (
	"time"

	"gfxport/gos"
	"gfxport/hal"
)

// Runner adapts New to the HAL runners: it returns the per-frame step and
// the shutdown hook. A construction error is logged and then returned by
// the first step.
func Runner(cfg Config) func(hal.HAL) (func() error, func()) {
	return func(h hal.HAL) (func() error, func()) {
		s, err := New(h, cfg)
		if err != nil {
			h.Logger().WriteLineString("app: " + err.Error())
			return func() error { return err }, nil
		}
		s.Submit(Print("gfxport ready"), gos.Immediate)
		return s.Step, s.Close
	}
}

// Run builds the system and steps it at about 60 Hz forever (TinyGo
// entry point).
func Run(h hal.HAL, cfg Config) {
	step, _ := Runner(cfg)(h)
	for {
		if err := step(); err != nil {
			h.Logger().WriteLineString("app: " + err.Error())
			select {}
		}
		time.Sleep(16 * time.Millisecond)
	}
}
