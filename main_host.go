//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"gfxport/app"
	"gfxport/gos"
	"gfxport/hal"
)

func main() {
	var hcfg hal.HeadlessConfig
	var configPath string
	var demo bool
	var kernelMajor int
	flag.BoolVar(&hcfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&hcfg.Hz, "hz", 60, "Frame rate in headless mode.")
	flag.Uint64Var(&hcfg.Frames, "frames", 0, "Stop after N frames in headless mode (0 = run forever).")
	flag.StringVar(&configPath, "config", "", "TOML configuration file.")
	flag.BoolVar(&demo, "demo", true, "Run the demo thread.")
	flag.IntVar(&kernelMajor, "kernel", 0, "Kernel major version override (2..5).")
	flag.Parse()

	cfg := app.DefaultConfig()
	if configPath != "" {
		g, err := gos.LoadConfigOver(configPath, cfg.GOS)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		cfg.GOS = g
	}
	if kernelMajor != 0 {
		cfg.GOS.Kernel.Major = kernelMajor
	}
	cfg.Demo = demo

	if hcfg.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, app.Runner(cfg), hcfg); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := hal.RunWindow(app.Runner(cfg)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
