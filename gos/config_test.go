package gos

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gfxport/kernel"
)

func TestDecodeConfigOverDefaults(t *testing.T) {
	cfg, err := DecodeConfig(strings.NewReader(`
[kernel]
major = 3
tick_hz = 100

[gos]
default_stack_size = 0
`))
	if err != nil {
		t.Fatalf("DecodeConfig() error = %v", err)
	}
	if cfg.Kernel.Major != 3 || cfg.Kernel.TickHz != 100 {
		t.Fatalf("kernel = %+v, want major 3, tick 100", cfg.Kernel)
	}
	if cfg.Kernel.HeapBytes != DefaultConfig().Kernel.HeapBytes {
		t.Fatalf("heap_bytes = %d, want default", cfg.Kernel.HeapBytes)
	}
	if cfg.GOS.DefaultStackSize != 0 {
		t.Fatalf("default_stack_size = %d, want 0", cfg.GOS.DefaultStackSize)
	}
}

func TestDecodeConfigErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		toml string
		want error
	}{
		{"unknown key", "[kernel]\nmajr = 4\n", ErrInvalidConfig},
		{"major", "[kernel]\nmajor = 7\n", ErrUnsupportedKernel},
		{"tick", "[kernel]\ntick_hz = 0\n", ErrInvalidConfig},
		{"priority", "[kernel]\nhigh_priority = 1\n", ErrInvalidConfig},
		{"stack", "[gos]\ndefault_stack_size = -4\n", ErrInvalidConfig},
		{"external tick rate", "[kernel]\nexternal_tick = true\ntick_hz = 100\n", ErrInvalidConfig},
	} {
		if _, err := DecodeConfig(strings.NewReader(tc.toml)); !errors.Is(err, tc.want) {
			t.Fatalf("%s: DecodeConfig() error = %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestLoadConfigReadsEncodedFile(t *testing.T) {
	want := DefaultConfig()
	want.Kernel.Major = 4
	want.GOS.NoInit = true

	var buf bytes.Buffer
	if err := want.Encode(&buf); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	path := filepath.Join(t.TempDir(), "gos.toml")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if got != want {
		t.Fatalf("LoadConfig() = %+v, want %+v", got, want)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("LoadConfig(missing) error = nil")
	}
}

func TestExternalTickNeedsStreamRate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Kernel.ExternalTick = true
	cfg.Kernel.TickHz = 100
	if _, err := New(cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("New(external_tick, 100Hz) error = %v, want %v", err, ErrInvalidConfig)
	}

	cfg.Kernel.TickHz = kernel.ExternalTickHz
	o, err := New(cfg)
	if err != nil {
		t.Fatalf("New(external_tick, %dHz) error = %v", kernel.ExternalTickHz, err)
	}
	defer o.Deinit()

	// Feed one tick per millisecond, as the HAL stream does.
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		tk := time.NewTicker(time.Millisecond)
		defer tk.Stop()
		var seq uint64
		for {
			select {
			case <-stop:
				return
			case <-tk.C:
				seq++
				o.Kernel().TickTo(seq)
			}
		}
	}()

	s := o.NewSem(0, 1)
	start := time.Now()
	if s.Wait(50) {
		t.Fatalf("Wait(50) ok = true on an empty semaphore")
	}
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Fatalf("Wait(50) with 1ms external ticks returned after %v", elapsed)
	}
}

func TestLoadConfigOverKeepsBase(t *testing.T) {
	base := DefaultConfig()
	base.Kernel.ExternalTick = true

	path := filepath.Join(t.TempDir(), "gos.toml")
	if err := os.WriteFile(path, []byte("[kernel]\nmajor = 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadConfigOver(path, base)
	if err != nil {
		t.Fatalf("LoadConfigOver() error = %v", err)
	}
	if !got.Kernel.ExternalTick || got.Kernel.Major != 4 {
		t.Fatalf("LoadConfigOver() kernel = %+v, want external tick kept and major 4", got.Kernel)
	}
}
