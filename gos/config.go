package gos

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gfxport/kernel"

	"github.com/BurntSushi/toml"
)

var (
	ErrUnsupportedKernel = errors.New("unsupported kernel version")
	ErrInvalidConfig     = errors.New("invalid configuration")
)

// DefaultStackSize is the working area given to heap threads created with
// a zero stack size.
const DefaultStackSize = 256

// Config is the portability layer configuration.
type Config struct {
	Kernel kernel.Config `toml:"kernel"`
	GOS    LayerConfig   `toml:"gos"`
}

// LayerConfig holds the settings of the layer itself.
type LayerConfig struct {
	// DefaultStackSize is used for heap threads created with size 0.
	// Zero disables the default.
	DefaultStackSize int `toml:"default_stack_size"`

	// NoInit leaves starting the kernel to the application.
	NoInit bool `toml:"no_init"`

	// InitNoWarning silences the NoInit reminder.
	InitNoWarning bool `toml:"init_no_warning"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Kernel: kernel.DefaultConfig(),
		GOS: LayerConfig{
			DefaultStackSize: DefaultStackSize,
		},
	}
}

// LoadConfig reads a TOML file over the defaults.
func LoadConfig(path string) (Config, error) {
	return LoadConfigOver(path, DefaultConfig())
}

// LoadConfigOver reads a TOML file over base. Keys missing from the file
// keep the value they have in base.
func LoadConfigOver(path string, base Config) (Config, error) {
	cfg := base
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if err := checkUndecoded(meta); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// DecodeConfig reads TOML from r over the defaults.
func DecodeConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	meta, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if err := checkUndecoded(meta); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Encode writes cfg as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

func checkUndecoded(meta toml.MetaData) error {
	keys := meta.Undecoded()
	if len(keys) == 0 {
		return nil
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	return fmt.Errorf("%w: unknown keys %s", ErrInvalidConfig, strings.Join(names, ", "))
}

// Validate reports the first setting the layer cannot run with.
func (c Config) Validate() error {
	if c.Kernel.Major < kernel.MinMajor || c.Kernel.Major > kernel.MaxMajor {
		return fmt.Errorf("%w %d (want %d..%d)", ErrUnsupportedKernel, c.Kernel.Major, kernel.MinMajor, kernel.MaxMajor)
	}
	if c.Kernel.TickHz == 0 {
		return fmt.Errorf("%w: tick_hz must be positive", ErrInvalidConfig)
	}
	if c.Kernel.ExternalTick && c.Kernel.TickHz != kernel.ExternalTickHz {
		return fmt.Errorf("%w: tick_hz must be %d with external_tick (got %d)", ErrInvalidConfig, kernel.ExternalTickHz, c.Kernel.TickHz)
	}
	if c.Kernel.HeapBytes < 0 {
		return fmt.Errorf("%w: heap_bytes must not be negative", ErrInvalidConfig)
	}
	if c.Kernel.HighPriority <= uint8(kernel.LowPrio) {
		return fmt.Errorf("%w: high_priority must be above %d", ErrInvalidConfig, kernel.LowPrio)
	}
	if c.GOS.DefaultStackSize < 0 {
		return fmt.Errorf("%w: default_stack_size must not be negative", ErrInvalidConfig)
	}
	return nil
}
