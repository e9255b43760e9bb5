package gos

import (
	"fmt"
	"sync/atomic"

	"gfxport/kernel"
)

// Logger receives lifecycle lines. hal.Logger satisfies it.
type Logger interface {
	WriteLineString(s string)
}

// Option customizes New.
type Option func(*OS)

// WithLogger sets the lifecycle logger.
func WithLogger(l Logger) Option {
	return func(o *OS) { o.log = l }
}

// WithKernel binds the layer to an existing kernel instead of creating
// one from the configuration. The kernel's own API generation wins.
func WithKernel(sys *kernel.System) Option {
	return func(o *OS) { o.sys = sys }
}

// OS is one instance of the portability layer bound to a kernel.
type OS struct {
	cfg  Config
	sys  *kernel.System
	port port
	log  Logger

	ownsKernel bool

	// epoch identifies the current critical section; see Critical.
	epoch atomic.Uint64
}

// New initializes the layer. Unless the kernel is already running or
// cfg.GOS.NoInit is set, the kernel is started here.
func New(cfg Config, opts ...Option) (*OS, error) {
	o := &OS{cfg: cfg}
	for _, opt := range opts {
		opt(o)
	}
	if o.sys == nil {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		o.sys = kernel.NewSystem(cfg.Kernel)
	}

	p, err := selectPort(o.sys)
	if err != nil {
		return nil, err
	}
	o.port = p
	o.logf("gos: kernel %d.x, %s port, tick %dHz", o.sys.Major(), p.name(), o.sys.TickHz())

	switch {
	case o.sys.Started():
	case cfg.GOS.NoInit:
		if !cfg.GOS.InitNoWarning {
			o.logf("gos: kernel initialization is turned off; start the kernel before using the layer")
		}
	default:
		o.sys.Start()
		o.ownsKernel = true
	}
	return o, nil
}

// Deinit stops the kernel if New started it.
func (o *OS) Deinit() {
	if o.ownsKernel {
		o.sys.Stop()
		o.logf("gos: kernel stopped")
	}
}

// Kernel returns the kernel the layer runs on.
func (o *OS) Kernel() *kernel.System { return o.sys }

// Config returns the configuration the layer was built with.
func (o *OS) Config() Config { return o.cfg }

// Yield gives the processor to other ready contexts.
func (o *OS) Yield() { o.sys.Yield() }

// SystemTicks returns the kernel tick count.
func (o *OS) SystemTicks() uint64 { return o.sys.Ticks() }

// MillisecondsToTicks converts a finite millisecond delay to ticks.
// Sentinels map to their kernel counterparts.
func (o *OS) MillisecondsToTicks(d Delay) kernel.Time {
	switch class, ms := d.Classify(); class {
	case DelayPoll:
		return kernel.TimeImmediate
	case DelayForever:
		return kernel.TimeInfinite
	default:
		return o.sys.MillisecondsToTicks(ms)
	}
}

func (o *OS) logf(format string, args ...any) {
	if o.log == nil {
		return
	}
	o.log.WriteLineString(fmt.Sprintf(format, args...))
}
