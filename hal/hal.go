package hal

import "errors"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// LED is a single status output.
type LED interface {
	High()
	Low()
}

var ErrNotImplemented = errors.New("not implemented")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp little endian: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is the panel's pixel memory plus a hook that pushes it to
// the glass.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// Display provides access to the framebuffer, if the board has one.
type Display interface {
	Framebuffer() Framebuffer
}

// KeyCode identifies a non-text key.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyHome
	KeyF1
	KeyF2
	KeyF3
)

// KeyEvent is either a key transition (Code set) or typed text (Rune set).
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

// Keyboard delivers key events on a best-effort basis; events are dropped
// when nobody reads them.
type Keyboard interface {
	Events() <-chan KeyEvent
}

// Input provides access to input devices, if any.
type Input interface {
	Keyboard() Keyboard
}

// Time provides the millisecond tick stream that drives the kernel
// timebase.
type Time interface {
	Ticks() <-chan uint64
}

// HAL is the only contact point between the system and the board.
type HAL interface {
	Logger() Logger
	LED() LED
	Display() Display
	Input() Input
	Time() Time
}
