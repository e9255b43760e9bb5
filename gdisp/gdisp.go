// Package gdisp is the low-level display driver contract and an RGB565
// framebuffer driver that implements it.
//
// Coordinates are logical: they follow the current orientation, and
// every drawing call is clipped to the active viewport before it reaches
// the panel memory.
package gdisp

import (
	"errors"
	"image/color"

	"gfxport/hal"
)

// Color is a packed RGB565 pixel.
type Color uint16

// RGB packs an 8-bit-per-channel color.
func RGB(r, g, b uint8) Color { return Color(hal.RGB565(r, g, b)) }

// FromRGBA packs c, ignoring alpha.
func FromRGBA(c color.RGBA) Color { return RGB(c.R, c.G, c.B) }

// ToRGBA expands c to an opaque color.RGBA.
func (c Color) ToRGBA() color.RGBA {
	r, g, b := hal.RGB888From565(uint16(c))
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}

const (
	Black Color = 0x0000
	White Color = 0xFFFF
)

// PowerMode is the panel power state.
type PowerMode uint8

const (
	PowerOff PowerMode = iota
	PowerSleep
	PowerOn
)

func (p PowerMode) String() string {
	switch p {
	case PowerOff:
		return "off"
	case PowerSleep:
		return "sleep"
	case PowerOn:
		return "on"
	default:
		return "unknown"
	}
}

// Orientation is the panel rotation, clockwise.
type Orientation uint8

const (
	Rotate0 Orientation = iota
	Rotate90
	Rotate180
	Rotate270
)

// Swapped reports whether o exchanges width and height.
func (o Orientation) Swapped() bool { return o == Rotate90 || o == Rotate270 }

// Next returns the orientation a quarter turn further.
func (o Orientation) Next() Orientation { return (o + 1) % 4 }

// ControlCode selects what Control changes.
type ControlCode uint8

const (
	// ControlPower takes a PowerMode.
	ControlPower ControlCode = iota + 1
	// ControlOrientation takes an Orientation.
	ControlOrientation
	// ControlBacklight takes a percentage 0..100.
	ControlBacklight
	// ControlContrast takes a percentage 0..100.
	ControlContrast
)

var (
	ErrUnsupportedControl = errors.New("gdisp: unsupported control")
	ErrBadFormat          = errors.New("gdisp: framebuffer is not RGB565")
)

// Driver is what a panel driver offers the graphics layer. Optional
// operations that a panel cannot do in hardware are emulated by the
// driver itself.
type Driver interface {
	// Size returns the logical width and height.
	Size() (width, height int)

	DrawPixel(x, y int, c Color)
	Clear(c Color)
	FillArea(x, y, cx, cy int, c Color)

	// BlitArea copies a cx by cy block to (x, y) from src, a bitmap
	// srcStride pixels wide, starting at (srcX, srcY).
	BlitArea(x, y, cx, cy, srcX, srcY, srcStride int, src []Color)

	// PixelColor reads back a pixel; it returns 0 outside the panel.
	PixelColor(x, y int) Color

	// VerticalScroll moves the area up by lines (down if negative) and
	// fills the exposed rows with bg. scratch holds one row; it is
	// allocated per call if shorter than ScratchLen.
	VerticalScroll(x, y, cx, cy, lines int, bg Color, scratch []Color)

	// Control changes a panel setting. Values out of range and unknown
	// codes return ErrUnsupportedControl and change nothing.
	Control(what ControlCode, value int) error

	// Flush makes the drawing visible.
	Flush() error
}

// ScratchLen is the scroll row buffer a Driver of the given physical
// size needs: the larger of its two dimensions.
func ScratchLen(width, height int) int {
	return max(width, height)
}
