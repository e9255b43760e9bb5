package gdisp

import (
	"image/color"

	"tinygo.org/x/drivers"
)

// Region is a rectangle in logical display coordinates.
type Region struct {
	X, Y, W, H int
}

// TermDisplay presents a region of a Driver as a tinyterm/tinyfont
// display. Coordinates it receives are relative to the region and are
// clipped to it.
type TermDisplay struct {
	d       Driver
	r       Region
	scratch []Color
}

// NewTermDisplay returns a display over region r of d.
func NewTermDisplay(d Driver, r Region) *TermDisplay {
	w, h := d.Size()
	return &TermDisplay{d: d, r: r, scratch: make([]Color, ScratchLen(w, h))}
}

// Region returns the area this display covers.
func (t *TermDisplay) Region() Region { return t.r }

func (t *TermDisplay) Size() (x, y int16) {
	return int16(t.r.W), int16(t.r.H)
}

func (t *TermDisplay) SetPixel(x, y int16, c color.RGBA) {
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= t.r.W || iy < 0 || iy >= t.r.H {
		return
	}
	t.d.DrawPixel(t.r.X+ix, t.r.Y+iy, FromRGBA(c))
}

// Display is a no-op; the owner decides when to Flush the driver.
func (t *TermDisplay) Display() error { return nil }

func (t *TermDisplay) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	x0 := clamp(int(x), 0, t.r.W)
	y0 := clamp(int(y), 0, t.r.H)
	x1 := clamp(int(x)+int(width), 0, t.r.W)
	y1 := clamp(int(y)+int(height), 0, t.r.H)
	if x0 >= x1 || y0 >= y1 {
		return nil
	}
	t.d.FillArea(t.r.X+x0, t.r.Y+y0, x1-x0, y1-y0, FromRGBA(c))
	return nil
}

// ScrollUp moves the region's content up by lines pixels.
func (t *TermDisplay) ScrollUp(lines int16, bg color.RGBA) error {
	if lines <= 0 {
		return nil
	}
	t.d.VerticalScroll(t.r.X, t.r.Y, t.r.W, t.r.H, int(lines), FromRGBA(bg), t.scratch)
	return nil
}

// SetScroll is unused: the terminal scrolls in software.
func (t *TermDisplay) SetScroll(line int16) {}

// SetRotation is not supported per region; rotate the Driver instead.
func (t *TermDisplay) SetRotation(rotation drivers.Rotation) error {
	return ErrUnsupportedControl
}
