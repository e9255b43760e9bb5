package gdisp

import "gfxport/hal"

var _ Driver = (*FB)(nil)

// FB drives an RGB565 hal.Framebuffer.
//
// FB is not safe for concurrent use; callers serialize access to it, for
// example with a gos semaphore of limit 1.
type FB struct {
	fb   hal.Framebuffer
	buf  []byte
	pw   int // physical width
	ph   int // physical height
	line int // stride in bytes

	width, height int
	orientation   Orientation
	power         PowerMode
	backlight     int
	contrast      int

	clipX0, clipY0, clipX1, clipY1 int
}

// NewFB returns a powered-on driver over fb in its native orientation.
func NewFB(fb hal.Framebuffer) (*FB, error) {
	if fb == nil || fb.Format() != hal.PixelFormatRGB565 || fb.Buffer() == nil {
		return nil, ErrBadFormat
	}
	d := &FB{
		fb:   fb,
		buf:  fb.Buffer(),
		pw:   fb.Width(),
		ph:   fb.Height(),
		line: fb.StrideBytes(),
	}
	d.reset()
	return d, nil
}

// reset restores the power-on state.
func (d *FB) reset() {
	d.power = PowerOn
	d.backlight = 100
	d.contrast = 50
	d.setOrientation(Rotate0)
}

func (d *FB) setOrientation(o Orientation) {
	d.orientation = o
	if o.Swapped() {
		d.width, d.height = d.ph, d.pw
	} else {
		d.width, d.height = d.pw, d.ph
	}
	d.ResetViewport()
}

func (d *FB) Size() (width, height int) { return d.width, d.height }

// Orientation returns the current rotation.
func (d *FB) Orientation() Orientation { return d.orientation }

// Power returns the current power mode.
func (d *FB) Power() PowerMode { return d.power }

// Backlight returns the backlight level in percent.
func (d *FB) Backlight() int { return d.backlight }

// Contrast returns the contrast in percent.
func (d *FB) Contrast() int { return d.contrast }

// ScratchLen returns the row buffer VerticalScroll needs.
func (d *FB) ScratchLen() int { return ScratchLen(d.pw, d.ph) }

// SetViewport restricts drawing to the given rectangle, clamped to the
// panel.
func (d *FB) SetViewport(x, y, cx, cy int) {
	d.clipX0 = clamp(x, 0, d.width)
	d.clipY0 = clamp(y, 0, d.height)
	d.clipX1 = clamp(x+cx, d.clipX0, d.width)
	d.clipY1 = clamp(y+cy, d.clipY0, d.height)
}

// ResetViewport makes the whole panel drawable.
func (d *FB) ResetViewport() {
	d.clipX0, d.clipY0 = 0, 0
	d.clipX1, d.clipY1 = d.width, d.height
}

// clip narrows a rectangle to the viewport. ok is false if nothing is
// left. dx and dy are how far the origin moved.
func (d *FB) clip(x, y, cx, cy int) (nx, ny, ncx, ncy, dx, dy int, ok bool) {
	if x < d.clipX0 {
		dx = d.clipX0 - x
		cx -= dx
		x = d.clipX0
	}
	if y < d.clipY0 {
		dy = d.clipY0 - y
		cy -= dy
		y = d.clipY0
	}
	if cx <= 0 || cy <= 0 || x >= d.clipX1 || y >= d.clipY1 {
		return 0, 0, 0, 0, 0, 0, false
	}
	if x+cx > d.clipX1 {
		cx = d.clipX1 - x
	}
	if y+cy > d.clipY1 {
		cy = d.clipY1 - y
	}
	return x, y, cx, cy, dx, dy, true
}

// offset maps logical (x, y) to a byte offset in panel memory.
func (d *FB) offset(x, y int) int {
	px, py := x, y
	switch d.orientation {
	case Rotate90:
		px, py = d.pw-1-y, x
	case Rotate180:
		px, py = d.pw-1-x, d.ph-1-y
	case Rotate270:
		px, py = y, d.ph-1-x
	}
	return py*d.line + px*2
}

func (d *FB) put(x, y int, c Color) {
	off := d.offset(x, y)
	d.buf[off] = byte(c)
	d.buf[off+1] = byte(c >> 8)
}

func (d *FB) get(x, y int) Color {
	off := d.offset(x, y)
	return Color(d.buf[off]) | Color(d.buf[off+1])<<8
}

func (d *FB) DrawPixel(x, y int, c Color) {
	if x < d.clipX0 || y < d.clipY0 || x >= d.clipX1 || y >= d.clipY1 {
		return
	}
	d.put(x, y, c)
}

// Clear fills the whole panel, ignoring the viewport.
func (d *FB) Clear(c Color) {
	for y := 0; y < d.ph; y++ {
		row := d.buf[y*d.line : y*d.line+d.pw*2]
		for i := 0; i < len(row); i += 2 {
			row[i] = byte(c)
			row[i+1] = byte(c >> 8)
		}
	}
}

func (d *FB) FillArea(x, y, cx, cy int, c Color) {
	x, y, cx, cy, _, _, ok := d.clip(x, y, cx, cy)
	if !ok {
		return
	}
	for j := y; j < y+cy; j++ {
		for i := x; i < x+cx; i++ {
			d.put(i, j, c)
		}
	}
}

func (d *FB) BlitArea(x, y, cx, cy, srcX, srcY, srcStride int, src []Color) {
	if srcX+cx > srcStride {
		cx = srcStride - srcX
	}
	x, y, cx, cy, dx, dy, ok := d.clip(x, y, cx, cy)
	if !ok {
		return
	}
	srcX += dx
	srcY += dy
	for j := 0; j < cy; j++ {
		base := (srcY+j)*srcStride + srcX
		if base < 0 || base+cx > len(src) {
			return
		}
		for i := 0; i < cx; i++ {
			d.put(x+i, y+j, src[base+i])
		}
	}
}

func (d *FB) PixelColor(x, y int) Color {
	if x < 0 || y < 0 || x >= d.width || y >= d.height {
		return 0
	}
	return d.get(x, y)
}

func (d *FB) VerticalScroll(x, y, cx, cy, lines int, bg Color, scratch []Color) {
	if lines == 0 {
		return
	}
	x, y, cx, cy, _, _, ok := d.clip(x, y, cx, cy)
	if !ok {
		return
	}
	if len(scratch) < cx {
		scratch = make([]Color, d.ScratchLen())
	}
	row := scratch[:cx]

	abs := lines
	if abs < 0 {
		abs = -abs
	}
	gap := 0
	if abs >= cy {
		abs = cy
	} else {
		gap = cy - abs
		for i := 0; i < gap; i++ {
			src, dst := y+i+abs, y+i
			if lines < 0 {
				// Copy bottom-up so rows are read before being overwritten.
				src, dst = y+gap-1-i, y+cy-1-i
			}
			for k := range row {
				row[k] = d.get(x+k, src)
			}
			for k, c := range row {
				d.put(x+k, dst, c)
			}
		}
	}

	fillY := y
	if lines > 0 {
		fillY = y + gap
	}
	for j := fillY; j < fillY+abs; j++ {
		for i := x; i < x+cx; i++ {
			d.put(i, j, bg)
		}
	}
}

func (d *FB) Control(what ControlCode, value int) error {
	switch what {
	case ControlPower:
		mode := PowerMode(value)
		if value < 0 || mode > PowerOn {
			return ErrUnsupportedControl
		}
		if mode == d.power {
			return nil
		}
		if mode == PowerOn && d.power == PowerOff {
			d.reset()
			return nil
		}
		d.power = mode
	case ControlOrientation:
		o := Orientation(value)
		if value < 0 || o > Rotate270 {
			return ErrUnsupportedControl
		}
		if o != d.orientation {
			d.setOrientation(o)
		}
	case ControlBacklight:
		if value < 0 || value > 100 {
			return ErrUnsupportedControl
		}
		d.backlight = value
	case ControlContrast:
		if value < 0 || value > 100 {
			return ErrUnsupportedControl
		}
		d.contrast = value
	default:
		return ErrUnsupportedControl
	}
	return nil
}

// Flush presents the framebuffer. Nothing is shown while the panel is
// off or asleep.
func (d *FB) Flush() error {
	if d.power != PowerOn {
		return nil
	}
	return d.fb.Present()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
