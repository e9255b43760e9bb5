package gdisp

import (
	"image/color"
	"testing"

	"tinygo.org/x/tinyterm"
)

var _ tinyterm.Displayer = (*TermDisplay)(nil)

func TestTermDisplayTranslatesAndClips(t *testing.T) {
	d, mem := newTestFB(t, 8, 8)
	td := NewTermDisplay(d, Region{X: 2, Y: 3, W: 4, H: 2})

	if w, h := td.Size(); w != 4 || h != 2 {
		t.Fatalf("Size() = %d, %d, want 4, 2", w, h)
	}

	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	td.SetPixel(0, 0, white)
	td.SetPixel(4, 0, white)
	if mem.at(2, 3) != White || mem.at(6, 3) != Black {
		t.Fatalf("SetPixel: (2,3) = %#x, (6,3) = %#x", mem.at(2, 3), mem.at(6, 3))
	}

	td.FillRectangle(-5, -5, 100, 100, white)
	if mem.at(5, 4) != White || mem.at(6, 4) != Black || mem.at(2, 5) != Black {
		t.Fatalf("FillRectangle leaked outside the region")
	}
}

func TestTermDisplayScrollUp(t *testing.T) {
	d, mem := newTestFB(t, 2, 4)
	fillRows(d, 4)
	td := NewTermDisplay(d, Region{X: 0, Y: 1, W: 2, H: 3})

	td.ScrollUp(1, color.RGBA{})
	want := []Color{1, 3, 4, 0}
	for y, w := range want {
		if got := mem.at(0, y); got != w {
			t.Fatalf("row %d = %d, want %d", y, got, w)
		}
	}
}
