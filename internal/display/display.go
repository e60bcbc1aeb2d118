// Package display probes the local monitor layout so the host can hand
// the core one coordinate space: the primary monitor's size, the HiDPI
// scale factor, and which display contains a given point.
package display

import (
	"image"

	"github.com/go-vgo/robotgo"
	"github.com/kbinani/screenshot"
)

// PrimarySize returns the primary monitor's logical size in pixels,
// falling back to 1920x1080 when detection fails.
func PrimarySize() (int, int) {
	w, h := robotgo.GetScreenSize()
	if w <= 0 || h <= 0 {
		return 1920, 1080
	}
	return w, h
}

// ScaleFactor returns the primary display's backing scale factor (2.0 on
// typical HiDPI/Retina setups, 1.0 otherwise). Pointer hooks report
// logical points on such displays while capture sources work in physical
// pixels, so click coordinates must be multiplied by this factor.
func ScaleFactor() float64 {
	s := robotgo.ScaleF()
	if s <= 0 {
		return 1
	}
	return s
}

// Bounds returns the bounds of every active display in the virtual
// screen's coordinate space.
func Bounds() []image.Rectangle {
	n := screenshot.NumActiveDisplays()
	out := make([]image.Rectangle, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, screenshot.GetDisplayBounds(i))
	}
	return out
}

// Find returns the bounds of the display containing (x, y), or false if
// the point lies on no display.
func Find(x, y int, displays []image.Rectangle) (image.Rectangle, bool) {
	for _, d := range displays {
		if x >= d.Min.X && x < d.Max.X && y >= d.Min.Y && y < d.Max.Y {
			return d, true
		}
	}
	return image.Rectangle{}, false
}
