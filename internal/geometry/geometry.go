// Package geometry maps raw monitor-space pointer coordinates into the
// coordinate space of a capture region that may be cropped, scaled by a
// bounding-box policy, and scaled again by a crop/pad filter stage.
package geometry

import "math"

// Point is a position in a continuous pixel space.
type Point struct {
	X float64
	Y float64
}

// BoundsType is the policy for fitting a cropped source into a
// differently-sized target region.
type BoundsType int

const (
	// BoundsNone passes coordinates through unscaled (aside from any
	// explicit ScaleX/ScaleY on the transform).
	BoundsNone BoundsType = iota
	// BoundsStretch fills the target exactly, independent per axis.
	BoundsStretch
	// BoundsScaleInner scales uniformly so the whole source fits inside
	// the target, centering the remaining axis.
	BoundsScaleInner
	// BoundsScaleOuter scales uniformly so the source covers the target,
	// centering the overflowing axis.
	BoundsScaleOuter
	// BoundsScaleToWidth scales uniformly from the width ratio only.
	BoundsScaleToWidth
	// BoundsScaleToHeight scales uniformly from the height ratio only.
	BoundsScaleToHeight
)

// RegionTransform is the flattened composition of every geometric stage
// between monitor space and target space: source crop, bounding-box scale
// with centering, an extra crop/pad filter scale, and placement on the
// canvas. The caller rebuilds it whenever the capture setup changes.
type RegionTransform struct {
	CropLeft   float64
	CropTop    float64
	CropRight  float64
	CropBottom float64

	// ScaleX/ScaleY are the explicit scale contributed by a filter stage
	// (or the scene-item scale when no bounding box is set). 1 means none.
	ScaleX float64
	ScaleY float64

	Bounds BoundsType

	SourceWidth  float64
	SourceHeight float64
	TargetWidth  float64
	TargetHeight float64

	// PosX/PosY place the region on the canvas. They are added after
	// clamping, so clamping operates in region-local coordinates.
	PosX float64
	PosY float64
}

// Identity returns the pass-through transform for a w-by-h space.
func Identity(w, h float64) RegionTransform {
	return RegionTransform{
		ScaleX:       1,
		ScaleY:       1,
		Bounds:       BoundsNone,
		SourceWidth:  w,
		SourceHeight: h,
		TargetWidth:  w,
		TargetHeight: h,
	}
}

// Map converts a monitor-space point into target space. The second return
// value is false when the point lies outside the cropped capture region;
// such clicks produce no indicator. Map is pure: equal inputs always give
// equal outputs.
func (t RegionTransform) Map(p Point) (Point, bool) {
	t = t.sanitized()

	cx := p.X - t.CropLeft
	cy := p.Y - t.CropTop
	cw := t.SourceWidth - t.CropLeft - t.CropRight
	ch := t.SourceHeight - t.CropTop - t.CropBottom
	if cx < 0 || cy < 0 || cx >= cw || cy >= ch {
		return Point{}, false
	}

	// Bounding-box scale plus centering offset. For Stretch both offsets
	// come out zero; for ScaleOuter they may be negative.
	sx, sy := 1.0, 1.0
	offX, offY := 0.0, 0.0
	if t.Bounds != BoundsNone {
		switch t.Bounds {
		case BoundsStretch:
			sx = t.TargetWidth / cw
			sy = t.TargetHeight / ch
		case BoundsScaleInner:
			s := math.Min(t.TargetWidth/cw, t.TargetHeight/ch)
			sx, sy = s, s
		case BoundsScaleOuter:
			s := math.Max(t.TargetWidth/cw, t.TargetHeight/ch)
			sx, sy = s, s
		case BoundsScaleToWidth:
			s := t.TargetWidth / cw
			sx, sy = s, s
		case BoundsScaleToHeight:
			s := t.TargetHeight / ch
			sx, sy = s, s
		}
		offX = (t.TargetWidth - cw*sx) / 2
		offY = (t.TargetHeight - ch*sy) / 2
	}

	// The filter stage applies to the output of the bounding stage, so its
	// scale multiplies the centering offset as well.
	x := (cx*sx + offX) * t.ScaleX
	y := (cy*sy + offY) * t.ScaleY

	x = clampHalfOpen(x, t.TargetWidth)
	y = clampHalfOpen(y, t.TargetHeight)

	return Point{X: x + t.PosX, Y: y + t.PosY}, true
}

// sanitized degrades degenerate transforms to safe values instead of
// letting a zero dimension divide. The host validates configuration; this
// is the no-crash fallback when it has not.
func (t RegionTransform) sanitized() RegionTransform {
	if t.CropLeft < 0 {
		t.CropLeft = 0
	}
	if t.CropTop < 0 {
		t.CropTop = 0
	}
	if t.CropRight < 0 {
		t.CropRight = 0
	}
	if t.CropBottom < 0 {
		t.CropBottom = 0
	}
	if t.ScaleX <= 0 {
		t.ScaleX = 1
	}
	if t.ScaleY <= 0 {
		t.ScaleY = 1
	}
	if t.SourceWidth <= 0 || t.SourceHeight <= 0 {
		t.SourceWidth = math.Inf(1)
		t.SourceHeight = math.Inf(1)
		t.CropLeft, t.CropTop, t.CropRight, t.CropBottom = 0, 0, 0, 0
		t.Bounds = BoundsNone
	}
	if t.SourceWidth-t.CropLeft-t.CropRight <= 0 ||
		t.SourceHeight-t.CropTop-t.CropBottom <= 0 {
		t.CropLeft, t.CropTop, t.CropRight, t.CropBottom = 0, 0, 0, 0
	}
	if t.TargetWidth <= 0 || t.TargetHeight <= 0 {
		t.TargetWidth = math.Inf(1)
		t.TargetHeight = math.Inf(1)
		t.Bounds = BoundsNone
	}
	return t
}

// clampHalfOpen confines v to [0, limit). Points already inside the
// cropped region can land a fraction of a pixel outside the target after
// scaling, so they are pulled back rather than rejected.
func clampHalfOpen(v, limit float64) float64 {
	if v < 0 {
		return 0
	}
	if v >= limit {
		return math.Nextafter(limit, 0)
	}
	return v
}

// RoundPx converts a continuous coordinate to the integer pixel emitted
// for rendering, rounding half away from zero.
func RoundPx(v float64) int {
	return int(math.Round(v))
}
