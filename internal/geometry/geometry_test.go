package geometry

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-6
}

func TestIdentityMapsPointsUnchanged(t *testing.T) {
	tr := Identity(1920, 1080)

	points := []Point{
		{0, 0},
		{1, 1},
		{959.5, 539.25},
		{1919, 1079},
		{1919.999, 1079.999},
	}
	for _, p := range points {
		got, ok := tr.Map(p)
		if !ok {
			t.Fatalf("Map(%v) rejected a point inside the source", p)
		}
		if !almostEqual(got.X, p.X) || !almostEqual(got.Y, p.Y) {
			t.Errorf("Map(%v) = %v, want the same point", p, got)
		}
	}
}

func TestIdentityRejectsOutside(t *testing.T) {
	tr := Identity(1920, 1080)

	outside := []Point{
		{-5, 10},
		{10, -0.5},
		{1920, 500},
		{500, 1080},
	}
	for _, p := range outside {
		if _, ok := tr.Map(p); ok {
			t.Errorf("Map(%v) accepted a point outside the source", p)
		}
	}
}

func TestCropThenStretchCenter(t *testing.T) {
	// A 1000x1000 crop out of a larger source, stretched onto 500x500.
	tr := RegionTransform{
		CropLeft:     200,
		CropTop:      100,
		CropRight:    720,
		CropBottom:   880,
		ScaleX:       1,
		ScaleY:       1,
		Bounds:       BoundsStretch,
		SourceWidth:  1920,
		SourceHeight: 1980,
		TargetWidth:  500,
		TargetHeight: 500,
	}

	center := Point{X: 200 + 500, Y: 100 + 500}
	got, ok := tr.Map(center)
	if !ok {
		t.Fatal("center of the crop was rejected")
	}
	if !almostEqual(got.X, 250) || !almostEqual(got.Y, 250) {
		t.Errorf("crop center mapped to %v, want (250, 250)", got)
	}
}

func TestCropRejectsOutsideCroppedArea(t *testing.T) {
	tr := RegionTransform{
		CropLeft:     100,
		CropTop:      100,
		ScaleX:       1,
		ScaleY:       1,
		Bounds:       BoundsStretch,
		SourceWidth:  1920,
		SourceHeight: 1080,
		TargetWidth:  1920,
		TargetHeight: 1080,
	}

	// Inside the monitor but left of the cropped area.
	if _, ok := tr.Map(Point{X: 50, Y: 500}); ok {
		t.Error("point inside the cropped-away margin was accepted")
	}
	// First visible pixel.
	if _, ok := tr.Map(Point{X: 100, Y: 100}); !ok {
		t.Error("first visible pixel was rejected")
	}
}

func TestScaleInnerCentersLetterbox(t *testing.T) {
	// 1600x900 source into a square 900x900 target. Inner scale is
	// min(900/1600, 900/900) = 0.5625, content height 506.25, letterbox
	// offset (900-506.25)/2 = 196.875.
	tr := RegionTransform{
		ScaleX:       1,
		ScaleY:       1,
		Bounds:       BoundsScaleInner,
		SourceWidth:  1600,
		SourceHeight: 900,
		TargetWidth:  900,
		TargetHeight: 900,
	}

	got, ok := tr.Map(Point{X: 800, Y: 450})
	if !ok {
		t.Fatal("source center was rejected")
	}
	if !almostEqual(got.X, 450) || !almostEqual(got.Y, 450) {
		t.Errorf("source center mapped to %v, want target center (450, 450)", got)
	}

	got, ok = tr.Map(Point{X: 0, Y: 0})
	if !ok {
		t.Fatal("source origin was rejected")
	}
	wantY := (900 - 900*0.5625) / 2
	if !almostEqual(got.X, 0) || !almostEqual(got.Y, wantY) {
		t.Errorf("source origin mapped to %v, want (0, %v)", got, wantY)
	}
}

func TestScaleOuterClampsOverflow(t *testing.T) {
	// Outer scale overflows the short axis; mapped points past the target
	// edge are clamped, not rejected.
	tr := RegionTransform{
		ScaleX:       1,
		ScaleY:       1,
		Bounds:       BoundsScaleOuter,
		SourceWidth:  1600,
		SourceHeight: 900,
		TargetWidth:  900,
		TargetHeight: 900,
	}

	got, ok := tr.Map(Point{X: 1599, Y: 450})
	if !ok {
		t.Fatal("in-region point was rejected")
	}
	if got.X < 0 || got.X >= 900 {
		t.Errorf("clamped X = %v, want within [0, 900)", got.X)
	}
	if !almostEqual(got.Y, 450) {
		t.Errorf("Y = %v, want 450", got.Y)
	}
}

func TestScaleToWidthAndHeight(t *testing.T) {
	base := RegionTransform{
		ScaleX:       1,
		ScaleY:       1,
		SourceWidth:  1000,
		SourceHeight: 500,
		TargetWidth:  500,
		TargetHeight: 500,
	}

	// Width ratio is 0.5, content height 250 letterboxed at offset 125.
	toWidth := base
	toWidth.Bounds = BoundsScaleToWidth
	got, ok := toWidth.Map(Point{X: 600, Y: 100})
	if !ok {
		t.Fatal("in-region point was rejected")
	}
	if !almostEqual(got.X, 300) || !almostEqual(got.Y, 175) {
		t.Errorf("scale-to-width mapped to %v, want (300, 175)", got)
	}

	// Height ratio is 1; horizontal centering offset is (500-1000)/2 = -250.
	toHeight := base
	toHeight.Bounds = BoundsScaleToHeight
	got, ok = toHeight.Map(Point{X: 500, Y: 250})
	if !ok {
		t.Fatal("in-region point was rejected")
	}
	if !almostEqual(got.X, 250) || !almostEqual(got.Y, 250) {
		t.Errorf("scale-to-height mapped to %v, want (250, 250)", got)
	}
}

func TestFilterScaleComposesAfterBounds(t *testing.T) {
	tr := RegionTransform{
		ScaleX:       0.5,
		ScaleY:       0.5,
		Bounds:       BoundsStretch,
		SourceWidth:  1000,
		SourceHeight: 1000,
		TargetWidth:  1000,
		TargetHeight: 1000,
	}

	got, ok := tr.Map(Point{X: 800, Y: 600})
	if !ok {
		t.Fatal("in-region point was rejected")
	}
	if !almostEqual(got.X, 400) || !almostEqual(got.Y, 300) {
		t.Errorf("filter scale gave %v, want (400, 300)", got)
	}
}

func TestPositionOffsetAppliedLast(t *testing.T) {
	tr := Identity(100, 100)
	tr.PosX = 40
	tr.PosY = 60

	got, ok := tr.Map(Point{X: 10, Y: 20})
	if !ok {
		t.Fatal("in-region point was rejected")
	}
	if !almostEqual(got.X, 50) || !almostEqual(got.Y, 80) {
		t.Errorf("positioned map gave %v, want (50, 80)", got)
	}
}

func TestDegenerateTransformFallsBackToPassThrough(t *testing.T) {
	cases := []RegionTransform{
		{},
		{SourceWidth: -1, SourceHeight: 1080, TargetWidth: 1920, TargetHeight: 1080},
		{SourceWidth: 1920, SourceHeight: 1080, TargetWidth: 0, TargetHeight: 0, Bounds: BoundsStretch},
		{SourceWidth: 1920, SourceHeight: 1080, TargetWidth: 1920, TargetHeight: 1080, ScaleX: -2, ScaleY: 0},
	}
	p := Point{X: 123, Y: 456}
	for i, tr := range cases {
		got, ok := tr.Map(p)
		if !ok {
			t.Fatalf("case %d: degenerate transform rejected an in-range point", i)
		}
		if !almostEqual(got.X, p.X) || !almostEqual(got.Y, p.Y) {
			t.Errorf("case %d: degenerate transform gave %v, want pass-through %v", i, got, p)
		}
	}
}

func TestCropConsumesWholeVisibleArea(t *testing.T) {
	// Crop larger than the source zeroes itself out rather than producing
	// a negative visible area.
	tr := RegionTransform{
		CropLeft:     2000,
		CropTop:      0,
		ScaleX:       1,
		ScaleY:       1,
		SourceWidth:  1920,
		SourceHeight: 1080,
		TargetWidth:  1920,
		TargetHeight: 1080,
	}
	if _, ok := tr.Map(Point{X: 100, Y: 100}); !ok {
		t.Error("over-crop did not fall back to the uncropped region")
	}
}

func TestRoundPx(t *testing.T) {
	cases := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{0.4, 0},
		{0.5, 1},
		{1.5, 2},
		{-0.5, -1},
		{249.5, 250},
	}
	for _, c := range cases {
		if got := RoundPx(c.in); got != c.want {
			t.Errorf("RoundPx(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestMapIsPure(t *testing.T) {
	tr := RegionTransform{
		CropLeft: 10, CropTop: 20,
		ScaleX: 1.25, ScaleY: 1.25,
		Bounds:      BoundsScaleInner,
		SourceWidth: 1920, SourceHeight: 1080,
		TargetWidth: 1280, TargetHeight: 720,
		PosX: 5, PosY: 7,
	}
	p := Point{X: 640, Y: 360}
	first, ok1 := tr.Map(p)
	for i := 0; i < 100; i++ {
		got, ok := tr.Map(p)
		if ok != ok1 || got != first {
			t.Fatal("Map returned different results for identical inputs")
		}
	}
}
