package video

import (
	"image"
	"image/color"
	"testing"
	"time"
)

func TestFrameTime(t *testing.T) {
	cases := []struct {
		frame int
		fps   float64
		want  time.Duration
	}{
		{0, 30, 0},
		{30, 30, time.Second},
		{15, 30, 500 * time.Millisecond},
		{60, 60, time.Second},
	}
	for _, c := range cases {
		if got := frameTime(c.frame, c.fps); got != c.want {
			t.Errorf("frameTime(%d, %v) = %v, want %v", c.frame, c.fps, got, c.want)
		}
	}
}

func TestCircleImageShape(t *testing.T) {
	img := circleImage(60, color.NRGBA{R: 255, A: 200})

	if img.Bounds().Dx() != 60 || img.Bounds().Dy() != 60 {
		t.Fatalf("circle bounds = %v, want 60x60", img.Bounds())
	}
	if _, _, _, a := img.At(30, 30).RGBA(); a == 0 {
		t.Error("circle center is transparent")
	}
	if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
		t.Error("circle corner is opaque")
	}
}

func TestStampIndicatorCentersOnPoint(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 100, 100))
	dot := circleImage(10, color.NRGBA{G: 255, A: 255})

	stampIndicator(frame, dot, 50, 50)

	if _, g, _, _ := frame.At(50, 50).RGBA(); g == 0 {
		t.Error("nothing stamped at the click point")
	}
	if _, g, _, _ := frame.At(50, 44).RGBA(); g != 0 {
		t.Error("stamp leaked above its radius")
	}
	if _, g, _, _ := frame.At(70, 70).RGBA(); g != 0 {
		t.Error("stamp leaked far from the click point")
	}
}

func TestStampIndicatorClipsAtEdges(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 100, 100))
	dot := circleImage(20, color.NRGBA{B: 255, A: 255})

	// Near the origin: the stamp rectangle extends off-frame and must be
	// clipped, not panic or wrap.
	stampIndicator(frame, dot, 0, 0)
	if _, _, b, _ := frame.At(2, 2).RGBA(); b == 0 {
		t.Error("edge stamp drew nothing inside the frame")
	}
}

func TestLoadIndicatorFallsBackToCircle(t *testing.T) {
	img, err := loadIndicator("", 40, color.NRGBA{R: 255, A: 255})
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 40 {
		t.Errorf("fallback diameter = %d, want 40", img.Bounds().Dx())
	}
}

func TestLoadIndicatorMissingFile(t *testing.T) {
	if _, err := loadIndicator("/does/not/exist.png", 40, color.NRGBA{}); err == nil {
		t.Fatal("missing image file did not error")
	}
}
