// Package video composites click indicators into an already-recorded
// video offline: a click log is replayed through the same overlay engine
// the live path uses, one tick per frame.
package video

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"time"

	vidio "github.com/AlexEidt/Vidio"
	"go.uber.org/zap"
	xdraw "golang.org/x/image/draw"

	"github.com/vedantwpatil/click-pop/internal/config"
	"github.com/vedantwpatil/click-pop/internal/geometry"
	"github.com/vedantwpatil/click-pop/internal/overlay"
	"github.com/vedantwpatil/click-pop/internal/tracking"
)

// Burner renders a click log into a video file.
type Burner struct {
	cfg *config.Config
	log *zap.Logger
}

func NewBurner(cfg *config.Config, log *zap.Logger) *Burner {
	return &Burner{cfg: cfg, log: log}
}

// Burn reads inputPath frame by frame, advances the overlay engine to
// each frame's timestamp feeding it the log's clicks as they come due,
// stamps the visible indicators into the frame, and writes outputPath.
func (b *Burner) Burn(inputPath, clickLogPath, outputPath string) error {
	video, err := vidio.NewVideo(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input video: %w", err)
	}
	defer video.Close()

	w, h, fps := video.Width(), video.Height(), video.FPS()
	if fps <= 0 {
		fps = 30
	}

	base := time.Unix(0, 0).UTC()
	events, err := tracking.ReadLog(clickLogPath, base)
	if err != nil {
		return err
	}

	// Click coordinates are monitor-space; the recording is assumed to
	// cover the whole monitor, stretched to the frame size.
	monW, monH := float64(b.cfg.Monitor.Width), float64(b.cfg.Monitor.Height)
	if monW <= 0 || monH <= 0 {
		monW, monH = float64(w), float64(h)
	}
	tr := geometry.RegionTransform{
		ScaleX: 1, ScaleY: 1,
		Bounds:      geometry.BoundsStretch,
		SourceWidth: monW, SourceHeight: monH,
		TargetWidth: float64(w), TargetHeight: float64(h),
	}

	left, err := loadIndicator(b.cfg.Overlay.LeftImage, b.cfg.Overlay.DiameterPX, color.NRGBA{R: 255, G: 200, B: 0, A: 160})
	if err != nil {
		return fmt.Errorf("failed to load left indicator: %w", err)
	}
	right, err := loadIndicator(b.cfg.Overlay.RightImage, b.cfg.Overlay.DiameterPX, color.NRGBA{R: 255, G: 60, B: 60, A: 160})
	if err != nil {
		return fmt.Errorf("failed to load right indicator: %w", err)
	}

	writer, err := vidio.NewVideoWriter(outputPath, w, h, &vidio.Options{FPS: fps})
	if err != nil {
		return fmt.Errorf("failed to create output video: %w", err)
	}
	defer writer.Close()

	engine := overlay.NewEngine(b.cfg.Overlay.MaxSimultaneous, b.cfg.Duration())

	frameIdx := 0
	nextEvent := 0
	stamped := 0
	for video.Read() {
		now := base.Add(frameTime(frameIdx, fps))

		var batch []overlay.ClickEvent
		for nextEvent < len(events) && !events[nextEvent].Time.After(now) {
			batch = append(batch, events[nextEvent])
			nextEvent++
		}

		instructions := engine.Tick(batch, now, tr)

		frame := &image.RGBA{
			Pix:    video.FrameBuffer(),
			Stride: 4 * w,
			Rect:   image.Rect(0, 0, w, h),
		}
		for _, in := range instructions {
			if !in.Visible {
				continue
			}
			img := left
			if in.Variant == overlay.RightImage {
				img = right
			}
			stampIndicator(frame, img, in.X, in.Y)
			stamped++
		}

		if err := writer.Write(video.FrameBuffer()); err != nil {
			return fmt.Errorf("failed to write frame %d: %w", frameIdx, err)
		}
		frameIdx++
	}

	b.log.Info("burn complete",
		zap.Int("frames", frameIdx),
		zap.Int("clicks", len(events)),
		zap.Int("stamps", stamped),
		zap.String("output", outputPath))
	return nil
}

// frameTime is the timestamp of frame i at the given rate.
func frameTime(i int, fps float64) time.Duration {
	return time.Duration(float64(i) / fps * float64(time.Second))
}

// stampIndicator alpha-composites img onto frame centered on (x, y).
func stampIndicator(frame *image.RGBA, img image.Image, x, y int) {
	b := img.Bounds()
	dst := image.Rect(
		x-b.Dx()/2, y-b.Dy()/2,
		x-b.Dx()/2+b.Dx(), y-b.Dy()/2+b.Dy(),
	)
	xdraw.Draw(frame, dst, img, b.Min, xdraw.Over)
}

// loadIndicator decodes an indicator image scaled to the configured
// diameter. With no path configured it synthesizes a soft filled circle
// so the burner works without any assets.
func loadIndicator(path string, diameter int, fallback color.NRGBA) (*image.RGBA, error) {
	if diameter <= 0 {
		diameter = 60
	}
	if path == "" {
		return circleImage(diameter, fallback), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}

	dst := image.NewRGBA(image.Rect(0, 0, diameter, diameter))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst, nil
}

// circleImage draws a filled antialiased-enough circle of the given
// diameter and color.
func circleImage(diameter int, c color.NRGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, diameter, diameter))
	r := float64(diameter) / 2
	for y := 0; y < diameter; y++ {
		for x := 0; x < diameter; x++ {
			dx := float64(x) + 0.5 - r
			dy := float64(y) + 0.5 - r
			if dx*dx+dy*dy <= r*r {
				img.SetRGBA(x, y, color.RGBA{
					R: uint8(int(c.R) * int(c.A) / 255),
					G: uint8(int(c.G) * int(c.A) / 255),
					B: uint8(int(c.B) * int(c.A) / 255),
					A: c.A,
				})
			}
		}
	}
	return img
}
