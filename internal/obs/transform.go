package obs

import (
	"errors"
	"fmt"

	"github.com/vedantwpatil/click-pop/internal/geometry"
)

var boundsTypes = map[string]geometry.BoundsType{
	"OBS_BOUNDS_NONE":            geometry.BoundsNone,
	"OBS_BOUNDS_STRETCH":         geometry.BoundsStretch,
	"OBS_BOUNDS_SCALE_INNER":     geometry.BoundsScaleInner,
	"OBS_BOUNDS_SCALE_OUTER":     geometry.BoundsScaleOuter,
	"OBS_BOUNDS_SCALE_TO_WIDTH":  geometry.BoundsScaleToWidth,
	"OBS_BOUNDS_SCALE_TO_HEIGHT": geometry.BoundsScaleToHeight,
}

// CaptureTransform composes the monitor-to-canvas mapping for the named
// display-capture source: its own crop settings, the scene item's crop
// and transform, and any Crop/Pad filter, flattened into one
// RegionTransform. With no source name the whole monitor is assumed to
// stretch across the canvas.
func CaptureTransform(c Caller, scene, source string, monW, monH float64) (geometry.RegionTransform, error) {
	canvasW, canvasH, err := CanvasSize(c)
	if err != nil {
		return geometry.RegionTransform{}, fmt.Errorf("failed to read canvas size: %w", err)
	}

	if source == "" {
		return geometry.RegionTransform{
			ScaleX:       1,
			ScaleY:       1,
			Bounds:       geometry.BoundsStretch,
			SourceWidth:  monW,
			SourceHeight: monH,
			TargetWidth:  float64(canvasW),
			TargetHeight: float64(canvasH),
		}, nil
	}

	itemID, err := SceneItemID(c, scene, source)
	if err != nil {
		return geometry.RegionTransform{}, fmt.Errorf("failed to find capture source %q: %w", source, err)
	}
	tf, err := ItemTransform(c, scene, itemID)
	if err != nil {
		return geometry.RegionTransform{}, fmt.Errorf("failed to read capture transform: %w", err)
	}

	// Source-level crop (the capture source's own Crop Left/Top/... in
	// its properties). Some capture kinds have no such settings; a failed
	// read just contributes zero crop.
	var srcLeft, srcTop, srcRight, srcBottom float64
	if settings, err := InputSettings(c, source); err == nil {
		srcLeft = numberSetting(settings, "cut_left")
		srcTop = numberSetting(settings, "cut_top")
		srcRight = numberSetting(settings, "cut_right")
		srcBottom = numberSetting(settings, "cut_bottom")
	}

	// Crop/Pad filter crop, if one is attached.
	var fltLeft, fltTop, fltRight, fltBottom float64
	filters, err := SourceFilters(c, source)
	if err == nil {
		for _, f := range filters {
			if f.Kind != "crop_filter" {
				continue
			}
			fltLeft = numberSetting(f.Settings, "left")
			fltTop = numberSetting(f.Settings, "top")
			fltRight = numberSetting(f.Settings, "right")
			fltBottom = numberSetting(f.Settings, "bottom")
			break
		}
	}

	out := geometry.RegionTransform{
		CropLeft:     srcLeft + tf.CropLeft + fltLeft,
		CropTop:      srcTop + tf.CropTop + fltTop,
		CropRight:    srcRight + tf.CropRight + fltRight,
		CropBottom:   srcBottom + tf.CropBottom + fltBottom,
		ScaleX:       1,
		ScaleY:       1,
		SourceWidth:  monW,
		SourceHeight: monH,
		PosX:         tf.PositionX,
		PosY:         tf.PositionY,
	}

	bounds, ok := boundsTypes[tf.BoundsType]
	if !ok {
		bounds = geometry.BoundsNone
	}
	out.Bounds = bounds

	if bounds == geometry.BoundsNone {
		// No bounding box: the scene item's scale applies directly and
		// the canvas is the only clamp.
		out.ScaleX = tf.ScaleX
		out.ScaleY = tf.ScaleY
		out.TargetWidth = float64(canvasW)
		out.TargetHeight = float64(canvasH)
	} else {
		out.TargetWidth = tf.BoundsWidth
		out.TargetHeight = tf.BoundsHeight
	}

	return out, nil
}

// IsMissingSource reports whether an error from CaptureTransform means
// the configured source does not currently exist in the scene, which the
// caller treats as "keep the previous transform" rather than fatal.
func IsMissingSource(err error) bool {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Code == 600 // ResourceNotFound
	}
	return false
}
