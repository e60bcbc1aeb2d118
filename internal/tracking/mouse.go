// Package tracking captures global mouse clicks and queues them for the
// tick loop.
package tracking

import (
	"context"
	"time"

	hook "github.com/robotn/gohook"
	"go.uber.org/zap"

	"github.com/vedantwpatil/click-pop/internal/overlay"
)

// Listener registers a global mouse-down hook and pushes click events
// into a queue. Coordinates are multiplied by scale at capture time so
// the rest of the pipeline works in physical pixels even on HiDPI
// displays that report logical points.
type Listener struct {
	queue *Queue
	scale float64
	log   *zap.Logger
}

func NewListener(queue *Queue, scale float64, log *zap.Logger) *Listener {
	if scale <= 0 {
		scale = 1
	}
	return &Listener{queue: queue, scale: scale, log: log}
}

// Run blocks until the context is cancelled, feeding clicks into the
// queue from the OS hook. Only left and right button presses are queued;
// movement and other buttons are ignored.
func (l *Listener) Run(ctx context.Context) {
	hook.Register(hook.MouseDown, []string{}, func(e hook.Event) {
		var button overlay.Button
		switch e.Button {
		case hook.MouseMap["left"]:
			button = overlay.ButtonLeft
		case hook.MouseMap["right"]:
			button = overlay.ButtonRight
		default:
			return
		}

		l.queue.Push(overlay.ClickEvent{
			X:      float64(e.X) * l.scale,
			Y:      float64(e.Y) * l.scale,
			Button: button,
			Time:   time.Now(),
		})
	})

	evChan := hook.Start()
	done := make(chan struct{})
	go func() {
		<-hook.Process(evChan)
		close(done)
	}()

	l.log.Info("mouse listener started", zap.Float64("scale", l.scale))

	select {
	case <-ctx.Done():
		hook.End()
		<-done
	case <-done:
	}

	l.log.Info("mouse listener stopped")
}
