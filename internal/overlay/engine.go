// Package overlay holds the click-indicator core: a fixed arena of
// time-limited slots and the per-tick step that turns queued clicks into
// render instructions. The core is single-threaded and owns no external
// resources; the caller drives it from a fixed-cadence tick loop and
// hands the output to a renderer.
package overlay

import (
	"time"

	"github.com/vedantwpatil/click-pop/internal/geometry"
)

// Button identifies which mouse button produced a click.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
)

// Variant selects which indicator image a slot shows.
type Variant int

const (
	LeftImage Variant = iota
	RightImage
)

// VariantFor maps a click's button to its indicator variant.
func VariantFor(b Button) Variant {
	if b == ButtonRight {
		return RightImage
	}
	return LeftImage
}

// ClickEvent is one pointer click in monitor space, produced by the
// capture listener and consumed exactly once by a tick.
type ClickEvent struct {
	X      float64
	Y      float64
	Button Button
	Time   time.Time
}

// RenderInstruction tells the renderer what one slot should look like
// right now. One instruction is emitted per slot index every tick, with
// Visible false for expired slots, so the renderer can reconcile and hide
// elements without tracking transitions itself.
type RenderInstruction struct {
	Slot    int
	X       int
	Y       int
	Variant Variant
	Visible bool
}

// Engine binds the coordinate mapper, the slot pool and the expiration
// query into the per-tick step.
type Engine struct {
	pool     *Pool
	duration time.Duration
}

// NewEngine creates an engine with a pool of maxSimultaneous slots, each
// indicator living for the given duration after assignment.
func NewEngine(maxSimultaneous int, duration time.Duration) *Engine {
	return &Engine{
		pool:     NewPool(maxSimultaneous),
		duration: duration,
	}
}

// Tick processes one batch of clicks at the given time against the given
// capture transform and returns the full render state. Events are handled
// in arrival order; clicks that fall outside the captured region claim no
// slot. Tick never blocks and never fails.
func (e *Engine) Tick(events []ClickEvent, now time.Time, tr geometry.RegionTransform) []RenderInstruction {
	for _, ev := range events {
		pos, ok := tr.Map(geometry.Point{X: ev.X, Y: ev.Y})
		if !ok {
			continue
		}
		e.pool.Assign(pos, VariantFor(ev.Button), now, e.duration)
	}

	// The whole pool is re-examined, not just slots touched this tick:
	// previously active slots may have expired on their own.
	e.pool.Refresh(now)

	out := make([]RenderInstruction, e.pool.Len())
	for i := range out {
		s := e.pool.Slot(i)
		out[i] = RenderInstruction{
			Slot:    i,
			X:       geometry.RoundPx(s.Position.X),
			Y:       geometry.RoundPx(s.Position.Y),
			Variant: s.Variant,
			Visible: s.Active,
		}
	}
	return out
}

// Pool exposes the engine's slot arena for inspection.
func (e *Engine) Pool() *Pool {
	return e.pool
}
