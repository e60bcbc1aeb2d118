package obs

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/vedantwpatil/click-pop/internal/config"
	"github.com/vedantwpatil/click-pop/internal/overlay"
)

// sourcePrefix names the pool-backed image sources so a crashed previous
// session's leftovers are recognizable and reusable.
const sourcePrefix = "__click_pop_"

// itemState is the last state applied to one slot's OBS source, kept so
// redundant requests are skipped: at 60Hz most ticks change nothing.
type itemState struct {
	created bool
	itemID  int
	file    string
	x       int
	y       int
	visible bool
}

// Renderer reconciles the core's render instructions against one OBS
// image source per slot index. Sources are created lazily on a slot's
// first visible instruction and removed on Close.
type Renderer struct {
	client Caller
	scene  string
	cfg    config.Overlay
	log    *zap.Logger
	items  []itemState
}

func NewRenderer(client Caller, scene string, cfg config.Overlay, log *zap.Logger) *Renderer {
	return &Renderer{
		client: client,
		scene:  scene,
		cfg:    cfg,
		log:    log,
		items:  make([]itemState, cfg.MaxSimultaneous),
	}
}

func (r *Renderer) sourceName(slot int) string {
	return fmt.Sprintf("%s%d", sourcePrefix, slot)
}

func (r *Renderer) imageFor(v overlay.Variant) string {
	if v == overlay.RightImage {
		return r.cfg.RightImage
	}
	return r.cfg.LeftImage
}

// Apply pushes one tick's instructions to OBS. Instructions arrive for
// every slot every tick; only differences against the cached state cost
// a request.
func (r *Renderer) Apply(instructions []overlay.RenderInstruction) error {
	for _, in := range instructions {
		if in.Slot < 0 || in.Slot >= len(r.items) {
			continue
		}
		if err := r.applyOne(in); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) applyOne(in overlay.RenderInstruction) error {
	st := &r.items[in.Slot]

	// Never materialize a source for a slot that has not shown anything.
	if !st.created && !in.Visible {
		return nil
	}

	file := r.imageFor(in.Variant)

	if !st.created {
		id, err := CreateImageInput(r.client, r.scene, r.sourceName(in.Slot), file)
		adopted := false
		if err != nil {
			// A leftover source from a previous run: adopt it instead.
			id, err = SceneItemID(r.client, r.scene, r.sourceName(in.Slot))
			if err != nil {
				return fmt.Errorf("failed to create indicator source: %w", err)
			}
			adopted = true
		}
		st.created = true
		st.itemID = id
		st.file = file
		if adopted {
			// An adopted source still shows whatever image it had last
			// run; clear the cache so the swap below rewrites it.
			st.file = ""
		}
		st.visible = false
		// Force the first transform write below.
		st.x, st.y = in.X+1, in.Y+1
		r.log.Debug("created indicator source",
			zap.Int("slot", in.Slot), zap.Int("itemId", id))
	}

	if in.Visible && st.file != file {
		if err := SetImageFile(r.client, r.sourceName(in.Slot), file); err != nil {
			return fmt.Errorf("failed to swap indicator image: %w", err)
		}
		st.file = file
	}

	if in.Visible && (st.x != in.X || st.y != in.Y) {
		// The core reports the click point; the image is centered on it.
		half := float64(r.cfg.DiameterPX) / 2
		err := SetItemBounds(r.client, r.scene, st.itemID,
			float64(in.X)-half, float64(in.Y)-half, float64(r.cfg.DiameterPX))
		if err != nil {
			return fmt.Errorf("failed to position indicator: %w", err)
		}
		st.x, st.y = in.X, in.Y
	}

	if st.visible != in.Visible {
		if err := SetItemEnabled(r.client, r.scene, st.itemID, in.Visible); err != nil {
			return fmt.Errorf("failed to toggle indicator: %w", err)
		}
		st.visible = in.Visible
	}

	return nil
}

// Close removes every source this renderer created so nothing lingers in
// the user's scene after shutdown.
func (r *Renderer) Close() error {
	var firstErr error
	for slot, st := range r.items {
		if !st.created {
			continue
		}
		if err := RemoveInput(r.client, r.sourceName(slot)); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to remove indicator source %d: %w", slot, err)
		}
		r.items[slot] = itemState{}
	}
	return firstErr
}
