package overlay

import (
	"time"

	"github.com/vedantwpatil/click-pop/internal/geometry"
)

// Slot is one reusable unit of indicator state. Its index in the pool is
// a stable identity: slots are overwritten and recycled, never destroyed,
// so a renderer can key its own visual elements by index.
type Slot struct {
	Position  geometry.Point
	Variant   Variant
	ExpiresAt time.Time
	Active    bool
}

// Pool is a fixed-capacity arena of slots. Its size never changes after
// construction; at most len(slots) indicators can be visible at once.
type Pool struct {
	slots []Slot
}

// NewPool creates a pool with the given capacity. A capacity of zero (or
// less) yields a pool on which Assign is a no-op.
func NewPool(capacity int) *Pool {
	if capacity < 0 {
		capacity = 0
	}
	return &Pool{slots: make([]Slot, capacity)}
}

// Len returns the fixed pool capacity.
func (p *Pool) Len() int {
	return len(p.slots)
}

// Slot returns a copy of the slot at index i.
func (p *Pool) Slot(i int) Slot {
	return p.slots[i]
}

// Assign claims a slot for a new indicator and returns its index. The
// lowest-index expired slot is reused first; if every slot is still live,
// the one closest to expiring is evicted (ties broken by lowest index).
// Assign never fails on a non-empty pool; on an empty pool it reports
// false and does nothing.
func (p *Pool) Assign(pos geometry.Point, v Variant, now time.Time, d time.Duration) (int, bool) {
	if len(p.slots) == 0 {
		return 0, false
	}

	idx := -1
	for i := range p.slots {
		if !now.Before(p.slots[i].ExpiresAt) {
			idx = i
			break
		}
	}
	if idx == -1 {
		idx = 0
		for i := 1; i < len(p.slots); i++ {
			if p.slots[i].ExpiresAt.Before(p.slots[idx].ExpiresAt) {
				idx = i
			}
		}
	}

	p.slots[idx] = Slot{
		Position:  pos,
		Variant:   v,
		ExpiresAt: now.Add(d),
		Active:    true,
	}
	return idx, true
}

// Refresh recomputes every slot's Active flag from the current time.
// Expiration is a query over timestamps, not a timer event, so a slot's
// visibility transition is observed on the first Refresh at or after its
// expiry.
func (p *Pool) Refresh(now time.Time) {
	for i := range p.slots {
		p.slots[i].Active = now.Before(p.slots[i].ExpiresAt)
	}
}

// ActiveCount returns how many slots are currently live as of the last
// Refresh.
func (p *Pool) ActiveCount() int {
	n := 0
	for i := range p.slots {
		if p.slots[i].Active {
			n++
		}
	}
	return n
}
