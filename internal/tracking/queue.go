package tracking

import (
	"sync"

	"github.com/vedantwpatil/click-pop/internal/overlay"
)

// Queue is the thread-safe FIFO hand-off between the capture hook's
// callback goroutine and the tick loop. The core never sees it; each tick
// drains one ordered batch.
type Queue struct {
	mu     sync.Mutex
	events []overlay.ClickEvent
}

func NewQueue() *Queue {
	return &Queue{}
}

// Push appends an event, preserving arrival order.
func (q *Queue) Push(ev overlay.ClickEvent) {
	q.mu.Lock()
	q.events = append(q.events, ev)
	q.mu.Unlock()
}

// Drain removes and returns all queued events in arrival order.
func (q *Queue) Drain() []overlay.ClickEvent {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = nil
	return out
}
