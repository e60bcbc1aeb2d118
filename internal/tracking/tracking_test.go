package tracking

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/vedantwpatil/click-pop/internal/overlay"
)

func TestQueueDrainsInArrivalOrder(t *testing.T) {
	q := NewQueue()
	for i := 0; i < 5; i++ {
		q.Push(overlay.ClickEvent{X: float64(i)})
	}

	got := q.Drain()
	if len(got) != 5 {
		t.Fatalf("drained %d events, want 5", len(got))
	}
	for i, ev := range got {
		if ev.X != float64(i) {
			t.Fatalf("event %d has X=%v, order not preserved", i, ev.X)
		}
	}

	if q.Drain() != nil {
		t.Fatal("second drain returned events")
	}
}

func TestQueueConcurrentPush(t *testing.T) {
	q := NewQueue()
	var wg sync.WaitGroup
	const writers, perWriter = 8, 100

	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				q.Push(overlay.ClickEvent{})
			}
		}()
	}
	wg.Wait()

	if got := len(q.Drain()); got != writers*perWriter {
		t.Fatalf("drained %d events, want %d", got, writers*perWriter)
	}
}

func TestLogRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clicks.jsonl")
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	lw, err := NewLogWriter(path, start)
	if err != nil {
		t.Fatal(err)
	}
	in := []overlay.ClickEvent{
		{X: 100, Y: 200, Button: overlay.ButtonLeft, Time: start},
		{X: 300.5, Y: 400, Button: overlay.ButtonRight, Time: start.Add(250 * time.Millisecond)},
	}
	for _, ev := range in {
		if err := lw.Write(ev); err != nil {
			t.Fatal(err)
		}
	}
	if err := lw.Close(); err != nil {
		t.Fatal(err)
	}

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	got, err := ReadLog(path, base)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("read %d events, want 2", len(got))
	}
	if got[0].X != 100 || got[0].Button != overlay.ButtonLeft || !got[0].Time.Equal(base) {
		t.Errorf("first event round-tripped as %+v", got[0])
	}
	if got[1].X != 300.5 || got[1].Button != overlay.ButtonRight ||
		!got[1].Time.Equal(base.Add(250*time.Millisecond)) {
		t.Errorf("second event round-tripped as %+v", got[1])
	}
}
