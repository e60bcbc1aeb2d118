package tracking

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/vedantwpatil/click-pop/internal/overlay"
)

// logRecord is one line of a JSONL click log. Timestamps are milliseconds
// relative to the log's start so a recording can be replayed against any
// video regardless of wall-clock time.
type logRecord struct {
	TMs    int64   `json:"t_ms"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Button string  `json:"button"`
}

// LogWriter appends clicks to a JSONL file, one record per click. Safe
// for use from the tick loop only.
type LogWriter struct {
	f     *os.File
	w     *bufio.Writer
	start time.Time
}

func NewLogWriter(path string, start time.Time) (*LogWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create click log: %w", err)
	}
	return &LogWriter{f: f, w: bufio.NewWriter(f), start: start}, nil
}

// Write appends one click event.
func (lw *LogWriter) Write(ev overlay.ClickEvent) error {
	rec := logRecord{
		TMs:    ev.Time.Sub(lw.start).Milliseconds(),
		X:      ev.X,
		Y:      ev.Y,
		Button: buttonName(ev.Button),
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode click record: %w", err)
	}
	if _, err := lw.w.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("failed to write click record: %w", err)
	}
	return nil
}

func (lw *LogWriter) Close() error {
	if err := lw.w.Flush(); err != nil {
		lw.f.Close()
		return fmt.Errorf("failed to flush click log: %w", err)
	}
	return lw.f.Close()
}

// ReadLog loads a JSONL click log. Event times are the given base plus
// each record's relative offset, sorted ascending so replay order matches
// arrival order even if the file was edited by hand.
func ReadLog(path string, base time.Time) ([]overlay.ClickEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open click log: %w", err)
	}
	defer f.Close()

	var events []overlay.ClickEvent
	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Bytes()
		if len(text) == 0 {
			continue
		}
		var rec logRecord
		if err := json.Unmarshal(text, &rec); err != nil {
			return nil, fmt.Errorf("failed to parse click log line %d: %w", line, err)
		}
		events = append(events, overlay.ClickEvent{
			X:      rec.X,
			Y:      rec.Y,
			Button: buttonFromName(rec.Button),
			Time:   base.Add(time.Duration(rec.TMs) * time.Millisecond),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read click log: %w", err)
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Time.Before(events[j].Time)
	})
	return events, nil
}

func buttonName(b overlay.Button) string {
	if b == overlay.ButtonRight {
		return "right"
	}
	return "left"
}

func buttonFromName(name string) overlay.Button {
	if name == "right" {
		return overlay.ButtonRight
	}
	return overlay.ButtonLeft
}
