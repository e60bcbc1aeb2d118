// Package sound plays an optional audible click when an indicator
// spawns. Decoded once into memory; playback is fire-and-forget.
package sound

import (
	"fmt"
	"os"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
)

// Player holds one decoded click sample.
type Player struct {
	buf *beep.Buffer
}

// NewPlayer loads a wav file and initializes the speaker for its format.
func NewPlayer(path string) (*Player, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open click sound: %w", err)
	}

	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to decode click sound: %w", err)
	}

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(50*time.Millisecond)); err != nil {
		streamer.Close()
		return nil, fmt.Errorf("failed to init speaker: %w", err)
	}

	buf := beep.NewBuffer(format)
	buf.Append(streamer)
	streamer.Close()

	return &Player{buf: buf}, nil
}

// Play starts the click sample without blocking. Overlapping plays mix.
func (p *Player) Play() {
	speaker.Play(p.buf.Streamer(0, p.buf.Len()))
}

// Close stops all playback.
func (p *Player) Close() error {
	speaker.Clear()
	return nil
}
