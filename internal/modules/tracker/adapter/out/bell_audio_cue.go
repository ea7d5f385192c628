package out

import (
	"context"
	"fmt"
	"io"
	"sync"

	"timelevel/internal/modules/tracker/domain"
	trackerout "timelevel/internal/modules/tracker/port/out"
)

// BellAudioCue rings the terminal bell once per level gained.
type BellAudioCue struct {
	mu sync.Mutex
	w  io.Writer
}

func NewBellAudioCue(w io.Writer) *BellAudioCue {
	return &BellAudioCue{w: w}
}

var _ trackerout.Effect = (*BellAudioCue)(nil)

func (b *BellAudioCue) Name() string { return "bell" }

func (b *BellAudioCue) Kind() trackerout.EffectKind { return trackerout.KindAudio }

func (b *BellAudioCue) Fire(_ context.Context, event domain.LevelUpEvent) error {
	rings := event.Level - event.PreviousLevel
	if rings < 1 {
		rings = 1
	}
	if rings > 3 {
		rings = 3
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := 0; i < rings; i++ {
		if _, err := io.WriteString(b.w, "\a"); err != nil {
			return fmt.Errorf("ring bell: %w", err)
		}
	}
	return nil
}
