package out

import (
	"context"
	"io"
	"time"

	"timelevel/internal/modules/tracker/domain"
)

// StatsStore persists the accumulated total and the daily histogram.
type StatsStore interface {
	Load(ctx context.Context) (domain.Stats, error)
	Save(ctx context.Context, stats domain.Stats) error
}

type PreferencesSource interface {
	Preferences(ctx context.Context) (domain.Preferences, error)
}

type EffectKind string

const (
	KindAudio  EffectKind = "audio"
	KindVisual EffectKind = "visual"
	KindLog    EffectKind = "log"
)

// Effect is one fire-and-forget reaction to a level-up. Audio and visual
// effects are gated by the user settings; log effects always run.
type Effect interface {
	Name() string
	Kind() EffectKind
	Fire(ctx context.Context, event domain.LevelUpEvent) error
}

type LevelHistory interface {
	Record(ctx context.Context, event domain.LevelUpEvent) error
	List(ctx context.Context, limit int) ([]domain.LevelUpEvent, error)
}

type HeatmapRenderer interface {
	Render(w io.Writer, buckets []domain.DayBucket, labels domain.HeatmapLabels) error
}

// Metrics observes the tracker lifecycle.
type Metrics interface {
	CheckpointDone(d time.Duration, err error)
	Observe(totalMs, sessionMs int64, level int)
	LevelUp(level int)
	EffectFailed(name string)
}
