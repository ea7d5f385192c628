package app

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	settingsdto "timelevel/internal/modules/settings/dto"
	trackerdto "timelevel/internal/modules/tracker/dto"
)

type fakeTracker struct {
	mu          sync.Mutex
	checkpoints int
	interval    time.Duration
}

func (f *fakeTracker) Start(context.Context) (trackerdto.StatusOutput, error) {
	return trackerdto.StatusOutput{Level: 1, Badge: "⭐"}, nil
}

func (f *fakeTracker) Tick(context.Context) (trackerdto.StatusOutput, error) {
	return trackerdto.StatusOutput{Level: 1, Badge: "⭐"}, nil
}

func (f *fakeTracker) Checkpoint(context.Context) error {
	f.mu.Lock()
	f.checkpoints++
	f.mu.Unlock()
	return nil
}

func (f *fakeTracker) SaveInterval(context.Context) time.Duration { return f.interval }

func (f *fakeTracker) Heatmap(context.Context, int) (trackerdto.HeatmapOutput, error) {
	return trackerdto.HeatmapOutput{}, nil
}

type fakeSettings struct {
	key, value string
}

func (f *fakeSettings) Set(_ context.Context, key, value string) (settingsdto.SettingsOutput, error) {
	f.key, f.value = key, value
	return settingsdto.SettingsOutput{}, nil
}

func TestPersistenceTimerIsRearmedOnIntervalChange(t *testing.T) {
	t.Parallel()
	tracker := &fakeTracker{interval: 5 * time.Second}
	model := NewModel(tracker, nil, nil)

	next, _ := model.Update(startedMsg{interval: 5 * time.Second})
	model = next.(Model)
	if model.persistGen != 1 || !model.started {
		t.Fatalf("expected first persistence timer, gen=%d", model.persistGen)
	}

	next, _ = model.Update(tickedMsg{interval: 5 * time.Second})
	model = next.(Model)
	if model.persistGen != 1 {
		t.Fatalf("unchanged interval must keep the timer, gen=%d", model.persistGen)
	}

	next, _ = model.Update(tickedMsg{interval: 2 * time.Second})
	model = next.(Model)
	if model.persistGen != 2 || model.interval != 2*time.Second {
		t.Fatalf("expected re-armed timer, gen=%d interval=%s", model.persistGen, model.interval)
	}

	if _, cmd := model.Update(persistTickMsg{gen: 1}); cmd != nil {
		t.Fatalf("stale persistence tick must be ignored")
	}
	if _, cmd := model.Update(persistTickMsg{gen: 2}); cmd == nil {
		t.Fatalf("current persistence tick must checkpoint and re-schedule")
	}
}

func TestPaletteSetDelegatesToSettings(t *testing.T) {
	t.Parallel()
	settings := &fakeSettings{}
	model := NewModel(&fakeTracker{interval: time.Second}, settings, nil)

	_, cmd := model.executePalette("set prefixText Grand total")
	if cmd == nil {
		t.Fatalf("expected a settings command")
	}
	msg, ok := cmd().(settingChangedMsg)
	if !ok || msg.err != nil {
		t.Fatalf("unexpected message %#v", msg)
	}
	if settings.key != "prefixText" || settings.value != "Grand total" {
		t.Fatalf("unexpected set %q=%q", settings.key, settings.value)
	}
}

func TestCelebrationStartsConfetti(t *testing.T) {
	t.Parallel()
	ch := make(chan trackerdto.Celebration, 1)
	model := NewModel(&fakeTracker{interval: time.Second}, nil, ch)

	next, cmd := model.Update(celebrationMsg{celebration: trackerdto.Celebration{Level: 2, Badge: "🌱"}, ok: true})
	model = next.(Model)
	if !model.confetti.Visible() || cmd == nil {
		t.Fatalf("expected a confetti burst")
	}
	if model.status != "level 2 🌱" {
		t.Fatalf("unexpected status %q", model.status)
	}
}

func TestManualCheckpointWaitsForStart(t *testing.T) {
	t.Parallel()
	tracker := &fakeTracker{interval: 5 * time.Second}
	model := NewModel(tracker, nil, nil)
	key := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")}

	next, cmd := model.Update(key)
	if cmd != nil {
		t.Fatalf("c before start must not schedule a save")
	}
	if _, cmd := next.(Model).executePalette("checkpoint"); cmd != nil {
		t.Fatalf("checkpoint command before start must not schedule a save")
	}

	next, _ = model.Update(startedMsg{interval: 5 * time.Second})
	model = next.(Model)
	_, cmd = model.Update(key)
	if cmd == nil {
		t.Fatalf("c after start must schedule a save")
	}
	if _, ok := cmd().(checkpointDoneMsg); !ok {
		t.Fatalf("expected a checkpoint result")
	}
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	if tracker.checkpoints != 1 {
		t.Fatalf("expected exactly one checkpoint, got %d", tracker.checkpoints)
	}
}
