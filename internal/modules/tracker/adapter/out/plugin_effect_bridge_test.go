package out_test

import (
	"context"
	"strings"
	"testing"
	"time"

	effectsdto "timelevel/internal/modules/effects/dto"
	trackerout "timelevel/internal/modules/tracker/adapter/out"
	"timelevel/internal/modules/tracker/domain"
	trackerport "timelevel/internal/modules/tracker/port/out"
	"timelevel/internal/platform/i18n"
)

type fakeEffects struct {
	got    []effectsdto.CelebrateInput
	failed []effectsdto.CelebrateFailure
}

func (f *fakeEffects) List(context.Context) ([]effectsdto.PluginInfo, error) { return nil, nil }

func (f *fakeEffects) Doctor(context.Context) ([]effectsdto.DoctorResult, error) { return nil, nil }

func (f *fakeEffects) Celebrate(_ context.Context, input effectsdto.CelebrateInput) (effectsdto.CelebrateOutput, error) {
	f.got = append(f.got, input)
	return effectsdto.CelebrateOutput{Failed: f.failed}, nil
}

func TestPluginBridgesCarryCapabilityAndKind(t *testing.T) {
	t.Parallel()
	effects := &fakeEffects{}
	audio := trackerout.NewAudioPluginBridge(effects)
	visual := trackerout.NewVisualPluginBridge(effects)
	if audio.Kind() != trackerport.KindAudio || visual.Kind() != trackerport.KindVisual {
		t.Fatalf("unexpected kinds %s / %s", audio.Kind(), visual.Kind())
	}

	event := domain.LevelUpEvent{
		Level:         4,
		PreviousLevel: 3,
		At:            time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		Language:      i18n.English,
		TotalText:     "30h0min0s",
	}
	if err := audio.Fire(context.Background(), event); err != nil {
		t.Fatalf("fire audio: %v", err)
	}
	if err := visual.Fire(context.Background(), event); err != nil {
		t.Fatalf("fire visual: %v", err)
	}
	if len(effects.got) != 2 || effects.got[0].Capability != "audio" || effects.got[1].Capability != "visual" {
		t.Fatalf("unexpected celebrations %+v", effects.got)
	}
	if effects.got[0].Badge != domain.Badge(4) || effects.got[0].Language != "en" || effects.got[0].TotalText != "30h0min0s" {
		t.Fatalf("event fields not forwarded: %+v", effects.got[0])
	}
}

func TestPluginBridgeReportsFailedPlugins(t *testing.T) {
	t.Parallel()
	effects := &fakeEffects{failed: []effectsdto.CelebrateFailure{{Plugin: "chime", Error: "boom"}}}
	err := trackerout.NewAudioPluginBridge(effects).Fire(context.Background(), domain.LevelUpEvent{Level: 2, PreviousLevel: 1})
	if err == nil || !strings.Contains(err.Error(), "chime") {
		t.Fatalf("expected failure naming chime, got %v", err)
	}
}
