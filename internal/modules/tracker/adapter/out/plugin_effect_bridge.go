package out

import (
	"context"
	"fmt"
	"strings"

	effectsdto "timelevel/internal/modules/effects/dto"
	effectsin "timelevel/internal/modules/effects/port/in"
	"timelevel/internal/modules/tracker/domain"
	trackerout "timelevel/internal/modules/tracker/port/out"
)

// PluginEffectBridge forwards level-ups to external effect plugins of one
// capability. Register one bridge per capability so the audio and confetti
// switches gate plugins the same way they gate the built-in effects.
type PluginEffectBridge struct {
	effects    effectsin.Usecase
	capability string
	kind       trackerout.EffectKind
}

func NewAudioPluginBridge(effects effectsin.Usecase) *PluginEffectBridge {
	return &PluginEffectBridge{effects: effects, capability: "audio", kind: trackerout.KindAudio}
}

func NewVisualPluginBridge(effects effectsin.Usecase) *PluginEffectBridge {
	return &PluginEffectBridge{effects: effects, capability: "visual", kind: trackerout.KindVisual}
}

var _ trackerout.Effect = (*PluginEffectBridge)(nil)

func (b *PluginEffectBridge) Name() string { return "plugins:" + b.capability }

func (b *PluginEffectBridge) Kind() trackerout.EffectKind { return b.kind }

func (b *PluginEffectBridge) Fire(ctx context.Context, event domain.LevelUpEvent) error {
	out, err := b.effects.Celebrate(ctx, effectsdto.CelebrateInput{
		Capability:    b.capability,
		Level:         event.Level,
		PreviousLevel: event.PreviousLevel,
		Badge:         domain.Badge(event.Level),
		At:            event.At,
		TotalText:     event.TotalText,
		SessionText:   event.SessionText,
		Language:      string(event.Language),
	})
	if err != nil {
		return err
	}
	if len(out.Failed) == 0 {
		return nil
	}
	names := make([]string, 0, len(out.Failed))
	for _, f := range out.Failed {
		names = append(names, f.Plugin)
	}
	return fmt.Errorf("%d effect plugin(s) failed: %s", len(out.Failed), strings.Join(names, ", "))
}
