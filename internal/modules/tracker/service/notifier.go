package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"timelevel/internal/modules/tracker/domain"
	trackerout "timelevel/internal/modules/tracker/port/out"
	"timelevel/internal/platform/i18n"
	"timelevel/internal/platform/id"
	"timelevel/internal/platform/logging"
)

const effectTimeout = 10 * time.Second

// Notifier turns a rising level edge into a LevelUpEvent and fans it out to
// the registered effects. Each effect runs on its own goroutine; a failure or
// panic in one never reaches the others.
type Notifier struct {
	effects []trackerout.Effect
	ids     id.Generator
	metrics trackerout.Metrics
	logger  *slog.Logger
}

func NewNotifier(ids id.Generator, metrics trackerout.Metrics, logger *slog.Logger, effects ...trackerout.Effect) *Notifier {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Notifier{effects: effects, ids: ids, metrics: metrics, logger: logging.OrDiscard(logger)}
}

// Event builds the event for a reading that leveled up.
func (n *Notifier) Event(reading domain.Reading, prefs domain.Preferences) domain.LevelUpEvent {
	units := i18n.For(prefs.Language).Units
	return domain.LevelUpEvent{
		ID:            n.ids.New(),
		At:            reading.At.In(prefs.Calendar.Location()),
		Level:         reading.Evaluation.Level,
		PreviousLevel: reading.PreviousLevel,
		TotalMs:       reading.TotalMs,
		SessionMs:     reading.SessionMs,
		HoursPerLevel: prefs.HoursPerLevel,
		Language:      prefs.Language,
		TotalText:     domain.FormatDuration(reading.TotalMs, true, units),
		SessionText:   domain.FormatDuration(reading.SessionMs, true, units),
	}
}

// Notify fires every enabled effect once and waits for all of them. The
// returned error joins the individual failures and is informational only.
func (n *Notifier) Notify(ctx context.Context, event domain.LevelUpEvent, prefs domain.Preferences) error {
	n.metrics.LevelUp(event.Level)
	n.logger.Info("level up", "level", event.Level, "total", event.TotalText, "session", event.SessionText)

	ctx, cancel := context.WithTimeout(ctx, effectTimeout)
	defer cancel()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, effect := range n.effects {
		if !enabled(effect.Kind(), prefs) {
			continue
		}
		wg.Add(1)
		go func(effect trackerout.Effect) {
			defer wg.Done()
			if err := fire(ctx, effect, event); err != nil {
				n.metrics.EffectFailed(effect.Name())
				n.logger.Warn("level-up effect failed", "effect", effect.Name(), "level", event.Level, "err", err)
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}(effect)
	}
	wg.Wait()
	return errors.Join(errs...)
}

func enabled(kind trackerout.EffectKind, prefs domain.Preferences) bool {
	switch kind {
	case trackerout.KindAudio:
		return prefs.EnableAudio
	case trackerout.KindVisual:
		return prefs.EnableConfetti
	default:
		return true
	}
}

func fire(ctx context.Context, effect trackerout.Effect, event domain.LevelUpEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s panicked: %v", effect.Name(), r)
		}
	}()
	if err := effect.Fire(ctx, event); err != nil {
		return fmt.Errorf("%s: %w", effect.Name(), err)
	}
	return nil
}
