package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"timelevel/internal/modules/tracker/domain"
	"timelevel/internal/modules/tracker/dto"
	trackerin "timelevel/internal/modules/tracker/port/in"
	trackerout "timelevel/internal/modules/tracker/port/out"
	"timelevel/internal/modules/tracker/service"
	apperrors "timelevel/internal/platform/errors"
	"timelevel/internal/platform/i18n"
	"timelevel/internal/platform/logging"
)

const (
	displayInterval = time.Second
	shutdownTimeout = 15 * time.Second
	maxHeatmapDays  = 3660
)

type Interactor struct {
	svc      *service.TrackerService
	notifier *service.Notifier
	prefs    trackerout.PreferencesSource
	history  trackerout.LevelHistory
	renderer trackerout.HeatmapRenderer
	logger   *slog.Logger

	dispatches sync.WaitGroup
}

func NewInteractor(
	svc *service.TrackerService,
	notifier *service.Notifier,
	prefs trackerout.PreferencesSource,
	history trackerout.LevelHistory,
	renderer trackerout.HeatmapRenderer,
	logger *slog.Logger,
) trackerin.Usecase {
	return &Interactor{
		svc:      svc,
		notifier: notifier,
		prefs:    prefs,
		history:  history,
		renderer: renderer,
		logger:   logging.OrDiscard(logger),
	}
}

func (i *Interactor) preferences(ctx context.Context) domain.Preferences {
	prefs, err := i.prefs.Preferences(ctx)
	if err != nil {
		i.logger.Warn("settings unavailable, using defaults", "err", err)
		return domain.DefaultPreferences()
	}
	if prefs.HoursPerLevel < 1 {
		prefs.HoursPerLevel = 1
	}
	return prefs
}

func (i *Interactor) Start(ctx context.Context) (dto.StatusOutput, error) {
	prefs := i.preferences(ctx)
	return toStatus(i.svc.Load(ctx, prefs), prefs), nil
}

// Tick is the display tick: it evaluates the live total and, on a rising
// level edge, dispatches the notification without waiting for it.
func (i *Interactor) Tick(ctx context.Context) (dto.StatusOutput, error) {
	prefs := i.preferences(ctx)
	i.svc.SetCalendar(prefs.Calendar)
	reading := i.svc.Tick(prefs.HoursPerLevel)
	if reading.Evaluation.LeveledUp {
		i.dispatch(i.notifier.Event(reading, prefs), prefs)
	}
	return toStatus(reading, prefs), nil
}

func (i *Interactor) dispatch(event domain.LevelUpEvent, prefs domain.Preferences) {
	i.dispatches.Add(1)
	go func() {
		defer i.dispatches.Done()
		_ = i.notifier.Notify(context.Background(), event, prefs)
	}()
}

func (i *Interactor) Status(ctx context.Context) (dto.StatusOutput, error) {
	prefs := i.preferences(ctx)
	return toStatus(i.svc.Peek(prefs.HoursPerLevel), prefs), nil
}

func (i *Interactor) Checkpoint(ctx context.Context) error {
	i.svc.SetCalendar(i.preferences(ctx).Calendar)
	return i.svc.Checkpoint(ctx)
}

// Shutdown persists the session, then waits for notifications still in flight
// until ctx expires.
func (i *Interactor) Shutdown(ctx context.Context) error {
	err := i.svc.FinalCheckpoint(ctx)
	done := make(chan struct{})
	go func() {
		i.dispatches.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		i.logger.Warn("level-up effects still running at shutdown")
	}
	return err
}

func (i *Interactor) SaveInterval(ctx context.Context) time.Duration {
	interval := i.preferences(ctx).SaveInterval
	if interval < time.Second {
		return time.Second
	}
	return interval
}

func (i *Interactor) Heatmap(ctx context.Context, input dto.HeatmapInput) (dto.HeatmapOutput, error) {
	days, err := heatmapDays(input.Days)
	if err != nil {
		return dto.HeatmapOutput{}, err
	}
	prefs := i.preferences(ctx)
	i.svc.SetCalendar(prefs.Calendar)
	table := i18n.For(prefs.Language)
	buckets := i.svc.Heatmap(days)
	maxMs := domain.MaxMs(buckets)

	cells := make([]dto.HeatmapCell, 0, len(buckets))
	for _, b := range buckets {
		level := domain.Intensity(b.Ms, maxMs)
		cells = append(cells, dto.HeatmapCell{
			DayKey:    b.DayKey,
			Date:      b.Date,
			Ms:        b.Ms,
			Minutes:   domain.RoundMinutes(b.Ms),
			Weekday:   int(b.Date.Weekday()),
			Intensity: level,
			Color:     domain.HeatColors[level],
		})
	}
	return dto.HeatmapOutput{
		Title:    table.HeatmapTitle,
		MinUnit:  table.MinUnit,
		Weekdays: table.Weekdays,
		MaxMs:    maxMs,
		Cells:    cells,
	}, nil
}

func (i *Interactor) ExportHeatmap(ctx context.Context, input dto.ExportHeatmapInput) error {
	if input.Writer == nil {
		return fmt.Errorf("heatmap writer is required: %w", apperrors.ErrInvalidInput)
	}
	if i.renderer == nil {
		return fmt.Errorf("heatmap renderer is not configured")
	}
	days, err := heatmapDays(input.Days)
	if err != nil {
		return err
	}
	prefs := i.preferences(ctx)
	i.svc.SetCalendar(prefs.Calendar)
	table := i18n.For(prefs.Language)
	labels := domain.HeatmapLabels{Title: table.HeatmapTitle, Unit: table.MinUnit, Weekdays: table.Weekdays}
	return i.renderer.Render(input.Writer, i.svc.Heatmap(days), labels)
}

func heatmapDays(days int) (int, error) {
	if days == 0 {
		return 365, nil
	}
	if days < 0 || days > maxHeatmapDays {
		return 0, fmt.Errorf("days must be between 1 and %d: %w", maxHeatmapDays, apperrors.ErrInvalidInput)
	}
	return days, nil
}

func (i *Interactor) History(ctx context.Context, input dto.HistoryInput) ([]dto.LevelUpOutput, error) {
	if i.history == nil {
		return nil, fmt.Errorf("level history is not configured")
	}
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}
	events, err := i.history.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LevelUpOutput, 0, len(events))
	for _, e := range events {
		out = append(out, dto.LevelUpOutput{
			ID:            e.ID,
			At:            e.At,
			Level:         e.Level,
			PreviousLevel: e.PreviousLevel,
			Badge:         domain.Badge(e.Level),
			TotalMs:       e.TotalMs,
			SessionMs:     e.SessionMs,
			TotalText:     e.TotalText,
			SessionText:   e.SessionText,
		})
	}
	return out, nil
}

// Run drives both periodic tasks until ctx is cancelled, then performs the
// final checkpoint. The persistence timer is re-armed when the configured
// interval changes.
func (i *Interactor) Run(ctx context.Context) error {
	if _, err := i.Start(ctx); err != nil {
		return err
	}
	display := time.NewTicker(displayInterval)
	defer display.Stop()
	interval := i.SaveInterval(ctx)
	persist := time.NewTicker(interval)
	defer persist.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return i.Shutdown(shutdownCtx)
		case <-display.C:
			_, _ = i.Tick(ctx)
			if next := i.SaveInterval(ctx); next != interval {
				interval = next
				persist.Reset(interval)
				i.logger.Debug("persistence interval changed", "interval", interval)
			}
		case <-persist.C:
			_ = i.Checkpoint(ctx)
		}
	}
}

func toStatus(reading domain.Reading, prefs domain.Preferences) dto.StatusOutput {
	table := i18n.For(prefs.Language)
	units := table.Units
	eval := reading.Evaluation
	labels := dto.StatusLabels{
		Title:         table.TimeTracker,
		Session:       table.Session,
		LevelProgress: table.LevelProgress,
		LevelTime:     table.LevelTime,
		LevelNeed:     table.LevelNeed,
	}
	if prefs.ShowFooter {
		labels.Footer = table.By
	}
	return dto.StatusOutput{
		At:                reading.At,
		SessionStart:      reading.SessionStart,
		Level:             eval.Level,
		Badge:             domain.Badge(eval.Level),
		Progress:          eval.Progress,
		TotalMs:           reading.TotalMs,
		SessionMs:         reading.SessionMs,
		TimeThisLevelMs:   eval.TimeThisLevelMs,
		TimeToNextLevelMs: eval.TimeToNextLevelMs,
		HoursPerLevel:     prefs.HoursPerLevel,
		LeveledUp:         eval.LeveledUp,
		TotalText:         domain.FormatTotalTime(reading.TotalMs, prefs.Prefix, prefs.ShowSeconds, units),
		SessionText:       domain.FormatDuration(reading.SessionMs, prefs.ShowSeconds, units),
		ThisLevelText:     domain.FormatDuration(eval.TimeThisLevelMs, prefs.ShowSeconds, units),
		NextLevelText:     domain.FormatDuration(eval.TimeToNextLevelMs, prefs.ShowSeconds, units),
		BarColor:          prefs.BarColor,
		Labels:            labels,
	}
}
