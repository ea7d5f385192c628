package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	effectsinadapter "timelevel/internal/modules/effects/adapter/in"
	effectsoutadapter "timelevel/internal/modules/effects/adapter/out"
	effectsservice "timelevel/internal/modules/effects/service"
	effectsusecase "timelevel/internal/modules/effects/usecase"
	settingsinadapter "timelevel/internal/modules/settings/adapter/in"
	settingsoutadapter "timelevel/internal/modules/settings/adapter/out"
	settingsservice "timelevel/internal/modules/settings/service"
	settingsusecase "timelevel/internal/modules/settings/usecase"
	trackerinadapter "timelevel/internal/modules/tracker/adapter/in"
	trackeroutadapter "timelevel/internal/modules/tracker/adapter/out"
	trackerdto "timelevel/internal/modules/tracker/dto"
	trackerout "timelevel/internal/modules/tracker/port/out"
	trackerservice "timelevel/internal/modules/tracker/service"
	trackerusecase "timelevel/internal/modules/tracker/usecase"
	"timelevel/internal/platform/clock"
	"timelevel/internal/platform/config"
	"timelevel/internal/platform/id"
	"timelevel/internal/platform/logging"
	uiapp "timelevel/internal/ui/app"
)

const shutdownTimeout = 15 * time.Second

// Options tune the host around the tracker core.
type Options struct {
	LogLevel string
	// Console receives log records besides the log file. Leave nil when a
	// full-screen UI owns the terminal.
	Console io.Writer
	// Bell is where the built-in audio cue rings. Nil disables it.
	Bell io.Writer
	// Interactive routes visual celebrations to the TUI confetti overlay.
	Interactive bool
	Metrics     bool
}

type App struct {
	TrackerCLI  trackerinadapter.CLIHandler
	TrackerTUI  trackerinadapter.TUIHandler
	SettingsCLI settingsinadapter.CLIHandler
	EffectsCLI  effectsinadapter.CLIHandler

	Celebrations <-chan trackerdto.Celebration
	Logger       *slog.Logger

	metrics *trackeroutadapter.PrometheusMetrics
	closers []func() error
}

func New(cfg config.Config, opts Options) (*App, error) {
	logger, closeLog, err := logging.New(logging.Options{Level: opts.LogLevel, Console: opts.Console, File: cfg.LogPath})
	if err != nil {
		return nil, fmt.Errorf("new logger: %w", err)
	}
	app := &App{Logger: logger, closers: []func() error{closeLog}}

	settingsUC := settingsusecase.NewInteractor(settingsservice.NewSettingsService(
		settingsoutadapter.NewFileSettingsStore(cfg.SettingsPath, logger),
		logger,
	))

	effectsUC := effectsusecase.NewInteractor(effectsservice.NewEffectService(
		effectsoutadapter.NewFileManifestStore(cfg.EffectsPath, cfg.VaultPath),
		effectsoutadapter.NewGRPCHost(pluginOutput{logger: logger, bell: opts.Bell}),
		logger,
	))

	history, err := trackeroutadapter.NewSQLiteLevelHistory(cfg.DBPath)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("new level history: %w", err)
	}
	app.closers = append(app.closers, history.Close)

	var metrics trackerout.Metrics
	if opts.Metrics {
		app.metrics = trackeroutadapter.NewPrometheusMetrics()
		metrics = app.metrics
	}

	effects := []trackerout.Effect{
		trackeroutadapter.NewVaultTimelineLog(cfg.TimelinePath, logger),
		history,
		trackeroutadapter.NewAudioPluginBridge(effectsUC),
		trackeroutadapter.NewVisualPluginBridge(effectsUC),
	}
	if opts.Bell != nil {
		effects = append(effects, trackeroutadapter.NewBellAudioCue(opts.Bell))
	}
	if opts.Interactive {
		confetti := trackeroutadapter.NewConfettiChannel(4, logger)
		effects = append(effects, confetti)
		app.Celebrations = confetti.Events()
	}

	trackerUC := trackerusecase.NewInteractor(
		trackerservice.NewTrackerService(clock.SystemClock{}, trackeroutadapter.NewFileStatsStore(cfg.StatsPath, logger), metrics, logger),
		trackerservice.NewNotifier(id.UUID{}, metrics, logger, effects...),
		trackeroutadapter.NewSettingsPreferencesAdapter(settingsUC),
		history,
		trackeroutadapter.NewEChartsHeatmap(),
		logger,
	)

	app.TrackerCLI = trackerinadapter.NewCLIHandler(trackerUC)
	app.TrackerTUI = trackerinadapter.NewTUIHandler(trackerUC)
	app.SettingsCLI = settingsinadapter.NewCLIHandler(settingsUC)
	app.EffectsCLI = effectsinadapter.NewCLIHandler(effectsUC)
	return app, nil
}

// MetricsHandler serves the tracker metrics, or nil when metrics are off.
func (a *App) MetricsHandler() http.Handler {
	if a.metrics == nil {
		return nil
	}
	return a.metrics.Handler()
}

// Close releases the history database and the log file.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RunTUI runs the interactive tracker and persists the session once the
// program exits, however it exits.
func RunTUI(app *App) error {
	model := uiapp.NewModel(app.TrackerTUI, app.SettingsCLI, app.Celebrations)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, runErr := program.Run()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.TrackerTUI.Shutdown(ctx); err != nil {
		app.Logger.Error("final checkpoint failed", "err", err)
		return errors.Join(runErr, err)
	}
	return runErr
}

// pluginOutput receives effect plugin stderr. Bell characters reach the
// terminal bell when one is configured; everything else goes to the log.
type pluginOutput struct {
	logger *slog.Logger
	bell   io.Writer
}

func (w pluginOutput) Write(p []byte) (int, error) {
	text := string(p)
	if rings := strings.Count(text, "\a"); rings > 0 {
		if w.bell != nil {
			_, _ = io.WriteString(w.bell, strings.Repeat("\a", rings))
		}
		text = strings.ReplaceAll(text, "\a", "")
	}
	if text = strings.TrimSpace(text); text != "" {
		w.logger.Debug("effect plugin output", "line", text)
	}
	return len(p), nil
}
