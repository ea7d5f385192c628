package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"timelevel/internal/modules/settings/domain"
	settingsout "timelevel/internal/modules/settings/port/out"
	"timelevel/internal/platform/fsutil"
	"timelevel/internal/platform/jsonc"
	"timelevel/internal/platform/logging"
)

const envPrefix = "TIMELEVEL"

// FileSettingsStore keeps the settings document as JSON. Comments are
// tolerated on read, environment variables (TIMELEVEL_LEVELUPHOURS, ...)
// override the document, and every key falls back to its default on its own.
// The document is re-read on every Load, so a problem is logged when it first
// appears and stays quiet while it persists.
type FileSettingsStore struct {
	path   string
	logger *slog.Logger

	mu       sync.Mutex
	reported map[string]struct{}
}

func NewFileSettingsStore(path string, logger *slog.Logger) settingsout.SettingsStore {
	return &FileSettingsStore{path: path, logger: logging.OrDiscard(logger)}
}

func (s *FileSettingsStore) Path() string {
	return s.path
}

func (s *FileSettingsStore) Load(_ context.Context) (domain.Settings, error) {
	w := s.beginWarnings()
	defer s.endWarnings(w)

	v := viper.New()
	applyDefaults(v)
	v.SetConfigType("json")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	payload, err := os.ReadFile(s.path)
	if err != nil && !os.IsNotExist(err) {
		return domain.Settings{}, fmt.Errorf("read settings: %w", err)
	}
	if len(bytes.TrimSpace(payload)) > 0 {
		doc, err := unwrapLegacy(jsonc.Clean(payload))
		if err != nil {
			w.warn("malformed:"+err.Error(), "settings document malformed, using defaults", "path", s.path, "err", err)
		} else if err := v.ReadConfig(bytes.NewReader(doc)); err != nil {
			w.warn("unreadable:"+err.Error(), "settings document unreadable, using defaults", "path", s.path, "err", err)
		}
	}
	return decode(v, w), nil
}

func (s *FileSettingsStore) Save(_ context.Context, settings domain.Settings) error {
	payload, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	return fsutil.WriteFileAtomic(s.path, append(payload, '\n'), 0o644)
}

func applyDefaults(v *viper.Viper) {
	d := domain.Defaults()
	v.SetDefault(domain.KeySaveIntervalSeconds, d.SaveIntervalSeconds)
	v.SetDefault(domain.KeyLevelUpHours, d.LevelUpHours)
	v.SetDefault(domain.KeyShowSeconds, d.ShowSeconds)
	v.SetDefault(domain.KeyProgressBarColor, d.ProgressBarColor)
	v.SetDefault(domain.KeyEnableAudio, d.EnableAudio)
	v.SetDefault(domain.KeyEnableConfetti, d.EnableConfetti)
	v.SetDefault(domain.KeyPrefixText, d.PrefixText)
	v.SetDefault(domain.KeyShowFooter, d.ShowFooter)
	v.SetDefault(domain.KeyLanguage, d.Language)
	v.SetDefault(domain.KeyCalendarOffset, d.CalendarOffset)
}

// unwrapLegacy accepts the older {"settings": {...}} data file shape.
func unwrapLegacy(doc []byte) ([]byte, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(doc, &top); err != nil {
		return nil, err
	}
	inner, ok := top["settings"]
	if !ok || len(top) != 1 {
		return doc, nil
	}
	var probe map[string]any
	if err := json.Unmarshal(inner, &probe); err != nil {
		return doc, nil
	}
	return inner, nil
}

// loadWarnings collects the problems of one Load and logs only those the
// previous Load did not already report.
type loadWarnings struct {
	logger   *slog.Logger
	previous map[string]struct{}
	current  map[string]struct{}
}

func (w *loadWarnings) warn(problem, msg string, args ...any) {
	w.current[problem] = struct{}{}
	if _, seen := w.previous[problem]; seen {
		return
	}
	w.logger.Warn(msg, args...)
}

func (s *FileSettingsStore) beginWarnings() *loadWarnings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &loadWarnings{logger: s.logger, previous: s.reported, current: make(map[string]struct{})}
}

func (s *FileSettingsStore) endWarnings(w *loadWarnings) {
	s.mu.Lock()
	s.reported = w.current
	s.mu.Unlock()
}

func decode(v *viper.Viper, w *loadWarnings) domain.Settings {
	d := domain.Defaults()
	out := domain.Settings{
		SaveIntervalSeconds: intKey(v, w, domain.KeySaveIntervalSeconds, d.SaveIntervalSeconds),
		LevelUpHours:        intKey(v, w, domain.KeyLevelUpHours, d.LevelUpHours),
		ShowSeconds:         boolKey(v, w, domain.KeyShowSeconds, d.ShowSeconds),
		ProgressBarColor:    stringKey(v, w, domain.KeyProgressBarColor, d.ProgressBarColor),
		EnableAudio:         boolKey(v, w, domain.KeyEnableAudio, d.EnableAudio),
		EnableConfetti:      boolKey(v, w, domain.KeyEnableConfetti, d.EnableConfetti),
		PrefixText:          stringKey(v, w, domain.KeyPrefixText, d.PrefixText),
		ShowFooter:          boolKey(v, w, domain.KeyShowFooter, d.ShowFooter),
		Language:            stringKey(v, w, domain.KeyLanguage, d.Language),
		CalendarOffset:      stringKey(v, w, domain.KeyCalendarOffset, d.CalendarOffset),
	}
	return out.Normalize()
}

func intKey(v *viper.Viper, w *loadWarnings, key string, fallback int) int {
	switch raw := v.Get(key).(type) {
	case int:
		return raw
	case int64:
		return int(raw)
	case float64:
		return int(raw)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
			return n
		}
	}
	w.warn("type:"+key, "setting has wrong type, using default", "key", key)
	return fallback
}

func boolKey(v *viper.Viper, w *loadWarnings, key string, fallback bool) bool {
	switch raw := v.Get(key).(type) {
	case bool:
		return raw
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(raw)); err == nil {
			return b
		}
	}
	w.warn("type:"+key, "setting has wrong type, using default", "key", key)
	return fallback
}

func stringKey(v *viper.Viper, w *loadWarnings, key string, fallback string) string {
	if raw, ok := v.Get(key).(string); ok {
		return raw
	}
	w.warn("type:"+key, "setting has wrong type, using default", "key", key)
	return fallback
}
