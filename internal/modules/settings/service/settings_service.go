package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"timelevel/internal/modules/settings/domain"
	settingsout "timelevel/internal/modules/settings/port/out"
	"timelevel/internal/platform/logging"
)

// SettingsService caches the effective settings so per-tick readers never touch disk.
type SettingsService struct {
	store  settingsout.SettingsStore
	logger *slog.Logger

	mu      sync.RWMutex
	current domain.Settings
	loaded  bool
}

func NewSettingsService(store settingsout.SettingsStore, logger *slog.Logger) *SettingsService {
	return &SettingsService{store: store, logger: logging.OrDiscard(logger), current: domain.Defaults()}
}

// Load reads the document. A read failure leaves the defaults in effect.
func (s *SettingsService) Load(ctx context.Context) domain.Settings {
	loaded, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Warn("settings unreadable, using defaults", "path", s.store.Path(), "err", err)
		loaded = domain.Defaults()
	}
	loaded = loaded.Normalize()
	s.mu.Lock()
	s.current = loaded
	s.loaded = true
	s.mu.Unlock()
	return loaded
}

func (s *SettingsService) Current(ctx context.Context) domain.Settings {
	s.mu.RLock()
	current, loaded := s.current, s.loaded
	s.mu.RUnlock()
	if !loaded {
		return s.Load(ctx)
	}
	return current
}

// Set applies one key and persists the result. The cache only changes once
// the document is written.
func (s *SettingsService) Set(ctx context.Context, key, value string) (domain.Settings, error) {
	current := s.Current(ctx)
	next, err := current.With(key, value)
	if err != nil {
		return current, err
	}
	next = next.Normalize()
	if err := s.store.Save(ctx, next); err != nil {
		return current, fmt.Errorf("save settings: %w", err)
	}
	s.mu.Lock()
	s.current = next
	s.mu.Unlock()
	s.logger.Info("setting changed", "key", key)
	return next, nil
}

func (s *SettingsService) Path() string {
	return s.store.Path()
}
