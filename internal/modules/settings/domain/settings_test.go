package domain_test

import (
	"errors"
	"testing"

	"timelevel/internal/modules/settings/domain"
	apperrors "timelevel/internal/platform/errors"
	"timelevel/internal/platform/i18n"
)

func TestDefaults(t *testing.T) {
	t.Parallel()
	d := domain.Defaults()
	if d.SaveIntervalSeconds != 5 || d.LevelUpHours != 10 || d.ShowSeconds || !d.EnableAudio || !d.EnableConfetti || !d.ShowFooter {
		t.Fatalf("unexpected defaults %+v", d)
	}
	if d.ProgressBarColor != "#457b9d" || d.Language != "zh" || d.PrefixText != "累计" || d.CalendarOffset != "+00:00" {
		t.Fatalf("unexpected default strings %+v", d)
	}
}

func TestNormalizeClampsBoundaryValues(t *testing.T) {
	t.Parallel()
	s := domain.Settings{
		SaveIntervalSeconds: 0,
		LevelUpHours:        -4,
		ProgressBarColor:    "teal",
		Language:            "fr",
		CalendarOffset:      "+99:00",
	}.Normalize()
	if s.SaveIntervalSeconds != 1 || s.LevelUpHours != 10 {
		t.Fatalf("numeric clamps failed: %+v", s)
	}
	if s.ProgressBarColor != "#457b9d" || s.Language != "zh" || s.CalendarOffset != "+00:00" || s.PrefixText != "累计" {
		t.Fatalf("string fallbacks failed: %+v", s)
	}
}

func TestWithParsesAndClamps(t *testing.T) {
	t.Parallel()
	s := domain.Defaults()
	var err error
	if s, err = s.With(domain.KeySaveIntervalSeconds, "abc"); err != nil || s.SaveIntervalSeconds != 1 {
		t.Fatalf("non-numeric interval must clamp to 1, got %d (%v)", s.SaveIntervalSeconds, err)
	}
	if s, err = s.With(domain.KeyLevelUpHours, "0"); err != nil || s.LevelUpHours != 10 {
		t.Fatalf("zero hours must fall back to 10, got %d (%v)", s.LevelUpHours, err)
	}
	if s, err = s.With(domain.KeyLevelUpHours, "25"); err != nil || s.LevelUpHours != 25 {
		t.Fatalf("expected 25 hours, got %d (%v)", s.LevelUpHours, err)
	}
	if s, err = s.With(domain.KeyShowSeconds, "true"); err != nil || !s.ShowSeconds {
		t.Fatalf("expected showSeconds true (%v)", err)
	}
	if _, err = s.With(domain.KeyEnableAudio, "loud"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if _, err = s.With(domain.KeyProgressBarColor, "blue"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid color, got %v", err)
	}
	if _, err = s.With("volume", "3"); !errors.Is(err, apperrors.ErrUnknownSetting) {
		t.Fatalf("expected unknown setting, got %v", err)
	}
	if v, err := s.Value(domain.KeyLevelUpHours); err != nil || v != "25" {
		t.Fatalf("unexpected value %q (%v)", v, err)
	}
}

func TestLanguageSwitchCarriesStockPrefixOnly(t *testing.T) {
	t.Parallel()
	s, err := domain.Defaults().With(domain.KeyLanguage, "secondary")
	if err != nil {
		t.Fatalf("switch language: %v", err)
	}
	if s.Language != "en" || s.PrefixText != "Total" {
		t.Fatalf("expected stock prefix to follow language, got %+v", s)
	}

	custom := domain.Defaults()
	custom.PrefixText = "Focus"
	custom = custom.SwitchLanguage(i18n.English)
	if custom.PrefixText != "Focus" {
		t.Fatalf("custom prefix must survive the switch, got %q", custom.PrefixText)
	}

	legacy := domain.Defaults()
	legacy.PrefixText = "累计用时前缀"
	if got := legacy.SwitchLanguage(i18n.English).PrefixText; got != "Total" {
		t.Fatalf("legacy default prefix must be replaced, got %q", got)
	}
}
