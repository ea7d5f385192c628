package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"timelevel/internal/platform/clock"
	apperrors "timelevel/internal/platform/errors"
	"timelevel/internal/platform/i18n"
)

const (
	KeySaveIntervalSeconds = "saveIntervalSeconds"
	KeyLevelUpHours        = "levelUpHours"
	KeyShowSeconds         = "showSeconds"
	KeyProgressBarColor    = "progressBarColor"
	KeyEnableAudio         = "enableAudio"
	KeyEnableConfetti      = "enableConfetti"
	KeyPrefixText          = "prefixText"
	KeyShowFooter          = "showFooter"
	KeyLanguage            = "language"
	KeyCalendarOffset      = "calendarOffset"
)

const (
	DefaultSaveIntervalSeconds = 5
	DefaultLevelUpHours        = 10
	DefaultProgressBarColor    = "#457b9d"
	DefaultCalendarOffset      = "+00:00"
)

var colorPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

type Settings struct {
	SaveIntervalSeconds int    `json:"saveIntervalSeconds"`
	LevelUpHours        int    `json:"levelUpHours"`
	ShowSeconds         bool   `json:"showSeconds"`
	ProgressBarColor    string `json:"progressBarColor"`
	EnableAudio         bool   `json:"enableAudio"`
	EnableConfetti      bool   `json:"enableConfetti"`
	PrefixText          string `json:"prefixText"`
	ShowFooter          bool   `json:"showFooter"`
	Language            string `json:"language"`
	CalendarOffset      string `json:"calendarOffset"`
}

// Keys lists the recognized settings in display order.
func Keys() []string {
	return []string{
		KeySaveIntervalSeconds,
		KeyLevelUpHours,
		KeyShowSeconds,
		KeyProgressBarColor,
		KeyEnableAudio,
		KeyEnableConfetti,
		KeyPrefixText,
		KeyShowFooter,
		KeyLanguage,
		KeyCalendarOffset,
	}
}

func Defaults() Settings {
	return Settings{
		SaveIntervalSeconds: DefaultSaveIntervalSeconds,
		LevelUpHours:        DefaultLevelUpHours,
		ShowSeconds:         false,
		ProgressBarColor:    DefaultProgressBarColor,
		EnableAudio:         true,
		EnableConfetti:      true,
		PrefixText:          i18n.For(i18n.Chinese).Prefix,
		ShowFooter:          true,
		Language:            string(i18n.Chinese),
		CalendarOffset:      DefaultCalendarOffset,
	}
}

// ClampSaveInterval keeps the persistence interval at one second or more.
func ClampSaveInterval(seconds int) int {
	if seconds < 1 {
		return 1
	}
	return seconds
}

// ClampLevelUpHours falls back to the default for values below one hour.
func ClampLevelUpHours(hours int) int {
	if hours < 1 {
		return DefaultLevelUpHours
	}
	return hours
}

// Normalize applies the boundary clamps so every consumer sees usable values.
func (s Settings) Normalize() Settings {
	s.SaveIntervalSeconds = ClampSaveInterval(s.SaveIntervalSeconds)
	s.LevelUpHours = ClampLevelUpHours(s.LevelUpHours)
	if !colorPattern.MatchString(s.ProgressBarColor) {
		s.ProgressBarColor = DefaultProgressBarColor
	}
	lang, ok := i18n.Parse(s.Language)
	if !ok {
		lang = i18n.Chinese
	}
	s.Language = string(lang)
	if _, err := clock.ParseOffset(s.CalendarOffset); err != nil {
		s.CalendarOffset = DefaultCalendarOffset
	}
	if s.PrefixText == "" {
		s.PrefixText = i18n.For(lang).Prefix
	}
	return s
}

func (s Settings) Lang() i18n.Language {
	lang, _ := i18n.Parse(s.Language)
	return lang
}

func (s Settings) Calendar() clock.Calendar {
	cal, err := clock.NewCalendar(s.CalendarOffset)
	if err != nil {
		return clock.UTCCalendar()
	}
	return cal
}

// SwitchLanguage changes the language and carries a stock prefix over to the
// new language. A customized prefix is kept.
func (s Settings) SwitchLanguage(lang i18n.Language) Settings {
	if i18n.IsDefaultPrefix(s.Lang(), s.PrefixText) {
		s.PrefixText = i18n.For(lang).Prefix
	}
	s.Language = string(lang)
	return s
}

// With returns a copy with key set from its text form. Numeric values are
// clamped like the document loader clamps them; malformed booleans, colors,
// languages and offsets are rejected.
func (s Settings) With(key, raw string) (Settings, error) {
	value := strings.TrimSpace(raw)
	switch key {
	case KeySaveIntervalSeconds:
		n, err := strconv.Atoi(value)
		if err != nil {
			n = 1
		}
		s.SaveIntervalSeconds = ClampSaveInterval(n)
	case KeyLevelUpHours:
		n, err := strconv.Atoi(value)
		if err != nil {
			n = DefaultLevelUpHours
		}
		s.LevelUpHours = ClampLevelUpHours(n)
	case KeyShowSeconds, KeyEnableAudio, KeyEnableConfetti, KeyShowFooter:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return s, fmt.Errorf("%s expects true or false: %w", key, apperrors.ErrInvalidInput)
		}
		switch key {
		case KeyShowSeconds:
			s.ShowSeconds = b
		case KeyEnableAudio:
			s.EnableAudio = b
		case KeyEnableConfetti:
			s.EnableConfetti = b
		case KeyShowFooter:
			s.ShowFooter = b
		}
	case KeyProgressBarColor:
		if !colorPattern.MatchString(value) {
			return s, fmt.Errorf("%s expects #rgb or #rrggbb: %w", key, apperrors.ErrInvalidInput)
		}
		s.ProgressBarColor = value
	case KeyPrefixText:
		s.PrefixText = raw
	case KeyLanguage:
		lang, ok := i18n.Parse(value)
		if !ok {
			return s, fmt.Errorf("language %q: %w", raw, apperrors.ErrInvalidInput)
		}
		return s.SwitchLanguage(lang), nil
	case KeyCalendarOffset:
		if _, err := clock.ParseOffset(value); err != nil {
			return s, fmt.Errorf("%s: %v: %w", key, err, apperrors.ErrInvalidInput)
		}
		s.CalendarOffset = value
	default:
		return s, fmt.Errorf("%s: %w", key, apperrors.ErrUnknownSetting)
	}
	return s, nil
}

// Value renders one setting in the text form With accepts.
func (s Settings) Value(key string) (string, error) {
	switch key {
	case KeySaveIntervalSeconds:
		return strconv.Itoa(s.SaveIntervalSeconds), nil
	case KeyLevelUpHours:
		return strconv.Itoa(s.LevelUpHours), nil
	case KeyShowSeconds:
		return strconv.FormatBool(s.ShowSeconds), nil
	case KeyProgressBarColor:
		return s.ProgressBarColor, nil
	case KeyEnableAudio:
		return strconv.FormatBool(s.EnableAudio), nil
	case KeyEnableConfetti:
		return strconv.FormatBool(s.EnableConfetti), nil
	case KeyPrefixText:
		return s.PrefixText, nil
	case KeyShowFooter:
		return strconv.FormatBool(s.ShowFooter), nil
	case KeyLanguage:
		return s.Language, nil
	case KeyCalendarOffset:
		return s.CalendarOffset, nil
	}
	return "", fmt.Errorf("%s: %w", key, apperrors.ErrUnknownSetting)
}
