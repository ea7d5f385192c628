package out

import (
	"context"
	"time"

	settingsin "timelevel/internal/modules/settings/port/in"
	"timelevel/internal/modules/tracker/domain"
	trackerout "timelevel/internal/modules/tracker/port/out"
	"timelevel/internal/platform/clock"
	"timelevel/internal/platform/i18n"
)

type SettingsPreferencesAdapter struct {
	settings settingsin.Usecase
}

func NewSettingsPreferencesAdapter(settings settingsin.Usecase) trackerout.PreferencesSource {
	return &SettingsPreferencesAdapter{settings: settings}
}

func (a *SettingsPreferencesAdapter) Preferences(ctx context.Context) (domain.Preferences, error) {
	s, err := a.settings.Current(ctx)
	if err != nil {
		return domain.Preferences{}, err
	}
	lang, _ := i18n.Parse(s.Language)
	cal, err := clock.NewCalendar(s.CalendarOffset)
	if err != nil {
		cal = clock.UTCCalendar()
	}
	return domain.Preferences{
		HoursPerLevel:  s.LevelUpHours,
		SaveInterval:   time.Duration(s.SaveIntervalSeconds) * time.Second,
		ShowSeconds:    s.ShowSeconds,
		Prefix:         s.PrefixText,
		Language:       lang,
		EnableAudio:    s.EnableAudio,
		EnableConfetti: s.EnableConfetti,
		ShowFooter:     s.ShowFooter,
		BarColor:       s.ProgressBarColor,
		Calendar:       cal,
	}, nil
}
