package domain

import (
	"time"

	"timelevel/internal/platform/clock"
	"timelevel/internal/platform/i18n"
)

// Preferences is the tracker's view of the user settings.
type Preferences struct {
	HoursPerLevel  int
	SaveInterval   time.Duration
	ShowSeconds    bool
	Prefix         string
	Language       i18n.Language
	EnableAudio    bool
	EnableConfetti bool
	ShowFooter     bool
	BarColor       string
	Calendar       clock.Calendar
}

func DefaultPreferences() Preferences {
	table := i18n.For(i18n.Chinese)
	return Preferences{
		HoursPerLevel:  10,
		SaveInterval:   5 * time.Second,
		Prefix:         table.Prefix,
		Language:       i18n.Chinese,
		EnableAudio:    true,
		EnableConfetti: true,
		ShowFooter:     true,
		BarColor:       "#457b9d",
		Calendar:       clock.UTCCalendar(),
	}
}
