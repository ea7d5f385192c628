package domain

import (
	"time"

	"timelevel/internal/platform/i18n"
)

// LevelUpEvent is emitted once per observed level increase. The text fields
// are rendered in Language when the event is raised.
type LevelUpEvent struct {
	ID            string
	At            time.Time
	Level         int
	PreviousLevel int
	TotalMs       int64
	SessionMs     int64
	HoursPerLevel int
	Language      i18n.Language
	TotalText     string
	SessionText   string
}
