package dto

import (
	"io"
	"time"
)

type StatusOutput struct {
	At                time.Time
	SessionStart      time.Time
	Level             int
	Badge             string
	Progress          float64
	TotalMs           int64
	SessionMs         int64
	TimeThisLevelMs   int64
	TimeToNextLevelMs int64
	HoursPerLevel     int
	LeveledUp         bool

	TotalText     string
	SessionText   string
	ThisLevelText string
	NextLevelText string

	BarColor string
	Labels   StatusLabels
}

// StatusLabels are the localized captions of the tracker panel. Footer is
// empty when the footer is switched off.
type StatusLabels struct {
	Title         string
	Session       string
	LevelProgress string
	LevelTime     string
	LevelNeed     string
	Footer        string
}

type HeatmapInput struct {
	Days int
}

type HeatmapCell struct {
	DayKey    string
	Date      time.Time
	Ms        int64
	Minutes   int64
	Weekday   int
	Intensity int
	Color     string
}

type HeatmapOutput struct {
	Title    string
	MinUnit  string
	Weekdays [7]string
	MaxMs    int64
	Cells    []HeatmapCell
}

type ExportHeatmapInput struct {
	Days   int
	Writer io.Writer
}

type HistoryInput struct {
	Limit int
}

type LevelUpOutput struct {
	ID            string
	At            time.Time
	Level         int
	PreviousLevel int
	Badge         string
	TotalMs       int64
	SessionMs     int64
	TotalText     string
	SessionText   string
}

// Celebration is pushed to interactive hosts when a level-up should be shown.
type Celebration struct {
	Level int
	Badge string
	At    time.Time
}
