package domain

import (
	"time"

	"timelevel/internal/platform/clock"
)

// Stats is the durable part of the tracker: the accumulated total and the
// per-day histogram it was folded from.
type Stats struct {
	TotalMs int64
	Daily   Histogram
}

func EmptyStats() Stats {
	return Stats{Daily: NewHistogram(nil)}
}

// Fold adds a window of elapsed time to the total and to the bucket of dayKey.
func (s *Stats) Fold(elapsedMs int64, dayKey string) {
	if elapsedMs <= 0 {
		return
	}
	s.TotalMs += elapsedMs
	s.Daily.Increment(dayKey, elapsedMs)
}

// FoldWindow folds [from, to) and splits it at calendar midnights, so a window
// crossing a day boundary credits each day with its own share. It returns the
// folded milliseconds.
func (s *Stats) FoldWindow(from, to time.Time, cal clock.Calendar) int64 {
	var folded int64
	for from.Before(to) {
		end := cal.StartOfDay(from).AddDate(0, 0, 1)
		if end.After(to) {
			end = to
		}
		ms := end.Sub(from).Milliseconds()
		s.Fold(ms, cal.DayKey(from))
		folded += ms
		from = end
	}
	return folded
}

func (s Stats) Clone() Stats {
	return Stats{TotalMs: s.TotalMs, Daily: s.Daily.Clone()}
}

// Reading is one evaluation of the live total.
type Reading struct {
	At            time.Time
	SessionStart  time.Time
	TotalMs       int64
	SessionMs     int64
	PreviousLevel int
	Evaluation    Evaluation
}
