package domain_test

import (
	"testing"
	"time"

	"timelevel/internal/modules/tracker/domain"
	"timelevel/internal/platform/clock"
)

func TestSessionClockAdvanceMovesBaselineOnly(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	c := domain.NewSessionClock(start)

	if got := c.Elapsed(start.Add(5 * time.Second)); got != 5000 {
		t.Fatalf("expected 5000ms elapsed, got %d", got)
	}
	c.Advance(5000)
	later := start.Add(8 * time.Second)
	if got := c.Elapsed(later); got != 3000 {
		t.Fatalf("expected 3000ms since fold, got %d", got)
	}
	if got := c.SessionTime(later); got != 8000 {
		t.Fatalf("session time must ignore folds, got %d", got)
	}
	c.Advance(-10)
	if !c.Baseline().Equal(start.Add(5 * time.Second)) {
		t.Fatalf("the baseline must never move backwards")
	}
	if got := c.Elapsed(start); got != 0 {
		t.Fatalf("elapsed before the baseline must be 0, got %d", got)
	}
}

func TestFoldWindowSplitsAtMidnight(t *testing.T) {
	t.Parallel()
	stats := domain.EmptyStats()
	from := time.Date(2026, 3, 1, 23, 59, 58, 0, time.UTC)
	to := time.Date(2026, 3, 2, 0, 0, 3, 0, time.UTC)
	if got := stats.FoldWindow(from, to, clock.UTCCalendar()); got != 5000 {
		t.Fatalf("expected 5000ms folded, got %d", got)
	}
	if stats.TotalMs != 5000 {
		t.Fatalf("unexpected total %d", stats.TotalMs)
	}
	if stats.Daily.ValueFor("2026-03-01") != 2000 || stats.Daily.ValueFor("2026-03-02") != 3000 {
		t.Fatalf("unexpected split %v", stats.Daily.Days())
	}
	if stats.Daily.Sum() != stats.TotalMs {
		t.Fatalf("histogram and total diverged")
	}
}

func TestFoldWindowIgnoresReversedWindow(t *testing.T) {
	t.Parallel()
	stats := domain.EmptyStats()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	if got := stats.FoldWindow(now, now.Add(-time.Minute), clock.UTCCalendar()); got != 0 || stats.TotalMs != 0 {
		t.Fatalf("reversed window must fold nothing")
	}
}
