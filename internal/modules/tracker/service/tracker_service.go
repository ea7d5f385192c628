package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"timelevel/internal/modules/tracker/domain"
	trackerout "timelevel/internal/modules/tracker/port/out"
	"timelevel/internal/platform/clock"
	"timelevel/internal/platform/logging"
)

const (
	finalAttempts   = 3
	finalRetryDelay = 200 * time.Millisecond
)

// TrackerService owns the accumulated total, the daily histogram, the session
// clock and the level edge detector. mu guards that state; saveMu orders
// fold, snapshot and write so an older snapshot never lands after a newer one.
type TrackerService struct {
	clock   clock.Clock
	store   trackerout.StatsStore
	metrics trackerout.Metrics
	logger  *slog.Logger

	saveMu sync.Mutex

	mu       sync.Mutex
	loaded   bool
	stats    domain.Stats
	session  domain.SessionClock
	detector domain.EdgeDetector
	calendar clock.Calendar
}

func NewTrackerService(clk clock.Clock, store trackerout.StatsStore, metrics trackerout.Metrics, logger *slog.Logger) *TrackerService {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	now := clk.Now()
	return &TrackerService{
		clock:    clk,
		store:    store,
		metrics:  metrics,
		logger:   logging.OrDiscard(logger),
		stats:    domain.EmptyStats(),
		session:  domain.NewSessionClock(now),
		detector: domain.NewEdgeDetector(),
		calendar: clock.UTCCalendar(),
	}
}

// Load replaces the in-memory state with the stored document and starts a new
// session. An unreadable document resets tracking to zero.
func (s *TrackerService) Load(ctx context.Context, prefs domain.Preferences) domain.Reading {
	stats, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Warn("stats document unusable, starting from zero", "err", err)
		stats = domain.EmptyStats()
	}
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = true
	s.stats = stats
	s.session = domain.NewSessionClock(now)
	s.detector = domain.NewEdgeDetector()
	s.detector.Prime(stats.TotalMs, prefs.HoursPerLevel)
	s.calendar = prefs.Calendar
	s.logger.Info("tracker loaded", "total_ms", stats.TotalMs, "days", stats.Daily.Len())
	return s.readLocked(now, prefs.HoursPerLevel, s.detector.Last())
}

func (s *TrackerService) SetCalendar(cal clock.Calendar) {
	s.mu.Lock()
	s.calendar = cal
	s.mu.Unlock()
}

// Tick evaluates the live total and feeds the edge detector. It is the only
// path that can report a level-up.
func (s *TrackerService) Tick(hoursPerLevel int) domain.Reading {
	now := s.clock.Now()
	s.mu.Lock()
	reading := s.readLocked(now, hoursPerLevel, s.detector.Last())
	s.detector.Observe(reading.TotalMs, hoursPerLevel)
	s.mu.Unlock()
	s.metrics.Observe(reading.TotalMs, reading.SessionMs, reading.Evaluation.Level)
	return reading
}

// Peek evaluates without touching the edge detector.
func (s *TrackerService) Peek(hoursPerLevel int) domain.Reading {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	reading := s.readLocked(now, hoursPerLevel, s.detector.Last())
	reading.Evaluation.LeveledUp = false
	return reading
}

func (s *TrackerService) readLocked(now time.Time, hoursPerLevel, last int) domain.Reading {
	total := s.stats.TotalMs + s.session.Elapsed(now)
	return domain.Reading{
		At:            now,
		SessionStart:  s.session.StartedAt(),
		TotalMs:       total,
		SessionMs:     s.session.SessionTime(now),
		PreviousLevel: last,
		Evaluation:    domain.Evaluate(total, hoursPerLevel, last),
	}
}

// Checkpoint folds the unfolded window into the total and the histogram and
// writes the result. The fold stays in memory when the write fails, so the next
// checkpoint persists it. Before Load there is nothing to write: the in-memory
// total is zero and saving it would clobber the stored one.
func (s *TrackerService) Checkpoint(ctx context.Context) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	if !s.isLoaded() {
		s.logger.Warn("checkpoint skipped, stats not loaded")
		return nil
	}
	started := time.Now()
	snapshot := s.fold(s.clock.Now())
	err := s.store.Save(ctx, snapshot)
	s.metrics.CheckpointDone(time.Since(started), err)
	if err != nil {
		s.logger.Warn("checkpoint write failed", "total_ms", snapshot.TotalMs, "err", err)
		return fmt.Errorf("checkpoint: %w", err)
	}
	s.logger.Debug("checkpoint written", "total_ms", snapshot.TotalMs)
	return nil
}

// FinalCheckpoint is the shutdown save. It retries the write a few times since
// it is the last chance to persist the session.
func (s *TrackerService) FinalCheckpoint(ctx context.Context) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	if !s.isLoaded() {
		s.logger.Warn("final checkpoint skipped, stats not loaded")
		return nil
	}
	started := time.Now()
	snapshot := s.fold(s.clock.Now())
	var err error
	for attempt := 1; attempt <= finalAttempts; attempt++ {
		if err = s.store.Save(ctx, snapshot); err == nil {
			break
		}
		s.logger.Warn("final checkpoint write failed", "attempt", attempt, "err", err)
		if attempt == finalAttempts {
			break
		}
		select {
		case <-ctx.Done():
			s.metrics.CheckpointDone(time.Since(started), err)
			return fmt.Errorf("final checkpoint: %w", err)
		case <-time.After(finalRetryDelay):
		}
	}
	s.metrics.CheckpointDone(time.Since(started), err)
	if err != nil {
		return fmt.Errorf("final checkpoint: %w", err)
	}
	s.logger.Info("final checkpoint written", "total_ms", snapshot.TotalMs)
	return nil
}

func (s *TrackerService) isLoaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

func (s *TrackerService) fold(now time.Time) domain.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	folded := s.stats.FoldWindow(s.session.Baseline(), now, s.calendar)
	s.session.Advance(folded)
	return s.stats.Clone()
}

// Heatmap materializes the histogram including the window not yet folded.
func (s *TrackerService) Heatmap(days int) []domain.DayBucket {
	now := s.clock.Now()
	s.mu.Lock()
	live := s.stats.Clone()
	live.FoldWindow(s.session.Baseline(), now, s.calendar)
	cal := s.calendar
	s.mu.Unlock()
	return live.Daily.MaterializeRange(cal, now, days)
}

// Stats returns a copy of the folded state.
func (s *TrackerService) Stats() domain.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats.Clone()
}

type noopMetrics struct{}

func (noopMetrics) CheckpointDone(time.Duration, error) {}
func (noopMetrics) Observe(int64, int64, int)           {}
func (noopMetrics) LevelUp(int)                         {}
func (noopMetrics) EffectFailed(string)                 {}
