package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"

	"timelevel/internal/modules/tracker/domain"
	trackerout "timelevel/internal/modules/tracker/port/out"
	apperrors "timelevel/internal/platform/errors"
	"timelevel/internal/platform/fsutil"
	"timelevel/internal/platform/logging"
	"timelevel/internal/platform/schema"
)

type statsDocument struct {
	TotalTime domain.Parts     `json:"totalTime"`
	Daily     map[string]int64 `json:"daily"`
}

// FileStatsStore keeps the stats as one JSON document replaced atomically on
// every save.
type FileStatsStore struct {
	path   string
	logger *slog.Logger
}

func NewFileStatsStore(path string, logger *slog.Logger) trackerout.StatsStore {
	return &FileStatsStore{path: path, logger: logging.OrDiscard(logger)}
}

// Load returns zero stats for a missing or empty document. Any other shape
// than an object with a totalTime object is reported as ErrCorruptState.
func (s *FileStatsStore) Load(_ context.Context) (domain.Stats, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.EmptyStats(), nil
		}
		return domain.EmptyStats(), fmt.Errorf("read stats: %w", err)
	}
	if len(bytes.TrimSpace(payload)) == 0 {
		return domain.EmptyStats(), nil
	}
	instance, err := schema.Decode(schema.Stats, payload)
	if err != nil {
		return domain.EmptyStats(), fmt.Errorf("%s: %w: %v", s.path, apperrors.ErrCorruptState, err)
	}
	doc := instance.(map[string]any)
	total, _ := doc["totalTime"].(map[string]any)
	stats := domain.Stats{
		TotalMs: partsMs(number(total["hours"]), number(total["minutes"]), number(total["seconds"])),
		Daily:   domain.NewHistogram(s.daily(doc["daily"])),
	}
	return stats, nil
}

func (s *FileStatsStore) Save(_ context.Context, stats domain.Stats) error {
	doc := statsDocument{
		TotalTime: domain.MsToParts(stats.TotalMs),
		Daily:     stats.Daily.Days(),
	}
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}
	if err := fsutil.WriteFileAtomic(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write stats: %w", err)
	}
	return nil
}

// daily keeps the entries that are non-negative numbers and drops the rest.
func (s *FileStatsStore) daily(raw any) map[string]int64 {
	entries, ok := raw.(map[string]any)
	if !ok {
		if raw != nil {
			s.logger.Warn("stats daily field is not an object, ignoring it", "path", s.path)
		}
		return nil
	}
	out := make(map[string]int64, len(entries))
	for key, value := range entries {
		n, ok := value.(json.Number)
		if !ok {
			s.logger.Warn("dropping non-numeric day entry", "path", s.path, "day", key)
			continue
		}
		f, err := n.Float64()
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
			s.logger.Warn("dropping invalid day entry", "path", s.path, "day", key, "value", n.String())
			continue
		}
		if f >= math.MaxInt64 {
			out[key] = math.MaxInt64
			continue
		}
		out[key] = int64(f)
	}
	return out
}

// number reads a loosely typed count; anything that is not a finite number is 0.
func number(raw any) float64 {
	n, ok := raw.(json.Number)
	if !ok {
		return 0
	}
	f, err := n.Float64()
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func partsMs(hours, minutes, seconds float64) int64 {
	ms := hours*float64(domain.MsPerHour) + minutes*float64(domain.MsPerMinute) + seconds*float64(domain.MsPerSecond)
	if ms <= 0 || math.IsNaN(ms) {
		return 0
	}
	if ms >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(ms)
}
