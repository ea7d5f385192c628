package out_test

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	trackerout "timelevel/internal/modules/tracker/adapter/out"
	"timelevel/internal/modules/tracker/domain"
	apperrors "timelevel/internal/platform/errors"
)

func statsPath(t *testing.T, body *string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".timestats.json")
	if body != nil {
		if err := os.WriteFile(path, []byte(*body), 0o644); err != nil {
			t.Fatalf("write stats: %v", err)
		}
	}
	return path
}

func TestStatsLoadResetsOnCorruptInput(t *testing.T) {
	t.Parallel()
	for _, body := range []string{"", "{not json", "{}", "[]", `{"totalTime": 12}`} {
		body := body
		store := trackerout.NewFileStatsStore(statsPath(t, &body), nil)
		stats, err := store.Load(context.Background())
		if stats.TotalMs != 0 || stats.Daily.Len() != 0 {
			t.Fatalf("expected zero state for %q, got %+v", body, stats)
		}
		if body == "" {
			if err != nil {
				t.Fatalf("empty document must load cleanly: %v", err)
			}
			continue
		}
		if !errors.Is(err, apperrors.ErrCorruptState) {
			t.Fatalf("expected corrupt state for %q, got %v", body, err)
		}
	}

	missing := trackerout.NewFileStatsStore(statsPath(t, nil), nil)
	stats, err := missing.Load(context.Background())
	if err != nil || stats.TotalMs != 0 {
		t.Fatalf("missing document must load as zero, got %+v (%v)", stats, err)
	}
}

func TestStatsSaveThenLoadRoundTrip(t *testing.T) {
	t.Parallel()
	store := trackerout.NewFileStatsStore(statsPath(t, nil), nil)
	want := domain.Stats{
		TotalMs: 3*domain.MsPerHour + 25*domain.MsPerMinute + 7*domain.MsPerSecond,
		Daily:   domain.NewHistogram(map[string]int64{"2026-02-28": 3600000, "2026-03-01": 8707000}),
	}
	if err := store.Save(context.Background(), want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.TotalMs != want.TotalMs {
		t.Fatalf("total mismatch: %d vs %d", got.TotalMs, want.TotalMs)
	}
	for _, key := range want.Daily.Keys() {
		if got.Daily.ValueFor(key) != want.Daily.ValueFor(key) {
			t.Fatalf("day %s mismatch", key)
		}
	}
	if got.Daily.Len() != want.Daily.Len() {
		t.Fatalf("unexpected day count %d", got.Daily.Len())
	}
}

func TestStatsSaveWritesPartsShape(t *testing.T) {
	t.Parallel()
	path := statsPath(t, nil)
	store := trackerout.NewFileStatsStore(path, nil)
	if err := store.Save(context.Background(), domain.Stats{TotalMs: 3661999, Daily: domain.NewHistogram(nil)}); err != nil {
		t.Fatalf("save: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	doc := string(b)
	for _, want := range []string{`"hours": 1`, `"minutes": 1`, `"seconds": 1`, `"daily": {}`} {
		if !strings.Contains(doc, want) {
			t.Fatalf("document missing %s:\n%s", want, doc)
		}
	}
}

func TestStatsLoadIsLenientOnTotalsAndStrictOnDays(t *testing.T) {
	t.Parallel()
	body := `{
  "totalTime": {"hours": "two", "minutes": 1.5, "seconds": 30},
  "daily": {"2026-03-01": 60000, "2026-03-02": "lots", "2026-03-03": -5, "2026-03-04": null}
}`
	stats, err := trackerout.NewFileStatsStore(statsPath(t, &body), nil).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if stats.TotalMs != 120000 {
		t.Fatalf("expected 1.5min + 30s, got %d", stats.TotalMs)
	}
	if stats.Daily.Len() != 1 || stats.Daily.ValueFor("2026-03-01") != 60000 {
		t.Fatalf("expected only the numeric day to survive, got %v", stats.Daily.Days())
	}
}

func TestStatsLoadClampsHugeDays(t *testing.T) {
	t.Parallel()
	body := `{"totalTime": {"hours": 1, "minutes": 0, "seconds": 0}, "daily": {"2026-03-01": 1e30, "2026-03-02": 5000}}`
	stats, err := trackerout.NewFileStatsStore(statsPath(t, &body), nil).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := stats.Daily.ValueFor("2026-03-01"); got != math.MaxInt64 {
		t.Fatalf("expected an oversized day to saturate, got %d", got)
	}
	if got := stats.Daily.ValueFor("2026-03-02"); got != 5000 {
		t.Fatalf("expected ordinary day to load as-is, got %d", got)
	}
}
