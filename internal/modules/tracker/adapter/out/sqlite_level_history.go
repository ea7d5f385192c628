package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"timelevel/internal/modules/tracker/domain"
	trackerout "timelevel/internal/modules/tracker/port/out"
	"timelevel/internal/platform/i18n"

	_ "modernc.org/sqlite"
)

// Fixed-width UTC timestamps keep the text column sortable.
const historyTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteLevelHistory records every level-up so the CLI can list them.
type SQLiteLevelHistory struct {
	db *sql.DB
}

var (
	_ trackerout.LevelHistory = (*SQLiteLevelHistory)(nil)
	_ trackerout.Effect       = (*SQLiteLevelHistory)(nil)
)

func NewSQLiteLevelHistory(dbPath string) (*SQLiteLevelHistory, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	h := &SQLiteLevelHistory{db: db}
	if err := h.ensureSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return h, nil
}

func (h *SQLiteLevelHistory) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS level_events (
  id TEXT PRIMARY KEY,
  at TEXT NOT NULL,
  level INTEGER NOT NULL,
  previous_level INTEGER NOT NULL,
  total_ms INTEGER NOT NULL,
  session_ms INTEGER NOT NULL,
  hours_per_level INTEGER NOT NULL,
  language TEXT NOT NULL,
  total_text TEXT NOT NULL,
  session_text TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_level_events_at ON level_events(at);
`
	if _, err := h.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create level_events table: %w", err)
	}
	return nil
}

func (h *SQLiteLevelHistory) Name() string { return "history" }

func (h *SQLiteLevelHistory) Kind() trackerout.EffectKind { return trackerout.KindLog }

func (h *SQLiteLevelHistory) Fire(ctx context.Context, event domain.LevelUpEvent) error {
	return h.Record(ctx, event)
}

func (h *SQLiteLevelHistory) Record(ctx context.Context, event domain.LevelUpEvent) error {
	const stmt = `
INSERT INTO level_events (id, at, level, previous_level, total_ms, session_ms, hours_per_level, language, total_text, session_text)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO NOTHING;
`
	_, err := h.db.ExecContext(ctx, stmt,
		event.ID,
		event.At.UTC().Format(historyTimeLayout),
		event.Level,
		event.PreviousLevel,
		event.TotalMs,
		event.SessionMs,
		event.HoursPerLevel,
		string(event.Language),
		event.TotalText,
		event.SessionText,
	)
	if err != nil {
		return fmt.Errorf("record level event: %w", err)
	}
	return nil
}

// List returns the newest events first.
func (h *SQLiteLevelHistory) List(ctx context.Context, limit int) ([]domain.LevelUpEvent, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := h.db.QueryContext(ctx, `
SELECT id, at, level, previous_level, total_ms, session_ms, hours_per_level, language, total_text, session_text
FROM level_events
ORDER BY at DESC, level DESC
LIMIT ?;
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list level events: %w", err)
	}
	defer rows.Close()

	out := make([]domain.LevelUpEvent, 0, limit)
	for rows.Next() {
		var (
			event domain.LevelUpEvent
			at    string
			lang  string
		)
		if err := rows.Scan(&event.ID, &at, &event.Level, &event.PreviousLevel, &event.TotalMs, &event.SessionMs,
			&event.HoursPerLevel, &lang, &event.TotalText, &event.SessionText); err != nil {
			return nil, fmt.Errorf("scan level event: %w", err)
		}
		parsed, err := time.Parse(historyTimeLayout, at)
		if err != nil {
			return nil, fmt.Errorf("parse level event time: %w", err)
		}
		event.At = parsed
		event.Language = i18n.Language(lang)
		out = append(out, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate level events: %w", err)
	}
	return out, nil
}

func (h *SQLiteLevelHistory) Close() error {
	return h.db.Close()
}
