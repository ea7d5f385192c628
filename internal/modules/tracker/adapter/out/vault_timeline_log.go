package out

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"timelevel/internal/modules/tracker/domain"
	trackerout "timelevel/internal/modules/tracker/port/out"
	"timelevel/internal/platform/fsutil"
	"timelevel/internal/platform/i18n"
	"timelevel/internal/platform/logging"
	"timelevel/internal/platform/markdown"
)

const (
	timelineSchemaVersion = 1
	timelineStart         = "```timeline\n[line-3, body-2]\n"
	timelineEnd           = "```"
)

// VaultTimelineLog appends level-up records to the timeline block of a vault
// note, creating the note or the block when missing.
type VaultTimelineLog struct {
	path   string
	logger *slog.Logger
	mu     sync.Mutex
}

func NewVaultTimelineLog(path string, logger *slog.Logger) *VaultTimelineLog {
	return &VaultTimelineLog{path: path, logger: logging.OrDiscard(logger)}
}

var _ trackerout.Effect = (*VaultTimelineLog)(nil)

func (l *VaultTimelineLog) Name() string { return "timeline" }

func (l *VaultTimelineLog) Kind() trackerout.EffectKind { return trackerout.KindLog }

func (l *VaultTimelineLog) Fire(ctx context.Context, event domain.LevelUpEvent) error {
	return l.Append(ctx, FormatTimelineEntry(event), event.Level, event.At)
}

// Append inserts entry before the closing fence of the timeline block and
// refreshes the note header.
func (l *VaultTimelineLog) Append(_ context.Context, entry string, level int, at time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	content := ""
	payload, err := os.ReadFile(l.path)
	switch {
	case err == nil:
		content = string(payload)
	case !os.IsNotExist(err):
		return fmt.Errorf("read timeline: %w", err)
	}

	rendered, err := markdown.EditNote(content, func(meta map[string]any, body string) string {
		meta["schema_version"] = timelineSchemaVersion
		meta["kind"] = "timeline"
		meta["last_level"] = level
		meta["updated_at"] = at.Format(time.RFC3339)
		return markdown.InsertIntoBlock(body, timelineStart, timelineEnd, entry)
	})
	if err != nil {
		return err
	}
	if err := fsutil.WriteFileAtomic(l.path, []byte(rendered), 0o644); err != nil {
		return fmt.Errorf("write timeline: %w", err)
	}
	l.logger.Debug("timeline entry appended", "path", l.path, "level", level)
	return nil
}

// FormatTimelineEntry renders the three-line record of one level-up in the
// event's language.
func FormatTimelineEntry(event domain.LevelUpEvent) string {
	table := i18n.For(event.Language)
	var b strings.Builder
	fmt.Fprintf(&b, "+ %s %s Lv.%d\n", event.At.Format("2006-01-02 15:04"), table.LevelReached, event.Level)
	fmt.Fprintf(&b, "+ %s Lv.%d\n", table.LevelTitle, event.Level)
	fmt.Fprintf(&b, "+ %s%s%s%s%s%s%s\n\n",
		table.TotalSoFar, event.TotalText, table.Comma,
		table.SessionSoFar, event.SessionText, table.Period, table.Cheer)
	return b.String()
}
