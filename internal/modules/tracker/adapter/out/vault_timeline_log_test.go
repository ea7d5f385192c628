package out_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	trackerout "timelevel/internal/modules/tracker/adapter/out"
	"timelevel/internal/modules/tracker/domain"
	"timelevel/internal/platform/i18n"
	"timelevel/internal/platform/markdown"
)

func sampleEvent(level int, lang i18n.Language) domain.LevelUpEvent {
	return domain.LevelUpEvent{
		ID:          "evt",
		At:          time.Date(2026, 3, 1, 18, 30, 0, 0, time.UTC),
		Level:       level,
		Language:    lang,
		TotalText:   "20h0min5s",
		SessionText: "1h2min3s",
	}
}

func TestFormatTimelineEntry(t *testing.T) {
	t.Parallel()
	got := trackerout.FormatTimelineEntry(sampleEvent(3, i18n.English))
	want := "+ 2026-03-01 18:30 reached Lv.3\n" +
		"+ Level up to Lv.3\n" +
		"+ Total so far: 20h0min5s, this session: 1h2min3s. Great work, keep going!\n\n"
	if got != want {
		t.Fatalf("unexpected entry:\n%q\nwant\n%q", got, want)
	}
}

func TestTimelineCreatesNoteThenAppends(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "Timeline", "TimeLevel.md")
	log := trackerout.NewVaultTimelineLog(path, nil)
	ctx := context.Background()
	if err := log.Fire(ctx, sampleEvent(2, i18n.Chinese)); err != nil {
		t.Fatalf("first append: %v", err)
	}
	if err := log.Fire(ctx, sampleEvent(3, i18n.Chinese)); err != nil {
		t.Fatalf("second append: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	meta, body, err := markdown.SplitFrontmatter(string(b))
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if meta["kind"] != "timeline" || meta["last_level"] != 3 {
		t.Fatalf("unexpected header %+v", meta)
	}
	if strings.Count(body, "```timeline") != 1 {
		t.Fatalf("expected one block:\n%s", body)
	}
	first := strings.Index(body, "升级至 Lv.2")
	second := strings.Index(body, "升级至 Lv.3")
	closing := strings.LastIndex(body, "```")
	if first < 0 || second < first || closing < second {
		t.Fatalf("entries out of order or outside the block:\n%s", body)
	}
}

func TestTimelineKeepsExistingNoteWithoutBlock(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "TimeLevel.md")
	if err := os.WriteFile(path, []byte("# My timeline\n\nhand written notes\n"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := trackerout.NewVaultTimelineLog(path, nil).Fire(context.Background(), sampleEvent(5, i18n.English)); err != nil {
		t.Fatalf("append: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	note := string(b)
	if !strings.Contains(note, "hand written notes\n\n```timeline\n[line-3, body-2]\n+ 2026-03-01 18:30 reached Lv.5") {
		t.Fatalf("existing text must stay and a block must follow it:\n%s", note)
	}
}
