package markdown_test

import (
	"strings"
	"testing"

	"timelevel/internal/platform/markdown"
)

const (
	header = "```timeline\n[line-3, body-2]\n"
	fence  = "```"
)

func TestInsertIntoBlockAppendsBeforeClosingFence(t *testing.T) {
	t.Parallel()
	body := "# Notes\n\n" + header + "+ first\n\n" + fence + "\n\ntrailing text\n"
	got := markdown.InsertIntoBlock(body, header, fence, "+ second\n\n")
	want := "# Notes\n\n" + header + "+ first\n\n+ second\n\n" + fence + "\n\ntrailing text\n"
	if got != want {
		t.Fatalf("unexpected body:\n%s", got)
	}
}

func TestInsertIntoBlockCreatesMissingRegion(t *testing.T) {
	t.Parallel()
	got := markdown.InsertIntoBlock("", header, fence, "+ entry\n")
	if got != header+"+ entry\n"+fence+"\n" {
		t.Fatalf("unexpected empty-body result %q", got)
	}
	got = markdown.InsertIntoBlock("existing", header, fence, "+ entry\n")
	if !strings.HasPrefix(got, "existing\n\n"+header) {
		t.Fatalf("existing text must be kept, got %q", got)
	}
	unterminated := "intro\n" + header + "+ dangling"
	got = markdown.InsertIntoBlock(unterminated, header, fence, "+ entry\n")
	if !strings.HasPrefix(got, unterminated) || strings.Count(got, header) != 2 {
		t.Fatalf("unterminated block must be preserved and a new block appended, got %q", got)
	}
}

func TestFrontmatterRoundTrip(t *testing.T) {
	t.Parallel()
	rendered, err := markdown.RenderFrontmatter(map[string]any{"kind": "timeline", "last_level": 3}, "body\n")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	meta, body, err := markdown.SplitFrontmatter(rendered)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if meta["kind"] != "timeline" || meta["last_level"] != 3 {
		t.Fatalf("unexpected meta %+v", meta)
	}
	if body != "\nbody\n" {
		t.Fatalf("unexpected body %q", body)
	}
	if _, _, err := markdown.SplitFrontmatter("---\nkind: x\n"); err == nil {
		t.Fatalf("missing closing separator must fail")
	}
	meta, body, err = markdown.SplitFrontmatter("plain")
	if err != nil || len(meta) != 0 || body != "plain" {
		t.Fatalf("plain content must pass through, got %v %q %v", meta, body, err)
	}
}

func TestEditNoteKeepsUnparseableHeaderAsBody(t *testing.T) {
	t.Parallel()
	broken := "---\nnot closed\n"
	got, err := markdown.EditNote(broken, func(meta map[string]any, body string) string {
		meta["kind"] = "timeline"
		return body + "tail\n"
	})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if !strings.HasPrefix(got, "---\nkind: timeline\n---\n") || !strings.HasSuffix(got, broken+"tail\n") {
		t.Fatalf("unexpected note %q", got)
	}
}
