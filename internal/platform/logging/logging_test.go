package logging_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"timelevel/internal/platform/logging"
)

func TestNewFansOutToConsoleAndFile(t *testing.T) {
	t.Parallel()
	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "timelevel.log")
	logger, closeFn, err := logging.New(logging.Options{Level: "debug", Console: &console, File: path})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Info("level up", "level", 3)
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !strings.Contains(console.String(), "level=3") {
		t.Fatalf("console missing record: %q", console.String())
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(b), "msg=\"level up\"") {
		t.Fatalf("file missing record: %q", string(b))
	}
}

func TestNewHonoursLevel(t *testing.T) {
	t.Parallel()
	var console bytes.Buffer
	logger, _, err := logging.New(logging.Options{Level: "warn", Console: &console})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown")
	if strings.Contains(console.String(), "hidden") || !strings.Contains(console.String(), "shown") {
		t.Fatalf("unexpected output %q", console.String())
	}
	if _, _, err := logging.New(logging.Options{Level: "loud"}); err == nil {
		t.Fatalf("unknown level must fail")
	}
}
