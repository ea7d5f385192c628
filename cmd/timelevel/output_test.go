package main

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	effectsdto "timelevel/internal/modules/effects/dto"
	trackerdto "timelevel/internal/modules/tracker/dto"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestPrintHeatmapPlacesDaysByWeekday(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC) // Tuesday
	out := trackerdto.HeatmapOutput{
		Title:    "Activity",
		MinUnit:  "min",
		Weekdays: [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
	}
	for i := range 7 {
		day := start.AddDate(0, 0, i)
		cell := trackerdto.HeatmapCell{DayKey: day.Format("2006-01-02"), Date: day, Weekday: int(day.Weekday())}
		if i == 0 {
			cell.Ms, cell.Minutes, cell.Intensity = 3_600_000, 60, 4
		}
		out.Cells = append(out.Cells, cell)
	}

	var buf bytes.Buffer
	printHeatmap(&buf, out)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 9 {
		t.Fatalf("expected title, 7 rows and summary, got %d lines:\n%s", len(lines), buf.String())
	}
	if lines[3] != "Tue  █ " {
		t.Fatalf("unexpected tuesday row %q", lines[3])
	}
	if lines[1] != "Sun   ·" {
		t.Fatalf("unexpected sunday row %q", lines[1])
	}
	if !strings.Contains(lines[8], "2026-03-03 → 2026-03-09 · 1/7 · 60 min") {
		t.Fatalf("unexpected summary %q", lines[8])
	}
}

func TestPrintDoctorCountsFailingPlugins(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	failing := printDoctor(&buf, []effectsdto.DoctorResult{
		{Name: "chime", ChecksumValid: true, BinaryReachable: true, LifecycleOK: true},
		{Name: "broken", ChecksumValid: false, BinaryReachable: true, Error: "checksum mismatch"},
	})
	if failing != 1 {
		t.Fatalf("expected 1 failing plugin, got %d", failing)
	}
	if !strings.Contains(buf.String(), "checksum mismatch") {
		t.Fatalf("expected error column in output:\n%s", buf.String())
	}
}

func TestPrintStatusClampsBar(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printStatus(&buf, trackerdto.StatusOutput{
		Level:    3,
		Progress: 1,
		BarColor: "#ff8800",
		Labels:   trackerdto.StatusLabels{Title: "Tracker", LevelProgress: "Progress"},
	})
	if !strings.Contains(buf.String(), strings.Repeat("█", statusBarWidth)+" 100.0%") {
		t.Fatalf("expected full bar, got:\n%s", buf.String())
	}
	if strings.Contains(buf.String(), "░") {
		t.Fatalf("full bar should have no empty cells:\n%s", buf.String())
	}
}
