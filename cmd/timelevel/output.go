package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	effectsdto "timelevel/internal/modules/effects/dto"
	settingsdto "timelevel/internal/modules/settings/dto"
	trackerdto "timelevel/internal/modules/tracker/dto"
)

const statusBarWidth = 30

var heatGlyphs = [5]string{"·", "░", "▒", "▓", "█"}

func applyColorMode(disabled bool) {
	if disabled {
		color.NoColor = true
	}
}

func printStatus(w io.Writer, status trackerdto.StatusOutput) {
	title := color.New(color.Bold, color.FgMagenta)
	muted := color.New(color.Faint)
	bar := hexColor(status.BarColor)

	_, _ = title.Fprintf(w, "%s  Lv.%d %s\n", status.Labels.Title, status.Level, status.Badge)
	_, _ = fmt.Fprintf(w, "%s\n", status.TotalText)
	_, _ = muted.Fprintf(w, "%s %s\n", status.Labels.Session, status.SessionText)

	filled := int(status.Progress * statusBarWidth)
	filled = max(0, min(statusBarWidth, filled))
	_, _ = fmt.Fprintf(w, "%s %s%s %.1f%%\n",
		status.Labels.LevelProgress,
		bar.Sprint(strings.Repeat("█", filled)),
		muted.Sprint(strings.Repeat("░", statusBarWidth-filled)),
		status.Progress*100,
	)
	_, _ = fmt.Fprintf(w, "%s %s · %s %s\n",
		status.Labels.LevelTime, status.ThisLevelText,
		status.Labels.LevelNeed, status.NextLevelText,
	)
	if status.Labels.Footer != "" {
		_, _ = muted.Fprintln(w, status.Labels.Footer)
	}
}

// printHeatmap draws one row per weekday and one column per week, oldest on
// the left.
func printHeatmap(w io.Writer, out trackerdto.HeatmapOutput) {
	_, _ = color.New(color.Bold).Fprintln(w, out.Title)
	if len(out.Cells) == 0 {
		return
	}
	lead := out.Cells[0].Weekday
	weeks := (lead + len(out.Cells) + 6) / 7
	grid := make([][]string, 7)
	for day := range grid {
		grid[day] = make([]string, weeks)
		for week := range grid[day] {
			grid[day][week] = " "
		}
	}
	for i, cell := range out.Cells {
		slot := lead + i
		grid[cell.Weekday][slot/7] = hexColor(cell.Color).Sprint(heatGlyphs[cell.Intensity])
	}

	var activeDays int
	var totalMin int64
	for _, cell := range out.Cells {
		if cell.Ms > 0 {
			activeDays++
			totalMin += cell.Minutes
		}
	}

	for day, row := range grid {
		_, _ = fmt.Fprintf(w, "%-4s %s\n", out.Weekdays[day], strings.Join(row, ""))
	}
	_, _ = fmt.Fprintf(w, "%s → %s · %d/%d · %s %s\n",
		out.Cells[0].DayKey, out.Cells[len(out.Cells)-1].DayKey,
		activeDays, len(out.Cells),
		humanize.Comma(totalMin), out.MinUnit,
	)
}

func printHistory(w io.Writer, items []trackerdto.LevelUpOutput, now time.Time) {
	tbl := newTable(w)
	tbl.AppendHeader(table.Row{"Level", "Badge", "Reached", "Total", "Session"})
	for _, item := range items {
		tbl.AppendRow(table.Row{
			fmt.Sprintf("%d → %d", item.PreviousLevel, item.Level),
			item.Badge,
			humanize.RelTime(item.At, now, "ago", "from now"),
			item.TotalText,
			item.SessionText,
		})
	}
	tbl.Render()
}

func printSettings(w io.Writer, entries []settingsdto.Entry) {
	tbl := newTable(w)
	tbl.AppendHeader(table.Row{"Key", "Value"})
	for _, entry := range entries {
		tbl.AppendRow(table.Row{entry.Key, entry.Value})
	}
	tbl.Render()
}

func printPlugins(w io.Writer, items []effectsdto.PluginInfo) {
	tbl := newTable(w)
	tbl.AppendHeader(table.Row{"Name", "Version", "Enabled", "Capabilities", "Binary"})
	for _, item := range items {
		tbl.AppendRow(table.Row{item.Name, item.Version, item.Enabled, strings.Join(item.Capabilities, ","), item.Binary})
	}
	tbl.Render()
}

// printDoctor reports each plugin check and returns how many plugins failed.
func printDoctor(w io.Writer, items []effectsdto.DoctorResult) int {
	ok := color.New(color.FgGreen).SprintFunc()
	fail := color.New(color.FgRed).SprintFunc()
	mark := func(passed bool) string {
		if passed {
			return ok("OK")
		}
		return fail("FAIL")
	}

	failing := 0
	tbl := newTable(w)
	tbl.AppendHeader(table.Row{"Plugin", "Checksum", "Binary", "Lifecycle", "Error"})
	for _, item := range items {
		if !item.ChecksumValid || !item.BinaryReachable || !item.LifecycleOK {
			failing++
		}
		tbl.AppendRow(table.Row{item.Name, mark(item.ChecksumValid), mark(item.BinaryReachable), mark(item.LifecycleOK), item.Error})
	}
	tbl.Render()
	return failing
}

func newTable(w io.Writer) table.Writer {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Options.SeparateColumns = false
	return tbl
}

// hexColor maps "#rrggbb" to a truecolor printer. Anything else prints plain.
func hexColor(hex string) *color.Color {
	var r, g, b int
	if _, err := fmt.Sscanf(strings.TrimPrefix(hex, "#"), "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.New(color.Reset)
	}
	return color.RGB(r, g, b)
}
