package out_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	trackerout "timelevel/internal/modules/tracker/adapter/out"
	"timelevel/internal/modules/tracker/domain"
	"timelevel/internal/platform/clock"
)

func TestEChartsHeatmapRendersHTML(t *testing.T) {
	t.Parallel()
	h := domain.NewHistogram(map[string]int64{"2026-03-01": 90 * domain.MsPerMinute})
	buckets := h.MaterializeRange(clock.UTCCalendar(), time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), 30)
	labels := domain.HeatmapLabels{Title: "Heatmap", Unit: "min", Weekdays: [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}}

	var buf bytes.Buffer
	if err := trackerout.NewEChartsHeatmap().Render(&buf, buckets, labels); err != nil {
		t.Fatalf("render: %v", err)
	}
	html := buf.String()
	for _, want := range []string{"<html", "Heatmap", "2026-03-01", "Wed"} {
		if !strings.Contains(html, want) {
			t.Fatalf("rendered page missing %q", want)
		}
	}
}
