package out

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"timelevel/internal/modules/tracker/domain"
	trackerout "timelevel/internal/modules/tracker/port/out"
)

// EChartsHeatmap renders the day buckets as a week-by-weekday HTML heatmap.
type EChartsHeatmap struct{}

func NewEChartsHeatmap() trackerout.HeatmapRenderer {
	return EChartsHeatmap{}
}

func (EChartsHeatmap) Render(w io.Writer, buckets []domain.DayBucket, labels domain.HeatmapLabels) error {
	hm := charts.NewHeatMap()
	if len(buckets) == 0 {
		hm.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: labels.Title, Subtitle: "-"}))
		return render(hm, w)
	}

	offset := int(buckets[0].Date.Weekday())
	weeks := (len(buckets) + offset + 6) / 7
	weekLabels := make([]string, weeks)
	data := make([]opts.HeatMapData, 0, len(buckets))
	var maxMinutes int64
	for i, b := range buckets {
		slot := i + offset
		week := slot / 7
		if weekLabels[week] == "" {
			weekLabels[week] = b.DayKey
		}
		minutes := domain.RoundMinutes(b.Ms)
		if minutes > maxMinutes {
			maxMinutes = minutes
		}
		data = append(data, opts.HeatMapData{Name: b.DayKey, Value: []any{week, slot % 7, minutes}})
	}

	hm.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    labels.Title,
			Subtitle: fmt.Sprintf("%s .. %s", buckets[0].DayKey, buckets[len(buckets)-1].DayKey),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{
			Type:      "category",
			Data:      weekLabels,
			SplitArea: &opts.SplitArea{Show: opts.Bool(true)},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type:      "category",
			Data:      labels.Weekdays[:],
			SplitArea: &opts.SplitArea{Show: opts.Bool(true)},
		}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(maxMinutes),
			Text:       []string{labels.Unit},
			InRange:    &opts.VisualMapInRange{Color: domain.HeatColors[:]},
		}),
	)
	hm.AddSeries(labels.Title, data)
	return render(hm, w)
}

func render(hm *charts.HeatMap, w io.Writer) error {
	if err := hm.Render(w); err != nil {
		return fmt.Errorf("render heatmap: %w", err)
	}
	return nil
}
