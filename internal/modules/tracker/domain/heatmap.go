package domain

// HeatmapLabels carries the localized strings of a rendered heatmap.
type HeatmapLabels struct {
	Title    string
	Unit     string
	Weekdays [7]string
}

// HeatColors are the cell colors from empty to the busiest bucket.
var HeatColors = [5]string{"#ebedf0", "#9be9a8", "#40c463", "#30a14e", "#216e39"}

// Intensity buckets ms relative to the busiest day: 0 for no activity, then
// >0, >0.3, >0.6 and >0.8 of the maximum.
func Intensity(ms, maxMs int64) int {
	if ms <= 0 || maxMs <= 0 {
		return 0
	}
	ratio := float64(ms) / float64(maxMs)
	switch {
	case ratio > 0.8:
		return 4
	case ratio > 0.6:
		return 3
	case ratio > 0.3:
		return 2
	default:
		return 1
	}
}

// RoundMinutes is the tooltip value of a cell.
func RoundMinutes(ms int64) int64 {
	if ms <= 0 {
		return 0
	}
	return (ms + MsPerMinute/2) / MsPerMinute
}

func MaxMs(buckets []DayBucket) int64 {
	var max int64
	for _, b := range buckets {
		if b.Ms > max {
			max = b.Ms
		}
	}
	return max
}
