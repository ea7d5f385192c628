package domain

import (
	"strconv"
	"strings"

	"timelevel/internal/platform/i18n"
)

const (
	MsPerSecond int64 = 1000
	MsPerMinute       = 60 * MsPerSecond
	MsPerHour         = 60 * MsPerMinute
)

// Parts is the hours/minutes/seconds triple the total is persisted as.
type Parts struct {
	Hours   int64 `json:"hours"`
	Minutes int64 `json:"minutes"`
	Seconds int64 `json:"seconds"`
}

// MsToParts floors ms to whole seconds and splits it. Negative input is treated as 0.
func MsToParts(ms int64) Parts {
	if ms < 0 {
		ms = 0
	}
	total := ms / MsPerSecond
	return Parts{
		Hours:   total / 3600,
		Minutes: (total % 3600) / 60,
		Seconds: total % 60,
	}
}

// PartsToMs is exact for non-negative parts; a negative result is clamped to 0.
func PartsToMs(p Parts) int64 {
	ms := p.Hours*MsPerHour + p.Minutes*MsPerMinute + p.Seconds*MsPerSecond
	if ms < 0 {
		return 0
	}
	return ms
}

// FormatDuration renders the non-zero higher units, plus seconds when showSeconds
// is set or the duration is under a minute, so the result is never empty.
func FormatDuration(ms int64, showSeconds bool, units i18n.Units) string {
	p := MsToParts(ms)
	var b strings.Builder
	if p.Hours > 0 {
		writeUnit(&b, p.Hours, units.Hour)
	}
	if p.Minutes > 0 || p.Hours > 0 {
		writeUnit(&b, p.Minutes, units.Min)
	}
	if showSeconds || (p.Hours == 0 && p.Minutes == 0) {
		writeUnit(&b, p.Seconds, units.Sec)
	}
	return b.String()
}

// FormatTotalTime always shows minutes, drops the hour unit below one hour,
// and starts with prefix.
func FormatTotalTime(ms int64, prefix string, showSeconds bool, units i18n.Units) string {
	p := MsToParts(ms)
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(" ")
	if p.Hours > 0 {
		writeUnit(&b, p.Hours, units.Hour)
	}
	writeUnit(&b, p.Minutes, units.Min)
	if showSeconds {
		writeUnit(&b, p.Seconds, units.Sec)
	}
	return b.String()
}

func writeUnit(b *strings.Builder, value int64, label string) {
	b.WriteString(strconv.FormatInt(value, 10))
	b.WriteString(label)
}
