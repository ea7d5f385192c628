package domain

import (
	"fmt"
	"sort"
	"time"

	"timelevel/internal/platform/clock"
)

// Histogram maps calendar-day keys (YYYY-MM-DD) to milliseconds recorded on
// that day. Buckets are created on first write and never pruned. The zero
// value is ready to use.
type Histogram struct {
	days map[string]int64
}

// DayBucket is one materialized histogram cell.
type DayBucket struct {
	DayKey string
	Date   time.Time
	Ms     int64
}

func NewHistogram(days map[string]int64) Histogram {
	h := Histogram{days: make(map[string]int64, len(days))}
	for k, v := range days {
		h.days[k] = v
	}
	return h
}

// Increment adds deltaMs to the bucket for dayKey. A negative delta is a
// caller bug and panics.
func (h *Histogram) Increment(dayKey string, deltaMs int64) {
	if deltaMs < 0 {
		panic(fmt.Sprintf("histogram: negative delta %d for %s", deltaMs, dayKey))
	}
	if h.days == nil {
		h.days = map[string]int64{}
	}
	h.days[dayKey] += deltaMs
}

func (h Histogram) ValueFor(dayKey string) int64 {
	return h.days[dayKey]
}

func (h Histogram) Len() int {
	return len(h.days)
}

func (h Histogram) Sum() int64 {
	var total int64
	for _, v := range h.days {
		total += v
	}
	return total
}

// Days returns a copy of the buckets, suitable for serialization.
func (h Histogram) Days() map[string]int64 {
	out := make(map[string]int64, len(h.days))
	for k, v := range h.days {
		out[k] = v
	}
	return out
}

// Keys returns the recorded day keys in ascending order.
func (h Histogram) Keys() []string {
	keys := make([]string, 0, len(h.days))
	for k := range h.days {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (h Histogram) Clone() Histogram {
	return NewHistogram(h.days)
}

// MaterializeRange returns exactly numDays buckets ending with the calendar day
// of end, oldest first. Days without data yield 0.
func (h Histogram) MaterializeRange(cal clock.Calendar, end time.Time, numDays int) []DayBucket {
	if numDays <= 0 {
		return []DayBucket{}
	}
	last := cal.StartOfDay(end)
	out := make([]DayBucket, 0, numDays)
	for i := numDays - 1; i >= 0; i-- {
		day := last.AddDate(0, 0, -i)
		key := cal.DayKey(day)
		out = append(out, DayBucket{DayKey: key, Date: day, Ms: h.days[key]})
	}
	return out
}
