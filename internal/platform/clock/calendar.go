package clock

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dayKeyLayout = "2006-01-02"

// Calendar derives calendar days in a single fixed UTC offset, so a day key
// means the same span on the write and the read path and never shifts with DST.
type Calendar struct {
	loc *time.Location
}

func UTCCalendar() Calendar {
	return Calendar{loc: time.UTC}
}

// ParseOffset accepts "+HH:MM", "-HH:MM", "Z" or "UTC" and returns the offset in seconds.
func ParseOffset(raw string) (int, error) {
	value := strings.TrimSpace(raw)
	if value == "" || strings.EqualFold(value, "z") || strings.EqualFold(value, "utc") {
		return 0, nil
	}
	sign := 1
	switch value[0] {
	case '+':
	case '-':
		sign = -1
	default:
		return 0, fmt.Errorf("offset %q must start with + or -", raw)
	}
	hh, mm, found := strings.Cut(value[1:], ":")
	if !found {
		return 0, fmt.Errorf("offset %q must look like +HH:MM", raw)
	}
	hours, err := strconv.Atoi(hh)
	if err != nil || hours < 0 || hours > 14 {
		return 0, fmt.Errorf("offset %q has invalid hours", raw)
	}
	minutes, err := strconv.Atoi(mm)
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("offset %q has invalid minutes", raw)
	}
	return sign * (hours*3600 + minutes*60), nil
}

func NewCalendar(offset string) (Calendar, error) {
	seconds, err := ParseOffset(offset)
	if err != nil {
		return Calendar{}, err
	}
	if seconds == 0 {
		return UTCCalendar(), nil
	}
	return Calendar{loc: time.FixedZone(formatOffset(seconds), seconds)}, nil
}

func (c Calendar) Location() *time.Location {
	if c.loc == nil {
		return time.UTC
	}
	return c.loc
}

// DayKey formats the calendar day containing t as YYYY-MM-DD.
func (c Calendar) DayKey(t time.Time) string {
	return t.In(c.Location()).Format(dayKeyLayout)
}

// StartOfDay returns midnight of the calendar day containing t.
func (c Calendar) StartOfDay(t time.Time) time.Time {
	local := t.In(c.Location())
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, c.Location())
}

// ParseDayKey is the inverse of DayKey.
func (c Calendar) ParseDayKey(key string) (time.Time, error) {
	return time.ParseInLocation(dayKeyLayout, key, c.Location())
}

func formatOffset(seconds int) string {
	sign := "+"
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	return fmt.Sprintf("%s%02d:%02d", sign, seconds/3600, (seconds%3600)/60)
}
