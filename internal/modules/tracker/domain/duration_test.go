package domain_test

import (
	"testing"

	"timelevel/internal/modules/tracker/domain"
	"timelevel/internal/platform/i18n"
)

var enUnits = i18n.For(i18n.English).Units

func TestMsToPartsFloorsSubSecond(t *testing.T) {
	t.Parallel()
	got := domain.MsToParts(3661999)
	want := domain.Parts{Hours: 1, Minutes: 1, Seconds: 1}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	if zero := domain.MsToParts(-5); zero != (domain.Parts{}) {
		t.Fatalf("negative input must clamp to zero, got %+v", zero)
	}
}

func TestPartsRoundTripWithinOneSecond(t *testing.T) {
	t.Parallel()
	for _, ms := range []int64{0, 1, 999, 1000, 59999, 3600000, 3661000, 36000999, 987654321} {
		back := domain.PartsToMs(domain.MsToParts(ms))
		if diff := ms - back; diff < 0 || diff >= 1000 {
			t.Fatalf("round trip of %d drifted to %d", ms, back)
		}
	}
	for h := int64(0); h < 30; h += 7 {
		for m := int64(0); m < 60; m += 13 {
			for s := int64(0); s < 60; s += 11 {
				parts := domain.Parts{Hours: h, Minutes: m, Seconds: s}
				if got := domain.MsToParts(domain.PartsToMs(parts)); got != parts {
					t.Fatalf("expected exact round trip for %+v, got %+v", parts, got)
				}
			}
		}
	}
}

func TestPartsToMsClampsNegativeTotal(t *testing.T) {
	t.Parallel()
	if got := domain.PartsToMs(domain.Parts{Hours: -2, Minutes: 5}); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()
	cases := []struct {
		ms          int64
		showSeconds bool
		want        string
	}{
		{3661000, true, "1h1min1s"},
		{3661000, false, "1h1min"},
		{3600000, false, "1h0min"},
		{120000, false, "2min"},
		{42000, false, "42s"},
		{0, false, "0s"},
		{-1, true, "0s"},
	}
	for _, tc := range cases {
		if got := domain.FormatDuration(tc.ms, tc.showSeconds, enUnits); got != tc.want {
			t.Fatalf("FormatDuration(%d, %v) = %q, want %q", tc.ms, tc.showSeconds, got, tc.want)
		}
	}
}

func TestFormatTotalTime(t *testing.T) {
	t.Parallel()
	if got := domain.FormatTotalTime(0, "Total", false, enUnits); got != "Total 0min" {
		t.Fatalf("unexpected zero total: %q", got)
	}
	if got := domain.FormatTotalTime(3661000, "Total", true, enUnits); got != "Total 1h1min1s" {
		t.Fatalf("unexpected total: %q", got)
	}
	zh := i18n.For(i18n.Chinese)
	if got := domain.FormatTotalTime(7200000, zh.Prefix, false, zh.Units); got != "累计 2小时0分" {
		t.Fatalf("unexpected zh total: %q", got)
	}
}
