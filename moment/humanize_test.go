package moment

import (
	"testing"
)

func TestHumanize(t *testing.T) {
	c := testContext(t)
	en := c.Locale("en")
	seconds := func(n float64) Duration { return DurationOf(map[Unit]float64{Second: n}) }
	minutes := func(n float64) Duration { return DurationOf(map[Unit]float64{Minute: n}) }
	hours := func(n float64) Duration { return DurationOf(map[Unit]float64{Hour: n}) }
	days := func(n float64) Duration { return DurationOf(map[Unit]float64{Day: n}) }
	months := func(n float64) Duration { return DurationOf(map[Unit]float64{Month: n}) }

	cases := []struct {
		d    Duration
		want string
	}{
		{Duration{}, "a few seconds"},
		{seconds(44), "a few seconds"},
		{seconds(45), "a minute"},
		{seconds(89), "a minute"},
		{seconds(90), "2 minutes"},
		{minutes(44), "44 minutes"},
		{minutes(45), "an hour"},
		{hours(21), "21 hours"},
		{hours(22), "a day"},
		{days(25), "25 days"},
		{days(26), "a month"},
		{days(30), "a month"},
		{months(10), "10 months"},
		{months(11), "a year"},
		{DurationOf(map[Unit]float64{Year: 2}), "2 years"},
		{days(-3), "3 days"},
		{InvalidDuration(), "Invalid date"},
	}
	for _, tc := range cases {
		if got := tc.d.WithLocale(en).Humanize(false); got != tc.want {
			t.Errorf("%s.Humanize() = %q, want %q", tc.d, got, tc.want)
		}
	}
}

func TestHumanizeSuffix(t *testing.T) {
	c := testContext(t)
	three := DurationOf(map[Unit]float64{Day: 3})

	cases := []struct {
		locale string
		d      Duration
		suffix bool
		want   string
	}{
		{"en", three, true, "in 3 days"},
		{"en", three.Negate(), true, "3 days ago"},
		{"en", NewDuration(1000), true, "in a few seconds"},
		{"lt", three, false, "3 dienos"},
		{"lt", three, true, "po 3 dienų"},
		{"lt", three.Negate(), true, "prieš 3 dienas"},
		{"lt", DurationOf(map[Unit]float64{Day: 11}), false, "11 dienų"},
		{"lt", DurationOf(map[Unit]float64{Hour: 1}), true, "po valandos"},
		{"lt", NewDuration(-1000), true, "prieš kelias sekundes"},
	}
	for _, tc := range cases {
		if got := tc.d.WithLocale(c.Locale(tc.locale)).Humanize(tc.suffix); got != tc.want {
			t.Errorf("%s %s.Humanize(%v) = %q, want %q", tc.locale, tc.d, tc.suffix, got, tc.want)
		}
	}
}

func TestHumanizeThresholds(t *testing.T) {
	c := testContext(t)
	en := c.Locale("en")

	weeks := DefaultThresholds()
	weeks.D, weeks.W = 7, 4
	seconds := DefaultThresholds()
	seconds.SS = 3

	cases := []struct {
		name string
		d    Duration
		th   Thresholds
		want string
	}{
		{"one week", DurationOf(map[Unit]float64{Day: 7}), weeks, "a week"},
		{"two weeks", DurationOf(map[Unit]float64{Day: 14}), weeks, "2 weeks"},
		{"past week buckets", DurationOf(map[Unit]float64{Day: 28}), weeks, "a month"},
		{"counted seconds", DurationOf(map[Unit]float64{Second: 10}), seconds, "10 seconds"},
		{"few seconds", DurationOf(map[Unit]float64{Second: 3}), seconds, "a few seconds"},
	}
	for _, tc := range cases {
		if got := tc.d.WithLocale(en).HumanizeWith(false, tc.th); got != tc.want {
			t.Errorf("%s: HumanizeWith() = %q, want %q", tc.name, got, tc.want)
		}
	}

	floor := DurationOf(map[Unit]float64{Second: 90}).WithLocale(en).HumanizeWithOptions(HumanizeOptions{
		Rounding: func(f float64) float64 { return float64(int(f)) },
	})
	if floor != "a minute" {
		t.Errorf("floor rounding = %q, want %q", floor, "a minute")
	}
}

func TestRelative(t *testing.T) {
	c := testContext(t)
	now := c.Now().UTC(false)
	later := now.AddUnit(3, Day)

	cases := []struct {
		name string
		got  string
		want string
	}{
		{"from", later.From(now, false), "in 3 days"},
		{"from past", now.From(later, false), "3 days ago"},
		{"from without suffix", later.From(now, true), "3 days"},
		{"to", now.To(later, false), "in 3 days"},
		{"from now", later.FromNow(false), "in 3 days"},
		{"to now", later.ToNow(false), "3 days ago"},
		{"months", now.AddUnit(2, Month).FromNow(false), "in 2 months"},
		{"localized", later.WithLocale("lt").FromNow(false), "po 3 dienų"},
		{"invalid", c.Invalid(nil).FromNow(false), "Invalid date"},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, tc.got, tc.want)
		}
	}

	d := Between(now, now.AddUnit(1, Month).AddUnit(2, Hour))
	if d.Months() != 1 || d.Hours() != 2 {
		t.Errorf("Between = %s, want P1MT2H", d)
	}
}

func TestCalendar(t *testing.T) {
	c := testContext(t)
	at := func(month, day int) Instant { return c.DateUTC(2021, month, day, 9) }

	cases := []struct {
		name      string
		i         Instant
		overrides map[string]string
		want      string
	}{
		{"same day", at(5, 15), nil, "Today at 9:00 AM"},
		{"next day", at(5, 16), nil, "Tomorrow at 9:00 AM"},
		{"last day", at(5, 14), nil, "Yesterday at 9:00 AM"},
		{"last week", at(5, 11), nil, "Last Friday at 9:00 AM"},
		{"next week", at(5, 18), nil, "Friday at 9:00 AM"},
		{"same else", at(6, 1), nil, "07/01/2021"},
		{"override", at(5, 15), map[string]string{"sameDay": "[Now-ish]"}, "Now-ish"},
		{"empty override", at(5, 15), map[string]string{"sameDay": ""}, "Today at 9:00 AM"},
		{"localized", at(5, 16).WithLocale("lt"), nil, "Rytoj 09:00"},
	}
	for _, tc := range cases {
		if got := tc.i.Calendar(nil, tc.overrides); got != tc.want {
			t.Errorf("%s: Calendar() = %q, want %q", tc.name, got, tc.want)
		}
	}

	ref := c.DateUTC(2021, 5, 17)
	if got := at(5, 16).Calendar(&ref, nil); got != "Yesterday at 9:00 AM" {
		t.Errorf("Calendar(ref) = %q", got)
	}
}

func TestCalendarBucket(t *testing.T) {
	cases := []struct {
		diff float64
		want string
	}{
		{-7, "sameElse"},
		{-6.5, "lastWeek"},
		{-1.5, "lastWeek"},
		{-1, "lastDay"},
		{-0.5, "lastDay"},
		{0, "sameDay"},
		{1, "nextDay"},
		{2, "nextWeek"},
		{6.99, "nextWeek"},
		{7, "sameElse"},
	}
	for _, tc := range cases {
		if got := CalendarBucket(tc.diff); got != tc.want {
			t.Errorf("CalendarBucket(%v) = %q, want %q", tc.diff, got, tc.want)
		}
	}
}
