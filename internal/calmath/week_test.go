package calmath

import (
	"testing"
	"time"
)

func TestISOWeekMatchesTime(t *testing.T) {
	start := time.Date(1998, time.December, 1, 0, 0, 0, 0, time.UTC)
	for d := start; d.Year() < 2031; d = d.AddDate(0, 0, 3) {
		wantYear, wantWeek := d.ISOWeek()
		week, year := WeekOfYear(d.Year(), d.YearDay(), 1, 4)
		if week != wantWeek || year != wantYear {
			t.Fatalf("WeekOfYear(%s) = (%d, %d), want (%d, %d)", d.Format(time.DateOnly), week, year, wantWeek, wantYear)
		}
	}
}

func TestWeeksInYear(t *testing.T) {
	cases := []struct {
		year, dow, doy int
		want           int
	}{
		{2020, 1, 4, 53},
		{2021, 1, 4, 52},
		{2026, 1, 4, 53},
		{2015, 1, 4, 53},
		// US style: weeks start Sunday, the week with January 1st is week one.
		{2016, 0, 6, 53},
		{2017, 0, 6, 52},
	}
	for _, c := range cases {
		if got := WeeksInYear(c.year, c.dow, c.doy); got != c.want {
			t.Errorf("WeeksInYear(%d, %d, %d) = %d, want %d", c.year, c.dow, c.doy, got, c.want)
		}
	}
}

func TestDayOfYearFromWeeks(t *testing.T) {
	cases := []struct {
		name                    string
		year, week, weekday     int
		dow, doy                int
		wantYear, wantDayOfYear int
	}{
		{"ISO 2021-W01 Monday", 2021, 1, 1, 1, 4, 2021, 4},
		{"ISO 2020-W53 Sunday", 2020, 53, 0, 1, 4, 2021, 3},
		{"ISO 2027-W01 Monday", 2027, 1, 1, 1, 4, 2027, 4},
		{"ISO 2026-W01 Monday is in 2025", 2026, 1, 1, 1, 4, 2025, 363},
		{"US 2017 week 1 Sunday", 2017, 1, 0, 0, 6, 2017, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			y, doy := DayOfYearFromWeeks(c.year, c.week, c.weekday, c.dow, c.doy)
			if y != c.wantYear || doy != c.wantDayOfYear {
				t.Errorf("DayOfYearFromWeeks(%d, %d, %d) = (%d, %d), want (%d, %d)", c.year, c.week, c.weekday, y, doy, c.wantYear, c.wantDayOfYear)
			}
		})
	}
}
