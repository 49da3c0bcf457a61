package moment

import (
	"testing"
)

func TestNormalizeUnit(t *testing.T) {
	cases := []struct {
		name string
		want Unit
		ok   bool
	}{
		{"year", Year, true},
		{"Years", Year, true},
		{"y", Year, true},
		{"M", Month, true},
		{"m", Minute, true},
		{"months", Month, true},
		{"Q", Quarter, true},
		{"w", Week, true},
		{"W", ISOWeek, true},
		{"isoWeeks", ISOWeek, true},
		{"D", Date, true},
		{"d", Day, true},
		{"days", Day, true},
		{"DDD", DayOfYear, true},
		{"dayofyear", DayOfYear, true},
		{"e", Weekday, true},
		{"E", ISOWeekday, true},
		{"h", Hour, true},
		{"ms", Millisecond, true},
		{"milliseconds", Millisecond, true},
		{"gg", WeekYear, true},
		{"GG", ISOWeekYear, true},
		{"fortnight", UnknownUnit, false},
		{"", UnknownUnit, false},
	}
	for _, tc := range cases {
		got, ok := NormalizeUnit(tc.name)
		if got != tc.want || ok != tc.ok {
			t.Errorf("NormalizeUnit(%q) = %v, %v, want %v, %v", tc.name, got, ok, tc.want, tc.ok)
		}
	}
}

func TestMustUnit(t *testing.T) {
	if got := MustUnit("hours"); got != Hour {
		t.Errorf("MustUnit(hours) = %v", got)
	}
	defer func() {
		if recover() == nil {
			t.Error("MustUnit(bogus) did not panic")
		}
	}()
	MustUnit("bogus")
}

func TestUnitString(t *testing.T) {
	cases := []struct {
		got, want string
	}{
		{Year.String(), "year"},
		{ISOWeekYear.String(), "isoWeekYear"},
		{Unit(99).String(), "Unit(99)"},
		{FieldMonth.String(), "month"},
		{FieldWeekday.String(), "weekday"},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Errorf("got %q, want %q", tc.got, tc.want)
		}
	}
}
