package moment

import (
	"testing"
)

func TestFormat(t *testing.T) {
	c := testContext(t)
	// A Wednesday.
	i := c.DateUTC(2021, 1, 3, 14, 5, 9, 45)

	cases := []struct {
		pattern string
		want    string
	}{
		{"YYYY-MM-DD HH:mm:ss.SSS", "2021-02-03 14:05:09.045"},
		{"dddd, MMMM Do YYYY, h:mm:ss a", "Wednesday, February 3rd 2021, 2:05:09 pm"},
		{"ddd MMM D YY", "Wed Feb 3 21"},
		{"dd d do e E", "We 3 3rd 3 3"},
		{"[Today is] dddd", "Today is Wednesday"},
		{"Q Qo", "1 1st"},
		{"M Mo", "2 2nd"},
		{"DDD DDDD DDDo", "34 034 34th"},
		{"w ww wo W WW Wo", "6 06 6th 5 05 5th"},
		{"gg gggg GG GGGG", "21 2021 21 2021"},
		{"Y YYYYY YYYYYY", "2021 02021 +002021"},
		{"N NNNN y yo", "AD Anno Domini 2021 2021st"},
		{"H HH h hh k kk A", "14 14 2 02 14 14 PM"},
		{"hmm hmmss Hmm Hmmss", "205 20509 1405 140509"},
		{"m mm s ss", "5 05 9 09"},
		{"S SS SSS SSSS SSSSSS", "0 04 045 0450 045000"},
		{"Z ZZ z zz", "+00:00 +0000 UTC Coordinated Universal Time"},
		{"X x", "1612361109 1612361109045"},
		{"[YYYY] \\Y", "YYYY Y"},
		{"", "2021-02-03T14:05:09Z"},
	}
	for _, tc := range cases {
		if got := i.Format(tc.pattern); got != tc.want {
			t.Errorf("Format(%q) = %q, want %q", tc.pattern, got, tc.want)
		}
	}
}

func TestFormatLongDate(t *testing.T) {
	c := testContext(t)
	i := c.DateUTC(2021, 1, 3, 14, 5, 9, 45)

	cases := []struct {
		locale  string
		pattern string
		want    string
	}{
		{"en", "LT", "2:05 PM"},
		{"en", "LTS", "2:05:09 PM"},
		{"en", "L", "02/03/2021"},
		{"en", "LL", "February 3, 2021"},
		{"en", "LLLL", "Wednesday, February 3, 2021 2:05 PM"},
		{"en", "l", "2/3/2021"},
		{"en", "ll", "Feb 3, 2021"},
		{"en", "llll", "Wed, Feb 3, 2021 2:05 PM"},
		{"en", "[LT] LT", "LT 2:05 PM"},
		{"lt", "L", "2021-02-03"},
		{"lt", "LL", "2021 m. vasario 3 d."},
		{"lt", "LLLL", "2021 m. vasario 3 d., trečiadienis, 14:05 val."},
		{"lt", "MMMM", "vasaris"},
		{"lt", "dddd HH:mm", "trečiadienį 14:05"},
		{"lt", "Do", "3-oji"},
	}
	for _, tc := range cases {
		if got := i.WithLocale(tc.locale).Format(tc.pattern); got != tc.want {
			t.Errorf("%s Format(%q) = %q, want %q", tc.locale, tc.pattern, got, tc.want)
		}
	}
}

func TestFormatModes(t *testing.T) {
	c := testContext(t)
	i := c.DateUTC(2021, 1, 3, 14, 5, 9, 45)

	if got := i.WithUTCOffset(-330, false).Format(""); got != "2021-02-03T08:35:09-05:30" {
		t.Errorf("offset default format = %q", got)
	}
	if got := i.Local(false).Format(""); got != "2021-02-03T14:05:09+00:00" {
		t.Errorf("local default format = %q", got)
	}
	if got := c.DateUTC(-1, 0, 1).Format("YYYYYY Y"); got != "-000001 -0001" {
		t.Errorf("negative year = %q", got)
	}
	if got := c.DateUTC(12345, 0, 1).Format("Y"); got != "+12345" {
		t.Errorf("five digit year = %q", got)
	}
	if got := c.UnixMilli(0).UTC(false).Format("YYYY-MM-DD[T]HH:mm:ss.SSS[Z]"); got != "1970-01-01T00:00:00.000Z" {
		t.Errorf("epoch = %q", got)
	}
}

func TestExpandFormat(t *testing.T) {
	c := testContext(t)
	en := c.Locale("en")
	cases := []struct {
		in, want string
	}{
		{"LT", "h:mm A"},
		{"LLL", "MMMM D, YYYY h:mm A"},
		{"lll", "MMM D, YYYY h:mm A"},
		{"[L] L", "[L] MM/DD/YYYY"},
		{"YYYY", "YYYY"},
	}
	for _, tc := range cases {
		if got := ExpandFormat(tc.in, en); got != tc.want {
			t.Errorf("ExpandFormat(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSerialization(t *testing.T) {
	c := testContext(t)
	i := c.DateUTC(2021, 1, 3, 14, 5, 9, 45)
	cases := []struct {
		name string
		got  string
		want string
	}{
		{"iso", i.ToISOString(false), "2021-02-03T14:05:09.045Z"},
		{"iso keep offset", i.WithUTCOffset(2, false).ToISOString(true), "2021-02-03T16:05:09.045+02:00"},
		{"iso from offset", i.WithUTCOffset(2, false).ToISOString(false), "2021-02-03T14:05:09.045Z"},
		{"iso big year", c.DateUTC(10000, 0, 1).ToISOString(false), "+010000-01-01T00:00:00.000Z"},
		{"string", i.WithLocale("lt").String(), "Wed Feb 03 2021 14:05:09 GMT+0000"},
		{"inspect utc", i.Inspect(), `moment.utc("2021-02-03T14:05:09.045+00:00")`},
		{"inspect local", i.Local(false).Inspect(), `moment("2021-02-03T14:05:09.045")`},
		{"inspect invalid", c.ParseFormat("nope", "YYYY").Inspect(), "moment.invalid(/* nope */)"},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, tc.got, tc.want)
		}
	}

	if got, want := i.ToArray(), [7]int{2021, 1, 3, 14, 5, 9, 45}; got != want {
		t.Errorf("ToArray = %v, want %v", got, want)
	}
	if got, want := i.ToObject(), (Object{2021, 1, 3, 14, 5, 9, 45}); got != want {
		t.Errorf("ToObject = %+v, want %+v", got, want)
	}
}
