package locale

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestParseConfig(t *testing.T) {
	c, err := ParseConfig([]byte(`
parentLocale: en
months: [a, b, c, d, e, f, g, h, i, j, k, l]
weekdays:
  format: [A, B, C, D, E, F, G]
  standalone: [a, b, c, d, e, f, g]
  isFormat: 'dddd HH'
longDateFormat:
  LT: "HH:mm"
  LTS: ~
week:
  dow: 1
eras: null
`))
	if err != nil {
		t.Fatal(err)
	}

	want := &Config{
		ParentLocale:   "en",
		Months:         List("a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"),
		Weekdays:       &Names{Format: []string{"A", "B", "C", "D", "E", "F", "G"}, Standalone: []string{"a", "b", "c", "d", "e", "f", "g"}, IsFormat: "dddd HH"},
		LongDateFormat: map[string]*string{"LT": String("HH:mm"), "LTS": nil},
		Week:           &Week{Dow: intp(1)},
		unset:          map[string]bool{"eras": true},
	}
	if diff := cmp.Diff(want, c, cmp.AllowUnexported(Config{}, Names{}), cmpopts.IgnoreFields(Config{}, "OrdinalFunc")); diff != "" {
		t.Errorf("ParseConfig mismatch (-want +got):\n%s", diff)
	}

	if _, err := ParseConfig([]byte("months: 12")); err == nil {
		t.Error("ParseConfig(months: 12): expected error")
	}
}

func intp(i int) *int { return &i }

func TestMerge(t *testing.T) {
	parent := &Config{
		Months:         List("p"),
		Weekdays:       &Names{Format: []string{"F"}, Standalone: []string{"S"}, IsFormat: "x"},
		LongDateFormat: map[string]*string{"LT": String("h:mm A"), "L": String("MM/DD/YYYY")},
		RelativeTime:   map[string]*string{"s": String("a few seconds"), "past": String("%s ago")},
		RelativeTimeFuncs: map[string]RelativeTimeFunc{
			"m": func(int, bool, string, bool) string { return "func" },
		},
		Week:          WeekRule(0, 6),
		InvalidDate:   String("Invalid date"),
		MeridiemParse: String("[ap]"),
	}
	child := (&Config{
		ParentLocale:   "parent",
		Weekdays:       &Names{Format: []string{"F2"}},
		LongDateFormat: map[string]*string{"LT": String("HH:mm"), "L": nil},
		RelativeTime:   map[string]*string{"m": String("eine Minute")},
		Week:           &Week{Dow: intp(1)},
	}).Unset("meridiemParse")

	got := Merge(parent, child)

	if got.ParentLocale != "parent" {
		t.Errorf("ParentLocale = %q", got.ParentLocale)
	}
	if diff := cmp.Diff(parent.Months, got.Months, cmp.AllowUnexported(Names{})); diff != "" {
		t.Errorf("Months mismatch (-want +got):\n%s", diff)
	}
	wantWeekdays := &Names{Format: []string{"F2"}, Standalone: []string{"S"}, IsFormat: "x"}
	if diff := cmp.Diff(wantWeekdays, got.Weekdays, cmp.AllowUnexported(Names{})); diff != "" {
		t.Errorf("Weekdays mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]string{"LT": "HH:mm"}, flatten(got.LongDateFormat)); diff != "" {
		t.Errorf("LongDateFormat mismatch (-want +got):\n%s", diff)
	}
	wantRel := map[string]string{"s": "a few seconds", "past": "%s ago", "m": "eine Minute"}
	if diff := cmp.Diff(wantRel, flatten(got.RelativeTime)); diff != "" {
		t.Errorf("RelativeTime mismatch (-want +got):\n%s", diff)
	}
	if _, ok := got.RelativeTimeFuncs["m"]; ok {
		t.Error("string phrase did not replace inherited function")
	}
	if *got.Week.Dow != 1 || *got.Week.Doy != 6 {
		t.Errorf("Week = {%d, %d}, want {1, 6}", *got.Week.Dow, *got.Week.Doy)
	}
	if got.MeridiemParse != nil {
		t.Errorf("MeridiemParse = %q, want unset", *got.MeridiemParse)
	}
	if *got.InvalidDate != "Invalid date" {
		t.Errorf("InvalidDate = %q", *got.InvalidDate)
	}

	// The inputs are left alone.
	if *parent.LongDateFormat["LT"] != "h:mm A" || *parent.Week.Dow != 0 || parent.MeridiemParse == nil {
		t.Error("Merge modified the parent config")
	}
	if _, ok := parent.RelativeTimeFuncs["m"]; !ok {
		t.Error("Merge modified the parent functions")
	}
}

func TestMergeListReplacesNames(t *testing.T) {
	parent := &Config{Months: &Names{Format: []string{"f"}, Standalone: []string{"s"}, IsFormat: "x"}}
	got := Merge(parent, &Config{Months: List("l")})
	if diff := cmp.Diff(List("l"), got.Months, cmp.AllowUnexported(Names{})); diff != "" {
		t.Errorf("Months mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeUnsetHooks(t *testing.T) {
	parent := &Config{
		IsPM:         func(string) bool { return true },
		MeridiemHour: func(hour int, _ string) int { return hour },
		Preparse:     func(s string) string { return s },
	}
	got := Merge(parent, (&Config{}).Unset("isPM", "meridiemHour", "preparse"))
	if got.IsPM != nil {
		t.Error("IsPM still set")
	}
	if got.MeridiemHour != nil {
		t.Error("MeridiemHour still set")
	}
	if got.Preparse != nil {
		t.Error("Preparse still set")
	}
	if parent.MeridiemHour == nil {
		t.Error("Merge modified the parent hooks")
	}
}
