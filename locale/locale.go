package locale

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"github.com/ngrash/go-moment/internal/calmath"
)

// defaultMonthsInFormat selects the format (genitive) month names when a
// day of month precedes them.
const defaultMonthsInFormat = `D[oD]?(\[[^\[\]]*\]|\s)+MMMM?`

// Locale is an immutable, fully resolved locale. It is safe for concurrent
// use.
type Locale struct {
	name   string
	config *Config

	months, monthsShort                  names
	weekdays, weekdaysShort, weekdaysMin names

	longDateFormat map[string]string
	calendar       map[string]string
	relativeTime   map[string]string
	relativeFuncs  map[string]RelativeTimeFunc

	dow, doy    int
	eras        []Era
	invalidDate string

	ordinal      string
	ordinalFunc  func(int, string) string
	ordinalParse [2]*regexp.Regexp // lenient, strict

	meridiemParse *regexp.Regexp
	meridiem      func(hour, minute int, lower bool) string
	isPM          func(string) bool
	meridiemHour  func(hour int, meridiem string) int
	preparse      func(string) string
	postformat    func(string) string

	monthsRegexp      [2]*regexp.Regexp // lenient, strict
	monthsShortRegexp [2]*regexp.Regexp
	weekdaysRegexp    [3][2]*regexp.Regexp // by WeekdayForm, then lenient, strict
}

type names struct {
	format, standalone []string
	isFormat           *regexp.Regexp
}

// pick returns the names to use for i in the context of pattern.
func (n names) pick(i int, pattern string) string {
	list := n.standalone
	if n.isFormat != nil && n.isFormat.MatchString(pattern) {
		list = n.format
	}
	if i < 0 || i >= len(list) {
		return ""
	}
	return list[i]
}

// all returns the distinct names in both contexts.
func (n names) all() []string {
	if n.isFormat == nil {
		return n.standalone
	}
	return append(append([]string{}, n.format...), n.standalone...)
}

// Era is a resolved era. SinceDay and UntilDay are days since the Unix
// epoch; open ends are math.MinInt64 and math.MaxInt64.
type Era struct {
	SinceDay, UntilDay int64
	SinceYear          int
	Offset             int
	Name, Narrow, Abbr string
}

// Contains reports whether the day (days since the Unix epoch) is in e.
func (e Era) Contains(day int64) bool {
	if e.SinceDay <= e.UntilDay {
		return e.SinceDay <= day && day <= e.UntilDay
	}
	return e.UntilDay <= day && day <= e.SinceDay
}

func (e Era) dir() int {
	if e.SinceDay <= e.UntilDay {
		return 1
	}
	return -1
}

// Year returns the year of e for the Gregorian year.
func (e Era) Year(year int) int {
	return (year-e.SinceYear)*e.dir() + e.Offset
}

// GregorianYear converts a year of e back to the Gregorian calendar.
func (e Era) GregorianYear(year int) int {
	return e.SinceYear + (year-e.Offset)*e.dir()
}

// newLocale resolves a merged config into a Locale.
func newLocale(name string, c *Config) (*Locale, error) {
	var errs []error
	l := &Locale{
		name:           name,
		config:         c,
		longDateFormat: flatten(c.LongDateFormat),
		calendar:       flatten(c.Calendar),
		relativeTime:   flatten(c.RelativeTime),
		relativeFuncs:  c.RelativeTimeFuncs,
		invalidDate:    "Invalid date",
		ordinal:        "%d",
		ordinalFunc:    c.OrdinalFunc,
		meridiem:       c.Meridiem,
		isPM:           c.IsPM,
		meridiemHour:   c.MeridiemHour,
		preparse:       c.Preparse,
		postformat:     c.Postformat,
	}

	var err error
	if l.months, err = resolveNames(c.Months, 12, defaultMonthsInFormat); err != nil {
		errs = append(errs, fmt.Errorf("months: %w", err))
	}
	if l.monthsShort, err = resolveNames(c.MonthsShort, 12, defaultMonthsInFormat); err != nil {
		errs = append(errs, fmt.Errorf("monthsShort: %w", err))
	}
	if l.weekdays, err = resolveNames(c.Weekdays, 7, ""); err != nil {
		errs = append(errs, fmt.Errorf("weekdays: %w", err))
	}
	if l.weekdaysShort, err = resolveNames(c.WeekdaysShort, 7, ""); err != nil {
		errs = append(errs, fmt.Errorf("weekdaysShort: %w", err))
	}
	if l.weekdaysMin, err = resolveNames(c.WeekdaysMin, 7, ""); err != nil {
		errs = append(errs, fmt.Errorf("weekdaysMin: %w", err))
	}

	if c.Week != nil && c.Week.Dow != nil {
		l.dow = *c.Week.Dow
	}
	if c.Week != nil && c.Week.Doy != nil {
		l.doy = *c.Week.Doy
	}
	if l.dow < 0 || l.dow > 6 {
		errs = append(errs, fmt.Errorf("week: dow %d out of range [0, 6]", l.dow))
	}

	for i, ec := range c.Eras {
		era, err := resolveEra(ec)
		if err != nil {
			errs = append(errs, fmt.Errorf("eras[%d]: %w", i, err))
			continue
		}
		l.eras = append(l.eras, era)
	}

	if c.InvalidDate != nil {
		l.invalidDate = *c.InvalidDate
	}
	if c.Ordinal != nil {
		l.ordinal = *c.Ordinal
	}
	ordinalParse := `\d{1,2}`
	if c.DayOfMonthOrdinalParse != nil {
		ordinalParse = *c.DayOfMonthOrdinalParse
	}
	if l.ordinalParse[1], err = regexp.Compile(ordinalParse); err != nil {
		errs = append(errs, fmt.Errorf("dayOfMonthOrdinalParse: %w", err))
	} else {
		l.ordinalParse[0] = regexp.MustCompile(ordinalParse + `|\d{1,2}`)
	}
	meridiemParse := `[ap]\.?m?\.?`
	if c.MeridiemParse != nil {
		meridiemParse = *c.MeridiemParse
	}
	if l.meridiemParse, err = regexp.Compile("(?i:" + meridiemParse + ")"); err != nil {
		errs = append(errs, fmt.Errorf("meridiemParse: %w", err))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("locale %q: %w", name, err)
	}

	l.monthsRegexp = [2]*regexp.Regexp{
		namesRegexp(l.months.all(), l.monthsShort.all()),
		namesRegexp(l.months.all()),
	}
	l.monthsShortRegexp = [2]*regexp.Regexp{
		l.monthsRegexp[0],
		namesRegexp(l.monthsShort.all()),
	}
	lenientWeekdays := namesRegexp(l.weekdays.all(), l.weekdaysShort.all(), l.weekdaysMin.all())
	for form, n := range [...]names{WeekdayMin: l.weekdaysMin, WeekdayShort: l.weekdaysShort, WeekdayLong: l.weekdays} {
		l.weekdaysRegexp[form] = [2]*regexp.Regexp{lenientWeekdays, namesRegexp(n.all())}
	}
	return l, nil
}

func flatten(m map[string]*string) map[string]string {
	res := make(map[string]string, len(m))
	for k, v := range m {
		if v != nil {
			res[k] = *v
		}
	}
	return res
}

func resolveNames(n *Names, count int, defaultIsFormat string) (names, error) {
	if n == nil {
		return names{}, fmt.Errorf("missing")
	}
	res := names{format: n.Format, standalone: n.Standalone}
	if res.standalone == nil {
		res.standalone = res.format
	}
	if res.format == nil {
		res.format = res.standalone
	}
	if len(res.format) != count || len(res.standalone) != count {
		return res, fmt.Errorf("want %d names, got %d format and %d standalone", count, len(res.format), len(res.standalone))
	}
	if n.plain || n.Standalone == nil || n.Format == nil {
		return res, nil
	}
	isFormat := n.IsFormat
	if isFormat == "" {
		isFormat = defaultIsFormat
	}
	if isFormat == "" {
		return res, fmt.Errorf("format and standalone names need isFormat")
	}
	var err error
	res.isFormat, err = regexp.Compile(isFormat)
	return res, err
}

func resolveEra(ec EraConfig) (Era, error) {
	e := Era{Offset: ec.Offset, Name: ec.Name, Narrow: ec.Narrow, Abbr: ec.Abbr}
	var err error
	if e.SinceDay, err = eraDay(ec.Since); err != nil {
		return e, fmt.Errorf("since: %w", err)
	}
	if e.SinceDay == math.MinInt64 || e.SinceDay == math.MaxInt64 {
		return e, fmt.Errorf("since must be a date")
	}
	if e.UntilDay, err = eraDay(ec.Until); err != nil {
		return e, fmt.Errorf("until: %w", err)
	}
	e.SinceYear, _, _ = calmath.CivilFromDays(e.SinceDay)
	return e, nil
}

// eraDay parses YYYY-MM-DD (the year may be signed) or an infinity.
func eraDay(s string) (int64, error) {
	switch s {
	case "Infinity", "+Infinity", "":
		return math.MaxInt64, nil
	case "-Infinity":
		return math.MinInt64, nil
	}
	sign := 1
	if strings.HasPrefix(s, "-") {
		sign, s = -1, s[1:]
	}
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid date %q", s)
	}
	var v [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, fmt.Errorf("invalid date %q: %w", s, err)
		}
		v[i] = n
	}
	return calmath.DaysFromCivil(sign*v[0], v[1]-1, v[2]), nil
}

// namesRegexp matches any of the names at the start of the input, case
// insensitively, preferring longer names.
func namesRegexp(lists ...[]string) *regexp.Regexp {
	seen := map[string]bool{}
	var all []string
	for _, list := range lists {
		for _, n := range list {
			if n != "" && !seen[n] {
				seen[n] = true
				all = append(all, regexp.QuoteMeta(n))
			}
		}
	}
	sort.SliceStable(all, func(i, j int) bool { return len(all[i]) > len(all[j]) })
	return regexp.MustCompile("^(?i:" + strings.Join(all, "|") + ")")
}

// Name returns the name the locale was registered under.
func (l *Locale) Name() string { return l.name }

// Config returns a copy of the merged config the locale was built from.
func (l *Locale) Config() *Config {
	c := *l.config
	return &c
}

// Month returns the name of month (0-11) for use in pattern.
func (l *Locale) Month(month int, pattern string) string { return l.months.pick(month, pattern) }

// MonthShort returns the abbreviated name of month (0-11).
func (l *Locale) MonthShort(month int, pattern string) string {
	return l.monthsShort.pick(month, pattern)
}

// Weekday returns the name of weekday (0 = Sunday) for use in pattern.
func (l *Locale) Weekday(weekday int, pattern string) string {
	return l.weekdays.pick(weekday, pattern)
}

func (l *Locale) WeekdayShort(weekday int, pattern string) string {
	return l.weekdaysShort.pick(weekday, pattern)
}

func (l *Locale) WeekdayMin(weekday int, pattern string) string {
	return l.weekdaysMin.pick(weekday, pattern)
}

// WeekdayForm selects one of the weekday name lists.
type WeekdayForm int

const (
	WeekdayMin WeekdayForm = iota
	WeekdayShort
	WeekdayLong
)

// MonthsRegexp returns a regexp matching month names at the start of the
// input. In strict mode only the long (or, with short set, abbreviated)
// names match; otherwise both do.
func (l *Locale) MonthsRegexp(short, strict bool) *regexp.Regexp {
	if short {
		return l.monthsShortRegexp[b2i(strict)]
	}
	return l.monthsRegexp[b2i(strict)]
}

// WeekdaysRegexp returns a regexp matching weekday names at the start of
// the input.
func (l *Locale) WeekdaysRegexp(form WeekdayForm, strict bool) *regexp.Regexp {
	return l.weekdaysRegexp[form][b2i(strict)]
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

func indexFolded(list []string, s string) int {
	for i, n := range list {
		if fold(n) == s {
			return i
		}
	}
	return -1
}

// ParseMonth returns the month (0-11) named by s. In strict mode s must be
// a long name (or an abbreviated one, with short set); otherwise either
// form is accepted. Comparison ignores case.
func (l *Locale) ParseMonth(s string, short, strict bool) (int, bool) {
	s = fold(s)
	lists := [][]string{l.months.format, l.months.standalone, l.monthsShort.format, l.monthsShort.standalone}
	if strict && short {
		lists = lists[2:]
	} else if strict {
		lists = lists[:2]
	}
	for _, list := range lists {
		if i := indexFolded(list, s); i >= 0 {
			return i, true
		}
	}
	return 0, false
}

// ParseWeekday returns the weekday (0 = Sunday) named by s.
func (l *Locale) ParseWeekday(s string, form WeekdayForm, strict bool) (int, bool) {
	s = fold(s)
	byForm := [...]names{WeekdayMin: l.weekdaysMin, WeekdayShort: l.weekdaysShort, WeekdayLong: l.weekdays}
	forms := []names{byForm[form]}
	if !strict {
		forms = []names{l.weekdays, l.weekdaysShort, l.weekdaysMin}
	}
	for _, n := range forms {
		for _, list := range [][]string{n.format, n.standalone} {
			if i := indexFolded(list, s); i >= 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// LongDateFormat returns the pattern for a long date alias such as "LL".
func (l *Locale) LongDateFormat(key string) (string, bool) {
	f, ok := l.longDateFormat[key]
	return f, ok && f != ""
}

// CalendarFormat returns the pattern for a calendar key such as "sameDay".
func (l *Locale) CalendarFormat(key string) string {
	if f, ok := l.calendar[key]; ok {
		return f
	}
	return l.calendar["sameElse"]
}

// RelativeTime renders the phrase for a unit key (s, ss, m, mm, ...).
func (l *Locale) RelativeTime(n int, withoutSuffix bool, key string, isFuture bool) string {
	if f, ok := l.relativeFuncs[key]; ok {
		return f(n, withoutSuffix, key, isFuture)
	}
	return strings.Replace(l.relativeTime[key], "%d", strconv.Itoa(n), 1)
}

// PastFuture wraps output in the future phrase when diff is positive and
// in the past phrase otherwise.
func (l *Locale) PastFuture(diff float64, output string) string {
	key := "past"
	if diff > 0 {
		key = "future"
	}
	format, ok := l.relativeTime[key]
	if !ok {
		return output
	}
	return strings.Replace(format, "%s", output, 1)
}

// HasRelativeTime reports whether the locale has a phrase for key.
func (l *Locale) HasRelativeTime(key string) bool {
	_, ok := l.relativeTime[key]
	_, okf := l.relativeFuncs[key]
	return ok || okf
}

// Ordinal renders n as an ordinal for the format token (for example "D"
// for "Do").
func (l *Locale) Ordinal(n int, token string) string {
	if l.ordinalFunc != nil {
		return l.ordinalFunc(n, token)
	}
	return strings.Replace(l.ordinal, "%d", strconv.Itoa(n), 1)
}

// OrdinalRegexp matches an ordinal day of month. The lenient form also
// accepts a bare number.
func (l *Locale) OrdinalRegexp(strict bool) *regexp.Regexp { return l.ordinalParse[b2i(strict)] }

// Week returns the first day of week and the day of year rule.
func (l *Locale) Week() (dow, doy int) { return l.dow, l.doy }

// Eras returns the locale's eras.
func (l *Locale) Eras() []Era { return l.eras }

// EraOf returns the era containing the day (days since the Unix epoch).
func (l *Locale) EraOf(day int64) (Era, bool) {
	for _, e := range l.eras {
		if e.Contains(day) {
			return e, true
		}
	}
	return Era{}, false
}

// ParseEra finds the era whose name, abbreviation or narrow name (by form,
// or any of them when not strict) equals s.
func (l *Locale) ParseEra(s string, form EraForm, strict bool) (Era, bool) {
	s = fold(s)
	for _, e := range l.eras {
		candidates := []string{e.Abbr, e.Name, e.Narrow}
		if strict {
			candidates = []string{[...]string{EraAbbr: e.Abbr, EraName: e.Name, EraNarrow: e.Narrow}[form]}
		}
		for _, c := range candidates {
			if c != "" && fold(c) == s {
				return e, true
			}
		}
	}
	return Era{}, false
}

// EraForm selects one of the era name forms.
type EraForm int

const (
	EraAbbr EraForm = iota
	EraName
	EraNarrow
)

// ErasRegexp matches era names at the start of the input.
func (l *Locale) ErasRegexp(form EraForm, strict bool) *regexp.Regexp {
	var list []string
	for _, e := range l.eras {
		if strict {
			list = append(list, [...]string{EraAbbr: e.Abbr, EraName: e.Name, EraNarrow: e.Narrow}[form])
		} else {
			list = append(list, e.Abbr, e.Name, e.Narrow)
		}
	}
	return namesRegexp(list)
}

// InvalidDate is the text rendered for invalid dates.
func (l *Locale) InvalidDate() string { return l.invalidDate }

// Meridiem returns the AM/PM designator for the time of day.
func (l *Locale) Meridiem(hour, minute int, lower bool) string {
	if l.meridiem != nil {
		return l.meridiem(hour, minute, lower)
	}
	switch {
	case hour > 11 && lower:
		return "pm"
	case hour > 11:
		return "PM"
	case lower:
		return "am"
	}
	return "AM"
}

// MeridiemRegexp matches a meridiem designator, case-insensitively.
func (l *Locale) MeridiemRegexp() *regexp.Regexp { return l.meridiemParse }

// IsPM reports whether a parsed meridiem designator means afternoon.
func (l *Locale) IsPM(s string) bool {
	if l.isPM != nil {
		return l.isPM(s)
	}
	return strings.HasPrefix(strings.ToLower(s), "p")
}

// MeridiemHour converts a 12-hour clock hour into 0-23. ok is false when
// the locale has no custom rule and IsPM should be used instead.
func (l *Locale) MeridiemHour(hour int, meridiem string) (h int, ok bool) {
	if l.meridiemHour == nil {
		return hour, false
	}
	return l.meridiemHour(hour, meridiem), true
}

// Preparse is applied to input before parsing.
func (l *Locale) Preparse(s string) string {
	if l.preparse != nil {
		return l.preparse(s)
	}
	return s
}

// Postformat is applied to formatted output.
func (l *Locale) Postformat(s string) string {
	if l.postformat != nil {
		return l.postformat(s)
	}
	return s
}
