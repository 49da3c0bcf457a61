package moment

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/ngrash/go-moment/internal/calmath"
)

var (
	extendedISORegexp = regexp.MustCompile(`^\s*((?:[+-]\d{6}|\d{4})-(?:\d\d-\d\d|W\d\d-\d|W\d\d|\d\d\d|\d\d))(?:(T| )(\d\d(?::\d\d(?::\d\d(?:[.,]\d+)?)?)?)([+-]\d\d(?::?\d\d)?|\s*Z)?)?$`)
	basicISORegexp    = regexp.MustCompile(`^\s*((?:[+-]\d{6}|\d{4})(?:\d\d\d\d|W\d\d\d|W\d\d|\d\d\d|\d\d|))(?:(T| )(\d\d(?:\d\d(?:\d\d(?:[.,]\d+)?)?)?)([+-]\d\d(?::?\d\d)?|\s*Z)?)?$`)
	isoZoneRegexp     = regexp.MustCompile(`Z|[+-]\d\d(?::?\d\d)?`)
	aspNetDateRegexp  = regexp.MustCompile(`(?i)^/?Date\((-?\d+)`)
)

type isoPattern struct {
	format    string
	re        *regexp.Regexp
	allowTime bool
}

// isoDates are tried in order; the first match wins.
var isoDates = []isoPattern{
	{"YYYYYY-MM-DD", regexp.MustCompile(`[+-]\d{6}-\d\d-\d\d`), true},
	{"YYYY-MM-DD", regexp.MustCompile(`\d{4}-\d\d-\d\d`), true},
	{"GGGG-[W]WW-E", regexp.MustCompile(`\d{4}-W\d\d-\d`), true},
	{"GGGG-[W]WW", regexp.MustCompile(`\d{4}-W\d\d`), false},
	{"YYYY-DDD", regexp.MustCompile(`\d{4}-\d{3}`), true},
	{"YYYY-MM", regexp.MustCompile(`\d{4}-\d\d`), false},
	{"YYYYYYMMDD", regexp.MustCompile(`[+-]\d{10}`), true},
	{"YYYYMMDD", regexp.MustCompile(`\d{8}`), true},
	{"GGGG[W]WWE", regexp.MustCompile(`\d{4}W\d{3}`), true},
	{"GGGG[W]WW", regexp.MustCompile(`\d{4}W\d{2}`), false},
	{"YYYYDDD", regexp.MustCompile(`\d{7}`), true},
	{"YYYYMM", regexp.MustCompile(`\d{6}`), false},
	{"YYYY", regexp.MustCompile(`\d{4}`), false},
}

var isoTimes = []isoPattern{
	{format: "HH:mm:ss.SSSS", re: regexp.MustCompile(`\d\d:\d\d:\d\d\.\d+`)},
	{format: "HH:mm:ss,SSSS", re: regexp.MustCompile(`\d\d:\d\d:\d\d,\d+`)},
	{format: "HH:mm:ss", re: regexp.MustCompile(`\d\d:\d\d:\d\d`)},
	{format: "HH:mm", re: regexp.MustCompile(`\d\d:\d\d`)},
	{format: "HHmmss.SSSS", re: regexp.MustCompile(`\d\d\d\d\d\d\.\d+`)},
	{format: "HHmmss,SSSS", re: regexp.MustCompile(`\d\d\d\d\d\d,\d+`)},
	{format: "HHmmss", re: regexp.MustCompile(`\d\d\d\d\d\d`)},
	{format: "HHmm", re: regexp.MustCompile(`\d\d\d\d`)},
	{format: "HH", re: regexp.MustCompile(`\d\d`)},
}

// fromString reads input without a format: an ASP.NET JSON date, ISO 8601
// or RFC 2822, and as a last resort whatever dateparse understands.
func (p *parser) fromString() {
	if m := aspNetDateRegexp.FindStringSubmatch(p.input); m != nil {
		ms, err := strconv.ParseInt(m[1], 10, 64)
		p.ms, p.done = ms, true
		p.invalid = err != nil
		return
	}
	for _, try := range []func(){p.fromISO, p.fromRFC2822} {
		try()
		if !p.invalid || p.flags.WeekdayMismatch {
			return
		}
		p.reset()
	}
	if p.strict {
		p.invalid = true
		return
	}
	p.fromFallback()
}

// fromISO picks the ISO 8601 date and time layouts that match the input
// and parses it with the resulting format.
func (p *parser) fromISO() {
	m := extendedISORegexp.FindStringSubmatch(p.input)
	if m == nil {
		m = basicISORegexp.FindStringSubmatch(p.input)
	}
	if m == nil {
		p.invalid = true
		return
	}
	p.flags.ISO = true

	var date *isoPattern
	for i := range isoDates {
		if isoDates[i].re.MatchString(m[1]) {
			date = &isoDates[i]
			break
		}
	}
	if date == nil {
		p.invalid = true
		return
	}
	format := date.format
	if m[3] != "" {
		if !date.allowTime {
			p.invalid = true
			return
		}
		sep := m[2]
		if sep == "" {
			sep = " "
		}
		found := false
		for _, t := range isoTimes {
			if t.re.MatchString(m[3]) {
				format += sep + t.format
				found = true
				break
			}
		}
		if !found {
			p.invalid = true
			return
		}
	}
	if m[4] != "" {
		if !isoZoneRegexp.MatchString(m[4]) {
			p.invalid = true
			return
		}
		format += "Z"
	}
	if p.format == "" {
		p.format = format
	}
	p.fromStringAndFormat(format)
}

var (
	rfc2822Regexp = regexp.MustCompile(`^(?:(Mon|Tue|Wed|Thu|Fri|Sat|Sun),?\s)?(\d{1,2})\s(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s(\d{2,4})\s(\d\d):(\d\d)(?::(\d\d))?\s(?:(UT|GMT|[ECMP][SD]T)|([Zz])|([+-]\d{4}))$`)

	rfc2822Comments = regexp.MustCompile(`\([^()]*\)|[\n\t]`)
	rfc2822Spaces   = regexp.MustCompile(`\s\s+`)

	rfc2822Months   = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	rfc2822Weekdays = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

	// obsoleteOffsets are the named zones of RFC 2822 section 4.3, in
	// minutes east of UTC.
	obsoleteOffsets = map[string]int{
		"UT":  0,
		"GMT": 0,
		"EDT": -4 * 60,
		"EST": -5 * 60,
		"CDT": -5 * 60,
		"CST": -6 * 60,
		"MDT": -6 * 60,
		"MST": -7 * 60,
		"PDT": -7 * 60,
		"PST": -8 * 60,
	}
)

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}

// untruncateYear maps two digit years to 2000-2049 or 1950-1999 and three
// digit years to 1900 onwards.
func untruncateYear(s string) int {
	year := toInt(s)
	switch {
	case year <= 49:
		return 2000 + year
	case year <= 999:
		return 1900 + year
	}
	return year
}

// fromRFC2822 parses dates like "Tue, 01 Nov 2016 01:23:45 +0000". Comments
// and folding whitespace are removed first.
func (p *parser) fromRFC2822() {
	s := rfc2822Comments.ReplaceAllString(p.input, " ")
	s = strings.TrimSpace(rfc2822Spaces.ReplaceAllString(s, " "))
	m := rfc2822Regexp.FindStringSubmatch(s)
	if m == nil {
		p.invalid = true
		return
	}
	p.setField(FieldYear, untruncateYear(m[4]))
	p.setField(FieldMonth, indexOf(rfc2822Months, m[3]))
	p.setField(FieldDate, toInt(m[2]))
	p.setField(FieldHour, toInt(m[5]))
	p.setField(FieldMinute, toInt(m[6]))
	p.setField(FieldSecond, toInt(m[7]))
	p.setField(FieldMillisecond, 0)

	if m[1] != "" {
		days := calmath.DaysFromCivil(p.a[FieldYear], p.a[FieldMonth], p.a[FieldDate])
		if indexOf(rfc2822Weekdays, m[1]) != calmath.Weekday(days) {
			p.flags.WeekdayMismatch = true
			p.invalid = true
			return
		}
	}

	switch {
	case m[8] != "":
		p.tzm = obsoleteOffsets[m[8]]
	case m[9] != "":
		p.tzm = 0
	default:
		hm := toInt(m[10])
		p.tzm = hm/100*60 + hm%100
	}
	p.hasTZM = true
	p.useUTC = true
	p.flags.RFC2822 = true
	if p.format == "" {
		p.format = RFC2822
	}
	p.fromArray()
	p.checkOverflow()
}

// fromFallback hands input no known format matched to dateparse. This is
// deprecated and logged once per context.
func (p *parser) fromFallback() {
	p.ctx.deprecate("Parse", "input is not in a recognized ISO 8601 or RFC 2822 format, falling back to best effort parsing")
	loc := p.ctx.Location
	if p.useUTC {
		loc = time.UTC
	}
	t, err := dateparse.ParseIn(p.input, loc)
	if err != nil {
		p.ctx.Logger.Debug("parse failed", "input", p.input, "err", err)
		p.invalid = true
		return
	}
	p.ms, p.done = t.UnixMilli(), true
}
