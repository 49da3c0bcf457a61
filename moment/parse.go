package moment

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/ngrash/go-moment/internal/calmath"
	"github.com/ngrash/go-moment/locale"
)

// Special formats for ParseConfig.Formats.
const (
	// ISO8601 accepts the ISO 8601 forms Parse tries first.
	ISO8601 = "ISO_8601"
	// RFC2822 accepts RFC 2822 date-times.
	RFC2822 = "RFC_2822"
)

// ParseConfig controls Context.Parse.
type ParseConfig struct {
	// Formats to try. Without formats the input is read as ISO 8601, RFC
	// 2822 or an ASP.NET JSON date, falling back to best effort parsing
	// unless Strict is set. With several formats the best match wins.
	Formats []string
	// Locale names the locale for month, weekday, era and meridiem names.
	// Empty means the default locale.
	Locale string
	// Strict rejects input with text or tokens left over.
	Strict bool
	// UTC reads the input as UTC and returns a UTC instant.
	UTC bool
	// KeepOffset displays the result in the offset found in the input.
	KeepOffset bool
}

// Parse reads input according to cfg. Failures yield an invalid instant
// whose ParsingFlags tell what went wrong.
func (c *Context) Parse(input string, cfg ParseConfig) Instant {
	c.init()
	loc := c.Locales.Default()
	if cfg.Locale != "" {
		loc = c.Locales.Choose(cfg.Locale)
	}
	source := &CreationData{Input: input, Locale: loc.Name(), Strict: cfg.Strict, UTC: cfg.UTC}

	if input == "" && cfg.Formats == nil {
		flags := newParsingFlags()
		flags.NullInput = true
		i := c.Invalid(flags)
		i.loc, i.source = loc, source
		return i
	}
	input = loc.Preparse(input)

	var p *parser
	switch len(cfg.Formats) {
	case 0:
		p = newParser(c, loc, input, cfg.Strict, cfg.UTC)
		if cfg.Formats != nil {
			p.flags.InvalidFormat = true
		} else {
			p.fromString()
		}
	case 1:
		p = newParser(c, loc, input, cfg.Strict, cfg.UTC)
		p.fromFormat(cfg.Formats[0])
	default:
		p = c.parseBest(input, loc, cfg)
	}
	source.Format = p.format

	mode := modeLocal
	if cfg.UTC {
		mode = modeUTC
	}
	i := p.instant(mode)
	i.source = source
	if cfg.KeepOffset {
		switch {
		case p.hasTZM:
			i = i.setMode(modeOffset, p.tzm*60, nil, false)
		default:
			if m, ok := offsetFromString(matchOffset, p.input); ok {
				i = i.setMode(modeOffset, m*60, nil, false)
			} else {
				i = i.setMode(modeOffset, 0, nil, true)
			}
		}
	}
	return i
}

// ParseFormat parses input with the given formats in the default locale.
func (c *Context) ParseFormat(input string, formats ...string) Instant {
	return c.Parse(input, ParseConfig{Formats: formatsOrNil(formats)})
}

// ParseStrict is ParseFormat in strict mode.
func (c *Context) ParseStrict(input string, formats ...string) Instant {
	return c.Parse(input, ParseConfig{Formats: formatsOrNil(formats), Strict: true})
}

// ParseUTC is ParseFormat in UTC mode.
func (c *Context) ParseUTC(input string, formats ...string) Instant {
	return c.Parse(input, ParseConfig{Formats: formatsOrNil(formats), UTC: true})
}

// ParseZone parses input and keeps the offset it carries as the display
// offset.
func (c *Context) ParseZone(input string, formats ...string) Instant {
	return c.Parse(input, ParseConfig{Formats: formatsOrNil(formats), KeepOffset: true})
}

func formatsOrNil(formats []string) []string {
	if len(formats) == 0 {
		return nil
	}
	return formats
}

// parseBest tries every format and keeps the valid result with the lowest
// score, or the lowest score overall when none is valid.
func (c *Context) parseBest(input string, loc *locale.Locale, cfg ParseConfig) *parser {
	var best *parser
	bestValid := false
	for _, f := range cfg.Formats {
		p := newParser(c, loc, input, cfg.Strict, cfg.UTC)
		p.fromFormat(f)
		valid := p.valid()
		score := p.flags.CharsLeftOver + 10*len(p.flags.UnusedTokens)
		if p.flags.BigHour {
			score++
		}
		p.flags.Score = score
		switch {
		case best == nil,
			!bestValid && (valid || score < best.flags.Score),
			bestValid && valid && score < best.flags.Score:
			best, bestValid = p, valid
		}
	}
	return best
}

// The parsed date fields, in the order of the Field constants.
const numDateFields = 7

type parser struct {
	ctx    *Context
	loc    *locale.Locale
	input  string
	format string
	strict bool
	utc    bool // as requested, useUTC may be switched on by an offset
	useUTC bool

	a   [numDateFields]int
	set [numDateFields]bool

	week         map[string]int
	dayOfYear    int
	hasDayOfYear bool
	tzm          int
	hasTZM       bool
	meridiem     string
	era          *locale.Era
	nextDay      bool

	ms      int64
	done    bool
	invalid bool
	flags   *ParsingFlags
}

func newParser(c *Context, loc *locale.Locale, input string, strict, utc bool) *parser {
	return &parser{ctx: c, loc: loc, input: input, strict: strict, utc: utc, useUTC: utc, flags: newParsingFlags()}
}

// reset discards everything parsed so far.
func (p *parser) reset() {
	*p = *newParser(p.ctx, p.loc, p.input, p.strict, p.utc)
}

func (p *parser) setField(f Field, v int) {
	p.a[f] = v
	p.set[f] = true
}

func (p *parser) setWeek(key string, v int) {
	if p.week == nil {
		p.week = make(map[string]int)
	}
	p.week[key] = v
}

func (p *parser) valid() bool {
	return !p.invalid && p.done && inRange(p.ms) && p.flags.valid(p.strict)
}

func (p *parser) instant(mode displayMode) Instant {
	i := Instant{ctx: p.ctx, ms: p.ms, mode: mode, loc: p.loc, flags: p.flags, valid: p.valid()}
	if p.nextDay {
		i = i.addDays(1)
	}
	return i
}

func (p *parser) fromFormat(format string) {
	p.format = format
	switch format {
	case ISO8601:
		p.fromISO()
	case RFC2822:
		p.fromRFC2822()
	default:
		p.fromStringAndFormat(format)
	}
}

func (p *parser) fromStringAndFormat(format string) {
	p.flags.Empty = true
	s := p.input
	consumed := 0

	for _, tok := range tokenize(ExpandFormat(format, p.loc)) {
		var parsed string
		matched := false
		if loc := p.regexpFor(tok).FindStringIndex(s); loc != nil {
			parsed, matched = s[loc[0]:loc[1]], true
		}
		if parsed != "" {
			idx := strings.Index(s, parsed)
			if idx > 0 {
				p.flags.UnusedInput = append(p.flags.UnusedInput, s[:idx])
			}
			s = s[idx+len(parsed):]
			consumed += utf8.RuneCountInString(parsed)
		}
		if _, ok := formatTokens[tok]; ok {
			if parsed != "" {
				p.flags.Empty = false
			} else {
				p.flags.UnusedTokens = append(p.flags.UnusedTokens, tok)
			}
			if handler, ok := parseTokens[tok]; ok && matched {
				handler(p, parsed, tok)
			}
		} else if p.strict && parsed == "" {
			p.flags.UnusedTokens = append(p.flags.UnusedTokens, tok)
		}
	}

	p.flags.CharsLeftOver = utf8.RuneCountInString(p.input) - consumed
	if s != "" {
		p.flags.UnusedInput = append(p.flags.UnusedInput, s)
	}
	if p.flags.BigHour && p.set[FieldHour] && p.a[FieldHour] > 0 && p.a[FieldHour] <= 12 {
		p.flags.BigHour = false
	}
	p.flags.ParsedDateParts = make(map[Field]int)
	for f := FieldYear; f <= FieldMillisecond; f++ {
		if p.set[f] {
			p.flags.ParsedDateParts[f] = p.a[f]
		}
	}
	p.flags.Meridiem = p.meridiem
	p.fixMeridiem()
	if p.era != nil {
		if p.set[FieldYear] {
			p.setField(FieldYear, p.era.GregorianYear(p.a[FieldYear]))
		} else {
			p.setField(FieldYear, p.era.SinceYear)
		}
	}
	p.fromArray()
	p.checkOverflow()
}

func (p *parser) fixMeridiem() {
	if p.meridiem == "" || !p.set[FieldHour] {
		return
	}
	hour := p.a[FieldHour]
	if h, ok := p.loc.MeridiemHour(hour, p.meridiem); ok {
		p.a[FieldHour] = h
		return
	}
	isPM := p.loc.IsPM(p.meridiem)
	if isPM && hour < 12 {
		hour += 12
	}
	if !isPM && hour == 12 {
		hour = 0
	}
	p.a[FieldHour] = hour
}

// currentDate returns today's year, month and day in the parse zone.
func (p *parser) currentDate() [3]int {
	now := p.ctx.Clock()
	if p.useUTC {
		now = now.UTC()
	} else {
		now = now.In(p.ctx.Location)
	}
	return [3]int{now.Year(), int(now.Month()) - 1, now.Day()}
}

// fromArray turns the collected fields into an instant: missing leading
// fields come from today, missing trailing fields are zero (day 1).
func (p *parser) fromArray() {
	if p.done {
		return
	}
	now := p.currentDate()
	if p.week != nil && !p.set[FieldDate] && !p.set[FieldMonth] {
		p.dayOfYearFromWeekInfo()
	}
	if p.hasDayOfYear {
		year := now[0]
		if p.set[FieldYear] {
			year = p.a[FieldYear]
		}
		if p.dayOfYear > calmath.DaysInYear(year) || p.dayOfYear == 0 {
			p.flags.overflowDayOfYear = true
		}
		_, m, d := calmath.CivilFromDays(calmath.DaysFromCivil(year, 0, p.dayOfYear))
		p.setField(FieldMonth, m)
		p.setField(FieldDate, d)
	}

	f := FieldYear
	for ; f <= FieldDate && !p.set[f]; f++ {
		p.setField(f, now[f])
	}
	for ; f <= FieldMillisecond; f++ {
		if !p.set[f] {
			v := 0
			if f == FieldDate {
				v = 1
			}
			p.setField(f, v)
		}
	}

	a := p.a
	if a[FieldHour] == 24 && a[FieldMinute] == 0 && a[FieldSecond] == 0 && a[FieldMillisecond] == 0 {
		p.nextDay = true
		a[FieldHour] = 0
	}
	local := calmath.Compose(a[FieldYear], a[FieldMonth], a[FieldDate], a[FieldHour], a[FieldMinute], a[FieldSecond], a[FieldMillisecond])
	ms := local
	if !p.useUTC {
		ms = localToUTC(p.ctx.Location, local)
	}
	expectedWeekday := calmath.Decompose(local).Weekday
	if p.hasTZM {
		ms -= int64(p.tzm) * calmath.MillisPerMinute
	}
	if d, ok := p.week["d"]; ok && d != expectedWeekday {
		p.flags.WeekdayMismatch = true
	}
	p.ms, p.done = ms, true
}

func (p *parser) dayOfYearFromWeekInfo() {
	w := p.week
	pick := func(vals ...func() (int, bool)) int {
		for _, v := range vals {
			if n, ok := v(); ok {
				return n
			}
		}
		return 0
	}
	key := func(k string) func() (int, bool) {
		return func() (int, bool) { n, ok := w[k]; return n, ok }
	}
	year := func() (int, bool) { return p.a[FieldYear], p.set[FieldYear] }
	value := func(n int) func() (int, bool) {
		return func() (int, bool) { return n, true }
	}

	var weekYear, week, weekday, dow, doy int
	weekdayOverflow := false
	_, hasGG := w["GG"]
	_, hasW := w["W"]
	_, hasE := w["E"]
	if hasGG || hasW || hasE {
		dow, doy = 1, 4
		_, curYear := p.ctx.Now().weekOfYear(1, 4)
		weekYear = pick(key("GG"), year, value(curYear))
		week = pick(key("W"), value(1))
		weekday = pick(key("E"), value(1))
		if weekday < 1 || weekday > 7 {
			weekdayOverflow = true
		}
	} else {
		dow, doy = p.loc.Week()
		curWeek, curYear := p.ctx.Now().weekOfYear(dow, doy)
		weekYear = pick(key("gg"), year, value(curYear))
		week = pick(key("w"), value(curWeek))
		if d, ok := w["d"]; ok {
			weekday = d
			weekdayOverflow = d < 0 || d > 6
		} else if e, ok := w["e"]; ok {
			weekday = e + dow
			weekdayOverflow = e < 0 || e > 6
		} else {
			weekday = dow
		}
	}

	switch {
	case week < 1 || week > calmath.WeeksInYear(weekYear, dow, doy):
		p.flags.overflowWeeks = true
	case weekdayOverflow:
		p.flags.overflowWeekday = true
	default:
		y, yd := calmath.DayOfYearFromWeeks(weekYear, week, weekday, dow, doy)
		p.setField(FieldYear, y)
		p.dayOfYear, p.hasDayOfYear = yd, true
	}
}

// checkOverflow records the first field that is out of range.
func (p *parser) checkOverflow() {
	if p.flags.Overflow != notChecked {
		return
	}
	a, set := p.a, p.set
	out := func(f Field, lo, hi int) bool {
		return set[f] && (a[f] < lo || a[f] > hi)
	}
	overflow := NoOverflow
	switch {
	case out(FieldMonth, 0, 11):
		overflow = FieldMonth
	case set[FieldDate] && (a[FieldDate] < 1 ||
		(set[FieldYear] && set[FieldMonth] && a[FieldDate] > calmath.DaysInMonth(a[FieldYear], a[FieldMonth]))):
		overflow = FieldDate
	case out(FieldHour, 0, 24) ||
		(set[FieldHour] && a[FieldHour] == 24 && (a[FieldMinute] != 0 || a[FieldSecond] != 0 || a[FieldMillisecond] != 0)):
		overflow = FieldHour
	case out(FieldMinute, 0, 59):
		overflow = FieldMinute
	case out(FieldSecond, 0, 59):
		overflow = FieldSecond
	case out(FieldMillisecond, 0, 999):
		overflow = FieldMillisecond
	}
	if p.flags.overflowDayOfYear && (overflow < FieldYear || overflow > FieldDate) {
		overflow = FieldDate
	}
	if p.flags.overflowWeeks && overflow == NoOverflow {
		overflow = FieldWeek
	}
	if p.flags.overflowWeekday && overflow == NoOverflow {
		overflow = FieldWeekday
	}
	p.flags.Overflow = overflow
}

// Token regexps.
var (
	match1           = regexp.MustCompile(`\d`)
	match2           = regexp.MustCompile(`\d\d`)
	match3           = regexp.MustCompile(`\d{3}`)
	match4           = regexp.MustCompile(`\d{4}`)
	match6           = regexp.MustCompile(`[+-]?\d{6}`)
	match1to2        = regexp.MustCompile(`\d\d?`)
	match3to4        = regexp.MustCompile(`\d\d\d\d?`)
	match5to6        = regexp.MustCompile(`\d\d\d\d\d\d?`)
	match1to3        = regexp.MustCompile(`\d{1,3}`)
	match1to4        = regexp.MustCompile(`\d{1,4}`)
	match1to6        = regexp.MustCompile(`[+-]?\d{1,6}`)
	matchUnsigned    = regexp.MustCompile(`\d+`)
	matchSigned      = regexp.MustCompile(`[+-]?\d+`)
	matchOffset      = regexp.MustCompile(`(?i)Z|[+-]\d\d:?\d\d`)
	matchShortOffset = regexp.MustCompile(`(?i)Z|[+-]\d\d(?::?\d\d)?`)
	matchTimestamp   = regexp.MustCompile(`[+-]?\d+(\.\d{1,3})?`)

	offsetChunker = regexp.MustCompile(`([\+\-]|\d\d)`)
)

// offsetFromString reads the last offset matched by re in s as minutes
// east of UTC. "Z" is zero.
func offsetFromString(re *regexp.Regexp, s string) (int, bool) {
	matches := re.FindAllString(s, -1)
	if len(matches) == 0 {
		return 0, false
	}
	parts := offsetChunker.FindAllString(matches[len(matches)-1], -1)
	if len(parts) < 2 {
		return 0, true
	}
	minutes := toInt(parts[1]) * 60
	if len(parts) > 2 {
		minutes += toInt(parts[2])
	}
	if parts[0] == "-" {
		return -minutes, true
	}
	return minutes, true
}

type regexpFunc func(strict bool, l *locale.Locale) *regexp.Regexp

var parseRegexps = map[string]regexpFunc{}

// addRegexpToken registers the lenient and, if different, strict regexps
// for tokens.
func addRegexpToken(lenient, strict *regexp.Regexp, tokens ...string) {
	if strict == nil {
		strict = lenient
	}
	for _, tok := range tokens {
		parseRegexps[tok] = func(s bool, _ *locale.Locale) *regexp.Regexp {
			if s {
				return strict
			}
			return lenient
		}
	}
}

var (
	unescapeFormatRegexp = regexp.MustCompile(`\\(\[)|\\(\])|\[([^\]\[]*)\]|\\(.)`)
	literalRegexps       sync.Map // token -> *regexp.Regexp
)

// regexpFor returns the regexp matching tok in the input. Tokens without
// a regexp of their own match themselves literally.
func (p *parser) regexpFor(tok string) *regexp.Regexp {
	if fn, ok := parseRegexps[tok]; ok {
		return fn(p.strict, p.loc)
	}
	if re, ok := literalRegexps.Load(tok); ok {
		return re.(*regexp.Regexp)
	}
	s := strings.Replace(tok, `\`, "", 1)
	s = unescapeFormatRegexp.ReplaceAllStringFunc(s, func(m string) string {
		for _, g := range unescapeFormatRegexp.FindStringSubmatch(m)[1:] {
			if g != "" {
				return g
			}
		}
		return ""
	})
	re, _ := literalRegexps.LoadOrStore(tok, regexp.MustCompile(regexp.QuoteMeta(s)))
	return re.(*regexp.Regexp)
}

type parseFunc func(p *parser, input, token string)

var parseTokens = map[string]parseFunc{}

func addParseToken(fn parseFunc, tokens ...string) {
	for _, tok := range tokens {
		parseTokens[tok] = fn
	}
}

func setsField(f Field) parseFunc {
	return func(p *parser, input, _ string) { p.setField(f, toInt(input)) }
}

// parseTwoDigitYear maps 69-99 to 1969-1999 and 00-68 to 2000-2068.
func parseTwoDigitYear(s string) int {
	n := toInt(s)
	if n > 68 {
		return n + 1900
	}
	return n + 2000
}

var leadingIntRegexp = regexp.MustCompile(`^\s*[+-]?\d+`)

// parseLeadingInt reads the integer at the start of s.
func parseLeadingInt(s string) int {
	return toInt(strings.TrimSpace(leadingIntRegexp.FindString(s)))
}

func eraForm(token string) locale.EraForm {
	switch len(token) {
	case 4:
		return locale.EraName
	case 5:
		return locale.EraNarrow
	}
	return locale.EraAbbr
}

func weekdayForm(token string) locale.WeekdayForm {
	switch token {
	case "dd":
		return locale.WeekdayMin
	case "ddd":
		return locale.WeekdayShort
	}
	return locale.WeekdayLong
}

func init() {
	addRegexpToken(match1to2, nil, "M", "D", "d", "e", "E", "w", "W", "H", "h", "k", "m", "s")
	addRegexpToken(match1to2, match2, "MM", "DD", "ww", "WW", "gg", "GG", "YY", "HH", "hh", "kk", "mm", "ss")
	addRegexpToken(match1to3, nil, "DDD")
	addRegexpToken(match3, nil, "DDDD")
	addRegexpToken(match1to4, match4, "gggg", "GGGG", "YYYY")
	addRegexpToken(match1to6, match6, "ggggg", "GGGGG", "YYYYY", "YYYYYY")
	addRegexpToken(match1, nil, "Q")
	addRegexpToken(matchSigned, nil, "Y", "x")
	addRegexpToken(matchUnsigned, nil, "y", "yy", "yyy", "yyyy", "yo")
	addRegexpToken(match3to4, nil, "hmm", "Hmm")
	addRegexpToken(match5to6, nil, "hmmss", "Hmmss")
	addRegexpToken(match1to3, match1, "S")
	addRegexpToken(match1to3, match2, "SS")
	addRegexpToken(match1to3, match3, "SSS")
	for n := 4; n <= 9; n++ {
		addRegexpToken(matchUnsigned, nil, strings.Repeat("S", n))
	}
	addRegexpToken(matchShortOffset, nil, "Z", "ZZ")
	addRegexpToken(matchTimestamp, nil, "X")

	parseRegexps["MMM"] = func(s bool, l *locale.Locale) *regexp.Regexp { return l.MonthsRegexp(true, s) }
	parseRegexps["MMMM"] = func(s bool, l *locale.Locale) *regexp.Regexp { return l.MonthsRegexp(false, s) }
	parseRegexps["Do"] = func(s bool, l *locale.Locale) *regexp.Regexp { return l.OrdinalRegexp(s) }
	for _, tok := range []string{"dd", "ddd", "dddd"} {
		form := weekdayForm(tok)
		parseRegexps[tok] = func(s bool, l *locale.Locale) *regexp.Regexp { return l.WeekdaysRegexp(form, s) }
	}
	for _, tok := range []string{"N", "NN", "NNN", "NNNN", "NNNNN"} {
		form := eraForm(tok)
		parseRegexps[tok] = func(s bool, l *locale.Locale) *regexp.Regexp { return l.ErasRegexp(form, s) }
	}
	for _, tok := range []string{"a", "A"} {
		parseRegexps[tok] = func(_ bool, l *locale.Locale) *regexp.Regexp { return l.MeridiemRegexp() }
	}

	addParseToken(func(p *parser, input, _ string) { p.setField(FieldMonth, toInt(input)-1) }, "M", "MM")
	addParseToken(func(p *parser, input, tok string) {
		if m, ok := p.loc.ParseMonth(input, tok == "MMM", p.strict); ok {
			p.setField(FieldMonth, m)
		} else {
			p.flags.InvalidMonth = input
		}
	}, "MMM", "MMMM")
	addParseToken(func(p *parser, input, _ string) { p.setField(FieldMonth, (toInt(input)-1)*3) }, "Q")

	addParseToken(setsField(FieldDate), "D", "DD")
	addParseToken(func(p *parser, input, _ string) {
		p.setField(FieldDate, toInt(match1to2.FindString(input)))
	}, "Do")
	addParseToken(func(p *parser, input, _ string) {
		p.dayOfYear, p.hasDayOfYear = toInt(input), true
	}, "DDD", "DDDD")

	addParseToken(setsField(FieldYear), "YYYYY", "YYYYYY", "y", "yy", "yyy", "yyyy")
	addParseToken(func(p *parser, input, _ string) {
		if len(input) == 2 {
			p.setField(FieldYear, parseTwoDigitYear(input))
		} else {
			p.setField(FieldYear, toInt(input))
		}
	}, "YYYY")
	addParseToken(func(p *parser, input, _ string) { p.setField(FieldYear, parseTwoDigitYear(input)) }, "YY")
	addParseToken(func(p *parser, input, _ string) { p.setField(FieldYear, parseLeadingInt(input)) }, "Y", "yo")
	addParseToken(func(p *parser, input, tok string) {
		if e, ok := p.loc.ParseEra(input, eraForm(tok), p.strict); ok {
			p.era = &e
			p.flags.Era = e.Abbr
		} else {
			p.flags.InvalidEra = input
		}
	}, "N", "NN", "NNN", "NNNN", "NNNNN")

	addParseToken(func(p *parser, input, tok string) { p.setWeek(tok[:1], toInt(input)) }, "w", "ww", "W", "WW")
	addParseToken(func(p *parser, input, tok string) { p.setWeek(tok[:2], toInt(input)) }, "gggg", "ggggg", "GGGG", "GGGGG")
	addParseToken(func(p *parser, input, tok string) { p.setWeek(tok, parseTwoDigitYear(input)) }, "gg", "GG")
	addParseToken(func(p *parser, input, tok string) {
		if d, ok := p.loc.ParseWeekday(input, weekdayForm(tok), p.strict); ok {
			p.setWeek("d", d)
		} else {
			p.flags.InvalidWeekday = input
		}
	}, "dd", "ddd", "dddd")
	addParseToken(func(p *parser, input, tok string) { p.setWeek(tok, toInt(input)) }, "d", "e", "E")

	addParseToken(func(p *parser, input, _ string) { p.meridiem = input }, "a", "A")
	addParseToken(setsField(FieldHour), "H", "HH")
	addParseToken(func(p *parser, input, _ string) {
		if h := toInt(input); h != 24 {
			p.setField(FieldHour, h)
		} else {
			p.setField(FieldHour, 0)
		}
	}, "k", "kk")
	addParseToken(func(p *parser, input, _ string) {
		p.setField(FieldHour, toInt(input))
		p.flags.BigHour = true
	}, "h", "hh")
	addParseToken(func(p *parser, input, tok string) {
		pos := len(input) - 2
		if tok == "hmmss" || tok == "Hmmss" {
			pos = len(input) - 4
			p.setField(FieldSecond, toInt(input[len(input)-2:]))
			p.setField(FieldMinute, toInt(input[pos:pos+2]))
		} else {
			p.setField(FieldMinute, toInt(input[pos:]))
		}
		p.setField(FieldHour, toInt(input[:pos]))
		if tok[0] == 'h' {
			p.flags.BigHour = true
		}
	}, "hmm", "hmmss", "Hmm", "Hmmss")
	addParseToken(setsField(FieldMinute), "m", "mm")
	addParseToken(setsField(FieldSecond), "s", "ss")
	addParseToken(func(p *parser, input, _ string) {
		f, _ := strconv.ParseFloat("0."+input, 64)
		p.setField(FieldMillisecond, int(f*1000))
	}, "S", "SS", "SSS", "SSSS", "SSSSS", "SSSSSS", "SSSSSSS", "SSSSSSSS", "SSSSSSSSS")

	addParseToken(func(p *parser, input, _ string) {
		p.useUTC = true
		p.tzm, p.hasTZM = offsetFromString(matchShortOffset, input)
	}, "Z", "ZZ")
	addParseToken(func(p *parser, input, _ string) {
		f, _ := strconv.ParseFloat(input, 64)
		p.ms, p.done = int64(f*1000), true
	}, "X")
	addParseToken(func(p *parser, input, _ string) {
		p.ms, p.done = int64(toInt(input)), true
	}, "x")
}

// fromArray builds an instant from explicit fields.
func (c *Context) fromArray(fields []int, utc bool) Instant {
	p := newParser(c, c.Locales.Default(), "", false, utc)
	for f, v := range fields {
		if f >= numDateFields {
			break
		}
		p.setField(Field(f), v)
	}
	p.fromArray()
	p.checkOverflow()
	mode := modeLocal
	if utc {
		mode = modeUTC
	}
	return p.instant(mode)
}
