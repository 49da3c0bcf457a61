package moment

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ngrash/go-moment/internal/calmath"
	"github.com/ngrash/go-moment/locale"
)

// Default patterns used by Format("").
const (
	DefaultFormat    = "YYYY-MM-DDTHH:mm:ssZ"
	DefaultFormatUTC = "YYYY-MM-DDTHH:mm:ss[Z]"
)

var (
	formattingTokens      = regexp.MustCompile(`(?s)(\[[^\[]*\])|(\\)?([Hh]mm(ss)?|Mo|MM?M?M?|Do|DDDo|DD?D?D?|ddd?d?|do?|w[o|w]?|W[o|W]?|Qo?|N{1,5}|YYYYYY|YYYYY|YYYY|YY|y{2,4}|yo?|gg(ggg?)?|GG(GGG?)?|e|E|a|A|hh?|HH?|kk?|mm?|ss?|S{1,9}|x|X|zz?|ZZ?|.)`)
	localFormattingTokens = regexp.MustCompile(`(\[[^\[]*\])|(\\)?(LTS|LT|LL?L?L?|l{1,4})`)
	bracketedRegexp       = regexp.MustCompile(`(?s)\[.`)
)

// tokenize splits a pattern into format tokens and literal runs.
func tokenize(pattern string) []string {
	return formattingTokens.FindAllString(pattern, -1)
}

// longDateFormat resolves a long date key. Lowercase keys the locale does
// not define are derived from their uppercase form with shorter names.
func longDateFormat(l *locale.Locale, key string) (string, bool) {
	if f, ok := l.LongDateFormat(key); ok {
		return f, true
	}
	upper := strings.ToUpper(key)
	if upper == key {
		return "", false
	}
	f, ok := l.LongDateFormat(upper)
	if !ok {
		return "", false
	}
	var b strings.Builder
	for _, tok := range tokenize(f) {
		switch tok {
		case "MMMM", "MM", "DD", "dddd":
			tok = tok[1:]
		}
		b.WriteString(tok)
	}
	return b.String(), true
}

// ExpandFormat replaces the long date keys (LT, LTS, L, LL, LLL, LLLL and
// their lowercase forms) in pattern with the locale's patterns. Nested
// keys are expanded up to five times.
func ExpandFormat(pattern string, l *locale.Locale) string {
	replace := func(s string) string {
		if f, ok := longDateFormat(l, s); ok {
			return f
		}
		return s
	}
	for i := 5; i >= 0 && localFormattingTokens.MatchString(pattern); i-- {
		pattern = localFormattingTokens.ReplaceAllStringFunc(pattern, replace)
	}
	return pattern
}

// unescape strips the brackets of a literal run or the escaping
// backslashes of a token.
func unescape(tok string) string {
	if bracketedRegexp.MatchString(tok) {
		tok = strings.TrimPrefix(tok, "[")
		return strings.TrimSuffix(tok, "]")
	}
	return strings.ReplaceAll(tok, `\`, "")
}

// view is an instant broken down once for formatting.
type view struct {
	Instant
	f       calmath.Fields
	pattern string
}

type tokenFunc func(v *view) string

type formatPiece struct {
	fn      tokenFunc
	literal string
}

type compiledFormat []formatPiece

func zeroFill(n, width int, forceSign bool) string {
	s := strconv.Itoa(abs(n))
	if len(s) < width {
		s = strings.Repeat("0", width-len(s)) + s
	}
	switch {
	case n < 0:
		return "-" + s
	case forceSign:
		return "+" + s
	}
	return s
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

var formatTokens = map[string]tokenFunc{}

// addFormatToken registers fn for token, a zero padded variant when padded
// is set and an ordinal variant when ordinal is set.
func addFormatToken(token string, padded string, width int, forceSign bool, ordinal string, fn func(v *view) int) {
	if token != "" {
		formatTokens[token] = func(v *view) string { return strconv.Itoa(fn(v)) }
	}
	if padded != "" {
		formatTokens[padded] = func(v *view) string { return zeroFill(fn(v), width, forceSign) }
	}
	if ordinal != "" {
		formatTokens[ordinal] = func(v *view) string { return v.Locale().Ordinal(fn(v), token) }
	}
}

func init() {
	month := func(v *view) int { return v.f.Month + 1 }
	addFormatToken("M", "MM", 2, false, "Mo", month)
	formatTokens["MMM"] = func(v *view) string { return v.Locale().MonthShort(v.f.Month, v.pattern) }
	formatTokens["MMMM"] = func(v *view) string { return v.Locale().Month(v.f.Month, v.pattern) }

	addFormatToken("D", "DD", 2, false, "Do", func(v *view) int { return v.f.Day })
	addFormatToken("DDD", "DDDD", 3, false, "DDDo", func(v *view) int { return v.f.DayOfYear })

	addFormatToken("d", "", 0, false, "do", func(v *view) int { return v.f.Weekday })
	formatTokens["dd"] = func(v *view) string { return v.Locale().WeekdayMin(v.f.Weekday, v.pattern) }
	formatTokens["ddd"] = func(v *view) string { return v.Locale().WeekdayShort(v.f.Weekday, v.pattern) }
	formatTokens["dddd"] = func(v *view) string { return v.Locale().Weekday(v.f.Weekday, v.pattern) }
	addFormatToken("e", "", 0, false, "", func(v *view) int { return v.Weekday() })
	addFormatToken("E", "", 0, false, "", func(v *view) int { return v.ISOWeekday() })

	addFormatToken("w", "ww", 2, false, "wo", func(v *view) int { return v.Week() })
	addFormatToken("W", "WW", 2, false, "Wo", func(v *view) int { return v.ISOWeek() })
	addFormatToken("Q", "", 0, false, "Qo", func(v *view) int { return v.f.Month/3 + 1 })

	year := func(v *view) int { return v.f.Year }
	formatTokens["Y"] = func(v *view) string {
		if y := v.f.Year; y > 9999 {
			return "+" + strconv.Itoa(y)
		}
		return zeroFill(v.f.Year, 4, false)
	}
	addFormatToken("", "YY", 2, false, "", func(v *view) int { return v.f.Year % 100 })
	addFormatToken("", "YYYY", 4, false, "", year)
	addFormatToken("", "YYYYY", 5, false, "", year)
	addFormatToken("", "YYYYYY", 6, true, "", year)

	weekYear := func(v *view) int { return v.WeekYear() }
	isoWeekYear := func(v *view) int { return v.ISOWeekYear() }
	addFormatToken("", "gg", 2, false, "", func(v *view) int { return v.WeekYear() % 100 })
	addFormatToken("", "gggg", 4, false, "", weekYear)
	addFormatToken("", "ggggg", 5, false, "", weekYear)
	addFormatToken("", "GG", 2, false, "", func(v *view) int { return v.ISOWeekYear() % 100 })
	addFormatToken("", "GGGG", 4, false, "", isoWeekYear)
	addFormatToken("", "GGGGG", 5, false, "", isoWeekYear)

	eraYear := func(v *view) int { return v.EraYear() }
	addFormatToken("", "y", 1, false, "yo", eraYear)
	addFormatToken("", "yy", 2, false, "", eraYear)
	addFormatToken("", "yyy", 3, false, "", eraYear)
	addFormatToken("", "yyyy", 4, false, "", eraYear)
	formatTokens["yo"] = func(v *view) string { return v.Locale().Ordinal(v.EraYear(), "y") }
	for _, tok := range []string{"N", "NN", "NNN"} {
		formatTokens[tok] = func(v *view) string { return v.EraAbbr() }
	}
	formatTokens["NNNN"] = func(v *view) string { return v.EraName() }
	formatTokens["NNNNN"] = func(v *view) string { return v.EraNarrow() }

	formatTokens["a"] = func(v *view) string { return v.Locale().Meridiem(v.f.Hour, v.f.Minute, true) }
	formatTokens["A"] = func(v *view) string { return v.Locale().Meridiem(v.f.Hour, v.f.Minute, false) }

	hour12 := func(v *view) int {
		if h := v.f.Hour % 12; h != 0 {
			return h
		}
		return 12
	}
	addFormatToken("H", "HH", 2, false, "", func(v *view) int { return v.f.Hour })
	addFormatToken("h", "hh", 2, false, "", hour12)
	addFormatToken("k", "kk", 2, false, "", func(v *view) int {
		if v.f.Hour == 0 {
			return 24
		}
		return v.f.Hour
	})
	formatTokens["hmm"] = func(v *view) string {
		return strconv.Itoa(hour12(v)) + zeroFill(v.f.Minute, 2, false)
	}
	formatTokens["hmmss"] = func(v *view) string {
		return strconv.Itoa(hour12(v)) + zeroFill(v.f.Minute, 2, false) + zeroFill(v.f.Second, 2, false)
	}
	formatTokens["Hmm"] = func(v *view) string {
		return strconv.Itoa(v.f.Hour) + zeroFill(v.f.Minute, 2, false)
	}
	formatTokens["Hmmss"] = func(v *view) string {
		return strconv.Itoa(v.f.Hour) + zeroFill(v.f.Minute, 2, false) + zeroFill(v.f.Second, 2, false)
	}

	addFormatToken("m", "mm", 2, false, "", func(v *view) int { return v.f.Minute })
	addFormatToken("s", "ss", 2, false, "", func(v *view) int { return v.f.Second })

	addFormatToken("S", "", 0, false, "", func(v *view) int { return v.f.Millisecond / 100 })
	addFormatToken("", "SS", 2, false, "", func(v *view) int { return v.f.Millisecond / 10 })
	addFormatToken("", "SSS", 3, false, "", func(v *view) int { return v.f.Millisecond })
	for width, scale := 4, 10; width <= 9; width, scale = width+1, scale*10 {
		scale := scale
		addFormatToken("", strings.Repeat("S", width), width, false, "", func(v *view) int {
			return v.f.Millisecond * scale
		})
	}

	formatTokens["z"] = func(v *view) string { return v.ZoneAbbr() }
	formatTokens["zz"] = func(v *view) string { return v.ZoneName() }
	formatTokens["Z"] = func(v *view) string { return formatOffset(v.UTCOffset(), ":") }
	formatTokens["ZZ"] = func(v *view) string { return formatOffset(v.UTCOffset(), "") }

	formatTokens["X"] = func(v *view) string { return strconv.FormatInt(v.Unix(), 10) }
	formatTokens["x"] = func(v *view) string { return strconv.FormatInt(v.ms, 10) }
}

// formatOffset renders minutes east of UTC as "+hh:mm" with sep ":".
func formatOffset(minutes int, sep string) string {
	sign := "+"
	if minutes < 0 {
		minutes = -minutes
		sign = "-"
	}
	return sign + zeroFill(minutes/60, 2, false) + sep + zeroFill(minutes%60, 2, false)
}

func compileFormat(pattern string) compiledFormat {
	tokens := tokenize(pattern)
	out := make(compiledFormat, len(tokens))
	for i, tok := range tokens {
		if fn, ok := formatTokens[tok]; ok {
			out[i].fn = fn
		} else {
			out[i].literal = unescape(tok)
		}
	}
	return out
}

// compiled returns the compiled form of an expanded pattern from the
// context's cache.
func (c *Context) compiled(pattern string) compiledFormat {
	c.init()
	if f, ok := c.formats.Get(pattern); ok {
		return f
	}
	f := compileFormat(pattern)
	c.formats.Add(pattern, f)
	return f
}

// Format renders i with a pattern of tokens such as "YYYY-MM-DD HH:mm".
// Text in square brackets is copied as is. An empty pattern gives
// DefaultFormat, or DefaultFormatUTC in UTC display. Invalid instants
// render as the locale's invalid date text.
func (i Instant) Format(pattern string) string {
	l := i.Locale()
	if !i.valid {
		return l.InvalidDate()
	}
	if pattern == "" {
		pattern = DefaultFormat
		if i.IsUTC() {
			pattern = DefaultFormatUTC
		}
	}
	pattern = ExpandFormat(pattern, l)
	v := &view{Instant: i, f: i.fields(), pattern: pattern}

	var b strings.Builder
	for _, p := range i.context().compiled(pattern) {
		if p.fn != nil {
			b.WriteString(p.fn(v))
		} else {
			b.WriteString(p.literal)
		}
	}
	return l.Postformat(b.String())
}
