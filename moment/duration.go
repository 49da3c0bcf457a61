package moment

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/ngrash/go-moment/locale"
)

// Duration is a length of time kept as three independent components:
// milliseconds, days and months. Days and months have no fixed length in
// milliseconds, so they are only converted when asked to (As) and when
// the components have mixed signs. The zero Duration is valid and empty.
type Duration struct {
	ms, days, months float64
	invalid          bool
	loc              *locale.Locale

	// Bubbled components.
	data durationData
}

type durationData struct {
	milliseconds, seconds, minutes, hours, days, months, years float64
}

// The days in 400 years (146097) over the months in 400 years (4800).
func daysToMonths(days float64) float64   { return days * 4800 / 146097 }
func monthsToDays(months float64) float64 { return months * 146097 / 4800 }

// durationOrder lists the units a duration accepts, largest first.
var durationOrder = []Unit{Year, Quarter, Month, Week, Day, Hour, Minute, Second, Millisecond}

// DurationOf builds a duration from unit amounts. Week and ISOWeek both
// mean weeks, Date and Day both mean days. Only the smallest given unit
// may have a fraction; other input makes the duration invalid.
func DurationOf(values map[Unit]float64) Duration {
	get := func(units ...Unit) float64 {
		for _, u := range units {
			if v, ok := values[u]; ok {
				return v
			}
		}
		return 0
	}
	d := Duration{
		ms:     get(Millisecond) + get(Second)*1e3 + get(Minute)*6e4 + get(Hour)*36e5,
		days:   get(Day, Date) + get(Week, ISOWeek)*7,
		months: get(Month) + get(Quarter)*3 + get(Year)*12,
	}
	d.invalid = !durationValuesValid(values)
	d.bubble()
	return d
}

func durationValuesValid(values map[Unit]float64) bool {
	for u, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
		switch u {
		case Year, Quarter, Month, Week, ISOWeek, Day, Date, Hour, Minute, Second, Millisecond:
		default:
			return false
		}
	}
	fraction := false
	for _, u := range durationOrder {
		v := values[u]
		switch u {
		case Week:
			v += values[ISOWeek]
		case Day:
			v += values[Date]
		}
		if v == 0 {
			continue
		}
		if fraction {
			return false
		}
		if v != math.Trunc(v) {
			fraction = true
		}
	}
	return true
}

// NewDuration returns a duration of ms milliseconds.
func NewDuration(ms float64) Duration {
	return DurationOf(map[Unit]float64{Millisecond: ms})
}

// InvalidDuration returns an invalid duration.
func InvalidDuration() Duration {
	return Duration{invalid: true}
}

// bubble spreads the components into the calendar fields. Components of
// mixed sign are first collapsed into milliseconds.
func (d *Duration) bubble() {
	ms, days, months := d.ms, d.days, d.months
	if !((ms >= 0 && days >= 0 && months >= 0) || (ms <= 0 && days <= 0 && months <= 0)) {
		ms += absCeil(monthsToDays(months)+days) * 864e5
		days, months = 0, 0
	}
	var data durationData
	data.milliseconds = math.Mod(ms, 1000)
	seconds := absFloor(ms / 1000)
	data.seconds = math.Mod(seconds, 60)
	minutes := absFloor(seconds / 60)
	data.minutes = math.Mod(minutes, 60)
	hours := absFloor(minutes / 60)
	data.hours = math.Mod(hours, 24)
	days += absFloor(hours / 24)

	monthsFromDays := absFloor(daysToMonths(days))
	months += monthsFromDays
	days -= absCeil(monthsToDays(monthsFromDays))

	data.days = days
	data.years = absFloor(months / 12)
	data.months = math.Mod(months, 12)
	d.data = data
}

// IsValid reports whether d was built from acceptable input.
func (d Duration) IsValid() bool { return !d.invalid }

// Clone returns d.
func (d Duration) Clone() Duration { return d }

func (d Duration) field(v float64) float64 {
	if d.invalid {
		return math.NaN()
	}
	return v
}

// Milliseconds returns the millisecond component, 0 to 999.
func (d Duration) Milliseconds() float64 { return d.field(d.data.milliseconds) }

// Seconds returns the seconds component, 0 to 59.
func (d Duration) Seconds() float64 { return d.field(d.data.seconds) }

// Minutes returns the minutes component, 0 to 59.
func (d Duration) Minutes() float64 { return d.field(d.data.minutes) }

// Hours returns the hours component, 0 to 23.
func (d Duration) Hours() float64 { return d.field(d.data.hours) }

// Days returns the days component.
func (d Duration) Days() float64 { return d.field(d.data.days) }

// Weeks returns the whole weeks in the days component.
func (d Duration) Weeks() float64 { return absFloor(d.Days() / 7) }

// Months returns the months component, 0 to 11.
func (d Duration) Months() float64 { return d.field(d.data.months) }

// Years returns the years component.
func (d Duration) Years() float64 { return d.field(d.data.years) }

// Get returns the bubbled component for u.
func (d Duration) Get(u Unit) float64 {
	switch u {
	case Millisecond:
		return d.Milliseconds()
	case Second:
		return d.Seconds()
	case Minute:
		return d.Minutes()
	case Hour:
		return d.Hours()
	case Day, Date:
		return d.Days()
	case Week, ISOWeek:
		return d.Weeks()
	case Month:
		return d.Months()
	case Quarter:
		return absFloor(d.Months() / 3)
	case Year:
		return d.Years()
	}
	return math.NaN()
}

// As returns the whole duration in u. Converting between the day and month
// components uses the 400 year average month length.
func (d Duration) As(u Unit) float64 {
	if d.invalid {
		return math.NaN()
	}
	switch u {
	case Month, Quarter, Year:
		days := d.days + d.ms/864e5
		months := d.months + daysToMonths(days)
		switch u {
		case Month:
			return months
		case Quarter:
			return months / 3
		}
		return months / 12
	}
	days := d.days + math.Round(monthsToDays(d.months))
	switch u {
	case Week, ISOWeek:
		return days/7 + d.ms/6048e5
	case Day, Date:
		return days + d.ms/864e5
	case Hour:
		return days*24 + d.ms/36e5
	case Minute:
		return days*1440 + d.ms/6e4
	case Second:
		return days*86400 + d.ms/1000
	case Millisecond:
		return math.Floor(days*864e5) + d.ms
	}
	return math.NaN()
}

func (d Duration) AsMilliseconds() float64 { return d.As(Millisecond) }
func (d Duration) AsSeconds() float64      { return d.As(Second) }
func (d Duration) AsMinutes() float64      { return d.As(Minute) }
func (d Duration) AsHours() float64        { return d.As(Hour) }
func (d Duration) AsDays() float64         { return d.As(Day) }
func (d Duration) AsWeeks() float64        { return d.As(Week) }
func (d Duration) AsMonths() float64       { return d.As(Month) }
func (d Duration) AsQuarters() float64     { return d.As(Quarter) }
func (d Duration) AsYears() float64        { return d.As(Year) }

// ValueOf approximates the duration in milliseconds with 30 day months and
// 365 day years.
func (d Duration) ValueOf() float64 {
	if d.invalid {
		return math.NaN()
	}
	return d.ms + d.days*864e5 + math.Mod(d.months, 12)*2592e6 + math.Trunc(d.months/12)*31536e6
}

// Add returns the component-wise sum of d and other.
func (d Duration) Add(other Duration) Duration {
	return d.addDuration(other, 1)
}

// Subtract returns the component-wise difference of d and other.
func (d Duration) Subtract(other Duration) Duration {
	return d.addDuration(other, -1)
}

func (d Duration) addDuration(other Duration, sign float64) Duration {
	d.ms += sign * other.ms
	d.days += sign * other.days
	d.months += sign * other.months
	d.invalid = d.invalid || other.invalid
	d.bubble()
	return d
}

// Abs returns d with every component made positive.
func (d Duration) Abs() Duration {
	d.ms, d.days, d.months = math.Abs(d.ms), math.Abs(d.days), math.Abs(d.months)
	d.data = durationData{
		milliseconds: math.Abs(d.data.milliseconds),
		seconds:      math.Abs(d.data.seconds),
		minutes:      math.Abs(d.data.minutes),
		hours:        math.Abs(d.data.hours),
		days:         math.Abs(d.data.days),
		months:       math.Abs(d.data.months),
		years:        math.Abs(d.data.years),
	}
	return d
}

// Negate returns -d.
func (d Duration) Negate() Duration {
	return Duration{loc: d.loc, invalid: d.invalid}.Subtract(d)
}

// Locale returns the locale used by Humanize.
func (d Duration) Locale() *locale.Locale {
	if d.loc == nil {
		return background.Locale()
	}
	return d.loc
}

// WithLocale returns d with l as its locale.
func (d Duration) WithLocale(l *locale.Locale) Duration {
	d.loc = l
	return d
}

func sign(f float64) int {
	switch {
	case f > 0:
		return 1
	case f < 0:
		return -1
	}
	return 0
}

// ToISOString renders d as an ISO 8601 duration such as "P1Y2M3DT4H5M6.5S".
// Components whose sign differs from the total carry their own "-". The
// empty duration is "P0D".
func (d Duration) ToISOString() string {
	if d.invalid {
		return d.Locale().InvalidDate()
	}
	total := d.AsSeconds()
	if total == 0 {
		return "P0D"
	}
	seconds := math.Abs(d.ms) / 1000
	days := math.Abs(d.days)
	months := math.Abs(d.months)

	minutes := absFloor(seconds / 60)
	hours := absFloor(minutes / 60)
	seconds = math.Mod(seconds, 60)
	minutes = math.Mod(minutes, 60)
	years := absFloor(months / 12)
	months = math.Mod(months, 12)

	signFor := func(component float64) string {
		if sign(component) != sign(total) {
			return "-"
		}
		return ""
	}
	num := func(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

	var b strings.Builder
	if total < 0 {
		b.WriteByte('-')
	}
	b.WriteByte('P')
	ym := signFor(d.months)
	if years != 0 {
		b.WriteString(ym + num(years) + "Y")
	}
	if months != 0 {
		b.WriteString(ym + num(months) + "M")
	}
	if days != 0 {
		b.WriteString(signFor(d.days) + num(days) + "D")
	}
	if hours != 0 || minutes != 0 || seconds != 0 {
		b.WriteByte('T')
	}
	hms := signFor(d.ms)
	if hours != 0 {
		b.WriteString(hms + num(hours) + "H")
	}
	if minutes != 0 {
		b.WriteString(hms + num(minutes) + "M")
	}
	if seconds != 0 {
		s := strconv.FormatFloat(seconds, 'f', 3, 64)
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
		b.WriteString(hms + s + "S")
	}
	return b.String()
}

// String returns ToISOString.
func (d Duration) String() string { return d.ToISOString() }

// MarshalJSON encodes d as its ISO 8601 string.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.ToISOString())
}

// UnmarshalJSON accepts an ISO 8601 or ASP.NET style string or a number
// of milliseconds.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var ms float64
	if err := json.Unmarshal(b, &ms); err == nil {
		*d = NewDuration(ms)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*d = ParseDuration(s)
	return nil
}

var (
	aspNetDurationRegexp = regexp.MustCompile(`^(-|\+)?(?:(\d*)[. ])?(\d+):(\d+)(?::(\d+)(\.\d*)?)?$`)
	isoDurationRegexp    = regexp.MustCompile(`^(-|\+)?P(?:([-+]?[0-9,.]*)Y)?(?:([-+]?[0-9,.]*)M)?(?:([-+]?[0-9,.]*)W)?(?:([-+]?[0-9,.]*)D)?(?:T(?:([-+]?[0-9,.]*)H)?(?:([-+]?[0-9,.]*)M)?(?:([-+]?[0-9,.]*)S)?)?$`)
)

// ParseDuration reads a number of milliseconds, an ASP.NET style
// "[-][d.]hh:mm[:ss[.fff]]" span or an ISO 8601 duration. Other input
// gives an empty duration.
func ParseDuration(s string) Duration {
	if ms, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		return NewDuration(ms)
	}
	if m := aspNetDurationRegexp.FindStringSubmatch(s); m != nil {
		sign := 1.0
		if m[1] == "-" {
			sign = -1
		}
		frac, _ := strconv.ParseFloat("0"+m[6], 64)
		return DurationOf(map[Unit]float64{
			Day:         float64(toInt(m[2])) * sign,
			Hour:        float64(toInt(m[3])) * sign,
			Minute:      float64(toInt(m[4])) * sign,
			Second:      float64(toInt(m[5])) * sign,
			Millisecond: absRound(frac*1000) * sign,
		})
	}
	if m := isoDurationRegexp.FindStringSubmatch(s); m != nil {
		sign := 1.0
		if m[1] == "-" {
			sign = -1
		}
		return DurationOf(map[Unit]float64{
			Year:   parseISOComponent(m[2], sign),
			Month:  parseISOComponent(m[3], sign),
			Week:   parseISOComponent(m[4], sign),
			Day:    parseISOComponent(m[5], sign),
			Hour:   parseISOComponent(m[6], sign),
			Minute: parseISOComponent(m[7], sign),
			Second: parseISOComponent(m[8], sign),
		})
	}
	return Duration{}
}

func parseISOComponent(s string, sign float64) float64 {
	f, err := strconv.ParseFloat(leadingFloat(strings.Replace(s, ",", ".", 1)), 64)
	if err != nil {
		return 0
	}
	return f * sign
}

var leadingFloatRegexp = regexp.MustCompile(`^[-+]?(\d+\.?\d*|\.\d+)`)

// leadingFloat returns the longest prefix of s that reads as a decimal
// number.
func leadingFloat(s string) string {
	return leadingFloatRegexp.FindString(s)
}

// toInt parses a decimal integer, returning 0 for empty or bad input.
func toInt(s string) int {
	n, err := strconv.Atoi(strings.TrimPrefix(s, "+"))
	if err != nil {
		return 0
	}
	return n
}
