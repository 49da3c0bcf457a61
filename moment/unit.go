package moment

import (
	"fmt"
	"math"
	"strings"
)

// Sentinels returned by the getters of an invalid Instant.
const (
	InvalidField       = math.MinInt
	InvalidUnix  int64 = math.MinInt64
)

// Unit names a calendar field or an amount of time.
type Unit int

// Calendar units. Day is the day unit for arithmetic and StartOf; as a
// field it reads the day of week, like Date reads the day of month.
const (
	UnknownUnit Unit = iota
	Year
	Quarter
	Month
	Week
	ISOWeek
	Date
	Day
	Weekday
	ISOWeekday
	DayOfYear
	Hour
	Minute
	Second
	Millisecond
	WeekYear
	ISOWeekYear
)

var unitNames = [...]string{
	UnknownUnit: "",
	Year:        "year",
	Quarter:     "quarter",
	Month:       "month",
	Week:        "week",
	ISOWeek:     "isoWeek",
	Date:        "date",
	Day:         "day",
	Weekday:     "weekday",
	ISOWeekday:  "isoWeekday",
	DayOfYear:   "dayOfYear",
	Hour:        "hour",
	Minute:      "minute",
	Second:      "second",
	Millisecond: "millisecond",
	WeekYear:    "weekYear",
	ISOWeekYear: "isoWeekYear",
}

func (u Unit) String() string {
	if u < 0 || int(u) >= len(unitNames) {
		return fmt.Sprintf("Unit(%d)", int(u))
	}
	return unitNames[u]
}

// unitShorthands are the single token aliases; they are case sensitive.
var unitShorthands = map[string]Unit{
	"y":   Year,
	"Q":   Quarter,
	"M":   Month,
	"w":   Week,
	"W":   ISOWeek,
	"D":   Date,
	"d":   Day,
	"e":   Weekday,
	"E":   ISOWeekday,
	"DDD": DayOfYear,
	"h":   Hour,
	"m":   Minute,
	"s":   Second,
	"ms":  Millisecond,
	"gg":  WeekYear,
	"GG":  ISOWeekYear,
}

var unitAliases = func() map[string]Unit {
	m := make(map[string]Unit)
	for u, name := range unitNames {
		if name == "" {
			continue
		}
		lower := strings.ToLower(name)
		m[lower] = Unit(u)
		m[lower+"s"] = Unit(u)
	}
	return m
}()

// NormalizeUnit resolves a unit name, its plural or its shorthand ("M" is
// month, "m" is minute). Long names are case insensitive.
func NormalizeUnit(name string) (Unit, bool) {
	if u, ok := unitShorthands[name]; ok {
		return u, true
	}
	u, ok := unitAliases[strings.ToLower(name)]
	return u, ok
}

// MustUnit is like NormalizeUnit but panics on unknown names.
func MustUnit(name string) Unit {
	u, ok := NormalizeUnit(name)
	if !ok {
		panic(fmt.Sprintf("moment: unknown unit %q", name))
	}
	return u
}

// unitPriority orders setters when several fields are set at once; lower
// runs first.
var unitPriority = map[Unit]int{
	Year:        1,
	WeekYear:    1,
	ISOWeekYear: 1,
	DayOfYear:   4,
	Week:        5,
	ISOWeek:     5,
	Quarter:     7,
	Month:       8,
	Date:        9,
	Day:         11,
	Weekday:     11,
	ISOWeekday:  11,
	Hour:        13,
	Minute:      14,
	Second:      15,
	Millisecond: 16,
}

// Field identifies the parsed field that overflowed.
type Field int

const (
	FieldYear Field = iota
	FieldMonth
	FieldDate
	FieldHour
	FieldMinute
	FieldSecond
	FieldMillisecond
	FieldWeek
	FieldWeekday

	// NoOverflow is reported by InvalidAt for instants without an
	// out of range field.
	NoOverflow Field = -1
)

func (f Field) String() string {
	switch f {
	case FieldYear:
		return "year"
	case FieldMonth:
		return "month"
	case FieldDate:
		return "date"
	case FieldHour:
		return "hour"
	case FieldMinute:
		return "minute"
	case FieldSecond:
		return "second"
	case FieldMillisecond:
		return "millisecond"
	case FieldWeek:
		return "week"
	case FieldWeekday:
		return "weekday"
	case NoOverflow:
		return "none"
	}
	return fmt.Sprintf("Field(%d)", int(f))
}
