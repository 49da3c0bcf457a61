// Package calmath implements proleptic Gregorian calendar arithmetic on
// millisecond timestamps without depending on time.Location.
//
// Months are zero-based throughout (0 = January) and days are counted from
// the Unix epoch, 1970-01-01.
package calmath

import "golang.org/x/exp/constraints"

const (
	MillisPerSecond = 1000
	MillisPerMinute = 60 * MillisPerSecond
	MillisPerHour   = 60 * MillisPerMinute
	MillisPerDay    = 24 * MillisPerHour
)

// The cycle constants and absoluteZeroYear follow time.go in the Go
// standard library.
const (
	daysPer400Years = 365*400 + 97
	daysPer100Years = 365*100 + 24
	daysPer4Years   = 365*4 + 1

	absoluteZeroYear = -292277022399
)

var daysBeforeMonth = [12]int64{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}

// unixEpochDays is daysSinceAbsoluteZero(1970).
var unixEpochDays = daysSinceAbsoluteZero(1970)

// FloorDiv divides a by b rounding toward negative infinity.
func FloorDiv[T constraints.Integer](a, b T) T {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Mod returns a modulo b with the sign of b.
func Mod[T constraints.Integer](a, b T) T {
	m := a % b
	if m != 0 && ((m < 0) != (b < 0)) {
		m += b
	}
	return m
}

// IsLeapYear reports whether year is a leap year.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInYear returns 366 for leap years and 365 otherwise.
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// DaysInMonth returns the number of days in the given zero-based month.
// Months outside [0, 11] are carried into the year first, so
// DaysInMonth(2023, 13) is the length of February 2024.
func DaysInMonth(year, month int) int {
	m := Mod(month, 12)
	year += (month - m) / 12
	if m == 1 {
		if IsLeapYear(year) {
			return 29
		}
		return 28
	}
	return 31 - ((m % 7) % 2)
}

// daysSinceAbsoluteZero returns the number of days from the absolute epoch
// to the start of year.
// This is basically (year - zeroYear) * 365, but accounting for leap days.
func daysSinceAbsoluteZero(year int) uint64 {
	y := uint64(int64(year) - absoluteZeroYear)

	// Add in days from 400-year cycles.
	n := y / 400
	y -= 400 * n
	d := daysPer400Years * n

	// Add in 100-year cycles.
	n = y / 100
	y -= 100 * n
	d += daysPer100Years * n

	// Add in 4-year cycles.
	n = y / 4
	y -= 4 * n
	d += daysPer4Years * n

	// Add in non-leap years.
	d += 365 * y

	return d
}

// DaysFromCivil returns the number of days between 1970-01-01 and the given
// date. Month and day may be out of range; they roll over into the
// neighbouring months and years the way Date.UTC does.
func DaysFromCivil(year, month, day int) int64 {
	year += FloorDiv(month, 12)
	month = Mod(month, 12)

	d := int64(daysSinceAbsoluteZero(year) - unixEpochDays)
	d += daysBeforeMonth[month]
	if month > 1 && IsLeapYear(year) {
		d++ // +leap day
	}
	return d + int64(day) - 1
}

// CivilFromDays is the inverse of DaysFromCivil for in-range dates.
func CivilFromDays(days int64) (year, month, day int) {
	// Howard Hinnant's days_from_civil inverse, shifted to a March based year.
	z := days + 719468
	era := FloorDiv(z, 146097)
	doe := z - era*146097
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	d := doy - (153*mp+2)/5 + 1
	m := mp + 2
	if mp >= 10 {
		m = mp - 10
	}
	y := yoe + era*400
	if m <= 1 {
		y++
	}
	return int(y), int(m), int(d)
}

// Weekday returns the day of week of the given epoch day, 0 = Sunday.
func Weekday(days int64) int {
	// 1970-01-01 was a Thursday.
	return int(Mod(days+4, 7))
}

// Compose returns the epoch milliseconds of the given wall clock fields
// interpreted as UTC. Every field may overflow.
func Compose(year, month, day, hour, minute, second, millisecond int) int64 {
	days := DaysFromCivil(year, month, 1) + int64(day) - 1
	return days*MillisPerDay +
		int64(hour)*MillisPerHour +
		int64(minute)*MillisPerMinute +
		int64(second)*MillisPerSecond +
		int64(millisecond)
}

// Fields is a broken down timestamp.
type Fields struct {
	Year        int
	Month       int // 0-11
	Day         int // 1-31
	Hour        int
	Minute      int
	Second      int
	Millisecond int
	Weekday     int // 0 = Sunday
	DayOfYear   int // 1-366
}

// Decompose breaks ms, interpreted as UTC, into calendar fields.
func Decompose(ms int64) Fields {
	days := FloorDiv(ms, MillisPerDay)
	rem := ms - days*MillisPerDay

	var f Fields
	f.Year, f.Month, f.Day = CivilFromDays(days)
	f.Hour = int(rem / MillisPerHour)
	f.Minute = int(rem / MillisPerMinute % 60)
	f.Second = int(rem / MillisPerSecond % 60)
	f.Millisecond = int(rem % MillisPerSecond)
	f.Weekday = Weekday(days)
	f.DayOfYear = int(days-DaysFromCivil(f.Year, 0, 1)) + 1
	return f
}

// Compose is the inverse of Decompose. Weekday and DayOfYear are ignored.
func (f Fields) Compose() int64 {
	return Compose(f.Year, f.Month, f.Day, f.Hour, f.Minute, f.Second, f.Millisecond)
}
