package calmath

// Week rules are described by two numbers: dow is the first day of the week
// (0 = Sunday) and doy is chosen so that the week containing January
// (7 + dow - doy) is the first week of the year. ISO 8601 weeks use dow=1,
// doy=4: the first week contains January 4th.

// FirstWeekOffset returns the offset, in days, of the first day of week one
// relative to January 1st of year. The result is in [-6, 0] for any dow and
// doy produced by a locale.
func FirstWeekOffset(year, dow, doy int) int {
	// First-week day: which January is always in the first week.
	fwd := 7 + dow - doy
	// First-week day, local weekday: which local weekday is fwd.
	fwdlw := Mod(7+Weekday(DaysFromCivil(year, 0, fwd))-dow, 7)
	return -fwdlw + fwd - 1
}

// WeeksInYear returns the number of weeks in the week-year year.
func WeeksInYear(year, dow, doy int) int {
	offset := FirstWeekOffset(year, dow, doy)
	offsetNext := FirstWeekOffset(year+1, dow, doy)
	return (DaysInYear(year) - offset + offsetNext) / 7
}

// WeekOfYear returns the week number and week-year of the day dayOfYear
// (1-based) of year.
func WeekOfYear(year, dayOfYear, dow, doy int) (week, weekYear int) {
	offset := FirstWeekOffset(year, dow, doy)
	week = FloorDiv(dayOfYear-offset-1, 7) + 1

	switch {
	case week < 1:
		weekYear = year - 1
		week += WeeksInYear(weekYear, dow, doy)
	case week > WeeksInYear(year, dow, doy):
		week -= WeeksInYear(year, dow, doy)
		weekYear = year + 1
	default:
		weekYear = year
	}
	return week, weekYear
}

// DayOfYearFromWeeks converts a (week-year, week, weekday) triple into a
// calendar year and 1-based day of year. weekday is 0 = Sunday and may be
// outside [0, 6].
func DayOfYearFromWeeks(year, week, weekday, dow, doy int) (resYear, resDayOfYear int) {
	localWeekday := Mod(7+weekday-dow, 7)
	offset := FirstWeekOffset(year, dow, doy)
	dayOfYear := 1 + 7*(week-1) + localWeekday + offset

	switch {
	case dayOfYear <= 0:
		resYear = year - 1
		resDayOfYear = DaysInYear(resYear) + dayOfYear
	case dayOfYear > DaysInYear(year):
		resYear = year + 1
		resDayOfYear = dayOfYear - DaysInYear(year)
	default:
		resYear = year
		resDayOfYear = dayOfYear
	}
	return resYear, resDayOfYear
}
