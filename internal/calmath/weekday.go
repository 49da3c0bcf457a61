package calmath

// LastWeekdayOfMonth finds the last instance of a given weekday in a specific month and year.
func LastWeekdayOfMonth(year, month, weekday int) int {
	lastDay := DaysInMonth(year, month)
	lastDayWeekday := Weekday(DaysFromCivil(year, month, lastDay))

	// Calculate how many days to subtract from the last day to get the last instance of the given weekday.
	offset := (lastDayWeekday - weekday + 7) % 7
	return lastDay - offset
}

// NthWeekdayOfMonth returns the day of month of the n-th (1-based) given
// weekday in month. If the month has fewer than n such weekdays the last one
// is returned, which makes n=5 mean "last".
func NthWeekdayOfMonth(year, month, n, weekday int) int {
	first := Weekday(DaysFromCivil(year, month, 1))
	day := 1 + (weekday-first+7)%7 + 7*(n-1)
	if day > DaysInMonth(year, month) {
		return LastWeekdayOfMonth(year, month, weekday)
	}
	return day
}
