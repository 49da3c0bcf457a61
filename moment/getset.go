package moment

import (
	"sort"

	"github.com/ngrash/go-moment/internal/calmath"
	"github.com/ngrash/go-moment/locale"
)

// field reads one calendar field, or InvalidField when i is invalid.
func (i Instant) field(get func(f calmath.Fields) int) int {
	if !i.valid {
		return InvalidField
	}
	return get(i.fields())
}

// Year returns the year in the display zone.
func (i Instant) Year() int { return i.field(func(f calmath.Fields) int { return f.Year }) }

// Month returns the month, 0 for January.
func (i Instant) Month() int { return i.field(func(f calmath.Fields) int { return f.Month }) }

// Date returns the day of month.
func (i Instant) Date() int { return i.field(func(f calmath.Fields) int { return f.Day }) }

// Day returns the day of week, 0 for Sunday.
func (i Instant) Day() int { return i.field(func(f calmath.Fields) int { return f.Weekday }) }

// Hour returns the hour of day.
func (i Instant) Hour() int { return i.field(func(f calmath.Fields) int { return f.Hour }) }

// Minute returns the minute of hour.
func (i Instant) Minute() int { return i.field(func(f calmath.Fields) int { return f.Minute }) }

// Second returns the second of minute.
func (i Instant) Second() int { return i.field(func(f calmath.Fields) int { return f.Second }) }

// Millisecond returns the millisecond of second.
func (i Instant) Millisecond() int {
	return i.field(func(f calmath.Fields) int { return f.Millisecond })
}

// DayOfYear returns the day of year, 1 for January 1st.
func (i Instant) DayOfYear() int {
	return i.field(func(f calmath.Fields) int { return f.DayOfYear })
}

// Quarter returns the quarter of year, 1 to 4.
func (i Instant) Quarter() int {
	return i.field(func(f calmath.Fields) int { return f.Month/3 + 1 })
}

// Weekday returns the day of week relative to the locale's first day of
// week, 0 to 6.
func (i Instant) Weekday() int {
	dow, _ := i.Locale().Week()
	return i.field(func(f calmath.Fields) int { return calmath.Mod(f.Weekday+7-dow, 7) })
}

// ISOWeekday returns the ISO day of week, 1 for Monday to 7 for Sunday.
func (i Instant) ISOWeekday() int {
	return i.field(func(f calmath.Fields) int {
		if f.Weekday != 0 {
			return f.Weekday
		}
		return 7
	})
}

func (i Instant) weekOfYear(dow, doy int) (week, year int) {
	if !i.valid {
		return InvalidField, InvalidField
	}
	f := i.fields()
	return calmath.WeekOfYear(f.Year, f.DayOfYear, dow, doy)
}

// Week returns the locale week of year.
func (i Instant) Week() int {
	w, _ := i.weekOfYear(i.Locale().Week())
	return w
}

// ISOWeek returns the ISO 8601 week of year.
func (i Instant) ISOWeek() int {
	w, _ := i.weekOfYear(1, 4)
	return w
}

// WeekYear returns the year the locale week belongs to.
func (i Instant) WeekYear() int {
	_, y := i.weekOfYear(i.Locale().Week())
	return y
}

// ISOWeekYear returns the year the ISO week belongs to.
func (i Instant) ISOWeekYear() int {
	_, y := i.weekOfYear(1, 4)
	return y
}

// WeeksInYear returns the number of locale weeks in the instant's year.
func (i Instant) WeeksInYear() int {
	dow, doy := i.Locale().Week()
	return i.field(func(f calmath.Fields) int { return calmath.WeeksInYear(f.Year, dow, doy) })
}

// WeeksInWeekYear returns the number of locale weeks in the week year.
func (i Instant) WeeksInWeekYear() int {
	if !i.valid {
		return InvalidField
	}
	dow, doy := i.Locale().Week()
	return calmath.WeeksInYear(i.WeekYear(), dow, doy)
}

// ISOWeeksInYear returns the number of ISO weeks in the instant's year.
func (i Instant) ISOWeeksInYear() int {
	return i.field(func(f calmath.Fields) int { return calmath.WeeksInYear(f.Year, 1, 4) })
}

// ISOWeeksInISOWeekYear returns the number of ISO weeks in the ISO week
// year.
func (i Instant) ISOWeeksInISOWeekYear() int {
	if !i.valid {
		return InvalidField
	}
	return calmath.WeeksInYear(i.ISOWeekYear(), 1, 4)
}

// DaysInMonth returns the length of the instant's month.
func (i Instant) DaysInMonth() int {
	return i.field(func(f calmath.Fields) int { return calmath.DaysInMonth(f.Year, f.Month) })
}

// IsLeapYear reports whether the instant's year is a leap year. It is
// false for invalid instants.
func (i Instant) IsLeapYear() bool { return i.valid && calmath.IsLeapYear(i.Year()) }

// Get returns the value of a calendar field. Unknown units read as 0 and
// every unit of an invalid instant reads as InvalidField.
func (i Instant) Get(u Unit) int {
	if !i.valid {
		return InvalidField
	}
	switch u {
	case Year:
		return i.Year()
	case Quarter:
		return i.Quarter()
	case Month:
		return i.Month()
	case Week:
		return i.Week()
	case ISOWeek:
		return i.ISOWeek()
	case Date:
		return i.Date()
	case Day:
		return i.Day()
	case Weekday:
		return i.Weekday()
	case ISOWeekday:
		return i.ISOWeekday()
	case DayOfYear:
		return i.DayOfYear()
	case Hour:
		return i.Hour()
	case Minute:
		return i.Minute()
	case Second:
		return i.Second()
	case Millisecond:
		return i.Millisecond()
	case WeekYear:
		return i.WeekYear()
	case ISOWeekYear:
		return i.ISOWeekYear()
	}
	return 0
}

// Set returns i with the calendar field u set to v. Unknown units leave i
// unchanged.
func (i Instant) Set(u Unit, v int) Instant {
	switch u {
	case Year:
		return i.SetYear(v)
	case Quarter:
		return i.SetQuarter(v)
	case Month:
		return i.SetMonth(v)
	case Week:
		return i.SetWeek(v)
	case ISOWeek:
		return i.SetISOWeek(v)
	case Date:
		return i.SetDate(v)
	case Day:
		return i.SetDay(v)
	case Weekday:
		return i.SetWeekday(v)
	case ISOWeekday:
		return i.SetISOWeekday(v)
	case DayOfYear:
		return i.SetDayOfYear(v)
	case Hour:
		return i.SetHour(v)
	case Minute:
		return i.SetMinute(v)
	case Second:
		return i.SetSecond(v)
	case Millisecond:
		return i.SetMillisecond(v)
	case WeekYear:
		return i.SetWeekYear(v)
	case ISOWeekYear:
		return i.SetISOWeekYear(v)
	}
	return i
}

// SetFields sets several fields at once, the larger units first.
func (i Instant) SetFields(values map[Unit]int) Instant {
	units := make([]Unit, 0, len(values))
	for u := range values {
		if _, ok := unitPriority[u]; ok {
			units = append(units, u)
		}
	}
	sort.Slice(units, func(a, b int) bool {
		pa, pb := unitPriority[units[a]], unitPriority[units[b]]
		if pa != pb {
			return pa < pb
		}
		return units[a] < units[b]
	})
	for _, u := range units {
		i = i.Set(u, values[u])
	}
	return i
}

// SetYear sets the year. February 29th moves to February 28th in a
// non-leap year.
func (i Instant) SetYear(year int) Instant {
	f := i.fields()
	f.Year = year
	if f.Month == 1 && f.Day == 29 {
		f.Day = calmath.DaysInMonth(year, 1)
	}
	return i.withLocal(f)
}

// SetMonth sets the month (0-11, overflowing into other years). The day
// of month is clamped to the target month's length.
func (i Instant) SetMonth(month int) Instant {
	f := i.fields()
	f.Day = min(f.Day, calmath.DaysInMonth(f.Year, month))
	f.Month = month
	return i.withLocal(f)
}

// SetMonthName sets the month by its name in the instant's locale. An
// unknown name leaves i unchanged.
func (i Instant) SetMonthName(name string) Instant {
	m, ok := i.Locale().ParseMonth(name, false, false)
	if !ok {
		return i
	}
	return i.SetMonth(m)
}

// SetQuarter sets the quarter, keeping the month's position within it.
func (i Instant) SetQuarter(q int) Instant {
	if !i.valid {
		return i
	}
	return i.SetMonth((q-1)*3 + i.Month()%3)
}

// SetDate sets the day of month. Values outside the month roll over.
func (i Instant) SetDate(d int) Instant {
	f := i.fields()
	f.Day = d
	return i.withLocal(f)
}

func (i Instant) addDays(n int) Instant {
	if n == 0 || !i.valid {
		return i
	}
	return i.SetDate(i.Date() + n)
}

// SetDay sets the day of week (0 = Sunday) within the Sunday based week.
// Values outside 0-6 move into other weeks.
func (i Instant) SetDay(d int) Instant {
	return i.addDays(d - i.Day())
}

// SetDayName sets the day of week by its name in the instant's locale.
func (i Instant) SetDayName(name string) Instant {
	d, ok := i.Locale().ParseWeekday(name, locale.WeekdayLong, false)
	if !ok {
		return i
	}
	return i.SetDay(d)
}

// SetWeekday sets the locale day of week.
func (i Instant) SetWeekday(d int) Instant {
	return i.addDays(d - i.Weekday())
}

// SetISOWeekday sets the ISO day of week, 1 for Monday to 7 for Sunday.
func (i Instant) SetISOWeekday(d int) Instant {
	if i.Day()%7 != 0 {
		return i.SetDay(d)
	}
	return i.SetDay(d - 7)
}

// SetDayOfYear sets the day of year.
func (i Instant) SetDayOfYear(d int) Instant {
	return i.addDays(d - i.DayOfYear())
}

// SetHour sets the hour. Values outside 0-23 roll over.
func (i Instant) SetHour(h int) Instant {
	f := i.fields()
	f.Hour = h
	return i.withLocal(f)
}

// SetMinute sets the minute.
func (i Instant) SetMinute(m int) Instant {
	f := i.fields()
	f.Minute = m
	return i.withLocal(f)
}

// SetSecond sets the second.
func (i Instant) SetSecond(s int) Instant {
	f := i.fields()
	f.Second = s
	return i.withLocal(f)
}

// SetMillisecond sets the millisecond.
func (i Instant) SetMillisecond(ms int) Instant {
	f := i.fields()
	f.Millisecond = ms
	return i.withLocal(f)
}

// SetWeek sets the locale week of year, keeping the day of week.
func (i Instant) SetWeek(w int) Instant {
	return i.addDays((w - i.Week()) * 7)
}

// SetISOWeek sets the ISO week of year, keeping the day of week.
func (i Instant) SetISOWeek(w int) Instant {
	return i.addDays((w - i.ISOWeek()) * 7)
}

// SetWeekYear moves to the same locale week and weekday of another week
// year. The week is clamped to the target year's week count.
func (i Instant) SetWeekYear(year int) Instant {
	dow, doy := i.Locale().Week()
	return i.setWeekYear(year, i.Week(), i.Weekday()+dow, dow, doy)
}

// SetISOWeekYear moves to the same ISO week and weekday of another ISO
// week year.
func (i Instant) SetISOWeekYear(year int) Instant {
	return i.setWeekYear(year, i.ISOWeek(), i.ISOWeekday(), 1, 4)
}

func (i Instant) setWeekYear(year, week, weekday, dow, doy int) Instant {
	if !i.valid {
		return i
	}
	if n := calmath.WeeksInYear(year, dow, doy); week > n {
		week = n
	}
	y, yd := calmath.DayOfYearFromWeeks(year, week, weekday, dow, doy)
	days := calmath.DaysFromCivil(y, 0, 1) + int64(yd) - 1
	f := i.fields()
	f.Year, f.Month, f.Day = calmath.CivilFromDays(days)
	return i.withLocal(f)
}
