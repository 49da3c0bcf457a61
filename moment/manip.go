package moment

import (
	"math"

	"github.com/ngrash/go-moment/internal/calmath"
)

// StartOf returns the first millisecond of the unit containing i, in its
// display zone. Week starts on the locale's first day of week, ISOWeek on
// Monday. Unknown units leave i unchanged.
func (i Instant) StartOf(u Unit) Instant {
	if !i.valid {
		return i
	}
	ms, ok := i.startOf(u, false)
	if !ok {
		return i
	}
	return i.withMillis(ms)
}

// EndOf returns the last millisecond of the unit containing i.
func (i Instant) EndOf(u Unit) Instant {
	if !i.valid {
		return i
	}
	ms, ok := i.startOf(u, true)
	if !ok {
		return i
	}
	return i.withMillis(ms)
}

// startOf computes the start of the unit, or with end the start of the
// next one minus a millisecond.
func (i Instant) startOf(u Unit, end bool) (int64, bool) {
	f := i.fields()
	next := 0
	if end {
		next = 1
	}
	day := func(y, m, d int) int64 {
		ms := i.fromLocal(calmath.Compose(y, m, d, 0, 0, 0, 0))
		if end {
			ms--
		}
		return ms
	}
	clock := func(unitMs int64) int64 {
		local := i.ms + int64(i.offsetSeconds())*1000
		rem := calmath.Mod(local, unitMs)
		if end {
			return i.ms + unitMs - rem - 1
		}
		return i.ms - rem
	}

	switch u {
	case Year:
		return day(f.Year+next, 0, 1), true
	case Quarter:
		return day(f.Year, f.Month-f.Month%3+3*next, 1), true
	case Month:
		return day(f.Year, f.Month+next, 1), true
	case Week:
		return day(f.Year, f.Month, f.Day-i.Weekday()+7*next), true
	case ISOWeek:
		return day(f.Year, f.Month, f.Day-(i.ISOWeekday()-1)+7*next), true
	case Day, Date:
		return day(f.Year, f.Month, f.Day+next), true
	case Hour:
		return clock(calmath.MillisPerHour), true
	case Minute:
		return clock(calmath.MillisPerMinute), true
	case Second:
		return clock(calmath.MillisPerSecond), true
	case Millisecond:
		return i.ms, true
	}
	return 0, false
}

// Add returns i moved forward by d: months first, clamping the day of
// month, then days on the local calendar, then the remaining
// milliseconds. An invalid duration makes the result invalid.
func (i Instant) Add(d Duration) Instant {
	return i.addDuration(d, 1)
}

// Subtract returns i moved back by d.
func (i Instant) Subtract(d Duration) Instant {
	return i.addDuration(d, -1)
}

// AddUnit adds amount of unit u. Fractional days and months are rounded,
// smaller units are exact to the millisecond.
func (i Instant) AddUnit(amount float64, u Unit) Instant {
	return i.Add(DurationOf(map[Unit]float64{u: amount}))
}

// SubtractUnit subtracts amount of unit u.
func (i Instant) SubtractUnit(amount float64, u Unit) Instant {
	return i.Subtract(DurationOf(map[Unit]float64{u: amount}))
}

func (i Instant) addDuration(d Duration, sign int) Instant {
	if !i.valid {
		return i
	}
	if !d.IsValid() {
		i.valid = false
		return i
	}
	months := int(absRound(d.months))
	days := int(absRound(d.days))
	if months != 0 {
		i = i.SetMonth(i.Month() + months*sign)
	}
	if days != 0 {
		i = i.SetDate(i.Date() + days*sign)
	}
	if d.ms != 0 {
		i = i.withMillis(i.ms + int64(math.Round(d.ms))*int64(sign))
	}
	return i
}
