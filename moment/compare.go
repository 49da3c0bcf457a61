package moment

import (
	"math"

	"github.com/ngrash/go-moment/internal/calmath"
)

func orMillisecond(u Unit) Unit {
	if u == UnknownUnit {
		return Millisecond
	}
	return u
}

// IsBefore reports whether i is before other at the granularity of u:
// with u = Day, whether the whole day of i ends before other.
func (i Instant) IsBefore(other Instant, u Unit) bool {
	if !i.valid || !other.valid {
		return false
	}
	if u = orMillisecond(u); u == Millisecond {
		return i.ms < other.ms
	}
	return i.EndOf(u).ms < other.ms
}

// IsAfter reports whether i is after other at the granularity of u.
func (i Instant) IsAfter(other Instant, u Unit) bool {
	if !i.valid || !other.valid {
		return false
	}
	if u = orMillisecond(u); u == Millisecond {
		return i.ms > other.ms
	}
	return other.ms < i.StartOf(u).ms
}

// IsSame reports whether other falls into the same unit u as i, judged in
// i's display zone.
func (i Instant) IsSame(other Instant, u Unit) bool {
	if !i.valid || !other.valid {
		return false
	}
	if u = orMillisecond(u); u == Millisecond {
		return i.ms == other.ms
	}
	return i.StartOf(u).ms <= other.ms && other.ms <= i.EndOf(u).ms
}

// IsSameOrBefore reports IsSame or IsBefore.
func (i Instant) IsSameOrBefore(other Instant, u Unit) bool {
	return i.IsSame(other, u) || i.IsBefore(other, u)
}

// IsSameOrAfter reports IsSame or IsAfter.
func (i Instant) IsSameOrAfter(other Instant, u Unit) bool {
	return i.IsSame(other, u) || i.IsAfter(other, u)
}

// IsBetween reports whether i lies between from and to. inclusivity is
// one of "()", "[)", "(]" and "[]"; an empty string means "()".
func (i Instant) IsBetween(from, to Instant, u Unit, inclusivity string) bool {
	if len(inclusivity) != 2 {
		inclusivity = "()"
	}
	var afterFrom, beforeTo bool
	if inclusivity[0] == '(' {
		afterFrom = i.IsAfter(from, u)
	} else {
		afterFrom = i.valid && from.valid && !i.IsBefore(from, u)
	}
	if inclusivity[1] == ')' {
		beforeTo = i.IsBefore(to, u)
	} else {
		beforeTo = i.valid && to.valid && !i.IsAfter(to, u)
	}
	return afterFrom && beforeTo
}

// in returns other displayed like i.
func (i Instant) in(other Instant) Instant {
	res := i
	res.ms = other.ms
	res.valid = other.valid
	return res
}

// Diff returns i - other in unit u. Years, quarters and months use calendar
// months; days and weeks discount a change of display offset between the
// two. Unless precise, the result is truncated toward zero. Invalid
// instants give NaN.
func (i Instant) Diff(other Instant, u Unit, precise bool) float64 {
	if !i.valid || !other.valid {
		return math.NaN()
	}
	that := i.in(other)
	zoneDelta := float64(that.offsetSeconds()-i.offsetSeconds()) * 1000
	delta := float64(i.ms - that.ms)

	var out float64
	switch orMillisecond(u) {
	case Year:
		out = monthDiff(i, that) / 12
	case Quarter:
		out = monthDiff(i, that) / 3
	case Month:
		out = monthDiff(i, that)
	case Week, ISOWeek:
		out = (delta - zoneDelta) / (7 * calmath.MillisPerDay)
	case Day, Date:
		out = (delta - zoneDelta) / calmath.MillisPerDay
	case Hour:
		out = delta / calmath.MillisPerHour
	case Minute:
		out = delta / calmath.MillisPerMinute
	case Second:
		out = delta / calmath.MillisPerSecond
	default:
		out = delta
	}
	if precise {
		return out
	}
	return absFloor(out)
}

// monthDiff returns the months from b to a, with the fraction measured
// against the length of the month the difference ends in.
func monthDiff(a, b Instant) float64 {
	if a.Date() < b.Date() {
		return -monthDiff(b, a)
	}
	whole := (b.Year()-a.Year())*12 + b.Month() - a.Month()
	anchor := a.SetMonth(a.Month() + whole)
	var adjust float64
	if b.ms-anchor.ms < 0 {
		anchor2 := a.SetMonth(a.Month() + whole - 1)
		adjust = float64(b.ms-anchor.ms) / float64(anchor.ms-anchor2.ms)
	} else {
		anchor2 := a.SetMonth(a.Month() + whole + 1)
		adjust = float64(b.ms-anchor.ms) / float64(anchor2.ms-anchor.ms)
	}
	res := -(float64(whole) + adjust)
	if res == 0 {
		return 0
	}
	return res
}

func absFloor(f float64) float64 {
	if f < 0 {
		return math.Ceil(f)
	}
	return math.Floor(f)
}

func absCeil(f float64) float64 {
	if f < 0 {
		return math.Floor(f)
	}
	return math.Ceil(f)
}

// absRound rounds half away from zero.
func absRound(f float64) float64 {
	return math.Round(f)
}
