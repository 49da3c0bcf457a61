package moment

import (
	"math"

	"github.com/ngrash/go-moment/locale"
)

// Thresholds are the limits at which Humanize moves to the next larger
// unit. A value is used while the rounded amount is below the limit; SS
// is the number of seconds still called "a few seconds". A zero W disables
// the week buckets.
type Thresholds struct {
	SS, S, M, H, D, W, Mo float64
}

// DefaultThresholds returns the standard limits: 44 seconds, 45 seconds,
// 45 minutes, 22 hours, 26 days, no weeks and 11 months.
func DefaultThresholds() Thresholds {
	return Thresholds{SS: 44, S: 45, M: 45, H: 22, D: 26, W: 0, Mo: 11}
}

// HumanizeOptions tunes Humanize.
type HumanizeOptions struct {
	WithSuffix bool
	// Thresholds default to DefaultThresholds when nil.
	Thresholds *Thresholds
	// Rounding rounds the amounts before they are compared with the
	// thresholds. It defaults to math.Round.
	Rounding func(float64) float64
}

// Humanize describes d in words, such as "a few seconds" or "3 days".
// withSuffix adds the locale's past or future wording.
func (d Duration) Humanize(withSuffix bool) string {
	return d.HumanizeWithOptions(HumanizeOptions{WithSuffix: withSuffix})
}

// HumanizeWith is Humanize with custom thresholds.
func (d Duration) HumanizeWith(withSuffix bool, th Thresholds) string {
	return d.HumanizeWithOptions(HumanizeOptions{WithSuffix: withSuffix, Thresholds: &th})
}

// HumanizeWithOptions is Humanize with every knob exposed.
func (d Duration) HumanizeWithOptions(opts HumanizeOptions) string {
	l := d.Locale()
	if d.invalid {
		return l.InvalidDate()
	}
	th := DefaultThresholds()
	if opts.Thresholds != nil {
		th = *opts.Thresholds
	}
	round := opts.Rounding
	if round == nil {
		round = math.Round
	}
	out := relativeTime(d, !opts.WithSuffix, th, round, l)
	if opts.WithSuffix {
		out = l.PastFuture(d.ValueOf(), out)
	}
	return l.Postformat(out)
}

func relativeTime(d Duration, withoutSuffix bool, th Thresholds, round func(float64) float64, l *locale.Locale) string {
	abs := d.Abs()
	seconds := round(abs.As(Second))
	minutes := round(abs.As(Minute))
	hours := round(abs.As(Hour))
	days := round(abs.As(Day))
	months := round(abs.As(Month))
	weeks := round(abs.As(Week))
	years := round(abs.As(Year))

	key, n := "yy", years
	switch {
	case seconds <= th.SS:
		key, n = "s", seconds
	case seconds < th.S:
		key, n = "ss", seconds
	case minutes <= 1:
		key, n = "m", 1
	case minutes < th.M:
		key, n = "mm", minutes
	case hours <= 1:
		key, n = "h", 1
	case hours < th.H:
		key, n = "hh", hours
	case days <= 1:
		key, n = "d", 1
	case days < th.D:
		key, n = "dd", days
	case th.W != 0 && weeks <= 1:
		key, n = "w", 1
	case th.W != 0 && weeks < th.W:
		key, n = "ww", weeks
	case months <= 1:
		key, n = "M", 1
	case months < th.Mo:
		key, n = "MM", months
	case years <= 1:
		key, n = "y", 1
	}
	if n == 0 {
		n = 1
	}
	return l.RelativeTime(int(n), withoutSuffix, key, d.ValueOf() > 0)
}

// Between returns the duration from a to b: whole calendar months plus
// the remaining milliseconds, measured in a's display zone. Invalid
// instants give an empty duration.
func Between(a, b Instant) Duration {
	if !a.valid || !b.valid {
		return Duration{}
	}
	b = a.in(b)
	var months, ms float64
	if a.IsBefore(b, Millisecond) {
		months, ms = positiveDifference(a, b)
	} else {
		months, ms = positiveDifference(b, a)
		months, ms = -months, -ms
	}
	return DurationOf(map[Unit]float64{Month: months, Millisecond: ms})
}

func positiveDifference(base, other Instant) (months, ms float64) {
	m := other.Month() - base.Month() + (other.Year()-base.Year())*12
	if base.SetMonth(base.Month() + m).IsAfter(other, Millisecond) {
		m--
	}
	return float64(m), float64(other.ms - base.SetMonth(base.Month()+m).ms)
}

// From describes i relative to other, such as "in 3 days" or "a month
// ago". withoutSuffix drops the "in" and "ago" wording.
func (i Instant) From(other Instant, withoutSuffix bool) string {
	if !i.valid || !other.valid {
		return i.Locale().InvalidDate()
	}
	return Between(other, i).WithLocale(i.Locale()).Humanize(!withoutSuffix)
}

// To describes other relative to i.
func (i Instant) To(other Instant, withoutSuffix bool) string {
	if !i.valid || !other.valid {
		return i.Locale().InvalidDate()
	}
	return Between(i, other).WithLocale(i.Locale()).Humanize(!withoutSuffix)
}

// FromNow describes i relative to the current time.
func (i Instant) FromNow(withoutSuffix bool) string {
	return i.From(i.context().Now(), withoutSuffix)
}

// ToNow describes the current time relative to i.
func (i Instant) ToNow(withoutSuffix bool) string {
	return i.To(i.context().Now(), withoutSuffix)
}

// CalendarBucket picks the calendar phrase for the day difference diff
// (i minus the reference day, in days).
func CalendarBucket(diff float64) string {
	switch {
	case diff < -6:
		return "sameElse"
	case diff < -1:
		return "lastWeek"
	case diff < 0:
		return "lastDay"
	case diff < 1:
		return "sameDay"
	case diff < 2:
		return "nextDay"
	case diff < 7:
		return "nextWeek"
	}
	return "sameElse"
}

// Calendar formats i relative to the start of the reference day (today
// when reference is nil) using the locale's calendar formats, such as
// "Tomorrow at 2:30 PM". overrides replaces formats by bucket name.
func (i Instant) Calendar(reference *Instant, overrides map[string]string) string {
	if !i.valid {
		return i.Locale().InvalidDate()
	}
	var now Instant
	if reference != nil {
		now = *reference
	} else {
		now = i.context().Now()
	}
	sod := i.in(now).StartOf(Day)
	bucket := CalendarBucket(i.Diff(sod, Day, true))
	format, ok := overrides[bucket]
	if !ok || format == "" {
		format = i.Locale().CalendarFormat(bucket)
	}
	return i.Format(format)
}
