package moment

import (
	"github.com/ngrash/go-moment/internal/calmath"
	"github.com/ngrash/go-moment/locale"
)

func (i Instant) era() (locale.Era, bool) {
	if !i.valid {
		return locale.Era{}, false
	}
	f := i.fields()
	return i.Locale().EraOf(calmath.DaysFromCivil(f.Year, f.Month, f.Day))
}

// EraName returns the name of the locale era containing i, or "".
func (i Instant) EraName() string {
	e, _ := i.era()
	return e.Name
}

// EraAbbr returns the abbreviated era name.
func (i Instant) EraAbbr() string {
	e, _ := i.era()
	return e.Abbr
}

// EraNarrow returns the narrow era name.
func (i Instant) EraNarrow() string {
	e, _ := i.era()
	return e.Narrow
}

// EraYear returns the year counted within the era. Outside every era it
// is the calendar year.
func (i Instant) EraYear() int {
	if !i.valid {
		return InvalidField
	}
	e, ok := i.era()
	if !ok {
		return i.Year()
	}
	return e.Year(i.Year())
}
