package moment

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// notChecked marks flags whose overflow was not computed yet.
const notChecked Field = -2

// ParsingFlags records what happened while an instant was parsed or built
// from fields. Any of the invalid markers makes the instant invalid.
type ParsingFlags struct {
	// Empty is set when no format token matched the input.
	Empty bool
	// UnusedTokens lists format tokens without matching input.
	UnusedTokens []string
	// UnusedInput lists input that no token consumed.
	UnusedInput []string
	// Overflow is the first field found out of range, NoOverflow if none.
	Overflow Field
	// CharsLeftOver counts the characters of input no token consumed.
	CharsLeftOver int
	NullInput     bool
	// InvalidEra, InvalidMonth and InvalidWeekday hold names the locale
	// did not recognize.
	InvalidEra      string
	InvalidMonth    string
	InvalidWeekday  string
	InvalidFormat   bool
	UserInvalidated bool
	ISO             bool
	RFC2822         bool
	// WeekdayMismatch is set when a parsed weekday contradicts the date.
	WeekdayMismatch bool
	// ParsedDateParts holds the fields read from the input before
	// defaults were applied.
	ParsedDateParts map[Field]int
	// Era is the abbreviation of the parsed era.
	Era      string
	Meridiem string
	// BigHour is set when a 12 hour token read an hour outside 1-12.
	BigHour bool
	// Score rates how well a format matched when several were tried;
	// lower is better.
	Score int

	overflowDayOfYear bool
	overflowWeeks     bool
	overflowWeekday   bool
}

func newParsingFlags() *ParsingFlags {
	return &ParsingFlags{Overflow: notChecked}
}

func (f *ParsingFlags) clone() ParsingFlags {
	c := *f
	c.UnusedTokens = slices.Clone(f.UnusedTokens)
	c.UnusedInput = slices.Clone(f.UnusedInput)
	c.ParsedDateParts = maps.Clone(f.ParsedDateParts)
	return c
}

// valid applies the validity rules to the flags alone.
func (f *ParsingFlags) valid(strict bool) bool {
	ok := f.Overflow < 0 &&
		!f.Empty &&
		f.InvalidEra == "" &&
		f.InvalidMonth == "" &&
		f.InvalidWeekday == "" &&
		!f.WeekdayMismatch &&
		!f.NullInput &&
		!f.InvalidFormat &&
		!f.UserInvalidated &&
		(f.Meridiem == "" || len(f.ParsedDateParts) > 0)
	if strict {
		ok = ok && f.CharsLeftOver == 0 && len(f.UnusedTokens) == 0 && !f.BigHour
	}
	return ok
}
