// Package tz resolves UTC offsets of IANA time zones from moment-timezone
// style rule tables.
//
// A rule table is a list of segments. Segment i is valid until Untils[i]
// (exclusive, milliseconds since the Unix epoch) and uses Offsets[i] and
// Abbrs[i]. The last segment is unbounded. Offsets are stored the way
// moment-timezone packs them: minutes WEST of UTC, so New York in winter is
// 300. Use UTCOffset for the conventional minutes east.
package tz

import (
	"errors"
	"fmt"
	"math"
)

// Forever is the until value of the last segment of every zone.
const Forever = math.MaxInt64

// Zone is the rule table of a single time zone.
type Zone struct {
	Name       string
	Abbrs      []string
	Untils     []int64
	Offsets    []float64
	Population int64
}

// ParseFlags control how Parse treats local times that fall into a DST gap
// or overlap.
type ParseFlags struct {
	// MoveAmbiguousForward picks the later of two candidate offsets for a
	// local time that occurs twice (fall back).
	MoveAmbiguousForward bool
	// MoveInvalidForward resolves a local time that does not exist (spring
	// forward) with the offset in effect before the transition, which moves
	// the result forward on the wall clock.
	MoveInvalidForward bool
}

// DefaultParseFlags matches moment-timezone's defaults.
var DefaultParseFlags = ParseFlags{MoveAmbiguousForward: false, MoveInvalidForward: true}

// Validate checks the structural invariants of the rule table.
func (z *Zone) Validate() error {
	var errs []error
	n := len(z.Untils)
	if n == 0 {
		errs = append(errs, fmt.Errorf("zone %q: no segments", z.Name))
	}
	if len(z.Abbrs) != n || len(z.Offsets) != n {
		errs = append(errs, fmt.Errorf("zone %q: inconsistent segments: untils = %d, abbrs = %d, offsets = %d", z.Name, n, len(z.Abbrs), len(z.Offsets)))
	}
	for i := 1; i < n; i++ {
		if z.Untils[i] <= z.Untils[i-1] {
			errs = append(errs, fmt.Errorf("zone %q: untils not strictly increasing at %d: %d <= %d", z.Name, i, z.Untils[i], z.Untils[i-1]))
			break
		}
	}
	if n > 0 && z.Untils[n-1] != Forever {
		errs = append(errs, fmt.Errorf("zone %q: last until is %d, want unbounded", z.Name, z.Untils[n-1]))
	}
	return errors.Join(errs...)
}

// Index returns the index of the segment containing the instant ms.
// An instant exactly on a boundary belongs to the segment that starts there.
func (z *Zone) Index(ms int64) int {
	return closest(ms, z.Untils)
}

func closest(num int64, arr []int64) int {
	n := len(arr)
	if n == 0 || num < arr[0] {
		return 0
	}
	if n > 1 && arr[n-1] == Forever && num >= arr[n-2] {
		return n - 1
	}
	if num >= arr[n-1] {
		return n - 1
	}

	lo, hi := 0, n-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if arr[mid] <= num {
			lo = mid
		} else {
			hi = mid
		}
	}
	return hi
}

// Offset returns the raw offset, in minutes west of UTC, in effect at ms.
func (z *Zone) Offset(ms int64) float64 {
	return z.Offsets[z.Index(ms)]
}

// UTCOffset returns the offset in minutes east of UTC in effect at ms.
func (z *Zone) UTCOffset(ms int64) float64 {
	return -z.Offset(ms)
}

// UTCOffsetSeconds returns the offset in whole seconds east of UTC in effect
// at ms. Local mean time offsets are not whole minutes.
func (z *Zone) UTCOffsetSeconds(ms int64) int {
	return int(math.Round(-z.Offset(ms) * 60))
}

// Abbr returns the abbreviation in effect at ms.
func (z *Zone) Abbr(ms int64) string {
	return z.Abbrs[z.Index(ms)]
}

// Parse returns the raw offset (minutes west) that applies to the wall clock
// time local, given as milliseconds since 1970-01-01T00:00 local time. The
// instant is local + offset*60000.
func (z *Zone) Parse(local int64, flags ParseFlags) float64 {
	max := len(z.Untils) - 1
	for i := 0; i < max; i++ {
		offset := z.Offsets[i]
		next := z.Offsets[i+1]

		// Local times around untils[i] are ambiguous when the clock goes
		// back (offset < next) and invalid when it jumps ahead
		// (offset > next). Moving forward means judging the local time
		// against the wall clock after the transition.
		if offset < next && flags.MoveAmbiguousForward {
			offset = next
		} else if offset > next && flags.MoveInvalidForward {
			offset = next
		}

		if float64(local) < float64(z.Untils[i])-offset*60000 {
			return z.Offsets[i]
		}
	}
	return z.Offsets[max]
}

// Instant converts a local wall clock time to the instant it denotes in z.
func (z *Zone) Instant(local int64, flags ParseFlags) int64 {
	return local + int64(math.Round(z.Parse(local, flags)*60000))
}

// Segment is one entry of a zone's rule table.
type Segment struct {
	Until  int64
	Offset float64
	Abbr   string
}

// Segments returns the rule table as a list.
func (z *Zone) Segments() []Segment {
	s := make([]Segment, len(z.Untils))
	for i := range s {
		s[i] = Segment{Until: z.Untils[i], Offset: z.Offsets[i], Abbr: z.Abbrs[i]}
	}
	return s
}

// renamed returns a copy of z that shares its rule table but carries name.
func (z *Zone) renamed(name string) *Zone {
	c := *z
	c.Name = name
	return &c
}
