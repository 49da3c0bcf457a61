package tz

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/ngrash/go-moment/internal/calmath"
)

// Environment describes the host's local time rules, the way a browser
// exposes them through Date.
type Environment interface {
	// ZoneName returns the IANA name the host reports for its zone, or "".
	ZoneName() string
	// OffsetAt returns the abbreviation and the offset, in minutes west of
	// UTC, in effect at the instant ms.
	OffsetAt(ms int64) (abbr string, offset float64)
	// LocalDate returns the instant of local midnight on the given date.
	// month is zero-based and may overflow.
	LocalDate(year, month, day int) int64
	// Year returns the current local year.
	Year() int
}

// LocationEnvironment adapts a *time.Location to Environment.
type LocationEnvironment struct {
	Location *time.Location
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

func (e LocationEnvironment) loc() *time.Location {
	if e.Location == nil {
		return time.Local
	}
	return e.Location
}

func (e LocationEnvironment) ZoneName() string {
	name := e.loc().String()
	if name == "Local" {
		return ""
	}
	return name
}

func (e LocationEnvironment) OffsetAt(ms int64) (string, float64) {
	abbr, offset := time.UnixMilli(ms).In(e.loc()).Zone()
	return cleanAbbr(abbr), -float64(offset) / 60
}

func (e LocationEnvironment) LocalDate(year, month, day int) int64 {
	return time.Date(year, time.Month(month+1), day, 0, 0, 0, 0, e.loc()).UnixMilli()
}

func (e LocationEnvironment) Year() int {
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	return now().In(e.loc()).Year()
}

// cleanAbbr keeps the upper case letters of a zone abbreviation. Numeric
// abbreviations such as "+03" and the generic "GMT" carry no information.
func cleanAbbr(abbr string) string {
	abbr = strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' {
			return r
		}
		return -1
	}, abbr)
	if abbr == "GMT" {
		return ""
	}
	return abbr
}

type offsetAt struct {
	at     int64
	abbr   string
	offset float64
}

func newOffsetAt(env Environment, at int64) offsetAt {
	abbr, offset := env.OffsetAt(at)
	return offsetAt{at: at, abbr: abbr, offset: offset}
}

// findChange narrows the interval (low, high) down to the minute in which
// the offset changes.
func findChange(env Environment, low, high offsetAt) offsetAt {
	for {
		diff := (high.at - low.at) / 120000 * 60000
		if diff == 0 {
			return low
		}
		mid := newOffsetAt(env, low.at+diff)
		if mid.offset == low.offset {
			low = mid
		} else {
			high = mid
		}
	}
}

// userOffsets samples the environment on the first of every month for four
// years, adds both sides of every change it finds, and adds January and
// July of each year.
func userOffsets(env Environment) []offsetAt {
	startYear := env.Year() - 2
	last := newOffsetAt(env, env.LocalDate(startYear, 0, 1))
	offsets := []offsetAt{last}

	for i := 1; i < 48; i++ {
		next := newOffsetAt(env, env.LocalDate(startYear, i, 1))
		if next.offset != last.offset {
			change := findChange(env, last, next)
			offsets = append(offsets, change, newOffsetAt(env, change.at+60000))
			last = next
		}
	}
	for i := 0; i < 4; i++ {
		offsets = append(offsets,
			newOffsetAt(env, env.LocalDate(startYear+i, 0, 1)),
			newOffsetAt(env, env.LocalDate(startYear+i, 6, 1)))
	}
	return offsets
}

type zoneScore struct {
	zone        *Zone
	offsetScore float64
	abbrScore   int
}

func (s *zoneScore) scoreOffsetAt(o offsetAt) {
	s.offsetScore += math.Abs(s.zone.Offset(o.at) - o.offset)
	if cleanAbbr(s.zone.Abbr(o.at)) != o.abbr {
		s.abbrScore++
	}
}

// Guess returns the name of the zone that best matches env. If the
// environment names a zone the registry knows, that name is returned.
// Otherwise every zone that has used one of the sampled offsets is scored by
// the total offset deviation over the samples, then by the number of
// abbreviation mismatches. Ties go to the zone with the larger population
// and then to the name that sorts last. The result is cached until the
// registry changes or ignoreCache is set. An empty result means no zone
// matched.
func (r *Registry) Guess(env Environment, ignoreCache bool) string {
	r.mu.RLock()
	cached, ok := r.cachedGuess, r.guessOnce
	r.mu.RUnlock()
	if ok && !ignoreCache {
		return cached
	}

	guess := r.rebuildGuess(env)

	r.mu.Lock()
	r.cachedGuess, r.guessOnce = guess, true
	r.mu.Unlock()
	return guess
}

func (r *Registry) rebuildGuess(env Environment) string {
	if name := env.ZoneName(); len(name) > 3 {
		if z, ok := r.Get(name); ok {
			return z.Name
		}
		r.logger().Warn("Environment zone is not loaded, guessing", "zone", name)
	}

	offsets := userOffsets(env)

	r.mu.RLock()
	candidates := make(map[string]bool)
	checked := make(map[float64]bool)
	for _, o := range offsets {
		if checked[o.offset] {
			continue
		}
		checked[o.offset] = true
		for name := range r.guesses[o.offset] {
			candidates[name] = true
		}
	}
	r.mu.RUnlock()

	var scores []*zoneScore
	for name := range candidates {
		z, ok := r.Get(name)
		if !ok {
			continue
		}
		s := &zoneScore{zone: z}
		for _, o := range offsets {
			s.scoreOffsetAt(o)
		}
		scores = append(scores, s)
	}
	if len(scores) == 0 {
		return ""
	}

	sort.Slice(scores, func(i, j int) bool {
		a, b := scores[i], scores[j]
		if a.offsetScore != b.offsetScore {
			return a.offsetScore < b.offsetScore
		}
		if a.abbrScore != b.abbrScore {
			return a.abbrScore < b.abbrScore
		}
		if a.zone.Population != b.zone.Population {
			return a.zone.Population > b.zone.Population
		}
		return a.zone.Name > b.zone.Name
	})
	return scores[0].zone.Name
}

// FixedEnvironment is an Environment with a single offset, such as a host
// configured with a POSIX TZ string without rules.
type FixedEnvironment struct {
	Abbr   string
	Offset float64 // minutes west of UTC
	Now    int64
}

func (FixedEnvironment) ZoneName() string { return "" }

func (e FixedEnvironment) OffsetAt(int64) (string, float64) { return e.Abbr, e.Offset }

func (e FixedEnvironment) LocalDate(year, month, day int) int64 {
	return calmath.Compose(year, month, day, 0, 0, 0, 0) + int64(e.Offset*60000)
}

func (e FixedEnvironment) Year() int {
	return calmath.Decompose(e.Now - int64(e.Offset*60000)).Year
}
