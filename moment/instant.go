package moment

import (
	"math"
	"time"

	"github.com/ngrash/go-moment/internal/calmath"
	"github.com/ngrash/go-moment/locale"
	"github.com/ngrash/go-moment/tz"
)

// maxMillis bounds the representable instants to ±100,000,000 days around
// the epoch.
const maxMillis = 8.64e15

func inRange(ms int64) bool {
	return ms >= -maxMillis && ms <= maxMillis
}

type displayMode uint8

const (
	modeLocal displayMode = iota
	modeUTC
	modeOffset
	modeZone
)

// Instant is a point in time with a display mode and a locale. Instants
// are values: every operation returns a new Instant and leaves its
// receiver unchanged. The zero Instant is invalid.
type Instant struct {
	ctx    *Context
	ms     int64
	mode   displayMode
	offset int // seconds east of UTC, modeOffset only
	zone   *tz.Zone
	loc    *locale.Locale
	valid  bool
	flags  *ParsingFlags
	source *CreationData
}

func (i Instant) context() *Context {
	if i.ctx == nil {
		background.init()
		return background
	}
	return i.ctx
}

// Locale returns the instant's locale.
func (i Instant) Locale() *locale.Locale {
	if i.loc == nil {
		return i.context().Locales.Default()
	}
	return i.loc
}

// WithLocale returns i with the first defined locale of names.
func (i Instant) WithLocale(names ...string) Instant {
	i.loc = i.context().Locale(names...)
	return i
}

// Lang is the deprecated name of WithLocale.
func (i Instant) Lang(names ...string) Instant {
	i.context().deprecate("Lang", "Instant.Lang is deprecated, use WithLocale")
	return i.WithLocale(names...)
}

// Clone returns a copy of i. Instants are values, so this is the identity;
// it exists for readability at call sites that mirror mutable APIs.
func (i Instant) Clone() Instant { return i }

// IsValid reports whether i denotes a point in time.
func (i Instant) IsValid() bool { return i.valid }

// ParsingFlags returns the diagnostics recorded while i was created.
func (i Instant) ParsingFlags() ParsingFlags {
	if i.flags == nil {
		return *newParsingFlags()
	}
	return i.flags.clone()
}

// InvalidAt returns the field that was out of range when i was created, or
// NoOverflow.
func (i Instant) InvalidAt() Field {
	if i.flags == nil || i.flags.Overflow < NoOverflow {
		return NoOverflow
	}
	return i.flags.Overflow
}

// CreationData describes the input an instant was parsed from.
type CreationData struct {
	Input  string
	Format string
	Locale string
	Strict bool
	UTC    bool
}

// CreationData returns how i was parsed. It is zero for instants that
// were not parsed from a string.
func (i Instant) CreationData() CreationData {
	if i.source == nil {
		return CreationData{}
	}
	return *i.source
}

// ValueOf returns the milliseconds since the epoch, or NaN for an invalid
// instant.
func (i Instant) ValueOf() float64 {
	if !i.valid {
		return math.NaN()
	}
	return float64(i.ms)
}

// UnixMilli returns the milliseconds since the epoch. It is InvalidUnix
// for invalid instants.
func (i Instant) UnixMilli() int64 {
	if !i.valid {
		return InvalidUnix
	}
	return i.ms
}

// Unix returns the whole seconds since the epoch, or InvalidUnix.
func (i Instant) Unix() int64 {
	if !i.valid {
		return InvalidUnix
	}
	return calmath.FloorDiv(i.ms, 1000)
}

// ToTime converts i to a time.Time in its display location.
func (i Instant) ToTime() time.Time {
	t := time.UnixMilli(i.ms)
	switch i.mode {
	case modeUTC:
		return t.UTC()
	case modeOffset:
		return t.In(time.FixedZone("", i.offset))
	case modeZone:
		return t.In(time.FixedZone(i.zone.Abbr(i.ms), i.zone.UTCOffsetSeconds(i.ms)))
	}
	return t.In(i.context().Location)
}

func locationOffset(loc *time.Location, ms int64) int {
	_, off := time.UnixMilli(ms).In(loc).Zone()
	return off
}

// offsetSeconds returns the display offset east of UTC at the instant.
func (i Instant) offsetSeconds() int {
	switch i.mode {
	case modeUTC:
		return 0
	case modeOffset:
		return i.offset
	case modeZone:
		return i.zone.UTCOffsetSeconds(i.ms)
	}
	return locationOffset(i.context().Location, i.ms)
}

// UTCOffset returns the display offset in minutes east of UTC. Offsets
// with seconds are truncated. Invalid instants give InvalidField.
func (i Instant) UTCOffset() int {
	if !i.valid {
		return InvalidField
	}
	return i.offsetSeconds() / 60
}

// Zone is the deprecated inverted offset: minutes west of UTC.
func (i Instant) Zone() int {
	i.context().deprecate("Zone", "Instant.Zone is deprecated, use UTCOffset")
	if !i.valid {
		return InvalidField
	}
	return -i.UTCOffset()
}

func (i Instant) fields() calmath.Fields {
	return calmath.Decompose(i.ms + int64(i.offsetSeconds())*1000)
}

// fromLocal returns the instant whose wall clock in i's display mode reads
// local, given as milliseconds since 1970-01-01T00:00 wall clock time.
func (i Instant) fromLocal(local int64) int64 {
	switch i.mode {
	case modeUTC:
		return local
	case modeOffset:
		return local - int64(i.offset)*1000
	case modeZone:
		return i.zone.Instant(local, tz.DefaultParseFlags)
	}
	return localToUTC(i.context().Location, local)
}

// localToUTC resolves a wall clock time in loc. Times skipped by a
// forward transition move forward by the gap.
func localToUTC(loc *time.Location, local int64) int64 {
	guess := local - int64(locationOffset(loc, local))*1000
	off := locationOffset(loc, guess)
	ms := local - int64(off)*1000
	if off2 := locationOffset(loc, ms); off2 != off {
		// In a gap: the wall clock does not exist. Use the offset in effect
		// before the transition, which lands after it.
		ms = local - int64(min(off, off2))*1000
	}
	return ms
}

// withLocal returns i moved to the wall clock time f in its display mode.
func (i Instant) withLocal(f calmath.Fields) Instant {
	if !i.valid {
		return i
	}
	return i.withMillis(i.fromLocal(f.Compose()))
}

func (i Instant) withMillis(ms int64) Instant {
	i.ms = ms
	i.valid = i.valid && inRange(ms)
	return i
}

// UTC switches i to UTC display. With keepLocal the wall clock is kept
// and the instant moves.
func (i Instant) UTC(keepLocal bool) Instant {
	return i.setMode(modeUTC, 0, nil, keepLocal)
}

// Local switches i to the context location. With keepLocal the wall clock
// is kept and the instant moves.
func (i Instant) Local(keepLocal bool) Instant {
	return i.setMode(modeLocal, 0, nil, keepLocal)
}

// WithUTCOffset switches i to a fixed offset display. Offsets with an
// absolute value below 16 are read as hours, others as minutes.
func (i Instant) WithUTCOffset(offset int, keepLocal bool) Instant {
	if offset > -16 && offset < 16 {
		offset *= 60
	}
	return i.setMode(modeOffset, offset*60, nil, keepLocal)
}

// ParseUTCOffset switches i to the offset found at the end of s, such as
// "+05:30", "-0800" or "Z". If s holds no offset, i is returned
// unchanged.
func (i Instant) ParseUTCOffset(s string, keepLocal bool) Instant {
	minutes, ok := offsetFromString(matchShortOffset, s)
	if !ok {
		return i
	}
	return i.setMode(modeOffset, minutes*60, nil, keepLocal)
}

// In switches i to the named zone. It reports false, and returns i
// unchanged, when the zone is unknown.
func (i Instant) In(name string, keepLocal bool) (Instant, bool) {
	ctx := i.context()
	z, ok := ctx.Zone(name)
	if !ok {
		ctx.Logger.Warn("unknown zone", "zone", name)
		return i, false
	}
	return i.setMode(modeZone, 0, z, keepLocal), true
}

func (i Instant) setMode(mode displayMode, offset int, z *tz.Zone, keepLocal bool) Instant {
	f := i.fields()
	i.mode, i.offset, i.zone = mode, offset, z
	if keepLocal {
		return i.withLocal(f)
	}
	return i
}

// IsUTC reports whether i displays UTC, including a fixed +00:00 offset.
func (i Instant) IsUTC() bool {
	return i.mode == modeUTC || (i.mode == modeOffset && i.offset == 0)
}

// IsLocal reports whether i displays the context location.
func (i Instant) IsLocal() bool { return i.mode == modeLocal }

// IsUTCOffset reports whether i displays a fixed offset or UTC.
func (i Instant) IsUTCOffset() bool { return i.mode == modeUTC || i.mode == modeOffset }

// IsDST reports whether the display offset is ahead of the offset in
// January or June of the same year.
func (i Instant) IsDST() bool {
	if !i.valid {
		return false
	}
	off := i.UTCOffset()
	return off > i.SetMonth(0).UTCOffset() || off > i.SetMonth(5).UTCOffset()
}

// ZoneAbbr returns the display zone abbreviation: the zone's abbreviation
// in zone mode, "UTC" in UTC mode and "" otherwise.
func (i Instant) ZoneAbbr() string {
	switch i.mode {
	case modeZone:
		return i.zone.Abbr(i.ms)
	case modeUTC:
		return "UTC"
	}
	return ""
}

// ZoneName returns the display zone's long name. Zones only carry
// abbreviations, so zone mode returns the abbreviation.
func (i Instant) ZoneName() string {
	switch i.mode {
	case modeZone:
		return i.zone.Abbr(i.ms)
	case modeUTC:
		return "Coordinated Universal Time"
	}
	return ""
}

// TimeZone returns the name of the display zone, or "" outside zone mode.
func (i Instant) TimeZone() string {
	if i.mode != modeZone {
		return ""
	}
	return i.zone.Name
}

// HasAlignedHourOffset reports whether the display offsets of i and other
// differ by whole hours. A nil other compares with UTC.
func (i Instant) HasAlignedHourOffset(other *Instant) bool {
	if !i.valid {
		return false
	}
	ref := 0
	if other != nil {
		if !other.valid {
			return false
		}
		ref = other.Local(false).UTCOffset()
	}
	return (i.UTCOffset()-ref)%60 == 0
}
