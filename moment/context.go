// Package moment parses, manipulates, compares and formats points in time
// and durations. Instants carry a display mode (the host location, UTC, a
// fixed offset or a named zone) and a locale that drive how their calendar
// fields are read and rendered.
package moment

import (
	"log/slog"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/ngrash/go-moment/locale"
	"github.com/ngrash/go-moment/tz"
)

// DefaultFormatCacheSize is the number of compiled format patterns a
// Context keeps by default.
const DefaultFormatCacheSize = 512

// Context carries the environment instants are created in: the clock, the
// host location, the locale and zone registries and a cache of compiled
// format patterns. Fields must be set before first use. The zero value is
// ready to use and is safe for concurrent use.
type Context struct {
	// Logger receives deprecation and fallback warnings. If nil,
	// slog.Default() is used.
	Logger *slog.Logger
	// Location is the host zone used for local display mode. If nil,
	// time.Local is used.
	Location *time.Location
	// Clock returns the current time. If nil, time.Now is used.
	Clock func() time.Time
	// Locales resolves locale names. If nil, a registry with the built-in
	// locales is created.
	Locales *locale.Registry
	// Zones resolves zone names. If nil, an empty registry is created.
	Zones *tz.Registry
	// FormatCacheSize bounds the compiled format cache. If zero,
	// DefaultFormatCacheSize is used.
	FormatCacheSize int

	once    sync.Once
	formats *lru.Cache[string, compiledFormat]
	warned  sync.Map
}

// background serves instants that were not created through a Context,
// such as the zero Instant.
var background = &Context{}

func (c *Context) init() {
	c.once.Do(func() {
		if c.Logger == nil {
			c.Logger = slog.Default()
		}
		if c.Location == nil {
			c.Location = time.Local
		}
		if c.Clock == nil {
			c.Clock = time.Now
		}
		if c.Locales == nil {
			c.Locales = locale.NewRegistry()
		}
		if c.Zones == nil {
			c.Zones = &tz.Registry{}
		}
		size := c.FormatCacheSize
		if size <= 0 {
			size = DefaultFormatCacheSize
		}
		cache, err := lru.New[string, compiledFormat](size)
		if err != nil {
			panic(err)
		}
		c.formats = cache
	})
}

// deprecate logs msg the first time the deprecated call name is used.
func (c *Context) deprecate(name, msg string) {
	c.init()
	if _, seen := c.warned.LoadOrStore(name, true); seen {
		return
	}
	c.Logger.Warn("deprecation warning", "call", name, "msg", msg)
}

// Locale returns the first defined locale of names, or the default locale.
func (c *Context) Locale(names ...string) *locale.Locale {
	c.init()
	return c.Locales.Choose(names...)
}

// Zone looks up a zone by name.
func (c *Context) Zone(name string) (*tz.Zone, bool) {
	c.init()
	return c.Zones.Get(name)
}

// GuessZone returns the name of the loaded zone that best matches the
// context's location.
func (c *Context) GuessZone(ignoreCache bool) string {
	c.init()
	return c.Zones.Guess(tz.LocationEnvironment{Location: c.Location, Now: c.Clock}, ignoreCache)
}

func (c *Context) instant(ms int64, mode displayMode) Instant {
	return Instant{ctx: c, ms: ms, mode: mode, valid: inRange(ms), loc: c.Locales.Default()}
}

// Now returns the current time in local display mode.
func (c *Context) Now() Instant {
	c.init()
	return c.instant(c.Clock().UnixMilli(), modeLocal)
}

// FromTime returns t as an instant in local display mode.
func (c *Context) FromTime(t time.Time) Instant {
	c.init()
	return c.instant(t.UnixMilli(), modeLocal)
}

// Unix returns the instant sec seconds after the epoch in local display
// mode.
func (c *Context) Unix(sec int64) Instant {
	c.init()
	return c.instant(sec*1000, modeLocal)
}

// UnixMilli returns the instant ms milliseconds after the epoch in local
// display mode.
func (c *Context) UnixMilli(ms int64) Instant {
	c.init()
	return c.instant(ms, modeLocal)
}

// Date builds a local instant from year, month (0-11), day, hour, minute,
// second and millisecond. Leading fields that are missing default to
// today, trailing ones to their lowest value. Out of range fields make the
// result invalid.
func (c *Context) Date(fields ...int) Instant {
	c.init()
	return c.fromArray(fields, false)
}

// DateUTC is like Date but reads the fields as UTC and returns a UTC
// instant.
func (c *Context) DateUTC(fields ...int) Instant {
	c.init()
	return c.fromArray(fields, true)
}

// Invalid returns an invalid instant carrying flags. With nil flags the
// instant is marked as invalidated by the user.
func (c *Context) Invalid(flags *ParsingFlags) Instant {
	c.init()
	if flags == nil {
		flags = newParsingFlags()
		flags.UserInvalidated = true
	}
	i := c.instant(0, modeLocal)
	i.valid = false
	i.flags = flags
	return i
}

// Min returns the earliest of instants. An invalid instant wins. Without
// arguments it returns Now.
func (c *Context) Min(instants ...Instant) Instant {
	return c.pick(instants, Instant.IsBefore)
}

// Max returns the latest of instants. An invalid instant wins. Without
// arguments it returns Now.
func (c *Context) Max(instants ...Instant) Instant {
	return c.pick(instants, Instant.IsAfter)
}

func (c *Context) pick(instants []Instant, better func(Instant, Instant, Unit) bool) Instant {
	if len(instants) == 0 {
		return c.Now()
	}
	res := instants[0]
	for _, i := range instants[1:] {
		if !i.IsValid() || better(i, res, Millisecond) {
			res = i
		}
	}
	return res
}
