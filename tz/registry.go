package tz

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Registry holds zone rule tables, links and countries. Zones are kept in
// packed form until first use. The zero value is an empty registry ready to
// use; it is safe for concurrent use.
type Registry struct {
	// Logger receives warnings about unknown zones and broken data. If nil,
	// slog.Default() is used.
	Logger *slog.Logger

	mu        sync.RWMutex
	version   string
	packed    map[string]string // normalized name -> packed string
	zones     map[string]*Zone  // normalized name -> unpacked zone
	linked    map[string]*Zone  // normalized link name -> renamed target zone
	links     map[string]string // normalized name -> normalized name
	names     map[string]string // normalized name -> display name
	countries map[string]Country
	guesses   map[float64]map[string]bool // raw offset -> normalized names

	guessOnce   bool
	cachedGuess string
}

// Country lists the zones observed in a country.
type Country struct {
	Code  string
	Zones []string
}

func normalizeName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), "/", "_")
}

func (r *Registry) init() {
	if r.packed == nil {
		r.packed = make(map[string]string)
		r.zones = make(map[string]*Zone)
		r.linked = make(map[string]*Zone)
		r.links = make(map[string]string)
		r.names = make(map[string]string)
		r.countries = make(map[string]Country)
		r.guesses = make(map[float64]map[string]bool)
	}
}

func (r *Registry) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

// Load adds every zone, link and country of b to the registry. Lines that
// cannot be split into their fields are reported; the rest of the bundle is
// still loaded.
func (r *Registry) Load(b Bundle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.init()

	var errs []error
	if err := r.addZones(b.Zones); err != nil {
		errs = append(errs, err)
	}
	if err := r.addLinks(b.Links); err != nil {
		errs = append(errs, err)
	}
	if err := r.addCountries(b.Countries); err != nil {
		errs = append(errs, err)
	}
	r.version = b.Version
	r.guessOnce = false
	return errors.Join(errs...)
}

// Add registers packed zones.
func (r *Registry) Add(packed ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.init()
	r.guessOnce = false
	return r.addZones(packed)
}

// AddZone registers an already unpacked zone.
func (r *Registry) AddZone(z *Zone) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.init()
	n := normalizeName(z.Name)
	r.zones[n] = z
	clear(r.linked)
	r.names[n] = z.Name
	r.addGuesses(n, z.Offsets)
	r.guessOnce = false
}

// Link registers aliases given as "A|B" pairs. Links work in both
// directions.
func (r *Registry) Link(aliases ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.init()
	return r.addLinks(aliases)
}

// AddCountries registers countries given as "CC|Zone/A Zone/B".
func (r *Registry) AddCountries(countries ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.init()
	return r.addCountries(countries)
}

func (r *Registry) addZones(packed []string) error {
	var errs []error
	for i, p := range packed {
		name, rest, ok := strings.Cut(p, "|")
		if !ok || name == "" {
			errs = append(errs, fmt.Errorf("zone %d: missing name in %q", i, truncate(p)))
			continue
		}
		n := normalizeName(name)
		r.packed[n] = p
		delete(r.zones, n)
		clear(r.linked)
		r.names[n] = name

		// Offsets are the third field; index them for guessing.
		fields := strings.SplitN(rest, "|", 3)
		if len(fields) < 2 {
			continue
		}
		var offsets []float64
		for _, s := range strings.Fields(fields[1]) {
			v, err := UnpackBase60(s)
			if err != nil {
				errs = append(errs, fmt.Errorf("zone %s: offset %q: %w", name, s, err))
				continue
			}
			offsets = append(offsets, v)
		}
		r.addGuesses(n, offsets)
	}
	return errors.Join(errs...)
}

func (r *Registry) addGuesses(name string, offsets []float64) {
	for _, o := range offsets {
		if r.guesses[o] == nil {
			r.guesses[o] = make(map[string]bool)
		}
		r.guesses[o][name] = true
	}
}

func (r *Registry) addLinks(aliases []string) error {
	var errs []error
	for _, a := range aliases {
		from, to, ok := strings.Cut(a, "|")
		if !ok || from == "" || to == "" {
			errs = append(errs, fmt.Errorf("invalid link %q", a))
			continue
		}
		n0, n1 := normalizeName(from), normalizeName(to)
		delete(r.linked, n0)
		delete(r.linked, n1)
		r.links[n0] = n1
		r.names[n0] = from
		r.links[n1] = n0
		r.names[n1] = to
	}
	return errors.Join(errs...)
}

func (r *Registry) addCountries(countries []string) error {
	var errs []error
	for _, c := range countries {
		code, zones, ok := strings.Cut(c, "|")
		if !ok || code == "" {
			errs = append(errs, fmt.Errorf("invalid country %q", c))
			continue
		}
		code = strings.ToUpper(code)
		r.countries[code] = Country{Code: code, Zones: strings.Fields(zones)}
	}
	return errors.Join(errs...)
}

// Get returns the zone called name. Lookups are case insensitive. A link
// resolves to the zone it points to, renamed to the requested name.
func (r *Registry) Get(name string) (*Zone, bool) {
	n := normalizeName(name)

	r.mu.RLock()
	z, ok := r.zones[n]
	if !ok {
		z, ok = r.linked[n]
	}
	r.mu.RUnlock()
	if ok {
		return z, true
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.init()
	z = r.getLocked(n, false)
	return z, z != nil
}

// getLocked unpacks or links the normalized name. viaLink is set when
// resolving a link target, which stops alias chains after one step.
func (r *Registry) getLocked(n string, viaLink bool) *Zone {
	if z, ok := r.zones[n]; ok {
		return z
	}
	if p, ok := r.packed[n]; ok {
		z, err := Unpack(p)
		if err != nil {
			r.logger().Warn("Dropping broken zone", "zone", r.names[n], "err", err)
			delete(r.packed, n)
			return nil
		}
		r.zones[n] = z
		return z
	}
	if viaLink {
		return nil
	}
	if z, ok := r.linked[n]; ok {
		return z
	}
	if target, ok := r.links[n]; ok {
		if z := r.getLocked(target, true); z != nil {
			z = z.renamed(r.names[n])
			r.linked[n] = z
			return z
		}
	}
	return nil
}

// ResolveOffset returns the UTC offset, in minutes east of UTC, of the zone
// name at the instant ms. ok is false if the zone is unknown.
func (r *Registry) ResolveOffset(name string, ms int64) (minutes float64, ok bool) {
	z, ok := r.Get(name)
	if !ok {
		r.logger().Debug("Unknown zone", "zone", name)
		return 0, false
	}
	return z.UTCOffset(ms), true
}

// Names returns the display names of all zones and links, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var names []string
	for n, name := range r.names {
		_, zone := r.packed[n]
		_, unpacked := r.zones[n]
		_, link := r.links[n]
		if zone || unpacked || link {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// Countries returns the known country codes, sorted.
func (r *Registry) Countries() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	codes := maps.Keys(r.countries)
	slices.Sort(codes)
	return codes
}

// ZonesForCountry returns the zones of the country with the given ISO 3166
// code, or nil if it is unknown.
func (r *Registry) ZonesForCountry(code string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.countries[strings.ToUpper(code)]
	if !ok {
		return nil
	}
	return slices.Clone(c.Zones)
}

// ZoneOffset is a zone name with its offset at some instant.
type ZoneOffset struct {
	Name   string
	Offset float64 // minutes west of UTC
}

// ZoneOffsetsForCountry is ZonesForCountry with each zone's raw offset at
// the instant ms. Zones missing from the registry are skipped.
func (r *Registry) ZoneOffsetsForCountry(code string, ms int64) []ZoneOffset {
	var out []ZoneOffset
	for _, name := range r.ZonesForCountry(code) {
		z, ok := r.Get(name)
		if !ok {
			continue
		}
		out = append(out, ZoneOffset{Name: name, Offset: z.Offset(ms)})
	}
	return out
}

// DataVersion returns the version of the last loaded bundle.
func (r *Registry) DataVersion() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.version
}
