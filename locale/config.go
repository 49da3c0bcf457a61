// Package locale holds the language specific data used to format, parse and
// humanize dates: month and weekday names, long date format aliases,
// relative time phrases, ordinals, week rules and eras.
//
// Locales are described by a Config and composed by merging a child config
// over its parent. The result is an immutable Locale snapshot, so changing
// a parent later never changes children that were already defined.
package locale

import (
	"encoding/json"
	"fmt"

	"sigs.k8s.io/yaml"
)

// Config describes a locale. Every field is optional; fields that are left
// nil are inherited from the parent locale when the config is merged.
//
// Configs decode from JSON or YAML (see ParseConfig). A key set to null
// removes the inherited value, as does a nil entry in one of the map
// fields or a call to Unset.
type Config struct {
	ParentLocale string `json:"parentLocale,omitempty"`

	Months        *Names `json:"months,omitempty"`
	MonthsShort   *Names `json:"monthsShort,omitempty"`
	Weekdays      *Names `json:"weekdays,omitempty"`
	WeekdaysShort *Names `json:"weekdaysShort,omitempty"`
	WeekdaysMin   *Names `json:"weekdaysMin,omitempty"`

	// LongDateFormat maps the aliases LT, LTS, L, LL, LLL, LLLL and their
	// lowercase variants to token patterns.
	LongDateFormat map[string]*string `json:"longDateFormat,omitempty"`

	// Calendar maps sameDay, nextDay, lastDay, nextWeek, lastWeek and
	// sameElse to token patterns.
	Calendar map[string]*string `json:"calendar,omitempty"`

	// RelativeTime maps future, past and the unit keys s, ss, m, mm, h, hh,
	// d, dd, w, ww, M, MM, y and yy to phrases. "%d" is replaced by the
	// number and "%s" (future and past only) by the unit phrase.
	RelativeTime map[string]*string `json:"relativeTime,omitempty"`

	Week *Week `json:"week,omitempty"`
	Eras []EraConfig `json:"eras,omitempty"`

	InvalidDate *string `json:"invalidDate,omitempty"`

	// Ordinal is a pattern where "%d" is replaced by the number.
	Ordinal                *string `json:"ordinal,omitempty"`
	DayOfMonthOrdinalParse *string `json:"dayOfMonthOrdinalParse,omitempty"`
	MeridiemParse          *string `json:"meridiemParse,omitempty"`

	// Hooks that cannot be expressed as data. A hook overrides the
	// corresponding data field.
	OrdinalFunc       func(n int, token string) string          `json:"-"`
	RelativeTimeFuncs map[string]RelativeTimeFunc               `json:"-"`
	Meridiem          func(hour, minute int, lower bool) string `json:"-"`
	IsPM              func(input string) bool                   `json:"-"`
	MeridiemHour      func(hour int, meridiem string) int       `json:"-"`
	Preparse          func(string) string                       `json:"-"`
	Postformat        func(string) string                       `json:"-"`

	unset map[string]bool
}

// RelativeTimeFunc renders one relative time phrase. key is the unit key
// (for example "mm") and isFuture reports whether the duration is positive.
type RelativeTimeFunc func(n int, withoutSuffix bool, key string, isFuture bool) string

// Names is a list of month or weekday names. When the names differ by
// grammatical context, Format holds the names used next to a day of month
// and Standalone the nominative ones; IsFormat is a regular expression
// matched against the format pattern to choose between them.
type Names struct {
	Format     []string `json:"format,omitempty"`
	Standalone []string `json:"standalone,omitempty"`
	IsFormat   string   `json:"isFormat,omitempty"`

	// plain is set for names given as a bare list.
	plain bool
}

// List returns Names that are the same in every context.
func List(names ...string) *Names {
	return &Names{Format: names, plain: true}
}

func (n *Names) UnmarshalJSON(b []byte) error {
	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		*n = Names{Format: list, plain: true}
		return nil
	}
	type names Names
	var v names
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("names must be a list or an object with format and standalone: %w", err)
	}
	*n = Names(v)
	return nil
}

func (n *Names) MarshalJSON() ([]byte, error) {
	if n.plain {
		return json.Marshal(n.Format)
	}
	type names Names
	return json.Marshal((*names)(n))
}

// Week is the week numbering rule. Dow is the first day of the week
// (0 = Sunday) and Doy is chosen so that the week containing January
// 7+Dow-Doy is the first week of the year: ISO weeks are {1, 4}, US weeks
// are {0, 6}.
type Week struct {
	Dow *int `json:"dow,omitempty"`
	Doy *int `json:"doy,omitempty"`
}

// WeekRule returns a fully specified Week.
func WeekRule(dow, doy int) *Week {
	return &Week{Dow: &dow, Doy: &doy}
}

// EraConfig describes one era. Since and Until are YYYY-MM-DD dates, or
// "Infinity" and "-Infinity" for open ends. Until may precede Since, in
// which case years count backwards from Since.
type EraConfig struct {
	Since  string `json:"since"`
	Until  string `json:"until"`
	Offset int    `json:"offset"`
	Name   string `json:"name"`
	Narrow string `json:"narrow"`
	Abbr   string `json:"abbr"`
}

// String returns a pointer to s, for building the map fields of a Config.
func String(s string) *string { return &s }

// Unset marks top level keys (by their JSON name, for example "eras" or
// "meridiemParse") for removal when c is merged over a parent.
func (c *Config) Unset(keys ...string) *Config {
	if c.unset == nil {
		c.unset = map[string]bool{}
	}
	for _, k := range keys {
		c.unset[k] = true
	}
	return c
}

func (c *Config) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	type config Config
	var v config
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*c = Config(v)
	for k, msg := range raw {
		if string(msg) == "null" {
			c.Unset(k)
		}
	}
	return nil
}

// ParseConfig decodes a locale config from YAML or JSON.
func ParseConfig(data []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse locale config: %w", err)
	}
	return &c, nil
}

// Merge returns the composition of child over parent. Child values win;
// the map fields, Week and non-list Names are merged one level deep. Keys
// the child unsets are removed from the result. Neither argument is
// modified.
func Merge(parent, child *Config) *Config {
	if parent == nil {
		parent = &Config{}
	}
	if child == nil {
		child = &Config{}
	}
	res := *parent
	res.unset = nil
	if child.ParentLocale != "" {
		res.ParentLocale = child.ParentLocale
	}

	res.Months = mergeNames(parent.Months, child.Months)
	res.MonthsShort = mergeNames(parent.MonthsShort, child.MonthsShort)
	res.Weekdays = mergeNames(parent.Weekdays, child.Weekdays)
	res.WeekdaysShort = mergeNames(parent.WeekdaysShort, child.WeekdaysShort)
	res.WeekdaysMin = mergeNames(parent.WeekdaysMin, child.WeekdaysMin)

	res.LongDateFormat = mergeStrings(parent.LongDateFormat, child.LongDateFormat)
	res.Calendar = mergeStrings(parent.Calendar, child.Calendar)
	res.RelativeTime = mergeStrings(parent.RelativeTime, child.RelativeTime)
	res.RelativeTimeFuncs = mergeFuncs(parent.RelativeTimeFuncs, child.RelativeTimeFuncs, child.RelativeTime)

	if child.Week != nil {
		w := Week{}
		if parent.Week != nil {
			w = *parent.Week
		}
		if child.Week.Dow != nil {
			w.Dow = child.Week.Dow
		}
		if child.Week.Doy != nil {
			w.Doy = child.Week.Doy
		}
		res.Week = &w
	}
	if child.Eras != nil {
		res.Eras = child.Eras
	}
	if child.InvalidDate != nil {
		res.InvalidDate = child.InvalidDate
	}
	if child.Ordinal != nil {
		res.Ordinal = child.Ordinal
		res.OrdinalFunc = nil
	}
	if child.OrdinalFunc != nil {
		res.OrdinalFunc = child.OrdinalFunc
	}
	if child.DayOfMonthOrdinalParse != nil {
		res.DayOfMonthOrdinalParse = child.DayOfMonthOrdinalParse
	}
	if child.MeridiemParse != nil {
		res.MeridiemParse = child.MeridiemParse
	}
	if child.Meridiem != nil {
		res.Meridiem = child.Meridiem
	}
	if child.IsPM != nil {
		res.IsPM = child.IsPM
	}
	if child.MeridiemHour != nil {
		res.MeridiemHour = child.MeridiemHour
	}
	if child.Preparse != nil {
		res.Preparse = child.Preparse
	}
	if child.Postformat != nil {
		res.Postformat = child.Postformat
	}

	for k := range child.unset {
		res.clear(k)
	}
	return &res
}

// clear resets the field with the given JSON name.
func (c *Config) clear(key string) {
	switch key {
	case "months":
		c.Months = nil
	case "monthsShort":
		c.MonthsShort = nil
	case "weekdays":
		c.Weekdays = nil
	case "weekdaysShort":
		c.WeekdaysShort = nil
	case "weekdaysMin":
		c.WeekdaysMin = nil
	case "longDateFormat":
		c.LongDateFormat = nil
	case "calendar":
		c.Calendar = nil
	case "relativeTime":
		c.RelativeTime = nil
		c.RelativeTimeFuncs = nil
	case "week":
		c.Week = nil
	case "eras":
		c.Eras = nil
	case "invalidDate":
		c.InvalidDate = nil
	case "ordinal":
		c.Ordinal = nil
		c.OrdinalFunc = nil
	case "dayOfMonthOrdinalParse":
		c.DayOfMonthOrdinalParse = nil
	case "meridiemParse":
		c.MeridiemParse = nil
	case "meridiem":
		c.Meridiem = nil
	case "isPM":
		c.IsPM = nil
	case "meridiemHour":
		c.MeridiemHour = nil
	case "preparse":
		c.Preparse = nil
	case "postformat":
		c.Postformat = nil
	}
}

func mergeNames(parent, child *Names) *Names {
	if child == nil {
		return parent
	}
	if parent == nil || parent.plain || child.plain {
		return child
	}
	n := *parent
	if child.Format != nil {
		n.Format = child.Format
	}
	if child.Standalone != nil {
		n.Standalone = child.Standalone
	}
	if child.IsFormat != "" {
		n.IsFormat = child.IsFormat
	}
	return &n
}

// mergeStrings merges child over parent; a nil value in child deletes the
// key.
func mergeStrings(parent, child map[string]*string) map[string]*string {
	if child == nil {
		return parent
	}
	res := make(map[string]*string, len(parent)+len(child))
	for k, v := range parent {
		res[k] = v
	}
	for k, v := range child {
		if v == nil {
			delete(res, k)
			continue
		}
		res[k] = v
	}
	return res
}

// mergeFuncs merges child over parent. A phrase the child sets as a
// string replaces an inherited function for the same key.
func mergeFuncs(parent, child map[string]RelativeTimeFunc, phrases map[string]*string) map[string]RelativeTimeFunc {
	if child == nil && phrases == nil {
		return parent
	}
	res := make(map[string]RelativeTimeFunc, len(parent)+len(child))
	for k, v := range parent {
		if _, ok := phrases[k]; !ok {
			res[k] = v
		}
	}
	for k, v := range child {
		if v == nil {
			delete(res, k)
			continue
		}
		res[k] = v
	}
	return res
}
