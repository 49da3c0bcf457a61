package moment

import (
	"encoding/json"
	"errors"
)

// ErrInvalid is returned when an invalid instant is serialized as text.
var ErrInvalid = errors.New("moment: invalid date")

// ToISOString renders i as "YYYY-MM-DDTHH:mm:ss.SSSZ" in UTC, or in its
// own offset with keepOffset. Years outside 0-9999 use six digits and a
// sign. Invalid instants give "".
func (i Instant) ToISOString(keepOffset bool) string {
	if !i.valid {
		return ""
	}
	m := i.WithLocale("en")
	if !keepOffset {
		m = m.UTC(false)
	}
	year := "YYYY"
	if y := m.Year(); y < 0 || y > 9999 {
		year = "YYYYYY"
	}
	zone := "Z"
	if !keepOffset {
		zone = "[Z]"
	}
	return m.Format(year + "-MM-DD[T]HH:mm:ss.SSS" + zone)
}

// String renders i like "Mon Jan 02 2006 15:04:05 GMT-0700" in English.
func (i Instant) String() string {
	return i.WithLocale("en").Format("ddd MMM DD YYYY HH:mm:ss [GMT]ZZ")
}

// Inspect renders i as the call that would recreate it, such as
// moment.utc("2020-01-02T03:04:05.006Z").
func (i Instant) Inspect() string {
	if !i.valid {
		input := ""
		if i.source != nil {
			input = i.source.Input
		}
		return "moment.invalid(/* " + input + " */)"
	}
	fn, zone := "moment", ""
	if !i.IsLocal() {
		fn, zone = "moment.parseZone", "Z"
		if i.UTCOffset() == 0 {
			fn = "moment.utc"
		}
	}
	year := "YYYY"
	if y := i.Year(); y < 0 || y > 9999 {
		year = "YYYYYY"
	}
	return i.WithLocale("en").Format("[" + fn + `("]` + year + "-MM-DD[T]HH:mm:ss.SSS" + zone + `[")]`)
}

// ToArray returns year, month (0-11), day, hour, minute, second and
// millisecond.
func (i Instant) ToArray() [7]int {
	f := i.fields()
	return [7]int{f.Year, f.Month, f.Day, f.Hour, f.Minute, f.Second, f.Millisecond}
}

// Object holds the fields of an instant by name.
type Object struct {
	Years        int `json:"years"`
	Months       int `json:"months"`
	Date         int `json:"date"`
	Hours        int `json:"hours"`
	Minutes      int `json:"minutes"`
	Seconds      int `json:"seconds"`
	Milliseconds int `json:"milliseconds"`
}

// ToObject returns the fields of i by name.
func (i Instant) ToObject() Object {
	f := i.fields()
	return Object{f.Year, f.Month, f.Day, f.Hour, f.Minute, f.Second, f.Millisecond}
}

// MarshalJSON encodes i as its UTC ISO string, or null when invalid.
func (i Instant) MarshalJSON() ([]byte, error) {
	if !i.valid {
		return []byte("null"), nil
	}
	return json.Marshal(i.ToISOString(false))
}

// UnmarshalJSON reads an ISO 8601 string, keeping its offset, or a number
// of milliseconds since the epoch. null gives an invalid instant.
func (i *Instant) UnmarshalJSON(b []byte) error {
	c := i.context()
	if string(b) == "null" {
		*i = c.Invalid(nil)
		return nil
	}
	var ms int64
	if err := json.Unmarshal(b, &ms); err == nil {
		*i = c.UnixMilli(ms)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return i.UnmarshalText([]byte(s))
}

// MarshalText encodes i as its UTC ISO string.
func (i Instant) MarshalText() ([]byte, error) {
	if !i.valid {
		return nil, ErrInvalid
	}
	return []byte(i.ToISOString(false)), nil
}

// UnmarshalText reads an ISO 8601 string and keeps its offset.
func (i *Instant) UnmarshalText(b []byte) error {
	*i = i.context().Parse(string(b), ParseConfig{Formats: []string{ISO8601}, KeepOffset: true})
	if !i.valid {
		return ErrInvalid
	}
	return nil
}
