package tz

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/ngrash/go-moment/internal/calmath"
)

// This file converts between zones and the Time Zone Information Format
// (TZif) of RFC 8536.
// https://datatracker.ietf.org/doc/html/rfc8536

// All multi-octet integer values are stored big-endian.
var order = binary.BigEndian

var tzifMagic = [4]byte{'T', 'Z', 'i', 'f'}

const tzifV2 byte = '2'

// FooterHorizon is the last year for which DST rules from a TZif footer are
// expanded into segments.
const FooterHorizon = 2037

// tzifHeader is the header of a TZif data block, following the magic:
//
//	+---------------+---+
//	|  magic    (4) |ver|
//	+---------------+---+---------------------------------------+
//	|           [unused - reserved for future use] (15)         |
//	+---------------+---------------+---------------+-----------+
//	|  isutcnt  (4) |  isstdcnt (4) |  leapcnt  (4) |
//	+---------------+---------------+---------------+
//	|  timecnt  (4) |  typecnt  (4) |  charcnt  (4) |
//	+---------------+---------------+---------------+
type tzifHeader struct {
	Version  byte
	Reserved [15]byte
	Isutcnt  uint32
	Isstdcnt uint32
	Leapcnt  uint32
	Timecnt  uint32
	Typecnt  uint32
	Charcnt  uint32
}

// localTimeType is a six-octet local time type record.
type localTimeType struct {
	Utoff int32
	Dst   uint8
	Idx   uint8
}

type tzifBlock struct {
	times  []int64
	types  []uint8
	ltts   []localTimeType
	design []byte
}

func readTZifHeader(r io.Reader) (tzifHeader, error) {
	var h tzifHeader
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return h, fmt.Errorf("reading magic: %w", err)
	}
	if magic != tzifMagic {
		return h, fmt.Errorf("invalid magic: %v", magic)
	}
	if err := binary.Read(r, order, &h); err != nil {
		return h, fmt.Errorf("reading header: %w", err)
	}
	return h, nil
}

// readTZifBlock reads a data block whose time values are timeSize octets.
func readTZifBlock(r io.Reader, h tzifHeader, timeSize int) (tzifBlock, error) {
	var b tzifBlock

	b.times = make([]int64, h.Timecnt)
	if timeSize == 4 {
		t32 := make([]int32, h.Timecnt)
		if err := binary.Read(r, order, t32); err != nil {
			return b, fmt.Errorf("reading transition times: %w", err)
		}
		for i, t := range t32 {
			b.times[i] = int64(t)
		}
	} else if err := binary.Read(r, order, b.times); err != nil {
		return b, fmt.Errorf("reading transition times: %w", err)
	}

	b.types = make([]uint8, h.Timecnt)
	if _, err := io.ReadFull(r, b.types); err != nil {
		return b, fmt.Errorf("reading transition types: %w", err)
	}
	b.ltts = make([]localTimeType, h.Typecnt)
	if err := binary.Read(r, order, b.ltts); err != nil {
		return b, fmt.Errorf("reading local time type records: %w", err)
	}
	b.design = make([]byte, h.Charcnt)
	if _, err := io.ReadFull(r, b.design); err != nil {
		return b, fmt.Errorf("reading time zone designations: %w", err)
	}

	// Leap second records and the standard/wall and UT/local indicators
	// do not affect offsets.
	skip := int64(h.Leapcnt)*int64(timeSize+4) + int64(h.Isstdcnt) + int64(h.Isutcnt)
	if _, err := io.CopyN(io.Discard, r, skip); err != nil {
		return b, fmt.Errorf("skipping indicators: %w", err)
	}

	for i, t := range b.types {
		if int(t) >= len(b.ltts) {
			return b, fmt.Errorf("transition %d: type %d out of range [0, %d)", i, t, len(b.ltts))
		}
	}
	for i, l := range b.ltts {
		if int(l.Idx) >= len(b.design) {
			return b, fmt.Errorf("local time type %d: designation index %d out of range", i, l.Idx)
		}
	}
	return b, nil
}

func (b tzifBlock) abbr(t localTimeType) string {
	s := b.design[t.Idx:]
	if i := bytes.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	return string(s)
}

// DecodeTZif reads a TZif file and converts it into a zone called name.
// For version 2+ files, DST rules in the footer are expanded until the end
// of FooterHorizon.
func DecodeTZif(name string, r io.Reader) (*Zone, error) {
	h, err := readTZifHeader(r)
	if err != nil {
		return nil, fmt.Errorf("read v1 header: %w", err)
	}
	b, err := readTZifBlock(r, h, 4)
	if err != nil {
		return nil, fmt.Errorf("read v1 data block: %w", err)
	}

	var footer string
	if h.Version >= tzifV2 {
		h2, err := readTZifHeader(r)
		if err != nil {
			return nil, fmt.Errorf("read v2 header: %w", err)
		}
		if b, err = readTZifBlock(r, h2, 8); err != nil {
			return nil, fmt.Errorf("read v2 data block: %w", err)
		}
		if footer, err = readTZifFooter(r); err != nil {
			return nil, fmt.Errorf("read footer: %w", err)
		}
	}
	if len(b.ltts) == 0 {
		return nil, fmt.Errorf("no local time types")
	}

	// Local time before the first transition uses time type 0.
	ts := make([]transition, 0, len(b.times)+1)
	for i, t := range b.times {
		ltt := b.ltts[b.types[i]]
		ts = append(ts, transition{at: t * 1000, offset: int(ltt.Utoff), abbr: b.abbr(ltt)})
	}
	first := transition{offset: int(b.ltts[0].Utoff), abbr: b.abbr(b.ltts[0])}

	if footer != "" {
		rule, err := parsePosixTZ(footer)
		if err != nil {
			return nil, fmt.Errorf("footer %q: %w", footer, err)
		}
		ts = extendTransitions(ts, rule)
	}

	return buildZone(name, first, ts), nil
}

func readTZifFooter(r io.Reader) (string, error) {
	rest, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if len(rest) < 2 || rest[0] != '\n' {
		return "", fmt.Errorf("missing newline")
	}
	end := bytes.IndexByte(rest[1:], '\n')
	if end < 0 {
		return "", fmt.Errorf("unterminated TZ string")
	}
	return string(rest[1 : end+1]), nil
}

// extendTransitions appends the transitions generated by rule after the
// last explicit transition.
func extendTransitions(ts []transition, rule posixTZ) []transition {
	if !rule.hasDST {
		return ts
	}

	after := int64(math.MinInt64)
	year := 1970
	if len(ts) > 0 {
		after = ts[len(ts)-1].at
		year = calmath.Decompose(after).Year
	}
	for ; year <= FooterHorizon; year++ {
		for _, t := range rule.transitions(year) {
			if t.at > after {
				ts = append(ts, t)
			}
		}
	}
	return ts
}

// buildZone turns a list of transitions into segments, merging transitions
// that do not change the offset or abbreviation.
func buildZone(name string, first transition, ts []transition) *Zone {
	z := &Zone{Name: name}
	cur := first
	for _, t := range ts {
		if t.offset == cur.offset && t.abbr == cur.abbr {
			continue
		}
		z.Abbrs = append(z.Abbrs, cur.abbr)
		z.Offsets = append(z.Offsets, -float64(cur.offset)/60)
		z.Untils = append(z.Untils, t.at)
		cur = t
	}
	z.Abbrs = append(z.Abbrs, cur.abbr)
	z.Offsets = append(z.Offsets, -float64(cur.offset)/60)
	z.Untils = append(z.Untils, Forever)
	return z
}

// EncodeTZif writes z as a version 2 TZif file with an empty footer, so the
// last segment extends forever.
func EncodeTZif(w io.Writer, z *Zone) error {
	if err := z.Validate(); err != nil {
		return err
	}

	var (
		ltts   []localTimeType
		design strings.Builder
		index  = map[string]uint8{}
		abbrAt = map[string]uint8{}
		types  = make([]uint8, len(z.Untils))
	)
	for i := range z.Untils {
		utoff := int32(math.Round(-z.Offsets[i] * 60))
		key := fmt.Sprintf("%d|%s", utoff, z.Abbrs[i])
		n, ok := index[key]
		if !ok {
			if len(ltts) == 256 {
				return fmt.Errorf("zone %q: more than 256 local time types", z.Name)
			}
			idx, ok := abbrAt[z.Abbrs[i]]
			if !ok {
				if design.Len() > math.MaxUint8 {
					return fmt.Errorf("zone %q: too many abbreviations", z.Name)
				}
				idx = uint8(design.Len())
				abbrAt[z.Abbrs[i]] = idx
				design.WriteString(z.Abbrs[i])
				design.WriteByte(0)
			}
			n = uint8(len(ltts))
			index[key] = n
			ltts = append(ltts, localTimeType{Utoff: utoff, Idx: idx})
		}
		types[i] = n
	}

	// Transition i starts segment i+1.
	var times []int64
	var ttypes []uint8
	for i := 0; i < len(z.Untils)-1; i++ {
		times = append(times, calmath.FloorDiv(z.Untils[i], 1000))
		ttypes = append(ttypes, types[i+1])
	}

	var v1times []int64
	var v1types []uint8
	for i, t := range times {
		if t >= math.MinInt32 && t <= math.MaxInt32 {
			v1times = append(v1times, t)
			v1types = append(v1types, ttypes[i])
		}
	}

	if err := writeTZifBlock(w, tzifV2, v1times, v1types, ltts, design.String(), 4); err != nil {
		return fmt.Errorf("write v1 data: %w", err)
	}
	if err := writeTZifBlock(w, tzifV2, times, ttypes, ltts, design.String(), 8); err != nil {
		return fmt.Errorf("write v2 data: %w", err)
	}
	_, err := io.WriteString(w, "\n\n")
	return err
}

func writeTZifBlock(w io.Writer, version byte, times []int64, types []uint8, ltts []localTimeType, design string, timeSize int) error {
	h := tzifHeader{
		Version: version,
		Timecnt: uint32(len(times)),
		Typecnt: uint32(len(ltts)),
		Charcnt: uint32(len(design)),
	}
	if _, err := w.Write(tzifMagic[:]); err != nil {
		return err
	}
	if err := binary.Write(w, order, h); err != nil {
		return err
	}
	if timeSize == 4 {
		t32 := make([]int32, len(times))
		for i, t := range times {
			t32[i] = int32(t)
		}
		if err := binary.Write(w, order, t32); err != nil {
			return err
		}
	} else if err := binary.Write(w, order, times); err != nil {
		return err
	}
	if _, err := w.Write(types); err != nil {
		return err
	}
	if err := binary.Write(w, order, ltts); err != nil {
		return err
	}
	_, err := io.WriteString(w, design)
	return err
}

// Location converts z into a *time.Location.
func (z *Zone) Location() (*time.Location, error) {
	var buf bytes.Buffer
	if err := EncodeTZif(&buf, z); err != nil {
		return nil, err
	}
	return time.LoadLocationFromTZData(z.Name, buf.Bytes())
}
