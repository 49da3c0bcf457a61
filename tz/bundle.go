package tz

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/ngrash/go-moment/internal/calmath"
)

// Bundle is the JSON document accepted by moment-timezone's tz.load:
//
//	{
//	  "version": "2024a",
//	  "zones": ["America/New_York|EST EDT|50 40|0101...|...|21e6", ...],
//	  "links": ["America/New_York|US/Eastern", ...],
//	  "countries": ["US|America/New_York America/Chicago ...", ...]
//	}
type Bundle struct {
	Version   string   `json:"version"`
	Zones     []string `json:"zones"`
	Links     []string `json:"links"`
	Countries []string `json:"countries,omitempty"`
}

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// ReadBundle decodes a bundle from r. Zstandard compressed input is
// detected by its magic number and decompressed transparently.
func ReadBundle(r io.Reader) (Bundle, error) {
	var b Bundle

	br := bufio.NewReader(r)
	magic, err := br.Peek(len(zstdMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		return b, fmt.Errorf("reading bundle: %w", err)
	}

	var src io.Reader = br
	if bytes.Equal(magic, zstdMagic) {
		zr, err := zstd.NewReader(br)
		if err != nil {
			return b, fmt.Errorf("opening zstd stream: %w", err)
		}
		defer zr.Close()
		src = zr
	}

	if err := json.NewDecoder(src).Decode(&b); err != nil {
		return b, fmt.Errorf("decoding bundle: %w", err)
	}
	return b, nil
}

// WriteBundle encodes b as JSON. If compress is set the output is a
// zstandard stream.
func WriteBundle(w io.Writer, b Bundle, compress bool) error {
	if !compress {
		return json.NewEncoder(w).Encode(b)
	}
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("opening zstd stream: %w", err)
	}
	if err := json.NewEncoder(zw).Encode(b); err != nil {
		zw.Close()
		return fmt.Errorf("encoding bundle: %w", err)
	}
	return zw.Close()
}

// Validate unpacks every zone of the bundle and checks links and countries
// for well-formedness. All problems are reported.
func (b Bundle) Validate() error {
	var errs []error
	names := make(map[string]bool, len(b.Zones))
	for i, p := range b.Zones {
		z, err := Unpack(p)
		if err != nil {
			errs = append(errs, fmt.Errorf("zone %d: %w", i, err))
			continue
		}
		if err := z.Validate(); err != nil {
			errs = append(errs, err)
		}
		names[normalizeName(z.Name)] = true
	}
	for _, l := range b.Links {
		from, to, ok := strings.Cut(l, "|")
		if !ok {
			errs = append(errs, fmt.Errorf("invalid link %q", l))
			continue
		}
		if !names[normalizeName(from)] && !names[normalizeName(to)] {
			errs = append(errs, fmt.Errorf("link %q: neither side is a zone", l))
		}
	}
	for _, c := range b.Countries {
		code, _, ok := strings.Cut(c, "|")
		if !ok || len(code) != 2 {
			errs = append(errs, fmt.Errorf("invalid country %q", c))
		}
	}
	return errors.Join(errs...)
}

// Filter limits the rule tables of b to the years [start, end]. Segments
// ending before start are dropped and the segment in effect at the end of
// end becomes unbounded. Zones that fail to unpack are returned in err and
// left out of the result.
func Filter(b Bundle, start, end int) (Bundle, error) {
	out := Bundle{Version: b.Version, Links: b.Links, Countries: b.Countries}
	var errs []error
	for _, p := range b.Zones {
		z, err := Unpack(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out.Zones = append(out.Zones, Pack(FilterYears(z, start, end)))
	}
	return out, errors.Join(errs...)
}

// FilterYears returns a copy of z limited to the years [start, end].
func FilterYears(z *Zone, start, end int) *Zone {
	startMs := calmath.Compose(start, 0, 1, 0, 0, 0, 0)
	endMs := calmath.Compose(end+1, 0, 1, 0, 0, 0, 0)

	first := 0
	for first < len(z.Untils)-1 && z.Untils[first] <= startMs {
		first++
	}
	last := first
	for last < len(z.Untils)-1 && z.Untils[last] < endMs {
		last++
	}

	out := &Zone{
		Name:       z.Name,
		Abbrs:      append([]string(nil), z.Abbrs[first:last+1]...),
		Offsets:    append([]float64(nil), z.Offsets[first:last+1]...),
		Untils:     append([]int64(nil), z.Untils[first:last+1]...),
		Population: z.Population,
	}
	out.Untils[len(out.Untils)-1] = Forever
	return out
}
