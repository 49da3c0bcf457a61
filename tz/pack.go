package tz

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// The packed format is
//
//	name|abbrs|offsets|indices|untils|population
//
// abbrs and offsets are space separated lists of the distinct
// abbreviations and offsets of the zone, indices holds one base-60 digit per
// segment selecting an entry of both lists, and untils holds the
// space separated base-60 minute deltas between consecutive transitions. The
// final segment has no until.

const base60 = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWX"

func charCodeToInt(c byte) (int, error) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), nil
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10, nil
	case c >= 'A' && c <= 'X':
		return int(c-'A') + 36, nil
	}
	return 0, fmt.Errorf("invalid base-60 digit %q", c)
}

// UnpackBase60 decodes a base-60 number with optional sign and fraction,
// such as "-4Q.u".
func UnpackBase60(s string) (float64, error) {
	sign := 1.0
	if strings.HasPrefix(s, "-") {
		sign = -1
		s = s[1:]
	}
	whole, fraction, _ := strings.Cut(s, ".")

	var out float64
	for i := 0; i < len(whole); i++ {
		n, err := charCodeToInt(whole[i])
		if err != nil {
			return 0, err
		}
		out = 60*out + float64(n)
	}
	multiplier := 1.0
	for i := 0; i < len(fraction); i++ {
		n, err := charCodeToInt(fraction[i])
		if err != nil {
			return 0, err
		}
		multiplier /= 60
		out += float64(n) * multiplier
	}
	return out * sign, nil
}

// PackBase60 encodes number in base 60 with at most precision fractional
// digits.
func PackBase60(number float64, precision int) string {
	const epsilon = 0.000001

	absolute := math.Abs(number)
	whole := int64(math.Floor(absolute))

	var fraction strings.Builder
	if precision > 10 {
		precision = 10
	}
	buffer := "."
	rest := absolute - float64(whole)
	for ; precision > 0; precision-- {
		rest *= 60
		current := int(math.Floor(rest + epsilon))
		if current > 59 {
			current = 59
		}
		buffer += string(base60[current])
		rest -= float64(current)
		if current != 0 {
			fraction.WriteString(buffer)
			buffer = ""
		}
	}

	var out string
	for whole > 0 {
		out = string(base60[whole%60]) + out
		whole /= 60
	}
	if number < 0 {
		out = "-" + out
	}
	frac := fraction.String()
	switch {
	case out != "" && frac != "":
		return out + frac
	case out == "-":
		return "0"
	case out != "":
		return out
	case frac != "":
		return frac
	}
	return "0"
}

// Unpack decodes a packed zone string.
func Unpack(packed string) (*Zone, error) {
	data := strings.Split(packed, "|")
	if len(data) < 5 {
		return nil, fmt.Errorf("unpack %q: want at least 5 fields, got %d", truncate(packed), len(data))
	}

	name := data[0]
	abbrs := strings.Fields(data[1])
	offsetList := strings.Fields(data[2])
	indices := data[3]

	offsets := make([]float64, len(offsetList))
	for i, s := range offsetList {
		v, err := UnpackBase60(s)
		if err != nil {
			return nil, fmt.Errorf("unpack %s: offset %d: %w", name, i, err)
		}
		offsets[i] = v
	}

	z := &Zone{
		Name:    name,
		Abbrs:   make([]string, len(indices)),
		Offsets: make([]float64, len(indices)),
		Untils:  make([]int64, len(indices)),
	}
	var errs []error
	for i := 0; i < len(indices); i++ {
		idx, err := charCodeToInt(indices[i])
		if err != nil {
			errs = append(errs, fmt.Errorf("index %d: %w", i, err))
			continue
		}
		if idx >= len(offsets) || idx >= len(abbrs) {
			errs = append(errs, fmt.Errorf("index %d: %d out of range (abbrs = %d, offsets = %d)", i, idx, len(abbrs), len(offsets)))
			continue
		}
		z.Abbrs[i] = abbrs[idx]
		z.Offsets[i] = offsets[idx]
	}

	// Untils are minute deltas; accumulate them into epoch milliseconds.
	var last float64
	untils := strings.Fields(data[4])
	if want := len(z.Untils) - 1; want > 0 && len(untils) < want {
		errs = append(errs, fmt.Errorf("fewer untils than segments: %d < %d", len(untils), want))
	}
	for i, s := range untils {
		if i >= len(z.Untils)-1 {
			errs = append(errs, fmt.Errorf("more untils than segments: %d >= %d", i+1, len(z.Untils)))
			break
		}
		v, err := UnpackBase60(s)
		if err != nil {
			errs = append(errs, fmt.Errorf("until %d: %w", i, err))
			continue
		}
		last = math.Round(last + v*60000)
		z.Untils[i] = int64(last)
	}
	if n := len(z.Untils); n > 0 {
		z.Untils[n-1] = Forever
	}

	if len(data) > 5 && data[5] != "" {
		p, err := strconv.ParseFloat(data[5], 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("population: %w", err))
		}
		z.Population = int64(p)
	}

	if len(errs) == 0 {
		errs = append(errs, z.Validate())
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("unpack %s: %w", name, err)
	}
	return z, nil
}

// Pack encodes z in the packed format read by Unpack.
func Pack(z *Zone) string {
	var (
		abbrs   []string
		offsets []string
		indices strings.Builder
		index   = map[string]int{}
	)
	for i := range z.Abbrs {
		key := z.Abbrs[i] + "|" + strconv.FormatFloat(z.Offsets[i], 'f', -1, 64)
		n, ok := index[key]
		if !ok {
			n = len(abbrs)
			index[key] = n
			abbrs = append(abbrs, z.Abbrs[i])
			offsets = append(offsets, PackBase60(math.Round(z.Offsets[i]*60)/60, 1))
		}
		indices.WriteString(PackBase60(float64(n), 0))
	}

	untils := make([]string, 0, len(z.Untils))
	var last int64
	for i := 0; i < len(z.Untils)-1; i++ {
		delta := math.Round(float64(z.Untils[i]-last)/1000) / 60
		untils = append(untils, PackBase60(delta, 1))
		last = z.Untils[i]
	}

	return strings.Join([]string{
		z.Name,
		strings.Join(abbrs, " "),
		strings.Join(offsets, " "),
		indices.String(),
		strings.Join(untils, " "),
		packPopulation(z.Population),
	}, "|")
}

func packPopulation(n int64) string {
	if n <= 0 {
		return ""
	}
	if n < 1000 {
		return strconv.FormatInt(n, 10)
	}
	exponent := len(strconv.FormatInt(n, 10)) - 2
	precision := math.Round(float64(n) / math.Pow10(exponent))
	return fmt.Sprintf("%de%d", int64(precision), exponent)
}

func truncate(s string) string {
	if len(s) > 32 {
		return s[:32] + "..."
	}
	return s
}
