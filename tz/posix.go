package tz

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ngrash/go-moment/internal/calmath"
)

// posixTZ is a parsed POSIX TZ string as found in the footer of TZif v2+
// files, for example "CET-1CEST,M3.5.0,M10.5.0/3".
type posixTZ struct {
	std, dst       string
	stdOff, dstOff int // seconds east of UTC
	hasDST         bool
	start, end     posixDate
}

// posixDate is one of the three POSIX rule forms:
//
//	Jn      Julian day n (1-365), February 29 is never counted
//	n       zero-based day of year (0-365), February 29 is counted
//	Mm.w.d  day d (0 = Sunday) of week w (1-5, 5 = last) of month m
type posixDate struct {
	kind    byte // 'J', 'n' or 'M'
	n, m, w int
	d       int
	time    int // seconds after local midnight, may be negative or > 24h
}

func parsePosixTZ(s string) (posixTZ, error) {
	var (
		tz  posixTZ
		err error
	)
	p := &posixParser{s: s}

	if tz.std, err = p.name(); err != nil {
		return tz, fmt.Errorf("std name: %w", err)
	}
	off, err := p.offset()
	if err != nil {
		return tz, fmt.Errorf("std offset: %w", err)
	}
	tz.stdOff = -off
	if p.done() {
		return tz, nil
	}

	tz.hasDST = true
	if tz.dst, err = p.name(); err != nil {
		return tz, fmt.Errorf("dst name: %w", err)
	}
	tz.dstOff = tz.stdOff + 3600
	if !p.done() && p.peek() != ',' {
		off, err := p.offset()
		if err != nil {
			return tz, fmt.Errorf("dst offset: %w", err)
		}
		tz.dstOff = -off
	}

	if p.done() {
		// Without rules, assume the current US rules like most TZ readers.
		tz.start = posixDate{kind: 'M', m: 3, w: 2, d: 0, time: 7200}
		tz.end = posixDate{kind: 'M', m: 11, w: 1, d: 0, time: 7200}
		return tz, nil
	}
	if !p.consume(',') {
		return tz, fmt.Errorf("unexpected %q at %d", p.peek(), p.i)
	}
	if tz.start, err = p.date(); err != nil {
		return tz, fmt.Errorf("start rule: %w", err)
	}
	if !p.consume(',') {
		return tz, fmt.Errorf("missing end rule")
	}
	if tz.end, err = p.date(); err != nil {
		return tz, fmt.Errorf("end rule: %w", err)
	}
	if !p.done() {
		return tz, fmt.Errorf("trailing data %q", p.s[p.i:])
	}
	return tz, nil
}

type posixParser struct {
	s string
	i int
}

func (p *posixParser) done() bool { return p.i >= len(p.s) }

func (p *posixParser) peek() byte {
	if p.done() {
		return 0
	}
	return p.s[p.i]
}

func (p *posixParser) consume(c byte) bool {
	if p.peek() == c {
		p.i++
		return true
	}
	return false
}

func (p *posixParser) name() (string, error) {
	if p.consume('<') {
		end := strings.IndexByte(p.s[p.i:], '>')
		if end < 0 {
			return "", fmt.Errorf("unterminated quoted name")
		}
		name := p.s[p.i : p.i+end]
		p.i += end + 1
		return name, nil
	}
	start := p.i
	for !p.done() && (p.peek() >= 'A' && p.peek() <= 'Z' || p.peek() >= 'a' && p.peek() <= 'z') {
		p.i++
	}
	if p.i-start < 3 {
		return "", fmt.Errorf("name too short at %d", start)
	}
	return p.s[start:p.i], nil
}

func (p *posixParser) number() (int, error) {
	start := p.i
	for !p.done() && p.peek() >= '0' && p.peek() <= '9' {
		p.i++
	}
	if start == p.i {
		return 0, fmt.Errorf("expected number at %d", start)
	}
	return strconv.Atoi(p.s[start:p.i])
}

// offset parses [+-]hh[:mm[:ss]] and returns seconds.
func (p *posixParser) offset() (int, error) {
	sign := 1
	if p.consume('-') {
		sign = -1
	} else {
		p.consume('+')
	}
	secs := 0
	for i, unit := range []int{3600, 60, 1} {
		if i > 0 && !p.consume(':') {
			break
		}
		n, err := p.number()
		if err != nil {
			return 0, err
		}
		secs += n * unit
	}
	return sign * secs, nil
}

func (p *posixParser) date() (posixDate, error) {
	var (
		d   posixDate
		err error
	)
	switch {
	case p.consume('J'):
		d.kind = 'J'
		d.n, err = p.number()
	case p.consume('M'):
		d.kind = 'M'
		if d.m, err = p.number(); err != nil {
			return d, err
		}
		if !p.consume('.') {
			return d, fmt.Errorf("expected '.' at %d", p.i)
		}
		if d.w, err = p.number(); err != nil {
			return d, err
		}
		if !p.consume('.') {
			return d, fmt.Errorf("expected '.' at %d", p.i)
		}
		d.d, err = p.number()
	default:
		d.kind = 'n'
		d.n, err = p.number()
	}
	if err != nil {
		return d, err
	}

	d.time = 7200
	if p.consume('/') {
		if d.time, err = p.offset(); err != nil {
			return d, err
		}
	}
	return d, nil
}

// dayOfYear returns the zero-based day of year the rule selects in year.
func (d posixDate) dayOfYear(year int) int {
	switch d.kind {
	case 'J':
		doy := d.n - 1
		if calmath.IsLeapYear(year) && d.n >= 60 {
			doy++
		}
		return doy
	case 'M':
		day := calmath.NthWeekdayOfMonth(year, d.m-1, d.w, d.d)
		return int(calmath.DaysFromCivil(year, d.m-1, day) - calmath.DaysFromCivil(year, 0, 1))
	}
	return d.n
}

type transition struct {
	at     int64 // ms
	offset int   // seconds east
	abbr   string
}

// transitions returns the DST transitions of year in chronological order.
func (tz posixTZ) transitions(year int) []transition {
	if !tz.hasDST {
		return nil
	}
	jan1 := calmath.DaysFromCivil(year, 0, 1) * calmath.MillisPerDay
	start := jan1 + int64(tz.start.dayOfYear(year))*calmath.MillisPerDay + int64(tz.start.time-tz.stdOff)*1000
	end := jan1 + int64(tz.end.dayOfYear(year))*calmath.MillisPerDay + int64(tz.end.time-tz.dstOff)*1000
	ts := []transition{
		{at: start, offset: tz.dstOff, abbr: tz.dst},
		{at: end, offset: tz.stdOff, abbr: tz.std},
	}
	sort.Slice(ts, func(i, j int) bool { return ts[i].at < ts[j].at })
	return ts
}
