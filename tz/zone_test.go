package tz

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ngrash/go-moment/internal/calmath"
)

// Fixtures cover 2021 only: New York switched to EDT on 2021-03-14T07:00Z
// and back to EST on 2021-11-07T06:00Z, Vilnius switched to EEST on
// 2021-03-28T01:00Z and back on 2021-10-31T01:00Z.
const (
	packedNewYork = "America/Test_York|EST EDT|50 40|010|24E70 1zb0|21e6"
	packedVilnius = "Europe/Test_Vilnius|EET EEST|-20 -30|010|24JB0 1qM0|54e4"
	packedUTC     = "Etc/UTC|UTC|0|0||"

	nySpring int64 = 1615705200000
	nyFall   int64 = 1636264800000
)

func mustUnpack(t *testing.T, packed string) *Zone {
	t.Helper()
	z, err := Unpack(packed)
	if err != nil {
		t.Fatal(err)
	}
	return z
}

func TestZoneOffsetAtTransition(t *testing.T) {
	z := mustUnpack(t, packedNewYork)
	cases := []struct {
		name string
		ms   int64
		want float64
		abbr string
	}{
		{"before spring forward", nySpring - 1, -300, "EST"},
		{"at spring forward", nySpring, -240, "EDT"},
		{"before fall back", nyFall - 1, -240, "EDT"},
		{"at fall back", nyFall, -300, "EST"},
		{"far past", -1 << 50, -300, "EST"},
		{"far future", 1 << 50, -300, "EST"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := z.UTCOffset(c.ms); got != c.want {
				t.Errorf("UTCOffset(%d) = %v, want %v", c.ms, got, c.want)
			}
			if got := z.Abbr(c.ms); got != c.abbr {
				t.Errorf("Abbr(%d) = %q, want %q", c.ms, got, c.abbr)
			}
		})
	}
}

func TestZoneParse(t *testing.T) {
	z := mustUnpack(t, packedNewYork)
	local := func(month, day, hour, min int) int64 {
		return calmath.Compose(2021, month, day, hour, min, 0, 0)
	}
	utc := func(month, day, hour, min int) int64 {
		return calmath.Compose(2021, month, day, hour, min, 0, 0)
	}

	cases := []struct {
		name  string
		local int64
		flags ParseFlags
		want  int64
	}{
		{"winter", local(0, 15, 12, 0), DefaultParseFlags, utc(0, 15, 17, 0)},
		{"summer", local(6, 15, 12, 0), DefaultParseFlags, utc(6, 15, 16, 0)},
		{"gap moves forward", local(2, 14, 2, 30), DefaultParseFlags, utc(2, 14, 7, 30)},
		{"gap moves back", local(2, 14, 2, 30), ParseFlags{}, utc(2, 14, 6, 30)},
		{"overlap keeps first", local(10, 7, 1, 30), DefaultParseFlags, utc(10, 7, 5, 30)},
		{"overlap moves forward", local(10, 7, 1, 30), ParseFlags{MoveAmbiguousForward: true, MoveInvalidForward: true}, utc(10, 7, 6, 30)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := z.Instant(c.local, c.flags); got != c.want {
				t.Errorf("Instant(%d, %+v) = %d, want %d", c.local, c.flags, got, c.want)
			}
		})
	}
}

func TestZoneValidate(t *testing.T) {
	cases := []struct {
		name    string
		zone    Zone
		wantErr bool
	}{
		{"valid", Zone{Name: "A", Abbrs: []string{"A", "B"}, Offsets: []float64{0, 60}, Untils: []int64{10, Forever}}, false},
		{"empty", Zone{Name: "A"}, true},
		{"not increasing", Zone{Name: "A", Abbrs: []string{"A", "B", "A"}, Offsets: []float64{0, 60, 0}, Untils: []int64{10, 10, Forever}}, true},
		{"bounded", Zone{Name: "A", Abbrs: []string{"A"}, Offsets: []float64{0}, Untils: []int64{10}}, true},
		{"inconsistent", Zone{Name: "A", Abbrs: []string{"A"}, Offsets: []float64{0, 1}, Untils: []int64{Forever}}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.zone.Validate()
			if (err != nil) != c.wantErr {
				t.Errorf("Validate() = %v, want error: %v", err, c.wantErr)
			}
		})
	}
}

func TestSegments(t *testing.T) {
	z := mustUnpack(t, packedVilnius)
	want := []Segment{
		{Until: 1616893200000, Offset: -120, Abbr: "EET"},
		{Until: 1635642000000, Offset: -180, Abbr: "EEST"},
		{Until: Forever, Offset: -120, Abbr: "EET"},
	}
	if diff := cmp.Diff(want, z.Segments()); diff != "" {
		t.Errorf("Segments() mismatch (-want +got):\n%s", diff)
	}
}
