package zonesrc

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ngrash/go-moment/tz"
)

const packedNewYork = "America/Test_York|EST EDT|50 40|010|24E70 1zb0|21e6"

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func writeFile(t *testing.T, path string, write func(io.Writer) error) string {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := write(f); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOpen(t *testing.T) {
	want, err := tz.Unpack(packedNewYork)
	if err != nil {
		t.Fatal(err)
	}

	bundle := writeFile(t, filepath.Join(t.TempDir(), "zones.json.zst"), func(w io.Writer) error {
		return tz.WriteBundle(w, tz.Bundle{
			Version: "2021a",
			Zones:   []string{packedNewYork},
			Links:   []string{"America/Test_York|US/Test_Eastern"},
		}, true)
	})
	dir := filepath.Join(t.TempDir(), "zoneinfo", "America")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	tzif := writeFile(t, filepath.Join(dir, "Test_York"), func(w io.Writer) error { return tz.EncodeTZif(w, want) })

	cases := []struct {
		src  string
		name string
	}{
		{bundle + "#America/Test_York", "America/Test_York"},
		{bundle + "#us/test_eastern", "US/Test_Eastern"},
		{tzif, "America/Test_York"},
	}
	for _, tc := range cases {
		z, err := Open(tc.src, discard)
		if err != nil {
			t.Errorf("Open(%s): %v", tc.src, err)
			continue
		}
		if z.Name != tc.name {
			t.Errorf("Open(%s).Name = %q, want %q", tc.src, z.Name, tc.name)
		}
		if diff := cmp.Diff(want.Segments(), z.Segments()); diff != "" {
			t.Errorf("Open(%s) segments mismatch (-want +got):\n%s", tc.src, diff)
		}
	}

	if _, err := Open(bundle+"#Europe/Nowhere", discard); err == nil {
		t.Error("Open(unknown zone) should fail")
	}
	if _, err := Open(filepath.Join(t.TempDir(), "missing"), discard); err == nil {
		t.Error("Open(missing file) should fail")
	}
}

func TestZoneName(t *testing.T) {
	cases := []struct {
		path, want string
	}{
		{"/usr/share/zoneinfo/Europe/Vilnius", "Europe/Vilnius"},
		{"zoneinfo/UTC", "UTC"},
		{"testdata/Vilnius", "Vilnius"},
	}
	for _, tc := range cases {
		if got := ZoneName(tc.path); got != tc.want {
			t.Errorf("ZoneName(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}
