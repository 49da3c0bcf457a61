package tz

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	var r Registry
	err := r.Load(Bundle{
		Version: "2021test",
		Zones:   []string{packedNewYork, packedVilnius, packedUTC},
		Links: []string{
			// Links are stored in both directions; the later pair wins
			// for US/Test_Eastern.
			"US/Test_Chained|US/Test_Eastern",
			"America/Test_York|US/Test_Eastern",
			"Etc/UTC|UTC",
		},
		Countries: []string{
			"US|America/Test_York America/Missing",
			"lt|Europe/Test_Vilnius",
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return &r
}

func TestRegistryGet(t *testing.T) {
	r := testRegistry(t)
	cases := []struct {
		name     string
		wantName string
		wantOK   bool
	}{
		{"America/Test_York", "America/Test_York", true},
		{"america/test_york", "America/Test_York", true},
		{"AMERICA_TEST_YORK", "America/Test_York", true},
		{"US/Test_Eastern", "US/Test_Eastern", true},
		{"UTC", "UTC", true},
		{"Mars/Olympus_Mons", "", false},
		// Links resolve a single level only.
		{"US/Test_Chained", "", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			z, ok := r.Get(c.name)
			if ok != c.wantOK {
				t.Fatalf("Get(%q) ok = %v, want %v", c.name, ok, c.wantOK)
			}
			if ok && z.Name != c.wantName {
				t.Errorf("Get(%q).Name = %q, want %q", c.name, z.Name, c.wantName)
			}
		})
	}
}

func TestRegistryLinkSharesRules(t *testing.T) {
	r := testRegistry(t)
	zone, _ := r.Get("America/Test_York")
	link, _ := r.Get("US/Test_Eastern")
	if diff := cmp.Diff(zone.Segments(), link.Segments()); diff != "" {
		t.Errorf("link segments mismatch (-zone +link):\n%s", diff)
	}
}

func TestRegistryResolveOffset(t *testing.T) {
	r := testRegistry(t)
	cases := []struct {
		zone   string
		ms     int64
		want   float64
		wantOK bool
	}{
		{"America/Test_York", nySpring - 1, -300, true},
		{"America/Test_York", nySpring, -240, true},
		{"US/Test_Eastern", nySpring, -240, true},
		{"Europe/Test_Vilnius", 1616893200000, 180, true},
		{"Europe/Test_Vilnius", 1616893200000 - 1, 120, true},
		{"Nowhere/Special", 0, 0, false},
	}
	for _, c := range cases {
		got, ok := r.ResolveOffset(c.zone, c.ms)
		if ok != c.wantOK || got != c.want {
			t.Errorf("ResolveOffset(%q, %d) = (%v, %v), want (%v, %v)", c.zone, c.ms, got, ok, c.want, c.wantOK)
		}
	}
}

func TestRegistryListings(t *testing.T) {
	r := testRegistry(t)

	wantNames := []string{
		"America/Test_York",
		"Etc/UTC",
		"Europe/Test_Vilnius",
		"US/Test_Chained",
		"US/Test_Eastern",
		"UTC",
	}
	if diff := cmp.Diff(wantNames, r.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"LT", "US"}, r.Countries()); diff != "" {
		t.Errorf("Countries() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Europe/Test_Vilnius"}, r.ZonesForCountry("lt")); diff != "" {
		t.Errorf("ZonesForCountry(lt) mismatch (-want +got):\n%s", diff)
	}
	if got := r.ZonesForCountry("XX"); got != nil {
		t.Errorf("ZonesForCountry(XX) = %v, want nil", got)
	}

	wantOffsets := []ZoneOffset{{Name: "America/Test_York", Offset: 240}}
	if diff := cmp.Diff(wantOffsets, r.ZoneOffsetsForCountry("US", nySpring)); diff != "" {
		t.Errorf("ZoneOffsetsForCountry(US) mismatch (-want +got):\n%s", diff)
	}
	if got := r.DataVersion(); got != "2021test" {
		t.Errorf("DataVersion() = %q", got)
	}
}

func TestRegistryLoadErrors(t *testing.T) {
	var r Registry
	err := r.Load(Bundle{
		Zones:     []string{"|no name", packedUTC},
		Links:     []string{"nopipe"},
		Countries: []string{"|"},
	})
	if err == nil {
		t.Fatal("Load: expected error")
	}
	if _, ok := r.Get("Etc/UTC"); !ok {
		t.Error("valid zone was not loaded next to broken ones")
	}
}

func TestRegistryBrokenZone(t *testing.T) {
	var r Registry
	if err := r.Add("Broken/Zone|A|0|01||"); err != nil {
		t.Fatal(err)
	}
	if _, ok := r.Get("Broken/Zone"); ok {
		t.Error("Get returned a zone that fails to unpack")
	}
}
