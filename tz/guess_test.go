package tz

import (
	"testing"
	"time"
)

func TestGuessFromLocation(t *testing.T) {
	r := testRegistry(t)
	now := func() time.Time { return time.Date(2021, time.June, 1, 0, 0, 0, 0, time.UTC) }

	// The host reports a zone name the registry knows.
	ny, _ := r.Get("America/Test_York")
	loc, err := ny.Location()
	if err != nil {
		t.Fatal(err)
	}
	if got := r.Guess(LocationEnvironment{Location: loc, Now: now}, true); got != "America/Test_York" {
		t.Errorf("Guess(named) = %q, want %q", got, "America/Test_York")
	}

	// The host only exposes its rules.
	host, err := ny.renamed("Host").Location()
	if err != nil {
		t.Fatal(err)
	}
	if got := r.Guess(LocationEnvironment{Location: host, Now: now}, true); got != "America/Test_York" {
		t.Errorf("Guess(rules) = %q, want %q", got, "America/Test_York")
	}

	vilnius, _ := r.Get("Europe/Test_Vilnius")
	host, err = vilnius.renamed("Host").Location()
	if err != nil {
		t.Fatal(err)
	}
	if got := r.Guess(LocationEnvironment{Location: host, Now: now}, true); got != "Europe/Test_Vilnius" {
		t.Errorf("Guess(rules) = %q, want %q", got, "Europe/Test_Vilnius")
	}
}

func TestGuessCache(t *testing.T) {
	r := testRegistry(t)
	utc := FixedEnvironment{Now: 1622505600000}
	if got := r.Guess(utc, false); got != "Etc/UTC" {
		t.Fatalf("Guess = %q, want Etc/UTC", got)
	}

	// A cached guess survives a different environment until ignoreCache.
	est := FixedEnvironment{Abbr: "EST", Offset: 300, Now: 1622505600000}
	if got := r.Guess(est, false); got != "Etc/UTC" {
		t.Errorf("Guess(cached) = %q, want Etc/UTC", got)
	}
	if got := r.Guess(est, true); got != "America/Test_York" {
		t.Errorf("Guess(ignoreCache) = %q, want America/Test_York", got)
	}
}

func TestGuessTieBreak(t *testing.T) {
	cases := []struct {
		name  string
		zones []string
		want  string
	}{
		{
			name: "larger population wins",
			zones: []string{
				"Test/Small|XST|-30|0||1e3",
				"Test/Large|XST|-30|0||5e6",
			},
			want: "Test/Large",
		},
		{
			name: "last name wins",
			zones: []string{
				"Test/Alpha|XST|-30|0||",
				"Test/Beta|XST|-30|0||",
			},
			want: "Test/Beta",
		},
		{
			name: "abbreviation match beats population",
			zones: []string{
				"Test/Other|OST|-30|0||9e6",
				"Test/Exact|XST|-30|0||",
			},
			want: "Test/Exact",
		},
		{
			name:  "no candidate",
			zones: []string{"Test/Elsewhere|YST|-60|0||"},
			want:  "",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var r Registry
			if err := r.Add(c.zones...); err != nil {
				t.Fatal(err)
			}
			env := FixedEnvironment{Abbr: "XST", Offset: -180, Now: 1622505600000}
			if got := r.Guess(env, false); got != c.want {
				t.Errorf("Guess() = %q, want %q", got, c.want)
			}
		})
	}
}

func TestCleanAbbr(t *testing.T) {
	cases := map[string]string{
		"EST":   "EST",
		"GMT":   "",
		"+03":   "",
		"CEST":  "CEST",
		"LMT":   "LMT",
		"e.s.t": "",
	}
	for in, want := range cases {
		if got := cleanAbbr(in); got != want {
			t.Errorf("cleanAbbr(%q) = %q, want %q", in, got, want)
		}
	}
}
