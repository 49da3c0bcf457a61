package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ngrash/go-moment/moment"
	"github.com/ngrash/go-moment/tz"
)

func writeBundle(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "zones.json")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	err = tz.WriteBundle(f, tz.Bundle{
		Version:   "2021a",
		Zones:     []string{"America/Test_York|EST EDT|50 40|010|24E70 1zb0|21e6"},
		Links:     []string{"America/Test_York|US/Test_Eastern"},
		Countries: []string{"US|America/Test_York"},
	}, false)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(args ...string) (string, error) {
	o := &options{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		clock:    func() time.Time { return time.Date(2021, time.June, 15, 12, 30, 0, 0, time.UTC) },
		location: time.UTC,
	}
	var out bytes.Buffer
	root := newRootCmd(o)
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	bundle := writeBundle(t)
	cases := []struct {
		name string
		args []string
		want string
	}{
		{"format", []string{"format", "2021-02-03T14:05:09Z", "-p", "dddd, MMMM Do YYYY"}, "Wednesday, February 3rd 2021\n"},
		{"format locale", []string{"format", "2021-02-03T14:05:09Z", "-p", "LL", "-l", "lt"}, "2021 m. vasario 3 d.\n"},
		{"format now", []string{"format"}, "2021-06-15T12:30:00+00:00\n"},
		{"format iso", []string{"format", "2021-02-03T14:05:09.045+02:00", "--iso"}, "2021-02-03T12:05:09.045Z\n"},
		{"format zone", []string{"format", "2021-06-15T12:30:00Z", "-b", bundle, "-z", "America/Test_York", "-p", "YYYY-MM-DD HH:mm z"}, "2021-06-15 08:30 EDT\n"},
		{"parse format", []string{"parse", "03/02/2021", "-f", "DD/MM/YYYY"}, `moment("2021-02-03T00:00:00.000")` + "\n"},
		{"parse keep offset", []string{"parse", "2021-02-03T04:05:06+02:00", "--keep-offset"}, `moment.parseZone("2021-02-03T04:05:06.000+02:00")` + "\n"},
		{"parse locale", []string{"parse", "3 vasario 2021", "-f", "D MMMM YYYY", "-l", "lt"}, `moment("2021-02-03T00:00:00.000")` + "\n"},
		{"parse utc", []string{"parse", "2021-02-03 04:05", "-u"}, `moment.utc("2021-02-03T04:05:00.000+00:00")` + "\n"},
		{"humanize", []string{"humanize", "P3D", "--suffix"}, "in 3 days\n"},
		{"humanize locale", []string{"humanize", "P3D", "-l", "lt"}, "3 dienos\n"},
		{"humanize thresholds", []string{"humanize", "P14D", "-t", "d=7,w=4"}, "2 weeks\n"},
		{"from now", []string{"from", "2021-06-18T12:30:00Z"}, "in 3 days\n"},
		{"from reference", []string{"from", "2021-06-12T12:30:00Z", "2021-06-15T12:30:00Z", "--no-suffix"}, "3 days\n"},
		{"calendar", []string{"calendar", "2021-06-16T09:00:00Z"}, "Tomorrow at 9:00 AM\n"},
		{"calendar override", []string{"calendar", "2021-06-15T09:00:00Z", "--as", "sameDay=[Earlier today]"}, "Earlier today\n"},
		{"tz list", []string{"tz", "list", "-b", bundle}, "America/Test_York\nUS/Test_Eastern\n"},
		{"tz country", []string{"tz", "country", "us", "-b", bundle}, "America/Test_York  -04:00 EDT\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := execute(tc.args...)
			if err != nil {
				t.Fatalf("moment %s: %v", strings.Join(tc.args, " "), err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("moment %s mismatch (-want +got):\n%s", strings.Join(tc.args, " "), diff)
			}
		})
	}
}

func TestCommandErrors(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want string
	}{
		{"overflow", []string{"parse", "2021-02-30"}, "date out of range"},
		{"no match", []string{"parse", "soon", "-s"}, `invalid date "soon"`},
		{"bad date", []string{"format", "not a date"}, `invalid date "not a date"`},
		{"unknown zone", []string{"format", "-z", "Nowhere/Zone"}, `unknown zone "Nowhere/Zone"`},
		{"unknown threshold", []string{"humanize", "P1D", "-t", "x=1"}, `unknown threshold "x"`},
		{"missing bundle", []string{"tz", "list", "-b", filepath.Join(t.TempDir(), "missing.json")}, "missing.json"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := execute(tc.args...)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("moment %s: error %v, want it to contain %q", strings.Join(tc.args, " "), err, tc.want)
			}
		})
	}
}

func TestParseThresholds(t *testing.T) {
	th, err := parseThresholds(map[string]string{"d": "7", "w": "4", "M": "10"})
	if err != nil {
		t.Fatal(err)
	}
	want := moment.DefaultThresholds()
	want.D, want.W, want.Mo = 7, 4, 10
	if diff := cmp.Diff(want, th); diff != "" {
		t.Errorf("parseThresholds mismatch (-want +got):\n%s", diff)
	}
	if _, err := parseThresholds(map[string]string{"h": "soon"}); err == nil {
		t.Error("parseThresholds(non-number) should fail")
	}
}
