package main

import "testing"

func TestFormatOffset(t *testing.T) {
	cases := []struct {
		minutes float64
		want    string
	}{
		{0, "+00:00"},
		{120, "+02:00"},
		{-300, "-05:00"},
		{330, "+05:30"},
		{-9.5, "-00:10"},
	}
	for _, tc := range cases {
		if got := formatOffset(tc.minutes); got != tc.want {
			t.Errorf("formatOffset(%v) = %q, want %q", tc.minutes, got, tc.want)
		}
	}
}
