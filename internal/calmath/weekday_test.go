package calmath

import "testing"

func TestNthWeekdayOfMonth(t *testing.T) {
	cases := []struct {
		name                    string
		year, month, n, weekday int
		want                    int
	}{
		{"second Sunday of March 2021", 2021, 2, 2, 0, 14},
		{"first Sunday of November 2021", 2021, 10, 1, 0, 7},
		{"last Sunday of March 2021", 2021, 2, 5, 0, 28},
		{"last Sunday of October 2021", 2021, 9, 5, 0, 31},
		// Leap day
		{"last Saturday of February 2020", 2020, 1, 5, 6, 29},
		{"fourth Saturday of February 2020", 2020, 1, 4, 6, 22},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := NthWeekdayOfMonth(c.year, c.month, c.n, c.weekday); got != c.want {
				t.Errorf("NthWeekdayOfMonth(%d, %d, %d, %d) = %d, want %d", c.year, c.month, c.n, c.weekday, got, c.want)
			}
		})
	}
}

func TestLastWeekdayOfMonth(t *testing.T) {
	if got := LastWeekdayOfMonth(2021, 2, 0); got != 28 {
		t.Errorf("LastWeekdayOfMonth(2021, March, Sunday) = %d, want 28", got)
	}
	if got := LastWeekdayOfMonth(2020, 1, 6); got != 29 {
		t.Errorf("LastWeekdayOfMonth(2020, February, Saturday) = %d, want 29", got)
	}
}
