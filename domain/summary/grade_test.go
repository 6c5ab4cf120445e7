package summary

import "testing"

// TestGrade_BandBoundaries verifies boundary percentages map to exactly the
// documented bands with no gaps or overlaps.
func TestGrade_BandBoundaries(t *testing.T) {
	cases := []struct {
		percentage float64
		letter     string
		label      string
	}{
		{100, "A", "Excellent"},
		{90.0, "A", "Excellent"},
		{89.999, "B", "Good"},
		{80.0, "B", "Good"},
		{79.999, "C", "Average"},
		{70.0, "C", "Average"},
		{69.999, "D", "Pass"},
		{60.0, "D", "Pass"},
		{59.999, "E", "Needs Improvement"},
		{0, "E", "Needs Improvement"},
		{-10, "E", "Needs Improvement"},
		{150, "A", "Excellent"},
	}

	for _, c := range cases {
		letter, label := Grade(c.percentage)
		if letter != c.letter || label != c.label {
			t.Errorf("Grade(%v) = (%s, %s), want (%s, %s)", c.percentage, letter, label, c.letter, c.label)
		}
	}
}
