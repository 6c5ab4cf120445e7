package summary

// GradeBand maps a percentage floor to a letter grade and qualitative label.
type GradeBand struct {
	Floor  float64
	Letter string
	Label  string
}

// gradeBands are checked top-down; the final band has no floor so every
// percentage maps to exactly one band with no gaps at the boundaries.
var gradeBands = []GradeBand{
	{Floor: 90, Letter: "A", Label: "Excellent"},
	{Floor: 80, Letter: "B", Label: "Good"},
	{Floor: 70, Letter: "C", Label: "Average"},
	{Floor: 60, Letter: "D", Label: "Pass"},
}

// Grade maps a score percentage to its letter grade and label. Total over all
// real inputs: anything below the lowest floor falls to the E band.
func Grade(percentage float64) (letter, label string) {
	for _, band := range gradeBands {
		if percentage >= band.Floor {
			return band.Letter, band.Label
		}
	}
	return "E", "Needs Improvement"
}
