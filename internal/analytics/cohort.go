package analytics

import (
	"fmt"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// CohortStats summarizes the score-percentage distribution of one cohort
// (all stored submissions of an organization type).
type CohortStats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	P25    float64 `json:"p25"`
	P75    float64 `json:"p75"`
}

// PercentileRank places one submission inside its cohort, both empirically
// and under a normal approximation of the cohort distribution.
type PercentileRank struct {
	Empirical    float64 `json:"empirical"`
	NormalApprox float64 `json:"normal_approx"`
}

// CohortAnalyzer computes descriptive statistics over cohort score
// percentages for report comparability sections.
type CohortAnalyzer struct{}

// NewCohortAnalyzer creates a new cohort analyzer
func NewCohortAnalyzer() *CohortAnalyzer {
	return &CohortAnalyzer{}
}

// Summarize computes descriptive statistics for a cohort.
func (a *CohortAnalyzer) Summarize(percentages []float64) (CohortStats, error) {
	cs := CohortStats{Count: len(percentages)}
	if len(percentages) == 0 {
		return cs, fmt.Errorf("cohort is empty")
	}

	var err error
	if cs.Mean, err = stats.Mean(percentages); err != nil {
		return cs, err
	}
	if cs.Median, err = stats.Median(percentages); err != nil {
		return cs, err
	}
	if cs.StdDev, err = stats.StandardDeviation(percentages); err != nil {
		return cs, err
	}
	if cs.Min, err = stats.Min(percentages); err != nil {
		return cs, err
	}
	if cs.Max, err = stats.Max(percentages); err != nil {
		return cs, err
	}
	if len(percentages) >= 4 {
		if cs.P25, err = stats.Percentile(percentages, 25); err != nil {
			return cs, err
		}
		if cs.P75, err = stats.Percentile(percentages, 75); err != nil {
			return cs, err
		}
	} else {
		cs.P25, cs.P75 = cs.Min, cs.Max
	}
	return cs, nil
}

// Rank computes where a score percentage falls inside its cohort. The normal
// approximation degrades to the empirical rank when the cohort has no
// spread.
func (a *CohortAnalyzer) Rank(percentages []float64, value float64) (PercentileRank, error) {
	if len(percentages) == 0 {
		return PercentileRank{}, fmt.Errorf("cohort is empty")
	}

	below := 0
	for _, p := range percentages {
		if p <= value {
			below++
		}
	}
	rank := PercentileRank{
		Empirical: float64(below) / float64(len(percentages)) * 100,
	}

	cs, err := a.Summarize(percentages)
	if err != nil {
		return rank, err
	}
	if cs.StdDev > 0 {
		normal := distuv.Normal{Mu: cs.Mean, Sigma: cs.StdDev}
		rank.NormalApprox = normal.CDF(value) * 100
	} else {
		rank.NormalApprox = rank.Empirical
	}
	return rank, nil
}
