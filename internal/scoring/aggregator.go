package scoring

import (
	"log"
	"strconv"
	"strings"

	"goeval/domain/indicator"
	"goeval/domain/summary"
	"goeval/internal/tiering"
)

// Aggregator walks one submission's answers over an indicator set and rolls
// awarded scores up into a report-ready summary. Aggregation is a single
// sequential pass with no shared mutable state, so independent submissions
// may be aggregated in parallel.
type Aggregator struct {
	classifier *Classifier
	evaluator  *Evaluator
	filter     *tiering.Filter
}

// NewAggregator creates an aggregator with default engine components.
func NewAggregator() *Aggregator {
	return &Aggregator{
		classifier: NewClassifier(),
		evaluator:  NewEvaluator(),
		filter:     tiering.NewFilter(),
	}
}

// NewAggregatorWith creates an aggregator around explicit components, used
// when the classifier cache or elaboration weights are shared or tuned.
func NewAggregatorWith(classifier *Classifier, evaluator *Evaluator, filter *tiering.Filter) *Aggregator {
	return &Aggregator{classifier: classifier, evaluator: evaluator, filter: filter}
}

// Aggregate scores one submission. Answers and elaborations are keyed by the
// stringified leaf sequence. Indicators the tier filter rejects are skipped
// entirely; answered veto indicators contribute their penalty to the total
// and to NegativePoints but never to the denominator. A malformed answer is
// logged and scored zero, never fatal to the rest of the submission.
func (a *Aggregator) Aggregate(defs []indicator.Definition, answers, elaborations map[string]string, orgType, tier string) summary.ScoreSummary {
	sum := summary.ScoreSummary{
		ByMajor: make(map[string]summary.CategoryScore),
		ByMinor: make(map[string]summary.CategoryScore),
		Details: make([]summary.ScoreDetail, 0, len(answers)),
	}

	for _, def := range defs {
		if !a.filter.IsApplicable(def, orgType, tier) {
			continue
		}
		sum.ApplicableCount++

		key := strconv.Itoa(def.Sequence)
		token, ok := answers[key]
		if !ok || strings.TrimSpace(token) == "" {
			continue
		}
		sum.AnsweredCount++

		rule := a.classifier.Classify(def.RuleText, def.ScoreValue)
		awarded := a.evaluator.Evaluate(rule, token, elaborations[key])

		sum.TotalScore += awarded
		if awarded < 0 {
			sum.NegativePoints += awarded
		}
		if rule.MaxScore > 0 {
			sum.MaxPossibleScore += rule.MaxScore
		}

		major := sum.ByMajor[def.Major]
		major.Score += awarded
		if rule.MaxScore > 0 {
			major.MaxScore += rule.MaxScore
		}
		major.Count++
		sum.ByMajor[def.Major] = major

		minor := sum.ByMinor[def.Minor]
		minor.Major = def.Major
		minor.Score += awarded
		if rule.MaxScore > 0 {
			minor.MaxScore += rule.MaxScore
		}
		minor.Count++
		sum.ByMinor[def.Minor] = minor

		sum.Details = append(sum.Details, summary.ScoreDetail{
			Sequence:     def.Sequence,
			Major:        def.Major,
			Minor:        def.Minor,
			LeafText:     def.LeafText,
			RuleKind:     rule.Kind,
			ChoiceToken:  token,
			AwardedScore: awarded,
			MaxScore:     rule.MaxScore,
		})
	}

	sum.ScorePercentage = percentage(sum.TotalScore, sum.MaxPossibleScore)
	sum.CompletionRate = percentage(float64(sum.AnsweredCount), float64(sum.ApplicableCount))
	for name, cat := range sum.ByMajor {
		cat.Percentage = percentage(cat.Score, cat.MaxScore)
		sum.ByMajor[name] = cat
	}
	for name, cat := range sum.ByMinor {
		cat.Percentage = percentage(cat.Score, cat.MaxScore)
		sum.ByMinor[name] = cat
	}
	sum.GradeLetter, sum.GradeLabel = summary.Grade(sum.ScorePercentage)

	if sum.ApplicableCount == 0 {
		log.Printf("[Aggregator] no applicable indicators for org_type=%q tier=%q", orgType, tier)
	}
	return sum
}

// percentage guards the zero denominator: 0/0 is reported as 0, not NaN.
func percentage(score, max float64) float64 {
	if max <= 0 {
		return 0
	}
	return score / max * 100
}
