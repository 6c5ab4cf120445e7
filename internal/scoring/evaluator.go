package scoring

import (
	"strings"

	"goeval/domain/indicator"
)

// Evaluator computes the awarded score for one answer against a classified
// rule. Evaluation is pure: no code path raises, every unmatched token has a
// defined fallback of zero credit and zero penalty.
type Evaluator struct {
	elaboration *ElaborationScorer
}

// NewEvaluator creates an evaluator with the default elaboration weights.
func NewEvaluator() *Evaluator {
	return &Evaluator{elaboration: NewElaborationScorer()}
}

// NewEvaluatorWithScorer creates an evaluator around a custom partial scorer.
func NewEvaluatorWithScorer(scorer *ElaborationScorer) *Evaluator {
	return &Evaluator{elaboration: scorer}
}

// Evaluate returns the numeric score awarded for the answer token. The
// lettered-option protocol is fixed between questionnaire generation and
// scoring: "A" means fully done, "B" partially done, later letters none.
// Tokens without a letter prefix fall back to keyword-group matching.
func (e *Evaluator) Evaluate(rule indicator.ClassifiedRule, token, elaboration string) float64 {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0
	}
	letter := leadingLetter(token)

	switch rule.Kind {
	case indicator.KindBinary, indicator.KindAllRequired:
		if letter == 'A' {
			return rule.MaxScore
		}
		if letter != 0 {
			return 0
		}
		// Negations first: several embed an affirmative substring.
		if containsAny(token, negationTokens) {
			return 0
		}
		if containsAny(token, affirmativeTokens) {
			return rule.MaxScore
		}
		return 0

	case indicator.KindMultiItem, indicator.KindGraded:
		switch letter {
		case 'A':
			return rule.MaxScore
		case 'B':
			return e.elaboration.Score(elaboration, rule.MinScore, rule.MaxScore)
		case 0:
			return 0
		default:
			return rule.MinScore
		}

	case indicator.KindNegative:
		if containsAny(token, negationTokens) {
			return 0
		}
		if letter == 'A' || containsAny(token, violationTokens) {
			return rule.MinScore
		}
		return 0
	}

	return 0
}
