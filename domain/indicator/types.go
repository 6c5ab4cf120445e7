package indicator

// Definition is one normalized row of the indicator source workbook.
// The three-level hierarchy is major -> minor -> leaf; the leaf is the unit a
// respondent answers. Definitions are immutable after loading: the source is
// reloaded wholesale when the workbook changes, never patched row by row.
type Definition struct {
	Sequence    int    `json:"sequence"`
	Major       string `json:"major_indicator"`
	Minor       string `json:"minor_indicator"`
	LeafText    string `json:"leaf_text"`
	Kind        string `json:"indicator_kind"`
	ScoreValue  string `json:"score_value"`
	RuleText    string `json:"scoring_rule_text"`
	Scope       string `json:"applicable_scope"`
}

// RuleKind identifies the scoring regime of a classified rule.
type RuleKind string

const (
	KindBinary      RuleKind = "binary"
	KindAllRequired RuleKind = "all_required"
	KindMultiItem   RuleKind = "multi_item"
	KindNegative    RuleKind = "negative"
	KindGraded      RuleKind = "graded"
)

// RuleCondition is one regime-specific sub-rule of a classified rule, e.g. a
// multi-item tier ("complete 1-2 items" -> 1 point). MinItems/MaxItems are
// zero when the condition is not item-count bound.
type RuleCondition struct {
	Description string  `json:"description"`
	Score       float64 `json:"score"`
	MinItems    int     `json:"min_items,omitempty"`
	MaxItems    int     `json:"max_items,omitempty"`
}

// ClassifiedRule is the typed interpretation of one leaf's free-text scoring
// rule. It is derived purely from (RuleText, ScoreValue), so classification
// results are safe to memoize process-wide.
//
// Invariants: MaxScore >= MinScore; for KindNegative, MinScore < 0.
type ClassifiedRule struct {
	Kind       RuleKind        `json:"kind"`
	MinScore   float64         `json:"min_score"`
	MaxScore   float64         `json:"max_score"`
	Conditions []RuleCondition `json:"conditions"`
}

// Span returns the score range covered by the rule.
func (r ClassifiedRule) Span() float64 {
	return r.MaxScore - r.MinScore
}

// IsVeto reports whether the rule can only subtract points. Veto indicators
// never contribute to the scoring denominator.
func (r ClassifiedRule) IsVeto() bool {
	return r.MaxScore <= 0 && r.MinScore < 0
}
