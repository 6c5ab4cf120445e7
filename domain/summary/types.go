package summary

import (
	"goeval/domain/indicator"
)

// ScoreDetail records the evaluation of one answered leaf indicator. Details
// are embedded in the summary, never persisted on their own.
type ScoreDetail struct {
	Sequence     int                `json:"sequence"`
	Major        string             `json:"major_indicator"`
	Minor        string             `json:"minor_indicator"`
	LeafText     string             `json:"leaf_text"`
	RuleKind     indicator.RuleKind `json:"rule_kind"`
	ChoiceToken  string             `json:"choice_token"`
	AwardedScore float64            `json:"awarded_score"`
	MaxScore     float64            `json:"max_score"`
}

// CategoryScore is a rollup bucket for one major or minor indicator.
type CategoryScore struct {
	Major      string  `json:"major_indicator,omitempty"`
	Score      float64 `json:"score"`
	MaxScore   float64 `json:"max_score"`
	Percentage float64 `json:"percentage"`
	Count      int     `json:"count"`
}

// ScoreSummary is the report-ready result of scoring one submission.
// TotalScore equals the exact sum of AwardedScore across Details, including
// negative contributions. Summaries are computed on demand and never mutated
// after construction.
type ScoreSummary struct {
	TotalScore       float64                  `json:"total_score"`
	MaxPossibleScore float64                  `json:"max_possible_score"`
	ScorePercentage  float64                  `json:"score_percentage"`
	ByMajor          map[string]CategoryScore `json:"score_by_major"`
	ByMinor          map[string]CategoryScore `json:"score_by_minor"`
	NegativePoints   float64                  `json:"negative_points"`
	AnsweredCount    int                      `json:"answered_count"`
	ApplicableCount  int                      `json:"applicable_count"`
	CompletionRate   float64                  `json:"completion_rate"`
	GradeLetter      string                   `json:"grade_letter"`
	GradeLabel       string                   `json:"grade_label"`
	Details          []ScoreDetail            `json:"question_details"`
}
