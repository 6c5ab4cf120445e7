package app

import (
	"context"

	"goeval/domain/core"
	"goeval/domain/indicator"
	"goeval/domain/submission"
	"goeval/domain/summary"
	"goeval/internal"
	"goeval/internal/batch"
	"goeval/internal/scoring"
	"goeval/internal/tiering"
	"goeval/ports"
)

// ScoringService orchestrates the engine for one submission: load the
// indicator table, filter for the respondent, aggregate, and optionally
// persist the result.
type ScoringService struct {
	source     ports.IndicatorSource
	repo       ports.SubmissionRepository // nil when persistence is disabled
	aggregator *scoring.Aggregator
	filter     *tiering.Filter
	classifier *scoring.Classifier
	batch      *batch.Scorer
	logger     *internal.Logger
}

// NewScoringService creates a scoring service. repo may be nil for
// score-only deployments (no persistence).
func NewScoringService(source ports.IndicatorSource, repo ports.SubmissionRepository) *ScoringService {
	return NewScoringServiceWith(source, repo, nil)
}

// NewScoringServiceWith creates a scoring service around a shared batch
// scorer, used when the composition root sizes the worker pool from
// configuration. A nil scorer gets a default pool.
func NewScoringServiceWith(source ports.IndicatorSource, repo ports.SubmissionRepository, scorer *batch.Scorer) *ScoringService {
	classifier := scoring.NewClassifier()
	filter := tiering.NewFilter()
	aggregator := scoring.NewAggregatorWith(classifier, scoring.NewEvaluator(), filter)
	if scorer == nil {
		scorer = batch.NewScorer(aggregator, 4)
	}
	return &ScoringService{
		source:     source,
		repo:       repo,
		aggregator: aggregator,
		filter:     filter,
		classifier: classifier,
		batch:      scorer,
		logger:     internal.DefaultLogger.WithComponent("ScoringService"),
	}
}

// ScoreSubmission computes the summary for one submission and persists it
// when a repository is configured.
func (s *ScoringService) ScoreSubmission(ctx context.Context, sub *submission.Submission) (*summary.ScoreSummary, error) {
	defs, err := s.source.Load(sub.Level)
	if err != nil {
		return nil, err
	}
	if len(defs) == 0 {
		return nil, core.ErrEmptyIndicatorSet
	}

	sum := s.aggregator.Aggregate(defs, sub.Answers, sub.Elaborations, sub.OrgType, sub.Tier)

	if s.repo != nil {
		if err := s.repo.Save(ctx, sub, &sum); err != nil {
			return nil, err
		}
	}
	s.logger.Info("submission %s scored %.1f/%.1f (%s)",
		sub.ID, sum.TotalScore, sum.MaxPossibleScore, sum.GradeLetter)
	return &sum, nil
}

// ScoreBatch scores many submissions against one indicator level in a single
// bounded-concurrency pass. Results keep input order; nothing is persisted.
func (s *ScoringService) ScoreBatch(ctx context.Context, level string, subs []*submission.Submission) ([]batch.Result, error) {
	defs, err := s.source.Load(level)
	if err != nil {
		return nil, err
	}
	if len(defs) == 0 {
		return nil, core.ErrEmptyIndicatorSet
	}
	return s.batch.ScoreAll(ctx, defs, subs)
}

// QuestionnaireItem is one leaf indicator shaped for presentation, with the
// standard lettered options for its scoring regime.
type QuestionnaireItem struct {
	Sequence int      `json:"sequence"`
	Major    string   `json:"major_indicator"`
	Minor    string   `json:"minor_indicator"`
	Text     string   `json:"text"`
	Kind     string   `json:"rule_kind"`
	MaxScore float64  `json:"max_score"`
	Options  []string `json:"options"`
}

// Questionnaire projects the indicator set for one respondent category into
// presentable questions.
func (s *ScoringService) Questionnaire(orgType, tier, level string) ([]QuestionnaireItem, error) {
	defs, err := s.source.Load(level)
	if err != nil {
		return nil, err
	}

	selected := s.filter.SelectForTier(defs, orgType, tier)
	items := make([]QuestionnaireItem, 0, len(selected))
	for _, def := range selected {
		rule := s.classifier.Classify(def.RuleText, def.ScoreValue)
		items = append(items, QuestionnaireItem{
			Sequence: def.Sequence,
			Major:    def.Major,
			Minor:    def.Minor,
			Text:     def.LeafText,
			Kind:     string(rule.Kind),
			MaxScore: rule.MaxScore,
			Options:  optionsFor(rule),
		})
	}
	return items, nil
}

// optionsFor returns the lettered options matching the evaluator's token
// protocol for each regime.
func optionsFor(rule indicator.ClassifiedRule) []string {
	switch rule.Kind {
	case indicator.KindNegative:
		return []string{"A. 存在违规行为", "B. 无违规行为"}
	case indicator.KindMultiItem, indicator.KindGraded:
		return []string{"A. 全部完成", "B. 部分完成（请说明）", "C. 均未完成"}
	default:
		return []string{"A. 已完成", "B. 未完成"}
	}
}
