package ports

import (
	"context"

	"goeval/domain/core"
	"goeval/domain/submission"
	"goeval/domain/summary"
)

// SubmissionRepository persists submissions together with their computed
// summaries. A summary is stored as the JSON snapshot report rendering
// consumes; it is recomputed, never patched.
type SubmissionRepository interface {
	Save(ctx context.Context, sub *submission.Submission, sum *summary.ScoreSummary) error
	GetByID(ctx context.Context, id core.SubmissionID) (*submission.Submission, *summary.ScoreSummary, error)
	ListByOrgType(ctx context.Context, orgType string, limit int) ([]*submission.Submission, error)

	// ListScorePercentages returns the stored score percentages for one
	// organization type, feeding cohort analytics.
	ListScorePercentages(ctx context.Context, orgType string) ([]float64, error)
}
