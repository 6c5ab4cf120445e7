package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"goeval/domain/core"
	"goeval/domain/submission"
	"goeval/domain/summary"
	"goeval/ports"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// SubmissionRepositoryImpl implements SubmissionRepository for PostgreSQL
type SubmissionRepositoryImpl struct {
	db *sqlx.DB
}

// NewSubmissionRepository creates a new PostgreSQL submission repository
func NewSubmissionRepository(db *sqlx.DB) ports.SubmissionRepository {
	return &SubmissionRepositoryImpl{db: db}
}

// Save stores a submission together with its computed summary snapshot
func (r *SubmissionRepositoryImpl) Save(ctx context.Context, sub *submission.Submission, sum *summary.ScoreSummary) error {
	id, err := uuid.Parse(sub.ID.String())
	if err != nil {
		return fmt.Errorf("invalid submission id %q: %w", sub.ID, err)
	}

	answersJSON, _ := json.Marshal(sub.Answers)
	elaborationsJSON, _ := json.Marshal(sub.Elaborations)
	summaryJSON, _ := json.Marshal(sum)

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO submissions (
			id, org_name, org_type, tier, level,
			answers, elaborations, summary,
			total_score, score_percentage, grade_letter, submitted_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			summary = EXCLUDED.summary,
			total_score = EXCLUDED.total_score,
			score_percentage = EXCLUDED.score_percentage,
			grade_letter = EXCLUDED.grade_letter`,
		id, sub.OrgName, sub.OrgType, sub.Tier, sub.Level,
		answersJSON, elaborationsJSON, summaryJSON,
		sum.TotalScore, sum.ScorePercentage, sum.GradeLetter, sub.SubmittedAt)
	return err
}

type submissionRow struct {
	ID           uuid.UUID `db:"id"`
	OrgName      string    `db:"org_name"`
	OrgType      string    `db:"org_type"`
	Tier         string    `db:"tier"`
	Level        string    `db:"level"`
	Answers      []byte    `db:"answers"`
	Elaborations []byte    `db:"elaborations"`
	Summary      []byte    `db:"summary"`
	SubmittedAt  time.Time `db:"submitted_at"`
}

func (row submissionRow) toDomain() (*submission.Submission, *summary.ScoreSummary, error) {
	sub := &submission.Submission{
		ID:          core.SubmissionID(row.ID.String()),
		OrgName:     row.OrgName,
		OrgType:     row.OrgType,
		Tier:        row.Tier,
		Level:       row.Level,
		SubmittedAt: row.SubmittedAt,
	}
	if err := json.Unmarshal(row.Answers, &sub.Answers); err != nil {
		return nil, nil, fmt.Errorf("unmarshal answers: %w", err)
	}
	if len(row.Elaborations) > 0 {
		if err := json.Unmarshal(row.Elaborations, &sub.Elaborations); err != nil {
			return nil, nil, fmt.Errorf("unmarshal elaborations: %w", err)
		}
	}
	var sum summary.ScoreSummary
	if err := json.Unmarshal(row.Summary, &sum); err != nil {
		return nil, nil, fmt.Errorf("unmarshal summary: %w", err)
	}
	return sub, &sum, nil
}

// GetByID retrieves a submission and its summary snapshot
func (r *SubmissionRepositoryImpl) GetByID(ctx context.Context, id core.SubmissionID) (*submission.Submission, *summary.ScoreSummary, error) {
	parsed, err := uuid.Parse(id.String())
	if err != nil {
		return nil, nil, fmt.Errorf("invalid submission id %q: %w", id, err)
	}

	var row submissionRow
	err = r.db.GetContext(ctx, &row, `
		SELECT id, org_name, org_type, tier, level, answers, elaborations, summary, submitted_at
		FROM submissions WHERE id = $1`, parsed)
	if err == sql.ErrNoRows {
		return nil, nil, core.NewNotFoundError("submission", id.String())
	}
	if err != nil {
		return nil, nil, err
	}
	return row.toDomain()
}

// ListByOrgType returns the most recent submissions for one organization type
func (r *SubmissionRepositoryImpl) ListByOrgType(ctx context.Context, orgType string, limit int) ([]*submission.Submission, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []submissionRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, org_name, org_type, tier, level, answers, elaborations, summary, submitted_at
		FROM submissions WHERE org_type = $1
		ORDER BY submitted_at DESC LIMIT $2`, orgType, limit)
	if err != nil {
		return nil, err
	}

	subs := make([]*submission.Submission, 0, len(rows))
	for _, row := range rows {
		sub, _, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

// ListScorePercentages returns stored score percentages for cohort analytics
func (r *SubmissionRepositoryImpl) ListScorePercentages(ctx context.Context, orgType string) ([]float64, error) {
	var percentages []float64
	err := r.db.SelectContext(ctx, &percentages, `
		SELECT score_percentage FROM submissions WHERE org_type = $1
		ORDER BY submitted_at`, orgType)
	if err != nil {
		return nil, err
	}
	return percentages, nil
}
