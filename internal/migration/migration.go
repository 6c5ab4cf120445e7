package migration

import (
	"context"

	"goeval/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{version: "1.0.0"}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createSubmissionsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create submissions table")
	}
	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}
	return nil
}

func (r *MigrationRunner) createSubmissionsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS submissions (
			id UUID PRIMARY KEY,
			org_name TEXT NOT NULL DEFAULT '',
			org_type TEXT NOT NULL DEFAULT '',
			tier TEXT NOT NULL DEFAULT '',
			level TEXT NOT NULL DEFAULT '',
			answers JSONB NOT NULL DEFAULT '{}',
			elaborations JSONB NOT NULL DEFAULT '{}',
			summary JSONB NOT NULL DEFAULT '{}',
			total_score DOUBLE PRECISION NOT NULL DEFAULT 0,
			score_percentage DOUBLE PRECISION NOT NULL DEFAULT 0,
			grade_letter TEXT NOT NULL DEFAULT '',
			submitted_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_submissions_org_type ON submissions (org_type)`,
		`CREATE INDEX IF NOT EXISTS idx_submissions_submitted_at ON submissions (submitted_at DESC)`,
	}
	for _, stmt := range indexes {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
