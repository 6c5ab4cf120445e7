package container

import (
	"fmt"

	"goeval/adapters/excel"
	"goeval/adapters/postgres"
	"goeval/app"
	"goeval/internal/analytics"
	"goeval/internal/batch"
	"goeval/internal/config"
	"goeval/internal/report"
	"goeval/internal/scoring"
	"goeval/internal/tiering"
	"goeval/ports"

	"github.com/jmoiron/sqlx"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config

	// Infrastructure
	DB *sqlx.DB

	// Data access
	SubmissionRepo  ports.SubmissionRepository
	IndicatorSource ports.IndicatorSource

	// Engine components
	Classifier *scoring.Classifier
	Evaluator  *scoring.Evaluator
	Filter     *tiering.Filter
	Aggregator *scoring.Aggregator

	// Services
	ScoringService *app.ScoringService
	CohortAnalyzer *analytics.CohortAnalyzer
	ReportBuilder  *report.Builder
	BatchScorer    *batch.Scorer
}

// New creates a new dependency injection container
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	c := &Container{Config: cfg}

	reader := excel.NewIndicatorReader(cfg.Paths.IndicatorFile)
	c.IndicatorSource = excel.NewTableCache(reader)

	c.Classifier = scoring.NewClassifier()
	c.Evaluator = scoring.NewEvaluator()
	c.Filter = tiering.NewFilter()
	c.Aggregator = scoring.NewAggregatorWith(c.Classifier, c.Evaluator, c.Filter)

	c.CohortAnalyzer = analytics.NewCohortAnalyzer()
	c.ReportBuilder = report.NewBuilder()
	c.BatchScorer = batch.NewScorer(c.Aggregator, int64(cfg.Scoring.BatchWorkers))

	return c, nil
}

// InitWithDatabase initializes components that require database access
func (c *Container) InitWithDatabase(db *sqlx.DB) error {
	if db == nil {
		return fmt.Errorf("database connection cannot be nil")
	}
	if err := db.Ping(); err != nil {
		return fmt.Errorf("database connection test failed: %w", err)
	}

	c.DB = db
	c.SubmissionRepo = postgres.NewSubmissionRepository(db)
	c.ScoringService = app.NewScoringServiceWith(c.IndicatorSource, c.SubmissionRepo, c.BatchScorer)
	return nil
}

// InitWithoutDatabase wires a score-only deployment (no persistence).
func (c *Container) InitWithoutDatabase() {
	c.ScoringService = app.NewScoringServiceWith(c.IndicatorSource, nil, c.BatchScorer)
}

// Close releases container resources.
func (c *Container) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
