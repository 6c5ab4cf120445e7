package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"goeval/app"
	"goeval/internal/analytics"
	"goeval/internal/report"
	"goeval/ports"
)

// App is the HTTP surface over the scoring engine. The engine itself is a
// library; the usual request-timeout handling lives here at the boundary.
type App struct {
	router   *chi.Mux
	scoring  *app.ScoringService
	repo     ports.SubmissionRepository
	cohort   *analytics.CohortAnalyzer
	reporter *report.Builder
	cfg      Config
}

// Config holds API application configuration. DefaultLevel backs requests
// that name no tier level; CohortMinCount gates cohort statistics so tiny
// cohorts are not reported as comparisons.
type Config struct {
	Port           string
	DefaultLevel   string
	CohortMinCount int
}

// NewApp creates the API application around its services. repo may be nil
// when persistence is disabled; the submission endpoints then return 404.
// Nil cohort or reporter fall back to default instances.
func NewApp(scoringService *app.ScoringService, repo ports.SubmissionRepository, cohort *analytics.CohortAnalyzer, reporter *report.Builder, cfg Config) *App {
	if cohort == nil {
		cohort = analytics.NewCohortAnalyzer()
	}
	if reporter == nil {
		reporter = report.NewBuilder()
	}
	a := &App{
		router:   chi.NewRouter(),
		scoring:  scoringService,
		repo:     repo,
		cohort:   cohort,
		reporter: reporter,
		cfg:      cfg,
	}
	a.setupMiddleware()
	a.setupRoutes()
	return a
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/health", a.handleHealth)
	a.router.Route("/api", func(r chi.Router) {
		r.Get("/questionnaire", a.handleQuestionnaire)
		r.Post("/submissions", a.handleSubmit)
		r.Post("/submissions/batch", a.handleBatchSubmit)
		r.Get("/submissions/{id}", a.handleGetSubmission)
		r.Get("/submissions/{id}/report", a.handleReport)
		r.Get("/cohorts/{orgType}/stats", a.handleCohortStats)
	})
}

// Router exposes the configured router for serving and for tests.
func (a *App) Router() http.Handler {
	return a.router
}

// Start blocks serving HTTP on the configured port.
func (a *App) Start() error {
	return http.ListenAndServe(":"+a.cfg.Port, a.router)
}

// resolveLevel fills an absent tier level from the tier name, then from the
// configured default.
func (a *App) resolveLevel(level, tier string) string {
	if level == "" {
		level = tier
	}
	if level == "" {
		level = a.cfg.DefaultLevel
	}
	return level
}

// minCohort returns the smallest cohort size worth reporting.
func (a *App) minCohort() int {
	if a.cfg.CohortMinCount > 0 {
		return a.cfg.CohortMinCount
	}
	return 1
}
