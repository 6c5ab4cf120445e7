package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"goeval/domain/core"
	"goeval/domain/submission"
	"goeval/internal/analytics"
)

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleQuestionnaire returns the leaf indicators applicable to one
// respondent category, shaped for presentation.
func (a *App) handleQuestionnaire(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	orgType := q.Get("org_type")
	tier := q.Get("tier")
	level := a.resolveLevel(q.Get("level"), tier)

	items, err := a.scoring.Questionnaire(orgType, tier, level)
	if err != nil {
		if core.IsResourceMissingError(err) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// handleSubmit scores a filled questionnaire and persists the result.
func (a *App) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Answers) == 0 {
		writeError(w, http.StatusBadRequest, "answers are required")
		return
	}
	req.Level = a.resolveLevel(req.Level, req.Tier)

	sub := submission.New(req.OrgName, req.OrgType, req.Tier, req.Level, req.Answers, req.Elaborations)
	sum, err := a.scoring.ScoreSubmission(r.Context(), sub)
	if err != nil {
		if core.IsResourceMissingError(err) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":      sub.ID,
		"summary": sum,
	})
}

func (a *App) handleGetSubmission(w http.ResponseWriter, r *http.Request) {
	if a.repo == nil {
		writeError(w, http.StatusNotFound, "persistence disabled")
		return
	}
	id, err := core.ParseSubmissionID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sub, sum, err := a.repo.GetByID(r.Context(), id)
	if err != nil {
		if core.IsNotFoundError(err) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"submission": sub,
		"summary":    sum,
	})
}

// handleReport renders the narrative report. ?format=html converts the
// markdown document for browsers.
func (a *App) handleReport(w http.ResponseWriter, r *http.Request) {
	if a.repo == nil {
		writeError(w, http.StatusNotFound, "persistence disabled")
		return
	}
	id, err := core.ParseSubmissionID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sub, sum, err := a.repo.GetByID(r.Context(), id)
	if err != nil {
		if core.IsNotFoundError(err) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	md := a.reporter.BuildMarkdown(sub, sum, a.cohortFor(r, sub.OrgType))

	if r.URL.Query().Get("format") == "html" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(a.reporter.RenderHTML(md))
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	_, _ = w.Write([]byte(md))
}

// handleBatchSubmit scores a set of filled questionnaires in one
// bounded-concurrency pass. Batch results are returned, not persisted; the
// caller decides which, if any, to submit individually.
func (a *App) handleBatchSubmit(w http.ResponseWriter, r *http.Request) {
	var req BatchSubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Submissions) == 0 {
		writeError(w, http.StatusBadRequest, "submissions are required")
		return
	}
	level := a.resolveLevel(req.Level, req.Tier)

	subs := make([]*submission.Submission, 0, len(req.Submissions))
	for i, item := range req.Submissions {
		if len(item.Answers) == 0 {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("submission %d has no answers", i))
			return
		}
		subs = append(subs, submission.New(item.OrgName, req.OrgType, req.Tier, level, item.Answers, item.Elaborations))
	}

	results, err := a.scoring.ScoreBatch(r.Context(), level, subs)
	if err != nil {
		if core.IsResourceMissingError(err) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	out := make([]map[string]interface{}, 0, len(results))
	for _, res := range results {
		out = append(out, map[string]interface{}{
			"id":       res.Submission.ID,
			"org_name": res.Submission.OrgName,
			"summary":  res.Summary,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// cohortFor fetches cohort stats for the report's comparability section.
// Best effort: a missing or undersized cohort just omits the section.
func (a *App) cohortFor(r *http.Request, orgType string) *analytics.CohortStats {
	percentages, err := a.repo.ListScorePercentages(r.Context(), orgType)
	if err != nil || len(percentages) < a.minCohort() {
		return nil
	}
	cs, err := a.cohort.Summarize(percentages)
	if err != nil {
		return nil
	}
	return &cs
}

func (a *App) handleCohortStats(w http.ResponseWriter, r *http.Request) {
	if a.repo == nil {
		writeError(w, http.StatusNotFound, "persistence disabled")
		return
	}
	orgType := chi.URLParam(r, "orgType")
	percentages, err := a.repo.ListScorePercentages(r.Context(), orgType)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(percentages) < a.minCohort() {
		writeError(w, http.StatusNotFound, "not enough submissions for cohort statistics")
		return
	}
	cs, err := a.cohort.Summarize(percentages)
	if err != nil {
		writeError(w, http.StatusNotFound, "no submissions for cohort")
		return
	}
	writeJSON(w, http.StatusOK, cs)
}
