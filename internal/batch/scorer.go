package batch

import (
	"context"
	"log"
	"sync"
	"time"

	"goeval/domain/indicator"
	"goeval/domain/submission"
	"goeval/domain/summary"
	"goeval/internal/scoring"

	"golang.org/x/sync/semaphore"
)

// Result pairs one submission with its computed summary.
type Result struct {
	Submission *submission.Submission
	Summary    summary.ScoreSummary
}

// Scorer scores many submissions concurrently. The engine is pure and the
// indicator table is read-only, so submissions need no locking against each
// other; the semaphore only bounds resource use.
type Scorer struct {
	aggregator *scoring.Aggregator
	sem        *semaphore.Weighted
	workers    int64
}

// NewScorer creates a batch scorer bounded to maxConcurrent submissions.
func NewScorer(aggregator *scoring.Aggregator, maxConcurrent int64) *Scorer {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Scorer{
		aggregator: aggregator,
		sem:        semaphore.NewWeighted(maxConcurrent),
		workers:    maxConcurrent,
	}
}

// ScoreAll aggregates every submission against the shared indicator set.
// Results keep the input order. Cancelling the context stops admission of
// new submissions; already-admitted ones finish.
func (s *Scorer) ScoreAll(ctx context.Context, defs []indicator.Definition, subs []*submission.Submission) ([]Result, error) {
	start := time.Now()
	results := make([]Result, len(subs))

	var wg sync.WaitGroup
	for i, sub := range subs {
		if err := s.sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return nil, err
		}
		wg.Add(1)
		go func(i int, sub *submission.Submission) {
			defer wg.Done()
			defer s.sem.Release(1)
			sum := s.aggregator.Aggregate(defs, sub.Answers, sub.Elaborations, sub.OrgType, sub.Tier)
			results[i] = Result{Submission: sub, Summary: sum}
		}(i, sub)
	}
	wg.Wait()

	log.Printf("[BatchScorer] scored %d submissions in %.2fms (workers=%d)",
		len(subs), float64(time.Since(start).Nanoseconds())/1e6, s.workers)
	return results, nil
}
