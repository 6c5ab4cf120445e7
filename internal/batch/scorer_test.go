package batch

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"goeval/domain/indicator"
	"goeval/domain/submission"
	"goeval/internal/scoring"
)

func batchIndicatorSet() []indicator.Definition {
	return []indicator.Definition{
		{Sequence: 1, Major: "合规组织建设", Minor: "机构设置", LeafText: "设立合规管理机构", Kind: "合规性", ScoreValue: "1"},
		{Sequence: 2, Major: "合规组织建设", Minor: "人员配备", LeafText: "配备专职合规人员", Kind: "合规性", ScoreValue: "2", RuleText: "全部完成得2分，部分完成不得分"},
		{Sequence: 3, Major: "合规运行机制", Minor: "违规追责", LeafText: "不存在重大违规", Kind: "合规性", ScoreValue: "-5"},
	}
}

func batchSubmissions(n int) []*submission.Submission {
	subs := make([]*submission.Submission, n)
	for i := range subs {
		answers := map[string]string{"1": "A", "2": "B", "3": "否"}
		if i%2 == 1 {
			answers["1"] = "B"
		}
		subs[i] = submission.New(fmt.Sprintf("企业%d", i), "有限责任公司", "advanced", "高级", answers, nil)
	}
	return subs
}

func TestScoreAllMatchesSerial(t *testing.T) {
	agg := scoring.NewAggregator()
	scorer := NewScorer(agg, 4)
	defs := batchIndicatorSet()
	subs := batchSubmissions(20)

	results, err := scorer.ScoreAll(context.Background(), defs, subs)
	if err != nil {
		t.Fatalf("ScoreAll: %v", err)
	}
	if len(results) != len(subs) {
		t.Fatalf("expected %d results, got %d", len(subs), len(results))
	}

	for i, res := range results {
		if res.Submission != subs[i] {
			t.Errorf("result %d is out of input order", i)
		}
		want := agg.Aggregate(defs, subs[i].Answers, subs[i].Elaborations, subs[i].OrgType, subs[i].Tier)
		if !reflect.DeepEqual(res.Summary, want) {
			t.Errorf("result %d differs from serial aggregation:\n got %+v\nwant %+v", i, res.Summary, want)
		}
	}
}

func TestScoreAllSingleWorker(t *testing.T) {
	scorer := NewScorer(scoring.NewAggregator(), 0) // clamps to 1
	results, err := scorer.ScoreAll(context.Background(), batchIndicatorSet(), batchSubmissions(3))
	if err != nil {
		t.Fatalf("ScoreAll: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
}

func TestScoreAllCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	scorer := NewScorer(scoring.NewAggregator(), 2)
	_, err := scorer.ScoreAll(ctx, batchIndicatorSet(), batchSubmissions(5))
	if err == nil {
		t.Fatal("expected an error from a cancelled context")
	}
}

func TestScoreAllEmptyInput(t *testing.T) {
	scorer := NewScorer(scoring.NewAggregator(), 2)
	results, err := scorer.ScoreAll(context.Background(), batchIndicatorSet(), nil)
	if err != nil {
		t.Fatalf("ScoreAll: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}
