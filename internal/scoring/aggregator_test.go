package scoring

import (
	"testing"

	"goeval/domain/indicator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIndicatorSet() []indicator.Definition {
	return []indicator.Definition{
		{
			Sequence: 1, Major: "合规组织建设", Minor: "机构设置",
			LeafText: "设立合规管理机构", Kind: "合规性指标",
			ScoreValue: "1", RuleText: "",
		},
		{
			Sequence: 2, Major: "合规组织建设", Minor: "机构设置",
			LeafText: "落实合规管理措施", Kind: "合规性指标",
			ScoreValue: "0-2", RuleText: "实现'1-2项'的得1分，实现'3项'的得2分",
		},
		{
			Sequence: 3, Major: "重大违规", Minor: "违规记录",
			LeafText: "近三年无重大违规", Kind: "否决性指标",
			ScoreValue: "-5", RuleText: "",
		},
		{
			Sequence: 4, Major: "合规运行机制", Minor: "风险识别",
			LeafText: "建立风险识别流程", Kind: "合规性指标",
			ScoreValue: "1", RuleText: "",
		},
	}
}

func TestAggregate_FullPass(t *testing.T) {
	a := NewAggregator()
	answers := map[string]string{
		"1": "是",
		"2": "A. 完成3项",
		"3": "是", // violation present on the veto indicator
		// sequence 4 unanswered
	}

	sum := a.Aggregate(testIndicatorSet(), answers, nil, "有限责任公司", "advanced")

	assert.Equal(t, 4, sum.ApplicableCount)
	assert.Equal(t, 3, sum.AnsweredCount)
	assert.InDelta(t, 75.0, sum.CompletionRate, 1e-9)

	// 1 (binary) + 2 (multi-item max) - 5 (veto) = -2
	assert.InDelta(t, -2.0, sum.TotalScore, 1e-9)
	// The veto indicator never joins the denominator.
	assert.InDelta(t, 3.0, sum.MaxPossibleScore, 1e-9)
	assert.InDelta(t, -5.0, sum.NegativePoints, 1e-9)
	assert.Equal(t, "E", sum.GradeLetter)

	require.Len(t, sum.Details, 3)
}

func TestAggregate_Additivity(t *testing.T) {
	a := NewAggregator()
	answers := map[string]string{"1": "是", "2": "B. 部分完成", "3": "是", "4": "否"}
	elaborations := map[string]string{"2": "已建立基本流程，落实两项措施"}

	sum := a.Aggregate(testIndicatorSet(), answers, elaborations, "有限责任公司", "advanced")

	total := 0.0
	for _, d := range sum.Details {
		total += d.AwardedScore
	}
	assert.InDelta(t, total, sum.TotalScore, 1e-9, "total must equal the sum of detail scores")
}

func TestAggregate_DenominatorExclusion(t *testing.T) {
	a := NewAggregator()
	defs := []indicator.Definition{
		{Sequence: 1, Major: "重大违规", Minor: "违规记录", LeafText: "无重大违规", ScoreValue: "-5"},
	}

	sum := a.Aggregate(defs, map[string]string{"1": "是"}, nil, "", "advanced")

	assert.InDelta(t, 0.0, sum.MaxPossibleScore, 1e-9)
	assert.InDelta(t, -5.0, sum.TotalScore, 1e-9)
	assert.InDelta(t, -5.0, sum.NegativePoints, 1e-9)
	assert.InDelta(t, 0.0, sum.ScorePercentage, 1e-9, "zero denominator reports 0, not NaN")
}

func TestAggregate_Idempotent(t *testing.T) {
	a := NewAggregator()
	answers := map[string]string{"1": "是", "2": "B. 部分完成", "3": "否", "4": "是"}
	elaborations := map[string]string{"2": "已完成两项，2023年落实"}

	first := a.Aggregate(testIndicatorSet(), answers, elaborations, "有限责任公司", "advanced")
	second := a.Aggregate(testIndicatorSet(), answers, elaborations, "有限责任公司", "advanced")

	assert.Equal(t, first, second)
}

func TestAggregate_Rollups(t *testing.T) {
	a := NewAggregator()
	answers := map[string]string{"1": "是", "2": "A. 完成3项", "4": "是"}

	sum := a.Aggregate(testIndicatorSet(), answers, nil, "有限责任公司", "advanced")

	org := sum.ByMajor["合规组织建设"]
	assert.Equal(t, 2, org.Count)
	assert.InDelta(t, 3.0, org.Score, 1e-9)
	assert.InDelta(t, 3.0, org.MaxScore, 1e-9)
	assert.InDelta(t, 100.0, org.Percentage, 1e-9)

	minor := sum.ByMinor["机构设置"]
	assert.Equal(t, "合规组织建设", minor.Major)
	assert.Equal(t, 2, minor.Count)
}

func TestAggregate_MalformedAnswerScoresZero(t *testing.T) {
	a := NewAggregator()
	answers := map[string]string{"1": "???", "4": "是"}

	sum := a.Aggregate(testIndicatorSet(), answers, nil, "有限责任公司", "advanced")

	assert.Equal(t, 2, sum.AnsweredCount)
	assert.InDelta(t, 1.0, sum.TotalScore, 1e-9, "unrecognized token contributes zero, rest still scored")
}

func TestAggregate_EmptyIndicatorSet(t *testing.T) {
	a := NewAggregator()
	sum := a.Aggregate(nil, map[string]string{"1": "是"}, nil, "", "advanced")

	assert.Equal(t, 0, sum.ApplicableCount)
	assert.InDelta(t, 0.0, sum.CompletionRate, 1e-9)
	assert.InDelta(t, 0.0, sum.ScorePercentage, 1e-9)
}
