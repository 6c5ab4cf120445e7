package scoring

import (
	"testing"

	"goeval/domain/indicator"
)

func binaryRule(max float64) indicator.ClassifiedRule {
	return indicator.ClassifiedRule{Kind: indicator.KindBinary, MinScore: 0, MaxScore: max}
}

func TestEvaluate_AllRequired(t *testing.T) {
	e := NewEvaluator()
	rule := indicator.ClassifiedRule{Kind: indicator.KindAllRequired, MinScore: 0, MaxScore: 1}

	if got := e.Evaluate(rule, "A. 全部完成", ""); got != 1.0 {
		t.Errorf("full completion: expected 1.0, got %v", got)
	}
	if got := e.Evaluate(rule, "B. 部分完成", ""); got != 0.0 {
		t.Errorf("partial completion: expected 0.0, got %v", got)
	}
}

func TestEvaluate_Binary_KeywordTokens(t *testing.T) {
	e := NewEvaluator()
	rule := binaryRule(1)

	if got := e.Evaluate(rule, "是", ""); got != 1.0 {
		t.Errorf("affirmative token: expected 1.0, got %v", got)
	}
	if got := e.Evaluate(rule, "否", ""); got != 0.0 {
		t.Errorf("negation token: expected 0.0, got %v", got)
	}
	// "没有" embeds "有"; negations must win.
	if got := e.Evaluate(rule, "没有", ""); got != 0.0 {
		t.Errorf("embedded affirmative: expected 0.0, got %v", got)
	}
	if got := e.Evaluate(rule, "", ""); got != 0.0 {
		t.Errorf("empty token: expected 0.0, got %v", got)
	}
	if got := e.Evaluate(rule, "不确定", ""); got != 0.0 {
		t.Errorf("unrecognized token: expected 0.0, got %v", got)
	}
}

func TestEvaluate_MultiItem(t *testing.T) {
	e := NewEvaluator()
	rule := indicator.ClassifiedRule{Kind: indicator.KindMultiItem, MinScore: 0, MaxScore: 2}

	if got := e.Evaluate(rule, "A. 完成3项", ""); got != 2.0 {
		t.Errorf("fully done: expected max 2.0, got %v", got)
	}
	if got := e.Evaluate(rule, "C. 均未完成", ""); got != 0.0 {
		t.Errorf("none done: expected 0.0, got %v", got)
	}
	// Partial answer with no elaboration: the documented (0,2) default.
	if got := e.Evaluate(rule, "B. 部分完成", ""); got != 0.5 {
		t.Errorf("partial with empty elaboration: expected 0.5, got %v", got)
	}
}

func TestEvaluate_Graded_LowercaseLetter(t *testing.T) {
	e := NewEvaluator()
	rule := indicator.ClassifiedRule{Kind: indicator.KindGraded, MinScore: 0, MaxScore: 3}

	if got := e.Evaluate(rule, "a. 全部达到", ""); got != 3.0 {
		t.Errorf("lowercase letter token: expected 3.0, got %v", got)
	}
}

func TestEvaluate_Negative(t *testing.T) {
	e := NewEvaluator()
	rule := indicator.ClassifiedRule{Kind: indicator.KindNegative, MinScore: -5, MaxScore: 0}

	if got := e.Evaluate(rule, "是", ""); got != -5.0 {
		t.Errorf("violation: expected -5.0, got %v", got)
	}
	if got := e.Evaluate(rule, "存在违规行为", ""); got != -5.0 {
		t.Errorf("violation phrase: expected -5.0, got %v", got)
	}
	if got := e.Evaluate(rule, "否", ""); got != 0.0 {
		t.Errorf("no violation: expected 0.0, got %v", got)
	}
	if got := e.Evaluate(rule, "无违规行为", ""); got != 0.0 {
		t.Errorf("no-violation phrase: expected 0.0, got %v", got)
	}
	if got := e.Evaluate(rule, "不存在违规情况", ""); got != 0.0 {
		t.Errorf("negated violation phrase: expected 0.0, got %v", got)
	}
	if got := e.Evaluate(rule, "", ""); got != 0.0 {
		t.Errorf("empty token: expected 0.0, got %v", got)
	}
}
