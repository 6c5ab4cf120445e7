package scoring

import (
	"reflect"
	"testing"

	"goeval/domain/indicator"
)

func TestParseScoreValue(t *testing.T) {
	cases := []struct {
		in       string
		min, max float64
	}{
		{"1", 0, 1},
		{"2.5", 0, 2.5},
		{"-5", -5, 0},
		{"0-2", 0, 2},
		{"1-3", 1, 3},
		{"0～2", 0, 2},
		{"", 0, 1},
		{"n/a", 0, 1},
	}
	for _, c := range cases {
		min, max := ParseScoreValue(c.in)
		if min != c.min || max != c.max {
			t.Errorf("ParseScoreValue(%q) = (%v, %v), want (%v, %v)", c.in, min, max, c.min, c.max)
		}
	}
}

func TestClassify_AllRequired(t *testing.T) {
	c := NewClassifier()
	rule := c.Classify("全部完成得1分，部分完成不得分", "1")

	if rule.Kind != indicator.KindAllRequired {
		t.Fatalf("expected all_required, got %s", rule.Kind)
	}
	if rule.MinScore != 0 || rule.MaxScore != 1 {
		t.Errorf("expected score range (0, 1), got (%v, %v)", rule.MinScore, rule.MaxScore)
	}
}

func TestClassify_MultiItemTiers(t *testing.T) {
	c := NewClassifier()
	rule := c.Classify("实现'1-2项'的得1分，实现'3项'的得2分", "0-2")

	if rule.Kind != indicator.KindMultiItem {
		t.Fatalf("expected multi_item, got %s", rule.Kind)
	}
	if rule.MinScore != 0 || rule.MaxScore != 2 {
		t.Errorf("expected score range (0, 2), got (%v, %v)", rule.MinScore, rule.MaxScore)
	}

	// Expect a zero floor plus the two explicit tiers.
	if len(rule.Conditions) != 3 {
		t.Fatalf("expected 3 tiers, got %d: %+v", len(rule.Conditions), rule.Conditions)
	}
	if rule.Conditions[0].Score != 0 {
		t.Errorf("expected zero-item floor tier first, got %+v", rule.Conditions[0])
	}
	tier12 := rule.Conditions[1]
	if tier12.MinItems != 1 || tier12.MaxItems != 2 || tier12.Score != 1 {
		t.Errorf("expected 1-2 items -> 1 point, got %+v", tier12)
	}
	tier3 := rule.Conditions[2]
	if tier3.MinItems != 3 || tier3.MaxItems != 3 || tier3.Score != 2 {
		t.Errorf("expected 3 items -> 2 points, got %+v", tier3)
	}
}

func TestClassify_MultiItemDefaultTiers(t *testing.T) {
	c := NewClassifier()
	// Item-count gate matches but no explicit tier is extractable.
	rule := c.Classify("按5项要求执行情况酌情得2分", "0-2")

	if rule.Kind != indicator.KindMultiItem {
		t.Fatalf("expected multi_item, got %s", rule.Kind)
	}
	if len(rule.Conditions) != 3 {
		t.Fatalf("expected default 3-tier split, got %+v", rule.Conditions)
	}
	if rule.Conditions[0].Score != 0 || rule.Conditions[1].Score != 1 || rule.Conditions[2].Score != 2 {
		t.Errorf("expected 0/half/max tiers, got %+v", rule.Conditions)
	}
}

func TestClassify_Negative(t *testing.T) {
	c := NewClassifier()
	rule := c.Classify("", "-5")

	if rule.Kind != indicator.KindNegative {
		t.Fatalf("expected negative, got %s", rule.Kind)
	}
	if rule.MinScore != -5 || rule.MaxScore != 0 {
		t.Errorf("expected score range (-5, 0), got (%v, %v)", rule.MinScore, rule.MaxScore)
	}
	if !rule.IsVeto() {
		t.Error("negative rule should report as veto")
	}
}

func TestClassify_Graded(t *testing.T) {
	c := NewClassifier()
	rule := c.Classify("根据完成情况酌情给分", "0-3")

	if rule.Kind != indicator.KindGraded {
		t.Fatalf("expected graded, got %s", rule.Kind)
	}
	if len(rule.Conditions) != 4 {
		t.Fatalf("expected 4 evenly-spaced tiers, got %d", len(rule.Conditions))
	}
	for i, want := range []float64{0, 1, 2, 3} {
		if rule.Conditions[i].Score != want {
			t.Errorf("tier %d: expected score %v, got %v", i, want, rule.Conditions[i].Score)
		}
	}
}

func TestClassify_EmptyRuleTextFallsToBinary(t *testing.T) {
	c := NewClassifier()

	for _, scoreValue := range []string{"1", "0-3", ""} {
		rule := c.Classify("", scoreValue)
		if rule.Kind != indicator.KindBinary {
			t.Errorf("Classify(\"\", %q): expected binary, got %s", scoreValue, rule.Kind)
		}
		if len(rule.Conditions) != 2 {
			t.Errorf("Classify(\"\", %q): expected 2 default conditions, got %d", scoreValue, len(rule.Conditions))
		}
	}
}

func TestClassify_Deterministic(t *testing.T) {
	c := NewClassifier()
	inputs := []struct{ rule, score string }{
		{"全部完成得1分，部分完成不得分", "1"},
		{"实现'1-2项'的得1分，实现'3项'的得2分", "0-2"},
		{"", "-5"},
		{"根据完成情况酌情给分", "0-3"},
		{"", "1"},
	}
	for _, in := range inputs {
		first := c.Classify(in.rule, in.score)
		second := c.Classify(in.rule, in.score)
		if !reflect.DeepEqual(first, second) {
			t.Errorf("classification of (%q, %q) is not deterministic", in.rule, in.score)
		}
	}
	if c.cache.Len() != len(inputs) {
		t.Errorf("expected %d cached classifications, got %d", len(inputs), c.cache.Len())
	}
}

func TestClassify_InvariantMaxGteMin(t *testing.T) {
	c := NewClassifier()
	for _, in := range []struct{ rule, score string }{
		{"", "1"}, {"", "-5"}, {"x", "3-1"}, {"", "0"}, {"部分完成不得分", "2"},
	} {
		rule := c.Classify(in.rule, in.score)
		if rule.MaxScore < rule.MinScore {
			t.Errorf("Classify(%q, %q): max %v < min %v", in.rule, in.score, rule.MaxScore, rule.MinScore)
		}
	}
}
