package tiering

import (
	"testing"

	"goeval/domain/indicator"
)

func tieredIndicatorSet() []indicator.Definition {
	return []indicator.Definition{
		{Sequence: 1, Major: "合规组织建设", Kind: "合规性指标", LeafText: "a"},
		{Sequence: 2, Major: "合规制度体系", Kind: "合规性指标", LeafText: "b"},
		{Sequence: 3, Major: "合规运行机制建设", Kind: "有效性指标", LeafText: "c"},
		{Sequence: 4, Major: "文化建设", Kind: "有效性指标", LeafText: "d"},
		{Sequence: 5, Major: "文化建设", Kind: "调整性指标", LeafText: "e"},
	}
}

func sequences(defs []indicator.Definition) []int {
	out := make([]int, len(defs))
	for i, d := range defs {
		out[i] = d.Sequence
	}
	return out
}

func TestSelectForTier_RichnessLevels(t *testing.T) {
	f := NewFilter()
	defs := tieredIndicatorSet()

	cases := []struct {
		tier string
		want []int
	}{
		{"advanced", []int{1, 2, 3, 4, 5}}, // broadest tier keeps everything
		{"intermediate", []int{1, 2, 3, 4}},
		{"beginner", []int{1, 2}}, // compliance kinds within core majors only
	}
	for _, c := range cases {
		got := sequences(f.SelectForTier(defs, "有限责任公司", c.tier))
		if len(got) != len(c.want) {
			t.Errorf("tier %s: expected %v, got %v", c.tier, c.want, got)
			continue
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Errorf("tier %s: expected %v, got %v", c.tier, c.want, got)
				break
			}
		}
	}
}

func TestSelectForTier_ChineseTierNames(t *testing.T) {
	f := NewFilter()
	defs := tieredIndicatorSet()

	english := f.SelectForTier(defs, "有限责任公司", "intermediate")
	chinese := f.SelectForTier(defs, "有限责任公司", "中级")
	if len(english) != len(chinese) {
		t.Errorf("中级 and intermediate should select the same subset: %d vs %d", len(chinese), len(english))
	}
}

func TestSelectForTier_ChamberTiers(t *testing.T) {
	f := NewFilter()
	defs := tieredIndicatorSet()

	if got := f.SelectForTier(defs, "行业商会", "national"); len(got) != 5 {
		t.Errorf("national chamber tier should keep all indicators, got %d", len(got))
	}
	if got := f.SelectForTier(defs, "行业商会", "municipal"); len(got) != 2 {
		t.Errorf("municipal chamber tier should keep core subset, got %d", len(got))
	}
}

func TestSelectForTier_UnknownTierDegradesToFull(t *testing.T) {
	f := NewFilter()
	defs := tieredIndicatorSet()

	if got := f.SelectForTier(defs, "有限责任公司", "mystery"); len(got) != len(defs) {
		t.Errorf("unknown tier should degrade to the broadest level, got %d", len(got))
	}
}

func TestIsApplicable_ScopeMatching(t *testing.T) {
	f := NewFilter()

	def := indicator.Definition{Kind: "合规性指标", Major: "合规组织建设"}

	def.Scope = ""
	if !f.IsApplicable(def, "有限责任公司", "advanced") {
		t.Error("blank scope must match every organization")
	}

	def.Scope = "所有企业"
	if !f.IsApplicable(def, "个体工商户", "advanced") {
		t.Error("wildcard scope must match every organization")
	}

	def.Scope = "大型企业"
	if f.IsApplicable(def, "个体工商户", "advanced") {
		t.Error("non-matching scope must not apply")
	}

	def.Scope = "大型企业、个体工商户"
	if !f.IsApplicable(def, "个体工商户", "advanced") {
		t.Error("substring scope match must apply")
	}
}

func TestIsApplicable_CorporateEquivalence(t *testing.T) {
	f := NewFilter()
	def := indicator.Definition{Kind: "合规性指标", Major: "合规组织建设", Scope: "公司制企业"}

	if !f.IsApplicable(def, "有限责任公司", "advanced") {
		t.Error("limited-liability company should count as a corporate enterprise")
	}
	if !f.IsApplicable(def, "股份有限公司", "advanced") {
		t.Error("joint-stock company should count as a corporate enterprise")
	}
	if f.IsApplicable(def, "合伙企业", "advanced") {
		t.Error("partnership should not count as a corporate enterprise")
	}
}
