package tiering

import (
	"strings"

	"goeval/domain/indicator"
)

// Richness is the underlying indicator-richness level a (category, tier)
// pair maps onto. All three user categories share the same three levels so
// reports stay comparable across tiers.
type Richness string

const (
	// RichnessFull includes every indicator.
	RichnessFull Richness = "full"
	// RichnessStandard restricts to compliance and effectiveness kinds.
	RichnessStandard Richness = "standard"
	// RichnessCore restricts further to compliance kinds within the core
	// major-indicator categories.
	RichnessCore Richness = "core"
)

// User categories recognized by the tier table.
const (
	CategoryEnterprise = "enterprise"
	CategoryChamber    = "chamber"
	CategoryExpert     = "expert"
)

// tierTable maps user category -> tier -> richness level. The table is fixed
// application policy: questionnaire generation and scoring both consult it,
// so changing an entry changes which leaves exist for a whole tier.
var tierTable = map[string]map[string]Richness{
	CategoryEnterprise: {
		"beginner": RichnessCore, "初级": RichnessCore,
		"intermediate": RichnessStandard, "中级": RichnessStandard,
		"advanced": RichnessFull, "高级": RichnessFull,
	},
	CategoryChamber: {
		"municipal": RichnessCore, "市级": RichnessCore,
		"provincial": RichnessStandard, "省级": RichnessStandard,
		"national": RichnessFull, "国家级": RichnessFull,
	},
	CategoryExpert: {
		"junior": RichnessCore, "初级": RichnessCore,
		"intermediate": RichnessStandard, "中级": RichnessStandard,
		"senior": RichnessFull, "高级": RichnessFull,
	},
}

// coreMajors are the major-indicator categories kept at the core richness
// level, matched by containment against the sheet's major labels.
var coreMajors = []string{"合规组织", "合规制度", "运行机制"}

// Indicator kind keywords. The kind column is free text, so membership is by
// containment rather than equality.
var (
	complianceKinds    = []string{"合规", "compliance"}
	effectivenessKinds = []string{"有效", "成效", "effectiveness"}
)

// orgEquivalences treats specific legal forms as members of a broader scope
// label, e.g. both company forms count as corporate enterprises.
var orgEquivalences = map[string][]string{
	"有限责任公司": {"公司制企业", "公司"},
	"股份有限公司": {"公司制企业", "公司"},
}

// scopeWildcards always match regardless of organization type.
var scopeWildcards = []string{"所有企业", "全部企业", "所有", "全部", "all"}

// Filter decides which leaf indicators apply to a given respondent. It is
// consulted both when generating a questionnaire and when scoring one.
type Filter struct{}

// NewFilter creates a filter over the standing tier table.
func NewFilter() *Filter {
	return &Filter{}
}

// IsApplicable reports whether an indicator applies to the respondent's
// organization type and tier.
func (f *Filter) IsApplicable(def indicator.Definition, orgType, tier string) bool {
	if !scopeMatches(def.Scope, orgType) {
		return false
	}
	return f.kindAllowed(def, f.richnessFor(orgType, tier))
}

// SelectForTier projects the indicator set down to the leaves applicable for
// one (orgType, tier) pair, preserving source order.
func (f *Filter) SelectForTier(defs []indicator.Definition, orgType, tier string) []indicator.Definition {
	richness := f.richnessFor(orgType, tier)
	selected := make([]indicator.Definition, 0, len(defs))
	for _, def := range defs {
		if scopeMatches(def.Scope, orgType) && f.kindAllowed(def, richness) {
			selected = append(selected, def)
		}
	}
	return selected
}

// richnessFor resolves the richness level for a respondent. Unknown
// categories or tiers degrade to the broadest level rather than filtering
// everything out.
func (f *Filter) richnessFor(orgType, tier string) Richness {
	tiers, ok := tierTable[categoryOf(orgType)]
	if !ok {
		return RichnessFull
	}
	richness, ok := tiers[strings.ToLower(strings.TrimSpace(tier))]
	if !ok {
		return RichnessFull
	}
	return richness
}

func (f *Filter) kindAllowed(def indicator.Definition, richness Richness) bool {
	switch richness {
	case RichnessStandard:
		return containsAny(def.Kind, complianceKinds) || containsAny(def.Kind, effectivenessKinds)
	case RichnessCore:
		return containsAny(def.Kind, complianceKinds) && containsAny(def.Major, coreMajors)
	default:
		return true
	}
}

// categoryOf buckets an organization type string into a user category.
func categoryOf(orgType string) string {
	switch {
	case strings.Contains(orgType, "商会") || strings.Contains(orgType, "协会"):
		return CategoryChamber
	case strings.Contains(orgType, "专家"):
		return CategoryExpert
	default:
		return CategoryEnterprise
	}
}

// scopeMatches checks the free-text applicable-scope column against an
// organization type. Blank scope and wildcard phrasings match everything.
func scopeMatches(scope, orgType string) bool {
	scope = strings.TrimSpace(scope)
	if scope == "" || containsAny(scope, scopeWildcards) {
		return true
	}
	if orgType == "" {
		return false
	}
	if strings.Contains(scope, orgType) {
		return true
	}
	for _, broader := range orgEquivalences[orgType] {
		if strings.Contains(scope, broader) {
			return true
		}
	}
	return false
}

func containsAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
