package excel

import "strings"

// Logical fields of an indicator row. The source workbooks vary their column
// headers between revisions, so each field carries an ordered candidate list
// and resolution takes the first header that matches.
const (
	fieldSequence = "sequence"
	fieldMajor    = "major"
	fieldMinor    = "minor"
	fieldLeaf     = "leaf"
	fieldKind     = "kind"
	fieldScore    = "score"
	fieldRule     = "rule"
	fieldScope    = "scope"
)

var columnCandidates = map[string][]string{
	fieldSequence: {"序号", "编号", "sequence", "seq", "no."},
	fieldMajor:    {"一级指标", "一级", "major_indicator", "major"},
	fieldMinor:    {"二级指标", "二级", "minor_indicator", "minor"},
	fieldLeaf:     {"三级指标", "指标内容", "评价内容", "评估内容", "leaf_text", "indicator_text"},
	fieldKind:     {"指标性质", "指标类型", "类型", "indicator_kind", "kind"},
	fieldScore:    {"分值", "标准分", "score_value", "score"},
	fieldRule:     {"评分规则", "评分标准", "计分方法", "scoring_rule", "rule"},
	fieldScope:    {"适用范围", "适用对象", "applicable_scope", "scope"},
}

// resolveColumns maps each logical field onto the first matching header.
// Matching is case-insensitive, exact first and containment second, so a
// header like "三级指标（评价内容）" still resolves the leaf field. Fields
// with no matching header are absent from the result.
func resolveColumns(headers []string) map[string]string {
	resolved := make(map[string]string, len(columnCandidates))
	for field, candidates := range columnCandidates {
		if header, ok := matchColumn(headers, candidates); ok {
			resolved[field] = header
		}
	}
	return resolved
}

func matchColumn(headers []string, candidates []string) (string, bool) {
	for _, cand := range candidates {
		for _, h := range headers {
			if strings.EqualFold(strings.TrimSpace(h), cand) {
				return h, true
			}
		}
	}
	for _, cand := range candidates {
		for _, h := range headers {
			if strings.Contains(strings.ToLower(h), strings.ToLower(cand)) {
				return h, true
			}
		}
	}
	return "", false
}
