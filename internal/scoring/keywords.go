package scoring

import "strings"

// Keyword groups driving token interpretation. The source indicator sheets
// are written in Chinese, so the groups are Chinese phrases matched by
// containment. Matching is a fixed protocol with questionnaire generation,
// not inference from arbitrary text.

// affirmativeTokens signal a completed / established state.
var affirmativeTokens = []string{
	"是", "有", "已建立", "已完成", "已实现", "已落实", "已制定", "已开展",
}

// negationTokens signal a missing / not-established state. Checked before
// affirmatives because several negations embed an affirmative substring
// ("没有" contains "有").
var negationTokens = []string{
	"否", "无", "没有", "未建立", "未完成", "未实现", "未落实", "不存在", "未发生",
}

// violationTokens signal that a veto indicator's violation is present.
var violationTokens = []string{
	"是", "存在", "有", "发生",
}

// allRequiredMarkers identify rules that award credit only for full
// completion ("all must be completed / no credit for partial").
var allRequiredMarkers = []string{
	"全部完成", "全部建立", "全部落实", "全部达到", "缺一不可",
	"部分完成不得分", "不全不得分", "未全部完成不得分", "部分不得分",
}

// containsAny reports whether text contains at least one of the keywords.
func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// countHits sums the occurrences of every keyword in text.
func countHits(text string, keywords []string) int {
	total := 0
	for _, kw := range keywords {
		total += strings.Count(text, kw)
	}
	return total
}

// leadingLetter returns the upper-cased latin letter a choice token starts
// with, or 0 when the token does not follow the lettered-option convention.
func leadingLetter(token string) rune {
	for _, r := range token {
		switch {
		case r >= 'A' && r <= 'Z':
			return r
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		default:
			return 0
		}
	}
	return 0
}
