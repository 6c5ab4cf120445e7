package scoring

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"goeval/domain/indicator"
)

// Classifier interprets one leaf indicator's free-text scoring rule into a
// typed ClassifiedRule. Classification is a pure function of
// (ruleText, scoreValue); a shared RuleCache memoizes results process-wide.
type Classifier struct {
	cache *RuleCache
}

// NewClassifier creates a classifier with its own memo cache.
func NewClassifier() *Classifier {
	return &Classifier{cache: NewRuleCache()}
}

// NewClassifierWithCache creates a classifier sharing an external cache.
func NewClassifierWithCache(cache *RuleCache) *Classifier {
	return &Classifier{cache: cache}
}

// Item-count tier patterns over rule text like 实现'1-2项'的得1分. Dash and
// quote variants cover the full-width punctuation the sheets mix freely.
var (
	rangeTierPattern = regexp.MustCompile(`(?:实现|完成|做到|达到)\s*['‘“"]?(\d+)\s*[-—–~～]\s*(\d+)\s*['’”"]?\s*项\s*['’”"]?\s*的?\s*得\s*(\d+(?:\.\d+)?)\s*分`)
	countTierPattern = regexp.MustCompile(`(?:实现|完成|做到|达到)\s*['‘“"]?(\d+)\s*['’”"]?\s*项\s*['’”"]?\s*的?\s*得\s*(\d+(?:\.\d+)?)\s*分`)

	itemCountPattern  = regexp.MustCompile(`\d+\s*(?:[-—–~～]\s*\d+\s*)?项`)
	scoringVerb       = regexp.MustCompile(`得\s*\d+(?:\.\d+)?\s*分`)
	scoreRangePattern = regexp.MustCompile(`^\s*(-?\d+(?:\.\d+)?)\s*[-—–~～]\s*(-?\d+(?:\.\d+)?)\s*$`)
)

// ParseScoreValue turns a declared score value (single number or a textual
// "min-max" range) into a (min, max) pair. Unparseable input falls back to
// the default single point.
func ParseScoreValue(scoreValue string) (min, max float64) {
	s := strings.TrimSpace(scoreValue)
	if s == "" {
		return 0, 1
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		if v >= 0 {
			return 0, v
		}
		return v, 0
	}
	if m := scoreRangePattern.FindStringSubmatch(s); m != nil {
		lo, err1 := strconv.ParseFloat(m[1], 64)
		hi, err2 := strconv.ParseFloat(m[2], 64)
		if err1 == nil && err2 == nil {
			if lo > hi {
				lo, hi = hi, lo
			}
			return lo, hi
		}
	}
	return 0, 1
}

// Classify determines which scoring regime applies to a rule. Precedence:
// negative (min < 0), all-required, multi-item, graded, binary. Empty rule
// text always falls to binary regardless of score shape.
func (c *Classifier) Classify(ruleText, scoreValue string) indicator.ClassifiedRule {
	if c.cache != nil {
		if rule, ok := c.cache.Get(ruleText, scoreValue); ok {
			return rule
		}
	}
	rule := classify(ruleText, scoreValue)
	if c.cache != nil {
		c.cache.Put(ruleText, scoreValue, rule)
	}
	return rule
}

func classify(ruleText, scoreValue string) indicator.ClassifiedRule {
	min, max := ParseScoreValue(scoreValue)
	text := strings.TrimSpace(ruleText)

	if min < 0 {
		return indicator.ClassifiedRule{
			Kind:     indicator.KindNegative,
			MinScore: min,
			MaxScore: max,
			Conditions: []indicator.RuleCondition{
				{Description: "存在违规行为", Score: min},
				{Description: "无违规行为", Score: 0},
			},
		}
	}

	// Blank rule text always degrades to the default binary rule; only the
	// negative score shape above outranks it.
	if text != "" {
		if containsAny(text, allRequiredMarkers) {
			return indicator.ClassifiedRule{
				Kind:     indicator.KindAllRequired,
				MinScore: min,
				MaxScore: max,
				Conditions: []indicator.RuleCondition{
					{Description: "全部完成", Score: max},
					{Description: "部分完成或未完成", Score: 0},
				},
			}
		}

		if itemCountPattern.MatchString(text) && scoringVerb.MatchString(text) {
			return indicator.ClassifiedRule{
				Kind:       indicator.KindMultiItem,
				MinScore:   min,
				MaxScore:   max,
				Conditions: extractTiers(text, max),
			}
		}
	}

	if text != "" && max-min > 1 {
		return indicator.ClassifiedRule{
			Kind:       indicator.KindGraded,
			MinScore:   min,
			MaxScore:   max,
			Conditions: gradedTiers(min, max),
		}
	}

	return indicator.ClassifiedRule{
		Kind:     indicator.KindBinary,
		MinScore: min,
		MaxScore: max,
		Conditions: []indicator.RuleCondition{
			{Description: "已完成/已建立", Score: max},
			{Description: "未完成/未建立", Score: 0},
		},
	}
}

// extractTiers scans rule text for explicit item-count tiers. Range tiers
// are removed from the text before the single-count scan so "1-2项" is not
// re-matched as a lone "2项". A zero-item tier is always ensured.
func extractTiers(text string, max float64) []indicator.RuleCondition {
	var tiers []indicator.RuleCondition

	for _, m := range rangeTierPattern.FindAllStringSubmatch(text, -1) {
		lo, _ := strconv.Atoi(m[1])
		hi, _ := strconv.Atoi(m[2])
		score, err := strconv.ParseFloat(m[3], 64)
		if err != nil {
			continue
		}
		tiers = append(tiers, indicator.RuleCondition{
			Description: fmt.Sprintf("完成%d-%d项", lo, hi),
			Score:       score,
			MinItems:    lo,
			MaxItems:    hi,
		})
	}

	remainder := rangeTierPattern.ReplaceAllString(text, "")
	for _, m := range countTierPattern.FindAllStringSubmatch(remainder, -1) {
		n, _ := strconv.Atoi(m[1])
		score, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			continue
		}
		tiers = append(tiers, indicator.RuleCondition{
			Description: fmt.Sprintf("完成%d项", n),
			Score:       score,
			MinItems:    n,
			MaxItems:    n,
		})
	}

	// No explicit tier extracted: default none / some / all split.
	if len(tiers) == 0 {
		tiers = []indicator.RuleCondition{
			{Description: "均未完成", Score: 0},
			{Description: "部分完成", Score: max / 2},
			{Description: "全部完成", Score: max},
		}
		return tiers
	}

	hasZero := false
	for _, t := range tiers {
		if t.Score == 0 {
			hasZero = true
			break
		}
	}
	if !hasZero {
		tiers = append([]indicator.RuleCondition{{Description: "均未完成", Score: 0}}, tiers...)
	}
	return tiers
}

// gradedTiers produces floor(max-min)+1 evenly-spaced tiers from min to max.
func gradedTiers(min, max float64) []indicator.RuleCondition {
	n := int(math.Floor(max-min)) + 1
	if n < 2 {
		n = 2
	}
	tiers := make([]indicator.RuleCondition, 0, n)
	step := (max - min) / float64(n-1)
	for i := 0; i < n; i++ {
		tiers = append(tiers, indicator.RuleCondition{
			Description: fmt.Sprintf("第%d档", i+1),
			Score:       min + step*float64(i),
		})
	}
	return tiers
}

// RuleCache memoizes classification results keyed on (ruleText, scoreValue).
// Safe for concurrent use; classification is deterministic so entries never
// need invalidation unless the source text itself changes.
type RuleCache struct {
	mu      sync.RWMutex
	entries map[ruleCacheKey]indicator.ClassifiedRule
}

type ruleCacheKey struct {
	ruleText   string
	scoreValue string
}

// NewRuleCache creates an empty rule cache.
func NewRuleCache() *RuleCache {
	return &RuleCache{entries: make(map[ruleCacheKey]indicator.ClassifiedRule)}
}

// Get returns the cached classification, if present.
func (c *RuleCache) Get(ruleText, scoreValue string) (indicator.ClassifiedRule, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rule, ok := c.entries[ruleCacheKey{ruleText, scoreValue}]
	return rule, ok
}

// Put stores a classification result.
func (c *RuleCache) Put(ruleText, scoreValue string, rule indicator.ClassifiedRule) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[ruleCacheKey{ruleText, scoreValue}] = rule
}

// Len returns the number of cached classifications.
func (c *RuleCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
