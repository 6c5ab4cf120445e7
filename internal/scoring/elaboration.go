package scoring

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// ElaborationConfig holds the tunable weights of the partial-completion
// scorer. The keyword lists and thresholds are heuristic conventions carried
// over from the source evaluation sheets, not calibrated measurements; they
// are configuration data precisely so deployments can tune them.
type ElaborationConfig struct {
	BaseFactor float64 // starting quality factor
	EmptyRatio float64 // span ratio awarded for an empty elaboration
	MinFactor  float64 // quality factor floor
	MaxFactor  float64 // quality factor ceiling

	// LengthTiers are checked highest threshold first; the first tier the
	// rune count reaches contributes its bonus.
	LengthTiers []LengthTier

	PositiveKeywords []string
	NegativeKeywords []string
	KeywordStep      float64 // factor delta per net keyword hit
	KeywordCap       float64 // absolute cap on the keyword adjustment

	DigitBonus   float64
	PercentBonus float64
	DateBonus    float64
	EvidenceCap  float64 // aggregate cap on evidence bonuses
}

// LengthTier awards a bonus once the elaboration reaches MinRunes.
type LengthTier struct {
	MinRunes int
	Bonus    float64
}

// DefaultElaborationConfig returns the weights used by the source system.
func DefaultElaborationConfig() ElaborationConfig {
	return ElaborationConfig{
		BaseFactor: 0.5,
		EmptyRatio: 0.3,
		MinFactor:  0.3,
		MaxFactor:  0.9,
		LengthTiers: []LengthTier{
			{MinRunes: 100, Bonus: 0.20},
			{MinRunes: 50, Bonus: 0.15},
			{MinRunes: 20, Bonus: 0.10},
			{MinRunes: 10, Bonus: 0.05},
		},
		PositiveKeywords: []string{
			"已", "建立", "完成", "实施", "落实", "制定", "开展", "健全", "执行", "形成",
		},
		NegativeKeywords: []string{
			"未", "没有", "暂未", "缺乏", "尚未", "计划", "待", "不足",
		},
		KeywordStep:  0.05,
		KeywordCap:   0.20,
		DigitBonus:   0.04,
		PercentBonus: 0.03,
		DateBonus:    0.03,
		EvidenceCap:  0.10,
	}
}

var (
	digitPattern = regexp.MustCompile(`[0-9０-９]`)
	datePattern  = regexp.MustCompile(`\d{4}\s*年|\d{1,2}\s*月|\d{1,2}\s*日|\d{4}[-/]\d{1,2}`)
)

// factorEpsilon absorbs float accumulation error when the summed bonuses land
// a ulp short of a band edge, so the documented caps engage exactly.
const factorEpsilon = 1e-9

// ElaborationScorer estimates how complete a "partially done" answer is from
// its free-text justification. This is explicitly a proxy heuristic over
// surface features (length, keyword polarity, presence of figures and
// dates), not semantic understanding of the text.
type ElaborationScorer struct {
	cfg ElaborationConfig
}

// NewElaborationScorer creates a scorer with the default weights.
func NewElaborationScorer() *ElaborationScorer {
	return &ElaborationScorer{cfg: DefaultElaborationConfig()}
}

// NewElaborationScorerWithConfig creates a scorer with custom weights.
func NewElaborationScorerWithConfig(cfg ElaborationConfig) *ElaborationScorer {
	return &ElaborationScorer{cfg: cfg}
}

// Score maps elaboration text onto [minScore, maxScore] through a composite
// quality factor. The (0,2) span keeps two documented conventions from the
// source sheets: an empty elaboration scores exactly 0.5, and the final
// score is clamped into [0.5, 1.8].
func (s *ElaborationScorer) Score(text string, minScore, maxScore float64) float64 {
	span := maxScore - minScore
	zeroTwoSpan := minScore == 0 && maxScore == 2

	text = strings.TrimSpace(text)
	if text == "" {
		if zeroTwoSpan {
			return 0.5
		}
		return minScore + span*s.cfg.EmptyRatio
	}

	factor := s.cfg.BaseFactor
	factor += s.lengthBonus(text)
	factor += s.keywordAdjustment(text)
	factor += s.evidenceBonus(text)

	if factor <= s.cfg.MinFactor+factorEpsilon {
		factor = s.cfg.MinFactor
	}
	if factor >= s.cfg.MaxFactor-factorEpsilon {
		factor = s.cfg.MaxFactor
	}

	score := minScore + span*factor
	if zeroTwoSpan {
		if score < 0.5 {
			score = 0.5
		}
		if score > 1.8 {
			score = 1.8
		}
	}
	return score
}

func (s *ElaborationScorer) lengthBonus(text string) float64 {
	n := utf8.RuneCountInString(text)
	for _, tier := range s.cfg.LengthTiers {
		if n >= tier.MinRunes {
			return tier.Bonus
		}
	}
	return 0
}

func (s *ElaborationScorer) keywordAdjustment(text string) float64 {
	net := countHits(text, s.cfg.PositiveKeywords) - countHits(text, s.cfg.NegativeKeywords)
	adj := float64(net) * s.cfg.KeywordStep
	if adj > s.cfg.KeywordCap {
		adj = s.cfg.KeywordCap
	}
	if adj < -s.cfg.KeywordCap {
		adj = -s.cfg.KeywordCap
	}
	return adj
}

func (s *ElaborationScorer) evidenceBonus(text string) float64 {
	bonus := 0.0
	if digitPattern.MatchString(text) {
		bonus += s.cfg.DigitBonus
	}
	if strings.Contains(text, "%") || strings.Contains(text, "％") {
		bonus += s.cfg.PercentBonus
	}
	if datePattern.MatchString(text) {
		bonus += s.cfg.DateBonus
	}
	if bonus > s.cfg.EvidenceCap {
		bonus = s.cfg.EvidenceCap
	}
	return bonus
}
