package report

import (
	"fmt"
	"sort"
	"strings"

	"goeval/domain/submission"
	"goeval/domain/summary"
	"goeval/internal/analytics"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Builder renders a narrative evaluation report from a score summary.
// Output is markdown (the JSON-compatible ScoreSummary remains the contract
// for external renderers); HTML conversion is provided for the web surface.
type Builder struct{}

// NewBuilder creates a report builder
func NewBuilder() *Builder {
	return &Builder{}
}

// BuildMarkdown assembles the report document. Cohort stats are optional;
// when present a comparability section is appended.
func (b *Builder) BuildMarkdown(sub *submission.Submission, sum *summary.ScoreSummary, cohort *analytics.CohortStats) string {
	var sb strings.Builder

	title := sub.OrgName
	if title == "" {
		title = sub.ID.String()
	}
	fmt.Fprintf(&sb, "# 评估报告：%s\n\n", title)
	fmt.Fprintf(&sb, "- 组织类型：%s（%s）\n", sub.OrgType, sub.Tier)
	fmt.Fprintf(&sb, "- 提交时间：%s\n\n", sub.SubmittedAt.Format("2006-01-02 15:04"))

	fmt.Fprintf(&sb, "## 总体得分\n\n")
	fmt.Fprintf(&sb, "| 总分 | 满分 | 得分率 | 等级 |\n|---|---|---|---|\n")
	fmt.Fprintf(&sb, "| %.1f | %.1f | %.1f%% | %s（%s） |\n\n",
		sum.TotalScore, sum.MaxPossibleScore, sum.ScorePercentage, sum.GradeLetter, sum.GradeLabel)
	fmt.Fprintf(&sb, "答题完成率 %.1f%%（%d/%d 项适用指标）。\n\n",
		sum.CompletionRate, sum.AnsweredCount, sum.ApplicableCount)

	if sum.NegativePoints < 0 {
		fmt.Fprintf(&sb, "> 否决类指标合计扣分 %.1f 分。\n\n", -sum.NegativePoints)
	}

	fmt.Fprintf(&sb, "## 一级指标得分\n\n")
	fmt.Fprintf(&sb, "| 一级指标 | 得分 | 满分 | 得分率 |\n|---|---|---|---|\n")
	for _, name := range sortedKeys(sum.ByMajor) {
		cat := sum.ByMajor[name]
		fmt.Fprintf(&sb, "| %s | %.1f | %.1f | %.1f%% |\n", name, cat.Score, cat.MaxScore, cat.Percentage)
	}
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "## 二级指标得分\n\n")
	fmt.Fprintf(&sb, "| 二级指标 | 所属一级 | 得分 | 满分 | 得分率 |\n|---|---|---|---|---|\n")
	for _, name := range sortedKeys(sum.ByMinor) {
		cat := sum.ByMinor[name]
		fmt.Fprintf(&sb, "| %s | %s | %.1f | %.1f | %.1f%% |\n", name, cat.Major, cat.Score, cat.MaxScore, cat.Percentage)
	}
	sb.WriteString("\n")

	if cohort != nil && cohort.Count > 0 {
		fmt.Fprintf(&sb, "## 同类对比\n\n")
		fmt.Fprintf(&sb, "同类型组织共 %d 家，平均得分率 %.1f%%，中位数 %.1f%%。\n\n",
			cohort.Count, cohort.Mean, cohort.Median)
	}

	return sb.String()
}

// RenderHTML converts a markdown report to HTML.
func (b *Builder) RenderHTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	doc := p.Parse([]byte(md))
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.Render(doc, renderer)
}

func sortedKeys(m map[string]summary.CategoryScore) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
