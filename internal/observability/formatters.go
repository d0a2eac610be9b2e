// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-matcher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, shorten(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// shorten truncates s to n runes, ending with "..." when cut.
func shorten(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// writeList writes up to limit items as bullets, with a trailing "and N more" line.
func writeList(sb *strings.Builder, items []string, limit int) {
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}

// PrintExtractedSkills outputs the top skills found in a text with their confidence.
func (p *Printer) PrintExtractedSkills(skills []types.ExtractedSkill) {
	if len(skills) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Skills found: %d\n\n", len(skills)))

	count := min(len(skills), maxItemsToShow)
	for i := 0; i < count; i++ {
		skill := skills[i]
		sb.WriteString(fmt.Sprintf("#%d  %-24s %5.1f\n", i+1, skill.Skill, skill.Confidence))
		if len(skill.SourceSnippets) > 0 {
			sb.WriteString(fmt.Sprintf("    \"%s\"\n", shorten(skill.SourceSnippets[0], 44)))
		}
	}
	if len(skills) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more skills", len(skills)-maxItemsToShow))
	}

	p.printBox("EXTRACTED SKILLS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJobSignals outputs a human-readable summary of the processed job description.
func (p *Printer) PrintJobSignals(signals *types.JobDescriptionSignals) {
	if signals == nil {
		return
	}

	var sb strings.Builder
	level := "(unknown)"
	if signals.ExperienceLevel != nil {
		level = *signals.ExperienceLevel
	}
	sb.WriteString(fmt.Sprintf("Experience level: %s\n\n", level))

	if len(signals.RequiredSkills) > 0 {
		sb.WriteString("Required:\n")
		writeList(&sb, signals.RequiredSkills, maxItemsToShow)
		sb.WriteString("\n")
	}
	if len(signals.PreferredSkills) > 0 {
		sb.WriteString("Preferred:\n")
		writeList(&sb, signals.PreferredSkills, 3)
		sb.WriteString("\n")
	}
	if len(signals.RoleKeywords) > 0 {
		count := min(len(signals.RoleKeywords), 8)
		sb.WriteString(fmt.Sprintf("Keywords: %s\n", strings.Join(signals.RoleKeywords[:count], ", ")))
	}

	p.printBox("JOB DESCRIPTION SIGNALS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSkillGap outputs matching and missing skills.
func (p *Printer) PrintSkillGap(gap *types.SkillGap) {
	if gap == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Matching (%d):\n", len(gap.MatchingSkills)))
	writeList(&sb, gap.MatchingSkills, maxItemsToShow)
	sb.WriteString(fmt.Sprintf("\nMissing required (%d):\n", len(gap.MissingRequiredSkills)))
	writeList(&sb, gap.MissingRequiredSkills, maxItemsToShow)
	sb.WriteString(fmt.Sprintf("\nNice to have (%d):\n", len(gap.NiceToHaveSkills)))
	writeList(&sb, gap.NiceToHaveSkills, 3)

	p.printBox("SKILL GAP", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintScore outputs the fused match score and its components.
func (p *Printer) PrintScore(score *types.ScoreResult) {
	if score == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Final match:   %6.2f\n", score.FinalMatchScore))
	sb.WriteString(fmt.Sprintf("Semantic:      %6.2f  (weight %.4f)\n", score.SemanticSimilarityScore, score.Weights.Semantic))
	sb.WriteString(fmt.Sprintf("Skill overlap: %6.2f  (weight %.4f)", score.SkillOverlapScore, score.Weights.Skill))

	p.printBox("MATCH SCORE", sb.String())
}

// PrintAtsReport outputs the ATS checks, red flags and recommendations.
func (p *Printer) PrintAtsReport(report *types.AtsReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall:             %6.2f\n", report.OverallScore))
	sb.WriteString(fmt.Sprintf("Required coverage:   %6.2f%%\n", report.RequiredCoveragePct))
	sb.WriteString(fmt.Sprintf("Preferred coverage:  %6.2f%%\n", report.PreferredCoveragePct))
	sb.WriteString(fmt.Sprintf("Sections present:    %s\n", joinOrNone(report.SectionsPresent)))
	sb.WriteString(fmt.Sprintf("Sections missing:    %s\n", joinOrNone(report.SectionsMissing)))

	if len(report.RedFlags) > 0 {
		sb.WriteString("\n")
		for _, flag := range report.RedFlags {
			sb.WriteString(fmt.Sprintf("⚠ %s\n", flag))
		}
	}
	if len(report.Recommendations) > 0 {
		sb.WriteString("\nRecommendations:\n")
		writeList(&sb, report.Recommendations, maxItemsToShow)
	}

	p.printBox("ATS REPORT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintEvidence outputs the resume sentences backing each skill.
func (p *Printer) PrintEvidence(evidence map[string][]string, skills []string) {
	var sb strings.Builder
	shown := 0
	for _, skill := range skills {
		snippets, ok := evidence[skill]
		if !ok {
			continue
		}
		if shown == maxItemsToShow {
			break
		}
		sb.WriteString(fmt.Sprintf("%s:\n", skill))
		for _, s := range snippets {
			sb.WriteString(fmt.Sprintf("  \"%s\"\n", s))
		}
		shown++
	}
	if shown == 0 {
		return
	}

	p.printBox("EVIDENCE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatchReport prints every section of an analysis.
func (p *Printer) PrintMatchReport(report *types.MatchReport) {
	if report == nil {
		return
	}
	p.PrintScore(&report.Score)
	p.PrintSkillGap(&report.SkillGap)
	p.PrintAtsReport(report.ATS)
	if report.Debug != nil {
		p.PrintEvidence(report.Evidence, append(append([]string{}, report.Debug.JDRequiredSkills...), report.Debug.JDPreferredSkills...))
	}
}

// PrintCompare outputs the ranked job descriptions of a comparison.
func (p *Printer) PrintCompare(resp *types.CompareResponse) {
	if resp == nil || len(resp.Results) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Resume: %s\n\n", resp.ResumeID))
	for i, result := range resp.Results {
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, shorten(result.Title, 44)))
		sb.WriteString(fmt.Sprintf("    Score: %.2f  missing: %d\n", result.Score.FinalMatchScore, len(result.SkillGap.MissingRequiredSkills)))
	}

	p.printBox("JOB COMPARISON", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAnalytics outputs aggregate statistics over stored analyses.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintAnalytics(summary *types.AnalyticsSummary) {
	if summary == nil || summary.TotalRuns == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "NO ANALYSES RECORDED")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total runs:      %d\n", summary.TotalRuns))
	sb.WriteString(fmt.Sprintf("Avg final:       %.2f\n", summary.AvgFinalScore))
	sb.WriteString(fmt.Sprintf("Avg semantic:    %.2f\n", summary.AvgSemanticScore))
	sb.WriteString(fmt.Sprintf("Avg skill:       %.2f\n", summary.AvgSkillScore))

	if len(summary.TopMissingRequiredSkills) > 0 {
		sb.WriteString("\nMost often missing:\n")
		writeList(&sb, summary.TopMissingRequiredSkills, maxItemsToShow)
	}
	if len(summary.RecentRuns) > 0 {
		sb.WriteString("\nRecent runs:\n")
		count := min(len(summary.RecentRuns), maxItemsToShow)
		for i := 0; i < count; i++ {
			run := summary.RecentRuns[i]
			sb.WriteString(fmt.Sprintf("  %s  %6.2f\n", run.CreatedAt.Format("2006-01-02 15:04"), run.FinalMatchScore))
		}
	}

	p.printBox("ANALYTICS", strings.TrimSuffix(sb.String(), "\n"))
}
