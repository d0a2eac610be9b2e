package pipeline

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/jonathan/resume-matcher/internal/types"
)

const (
	recentRunsLimit = 12
	topMissingLimit = 10
)

// Analytics aggregates every stored analysis: averages, the most frequently missing required
// skills and the most recent runs.
func (m *Matcher) Analytics(ctx context.Context) (*types.AnalyticsSummary, error) {
	reports, err := m.store.ListAnalyses(ctx)
	if err != nil {
		return nil, &StepError{Step: StepAggregate, Cause: err}
	}
	summary := Summarize(reports)
	m.emitProgress(StepAggregate, "Aggregated analyses", summary)
	return summary, nil
}

// Summarize aggregates reports given oldest first. Missing skills with equal counts keep the
// order in which they were first seen, newest report first.
func Summarize(reports []*types.MatchReport) *types.AnalyticsSummary {
	summary := &types.AnalyticsSummary{
		TopMissingRequiredSkills: []string{},
		RecentRuns:               []types.AnalyticsRun{},
	}

	var sumFinal, sumSemantic, sumSkill float64
	counts := make(map[string]int)
	var order []string

	for i := len(reports) - 1; i >= 0; i-- {
		r := reports[i]
		summary.TotalRuns++
		sumFinal += r.Score.FinalMatchScore
		sumSemantic += r.Score.SemanticSimilarityScore
		sumSkill += r.Score.SkillOverlapScore

		for _, s := range r.SkillGap.MissingRequiredSkills {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			if counts[s] == 0 {
				order = append(order, s)
			}
			counts[s]++
		}

		if len(summary.RecentRuns) < recentRunsLimit {
			summary.RecentRuns = append(summary.RecentRuns, types.AnalyticsRun{
				AnalysisID:      r.AnalysisID,
				CreatedAt:       r.CreatedAt,
				FinalMatchScore: r.Score.FinalMatchScore,
			})
		}
	}

	if summary.TotalRuns > 0 {
		n := float64(summary.TotalRuns)
		summary.AvgFinalScore = roundAverage(sumFinal / n)
		summary.AvgSemanticScore = roundAverage(sumSemantic / n)
		summary.AvgSkillScore = roundAverage(sumSkill / n)
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > topMissingLimit {
		order = order[:topMissingLimit]
	}
	summary.TopMissingRequiredSkills = append(summary.TopMissingRequiredSkills, order...)
	return summary
}

// roundAverage rounds to two decimals.
func roundAverage(x float64) float64 {
	return math.RoundToEven(x*100) / 100
}
