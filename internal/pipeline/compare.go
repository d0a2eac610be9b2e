package pipeline

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/resume-matcher/internal/gap"
	"github.com/jonathan/resume-matcher/internal/jd"
	"github.com/jonathan/resume-matcher/internal/scoring"
	"github.com/jonathan/resume-matcher/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// maxTitleRunes bounds the title of a comparison entry.
const maxTitleRunes = 80

// Compare ranks several job descriptions against one stored resume by final match score.
// Job descriptions are processed concurrently; comparisons are not stored.
func (m *Matcher) Compare(ctx context.Context, req types.CompareRequest) (*types.CompareResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid compare request: %w", err)
	}

	record, resumeText, err := m.loadResumeText(ctx, req.ResumeID)
	if err != nil {
		return nil, err
	}
	if m.embedder == nil {
		return nil, ErrEmbedderUnavailable
	}

	resumeVec, err := m.embed(ctx, resumeText)
	if err != nil {
		return nil, err
	}
	resumeSkills := record.Extracted.Skills

	results := make([]types.CompareResult, len(req.JobDescriptions))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(compareWorkers)

	for idx, item := range req.JobDescriptions {
		g.Go(func() error {
			signals := jd.ProcessJobDescription(item.Text, m.taxonomy)
			jdVec, err := m.embed(gCtx, signals.CleanedText)
			if err != nil {
				return fmt.Errorf("job description %d: %w", idx+1, err)
			}

			score, err := scoring.ComputeMatchScore(
				resumeVec, jdVec,
				resumeSkills, signals.RequiredSkills, signals.PreferredSkills,
				m.semanticWeight, m.skillWeight,
			)
			if err != nil {
				return &StepError{Step: StepCompareJob, Cause: fmt.Errorf("job description %d: %w", idx+1, err)}
			}

			results[idx] = types.CompareResult{
				Title:    compareTitle(item.Title, signals.RawText, idx),
				JobIndex: idx,
				Score:    *score,
				SkillGap: gap.ComputeSkillGap(resumeSkills, signals.RequiredSkills, signals.PreferredSkills),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score.FinalMatchScore > results[j].Score.FinalMatchScore
	})

	m.logger.Info("comparison ranked",
		zap.String("resume_id", req.ResumeID),
		zap.Int("jobs", len(results)),
		zap.Float64("best_score", results[0].Score.FinalMatchScore))
	m.emitProgress(StepCompareJob, fmt.Sprintf("Ranked %d job descriptions", len(results)), nil)

	return &types.CompareResponse{ResumeID: req.ResumeID, Results: results}, nil
}

// compareTitle returns the given title, else the first line of the job description,
// else "JD n", cut to 80 runes.
func compareTitle(title, rawText string, idx int) string {
	title = strings.TrimSpace(title)
	if title == "" {
		if text := strings.TrimSpace(rawText); text != "" {
			first, _, _ := strings.Cut(text, "\n")
			title = strings.TrimRight(first, "\r")
		} else {
			title = fmt.Sprintf("JD %d", idx+1)
		}
	}
	if runes := []rune(title); len(runes) > maxTitleRunes {
		title = string(runes[:maxTitleRunes])
	}
	return title
}
