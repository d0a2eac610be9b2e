package pipeline

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-matcher/internal/ats"
	"github.com/jonathan/resume-matcher/internal/evidence"
	"github.com/jonathan/resume-matcher/internal/gap"
	"github.com/jonathan/resume-matcher/internal/jd"
	"github.com/jonathan/resume-matcher/internal/logging"
	"github.com/jonathan/resume-matcher/internal/schemas"
	"github.com/jonathan/resume-matcher/internal/scoring"
	"github.com/jonathan/resume-matcher/internal/store"
	"github.com/jonathan/resume-matcher/internal/types"
	recordschemas "github.com/jonathan/resume-matcher/schemas"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Analyze matches a stored resume against one job description and stores the report.
func (m *Matcher) Analyze(ctx context.Context, req types.AnalyzeRequest) (*types.MatchReport, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid analyze request: %w", err)
	}

	record, resumeText, err := m.loadResumeText(ctx, req.ResumeID)
	if err != nil {
		return nil, err
	}
	m.emitProgress(StepLoadResume, "Loaded resume "+record.ResumeID, nil)

	if m.embedder == nil {
		return nil, ErrEmbedderUnavailable
	}

	analysisID := store.NewID(store.AnalysisPrefix)
	createdAt := m.now()

	signals := jd.ProcessJobDescription(req.JobDescriptionText, m.taxonomy)
	m.emitProgress(StepProcessJD, fmt.Sprintf("Job description: %d required, %d preferred skills",
		len(signals.RequiredSkills), len(signals.PreferredSkills)), signals)

	// Resume and job description embeddings are independent.
	var resumeVec, jdVec []float32
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		resumeVec, err = m.embed(gCtx, resumeText)
		return err
	})
	g.Go(func() error {
		var err error
		jdVec, err = m.embed(gCtx, signals.CleanedText)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	m.emitProgress(StepEmbed, fmt.Sprintf("Embedded resume and job description (dim %d)", len(resumeVec)), nil)

	resumeSkills := record.Extracted.Skills
	skillGap := gap.ComputeSkillGap(resumeSkills, signals.RequiredSkills, signals.PreferredSkills)

	score, err := scoring.ComputeMatchScore(
		resumeVec, jdVec,
		resumeSkills, signals.RequiredSkills, signals.PreferredSkills,
		m.semanticWeight, m.skillWeight,
	)
	if err != nil {
		return nil, &StepError{Step: StepScore, Cause: err}
	}
	m.emitProgress(StepScore, fmt.Sprintf("Final match score %.2f", score.FinalMatchScore), score)

	atsReport := ats.ComputeReport(resumeText, resumeSkills, signals.RequiredSkills, signals.PreferredSkills)
	m.emitProgress(StepATS, fmt.Sprintf("ATS score %.2f", atsReport.OverallScore), atsReport)

	jobSkills := append(append([]string{}, signals.RequiredSkills...), signals.PreferredSkills...)
	ev := evidence.ExtractSkillEvidence(resumeText, jobSkills, evidence.DefaultMaxSkills, evidence.DefaultMaxSnippetsPerSkill)
	m.emitProgress(StepEvidence, fmt.Sprintf("Found evidence for %d skills", len(ev)), nil)

	report := &types.MatchReport{
		AnalysisID: analysisID,
		ResumeID:   req.ResumeID,
		CreatedAt:  createdAt,
		Score:      *score,
		SkillGap:   skillGap,
		ATS:        atsReport,
		Evidence:   ev,
		Debug: &types.MatchDebug{
			JDRawText:         req.JobDescriptionText,
			JDRequiredSkills:  signals.RequiredSkills,
			JDPreferredSkills: signals.PreferredSkills,
			JDExperienceLevel: signals.ExperienceLevel,
			JDRoleKeywords:    signals.RoleKeywords,
		},
	}

	if err := schemas.ValidateValue(recordschemas.MatchReport, report); err != nil {
		return nil, &StepError{Step: StepValidate, Cause: err}
	}
	if err := m.store.SaveAnalysis(ctx, report); err != nil {
		return nil, &StepError{Step: StepSave, Cause: err}
	}

	m.logger.Info("analysis stored",
		zap.String("analysis_id", analysisID),
		zap.String("resume_id", req.ResumeID),
		zap.Float64("final_match_score", score.FinalMatchScore),
		zap.Int("missing_required", len(skillGap.MissingRequiredSkills)),
		zap.String("jd", logging.Truncate(req.JobDescriptionText, 60)))
	m.emitProgress(StepSave, "Stored analysis "+analysisID, nil)
	return report, nil
}
