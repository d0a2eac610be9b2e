package pipeline

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-matcher/internal/cleaning"
	"github.com/jonathan/resume-matcher/internal/extraction"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/schemas"
	"github.com/jonathan/resume-matcher/internal/store"
	"github.com/jonathan/resume-matcher/internal/types"
	recordschemas "github.com/jonathan/resume-matcher/schemas"
	"go.uber.org/zap"
)

// UploadResume cleans already extracted resume text, extracts a structured summary and stores
// the record. Skills come from the cleaned text; education and experience lines come from the
// original text, whose line breaks cleaning would merge.
func (m *Matcher) UploadResume(ctx context.Context, req types.UploadResumeRequest) (*types.ResumeRecord, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid upload request: %w", err)
	}

	cleaned := cleaning.Clean(req.Text)
	detailed := extraction.ExtractSkillsWithConfidence(cleaned, m.taxonomy, extraction.WithMaxSnippets(m.maxSnippets))
	skills := extraction.SkillNames(detailed)
	m.emitProgress(StepExtract, fmt.Sprintf("Extracted %d skills", len(skills)), detailed)

	record := &types.ResumeRecord{
		ResumeID:   store.NewID(store.ResumePrefix),
		Filename:   req.Filename,
		CreatedAt:  m.now(),
		TextSHA256: ingestion.ComputeHash(cleaned),
		Extracted: types.ResumeSummary{
			Skills:               skills,
			SkillsDetailed:       detailed,
			Education:            extraction.ExtractEducationLines(req.Text),
			Experience:           extraction.ExtractExperienceLines(req.Text),
			ToolsAndTechnologies: skills,
		},
		RawText: cleaned,
	}

	if err := schemas.ValidateValue(recordschemas.ResumeRecord, record); err != nil {
		return nil, &StepError{Step: StepValidate, Cause: err}
	}
	if err := m.store.SaveResume(ctx, record); err != nil {
		return nil, &StepError{Step: StepSave, Cause: err}
	}

	m.logger.Info("resume stored",
		zap.String("resume_id", record.ResumeID),
		zap.String("filename", record.Filename),
		zap.Int("skills", len(skills)),
		zap.Int("education_lines", len(record.Extracted.Education)),
		zap.Int("experience_lines", len(record.Extracted.Experience)))
	m.emitProgress(StepSave, "Stored resume "+record.ResumeID, nil)
	return record, nil
}
