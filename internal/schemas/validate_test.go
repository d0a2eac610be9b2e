package schemas

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonathan/resume-matcher/internal/types"
	recordschemas "github.com/jonathan/resume-matcher/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const personSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["name", "skills"],
  "properties": {
    "name": { "type": "string", "minLength": 1 },
    "skills": { "type": "array", "items": { "type": "string" } },
    "years": { "type": "integer", "minimum": 0 }
  }
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidateJSON(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "person.schema.json", personSchema)

	tests := []struct {
		name      string
		document  string
		wantValid bool
	}{
		{"valid", `{"name": "Jane", "skills": ["go"]}`, true},
		{"missing field", `{"name": "Jane"}`, false},
		{"wrong type", `{"name": "Jane", "skills": "go"}`, false},
		{"below minimum", `{"name": "Jane", "skills": [], "years": -1}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jsonPath := writeFile(t, dir, "doc.json", tt.document)
			err := ValidateJSON(schemaPath, jsonPath)
			if tt.wantValid {
				assert.NoError(t, err)
				return
			}
			validationErr, ok := err.(*ValidationError)
			require.True(t, ok, "error should be ValidationError type")
			assert.NotEmpty(t, validationErr.Errors)
		})
	}
}

func TestValidateJSON_MissingFiles(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "person.schema.json", personSchema)
	jsonPath := writeFile(t, dir, "doc.json", `{}`)

	err := ValidateJSON(filepath.Join(dir, "missing.schema.json"), jsonPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema file not found")

	err = ValidateJSON(schemaPath, filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JSON file not found")
}

func TestValidateJSON_MalformedDocument(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "person.schema.json", personSchema)
	jsonPath := writeFile(t, dir, "doc.json", `{ not json`)

	err := ValidateJSON(schemaPath, jsonPath)
	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestValidateJSONString(t *testing.T) {
	assert.NoError(t, ValidateJSONString(personSchema, `{"name": "Jane", "skills": []}`))

	err := ValidateJSONString(personSchema, `{"name": "", "skills": []}`)
	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	require.Len(t, validationErr.Errors, 1)
	assert.Equal(t, "name", validationErr.Errors[0].Field)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Errors: []FieldError{
		{Field: "score.final_match_score", Message: "Must be less than or equal to 100"},
		{Field: "(root)", Message: "resume_id is required"},
	}}
	msg := err.Error()
	assert.Contains(t, msg, "validation failed:")
	assert.Contains(t, msg, "1. score.final_match_score: Must be less than or equal to 100")
	assert.Contains(t, msg, "2. (root): resume_id is required")
}

func sampleReport() *types.MatchReport {
	level := types.ExperienceMid
	return &types.MatchReport{
		AnalysisID: "analysis_0123456789abcdef0123456789abcdef",
		ResumeID:   "resume_0123456789abcdef0123456789abcdef",
		CreatedAt:  time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Score: types.ScoreResult{
			SemanticSimilarityScore: 81.5,
			SkillOverlapScore:       40,
			FinalMatchScore:         66.98,
			Weights:                 types.Weights{Semantic: 0.65, Skill: 0.35},
		},
		SkillGap: types.SkillGap{
			MatchingSkills:        []string{"python"},
			MissingRequiredSkills: []string{"aws"},
			NiceToHaveSkills:      []string{"docker"},
		},
		ATS: &types.AtsReport{
			OverallScore:         55,
			RequiredCoveragePct:  50,
			PreferredCoveragePct: 0,
			MatchedRequired:      []string{"python"},
			MissingRequired:      []string{"aws"},
			MatchedPreferred:     []string{},
			MissingPreferred:     []string{"docker"},
			SectionsPresent:      []string{"experience", "skills"},
			SectionsMissing:      []string{"education", "projects"},
			RedFlags:             []string{},
			Recommendations:      []string{},
		},
		Evidence: map[string][]string{"python": {"Built pipelines in Python."}},
		Debug: &types.MatchDebug{
			JDRawText:         "Requirements: Python, AWS. Preferred: Docker.",
			JDRequiredSkills:  []string{"aws", "python"},
			JDPreferredSkills: []string{"docker"},
			JDExperienceLevel: &level,
			JDRoleKeywords:    []string{"requirements", "python", "aws"},
		},
	}
}

func TestValidateValue_MatchReport(t *testing.T) {
	assert.NoError(t, ValidateValue(recordschemas.MatchReport, sampleReport()))

	report := sampleReport()
	report.Score.FinalMatchScore = 120
	err := ValidateValue(recordschemas.MatchReport, report)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "score.final_match_score", validationErr.Errors[0].Field)

	report = sampleReport()
	report.ATS.SectionsPresent = []string{"hobbies"}
	assert.Error(t, ValidateValue(recordschemas.MatchReport, report))
}

func TestValidateValue_ResumeRecord(t *testing.T) {
	record := &types.ResumeRecord{
		ResumeID:   "resume_0123456789abcdef0123456789abcdef",
		Filename:   "resume.txt",
		CreatedAt:  time.Now().UTC(),
		TextSHA256: "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824",
		RawText:    "hello",
		Extracted: types.ResumeSummary{
			Skills:               []string{"python"},
			SkillsDetailed:       []types.ExtractedSkill{{Skill: "python", Confidence: 100, OriginalText: "Python"}},
			Education:            []string{},
			Experience:           []string{},
			ToolsAndTechnologies: []string{"python"},
		},
	}
	assert.NoError(t, ValidateValue(recordschemas.ResumeRecord, record))

	record.TextSHA256 = "not-a-hash"
	assert.Error(t, ValidateValue(recordschemas.ResumeRecord, record))
}

func TestEmbedded(t *testing.T) {
	tests := []struct {
		name   string
		wantOK bool
	}{
		{MatchReportSchema, true},
		{ResumeRecordSchema, true},
		{"job_profile", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema, ok := Embedded(tt.name)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Contains(t, schema, `"$schema"`)
			}
		})
	}
}
