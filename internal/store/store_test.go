package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewID(t *testing.T) {
	pattern := regexp.MustCompile(`^analysis_[0-9a-f]{32}$`)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID(AnalysisPrefix)
		assert.Regexp(t, pattern, id)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.Regexp(t, `^resume_[0-9a-f]{32}$`, NewID(ResumePrefix))
}

func sampleResume(id string) *types.ResumeRecord {
	return &types.ResumeRecord{
		ResumeID:   id,
		Filename:   "resume.txt",
		CreatedAt:  time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
		TextSHA256: "abc123",
		RawText:    "Python developer",
		Extracted: types.ResumeSummary{
			Skills:               []string{"python"},
			SkillsDetailed:       []types.ExtractedSkill{{Skill: "python", Confidence: 100, SourceSnippets: []string{"Python developer"}, OriginalText: "Python"}},
			Education:            []string{},
			Experience:           []string{"Python developer"},
			ToolsAndTechnologies: []string{"python"},
		},
	}
}

func sampleAnalysis(id string, created time.Time, final float64) *types.MatchReport {
	return &types.MatchReport{
		AnalysisID: id,
		ResumeID:   "resume_1",
		CreatedAt:  created,
		Score:      types.ScoreResult{FinalMatchScore: final, Weights: types.Weights{Semantic: 0.65, Skill: 0.35}},
		SkillGap: types.SkillGap{
			MatchingSkills:        []string{},
			MissingRequiredSkills: []string{"aws"},
			NiceToHaveSkills:      []string{},
		},
		ATS:      &types.AtsReport{OverallScore: 40},
		Evidence: map[string][]string{},
	}
}

func TestFileStore_ResumeRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir(), nil)
	require.NoError(t, err)

	record := sampleResume("resume_abc")
	require.NoError(t, s.SaveResume(ctx, record))

	loaded, err := s.LoadResume(ctx, "resume_abc")
	require.NoError(t, err)
	assert.Equal(t, record, loaded)
}

func TestFileStore_AnalysisRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir(), nil)
	require.NoError(t, err)

	report := sampleAnalysis("analysis_abc", time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), 72.5)
	require.NoError(t, s.SaveAnalysis(ctx, report))

	loaded, err := s.LoadAnalysis(ctx, "analysis_abc")
	require.NoError(t, err)
	assert.Equal(t, report, loaded)
}

func TestFileStore_NotFound(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir(), nil)
	require.NoError(t, err)

	tests := []struct {
		name string
		load func() error
		kind string
	}{
		{"resume", func() error { _, err := s.LoadResume(ctx, "resume_missing"); return err }, ResumePrefix},
		{"analysis", func() error { _, err := s.LoadAnalysis(ctx, "analysis_missing"); return err }, AnalysisPrefix},
		{"path traversal", func() error { _, err := s.LoadResume(ctx, "../secrets"); return err }, ResumePrefix},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.load()
			var notFound *NotFoundError
			require.True(t, errors.As(err, &notFound))
			assert.Equal(t, tt.kind, notFound.Kind)
			assert.True(t, errors.Is(err, ErrNotFound))
		})
	}
}

func TestFileStore_RejectsInvalidIDOnSave(t *testing.T) {
	s, err := NewFileStore(t.TempDir(), nil)
	require.NoError(t, err)

	err = s.SaveResume(context.Background(), sampleResume("../escape"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid record id")
}

func TestFileStore_ListAnalysesOldestFirst(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir(), nil)
	require.NoError(t, err)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.SaveAnalysis(ctx, sampleAnalysis("analysis_c", base.Add(2*time.Hour), 30)))
	require.NoError(t, s.SaveAnalysis(ctx, sampleAnalysis("analysis_a", base, 10)))
	require.NoError(t, s.SaveAnalysis(ctx, sampleAnalysis("analysis_b", base.Add(time.Hour), 20)))

	reports, err := s.ListAnalyses(ctx)
	require.NoError(t, err)
	require.Len(t, reports, 3)
	assert.Equal(t, "analysis_a", reports[0].AnalysisID)
	assert.Equal(t, "analysis_b", reports[1].AnalysisID)
	assert.Equal(t, "analysis_c", reports[2].AnalysisID)
}

func TestFileStore_ListAnalysesEmpty(t *testing.T) {
	s, err := NewFileStore(t.TempDir(), nil)
	require.NoError(t, err)

	reports, err := s.ListAnalyses(context.Background())
	require.NoError(t, err)
	assert.Empty(t, reports)
}

func TestFileStore_CorruptRecord(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir, nil)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, analysesDir, "analysis_bad.json"), []byte("{not json"), 0644))

	_, err = s.LoadAnalysis(context.Background(), "analysis_bad")
	var corrupt *CorruptRecordError
	assert.ErrorAs(t, err, &corrupt)

}

func TestFileStore_ListAnalysesSkipsCorruptRecords(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	core, logs := observer.New(zap.WarnLevel)
	s, err := NewFileStore(dir, zap.New(core))
	require.NoError(t, err)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.SaveAnalysis(ctx, sampleAnalysis("analysis_a", base, 10)))
	require.NoError(t, s.SaveAnalysis(ctx, sampleAnalysis("analysis_c", base.Add(time.Hour), 30)))
	badPath := filepath.Join(dir, analysesDir, "analysis_b.json")
	require.NoError(t, os.WriteFile(badPath, []byte("{not json"), 0644))

	reports, err := s.ListAnalyses(ctx)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "analysis_a", reports[0].AnalysisID)
	assert.Equal(t, "analysis_c", reports[1].AnalysisID)

	warnings := logs.FilterMessage("skipping corrupt analysis").All()
	require.Len(t, warnings, 1)
	assert.Equal(t, badPath, warnings[0].ContextMap()["path"])
}

func TestFileStore_WriteReplacesAtomically(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewFileStore(dir, nil)
	require.NoError(t, err)

	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.SaveAnalysis(ctx, sampleAnalysis("analysis_a", created, 10)))
	require.NoError(t, s.SaveAnalysis(ctx, sampleAnalysis("analysis_a", created, 55)))

	got, err := s.LoadAnalysis(ctx, "analysis_a")
	require.NoError(t, err)
	assert.Equal(t, 55.0, got.Score.FinalMatchScore)

	entries, err := os.ReadDir(filepath.Join(dir, analysesDir))
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temp files left behind")
	assert.Equal(t, "analysis_a.json", entries[0].Name())

	info, err := entries[0].Info()
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
}

func TestOpen_FileStoreWithoutDatabaseURL(t *testing.T) {
	s, err := Open(context.Background(), t.TempDir(), "", nil)
	require.NoError(t, err)
	defer s.Close()

	_, ok := s.(*FileStore)
	assert.True(t, ok)
}

func TestNotFoundError_Message(t *testing.T) {
	err := &NotFoundError{Kind: ResumePrefix, ID: "resume_x"}
	assert.Equal(t, "unknown resume_id: resume_x", err.Error())
}
