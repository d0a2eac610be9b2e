package ats

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func longResume(extra string) string {
	body := strings.Repeat("delivered reliable services for customers ", 30)
	return "jane@example.com\nEXPERIENCE\n" + body + "\nEDUCATION\nBSc\nSKILLS\n" + extra + "\nPROJECTS\nSearch engine"
}

func TestComputeReport_CleanResume(t *testing.T) {
	report := ComputeReport(longResume("Python, C++, Node.js"), []string{"python"}, []string{"python", "c++", "node.js"}, []string{"docker"})
	require.NotNil(t, report)

	assert.Equal(t, []string{"python", "c++", "node.js"}, report.MatchedRequired)
	assert.Empty(t, report.MissingRequired)
	assert.Equal(t, 100.0, report.RequiredCoveragePct)

	assert.Empty(t, report.MatchedPreferred)
	assert.Equal(t, []string{"docker"}, report.MissingPreferred)
	assert.Equal(t, 0.0, report.PreferredCoveragePct)

	assert.Equal(t, []string{"experience", "education", "skills", "projects"}, report.SectionsPresent)
	assert.Empty(t, report.SectionsMissing)
	assert.Empty(t, report.RedFlags)
	assert.Empty(t, report.Recommendations)

	// 0.6*100 + 0.2*0 + 0.2*100
	assert.InDelta(t, 80.0, report.OverallScore, 1e-9)
}

func TestComputeReport_RedFlagsAndRecommendations(t *testing.T) {
	text := "Worked in a two-column layout. Skills: Go"
	report := ComputeReport(text, nil, []string{"python", "go"}, nil)

	assert.Equal(t, []string{FlagShortText, FlagComplexFormat, FlagNoEmail}, report.RedFlags)
	assert.Equal(t, []string{"skills"}, report.SectionsPresent)
	assert.Equal(t, []string{"experience", "education", "projects"}, report.SectionsMissing)
	assert.Equal(t, []string{
		RecommendKeywords,
		"Add clear section headings: experience, education, projects.",
		RecommendCoverage,
	}, report.Recommendations)
	assert.Equal(t, 50.0, report.RequiredCoveragePct)
}

func TestComputeReport_EmptyListsCoverZeroPercent(t *testing.T) {
	report := ComputeReport("jane@example.com", nil, nil, nil)
	assert.Equal(t, 0.0, report.RequiredCoveragePct)
	assert.Equal(t, 0.0, report.PreferredCoveragePct)
	assert.Equal(t, 0.0, report.OverallScore)
	assert.Contains(t, report.Recommendations, RecommendCoverage)
	assert.NotNil(t, report.MatchedRequired)
}

func TestComputeReport_PresenceUsesWholeTokens(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		skill   string
		present bool
	}{
		{"exact word", "I write Java daily", "java", true},
		{"embedded in word", "I write JavaScript daily", "java", false},
		{"punctuated skill", "Proficient in C++.", "c++", true},
		{"punctuated skill followed by letter", "C++x", "c++", false},
		{"multi word with extra spaces", "machine learning work", "Machine   Learning", true},
		{"at start of text", "go developer", "go", true},
		{"second occurrence counts", "gopher and go", "go", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := ComputeReport(tt.text, nil, []string{tt.skill}, nil)
			if tt.present {
				assert.Equal(t, []string{tt.skill}, report.MatchedRequired)
			} else {
				assert.Equal(t, []string{tt.skill}, report.MissingRequired)
			}
		})
	}
}

func TestComputeReport_SkillSetCountsAsPresent(t *testing.T) {
	report := ComputeReport("no mention here", []string{" Kubernetes "}, []string{"kubernetes"}, nil)
	assert.Equal(t, []string{"kubernetes"}, report.MatchedRequired)
}

func TestComputeReport_RequiredCoverageIsMonotonic(t *testing.T) {
	required := []string{"python", "aws", "docker", "kafka"}
	text := "jane@example.com Experience building services"

	prev := ComputeReport(text, nil, required, nil).RequiredCoveragePct
	for _, skill := range required {
		text += " " + skill
		cur := ComputeReport(text, nil, required, nil).RequiredCoveragePct
		assert.GreaterOrEqual(t, cur, prev, "adding %q lowered coverage", skill)
		prev = cur
	}
	assert.Equal(t, 100.0, prev)
}

func TestComputeReport_OverallIsClamped(t *testing.T) {
	report := ComputeReport(longResume("python"), []string{"python"}, []string{"python"}, []string{"python"})
	assert.LessOrEqual(t, report.OverallScore, 100.0)
	assert.GreaterOrEqual(t, report.OverallScore, 0.0)
	assert.InDelta(t, 100.0, report.OverallScore, 1e-9)
}

func TestWholeWords_UnicodeBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		match bool
	}{
		{"plain word", "rendered as a table", true},
		{"start of text", "table layout", true},
		{"punctuation neighbours", "(two-column)", true},
		{"ascii letter prefix", "notable results", false},
		{"plural", "tables", false},
		{"accented letter prefix", "worked on the étable renovation", false},
		{"accented letter suffix", "tableé", false},
		{"digit suffix", "table2", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.match, formattingWords.MatchString(tt.text))
		})
	}
}

func TestComputeReport_SectionsNeedUnicodeWordBoundaries(t *testing.T) {
	report := ComputeReport("jane@example.com\nÉexperience\nSkills\nProjectsñ", nil, nil, nil)
	assert.Equal(t, []string{"skills"}, report.SectionsPresent)
	assert.Equal(t, []string{"experience", "education", "projects"}, report.SectionsMissing)

	report = ComputeReport("jane@example.com\nétable setup", nil, nil, nil)
	assert.NotContains(t, report.RedFlags, FlagComplexFormat)
}
