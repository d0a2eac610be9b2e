package types

import "time"

// Weights are the normalized score fusion weights. They always sum to 1.
type Weights struct {
	Semantic float64 `json:"semantic"`
	Skill    float64 `json:"skill"`
}

// ScoreResult is the fused match score between a resume and a job description.
type ScoreResult struct {
	SemanticSimilarityScore float64 `json:"semantic_similarity_score"`
	SkillOverlapScore       float64 `json:"skill_overlap_score"`
	FinalMatchScore         float64 `json:"final_match_score"`
	Weights                 Weights `json:"weights"`
}

// AtsReport is the ATS-readiness report for a resume against a job's skills.
type AtsReport struct {
	OverallScore         float64  `json:"overall_score"`
	RequiredCoveragePct  float64  `json:"required_coverage_pct"`
	PreferredCoveragePct float64  `json:"preferred_coverage_pct"`
	MatchedRequired      []string `json:"matched_required"`
	MissingRequired      []string `json:"missing_required"`
	MatchedPreferred     []string `json:"matched_preferred"`
	MissingPreferred     []string `json:"missing_preferred"`
	SectionsPresent      []string `json:"sections_present"`
	SectionsMissing      []string `json:"sections_missing"`
	RedFlags             []string `json:"red_flags"`
	Recommendations      []string `json:"recommendations"`
}

// MatchDebug echoes the job description signals used for an analysis.
type MatchDebug struct {
	JDRawText         string   `json:"jd_raw_text"`
	JDRequiredSkills  []string `json:"jd_required_skills"`
	JDPreferredSkills []string `json:"jd_preferred_skills"`
	JDExperienceLevel *string  `json:"jd_experience_level"`
	JDRoleKeywords    []string `json:"jd_role_keywords"`
}

// MatchReport is the full analysis record for one resume and one job description.
type MatchReport struct {
	AnalysisID string              `json:"analysis_id"`
	ResumeID   string              `json:"resume_id"`
	CreatedAt  time.Time           `json:"created_at"`
	Score      ScoreResult         `json:"score"`
	SkillGap   SkillGap            `json:"skill_gap"`
	ATS        *AtsReport          `json:"ats"`
	Evidence   map[string][]string `json:"evidence"`
	Debug      *MatchDebug         `json:"debug,omitempty"`
}

// ResumeRecord is a stored, already parsed resume.
type ResumeRecord struct {
	ResumeID   string        `json:"resume_id"`
	Filename   string        `json:"filename"`
	CreatedAt  time.Time     `json:"created_at"`
	TextSHA256 string        `json:"text_sha256"`
	Extracted  ResumeSummary `json:"extracted"`
	RawText    string        `json:"raw_text"`
}

// CompareResult is one ranked entry of a multi-JD comparison.
type CompareResult struct {
	Title    string      `json:"title"`
	JobIndex int         `json:"job_index"`
	Score    ScoreResult `json:"score"`
	SkillGap SkillGap    `json:"skill_gap"`
}

// CompareResponse ranks several job descriptions against one resume.
type CompareResponse struct {
	ResumeID string          `json:"resume_id"`
	Results  []CompareResult `json:"results"`
}

// AnalyticsRun is a short view of a stored analysis.
type AnalyticsRun struct {
	AnalysisID      string    `json:"analysis_id"`
	CreatedAt       time.Time `json:"created_at"`
	FinalMatchScore float64   `json:"final_match_score"`
}

// AnalyticsSummary aggregates all stored analyses.
type AnalyticsSummary struct {
	TotalRuns                int            `json:"total_runs"`
	AvgFinalScore            float64        `json:"avg_final_score"`
	AvgSemanticScore         float64        `json:"avg_semantic_score"`
	AvgSkillScore            float64        `json:"avg_skill_score"`
	TopMissingRequiredSkills []string       `json:"top_missing_required_skills"`
	RecentRuns               []AnalyticsRun `json:"recent_runs"`
}
