// Package types provides type definitions for structured data used throughout the resume-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ExtractedSkill is a canonical skill found in a text, with a confidence score
// and the places it was found.
type ExtractedSkill struct {
	Skill          string   `json:"skill"`           // Canonical skill name
	Confidence     float64  `json:"confidence"`      // 0-100
	SourceSnippets []string `json:"source_snippets"` // Context excerpts, deduplicated
	OriginalText   string   `json:"original_text"`   // First matched surface form
}

// JobDescriptionSignals holds everything derived from a single job description text.
type JobDescriptionSignals struct {
	RawText         string   `json:"raw_text"`
	CleanedText     string   `json:"cleaned_text"`
	RequiredSkills  []string `json:"required_skills"`
	PreferredSkills []string `json:"preferred_skills"`
	RoleKeywords    []string `json:"role_keywords"`
	ExperienceLevel *string  `json:"experience_level"` // entry, mid, senior or nil
}

// Experience levels inferred from "N+ years" phrases.
const (
	ExperienceEntry  = "entry"
	ExperienceMid    = "mid"
	ExperienceSenior = "senior"
)

// SkillGap is the set difference between resume skills and job skills.
type SkillGap struct {
	MatchingSkills        []string `json:"matching_skills"`
	MissingRequiredSkills []string `json:"missing_required_skills"`
	NiceToHaveSkills      []string `json:"nice_to_have_skills"`
}

// ResumeSummary is the structured view of a resume produced at upload time.
type ResumeSummary struct {
	Skills               []string         `json:"skills"`
	SkillsDetailed       []ExtractedSkill `json:"skills_detailed"`
	Education            []string         `json:"education"`
	Experience           []string         `json:"experience"`
	ToolsAndTechnologies []string         `json:"tools_and_technologies"`
}
