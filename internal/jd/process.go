// Package jd derives required skills, preferred skills, role keywords and seniority from a job description.
package jd

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/resume-matcher/internal/cleaning"
	"github.com/jonathan/resume-matcher/internal/extraction"
	"github.com/jonathan/resume-matcher/internal/taxonomy"
	"github.com/jonathan/resume-matcher/internal/types"
)

const (
	maxRoleKeywords = 25
	minKeywordLen   = 2
	maxKeywordLen   = 24

	entryMaxYears = 2
	midMaxYears   = 5
)

var (
	requiredMarker  = regexp.MustCompile(`(?i)\b(required|requirements|must have|minimum qualifications)\b`)
	preferredMarker = regexp.MustCompile(`(?i)\b(preferred|good to have|nice to have|bonus|desired)\b`)
	nonKeywordChars = regexp.MustCompile(`[^a-z0-9+\- ]+`)
	yearsPattern    = regexp.MustCompile(`(?i)\b(\d+)\+?\s+years?\b`)
)

var stopWords = map[string]bool{
	"and": true, "or": true, "the": true, "a": true, "to": true, "of": true, "in": true, "for": true,
	"with": true, "on": true, "we": true, "you": true, "will": true, "be": true, "is": true, "are": true,
	"as": true, "an": true, "at": true, "from": true, "by": true, "this": true, "that": true,
}

// ProcessJobDescription splits text into required and preferred sections, extracts skills
// from each, and infers role keywords and experience level. A nil taxonomy means taxonomy.Default().
func ProcessJobDescription(text string, tax *taxonomy.Taxonomy) *types.JobDescriptionSignals {
	if tax == nil {
		tax = taxonomy.Default()
	}

	required, preferred := SplitSections(text)
	return &types.JobDescriptionSignals{
		RawText:         text,
		CleanedText:     cleaning.Clean(text),
		RequiredSkills:  extraction.ExtractSkills(cleaning.Clean(required), tax),
		PreferredSkills: extraction.ExtractSkills(cleaning.Clean(preferred), tax),
		RoleKeywords:    RoleKeywords(text),
		ExperienceLevel: ExperienceLevel(text),
	}
}

// SplitSections returns the required and preferred slices of a job description.
//
// With no marker the whole text is required. With a single marker that slice runs to the
// end of the text and the other is empty. With both, the earlier slice ends where the later begins.
func SplitSections(text string) (required, preferred string) {
	req := requiredMarker.FindStringIndex(text)
	pref := preferredMarker.FindStringIndex(text)

	switch {
	case req == nil && pref == nil:
		return text, ""
	case pref == nil:
		return text[req[0]:], ""
	case req == nil:
		return "", text[pref[0]:]
	case req[0] < pref[0]:
		return text[req[0]:pref[0]], text[pref[0]:]
	default:
		return text[req[0]:], text[pref[0]:req[0]]
	}
}

// RoleKeywords returns up to 25 distinct lowercase tokens in first-seen order, skipping stop words.
func RoleKeywords(text string) []string {
	normalized := nonKeywordChars.ReplaceAllString(strings.ToLower(text), " ")

	seen := make(map[string]bool)
	out := []string{}
	for _, tok := range strings.Fields(normalized) {
		if len(tok) < minKeywordLen || len(tok) > maxKeywordLen || stopWords[tok] || seen[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
		if len(out) == maxRoleKeywords {
			break
		}
	}
	return out
}

// ExperienceLevel maps the first "N+ years" phrase to entry, mid or senior. It returns nil when
// no such phrase exists.
func ExperienceLevel(text string) *string {
	m := yearsPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}

	level := types.ExperienceSenior
	years, err := strconv.Atoi(m[1])
	if err == nil {
		switch {
		case years <= entryMaxYears:
			level = types.ExperienceEntry
		case years <= midMaxYears:
			level = types.ExperienceMid
		}
	}
	return &level
}
