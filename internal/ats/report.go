// Package ats scores how well a resume is likely to survive an applicant tracking system.
package ats

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/jonathan/resume-matcher/internal/types"
)

const (
	requiredWeight  = 0.6
	preferredWeight = 0.2
	sectionsWeight  = 0.2

	minWordCount         = 120
	lowCoverageThreshold = 60.0
)

// Red flag and recommendation messages.
const (
	FlagShortText       = "Resume text looks unusually short after parsing (ATS may miss content)."
	FlagComplexFormat   = "Possible complex formatting (tables/text boxes/columns) can hurt ATS parsing."
	FlagNoEmail         = "No email detected in resume text."
	RecommendKeywords   = "Add missing required keywords naturally in Skills/Experience bullets."
	RecommendCoverage   = "Improve keyword coverage for required skills (aim for 70%+)."
	recommendSectionFmt = "Add clear section headings: %s."
)

type section struct {
	name    string
	pattern *regexp.Regexp
}

// sections are checked in report order.
var sections = []section{
	{"experience", wholeWords(`(?i)`, `experience|work experience|employment`)},
	{"education", wholeWords(`(?i)`, `education|academics|qualification`)},
	{"skills", wholeWords(`(?i)`, `skills|technical skills|tools`)},
	{"projects", wholeWords(`(?i)`, `projects|project experience`)},
}

var (
	whitespace      = regexp.MustCompile(`\s+`)
	formattingWords = wholeWords(``, `table|textbox|text box|two column|two-column`)
)

// wholeWords matches any of alternatives not adjacent to a Unicode letter, digit or underscore.
// RE2's \b only knows ASCII word characters, so "étable" would otherwise match "table".
func wholeWords(flags, alternatives string) *regexp.Regexp {
	return regexp.MustCompile(flags + `(?:^|[^\p{L}\p{N}_])(?:` + alternatives + `)(?:[^\p{L}\p{N}_]|$)`)
}

// ComputeReport checks keyword coverage, section headings and structural red flags.
//
// Coverage for an empty skill list is 0%: matched count over a denominator of at least one.
func ComputeReport(resumeText string, resumeSkills, required, preferred []string) *types.AtsReport {
	textLower := strings.ToLower(resumeText)

	skillSet := make(map[string]struct{}, len(resumeSkills))
	for _, s := range resumeSkills {
		if n := normalize(s); n != "" {
			skillSet[n] = struct{}{}
		}
	}
	isPresent := func(skill string) bool {
		n := normalize(skill)
		if n == "" {
			return false
		}
		if _, ok := skillSet[n]; ok {
			return true
		}
		return containsTerm(textLower, n)
	}

	matchedReq, missingReq := partition(required, isPresent)
	matchedPref, missingPref := partition(preferred, isPresent)

	reqCov := coverage(len(matchedReq), len(required))
	prefCov := coverage(len(matchedPref), len(preferred))

	present, missingSections := []string{}, []string{}
	for _, s := range sections {
		if s.pattern.MatchString(resumeText) {
			present = append(present, s.name)
		} else {
			missingSections = append(missingSections, s.name)
		}
	}

	redFlags := []string{}
	if len(strings.Fields(resumeText)) < minWordCount {
		redFlags = append(redFlags, FlagShortText)
	}
	if formattingWords.MatchString(textLower) {
		redFlags = append(redFlags, FlagComplexFormat)
	}
	if !strings.Contains(resumeText, "@") {
		redFlags = append(redFlags, FlagNoEmail)
	}

	recommendations := []string{}
	if len(missingReq) > 0 {
		recommendations = append(recommendations, RecommendKeywords)
	}
	if len(missingSections) > 0 {
		recommendations = append(recommendations, fmt.Sprintf(recommendSectionFmt, strings.Join(missingSections, ", ")))
	}
	if reqCov < lowCoverageThreshold {
		recommendations = append(recommendations, RecommendCoverage)
	}

	sectionsScore := float64(len(present)) / float64(len(sections)) * 100
	overall := requiredWeight*reqCov + preferredWeight*prefCov + sectionsWeight*sectionsScore

	return &types.AtsReport{
		OverallScore:         math.Max(0, math.Min(100, overall)),
		RequiredCoveragePct:  reqCov,
		PreferredCoveragePct: prefCov,
		MatchedRequired:      matchedReq,
		MissingRequired:      missingReq,
		MatchedPreferred:     matchedPref,
		MissingPreferred:     missingPref,
		SectionsPresent:      present,
		SectionsMissing:      missingSections,
		RedFlags:             redFlags,
		Recommendations:      recommendations,
	}
}

func normalize(s string) string {
	return whitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), " ")
}

func coverage(matched, total int) float64 {
	if total < 1 {
		total = 1
	}
	return float64(matched) / float64(total) * 100
}

func partition(skills []string, keep func(string) bool) (matched, missing []string) {
	matched, missing = []string{}, []string{}
	for _, s := range skills {
		if keep(s) {
			matched = append(matched, s)
		} else {
			missing = append(missing, s)
		}
	}
	return matched, missing
}

// containsTerm reports whether term occurs in text without an ASCII letter or digit on either side.
// Both arguments must already be lowercase.
func containsTerm(text, term string) bool {
	from := 0
	for from <= len(text)-len(term) {
		i := strings.Index(text[from:], term)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(term)
		if (start == 0 || !isAlnum(text[start-1])) && (end == len(text) || !isAlnum(text[end])) {
			return true
		}
		from = start + 1
	}
	return false
}

func isAlnum(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}
