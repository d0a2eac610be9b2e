// Package extraction finds taxonomy skills, education lines and experience lines in text.
package extraction

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/resume-matcher/internal/taxonomy"
	"github.com/jonathan/resume-matcher/internal/types"
)

const (
	// DefaultMaxSnippets is the number of context snippets kept per skill
	DefaultMaxSnippets = 2

	snippetRadius = 50

	baseCanonical = 100.0
	baseAlias     = 90.0
	baseVariation = 85.0

	occurrenceBoostPerMatch = 2.0
	maxOccurrenceBoost      = 5.0
	contextBoostPerMatch    = 2.0
	contextBoostMatches     = 2
)

// contextIndicators mark a snippet as describing hands-on technical work.
var contextIndicators = []string{
	"experience", "proficient", "expert", "skilled", "developed", "built", "implemented", "using", "with",
}

// Option configures skill extraction.
type Option func(*options)

type options struct {
	maxSnippets int
}

// WithMaxSnippets caps the number of distinct snippets kept per skill.
func WithMaxSnippets(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.maxSnippets = n
		}
	}
}

type formPattern struct {
	form taxonomy.SurfaceForm
	re   *regexp.Regexp
}

type match struct {
	start, end int
	form       taxonomy.SurfaceForm
	snippet    string
}

// patternCache holds compiled surface-form patterns per taxonomy.
var patternCache sync.Map // *taxonomy.Taxonomy -> []formPattern

func patternsFor(tax *taxonomy.Taxonomy) []formPattern {
	if cached, ok := patternCache.Load(tax); ok {
		return cached.([]formPattern)
	}

	forms := tax.Forms()
	patterns := make([]formPattern, 0, len(forms))
	for _, f := range forms {
		patterns = append(patterns, formPattern{
			form: f,
			re:   regexp.MustCompile(`(?i)` + regexp.QuoteMeta(f.Text)),
		})
	}
	actual, _ := patternCache.LoadOrStore(tax, patterns)
	return actual.([]formPattern)
}

// ExtractSkillsWithConfidence matches every taxonomy surface form against text as a
// whole token and returns one ExtractedSkill per canonical skill found, sorted by
// confidence descending then skill name. A nil taxonomy means taxonomy.Default().
func ExtractSkillsWithConfidence(text string, tax *taxonomy.Taxonomy, opts ...Option) []types.ExtractedSkill {
	o := options{maxSnippets: DefaultMaxSnippets}
	for _, opt := range opts {
		opt(&o)
	}
	if text == "" {
		return []types.ExtractedSkill{}
	}
	if tax == nil {
		tax = taxonomy.Default()
	}

	var all []match
	for _, p := range patternsFor(tax) {
		all = append(all, findWholeTokens(text, p)...)
	}

	grouped := make(map[string][]match)
	var order []string
	for _, m := range dropShadowed(all) {
		if _, ok := grouped[m.form.Canonical]; !ok {
			order = append(order, m.form.Canonical)
		}
		grouped[m.form.Canonical] = append(grouped[m.form.Canonical], m)
	}

	results := make([]types.ExtractedSkill, 0, len(order))
	for _, canonical := range order {
		matches := grouped[canonical]
		results = append(results, types.ExtractedSkill{
			Skill:          canonical,
			Confidence:     confidence(canonical, matches, tax),
			SourceSnippets: uniqueSnippets(matches, o.maxSnippets),
			OriginalText:   matches[0].form.Text,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Confidence != results[j].Confidence {
			return results[i].Confidence > results[j].Confidence
		}
		return results[i].Skill < results[j].Skill
	})
	return results
}

// ExtractSkills returns the sorted canonical names of every skill found in text.
func ExtractSkills(text string, tax *taxonomy.Taxonomy) []string {
	detailed := ExtractSkillsWithConfidence(text, tax)
	return SkillNames(detailed)
}

// SkillNames reduces extracted skills to sorted canonical names.
func SkillNames(skills []types.ExtractedSkill) []string {
	names := make([]string, 0, len(skills))
	for _, s := range skills {
		names = append(names, s.Skill)
	}
	sort.Strings(names)
	return names
}

// findWholeTokens returns matches of p in text that are not adjacent to a word character.
// After a rejected candidate the scan resumes one rune later so overlapping forms are still found.
func findWholeTokens(text string, p formPattern) []match {
	var out []match
	pos := 0
	for pos < len(text) {
		loc := p.re.FindStringIndex(text[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		if end == start {
			break
		}
		if !isWordBefore(text, start) && !isWordAfter(text, end) {
			out = append(out, match{start: start, end: end, form: p.form, snippet: snippet(text, start, end)})
			pos = end
			continue
		}
		_, width := utf8.DecodeRuneInString(text[start:])
		pos = start + width
	}
	return out
}

// dropShadowed removes matches lying inside a longer match of a different skill,
// so "node.js" does not also report "javascript" through its "js" suffix.
func dropShadowed(matches []match) []match {
	out := make([]match, 0, len(matches))
	for i, m := range matches {
		shadowed := false
		for j, o := range matches {
			if i == j || o.form.Canonical == m.form.Canonical {
				continue
			}
			if o.start <= m.start && m.end <= o.end && o.end-o.start > m.end-m.start {
				shadowed = true
				break
			}
		}
		if !shadowed {
			out = append(out, m)
		}
	}
	return out
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isWordBefore(text string, i int) bool {
	if i == 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return isWordRune(r)
}

func isWordAfter(text string, i int) bool {
	if i >= len(text) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return isWordRune(r)
}

// snippet returns the trimmed context around [start, end), widened by snippetRadius runes
// on each side.
func snippet(text string, start, end int) string {
	from := start
	for n := 0; n < snippetRadius && from > 0; n++ {
		_, width := utf8.DecodeLastRuneInString(text[:from])
		from -= width
	}
	to := end
	for n := 0; n < snippetRadius && to < len(text); n++ {
		_, width := utf8.DecodeRuneInString(text[to:])
		to += width
	}
	return strings.TrimSpace(text[from:to])
}

func confidence(canonical string, matches []match, tax *taxonomy.Taxonomy) float64 {
	first := matches[0].form.Text
	base := baseVariation
	switch {
	case strings.EqualFold(first, canonical):
		base = baseCanonical
	case tax.IsAlias(first):
		base = baseAlias
	}

	// matches come from case-insensitively deduplicated forms, so "Python" and "python" count once
	occurrence := math.Min(maxOccurrenceBoost, float64(len(matches))*occurrenceBoostPerMatch)

	contextBoost := 0.0
	for i, m := range matches {
		if i >= contextBoostMatches {
			break
		}
		if hasContextIndicator(m.snippet) {
			contextBoost += contextBoostPerMatch
		}
	}

	total := math.Min(100, base+occurrence+contextBoost)
	return math.RoundToEven(total*10) / 10
}

func hasContextIndicator(snippet string) bool {
	lower := strings.ToLower(snippet)
	for _, ind := range contextIndicators {
		if strings.Contains(lower, ind) {
			return true
		}
	}
	return false
}

func uniqueSnippets(matches []match, limit int) []string {
	seen := make(map[string]bool, len(matches))
	out := make([]string, 0, limit)
	for _, m := range matches {
		if len(out) >= limit {
			break
		}
		if seen[m.snippet] {
			continue
		}
		seen[m.snippet] = true
		out = append(out, m.snippet)
	}
	return out
}
