// Package evidence finds resume sentences that mention a given skill.
package evidence

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Defaults for ExtractSkillEvidence.
const (
	DefaultMaxSkills           = 10
	DefaultMaxSnippetsPerSkill = 2
)

const (
	minSentenceRunes = 15
	maxSentenceRunes = 700
)

// ExtractSkillEvidence returns, for each of the first maxSkills skills that appears in the resume,
// up to maxSnippetsPerSkill sentences or bullets mentioning it as a whole token.
// Skills without any hit are left out of the result. Keys are the skills as given.
func ExtractSkillEvidence(resumeText string, skills []string, maxSkills, maxSnippetsPerSkill int) map[string][]string {
	evidence := make(map[string][]string)
	if maxSkills <= 0 || maxSnippetsPerSkill <= 0 {
		return evidence
	}
	if len(skills) > maxSkills {
		skills = skills[:maxSkills]
	}

	sentences := SplitSentences(resumeText)
	lowered := strings.ToLower(resumeText)

	for _, skill := range skills {
		needle := collapseSpaces(strings.ToLower(strings.TrimSpace(skill)))
		if needle == "" || !strings.Contains(lowered, needle) {
			continue
		}

		var hits []string
		for _, sentence := range sentences {
			if containsToken(strings.ToLower(sentence), needle) {
				hits = append(hits, sentence)
				if len(hits) >= maxSnippetsPerSkill {
					break
				}
			}
		}
		if len(hits) > 0 {
			evidence[skill] = hits
		}
	}
	return evidence
}

// SplitSentences breaks text at line breaks, after sentence punctuation followed by whitespace,
// at bullet characters and at "- " list markers. Parts are whitespace-collapsed and kept
// only when they are between 15 and 700 characters long.
func SplitSentences(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var parts []string
	var current strings.Builder
	flush := func() {
		parts = append(parts, current.String())
		current.Reset()
	}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '\n':
			for i+1 < len(runes) && runes[i+1] == '\n' {
				i++
			}
			flush()
		case r == '•':
			flush()
		case r == '-' && i+1 < len(runes) && runes[i+1] == ' ':
			i++
			flush()
		case unicode.IsSpace(r) && i > 0 && isSentenceEnd(runes[i-1]):
			for i+1 < len(runes) && unicode.IsSpace(runes[i+1]) && runes[i+1] != '\n' {
				i++
			}
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		s := collapseSpaces(p)
		if n := utf8.RuneCountInString(s); n >= minSentenceRunes && n <= maxSentenceRunes {
			out = append(out, s)
		}
	}
	return out
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// containsToken reports whether needle occurs in s without an ASCII letter or digit on either side.
func containsToken(s, needle string) bool {
	for start := 0; start <= len(s)-len(needle); {
		idx := strings.Index(s[start:], needle)
		if idx < 0 {
			return false
		}
		begin := start + idx
		end := begin + len(needle)
		if (begin == 0 || !isASCIIAlnum(s[begin-1])) && (end == len(s) || !isASCIIAlnum(s[end])) {
			return true
		}
		start = begin + 1
	}
	return false
}

func isASCIIAlnum(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
