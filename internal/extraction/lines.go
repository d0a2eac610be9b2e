package extraction

import (
	"regexp"
	"strings"
)

const (
	maxEducationLines  = 20
	maxExperienceLines = 25
)

var (
	educationKeywords  = regexp.MustCompile(`(?i)\b(b\.?tech|m\.?tech|bachelor|master|phd|degree|university|college|institute)\b`)
	experienceKeywords = regexp.MustCompile(`(?i)\b(experience|intern|developer|engineer|analyst|lead|manager)\b`)
	yearPattern        = regexp.MustCompile(`\b(19|20)\d{2}\b`)
)

// ExtractEducationLines returns up to 20 non-empty lines that mention a degree or institution.
func ExtractEducationLines(text string) []string {
	return matchingLines(text, maxEducationLines, func(line string) bool {
		return educationKeywords.MatchString(line)
	})
}

// ExtractExperienceLines returns up to 25 non-empty lines that mention a role or a year.
func ExtractExperienceLines(text string) []string {
	return matchingLines(text, maxExperienceLines, func(line string) bool {
		return experienceKeywords.MatchString(line) || yearPattern.MatchString(line)
	})
}

func matchingLines(text string, limit int, keep func(string) bool) []string {
	out := []string{}
	if text == "" {
		return out
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !keep(line) {
			continue
		}
		out = append(out, line)
		if len(out) == limit {
			break
		}
	}
	return out
}
