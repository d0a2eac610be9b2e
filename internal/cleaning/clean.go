// Package cleaning canonicalizes raw extracted resume and job description text.
package cleaning

import (
	"regexp"
	"strings"
)

var (
	controlChars = regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f]`)
	hyphenWrap   = regexp.MustCompile(`([\p{L}\p{N}_])-\n([\p{L}\p{N}_])`)
	multiSpace   = regexp.MustCompile(`[ \t]+`)
	multiNewline = regexp.MustCompile(`\n{3,}`)
)

// Clean normalizes raw extracted text into a stable form for embeddings and extraction.
//
//   - normalizes line endings and removes control characters
//   - de-hyphenates words wrapped across lines ("machine-\nlearning" -> "machinelearning")
//   - turns single newlines inside paragraphs into spaces, keeping blank-line paragraph breaks
//   - collapses runs of spaces/tabs and runs of 3+ newlines
func Clean(text string) string {
	if text == "" {
		return ""
	}

	t := strings.ReplaceAll(text, "\r\n", "\n")
	t = strings.ReplaceAll(t, "\r", "\n")
	t = controlChars.ReplaceAllString(t, "")

	t = hyphenWrap.ReplaceAllString(t, "$1$2")
	t = joinSoftLineBreaks(t)

	t = multiSpace.ReplaceAllString(t, " ")
	t = multiNewline.ReplaceAllString(t, "\n\n")
	return strings.TrimSpace(t)
}

// joinSoftLineBreaks replaces every newline that has no newline neighbour with a space.
func joinSoftLineBreaks(t string) string {
	if !strings.Contains(t, "\n") {
		return t
	}
	b := []byte(t)
	out := make([]byte, len(b))
	for i, c := range b {
		if c == '\n' && (i == 0 || b[i-1] != '\n') && (i == len(b)-1 || b[i+1] != '\n') {
			out[i] = ' '
			continue
		}
		out[i] = c
	}
	return string(out)
}
