package cleaning

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"whitespace only", "  \t \n ", ""},
		{"control characters removed", "Py\x00thon\x07 dev", "Python dev"},
		{"tab and newline kept as whitespace", "a\tb", "a b"},
		{"dehyphenate wrapped word", "machine-\nlearning", "machinelearning"},
		{"dehyphenate accented word", "café-\nau lait", "caféau lait"},
		{"dehyphenate non-latin word", "инжене-\nр", "инженер"},
		{"single newline joins lines", "first line\nsecond line", "first line second line"},
		{"paragraph break preserved", "para one\n\npara two", "para one\n\npara two"},
		{"three or more newlines collapse", "a\n\n\n\nb", "a\n\nb"},
		{"crlf normalized", "a\r\nb\r\n\r\nc", "a b\n\nc"},
		{"runs of spaces collapse", "a    b \t c", "a b c"},
		{"leading and trailing trimmed", "  hello  ", "hello"},
		{"hyphen not followed by newline kept", "scikit-learn", "scikit-learn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Clean(tt.input))
		})
	}
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"Senior   Engineer\n\n\n\nPython-\nista with 5+ years",
		"Skills:\nGo\nRust\n\nExperience:\nBuilt things",
	}
	for _, in := range inputs {
		once := Clean(in)
		assert.Equal(t, once, Clean(once))
	}
}
