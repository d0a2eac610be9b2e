package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextFromHTML(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		expected string
	}{
		{
			name:     "removes page chrome",
			html:     `<html><head><style>p{}</style></head><body><header>Logo</header><p>Build APIs in Go</p><script>var x;</script></body></html>`,
			expected: "Build APIs in Go",
		},
		{
			name:     "prefers job description container",
			html:     `<body><div class="sidebar">Other jobs</div><p>Apply now</p><section id="job-description"><p>Must have Python</p></section></body>`,
			expected: "Must have Python",
		},
		{
			name:     "falls back to main",
			html:     `<body><p>Banner</p><main><p>Nice to have: Docker</p></main></body>`,
			expected: "Nice to have: Docker",
		},
		{
			name:     "collapses inner whitespace",
			html:     "<body><p>  Go    and\t\tKubernetes  </p></body>",
			expected: "Go and Kubernetes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TextFromHTML(tt.html)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCleanWhitespace(t *testing.T) {
	assert.Equal(t, "a b\nc", cleanWhitespace("  a   b \n\n\t\n c  "))
	assert.Equal(t, "", cleanWhitespace(" \n "))
}
