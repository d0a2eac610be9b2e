package ingestion

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path     string
		expected Format
		wantErr  bool
	}{
		{"resume.txt", FormatText, false},
		{"resume", FormatText, false},
		{"README.MD", FormatMarkdown, false},
		{"posting.html", FormatHTML, false},
		{"posting.htm", FormatHTML, false},
		{"resume.pdf", "", true},
		{"resume.docx", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := DetectFormat(tt.path)
			if tt.wantErr {
				var unsupported *UnsupportedFormatError
				require.True(t, errors.As(err, &unsupported))
				assert.Equal(t, tt.path, unsupported.Path)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNormalizeLineEndings(t *testing.T) {
	assert.Equal(t, "a\nb\nc\nd", NormalizeLineEndings("a\r\nb\rc\nd"))
}

func TestIngestFromFile_Text(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.txt")
	content := "Jane Doe\r\njane@example.com\r\n\r\nExperience\r\nSoftware Engineer 2020-2023\r\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	text, meta, err := IngestFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe\njane@example.com\n\nExperience\nSoftware Engineer 2020-2023", text)
	assert.Equal(t, "resume.txt", meta.Filename)
	assert.Equal(t, FormatText, meta.Format)
	assert.Equal(t, ComputeHash(text), meta.Hash)
	assert.Equal(t, len(text), meta.Bytes)
}

func TestIngestFromFile_HTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posting.html")
	html := `<html><body><nav>Home | Jobs</nav>` +
		`<div class="job-description"><h2>Senior Go Engineer</h2><p>Requirements</p>` +
		`<ul><li>Go</li><li>PostgreSQL</li></ul></div>` +
		`<footer>Copyright</footer></body></html>`
	require.NoError(t, os.WriteFile(path, []byte(html), 0644))

	text, meta, err := IngestFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "Senior Go Engineer\nRequirements\nGo\nPostgreSQL", text)
	assert.Equal(t, FormatHTML, meta.Format)
}

func TestIngestFromFile_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, _, err := IngestFromFile(filepath.Join(dir, "missing.txt"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "file not found")
	})

	t.Run("unsupported format", func(t *testing.T) {
		path := filepath.Join(dir, "resume.pdf")
		require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0644))
		_, _, err := IngestFromFile(path)
		var unsupported *UnsupportedFormatError
		assert.True(t, errors.As(err, &unsupported))
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(dir, "empty.txt")
		require.NoError(t, os.WriteFile(path, []byte("  \n\n "), 0644))
		_, _, err := IngestFromFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "contains no text")
	})
}
