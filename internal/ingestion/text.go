// Package ingestion reads resume and job description text from local files.
package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Format is the detected source format of an ingested file.
type Format string

// Supported formats.
const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// maxFileSize mirrors the upload limit of 15MB.
const maxFileSize = 15 * 1024 * 1024

// DetectFormat maps a file extension to a Format.
func DetectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".txt", "":
		return FormatText, nil
	case ".md", ".markdown":
		return FormatMarkdown, nil
	case ".html", ".htm":
		return FormatHTML, nil
	default:
		return "", &UnsupportedFormatError{Path: path, Extension: ext}
	}
}

// NormalizeLineEndings converts CRLF and CR line endings to LF.
func NormalizeLineEndings(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return strings.ReplaceAll(content, "\r", "\n")
}

// IngestFromFile reads a text, markdown or HTML file and returns its text with metadata.
// Line structure is kept so that section and line heuristics still work downstream.
func IngestFromFile(path string) (string, *Metadata, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return "", nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.Size() > maxFileSize {
		return "", nil, fmt.Errorf("file too large: %s is %d bytes (max %d)", path, info.Size(), maxFileSize)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}

	text := NormalizeLineEndings(string(content))
	if format == FormatHTML {
		text, err = TextFromHTML(text)
		if err != nil {
			return "", nil, err
		}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", nil, fmt.Errorf("file %s contains no text", path)
	}

	return text, NewMetadata(text, filepath.Base(path), format), nil
}
