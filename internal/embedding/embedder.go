// Package embedding turns resume and job description text into fixed-size vectors.
package embedding

import "context"

// MaxInputRunes bounds the text sent to an embedding provider.
const MaxInputRunes = 12000

// Embedder is an abstraction over embedding providers
type Embedder interface {
	// Embed returns the embedding of text. Callers truncate text with TruncateRunes first.
	Embed(ctx context.Context, text string) ([]float32, error)
	// Dimension returns the length of every vector produced by Embed
	Dimension() int
}

// TruncateRunes returns at most limit runes of text.
func TruncateRunes(text string, limit int) string {
	if limit <= 0 {
		return ""
	}
	n := 0
	for i := range text {
		if n == limit {
			return text[:i]
		}
		n++
	}
	return text
}
